package models

import "time"

const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleCashier    = "cashier"
)

type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	TenantID *uint   `gorm:"index" json:"tenant_id,omitempty"` // nil untuk super admin
	Tenant   *Tenant `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Email    string  `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password string  `gorm:"type:varchar(255);not null" json:"-"`
	Role     string  `gorm:"type:varchar(50);not null" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

// Tenant adalah akun cafe/restoran, batas multi-tenancy paling atas.
type Tenant struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Slug     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	PlanID   uint   `gorm:"not null" json:"plan_id"`
	Plan     Plan   `gorm:"foreignKey:PlanID" json:"plan"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	// Pengaturan yang dipakai struk dan checkout
	Address      string `gorm:"type:varchar(255)" json:"address"`
	Phone        string `gorm:"type:varchar(50)" json:"phone"`
	WifiSSID     string `gorm:"type:varchar(100)" json:"wifi_ssid"`
	WifiPassword string `gorm:"type:varchar(100)" json:"wifi_password"`
	QRISEnabled  bool   `gorm:"not null;default:false" json:"qris_enabled"`

	BankAccounts []BankAccount `gorm:"foreignKey:TenantID" json:"bank_accounts"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// BankAccount adalah pilihan rekening tujuan untuk metode transfer.
type BankAccount struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TenantID      uint      `gorm:"not null;index" json:"tenant_id"`
	BankName      string    `gorm:"type:varchar(100);not null" json:"bank_name"`
	AccountNumber string    `gorm:"type:varchar(50);not null" json:"account_number"`
	AccountHolder string    `gorm:"type:varchar(255);not null" json:"account_holder"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

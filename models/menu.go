package models

import "time"

type Menu struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	TenantID    uint         `gorm:"not null;index" json:"tenant_id"`
	CategoryID  uint         `gorm:"not null" json:"category_id"`
	Category    MenuCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Price       float64      `gorm:"type:decimal(10,2);not null" json:"price"`
	IsAvailable bool         `gorm:"not null;default:true" json:"is_available"`
	// Stock nil berarti stok tidak dibatasi
	Stock *int `json:"stock,omitempty"`

	OptionGroups []OptionGroup `gorm:"many2many:menu_option_groups;" json:"option_groups"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// Badges menghasilkan label etalase. Perhitungannya placeholder deterministik
// berbasis modulo, bukan agregat penjualan sungguhan.
func (m *Menu) Badges() []string {
	switch m.ID % 3 {
	case 1:
		return []string{"Best Seller"}
	case 2:
		return []string{"New"}
	default:
		return nil
	}
}

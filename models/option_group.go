package models

import "time"

const (
	SelectionSingle   = "single"
	SelectionMultiple = "multiple"
)

// OptionGroup adalah satu sumbu variasi menu (mis. "Size", "Topping").
type OptionGroup struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	TenantID      uint   `gorm:"not null;index" json:"tenant_id"`
	Name          string `gorm:"type:varchar(100);not null" json:"name"`
	SelectionType string `gorm:"type:varchar(20);not null;default:'single'" json:"selection_type"`
	IsRequired    bool   `gorm:"not null;default:false" json:"is_required"`
	// MinSelect/MaxSelect hanya berlaku untuk selection_type multiple
	MinSelect *int `json:"min_select,omitempty"`
	MaxSelect *int `json:"max_select,omitempty"`

	OptionItems []OptionItem `gorm:"foreignKey:GroupID" json:"option_items"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

type OptionItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GroupID    uint      `gorm:"not null;index" json:"group_id"`
	Label      string    `gorm:"type:varchar(100);not null" json:"label"`
	ExtraPrice float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"extra_price"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	SortOrder  int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

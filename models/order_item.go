package models

import "time"

// OrderItem menyimpan snapshot menu pada saat order dibuat, sengaja
// didenormalisasi supaya order lama tidak berubah ketika menu diedit.
type OrderItem struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	OrderID uint  `gorm:"not null;index" json:"order_id"`
	Order   Order `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	MenuID   uint    `gorm:"not null" json:"menu_id"`
	MenuName string  `gorm:"type:varchar(255);not null" json:"menu_name"`
	Price    float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity int     `gorm:"not null" json:"quantity"`
	Subtotal float64 `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Notes    string  `gorm:"type:text" json:"notes"`

	Options []OrderItemOption `gorm:"foreignKey:OrderItemID" json:"options"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// OrderItemOption adalah snapshot pilihan option pada saat order dibuat.
type OrderItemOption struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderItemID uint      `gorm:"not null;index" json:"order_item_id"`
	OptionID    uint      `gorm:"not null" json:"option_id"`
	GroupName   string    `gorm:"type:varchar(100);not null" json:"group_name"`
	Label       string    `gorm:"type:varchar(100);not null" json:"label"`
	ExtraPrice  float64   `gorm:"type:decimal(10,2);not null" json:"extra_price"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

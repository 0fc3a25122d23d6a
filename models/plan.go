package models

import "time"

// Plan adalah paket langganan tenant. Katalognya di-seed dari config/plans.yaml.
type Plan struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Code         string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	MaxTables    int       `gorm:"not null" json:"max_tables"`
	MaxMenus     int       `gorm:"not null" json:"max_menus"`
	MonthlyPrice float64   `gorm:"type:decimal(12,2);not null" json:"monthly_price"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

package models

import "time"

type Table struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	TenantID    uint   `gorm:"not null;uniqueIndex:idx_tenant_table_number" json:"tenant_id"`
	TableNumber string `gorm:"type:varchar(50);not null;uniqueIndex:idx_tenant_table_number" json:"table_number"`
	// QRToken adalah isi QR code yang ditempel di meja
	QRToken   string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"qr_token"`
	Status    string    `gorm:"type:varchar(50);not null;default:'available'" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

package models

import "time"

// Payment represents a payment transaction for an order
type Payment struct {
	ID      uint  `json:"id" gorm:"primaryKey"`
	OrderID uint  `json:"order_id" gorm:"not null;index"`
	Order   Order `json:"-" gorm:"foreignKey:OrderID"`

	Amount float64 `json:"amount" gorm:"type:decimal(12,2);not null"`
	Method string  `json:"method" gorm:"type:varchar(20);not null;default:'cash'"`
	Status string  `json:"status" gorm:"type:varchar(30);not null;default:'unpaid'"`

	// Transfer
	BankName      string `json:"bank_name" gorm:"type:varchar(100)"`
	ProofFilePath string `json:"proof_file_path" gorm:"type:varchar(255)"`

	// QRIS
	QRString    string `json:"qr_string" gorm:"type:text"`
	ReferenceID string `json:"reference_id" gorm:"type:varchar(100)"`

	VerifiedBy  *uint      `json:"verified_by,omitempty"`
	PaymentTime *time.Time `json:"payment_time,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

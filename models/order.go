package models

import "time"

// Status order (sumbu dapur/penyajian)
const (
	OrderPending   = "pending"
	OrderAccepted  = "accepted"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderCompleted = "completed"
	OrderCanceled  = "canceled"
)

// Status pembayaran (sumbu terpisah dari status order)
const (
	PaymentUnpaid              = "unpaid"
	PaymentWaitingVerification = "waiting_verification"
	PaymentPaid                = "paid"
	PaymentFailed              = "failed"
	PaymentRefunded            = "refunded"
)

// Metode pembayaran
const (
	MethodCash     = "cash"
	MethodTransfer = "transfer"
	MethodQRIS     = "qris"
)

type Order struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID uint   `gorm:"not null;index" json:"tenant_id"`
	TableID  uint   `gorm:"not null" json:"table_id"`
	Table    Table  `gorm:"foreignKey:TableID" json:"table"`
	// OrderCode adalah identifier yang ditampilkan ke customer,
	// berbeda dari primary key database.
	OrderCode     string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_code"`
	TotalAmount   float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"total_amount"`
	PaymentMethod string  `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"`
	PaymentStatus string  `gorm:"type:varchar(30);not null;default:'unpaid'" json:"payment_status"`
	OrderStatus   string  `gorm:"type:varchar(20);not null;default:'pending'" json:"order_status"`
	CustomerName  string  `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerNote  string  `gorm:"type:text" json:"customer_note"`

	// InvoicePrintedAt nil berarti struk belum pernah dikirim ke printer
	InvoicePrintedAt *time.Time `json:"invoice_printed_at,omitempty"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	Payments   []Payment   `gorm:"foreignKey:OrderID" json:"payments"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// IsTerminal -> completed/canceled tidak punya transisi keluar
func (o *Order) IsTerminal() bool {
	return o.OrderStatus == OrderCompleted || o.OrderStatus == OrderCanceled
}

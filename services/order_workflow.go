package services

import (
	"errors"
	"fmt"

	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/utils"
)

var (
	// ErrPaymentRequired: pending -> accepted diblokir selama order belum paid.
	// Dikembalikan sebelum ada satupun write ke repository.
	ErrPaymentRequired = errors.New("order belum dibayar, terima pembayaran dulu sebelum menerima order")

	// ErrInvoiceNotPrinted: menyelesaikan order yang sudah paid tapi struknya
	// belum pernah dicetak butuh konfirmasi (force) atau cetak dulu.
	ErrInvoiceNotPrinted = errors.New("struk belum dicetak, cetak dulu atau kirim force untuk tetap menyelesaikan")
)

type TransitionError struct {
	Axis string
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transisi %s dari %q ke %q tidak diizinkan", e.Axis, e.From, e.To)
}

// Tabel transisi kedua sumbu status. canceled bisa dicapai dari semua status
// non-terminal; completed/canceled tidak punya transisi keluar.
var orderTransitions = map[string][]string{
	models.OrderPending:   {models.OrderAccepted, models.OrderCanceled},
	models.OrderAccepted:  {models.OrderPreparing, models.OrderCanceled},
	models.OrderPreparing: {models.OrderReady, models.OrderCanceled},
	models.OrderReady:     {models.OrderCompleted, models.OrderCanceled},
	models.OrderCompleted: {},
	models.OrderCanceled:  {},
}

var paymentTransitions = map[string][]string{
	models.PaymentUnpaid:              {models.PaymentWaitingVerification, models.PaymentPaid, models.PaymentFailed},
	models.PaymentWaitingVerification: {models.PaymentPaid, models.PaymentFailed},
	models.PaymentPaid:                {models.PaymentRefunded},
	models.PaymentFailed:              {},
	models.PaymentRefunded:            {},
}

func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func CanTransitionPayment(from, to string) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// InvoiceStarter adalah pintu masuk tunggal ke sequence cetak struk.
type InvoiceStarter interface {
	Begin(order *models.Order) error
}

// OrderWorkflow memutasi kedua sumbu status order lewat tabel transisi
// eksplisit. Semua guard dicek sebelum write; update yang gagal tidak
// mengubah status manapun.
type OrderWorkflow struct {
	repo    OrderRepository
	printer InvoiceStarter
}

func NewOrderWorkflow(repo OrderRepository, printer InvoiceStarter) *OrderWorkflow {
	return &OrderWorkflow{repo: repo, printer: printer}
}

// AdvanceStatus menggeser order_status ke next setelah semua guard lolos.
func (w *OrderWorkflow) AdvanceStatus(tenantID, orderID uint, next string, force bool) (*models.Order, error) {
	order, err := w.repo.GetOrderByID(tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransitionOrder(order.OrderStatus, next) {
		return nil, &TransitionError{Axis: "order_status", From: order.OrderStatus, To: next}
	}

	if next == models.OrderAccepted && order.PaymentStatus != models.PaymentPaid {
		return nil, ErrPaymentRequired
	}

	if next == models.OrderCompleted &&
		order.PaymentStatus == models.PaymentPaid &&
		order.InvoicePrintedAt == nil && !force {
		return nil, ErrInvoiceNotPrinted
	}

	if err := w.repo.UpdateOrderStatus(order.ID, next); err != nil {
		return nil, err
	}

	updated, err := w.repo.GetOrderByID(tenantID, orderID)
	if err != nil {
		return nil, err
	}

	w.MaybeAutoPrint(updated)
	return updated, nil
}

// UpdatePayment menggeser payment_status ke next.
func (w *OrderWorkflow) UpdatePayment(tenantID, orderID uint, next string) (*models.Order, error) {
	order, err := w.repo.GetOrderByID(tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransitionPayment(order.PaymentStatus, next) {
		return nil, &TransitionError{Axis: "payment_status", From: order.PaymentStatus, To: next}
	}

	if err := w.repo.UpdatePaymentStatus(order.ID, next); err != nil {
		return nil, err
	}

	updated, err := w.repo.GetOrderByID(tenantID, orderID)
	if err != nil {
		return nil, err
	}

	// Pembayaran bisa saja baru lunas setelah order sudah ready.
	w.MaybeAutoPrint(updated)
	return updated, nil
}

// MaybeAutoPrint memulai sequence cetak struk otomatis ketika order mencapai
// ready dalam keadaan paid dan belum pernah dicetak. Aman dipanggil berulang:
// printer menolak re-entry selama sequence masih berjalan, jadi handler yang
// terpanggil dua kali di tick yang sama tetap menghasilkan satu sequence.
func (w *OrderWorkflow) MaybeAutoPrint(order *models.Order) {
	if w.printer == nil || order == nil {
		return
	}
	if order.OrderStatus != models.OrderReady ||
		order.PaymentStatus != models.PaymentPaid ||
		order.InvoicePrintedAt != nil {
		return
	}

	if err := w.printer.Begin(order); err != nil {
		if errors.Is(err, ErrPrintInProgress) {
			return
		}
		if utils.ErrorLogger != nil {
			utils.ErrorLogger.Printf("auto-print struk order %s gagal: %v", order.OrderCode, err)
		}
	}
}

package services

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/pandukusuma/qr-order-app/models"
)

// MemoryOrderRepository adalah implementasi OrderRepository untuk mode demo
// (APP_MODE=demo): tidak butuh database sama sekali, order disimpan di memory
// dengan kode order sintetis. Bukan untuk produksi.
type MemoryOrderRepository struct {
	mu      sync.RWMutex
	orders  map[string]*models.Order // order_code -> order
	byID    map[uint]*models.Order
	nextID  uint
	catalog map[uint]models.Menu
	options []models.OptionItem

	// Now bisa diganti di test untuk mengunci tanggal kode order
	Now func() time.Time
	rng *rand.Rand
}

func NewMemoryOrderRepository(catalog []models.Menu, options []models.OptionItem) *MemoryOrderRepository {
	byMenu := make(map[uint]models.Menu, len(catalog))
	for _, m := range catalog {
		byMenu[m.ID] = m
	}
	return &MemoryOrderRepository{
		orders:  make(map[string]*models.Order),
		byID:    make(map[uint]*models.Order),
		nextID:  1,
		catalog: byMenu,
		options: options,
		Now:     time.Now,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// generateOrderCode -> digit pertama tanggal + 3 digit acak + ddMMyy.
// Contoh 2025-11-22: "2" + "471" + "221125".
func (r *MemoryOrderRepository) generateOrderCode(now time.Time) string {
	day := now.Format("02")
	return fmt.Sprintf("%c%03d%s", day[0], r.rng.Intn(1000), now.Format("020106"))
}

func (r *MemoryOrderRepository) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.Now()
	order := &models.Order{
		ID:            r.nextID,
		TenantID:      input.TenantID,
		TableID:       1,
		OrderCode:     r.generateOrderCode(now),
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: models.PaymentUnpaid,
		OrderStatus:   models.OrderPending,
		CustomerName:  input.CustomerName,
		CustomerNote:  input.CustomerNote,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	r.nextID++

	var total float64
	for _, item := range input.Items {
		menu, ok := r.catalog[item.MenuID]
		if !ok {
			continue
		}
		subtotal := ComputeLineTotal(menu, item.Quantity, item.OptionItemIDs, r.options)
		total += subtotal
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			OrderID:  order.ID,
			MenuID:   menu.ID,
			MenuName: menu.Name,
			Price:    menu.Price,
			Quantity: item.Quantity,
			Subtotal: subtotal,
			Notes:    item.Note,
		})
	}
	order.TotalAmount = total
	order.Payments = []models.Payment{{
		OrderID: order.ID,
		Amount:  total,
		Method:  input.PaymentMethod,
		Status:  models.PaymentUnpaid,
	}}

	r.orders[order.OrderCode] = order
	r.byID[order.ID] = order
	return cloneOrder(order), nil
}

func (r *MemoryOrderRepository) GetOrderByCode(tenantID uint, orderCode string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderCode]
	if !ok || order.TenantID != tenantID {
		return nil, ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (r *MemoryOrderRepository) GetOrderByID(tenantID, orderID uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.byID[orderID]
	if !ok || order.TenantID != tenantID {
		return nil, ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (r *MemoryOrderRepository) ListOrders(tenantID uint) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for _, order := range r.byID {
		if order.TenantID == tenantID {
			orders = append(orders, *cloneOrder(order))
		}
	}
	return orders, nil
}

func (r *MemoryOrderRepository) AttachProof(tenantID uint, orderCode string, proof ProofInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderCode]
	if !ok || order.TenantID != tenantID {
		return ErrOrderNotFound
	}

	order.PaymentStatus = models.PaymentWaitingVerification
	if len(order.Payments) > 0 {
		order.Payments[0].ProofFilePath = proof.FilePath
		order.Payments[0].BankName = proof.BankName
		order.Payments[0].Status = models.PaymentWaitingVerification
	}
	order.UpdatedAt = r.Now()
	return nil
}

func (r *MemoryOrderRepository) UpdateOrderStatus(orderID uint, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.byID[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	order.OrderStatus = status
	order.UpdatedAt = r.Now()
	return nil
}

func (r *MemoryOrderRepository) UpdatePaymentStatus(orderID uint, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.byID[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	order.PaymentStatus = status
	if len(order.Payments) > 0 {
		order.Payments[0].Status = status
	}
	order.UpdatedAt = r.Now()
	return nil
}

func (r *MemoryOrderRepository) MarkInvoicePrinted(orderID uint, printedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.byID[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	order.InvoicePrintedAt = &printedAt
	order.UpdatedAt = r.Now()
	return nil
}

func cloneOrder(order *models.Order) *models.Order {
	out := *order
	out.OrderItems = make([]models.OrderItem, len(order.OrderItems))
	copy(out.OrderItems, order.OrderItems)
	out.Payments = make([]models.Payment, len(order.Payments))
	copy(out.Payments, order.Payments)
	return &out
}

package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pandukusuma/qr-order-app/models"
)

var (
	ErrTableNotFound = errors.New("meja tidak ditemukan, scan ulang QR code")
	ErrOrderNotFound = errors.New("order tidak ditemukan")
	ErrOutOfStock    = errors.New("stok menu tidak mencukupi")
)

type OrderItemInput struct {
	MenuID        uint   `json:"menu_id" binding:"required"`
	Quantity      int    `json:"qty" binding:"required,min=1"`
	OptionItemIDs []uint `json:"option_item_ids"`
	Note          string `json:"item_note"`
}

type CreateOrderInput struct {
	TenantID      uint
	QRToken       string `json:"qr_token" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerNote  string `json:"customer_note"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	BankChoice    string `json:"bank_choice"`
	Items         []OrderItemInput `json:"items" binding:"required,min=1"`
}

type ProofInput struct {
	FilePath string
	Method   string
	Amount   float64
	BankName string
}

// OrderRepository adalah satu-satunya pintu ke data order. Implementasi
// database dan implementasi demo (in-memory) memenuhi interface yang sama,
// dipilih lewat konfigurasi.
type OrderRepository interface {
	CreateOrder(input CreateOrderInput) (*models.Order, error)
	GetOrderByCode(tenantID uint, orderCode string) (*models.Order, error)
	GetOrderByID(tenantID, orderID uint) (*models.Order, error)
	ListOrders(tenantID uint) ([]models.Order, error)
	AttachProof(tenantID uint, orderCode string, proof ProofInput) error
	UpdateOrderStatus(orderID uint, status string) error
	UpdatePaymentStatus(orderID uint, status string) error
	MarkInvoicePrinted(orderID uint, printedAt time.Time) error
}

// GormOrderRepository adalah implementasi produksi di atas MySQL.
type GormOrderRepository struct {
	DB *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{DB: db}
}

func (r *GormOrderRepository) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	var table models.Table
	if err := r.DB.Where("tenant_id = ? AND qr_token = ?", input.TenantID, input.QRToken).
		First(&table).Error; err != nil {
		return nil, ErrTableNotFound
	}

	var order models.Order

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			TenantID:      input.TenantID,
			TableID:       table.ID,
			PaymentMethod: input.PaymentMethod,
			PaymentStatus: models.PaymentUnpaid,
			OrderStatus:   models.OrderPending,
			CustomerName:  input.CustomerName,
			CustomerNote:  input.CustomerNote,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total float64
		for _, item := range input.Items {
			var menu models.Menu
			if err := tx.Preload("OptionGroups.OptionItems").
				Where("tenant_id = ?", input.TenantID).
				First(&menu, item.MenuID).Error; err != nil {
				// Menu yang tidak ditemukan dilewati, mengikuti perilaku
				// pricing yang permisif.
				continue
			}

			if menu.Stock != nil {
				if *menu.Stock < item.Quantity {
					return fmt.Errorf("%w: %s", ErrOutOfStock, menu.Name)
				}
				newStock := *menu.Stock - item.Quantity
				if err := tx.Model(&menu).Update("stock", newStock).Error; err != nil {
					return err
				}
			}

			options := flattenOptions(menu.OptionGroups)
			subtotal := ComputeLineTotal(menu, item.Quantity, item.OptionItemIDs, options)
			total += subtotal

			orderItem := models.OrderItem{
				OrderID:   order.ID,
				MenuID:    menu.ID,
				MenuName:  menu.Name,
				Price:     menu.Price,
				Quantity:  item.Quantity,
				Subtotal:  subtotal,
				Notes:     item.Note,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}

			// Snapshot option terpilih supaya order historis tidak
			// terpengaruh edit menu di kemudian hari.
			for _, snap := range snapshotOptions(menu.OptionGroups, item.OptionItemIDs) {
				snap.OrderItemID = orderItem.ID
				if err := tx.Create(&snap).Error; err != nil {
					return err
				}
			}
		}

		// Format tanpa '/' supaya kode aman dipakai sebagai order id gateway
		order.OrderCode = fmt.Sprintf("ORD-%s-%06d", time.Now().Format("20060102"), order.ID)
		order.TotalAmount = total
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		payment := models.Payment{
			OrderID:   order.ID,
			Amount:    total,
			Method:    input.PaymentMethod,
			Status:    models.PaymentUnpaid,
			BankName:  input.BankChoice,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, err
	}

	return r.GetOrderByID(input.TenantID, order.ID)
}

func (r *GormOrderRepository) GetOrderByCode(tenantID uint, orderCode string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.Preload("OrderItems.Options").Preload("Payments").Preload("Table").
		Where("tenant_id = ? AND order_code = ?", tenantID, orderCode).
		First(&order).Error; err != nil {
		return nil, ErrOrderNotFound
	}
	return &order, nil
}

func (r *GormOrderRepository) GetOrderByID(tenantID, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.Preload("OrderItems.Options").Preload("Payments").Preload("Table").
		Where("tenant_id = ?", tenantID).
		First(&order, orderID).Error; err != nil {
		return nil, ErrOrderNotFound
	}
	return &order, nil
}

func (r *GormOrderRepository) ListOrders(tenantID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.Preload("OrderItems").Preload("Table").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) AttachProof(tenantID uint, orderCode string, proof ProofInput) error {
	order, err := r.GetOrderByCode(tenantID, orderCode)
	if err != nil {
		return err
	}

	if order.PaymentStatus != models.PaymentUnpaid &&
		order.PaymentStatus != models.PaymentWaitingVerification {
		return fmt.Errorf("bukti pembayaran tidak bisa diunggah untuk status %s", order.PaymentStatus)
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.Where("order_id = ?", order.ID).First(&payment).Error; err != nil {
			return err
		}

		payment.ProofFilePath = proof.FilePath
		payment.Method = proof.Method
		payment.BankName = proof.BankName
		if proof.Amount > 0 {
			payment.Amount = proof.Amount
		}
		payment.Status = models.PaymentWaitingVerification
		payment.UpdatedAt = time.Now()
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		return tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("payment_status", models.PaymentWaitingVerification).Error
	})
}

func (r *GormOrderRepository) UpdateOrderStatus(orderID uint, status string) error {
	return r.DB.Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{"order_status": status, "updated_at": time.Now()}).Error
}

func (r *GormOrderRepository) UpdatePaymentStatus(orderID uint, status string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).
			Where("id = ?", orderID).
			Updates(map[string]interface{}{"payment_status": status, "updated_at": time.Now()}).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{"status": status, "updated_at": time.Now()}
		if status == models.PaymentPaid {
			updates["payment_time"] = time.Now()
		}
		return tx.Model(&models.Payment{}).
			Where("order_id = ?", orderID).
			Updates(updates).Error
	})
}

func (r *GormOrderRepository) MarkInvoicePrinted(orderID uint, printedAt time.Time) error {
	return r.DB.Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{"invoice_printed_at": printedAt, "updated_at": time.Now()}).Error
}

func flattenOptions(groups []models.OptionGroup) []models.OptionItem {
	var options []models.OptionItem
	for _, group := range groups {
		options = append(options, group.OptionItems...)
	}
	return options
}

func snapshotOptions(groups []models.OptionGroup, selectedIDs []uint) []models.OrderItemOption {
	selected := make(map[uint]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	var snaps []models.OrderItemOption
	for _, group := range groups {
		for _, item := range group.OptionItems {
			if !selected[item.ID] {
				continue
			}
			snaps = append(snaps, models.OrderItemOption{
				OptionID:   item.ID,
				GroupName:  group.Name,
				Label:      item.Label,
				ExtraPrice: item.ExtraPrice,
				CreatedAt:  time.Now(),
				UpdatedAt:  time.Now(),
			})
		}
	}
	return snaps
}

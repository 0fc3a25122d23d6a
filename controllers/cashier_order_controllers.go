package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/pandukusuma/qr-order-app/live"
	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/services"
	"github.com/pandukusuma/qr-order-app/utils"
)

type CashierOrderController struct {
	DB       *gorm.DB
	Repo     services.OrderRepository
	Workflow *services.OrderWorkflow
	Printer  *services.InvoicePrinter
	Gateway  *services.PaymentGateway
	Hub      *live.Hub
}

func NewCashierOrderController(db *gorm.DB, repo services.OrderRepository, workflow *services.OrderWorkflow, printer *services.InvoicePrinter, gateway *services.PaymentGateway, hub *live.Hub) *CashierOrderController {
	return &CashierOrderController{
		DB:       db,
		Repo:     repo,
		Workflow: workflow,
		Printer:  printer,
		Gateway:  gateway,
		Hub:      hub,
	}
}

// GetAllOrders -> antrian order tenant, terbaru dulu
func (cc *CashierOrderController) GetAllOrders(c *gin.Context) {
	orders, err := cc.Repo.ListOrders(tenantIDFromContext(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail 1 order
func (cc *CashierOrderController) GetOrderByID(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	order, err := cc.Repo.GetOrderByID(tenantIDFromContext(c), uint(orderID))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> PATCH {order_status, note?, force?}.
// Guard dijalankan sebelum write: pending->accepted butuh payment_status
// paid; completed saat struk belum dicetak butuh force.
func (cc *CashierOrderController) UpdateOrderStatus(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	var req struct {
		OrderStatus string `json:"order_status" binding:"required"`
		Note        string `json:"note"`
		Force       bool   `json:"force"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := cc.Workflow.AdvanceStatus(tenantIDFromContext(c), uint(orderID), req.OrderStatus, req.Force)
	if err != nil {
		var trErr *services.TransitionError
		switch {
		case errors.Is(err, services.ErrPaymentRequired):
			utils.RespondError(c, http.StatusUnprocessableEntity, err)
		case errors.Is(err, services.ErrInvoiceNotPrinted):
			utils.RespondError(c, http.StatusConflict, err)
		case errors.As(err, &trErr):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	if req.Note != "" {
		cc.Hub.BroadcastStaffNotification(order.TenantID, req.Note)
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// UpdatePaymentStatus -> PATCH {payment_status}
func (cc *CashierOrderController) UpdatePaymentStatus(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	var req struct {
		PaymentStatus string `json:"payment_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := cc.Workflow.UpdatePayment(tenantIDFromContext(c), uint(orderID), req.PaymentStatus)
	if err != nil {
		var trErr *services.TransitionError
		switch {
		case errors.As(err, &trErr):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	// Catat kasir yang memverifikasi pembayaran manual
	if req.PaymentStatus == models.PaymentPaid {
		cc.DB.Model(&models.Payment{}).
			Where("order_id = ?", order.ID).
			Update("verified_by", userIDFromContext(c))
	}

	utils.RespondJSON(c, http.StatusOK, "Payment status updated", order)
}

// PrintInvoice -> mulai sequence cetak struk secara manual
func (cc *CashierOrderController) PrintInvoice(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	order, err := cc.Repo.GetOrderByID(tenantIDFromContext(c), uint(orderID))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := cc.Printer.Begin(order); err != nil {
		if errors.Is(err, services.ErrPrintInProgress) {
			utils.RespondError(c, http.StatusConflict, err)
			return
		}
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	utils.RespondJSON(c, http.StatusAccepted, "Pencetakan struk dimulai", gin.H{
		"order_code": order.OrderCode,
	})
}

// MarkInvoicePrinted -> tandai struk tercetak tanpa melalui sequence
// (dipakai bila kasir mencetak lewat jalur lain).
func (cc *CashierOrderController) MarkInvoicePrinted(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	order, err := cc.Repo.GetOrderByID(tenantIDFromContext(c), uint(orderID))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := cc.Repo.MarkInvoicePrinted(order.ID, time.Now()); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Invoice marked as printed", gin.H{
		"order_code": order.OrderCode,
	})
}

// CreateQRISCharge -> buat tagihan QRIS di gateway untuk order ini
func (cc *CashierOrderController) CreateQRISCharge(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	order, err := cc.Repo.GetOrderByID(tenantIDFromContext(c), uint(orderID))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	charge, err := cc.Gateway.CreateQRISCharge(order.OrderCode, order.TotalAmount)
	if err != nil {
		var apiErr *utils.APIError
		if errors.As(err, &apiErr) {
			code := http.StatusBadGateway
			if apiErr.Kind == utils.KindConfigMissing {
				code = http.StatusServiceUnavailable
			}
			utils.RespondError(c, code, errors.New(apiErr.UserMessage()))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	cc.DB.Model(&models.Payment{}).
		Where("order_id = ?", order.ID).
		Updates(map[string]interface{}{
			"method":       models.MethodQRIS,
			"qr_string":    charge.QRString,
			"reference_id": charge.ReferenceID,
		})

	utils.RespondJSON(c, http.StatusCreated, "QRIS charge created", charge)
}

var dashboardUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Dashboard -> websocket antrian kasir. Tiap koneksi memiliki Refresher
// sendiri (polling 5 detik) yang berhenti saat koneksi ditutup; hub hanya
// meneruskan snapshot hasil polling.
func (cc *CashierOrderController) Dashboard(c *gin.Context) {
	tenantID := tenantIDFromContext(c)
	role, _ := c.Get("role")

	conn, err := dashboardUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("upgrade websocket gagal: %v", err)
		return
	}

	roleStr, _ := role.(string)
	cc.Hub.RegisterClient(conn, tenantID, roleStr)

	refresher := services.NewRefresher(cc.Repo, tenantID, cc.Hub.BroadcastSnapshot)
	refresher.Start()

	defer func() {
		refresher.Stop()
		cc.Hub.UnregisterClient(conn)
	}()

	// Pesan masuk dari dashboard hanya untuk memilih order yang panel
	// detailnya terbuka.
	for {
		var msg struct {
			OpenOrderID uint `json:"open_order_id"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.OpenOrderID == 0 {
			refresher.ClearOpenOrder()
		} else {
			refresher.SetOpenOrder(msg.OpenOrderID)
		}
	}
}

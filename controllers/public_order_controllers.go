package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/services"
	"github.com/pandukusuma/qr-order-app/utils"
)

// Header yang membawa token sesi keranjang customer
const cartSessionHeader = "X-Cart-Session"

type PublicOrderController struct {
	DB        *gorm.DB
	Carts     *services.CartStore
	Repo      services.OrderRepository
	Workflow  *services.OrderWorkflow
	UploadDir string
}

func NewPublicOrderController(db *gorm.DB, carts *services.CartStore, repo services.OrderRepository, workflow *services.OrderWorkflow, uploadDir string) *PublicOrderController {
	return &PublicOrderController{
		DB:        db,
		Carts:     carts,
		Repo:      repo,
		Workflow:  workflow,
		UploadDir: uploadDir,
	}
}

// GetMenu -> etalase menu per kategori untuk customer
func (pc *PublicOrderController) GetMenu(c *gin.Context) {
	tenant, err := tenantBySlug(pc.DB, c.Param("tenant"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var categories []models.MenuCategory
	if err := pc.DB.Where("tenant_id = ?", tenant.ID).
		Order("sort_order ASC").Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type menuView struct {
		models.Menu
		Badges []string `json:"badges"`
	}
	type categoryView struct {
		models.MenuCategory
		Menus []menuView `json:"menus"`
	}

	out := make([]categoryView, 0, len(categories))
	for _, cat := range categories {
		var menus []models.Menu
		if err := pc.DB.Preload("OptionGroups.OptionItems", "is_active = ?", true).
			Where("tenant_id = ? AND category_id = ? AND is_available = ?", tenant.ID, cat.ID, true).
			Find(&menus).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}

		view := categoryView{MenuCategory: cat}
		for _, m := range menus {
			view.Menus = append(view.Menus, menuView{Menu: m, Badges: m.Badges()})
		}
		out = append(out, view)
	}

	utils.RespondJSON(c, http.StatusOK, "Menu list", gin.H{
		"tenant":     gin.H{"name": tenant.Name, "slug": tenant.Slug},
		"categories": out,
	})
}

// ScanTable -> resolve meja dari QR dan terbitkan token sesi keranjang
func (pc *PublicOrderController) ScanTable(c *gin.Context) {
	tenant, err := tenantBySlug(pc.DB, c.Param("tenant"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var table models.Table
	if err := pc.DB.Where("tenant_id = ? AND qr_token = ?", tenant.ID, c.Param("qr_token")).
		First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrTableNotFound)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table resolved", gin.H{
		"table":         table,
		"cart_session":  uuid.NewString(),
		"bank_accounts": tenant.BankAccounts,
		"qris_enabled":  tenant.QRISEnabled,
	})
}

// AddCartLine -> tambah baris keranjang; validasi option group dulu
func (pc *PublicOrderController) AddCartLine(c *gin.Context) {
	tenant, err := tenantBySlug(pc.DB, c.Param("tenant"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	session := c.GetHeader(cartSessionHeader)
	if session == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("sesi keranjang tidak ditemukan, scan ulang QR meja"))
		return
	}

	var payload services.AddLinePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var menu models.Menu
	if err := pc.DB.Preload("OptionGroups.OptionItems", "is_active = ?", true).
		Where("tenant_id = ? AND is_available = ?", tenant.ID, true).
		First(&menu, payload.MenuID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu tidak ditemukan"))
		return
	}

	if err := services.ValidateSelections(menu.OptionGroups, payload.OptionItemIDs); err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	}

	options := make([]models.OptionItem, 0)
	for _, group := range menu.OptionGroups {
		options = append(options, group.OptionItems...)
	}

	line := pc.Carts.Add(session, payload, menu, options)
	utils.RespondJSON(c, http.StatusCreated, "Line added to cart", gin.H{
		"line":    line,
		"summary": pc.Carts.Summary(session),
	})
}

// RemoveCartLine -> hapus baris berdasarkan client id
func (pc *PublicOrderController) RemoveCartLine(c *gin.Context) {
	session := c.GetHeader(cartSessionHeader)
	if !pc.Carts.Remove(session, c.Param("client_id")) {
		utils.RespondError(c, http.StatusNotFound, errors.New("baris keranjang tidak ditemukan"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Line removed", gin.H{
		"summary": pc.Carts.Summary(session),
	})
}

// GetCartSummary -> isi keranjang + ringkasan
func (pc *PublicOrderController) GetCartSummary(c *gin.Context) {
	session := c.GetHeader(cartSessionHeader)
	utils.RespondJSON(c, http.StatusOK, "Cart summary", gin.H{
		"lines":   pc.Carts.Lines(session),
		"summary": pc.Carts.Summary(session),
	})
}

// Checkout -> jalankan flow checkout dari isi keranjang sesi ini.
// Form multipart boleh menyertakan file "proof" untuk metode transfer;
// create-order dan upload-proof dijalankan berurutan oleh flow.
func (pc *PublicOrderController) Checkout(c *gin.Context) {
	tenant, err := tenantBySlug(pc.DB, c.Param("tenant"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	session := c.GetHeader(cartSessionHeader)
	if session == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("sesi keranjang tidak ditemukan, scan ulang QR meja"))
		return
	}

	form := services.CheckoutForm{}
	qrToken := ""

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		qrToken = c.PostForm("qr_token")
		form.CustomerName = c.PostForm("customer_name")
		form.CustomerNote = c.PostForm("customer_note")
		form.PaymentMethod = c.PostForm("payment_method")
		form.BankChoice = c.PostForm("bank_choice")

		if file, err := c.FormFile("proof"); err == nil {
			dst := filepath.Join(pc.UploadDir, fmt.Sprintf("proof-%s%s", uuid.NewString(), filepath.Ext(file.Filename)))
			if err := c.SaveUploadedFile(file, dst); err != nil {
				utils.RespondError(c, http.StatusInternalServerError, err)
				return
			}
			form.ProofFilePath = dst
		}
	} else {
		var body struct {
			QRToken string `json:"qr_token"`
			services.CheckoutForm
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		qrToken = body.QRToken
		form = body.CheckoutForm
	}

	flow := services.NewCheckoutFlow(pc.Repo, pc.Carts, tenant.ID, session, qrToken)
	result, err := flow.Submit(form)
	if err != nil {
		var vErr *services.ValidationError
		switch {
		case errors.As(err, &vErr):
			utils.RespondError(c, http.StatusUnprocessableEntity, vErr)
		case errors.Is(err, services.ErrTableNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		case errors.Is(err, services.ErrOutOfStock):
			utils.RespondError(c, http.StatusConflict, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.RespondJSON(c, http.StatusCreated, result.Message, result)
}

// UploadProof -> unggah (ulang) bukti transfer untuk order yang sudah ada
func (pc *PublicOrderController) UploadProof(c *gin.Context) {
	tenant, err := tenantBySlug(pc.DB, c.Param("tenant"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	file, err := c.FormFile("proof")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("file bukti pembayaran wajib dilampirkan"))
		return
	}

	dst := filepath.Join(pc.UploadDir, fmt.Sprintf("proof-%s%s", uuid.NewString(), filepath.Ext(file.Filename)))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var amount float64
	fmt.Sscanf(c.PostForm("amount"), "%f", &amount)

	proof := services.ProofInput{
		FilePath: dst,
		Method:   c.PostForm("method"),
		Amount:   amount,
		BankName: c.PostForm("bank_name"),
	}

	if err := pc.Repo.AttachProof(tenant.ID, c.Param("order_code"), proof); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Bukti pembayaran diterima, menunggu verifikasi staff", nil)
}

// TrackOrder -> halaman pelacakan order customer
func (pc *PublicOrderController) TrackOrder(c *gin.Context) {
	tenant, err := tenantBySlug(pc.DB, c.Param("tenant"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	order, err := pc.Repo.GetOrderByCode(tenant.ID, c.Param("order_code"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// PaymentCallback menerima notifikasi status transaksi dari gateway QRIS.
func (pc *PublicOrderController) PaymentCallback(c *gin.Context) {
	var notif struct {
		OrderID           string `json:"order_id" binding:"required"`
		TransactionStatus string `json:"transaction_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&notif); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := pc.DB.Where("order_code = ?", notif.OrderID).First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrOrderNotFound)
		return
	}

	next := services.MapGatewayStatus(notif.TransactionStatus)
	if next == order.PaymentStatus {
		utils.RespondJSON(c, http.StatusOK, "No change", nil)
		return
	}

	updated, err := pc.Workflow.UpdatePayment(order.TenantID, order.ID, next)
	if err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}

	utils.InfoLogger.Printf("Payment callback %s -> %s untuk order %s", notif.TransactionStatus, next, order.OrderCode)
	utils.RespondJSON(c, http.StatusOK, "Payment status updated", gin.H{
		"order_code":     updated.OrderCode,
		"payment_status": updated.PaymentStatus,
	})
}

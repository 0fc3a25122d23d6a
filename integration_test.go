package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pandukusuma/qr-order-app/config"
	"github.com/pandukusuma/qr-order-app/live"
	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/router"
	"github.com/pandukusuma/qr-order-app/services"
	"github.com/pandukusuma/qr-order-app/utils"
)

// Test end-to-end: scan meja -> keranjang -> checkout transfer -> upload
// bukti -> verifikasi kasir -> order berjalan sampai completed dengan struk
// tercetak otomatis.
func TestOrderLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.AutoMigrate(db))

	// --- seed minimal satu tenant ---
	plan := models.Plan{Code: "basic", Name: "Basic"}
	require.NoError(t, db.Create(&plan).Error)

	tenant := models.Tenant{Name: "Warung Integrasi", Slug: "warung", PlanID: plan.ID, IsActive: true}
	require.NoError(t, db.Create(&tenant).Error)

	table := models.Table{TenantID: tenant.ID, TableNumber: "3", QRToken: "qr-meja-3", Status: "available"}
	require.NoError(t, db.Create(&table).Error)

	category := models.MenuCategory{TenantID: tenant.ID, Name: "Makanan"}
	require.NoError(t, db.Create(&category).Error)

	menu := models.Menu{TenantID: tenant.ID, CategoryID: category.ID, Name: "Mie Ayam", Price: 20000, IsAvailable: true}
	require.NoError(t, db.Create(&menu).Error)

	hashed, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	require.NoError(t, err)
	cashier := models.User{TenantID: &tenant.ID, Name: "Kasir", Email: "kasir@warung.test", Password: string(hashed), Role: models.RoleCashier}
	require.NoError(t, db.Create(&cashier).Error)

	cashierToken, err := utils.GenerateToken(cashier.ID, tenant.ID, cashier.Role)
	require.NoError(t, err)

	repo := services.NewGormOrderRepository(db)
	printer := services.NewInvoicePrinter(
		&services.FileSpoolDriver{Dir: t.TempDir()},
		repo,
		func(tenantID uint) (*models.Tenant, error) {
			var found models.Tenant
			if err := db.First(&found, tenantID).Error; err != nil {
				return nil, err
			}
			return &found, nil
		},
	)

	engine := router.SetupRouter(router.Deps{
		DB:        db,
		Carts:     services.NewCartStore(0),
		Repo:      repo,
		Workflow:  services.NewOrderWorkflow(repo, printer),
		Printer:   printer,
		Gateway:   services.NewPaymentGateway(),
		Hub:       live.NewHub(),
		UploadDir: t.TempDir(),
	})

	type envelope struct {
		Status  bool            `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	do := func(method, path, token string, body interface{}, headers map[string]string) (int, envelope) {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		var resp envelope
		if w.Body.Len() > 0 {
			_ = json.Unmarshal(w.Body.Bytes(), &resp)
		}
		return w.Code, resp
	}

	// 1. Customer scan QR meja
	code, resp := do(http.MethodGet, "/api/public/warung/scan/qr-meja-3", "", nil, nil)
	require.Equal(t, http.StatusOK, code)

	var scan struct {
		CartSession string `json:"cart_session"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &scan))
	session := map[string]string{"X-Cart-Session": scan.CartSession}

	// 2. Tambah ke keranjang
	code, _ = do(http.MethodPost, "/api/public/warung/cart/lines", "", gin.H{
		"menu_id": menu.ID, "quantity": 2,
	}, session)
	require.Equal(t, http.StatusCreated, code)

	// 3. Checkout metode transfer tanpa bukti -> validasi menolak
	code, _ = do(http.MethodPost, "/api/public/warung/checkout", "", gin.H{
		"qr_token":       table.QRToken,
		"customer_name":  "Siti",
		"payment_method": models.MethodTransfer,
	}, session)
	require.Equal(t, http.StatusUnprocessableEntity, code)

	// 4. Keranjang masih utuh setelah percobaan gagal; checkout ulang sukses.
	// Bukti transfer menyusul lewat endpoint upload-proof (langkah 5).
	code, resp = do(http.MethodPost, "/api/public/warung/checkout", "", gin.H{
		"qr_token":       table.QRToken,
		"customer_name":  "Siti",
		"payment_method": models.MethodCash,
	}, session)
	require.Equal(t, http.StatusCreated, code)

	var checkout services.CheckoutResult
	require.NoError(t, json.Unmarshal(resp.Data, &checkout))
	require.Equal(t, services.OutcomeSuccess, checkout.Outcome)
	orderCode := checkout.OrderCode

	var order models.Order
	require.NoError(t, db.Where("order_code = ?", orderCode).First(&order).Error)
	assert.Equal(t, 40000.0, order.TotalAmount)

	// 5. Customer mengunggah bukti transfer lewat endpoint retry
	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("proof", "bukti.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("isi-gambar-bukti"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("method", models.MethodTransfer))
	require.NoError(t, writer.WriteField("bank_name", "BCA"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/public/warung/orders/"+orderCode+"/proof", &form)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.Where("order_code = ?", orderCode).First(&order).Error)
	assert.Equal(t, models.PaymentWaitingVerification, order.PaymentStatus)

	orderPath := fmt.Sprintf("/api/cashier/orders/%d", order.ID)

	// 6. Kasir belum boleh menerima order sebelum pembayaran diverifikasi
	code, _ = do(http.MethodPatch, orderPath+"/status", cashierToken, gin.H{
		"order_status": models.OrderAccepted,
	}, nil)
	require.Equal(t, http.StatusUnprocessableEntity, code)

	// 7. Kasir memverifikasi pembayaran
	code, _ = do(http.MethodPatch, orderPath+"/payment", cashierToken, gin.H{
		"payment_status": models.PaymentPaid,
	}, nil)
	require.Equal(t, http.StatusOK, code)

	// 8. Order berjalan sampai ready; struk tercetak otomatis
	for _, status := range []string{models.OrderAccepted, models.OrderPreparing, models.OrderReady} {
		code, _ = do(http.MethodPatch, orderPath+"/status", cashierToken, gin.H{
			"order_status": status,
		}, nil)
		require.Equal(t, http.StatusOK, code, "gagal transisi ke %s", status)
	}

	require.Eventually(t, func() bool {
		var check models.Order
		if err := db.First(&check, order.ID).Error; err != nil {
			return false
		}
		return check.InvoicePrintedAt != nil
	}, 5*time.Second, 20*time.Millisecond, "struk harus tercetak otomatis saat ready+paid")

	// 9. Selesaikan order; struk sudah tercetak jadi tidak perlu force
	code, _ = do(http.MethodPatch, orderPath+"/status", cashierToken, gin.H{
		"order_status": models.OrderCompleted,
	}, nil)
	require.Equal(t, http.StatusOK, code)

	// 10. Customer masih bisa melihat order lewat halaman tracking
	code, resp = do(http.MethodGet, "/api/public/warung/orders/"+orderCode, "", nil, nil)
	require.Equal(t, http.StatusOK, code)

	var tracked models.Order
	require.NoError(t, json.Unmarshal(resp.Data, &tracked))
	assert.Equal(t, models.OrderCompleted, tracked.OrderStatus)
	assert.Equal(t, models.PaymentPaid, tracked.PaymentStatus)

	// Terminal: tidak ada transisi keluar dari completed
	code, _ = do(http.MethodPatch, orderPath+"/status", cashierToken, gin.H{
		"order_status": models.OrderCanceled,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandukusuma/qr-order-app/models"
)

// countingRepo menghitung panggilan supaya test bisa membuktikan bahwa
// validasi yang gagal tidak menyentuh repository sama sekali.
type countingRepo struct {
	createCalls int
	proofCalls  int

	createErr error
	proofErr  error
}

func (r *countingRepo) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	r.createCalls++
	if r.createErr != nil {
		return nil, r.createErr
	}
	return &models.Order{ID: 1, TenantID: input.TenantID, OrderCode: "ORD-20250101-000001", TotalAmount: 46000}, nil
}

func (r *countingRepo) AttachProof(tenantID uint, orderCode string, proof ProofInput) error {
	r.proofCalls++
	return r.proofErr
}

func (r *countingRepo) GetOrderByCode(tenantID uint, orderCode string) (*models.Order, error) {
	return nil, ErrOrderNotFound
}
func (r *countingRepo) GetOrderByID(tenantID, orderID uint) (*models.Order, error) {
	return nil, ErrOrderNotFound
}
func (r *countingRepo) ListOrders(tenantID uint) ([]models.Order, error)      { return nil, nil }
func (r *countingRepo) UpdateOrderStatus(orderID uint, status string) error   { return nil }
func (r *countingRepo) UpdatePaymentStatus(orderID uint, status string) error { return nil }
func (r *countingRepo) MarkInvoicePrinted(orderID uint, printedAt time.Time) error {
	return nil
}

func cartWithOneLine(t *testing.T) (*CartStore, string) {
	t.Helper()
	carts := NewCartStore(time.Hour)
	menu := models.Menu{ID: 1, Name: "Kopi Susu", Price: 18000}
	carts.Add("sesi", AddLinePayload{MenuID: 1, Quantity: 1}, menu, nil)
	return carts, "sesi"
}

func TestCheckoutOpenResetsMethod(t *testing.T) {
	flow := NewCheckoutFlow(&countingRepo{}, NewCartStore(time.Hour), 1, "sesi", "qr")

	assert.Equal(t, CheckoutIdle, flow.State())
	assert.Equal(t, models.MethodCash, flow.PaymentMethod())
}

func TestCheckoutValidationDoesNotTouchRepo(t *testing.T) {
	t.Run("keranjang kosong", func(t *testing.T) {
		repo := &countingRepo{}
		flow := NewCheckoutFlow(repo, NewCartStore(time.Hour), 1, "sesi", "qr")

		_, err := flow.Submit(CheckoutForm{CustomerName: "Budi"})

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, 0, repo.createCalls)
		assert.Equal(t, 0, repo.proofCalls)
		assert.Equal(t, CheckoutIdle, flow.State())
	})

	t.Run("nama kosong", func(t *testing.T) {
		repo := &countingRepo{}
		carts, sesi := cartWithOneLine(t)
		flow := NewCheckoutFlow(repo, carts, 1, sesi, "qr")

		_, err := flow.Submit(CheckoutForm{})

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "customer_name", vErr.Field)
		assert.Equal(t, 0, repo.createCalls)
	})

	t.Run("transfer tanpa bukti", func(t *testing.T) {
		repo := &countingRepo{}
		carts, sesi := cartWithOneLine(t)
		flow := NewCheckoutFlow(repo, carts, 1, sesi, "qr")

		_, err := flow.Submit(CheckoutForm{
			CustomerName:  "Budi",
			PaymentMethod: models.MethodTransfer,
		})

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "proof", vErr.Field)
		assert.Equal(t, 0, repo.createCalls)
		assert.Equal(t, 0, repo.proofCalls)
	})
}

func TestCheckoutSuccessClearsCart(t *testing.T) {
	repo := &countingRepo{}
	carts, sesi := cartWithOneLine(t)
	flow := NewCheckoutFlow(repo, carts, 1, sesi, "qr")

	result, err := flow.Submit(CheckoutForm{CustomerName: "Budi"})

	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, result.Outcome)
	assert.Equal(t, "ORD-20250101-000001", result.OrderCode)
	assert.Equal(t, 1, repo.createCalls)
	assert.Equal(t, 0, repo.proofCalls)
	assert.Equal(t, CheckoutSuccess, flow.State())
	assert.Empty(t, carts.Lines(sesi))
}

func TestCheckoutCreateFailureKeepsCart(t *testing.T) {
	repo := &countingRepo{createErr: errors.New("database mati")}
	carts, sesi := cartWithOneLine(t)
	flow := NewCheckoutFlow(repo, carts, 1, sesi, "qr")

	_, err := flow.Submit(CheckoutForm{CustomerName: "Budi"})

	require.Error(t, err)
	assert.Equal(t, CheckoutFailed, flow.State())
	// Upload bukti dilewati sepenuhnya bila create gagal
	assert.Equal(t, 0, repo.proofCalls)
	// Keranjang tidak disentuh supaya customer bisa retry
	assert.Len(t, carts.Lines(sesi), 1)
}

func TestCheckoutTransferUploadsProofAfterCreate(t *testing.T) {
	repo := &countingRepo{}
	carts, sesi := cartWithOneLine(t)
	flow := NewCheckoutFlow(repo, carts, 1, sesi, "qr")

	result, err := flow.Submit(CheckoutForm{
		CustomerName:  "Budi",
		PaymentMethod: models.MethodTransfer,
		BankChoice:    "BCA",
		ProofFilePath: "uploads/proof-abc.jpg",
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, result.Outcome)
	assert.Equal(t, 1, repo.createCalls)
	assert.Equal(t, 1, repo.proofCalls)
	assert.Empty(t, carts.Lines(sesi))
}

func TestCheckoutPartialSuccessWhenProofFails(t *testing.T) {
	repo := &countingRepo{proofErr: errors.New("storage penuh")}
	carts, sesi := cartWithOneLine(t)
	flow := NewCheckoutFlow(repo, carts, 1, sesi, "qr")

	result, err := flow.Submit(CheckoutForm{
		CustomerName:  "Budi",
		PaymentMethod: models.MethodTransfer,
		ProofFilePath: "uploads/proof-abc.jpg",
	})

	// Order sudah ada di server, jadi bukan error: outcome partial_success,
	// keranjang tetap dibersihkan.
	require.NoError(t, err)
	assert.Equal(t, OutcomePartialSuccess, result.Outcome)
	assert.Equal(t, "ORD-20250101-000001", result.OrderCode)
	assert.Equal(t, CheckoutSuccess, flow.State())
	assert.Empty(t, carts.Lines(sesi))
}

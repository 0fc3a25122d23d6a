package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/utils"
)

// fakeDriver memberi test kendali penuh atas sinyal start/selesai printer.
type fakeDriver struct {
	started chan struct{}
	done    chan struct{}
	prints  int
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		started: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (d *fakeDriver) Print(orderCode string, doc []byte) (*PrintHandle, error) {
	d.prints++
	return &PrintHandle{Started: d.started, Done: d.done}, nil
}

func printableOrder() *models.Order {
	return &models.Order{
		ID:        1,
		TenantID:  1,
		OrderCode: "ORD-20250101-000001",
		OrderItems: []models.OrderItem{
			{MenuName: "Kopi Susu", Price: 18000, Quantity: 2, Subtotal: 36000},
		},
		TotalAmount: 36000,
		CreatedAt:   time.Now(),
	}
}

func newTestPrinter(driver PrintDriver, repo OrderRepository) (*InvoicePrinter, chan PrintResult) {
	printer := NewInvoicePrinter(driver, repo, func(tenantID uint) (*models.Tenant, error) {
		return &models.Tenant{ID: tenantID, Name: "Kopi Demo", WifiSSID: "KopiDemo", WifiPassword: "rahasia"}, nil
	})
	printer.StartTimeout = 50 * time.Millisecond
	printer.FinishTimeout = 50 * time.Millisecond

	results := make(chan PrintResult, 1)
	printer.OnComplete = func(result PrintResult) { results <- result }
	return printer, results
}

func waitResult(t *testing.T, results chan PrintResult) PrintResult {
	t.Helper()
	select {
	case result := <-results:
		return result
	case <-time.After(2 * time.Second):
		t.Fatal("sequence cetak tidak pernah selesai")
		return PrintResult{}
	}
}

func TestPrinterMarksPrintedOnlyAfterStartSignal(t *testing.T) {
	driver := newFakeDriver()
	repo := &stubOrderRepo{order: models.Order{ID: 1, TenantID: 1}}
	printer, results := newTestPrinter(driver, repo)

	require.NoError(t, printer.Begin(printableOrder()))
	assert.True(t, printer.InProgress())

	close(driver.started)
	close(driver.done)

	result := waitResult(t, results)
	assert.True(t, result.Started)
	assert.True(t, result.Printed)
	assert.NotNil(t, repo.order.InvoicePrintedAt)
	assert.False(t, printer.InProgress())
}

func TestPrinterStartTimeoutDoesNotMarkPrinted(t *testing.T) {
	driver := newFakeDriver()
	repo := &stubOrderRepo{order: models.Order{ID: 1, TenantID: 1}}
	printer, results := newTestPrinter(driver, repo)

	require.NoError(t, printer.Begin(printableOrder()))

	// Sinyal start tidak pernah datang (dialog dibatalkan / printer mati)
	result := waitResult(t, results)
	assert.False(t, result.Started)
	assert.False(t, result.Printed)

	var timeoutErr *utils.APIError
	require.ErrorAs(t, result.Err, &timeoutErr)
	assert.Equal(t, utils.KindTimeout, timeoutErr.Kind)

	// Invoice TIDAK ditandai tercetak
	assert.Nil(t, repo.order.InvoicePrintedAt)
	assert.False(t, printer.InProgress())
}

func TestPrinterFinishTimeoutStillMarksPrinted(t *testing.T) {
	driver := newFakeDriver()
	repo := &stubOrderRepo{order: models.Order{ID: 1, TenantID: 1}}
	printer, results := newTestPrinter(driver, repo)

	require.NoError(t, printer.Begin(printableOrder()))

	// Start datang, sinyal selesai tidak pernah: pencetakan sudah mulai jadi
	// tetap dianggap selesai.
	close(driver.started)

	result := waitResult(t, results)
	assert.True(t, result.Started)
	assert.True(t, result.Printed)
	assert.NotNil(t, repo.order.InvoicePrintedAt)
}

func TestPrinterRejectsReentry(t *testing.T) {
	driver := newFakeDriver()
	repo := &stubOrderRepo{order: models.Order{ID: 1, TenantID: 1}}
	printer, results := newTestPrinter(driver, repo)

	require.NoError(t, printer.Begin(printableOrder()))

	// Sequence masih berjalan: Begin kedua ditolak dan driver tidak
	// menerima dokumen kedua.
	err := printer.Begin(printableOrder())
	assert.ErrorIs(t, err, ErrPrintInProgress)
	assert.Equal(t, 1, driver.prints)

	close(driver.started)
	close(driver.done)
	waitResult(t, results)

	// Setelah selesai, sequence baru boleh dimulai lagi
	driver2 := newFakeDriver()
	printer2, _ := newTestPrinter(driver2, repo)
	assert.NoError(t, printer2.Begin(printableOrder()))
}

func TestPrinterRequiresItemsAndSettings(t *testing.T) {
	driver := newFakeDriver()
	repo := &stubOrderRepo{order: models.Order{ID: 1, TenantID: 1}}

	t.Run("order tanpa item", func(t *testing.T) {
		printer, _ := newTestPrinter(driver, repo)
		order := printableOrder()
		order.OrderItems = nil

		err := printer.Begin(order)
		require.Error(t, err)
		assert.False(t, printer.InProgress())
		assert.Equal(t, 0, driver.prints)
	})

	t.Run("pengaturan tenant gagal dimuat", func(t *testing.T) {
		printer := NewInvoicePrinter(driver, repo, func(tenantID uint) (*models.Tenant, error) {
			return nil, ErrOrderNotFound
		})

		err := printer.Begin(printableOrder())
		require.Error(t, err)
		assert.Equal(t, 0, driver.prints)
	})
}

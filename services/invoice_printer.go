package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/utils"
)

// ErrPrintInProgress: hanya satu sequence cetak yang boleh berjalan.
// Percobaan re-entry selama sequence aktif adalah no-op.
var ErrPrintInProgress = errors.New("pencetakan struk sedang berjalan")

// PrintHandle memberi tahu orchestrator kapan pencetakan benar-benar mulai
// dan kapan selesai.
type PrintHandle struct {
	Started <-chan struct{}
	Done    <-chan struct{}
}

// PrintDriver mengirim dokumen struk ke printer.
type PrintDriver interface {
	Print(orderCode string, doc []byte) (*PrintHandle, error)
}

// FileSpoolDriver menulis PDF struk ke direktori spool lokal. Start dan done
// disinyalkan begitu file selesai ditulis.
type FileSpoolDriver struct {
	Dir string
}

func (d *FileSpoolDriver) Print(orderCode string, doc []byte) (*PrintHandle, error) {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("invoice-%s-%d.pdf", orderCode, time.Now().UnixNano())
	path := filepath.Join(d.Dir, name)

	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		close(started)
		if err := os.WriteFile(path, doc, 0o644); err != nil {
			if utils.ErrorLogger != nil {
				utils.ErrorLogger.Printf("gagal menulis spool struk %s: %v", path, err)
			}
		}
		close(done)
	}()

	return &PrintHandle{Started: started, Done: done}, nil
}

type printerState int

const (
	printerIdle printerState = iota
	printerInProgress
)

type PrintResult struct {
	OrderID   uint
	TenantID  uint
	OrderCode string
	// Started true hanya bila driver memberi sinyal start sebelum timeout.
	Started bool
	// Printed true bila invoice berhasil ditandai tercetak di repository.
	Printed bool
	Err     error
}

// InvoicePrinter mengurutkan pencetakan struk: info WiFi (opsional), render
// PDF layout thermal 80mm, kirim ke driver, tunggu sinyal start/selesai, lalu
// tandai invoice tercetak -- hanya bila pencetakan benar-benar dimulai.
// State machine Idle/InProgress dengan satu pintu masuk (Begin) menggantikan
// flag boolean tersebar.
type InvoicePrinter struct {
	mu    sync.Mutex
	state printerState

	driver   PrintDriver
	repo     OrderRepository
	settings func(tenantID uint) (*models.Tenant, error)

	// Fallback bila sinyal start/selesai dari driver tidak pernah datang.
	StartTimeout  time.Duration
	FinishTimeout time.Duration

	// OnComplete dipanggil di akhir setiap sequence supaya UI dependen
	// (modal, refresh list) bisa reset.
	OnComplete func(PrintResult)
}

func NewInvoicePrinter(driver PrintDriver, repo OrderRepository, settings func(tenantID uint) (*models.Tenant, error)) *InvoicePrinter {
	return &InvoicePrinter{
		driver:        driver,
		repo:          repo,
		settings:      settings,
		StartTimeout:  10 * time.Second,
		FinishTimeout: 60 * time.Second,
	}
}

// Begin memulai satu sequence cetak. Mengembalikan ErrPrintInProgress bila
// sequence lain masih berjalan; precondition yang gagal membatalkan sequence
// sebelum dokumen dikirim ke driver.
func (p *InvoicePrinter) Begin(order *models.Order) error {
	p.mu.Lock()
	if p.state == printerInProgress {
		p.mu.Unlock()
		return ErrPrintInProgress
	}

	if p.settings == nil {
		p.mu.Unlock()
		return fmt.Errorf("pengaturan tenant belum dimuat")
	}
	tenant, err := p.settings(order.TenantID)
	if err != nil || tenant == nil {
		p.mu.Unlock()
		return fmt.Errorf("pengaturan tenant belum dimuat")
	}
	if len(order.OrderItems) == 0 {
		p.mu.Unlock()
		return fmt.Errorf("order tidak punya item, struk tidak bisa dicetak")
	}

	doc, err := BuildReceiptPDF(order, tenant)
	if err != nil {
		p.mu.Unlock()
		return fmt.Errorf("gagal merender struk: %w", err)
	}

	handle, err := p.driver.Print(order.OrderCode, doc)
	if err != nil {
		p.mu.Unlock()
		return err
	}

	p.state = printerInProgress
	p.mu.Unlock()

	go p.run(order, handle)
	return nil
}

func (p *InvoicePrinter) run(order *models.Order, handle *PrintHandle) {
	result := PrintResult{OrderID: order.ID, TenantID: order.TenantID, OrderCode: order.OrderCode}

	select {
	case <-handle.Started:
		result.Started = true
	case <-time.After(p.StartTimeout):
		// Dialog dibatalkan sebelum mulai: invoice TIDAK ditandai tercetak.
		result.Err = utils.NewTimeoutError("printer tidak pernah mulai mencetak")
		p.finish(result)
		return
	}

	select {
	case <-handle.Done:
	case <-time.After(p.FinishTimeout):
		// Sinyal selesai tidak datang; pencetakan sudah mulai jadi
		// diperlakukan selesai.
	}

	if err := p.repo.MarkInvoicePrinted(order.ID, time.Now()); err != nil {
		result.Err = err
	} else {
		result.Printed = true
	}
	p.finish(result)
}

func (p *InvoicePrinter) finish(result PrintResult) {
	p.mu.Lock()
	p.state = printerIdle
	p.mu.Unlock()

	if result.Err != nil && utils.ErrorLogger != nil {
		utils.ErrorLogger.Printf("sequence cetak struk %s berakhir dengan error: %v", result.OrderCode, result.Err)
	}
	if p.OnComplete != nil {
		p.OnComplete(result)
	}
}

// InProgress melaporkan apakah ada sequence yang sedang berjalan.
func (p *InvoicePrinter) InProgress() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == printerInProgress
}

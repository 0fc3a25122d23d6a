package services

import (
	"sync"
	"time"

	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/utils"
)

// OrderSnapshot adalah hasil satu putaran polling.
type OrderSnapshot struct {
	TenantID  uint           `json:"tenant_id"`
	Orders    []models.Order `json:"orders"`
	OpenOrder *models.Order  `json:"open_order,omitempty"`
	FetchedAt time.Time      `json:"fetched_at"`
}

// Refresher menarik ulang daftar order (dan detail order yang sedang dibuka)
// tiap interval tetap. Sengaja tanpa backoff dan tanpa jitter: ini aproksimasi
// lossy dari real-time sync, bukan push. Setiap view antrian kasir memiliki
// satu Refresher dan wajib memanggil Stop saat view ditutup.
type Refresher struct {
	repo     OrderRepository
	tenantID uint

	Interval   time.Duration
	OnSnapshot func(OrderSnapshot)

	mu          sync.Mutex
	openOrderID uint

	stop     chan struct{}
	stopOnce sync.Once
}

func NewRefresher(repo OrderRepository, tenantID uint, onSnapshot func(OrderSnapshot)) *Refresher {
	return &Refresher{
		repo:       repo,
		tenantID:   tenantID,
		Interval:   5 * time.Second,
		OnSnapshot: onSnapshot,
		stop:       make(chan struct{}),
	}
}

func (r *Refresher) Start() {
	go func() {
		ticker := time.NewTicker(r.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.refresh()
			case <-r.stop:
				return
			}
		}
	}()
}

// Stop membatalkan polling. Idempotent; aman dipanggil berkali-kali dari
// teardown view.
func (r *Refresher) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
}

// SetOpenOrder menandai order yang panel detailnya sedang terbuka sehingga
// detailnya ikut di-refresh tiap tick.
func (r *Refresher) SetOpenOrder(orderID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.openOrderID = orderID
}

func (r *Refresher) ClearOpenOrder() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.openOrderID = 0
}

func (r *Refresher) refresh() {
	orders, err := r.repo.ListOrders(r.tenantID)
	if err != nil {
		if utils.ErrorLogger != nil {
			utils.ErrorLogger.Printf("polling order list gagal: %v", err)
		}
		return
	}

	snapshot := OrderSnapshot{
		TenantID:  r.tenantID,
		Orders:    orders,
		FetchedAt: time.Now(),
	}

	r.mu.Lock()
	openID := r.openOrderID
	r.mu.Unlock()

	if openID != 0 {
		detail, err := r.repo.GetOrderByID(r.tenantID, openID)
		if err == nil {
			snapshot.OpenOrder = detail
		}
	}

	if r.OnSnapshot != nil {
		r.OnSnapshot(snapshot)
	}
}

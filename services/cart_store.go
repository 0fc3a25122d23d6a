package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pandukusuma/qr-order-app/models"
)

// AddLinePayload adalah payload minimal dari client untuk "add to cart".
type AddLinePayload struct {
	MenuID        uint   `json:"menu_id" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
	OptionItemIDs []uint `json:"option_item_ids"`
	Note          string `json:"note"`
}

type cartSession struct {
	lines     []models.CartLine
	lastTouch time.Time
}

// CartStore menampung keranjang per sesi browsing di memory.
// Tidak ada satupun baris yang dipersist ke database sampai checkout.
type CartStore struct {
	mu       sync.RWMutex
	sessions map[string]*cartSession
	ttl      time.Duration
}

func NewCartStore(ttl time.Duration) *CartStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &CartStore{
		sessions: make(map[string]*cartSession),
		ttl:      ttl,
	}
}

// Add memperkaya payload minimal dengan client id baru, nama menu, label
// option, dan harga yang sudah di-resolve penuh lewat ComputeLineTotal.
// Invariant: keranjang tidak pernah berisi baris setengah jadi.
func (cs *CartStore) Add(sessionToken string, payload AddLinePayload, menu models.Menu, options []models.OptionItem) models.CartLine {
	line := models.CartLine{
		ClientID:      uuid.NewString(),
		MenuID:        payload.MenuID,
		Quantity:      payload.Quantity,
		OptionItemIDs: payload.OptionItemIDs,
		Note:          payload.Note,
		DisplayName:   menu.Name,
		OptionLabels:  ResolveOptionLabels(payload.OptionItemIDs, options),
		DisplayPrice:  ComputeLineTotal(menu, payload.Quantity, payload.OptionItemIDs, options),
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	sess, ok := cs.sessions[sessionToken]
	if !ok {
		sess = &cartSession{}
		cs.sessions[sessionToken] = sess
	}
	sess.lines = append(sess.lines, line)
	sess.lastTouch = time.Now()

	return line
}

// Remove membuang baris berdasarkan client id. Mengembalikan false jika
// baris tidak ditemukan.
func (cs *CartStore) Remove(sessionToken, clientID string) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	sess, ok := cs.sessions[sessionToken]
	if !ok {
		return false
	}

	kept := sess.lines[:0]
	removed := false
	for _, line := range sess.lines {
		if line.ClientID == clientID {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	sess.lines = kept
	sess.lastTouch = time.Now()

	return removed
}

// Lines mengembalikan salinan baris keranjang, urut sesuai penambahan.
func (cs *CartStore) Lines(sessionToken string) []models.CartLine {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	sess, ok := cs.sessions[sessionToken]
	if !ok {
		return nil
	}
	out := make([]models.CartLine, len(sess.lines))
	copy(out, sess.lines)
	return out
}

// Summary -> jumlah baris dan total semua display price.
func (cs *CartStore) Summary(sessionToken string) models.CartSummary {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	sess, ok := cs.sessions[sessionToken]
	if !ok {
		return models.CartSummary{}
	}

	summary := models.CartSummary{Items: len(sess.lines)}
	for _, line := range sess.lines {
		summary.Total += line.DisplayPrice
	}
	return summary
}

// Clear mengosongkan keranjang satu sesi (dipanggil setelah checkout sukses).
func (cs *CartStore) Clear(sessionToken string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	delete(cs.sessions, sessionToken)
}

// Sweep membuang sesi yang sudah idle melewati TTL.
func (cs *CartStore) Sweep() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cutoff := time.Now().Add(-cs.ttl)
	for token, sess := range cs.sessions {
		if sess.lastTouch.Before(cutoff) {
			delete(cs.sessions, token)
		}
	}
}

// StartSweeper menjalankan Sweep secara periodik sampai stop channel ditutup.
func (cs *CartStore) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cs.Sweep()
			case <-stop:
				return
			}
		}
	}()
}

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandukusuma/qr-order-app/models"
)

func TestCartStoreAddRemove(t *testing.T) {
	store := NewCartStore(time.Hour)
	menu := models.Menu{ID: 1, Name: "Kopi Susu", Price: 18000}
	options := []models.OptionItem{{ID: 7, Label: "Large", ExtraPrice: 5000}}

	line := store.Add("sesi-a", AddLinePayload{MenuID: 1, Quantity: 2, OptionItemIDs: []uint{7}}, menu, options)

	// Baris yang masuk keranjang sudah ter-resolve penuh
	assert.NotEmpty(t, line.ClientID)
	assert.Equal(t, "Kopi Susu", line.DisplayName)
	assert.Equal(t, []string{"Large"}, line.OptionLabels)
	assert.Equal(t, 46000.0, line.DisplayPrice)

	summary := store.Summary("sesi-a")
	assert.Equal(t, 1, summary.Items)
	assert.Equal(t, 46000.0, summary.Total)

	// Remove dengan client id yang salah tidak mengubah apa pun
	assert.False(t, store.Remove("sesi-a", "bukan-client-id"))
	assert.Equal(t, 1, store.Summary("sesi-a").Items)

	// Remove adalah kebalikan add: keranjang kembali kosong
	assert.True(t, store.Remove("sesi-a", line.ClientID))
	assert.Equal(t, models.CartSummary{}, store.Summary("sesi-a"))
	assert.Empty(t, store.Lines("sesi-a"))
}

func TestCartStoreSessionIsolation(t *testing.T) {
	store := NewCartStore(time.Hour)
	menu := models.Menu{ID: 1, Name: "Americano", Price: 15000}

	store.Add("sesi-a", AddLinePayload{MenuID: 1, Quantity: 1}, menu, nil)
	store.Add("sesi-b", AddLinePayload{MenuID: 1, Quantity: 3}, menu, nil)

	assert.Equal(t, 15000.0, store.Summary("sesi-a").Total)
	assert.Equal(t, 45000.0, store.Summary("sesi-b").Total)

	store.Clear("sesi-a")
	assert.Empty(t, store.Lines("sesi-a"))
	assert.Len(t, store.Lines("sesi-b"), 1)
}

func TestCartStoreSweep(t *testing.T) {
	store := NewCartStore(time.Millisecond)
	menu := models.Menu{ID: 1, Name: "Americano", Price: 15000}

	store.Add("sesi-lama", AddLinePayload{MenuID: 1, Quantity: 1}, menu, nil)
	require.Len(t, store.Lines("sesi-lama"), 1)

	time.Sleep(5 * time.Millisecond)
	store.Sweep()

	assert.Empty(t, store.Lines("sesi-lama"))
}

package live

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/pandukusuma/qr-order-app/services"
	"github.com/pandukusuma/qr-order-app/utils"
)

// Event types
const (
	EventOrderSnapshot = "order_snapshot"
	EventInvoiceResult = "invoice_print_result"
	EventStaffNotif    = "staff_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type client struct {
	tenantID uint
	role     string
}

// Hub menampung koneksi dashboard kasir/admin per tenant. Hub hanya
// meneruskan snapshot yang sudah ditarik oleh Refresher -- polling tetap
// menjadi mekanisme sinkronisasi, hub sekadar fan-out.
type Hub struct {
	clients map[*websocket.Conn]client
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]client),
	}
}

// RegisterClient menambahkan koneksi dashboard untuk satu tenant.
func (h *Hub) RegisterClient(conn *websocket.Conn, tenantID uint, role string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = client{tenantID: tenantID, role: role}
}

// UnregisterClient melepaskan koneksi.
func (h *Hub) UnregisterClient(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// BroadcastSnapshot meneruskan hasil polling ke semua dashboard tenant itu.
func (h *Hub) BroadcastSnapshot(snapshot services.OrderSnapshot) {
	h.broadcast(snapshot.TenantID, Message{
		Event: EventOrderSnapshot,
		Data:  snapshot,
	})
}

// BroadcastPrintResult memberi tahu dashboard bahwa sequence cetak selesai,
// supaya modal dan list bisa reset.
func (h *Hub) BroadcastPrintResult(tenantID uint, result services.PrintResult) {
	h.broadcast(tenantID, Message{
		Event: EventInvoiceResult,
		Data: map[string]interface{}{
			"order_id":   result.OrderID,
			"order_code": result.OrderCode,
			"started":    result.Started,
			"printed":    result.Printed,
		},
	})
}

// BroadcastStaffNotification -> notifikasi bebas untuk staff satu tenant.
func (h *Hub) BroadcastStaffNotification(tenantID uint, text string) {
	h.broadcast(tenantID, Message{
		Event: EventStaffNotif,
		Data:  text,
	})
}

func (h *Hub) broadcast(tenantID uint, msg Message) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, cl := range h.clients {
		if cl.tenantID != tenantID {
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			if utils.ErrorLogger != nil {
				utils.ErrorLogger.Printf("gagal menulis ke client dashboard: %v", err)
			}
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

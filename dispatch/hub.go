package dispatch

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yeremiapane/clean-connect/models"
)

// Event types
const (
	EventRequestCreated  = "request_created"
	EventRequestAssigned = "request_assigned"
	EventStatusUpdate    = "status_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung semua koneksi client/cleaner dan menyiarkan event
// lifecycle dari cleaner request.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastRequestCreated -> request baru masuk, kabari para cleaner
func BroadcastRequestCreated(req models.CleanerRequest) {
	broadcast(Message{
		Event: EventRequestCreated,
		Data:  req,
	})
}

// BroadcastRequestAssigned -> cleaner sudah dipilih untuk sebuah request
func BroadcastRequestAssigned(req models.CleanerRequest) {
	broadcast(Message{
		Event: EventRequestAssigned,
		Data:  req,
	})
}

// BroadcastStatusUpdate -> status request berubah
func BroadcastStatusUpdate(req models.CleanerRequest) {
	broadcast(Message{
		Event: EventStatusUpdate,
		Data:  req,
	})
}

func broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("dispatch: marshal error: %v", err)
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			// Koneksi mati, lepaskan
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}

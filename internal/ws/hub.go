package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Notification is the toast payload pushed to connected clients.
type Notification struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant,omitempty"` // "", "destructive", "warning"
}

// Notifier is the side channel services use for user-visible confirmations
// and alerts.
type Notifier interface {
	Notify(n Notification)
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
	}
}

// Notify marshals a toast notification and broadcasts it to every client.
// The send happens off the caller's goroutine so mutation paths never block
// on slow consumers.
func (h *Hub) Notify(n Notification) {
	if n.Type == "" {
		n.Type = "toast"
	}
	msg, err := json.Marshal(n)
	if err != nil {
		log.Printf("ws: marshal notification: %v", err)
		return
	}
	go func() { h.Broadcast <- msg }()
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Println("New WS Client Connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

package events

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Event is one message pushed to attached UI clients. Type is "log" for
// plain event-log lines and "notification" for user-facing alerts.
type Event struct {
	Type    string `json:"type"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message"`
}

// Hub fans events out to attached websocket clients. It plays the role the
// desktop window played in the original GUI: a best-effort live channel for
// logs and notifications. Connections that fail a write are dropped.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]struct{})}
}

// Attach registers a connection and starts draining its reads so close
// frames are noticed.
func (h *Hub) Attach(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.detach(conn)
				return
			}
		}
	}()
}

func (h *Hub) detach(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		conn.Close()
	}
}

// Broadcast sends an event to every attached client and returns how many
// deliveries succeeded.
func (h *Hub) Broadcast(ev Event) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for conn := range h.conns {
		if err := conn.WriteJSON(ev); err != nil {
			delete(h.conns, conn)
			conn.Close()
			continue
		}
		delivered++
	}
	return delivered
}

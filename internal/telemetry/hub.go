package telemetry

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// BodySnapshot is the wire form of one simulated body's state.
type BodySnapshot struct {
	Name     string     `json:"name"`
	Position [3]float32 `json:"position"`
	Velocity [3]float32 `json:"velocity"`
	Sleeping bool       `json:"sleeping"`
}

// FrameSnapshot is one update's worth of telemetry.
type FrameSnapshot struct {
	Type       string         `json:"type"`
	ServerTime float64        `json:"serverTime"`
	StepTime   float64        `json:"stepTimeMs"`
	BodyCount  int            `json:"bodyCount"`
	JointCount int            `json:"jointCount"`
	Bodies     []BodySnapshot `json:"bodies"`
}

// safeConn serializes writes to one websocket connection.
type safeConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *safeConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub accepts websocket clients and broadcasts simulation snapshots to
// them. Clients that fail a write are dropped.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*safeConn]bool
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*safeConn]bool),
	}
}

// HandleWS upgrades an HTTP request and keeps the connection until the
// client goes away. Incoming messages are read and discarded so pings
// keep the connection alive.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Telemetry: upgrade failed: %v", err)
		return
	}
	client := &safeConn{conn: conn}

	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, client)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends a snapshot to every connected client.
func (h *Hub) Broadcast(frame FrameSnapshot) {
	frame.Type = "frame"
	frame.ServerTime = float64(time.Now().UnixNano()) / 1e9

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if err := client.writeJSON(frame); err != nil {
			log.Printf("Telemetry: dropping client: %v", err)
			delete(h.clients, client)
			client.conn.Close()
		}
	}
}

// Serve starts an HTTP server exposing the stream at /ws. It blocks, so
// callers usually run it in a goroutine.
func (h *Hub) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.HandleWS)
	return http.ListenAndServe(addr, mux)
}

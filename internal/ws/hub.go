package ws

import (
	"context"
	"sync"
	"time"

	"earnfast/internal/logger"
	"earnfast/internal/presence"

	"github.com/gorilla/websocket"
)

// Hub pushes the online-user count to every connected websocket client
// on an interval. Clients that fail a write are dropped.
type Hub struct {
	tracker  presence.Tracker
	interval time.Duration

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}

	stopCh chan struct{}
	once   sync.Once
}

func NewHub(tracker presence.Tracker, interval time.Duration) *Hub {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Hub{
		tracker:  tracker,
		interval: interval,
		clients:  make(map[*websocket.Conn]struct{}),
		stopCh:   make(chan struct{}),
	}
}

type countPayload struct {
	Online int64 `json:"online"`
}

// Run broadcasts until Stop is called.
func (h *Hub) Run() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stopCh:
			return
		case <-ticker.C:
			h.broadcast()
		}
	}
}

// Stop shuts down the broadcast loop and closes all connections.
func (h *Hub) Stop() {
	h.once.Do(func() { close(h.stopCh) })

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.Close()
	}
	h.clients = make(map[*websocket.Conn]struct{})
}

// Add registers a client and sends it the current count immediately.
func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	count, err := h.tracker.OnlineCount(context.Background())
	if err == nil {
		_ = conn.WriteJSON(countPayload{Online: count})
	}
}

// Remove unregisters and closes a client.
func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

func (h *Hub) broadcast() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	count, err := h.tracker.OnlineCount(ctx)
	cancel()
	if err != nil {
		logger.Warn("online count failed", "error", err)
		return
	}

	payload := countPayload{Online: count}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(payload); err != nil {
			delete(h.clients, conn)
			_ = conn.Close()
		}
	}
}

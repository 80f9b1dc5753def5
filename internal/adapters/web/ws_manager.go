package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

const (
	writeTimeout = 5 * time.Second
	queueSize    = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     sameOrigin,
}

// sameOrigin allows clients without an Origin header and pages served by
// this server.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// WSManager streams lifecycle events to websocket clients. It is a
// ports.LifecycleObserver; OnLifecycle never blocks the binding loop.
type WSManager struct {
	Clients map[*websocket.Conn]struct{}
	mu      sync.Mutex

	queue   chan domain.LifecycleEvent
	dropped int
	logger  *slog.Logger
}

var _ ports.LifecycleObserver = (*WSManager)(nil)

func NewWSManager(logger *slog.Logger) *WSManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &WSManager{
		Clients: make(map[*websocket.Conn]struct{}),
		queue:   make(chan domain.LifecycleEvent, queueSize),
		logger:  logger,
	}
}

func (m *WSManager) Start(ctx context.Context) {
	go m.processAndBroadcast(ctx)
}

// OnLifecycle implements ports.LifecycleObserver. Events are dropped when
// the queue is full.
func (m *WSManager) OnLifecycle(ev domain.LifecycleEvent) {
	select {
	case m.queue <- ev:
	default:
		m.mu.Lock()
		m.dropped++
		m.mu.Unlock()
	}
}

// ClientCount returns the number of connected clients.
func (m *WSManager) ClientCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Clients)
}

// Dropped returns how many events did not fit in the queue.
func (m *WSManager) Dropped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dropped
}

func (m *WSManager) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	m.mu.Lock()
	m.Clients[conn] = struct{}{}
	n := len(m.Clients)
	m.mu.Unlock()

	m.logger.Info("WebSocket connected", "remote", r.RemoteAddr, "clients", n)

	// Reading is only needed to notice the close.
	go func() {
		defer func() {
			m.remove(conn)
			m.logger.Info("WebSocket disconnected", "remote", r.RemoteAddr)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (m *WSManager) processAndBroadcast(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			m.closeAll()
			return
		case ev := <-m.queue:
			m.broadcastMessage(WSMessage{Type: string(ev.Kind), Payload: ev})
		}
	}
}

func (m *WSManager) broadcastMessage(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		m.logger.Error("JSON marshal error", "error", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.Clients {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(m.Clients, conn)
		}
	}
}

func (m *WSManager) remove(conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conn.Close()
	delete(m.Clients, conn)
}

func (m *WSManager) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.Clients {
		conn.Close()
		delete(m.Clients, conn)
	}
}

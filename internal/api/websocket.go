package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"holdout/internal/sim"

	"github.com/gorilla/websocket"
)

const (
	// MaxWSConnectionsTotal caps websocket connections across all IPs.
	MaxWSConnectionsTotal = 500

	// MaxWSConnectionsPerIP caps websocket connections from one IP.
	MaxWSConnectionsPerIP = 10
)

// wsClient tracks a connection with its source IP for slot accounting.
type wsClient struct {
	conn *websocket.Conn
	ip   string
}

// WebSocketHub fans simulation frames and events out to connected render
// clients.
type WebSocketHub struct {
	clients    map[*websocket.Conn]*wsClient
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *websocket.Conn
	mu         sync.RWMutex

	wsLimiter     *WebSocketRateLimiter
	allowedOrigin string
	upgrader      websocket.Upgrader
}

// NewWebSocketHub creates a hub with connection limiting. extraOrigin is an
// additional allowed Origin beyond localhost, or empty.
func NewWebSocketHub(extraOrigin string) *WebSocketHub {
	h := &WebSocketHub{
		clients:       make(map[*websocket.Conn]*wsClient),
		broadcast:     make(chan []byte, 256),
		register:      make(chan *wsClient),
		unregister:    make(chan *websocket.Conn),
		wsLimiter:     NewWebSocketRateLimiter(MaxWSConnectionsPerIP),
		allowedOrigin: extraOrigin,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if IsAllowedOrigin(origin, h.allowedOrigin) {
				return true
			}
			log.Printf("websocket rejected, origin %q", origin)
			RecordConnectionRejected("origin")
			return false
		},
	}
	return h
}

// Run processes register/unregister/broadcast traffic. Call in a goroutine.
func (h *WebSocketHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.conn] = client
			count := len(h.clients)
			h.mu.Unlock()
			log.Printf("client connected from %s (%d total)", client.ip, count)
			UpdateWSConnections(count)

		case conn := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[conn]; ok {
				h.wsLimiter.Release(client.ip)
				delete(h.clients, conn)
				conn.Close()
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Printf("client disconnected (%d remaining)", count)
			UpdateWSConnections(count)

		case message := <-h.broadcast:
			h.mu.RLock()
			var stale []*websocket.Conn
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					stale = append(stale, conn)
				}
			}
			h.mu.RUnlock()
			for _, conn := range stale {
				h.mu.Lock()
				if client, ok := h.clients[conn]; ok {
					h.wsLimiter.Release(client.ip)
					delete(h.clients, conn)
					conn.Close()
				}
				h.mu.Unlock()
			}
			IncrementWSMessages()
		}
	}
}

// Broadcast envelopes and queues a message for every client. Drops on
// backpressure rather than blocking the caller.
func (h *WebSocketHub) Broadcast(event string, data any) {
	msg := map[string]any{
		"event": event,
		"data":  data,
	}
	jsonBytes, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case h.broadcast <- jsonBytes:
	default:
	}
}

// BroadcastEvent forwards one simulation event to all clients.
func (h *WebSocketHub) BroadcastEvent(ev sim.Event) {
	h.Broadcast("sim:event", ev)
}

// ClientCount returns the number of connected clients.
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// StartBroadcastLoop pushes render snapshots to clients at the given rate.
func (h *WebSocketHub) StartBroadcastLoop(engine EngineInterface, pushHz int) {
	if pushHz <= 0 {
		pushHz = 20
	}
	ticker := time.NewTicker(time.Second / time.Duration(pushHz))
	go func() {
		for range ticker.C {
			if h.ClientCount() == 0 {
				continue
			}
			h.Broadcast("sim:state", engine.Snapshot())
		}
	}()
}

// HandleWebSocket upgrades a connection, enforcing total and per-IP caps.
func (h *WebSocketHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip := GetClientIP(r)

	if h.ClientCount() >= MaxWSConnectionsTotal {
		RecordConnectionRejected("ws_total_limit")
		http.Error(w, "Too many connections", http.StatusServiceUnavailable)
		return
	}
	if !h.wsLimiter.Allow(ip) {
		RecordConnectionRejected("ws_ip_limit")
		http.Error(w, "Too many connections from your IP", http.StatusTooManyRequests)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		h.wsLimiter.Release(ip)
		return
	}
	h.register <- &wsClient{conn: conn, ip: ip}

	// drain the read side so pings and close frames are processed
	go func() {
		defer func() { h.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

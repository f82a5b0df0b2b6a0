package api

import (
	"log"
	"net/http"

	"holdout/internal/sim"

	"github.com/go-chi/chi/v5"
)

// Server is the HTTP API server with websocket fan-out. It combines the
// router with the hub for real-time state and event delivery.
type Server struct {
	engine      EngineInterface
	router      *chi.Mux
	wsHub       *WebSocketHub
	rateLimiter *IPRateLimiter
	statePushHz int
}

// ServerConfig assembles a Server.
type ServerConfig struct {
	Engine        EngineInterface
	StatePushHz   int
	AllowedOrigin string
	CORSOrigins   []string
}

// NewServer creates the API server.
//
// IMPORTANT: Background workers do NOT start until Start() is called, so
// tests can construct a server and use Router() without goroutines or
// listeners.
func NewServer(cfg ServerConfig) *Server {
	s := &Server{
		engine:      cfg.Engine,
		wsHub:       NewWebSocketHub(cfg.AllowedOrigin),
		statePushHz: cfg.StatePushHz,
	}
	s.rateLimiter = NewIPRateLimiter(DefaultRateLimitConfig)
	s.router = NewRouter(RouterConfig{
		Engine:      cfg.Engine,
		RateLimiter: s.rateLimiter,
		CORSOrigins: cfg.CORSOrigins,
	})
	s.router.Get("/ws", s.wsHub.HandleWebSocket)
	return s
}

// Start wires event fan-out, launches the hub workers, and serves HTTP.
// This is the only method that starts goroutines or opens listeners.
func (s *Server) Start(addr string) error {
	go s.wsHub.Run()
	s.wsHub.StartBroadcastLoop(s.engine, s.statePushHz)
	s.engine.Subscribe(func(ev sim.Event) {
		RecordEvent(ev.Type.String())
		s.wsHub.BroadcastEvent(ev)
	})

	log.Printf("api server listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Router returns the HTTP handler for use with httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Hub returns the websocket hub, for wiring extra broadcasts.
func (s *Server) Hub() *WebSocketHub {
	return s.wsHub
}

// Stop shuts down background workers.
func (s *Server) Stop() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

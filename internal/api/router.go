package api

import (
	"net/http"

	"holdout/internal/sim"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// EngineInterface defines the simulation methods the API layer calls. The
// interface enables mocking in tests without spinning up the tick loop.
// Keep this minimal.
type EngineInterface interface {
	// Snapshot returns the latest lock-free render frame.
	Snapshot() *sim.RenderSnapshot
	// SetInput replaces the sampled input for subsequent ticks.
	SetInput(in sim.InputFrame)
	// Pause freezes the simulation clock; Resume unfreezes it.
	Pause()
	Resume()
	Paused() bool
	// PurchaseUpgrade spends points on a stat increase.
	PurchaseUpgrade(stat string) bool
	// Save and Restore round-trip the full simulation state.
	Save() sim.SaveState
	Restore(s sim.SaveState) error
	// Reset starts a fresh run.
	Reset()
	// Subscribe registers an event callback.
	Subscribe(fn func(sim.Event))
}

// RouterConfig contains the dependencies needed to construct the router.
// Designed for dependency injection and testability:
//
//	cfg := api.RouterConfig{
//	    Engine: mockEngine,
//	    RateLimitConfig: &api.RateLimitConfig{
//	        RequestsPerSecond: 1000,
//	        Burst:             1000,
//	    },
//	}
//	router := api.NewRouter(cfg)
//	ts := httptest.NewServer(router)
type RouterConfig struct {
	// Engine is the simulation (required).
	Engine EngineInterface

	// RateLimiter is an optional pre-built limiter. If nil, one is created
	// from RateLimitConfig (or defaults when that is also nil).
	RateLimiter     *IPRateLimiter
	RateLimitConfig *RateLimitConfig

	// CORSOrigins overrides the default allowed origins.
	CORSOrigins []string

	// DisableLogging drops the request logger middleware (benchmarks).
	DisableLogging bool
}

type routerHandlers struct {
	engine EngineInterface
}

// NewRouter constructs the HTTP router with all middleware and routes.
//
// IMPORTANT: This function is PURE - no goroutines, no listeners, no
// background workers - so it is safe to use with httptest.NewServer.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	// rate limit before CORS to reject floods early
	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}
	r.Use(rateLimiter.Middleware)

	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{
			"http://localhost:*",
			"http://127.0.0.1:*",
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	h := &routerHandlers{engine: cfg.Engine}

	r.Route("/api", func(r chi.Router) {
		// simulation state
		r.Get("/state", h.handleGetState)
		r.Get("/catalog", h.handleGetCatalog)

		// control
		r.Post("/input", h.handleInput)
		r.Post("/pause", h.handlePause)
		r.Post("/resume", h.handleResume)
		r.Post("/reset", h.handleReset)
		r.Post("/upgrade", h.handleUpgrade)

		// persistence
		r.Get("/save", h.handleSave)
		r.Post("/load", h.handleLoad)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

package api

import (
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics with bounded cardinality (no per-entity labels).
var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sim_tick_duration_seconds",
		Help:    "Time spent in one simulation tick",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.016, 0.033, 0.1},
	})

	enemyCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sim_enemy_count",
		Help: "Live enemies in the simulation",
	})

	bulletCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sim_bullet_count",
		Help: "Live player projectiles in the simulation",
	})

	waveNumber = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sim_wave_number",
		Help: "Current wave number",
	})

	eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sim_events_total",
		Help: "Simulation events emitted, by type",
	}, []string{"type"}) // bounded: the EventType enum

	eventLogDropped = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "event_log_dropped_total",
		Help: "Events dropped by the journal's rate limiter or buffer",
	})

	connectionRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connection_rejected_total",
		Help: "Connections rejected by rate limiter or origin check",
	}, []string{"reason"}) // bounded: "rate_limit", "origin", "ws_total_limit", "ws_ip_limit"

	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "websocket_connections_active",
		Help: "Currently active websocket connections",
	})

	wsMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "websocket_messages_total",
		Help: "Total websocket messages broadcast",
	})
)

// ObservabilityConfig configures the debug server.
type ObservabilityConfig struct {
	Enabled    bool
	ListenAddr string // MUST stay on localhost in production
}

// DefaultObservabilityConfig returns safe defaults.
func DefaultObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		Enabled:    true,
		ListenAddr: "127.0.0.1:6060",
	}
}

// StartDebugServer starts the internal observability server with pprof and
// the Prometheus scrape endpoint. It refuses non-localhost binds unless
// explicitly overridden.
func StartDebugServer(cfg ObservabilityConfig) error {
	if !cfg.Enabled {
		log.Println("debug server disabled")
		return nil
	}

	if cfg.ListenAddr != "127.0.0.1:6060" && cfg.ListenAddr != "localhost:6060" {
		if os.Getenv("ALLOW_DEBUG_EXTERNAL") != "true" {
			log.Println("debug server forced to localhost")
			cfg.ListenAddr = "127.0.0.1:6060"
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	go func() {
		log.Printf("debug server listening on %s", cfg.ListenAddr)
		if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
			log.Printf("debug server error: %v", err)
		}
	}()
	return nil
}

// RecordTick observes one tick's wall-clock duration.
func RecordTick(duration time.Duration) {
	tickDuration.Observe(duration.Seconds())
}

// UpdateSimGauges refreshes the entity and wave gauges from a snapshot.
func UpdateSimGauges(enemies, bullets, wave int) {
	enemyCount.Set(float64(enemies))
	bulletCount.Set(float64(bullets))
	waveNumber.Set(float64(wave))
}

// RecordEvent counts one emitted simulation event by type name.
func RecordEvent(eventType string) {
	eventsTotal.WithLabelValues(eventType).Inc()
}

// UpdateEventLogDropped refreshes the journal drop gauge.
func UpdateEventLogDropped(dropped uint64) {
	eventLogDropped.Set(float64(dropped))
}

// RecordConnectionRejected increments the rejection counter. reason must be
// one of the bounded label values listed on the metric.
func RecordConnectionRejected(reason string) {
	connectionRejected.WithLabelValues(reason).Inc()
}

// UpdateWSConnections refreshes the websocket connection gauge.
func UpdateWSConnections(count int) {
	wsConnectionsActive.Set(float64(count))
}

// IncrementWSMessages counts one broadcast message.
func IncrementWSMessages() {
	wsMessagesTotal.Inc()
}

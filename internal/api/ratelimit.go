package api

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the per-IP request limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	CleanupInterval   time.Duration // how often stale limiters are dropped
}

// DefaultRateLimitConfig returns production-safe defaults.
var DefaultRateLimitConfig = RateLimitConfig{
	RequestsPerSecond: 20,
	Burst:             40,
	CleanupInterval:   5 * time.Minute,
}

type ipLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter throttles HTTP requests per client IP.
type IPRateLimiter struct {
	limiters sync.Map // map[string]*ipLimiterEntry
	config   RateLimitConfig
	stopChan chan struct{}
	stopOnce sync.Once

	rejectedCount uint64 // atomic
	allowedCount  uint64 // atomic
}

// NewIPRateLimiter creates a limiter and starts its cleanup goroutine.
func NewIPRateLimiter(cfg RateLimitConfig) *IPRateLimiter {
	rl := &IPRateLimiter{
		config:   cfg,
		stopChan: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Stop halts the cleanup goroutine.
func (rl *IPRateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stopChan)
	})
}

func (rl *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	now := time.Now()
	if entry, ok := rl.limiters.Load(ip); ok {
		e := entry.(*ipLimiterEntry)
		e.lastSeen = now
		return e.limiter
	}
	entry := &ipLimiterEntry{
		limiter:  rate.NewLimiter(rate.Limit(rl.config.RequestsPerSecond), rl.config.Burst),
		lastSeen: now,
	}
	actual, _ := rl.limiters.LoadOrStore(ip, entry)
	return actual.(*ipLimiterEntry).limiter
}

func (rl *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stopChan:
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

// cleanup drops limiters for IPs not seen in two cleanup windows.
func (rl *IPRateLimiter) cleanup() {
	cutoff := time.Now().Add(-rl.config.CleanupInterval * 2)
	rl.limiters.Range(func(key, value any) bool {
		if value.(*ipLimiterEntry).lastSeen.Before(cutoff) {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// Allow reports whether a request from the given IP may proceed.
func (rl *IPRateLimiter) Allow(ip string) bool {
	if rl.getLimiter(ip).Allow() {
		atomic.AddUint64(&rl.allowedCount, 1)
		return true
	}
	atomic.AddUint64(&rl.rejectedCount, 1)
	return false
}

// Middleware wraps a handler with per-IP rate limiting.
func (rl *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := GetClientIP(r)
		if !rl.Allow(ip) {
			RecordConnectionRejected("rate_limit")
			w.Header().Set("Retry-After", "1")
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetStats returns limiter counters.
func (rl *IPRateLimiter) GetStats() map[string]uint64 {
	return map[string]uint64{
		"allowed":  atomic.LoadUint64(&rl.allowedCount),
		"rejected": atomic.LoadUint64(&rl.rejectedCount),
	}
}

// GetClientIP extracts the client IP from a request, honoring proxy headers.
func GetClientIP(r *http.Request) string {
	// CAUTION: X-Forwarded-For is spoofable unless behind a trusted proxy
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx >= 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// WebSocketRateLimiter caps concurrent websocket connections per IP.
type WebSocketRateLimiter struct {
	connections sync.Map // map[string]*int32
	maxPerIP    int

	rejectedCount uint64 // atomic
}

// NewWebSocketRateLimiter creates a websocket connection limiter.
func NewWebSocketRateLimiter(maxPerIP int) *WebSocketRateLimiter {
	return &WebSocketRateLimiter{maxPerIP: maxPerIP}
}

// Allow reserves a connection slot for the IP if one is available.
func (wrl *WebSocketRateLimiter) Allow(ip string) bool {
	actual, _ := wrl.connections.LoadOrStore(ip, new(int32))
	counter := actual.(*int32)
	for {
		current := atomic.LoadInt32(counter)
		if int(current) >= wrl.maxPerIP {
			atomic.AddUint64(&wrl.rejectedCount, 1)
			return false
		}
		if atomic.CompareAndSwapInt32(counter, current, current+1) {
			return true
		}
	}
}

// Release frees a connection slot for the IP.
func (wrl *WebSocketRateLimiter) Release(ip string) {
	if val, ok := wrl.connections.Load(ip); ok {
		atomic.AddInt32(val.(*int32), -1)
	}
}

// GetStats returns websocket limiter counters.
func (wrl *WebSocketRateLimiter) GetStats() map[string]uint64 {
	return map[string]uint64{
		"rejected": atomic.LoadUint64(&wrl.rejectedCount),
	}
}

// IsAllowedOrigin checks a websocket Origin header against the allow list.
// Localhost with any port is always permitted; an extra origin may be added
// via configuration.
func IsAllowedOrigin(origin, extra string) bool {
	if origin == "" {
		return false
	}
	if strings.HasPrefix(origin, "http://localhost") || strings.HasPrefix(origin, "http://127.0.0.1") {
		return true
	}
	return extra != "" && origin == extra
}

package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"valley-oracle/pkg/config"
)

// RateLimiter manages per-IP rate limiting using the token bucket
// algorithm. It tracks one limiter per client IP and cleans up idle
// entries in the background to keep the map bounded.
type RateLimiter struct {
	limiters map[string]*rateLimiterEntry
	mu       sync.Mutex

	requestsPerSecond rate.Limit
	burst             int
	maxAge            time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

// rateLimiterEntry wraps a rate.Limiter with last-access tracking.
type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewRateLimiter creates a RateLimiter from configuration and starts its
// cleanup goroutine.
func NewRateLimiter(cfg *config.Config) *RateLimiter {
	ctx, cancel := context.WithCancel(context.Background())

	rl := &RateLimiter{
		limiters:          make(map[string]*rateLimiterEntry),
		requestsPerSecond: rate.Limit(cfg.RateLimitRequestsPerSecond),
		burst:             cfg.RateLimitBurst,
		maxAge:            cfg.RateLimitCleanupInterval * 5,
		ctx:               ctx,
		cancel:            cancel,
	}
	go rl.cleanupLoop(cfg.RateLimitCleanupInterval)
	return rl
}

// Allow reports whether the client identified by addr may proceed.
func (rl *RateLimiter) Allow(addr string) bool {
	ip := clientIP(addr)

	rl.mu.Lock()
	entry, ok := rl.limiters[ip]
	if !ok {
		entry = &rateLimiterEntry{
			limiter: rate.NewLimiter(rl.requestsPerSecond, rl.burst),
		}
		rl.limiters[ip] = entry
	}
	entry.lastAccess = time.Now()
	rl.mu.Unlock()

	return entry.limiter.Allow()
}

// Stop terminates the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.cancel()
}

func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-rl.maxAge)
			rl.mu.Lock()
			for ip, entry := range rl.limiters {
				if entry.lastAccess.Before(cutoff) {
					delete(rl.limiters, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Middleware rejects over-limit requests with 429 before they reach the
// handlers.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(r.RemoteAddr) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port from a RemoteAddr, falling back to the whole
// string for addresses that do not parse.
func clientIP(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

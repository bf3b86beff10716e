// ABOUTME: Per-client request throttling for the calculator API
// ABOUTME: Fixed-window counters keyed by client address, reported via X-RateLimit headers

package middleware

import (
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetIn is the time until the client's window restarts.
	ResetIn time.Duration
}

type window struct {
	used    int
	resetAt time.Time
}

// RateLimiter admits at most limit requests per client per period.
type RateLimiter struct {
	limit  int
	period time.Duration
	now    func() time.Time

	mu        sync.Mutex
	clients   map[string]*window
	lastSweep time.Time
}

// NewRateLimiter creates a limiter admitting limit requests per period.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		period:  period,
		now:     time.Now,
		clients: make(map[string]*window),
	}
}

// Allow records one request for key and reports whether it is admitted.
func (rl *RateLimiter) Allow(key string) Decision {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweepExpired(now)

	w, ok := rl.clients[key]
	// A window ending exactly now has expired.
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(rl.period)}
		rl.clients[key] = w
	}

	d := Decision{Limit: rl.limit, ResetIn: w.resetAt.Sub(now)}
	if w.used >= rl.limit {
		return d
	}
	w.used++
	d.Allowed = true
	d.Remaining = rl.limit - w.used
	return d
}

// Clients returns the number of tracked client windows.
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// sweepExpired drops finished windows at most once per period.
// Caller holds rl.mu.
func (rl *RateLimiter) sweepExpired(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.period {
		return
	}
	for k, w := range rl.clients {
		if !now.Before(w.resetAt) {
			delete(rl.clients, k)
		}
	}
	rl.lastSweep = now
}

// ClientIP keys a request by the first valid X-Forwarded-For address, falling
// back to the connection's remote address. The forwarded header is only
// meaningful behind a proxy that overwrites it.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if addr, err := netip.ParseAddr(strings.TrimSpace(first)); err == nil {
			return addr.Unmap().String()
		}
	}

	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return host
}

// RateLimit throttles requests per keyFunc. A nil limiter disables it and an
// empty key lets the request through.
func RateLimit(limiter *RateLimiter, keyFunc func(*http.Request) string) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || keyFunc == nil {
				next(w, r)
				return
			}
			key := keyFunc(r)
			if key == "" {
				next(w, r)
				return
			}

			d := limiter.Allow(key)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			if d.Allowed {
				next(w, r)
				return
			}

			retry := int(math.Ceil(d.ResetIn.Seconds()))
			slog.Warn("Rate limit exceeded", "client", key, "path", r.URL.Path, "retry_after", retry)
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			writeJSONError(w, fmt.Sprintf("Rate limit exceeded, retry after %ds", retry), http.StatusTooManyRequests)
		}
	}
}

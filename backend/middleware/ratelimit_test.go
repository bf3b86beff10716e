// ABOUTME: Tests for per-client request throttling
// ABOUTME: Drives the limiter with a fake clock and checks headers and 429 responses

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/markalston/evse-calc/backend/models"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(limit int, period time.Duration) (*RateLimiter, *fakeClock) {
	clock := newFakeClock()
	rl := NewRateLimiter(limit, period)
	rl.now = clock.Now
	return rl, clock
}

func TestRateLimiter_CountsDownRemaining(t *testing.T) {
	rl, _ := newTestLimiter(3, time.Minute)

	for want := 2; want >= 0; want-- {
		d := rl.Allow("203.0.113.7")
		if !d.Allowed {
			t.Fatalf("Expected request to be admitted with %d remaining", want)
		}
		if d.Remaining != want {
			t.Errorf("Expected %d remaining, got %d", want, d.Remaining)
		}
		if d.Limit != 3 {
			t.Errorf("Expected limit 3, got %d", d.Limit)
		}
	}
}

func TestRateLimiter_DeniesOverLimitUntilReset(t *testing.T) {
	rl, clock := newTestLimiter(2, time.Minute)

	rl.Allow("client")
	clock.Advance(20 * time.Second)
	rl.Allow("client")

	d := rl.Allow("client")
	if d.Allowed {
		t.Fatal("Third request in the window should be denied")
	}
	if d.ResetIn != 40*time.Second {
		t.Errorf("Expected reset in 40s, got %v", d.ResetIn)
	}
	if d.Remaining != 0 {
		t.Errorf("Expected 0 remaining, got %d", d.Remaining)
	}

	// The boundary instant starts a fresh window
	clock.Advance(40 * time.Second)
	if d := rl.Allow("client"); !d.Allowed || d.Remaining != 1 {
		t.Errorf("Expected fresh window at reset, got %+v", d)
	}
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	rl, _ := newTestLimiter(1, time.Minute)

	if !rl.Allow("a").Allowed {
		t.Fatal("First client should be admitted")
	}
	if rl.Allow("a").Allowed {
		t.Fatal("First client should now be limited")
	}
	if !rl.Allow("b").Allowed {
		t.Error("Second client should have its own window")
	}
}

func TestRateLimiter_SweepsExpiredWindows(t *testing.T) {
	rl, clock := newTestLimiter(5, time.Minute)

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		rl.Allow(ip)
	}
	if got := rl.Clients(); got != 3 {
		t.Fatalf("Expected 3 tracked clients, got %d", got)
	}

	clock.Advance(2 * time.Minute)
	rl.Allow("10.0.0.9")

	if got := rl.Clients(); got != 1 {
		t.Errorf("Expected expired windows to be swept, %d clients tracked", got)
	}
}

func TestRateLimiter_ConcurrentAllowNeverOveradmits(t *testing.T) {
	rl := NewRateLimiter(50, time.Minute)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
	)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("shared").Allowed {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if admitted != 50 {
		t.Errorf("Expected exactly 50 admitted, got %d", admitted)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		remoteAddr string
		want       string
	}{
		{"remote addr with port", "", "192.0.2.10:54321", "192.0.2.10"},
		{"remote addr without port", "", "192.0.2.10", "192.0.2.10"},
		{"forwarded single", "198.51.100.4", "10.0.0.1:80", "198.51.100.4"},
		{"forwarded chain uses first", "198.51.100.4, 10.0.0.2, 10.0.0.3", "10.0.0.1:80", "198.51.100.4"},
		{"forwarded ipv6", "2001:db8::1", "10.0.0.1:80", "2001:db8::1"},
		{"forwarded ipv4-mapped", "::ffff:198.51.100.4", "10.0.0.1:80", "198.51.100.4"},
		{"forwarded garbage ignored", "not-an-ip", "192.0.2.10:1234", "192.0.2.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRateLimit_SetsHeadersAndDenies(t *testing.T) {
	rl, _ := newTestLimiter(1, 30*time.Second)
	handler := RateLimit(rl, ClientIP)(okHandler)

	first := httptest.NewRecorder()
	handler(first, httptest.NewRequest(http.MethodPost, "/api/v1/installation/assess", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("Expected first request to pass, got %d", first.Code)
	}
	if got := first.Header().Get("X-RateLimit-Limit"); got != "1" {
		t.Errorf("Expected X-RateLimit-Limit 1, got %q", got)
	}
	if got := first.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("Expected X-RateLimit-Remaining 0, got %q", got)
	}

	second := httptest.NewRecorder()
	handler(second, httptest.NewRequest(http.MethodPost, "/api/v1/installation/assess", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", second.Code)
	}
	if got := second.Header().Get("Retry-After"); got != "30" {
		t.Errorf("Expected Retry-After 30, got %q", got)
	}

	var body models.ErrorResponse
	if err := json.NewDecoder(second.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if body.Code != http.StatusTooManyRequests || body.Error != "Rate limit exceeded, retry after 30s" {
		t.Errorf("Unexpected error body %+v", body)
	}
}

func TestRateLimit_RetryAfterRoundsUp(t *testing.T) {
	rl, clock := newTestLimiter(1, time.Minute)
	handler := RateLimit(rl, ClientIP)(okHandler)

	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	clock.Advance(59*time.Second + 500*time.Millisecond)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := rec.Header().Get("Retry-After"); got != "1" {
		t.Errorf("Expected Retry-After rounded up to 1, got %q", got)
	}
}

func TestRateLimit_PassThrough(t *testing.T) {
	tests := []struct {
		name    string
		limiter *RateLimiter
		keyFunc func(*http.Request) string
	}{
		{"nil limiter", nil, ClientIP},
		{"nil key func", NewRateLimiter(0, time.Minute), nil},
		{"empty key", NewRateLimiter(0, time.Minute), func(*http.Request) string { return "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RateLimit(tt.limiter, tt.keyFunc)(okHandler)
			for i := 0; i < 3; i++ {
				rec := httptest.NewRecorder()
				handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
				if rec.Code != http.StatusOK {
					t.Fatalf("Request %d: expected pass-through, got %d", i+1, rec.Code)
				}
			}
		})
	}
}

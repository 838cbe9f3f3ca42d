package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

type bucket struct {
	windowStart time.Time
	count       int
}

// RateLimiter is a fixed-window request counter per client IP. Fixed windows
// admit up to 2x the budget across a window boundary; that burst is an
// accepted tradeoff for the simpler bookkeeping. Stale buckets are evicted
// by a background cleanup.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	budget  int
	window  time.Duration
	now     func() time.Time
}

// NewRateLimiter creates a limiter allowing budget requests per key per
// window.
func NewRateLimiter(budget int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		budget:  budget,
		window:  window,
		now:     time.Now,
	}
	go rl.cleanup()
	return rl
}

// Allow records one request for key and reports whether it fits the current
// window's budget. The whole check-then-increment runs under the lock, so
// two simultaneous requests can never both observe the same count.
func (rl *RateLimiter) Allow(key string) bool {
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{windowStart: now}
		rl.buckets[key] = b
	}
	if now.Sub(b.windowStart) >= rl.window {
		b.windowStart = now
		b.count = 0
	}
	b.count++
	return b.count <= rl.budget
}

// cleanup evicts buckets whose window ended more than one full window ago.
func (rl *RateLimiter) cleanup() {
	for {
		time.Sleep(5 * time.Minute)
		now := rl.now()
		rl.mu.Lock()
		for key, b := range rl.buckets {
			if now.Sub(b.windowStart) >= 2*rl.window {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Limit is the middleware handler that enforces the budget per remote IP.
// Rejections are deterministic 429s, kept distinct from auth failures so
// clients can apply backoff.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(realIP(r)) {
			writeJSONError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// realIP resolves the client key: first X-Forwarded-For hop, then X-Real-Ip,
// then the connection's remote address.
func realIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	if rip := r.Header.Get("X-Real-Ip"); rip != "" {
		return rip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

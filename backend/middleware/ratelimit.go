// ABOUTME: Fixed-window upload quota keyed by client
// ABOUTME: Protects the schedule analysis endpoint from bulk uploads

package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

type quota struct {
	used    int
	resetAt time.Time
}

// RateLimiter grants each key limit requests per window.
type RateLimiter struct {
	mu        sync.Mutex
	quotas    map[string]*quota
	limit     int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		quotas: make(map[string]*quota),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow consumes one request from key's quota. When the quota is spent it
// reports false and how long until the window resets.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.window {
		rl.sweep(now)
	}

	q, ok := rl.quotas[key]
	// The reset instant itself opens a new window
	if !ok || !now.Before(q.resetAt) {
		rl.quotas[key] = &quota{used: 1, resetAt: now.Add(rl.window)}
		return true, 0
	}
	if q.used < rl.limit {
		q.used++
		return true, 0
	}
	return false, q.resetAt.Sub(now)
}

// sweep drops spent windows. Callers hold rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for k, q := range rl.quotas {
		if !now.Before(q.resetAt) {
			delete(rl.quotas, k)
		}
	}
	rl.lastSweep = now
}

// ClientIP keys requests by the leftmost X-Forwarded-For address, falling
// back to RemoteAddr. Only trust this behind a proxy that sets the header.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
			return "ip:" + ip
		}
	}

	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return "ip:" + host
}

// RateLimit enforces limiter per key. A nil limiter disables it, and
// requests whose key is empty pass through.
func RateLimit(limiter *RateLimiter, keyFunc func(*http.Request) string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if limiter == nil || keyFunc == nil {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next(w, r)
				return
			}

			allowed, retryAfter := limiter.Allow(key)
			if allowed {
				next(w, r)
				return
			}

			retrySeconds := int(math.Ceil(retryAfter.Seconds()))
			slog.Warn("Upload quota exceeded", "key", key, "path", sanitizePath(r.URL.Path), "request_id", RequestID(r), "retry_after", retrySeconds)

			w.Header().Set("Retry-After", strconv.Itoa(retrySeconds))
			writeErrorBody(w, errorBody{
				Error:      "Rate limit exceeded",
				Code:       http.StatusTooManyRequests,
				RetryAfter: retrySeconds,
			})
		}
	}
}

package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// tokenBucket holds up to burst tokens and refills at rate per second.
type tokenBucket struct {
	tokens float64
	last   time.Time
}

type limiter struct {
	rate      float64 // tokens per second
	burst     float64
	ttl       time.Duration
	mu        sync.Mutex
	m         map[string]*tokenBucket
	lastSweep time.Time
}

func newLimiter(rps float64, burst int, ttl time.Duration) *limiter {
	return &limiter{
		rate:      rps,
		burst:     float64(burst),
		ttl:       ttl,
		m:         make(map[string]*tokenBucket),
		lastSweep: time.Now(),
	}
}

func (l *limiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.ttl {
		l.sweep(now)
	}

	tb := l.m[key]
	if tb == nil {
		tb = &tokenBucket{tokens: l.burst, last: now}
		l.m[key] = tb
	}
	tb.tokens = min(l.burst, tb.tokens+now.Sub(tb.last).Seconds()*l.rate)
	tb.last = now

	if tb.tokens < 1 {
		return false
	}
	tb.tokens--
	return true
}

// sweep drops buckets idle for longer than ttl. Caller holds mu.
func (l *limiter) sweep(now time.Time) {
	for k, tb := range l.m {
		if now.Sub(tb.last) > l.ttl {
			delete(l.m, k)
		}
	}
	l.lastSweep = now
}

// RateLimit limits requests per client IP.
// Example: RateLimit(120, 60) => 120 req/min with burst 60. reqPerMin <= 0 disables it.
func RateLimit(reqPerMin int, burst int) func(http.Handler) http.Handler {
	if reqPerMin <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = 1
	}
	l := newLimiter(float64(reqPerMin)/60.0, burst, 10*time.Minute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientIP(r), time.Now()) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// SecurityHeaders adds security response headers (CSP, X-Frame-Options, etc.)
// The page carries its stylesheet inline, so style-src allows it; scripts stay blocked.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("X-XSS-Protection", "0")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		h.Set("Content-Security-Policy", "default-src 'self'; script-src 'none'; style-src 'self' 'unsafe-inline'; form-action 'self'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// RateLimiter provides IP-based rate limiting using a sliding window.
type RateLimiter struct {
	maxPerMinute      int
	trustedProxyCount int
	now               func() time.Time
	mu                sync.Mutex
	clients           map[string]*clientWindow
}

type clientWindow struct {
	timestamps []time.Time
}

// NewRateLimiter creates a rate limiter with the given requests-per-minute limit.
// Assumes a single trusted reverse proxy by default. Stale entries are pruned
// in the background until stop is closed.
func NewRateLimiter(maxPerMinute int, stop <-chan struct{}) *RateLimiter {
	rl := &RateLimiter{
		maxPerMinute:      maxPerMinute,
		trustedProxyCount: 1,
		now:               time.Now,
		clients:           make(map[string]*clientWindow),
	}
	go rl.cleanupLoop(stop)
	return rl
}

// cleanupLoop periodically removes stale entries from the clients map.
func (rl *RateLimiter) cleanupLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			rl.prune()
		}
	}
}

func (rl *RateLimiter) prune() {
	windowStart := rl.now().Add(-time.Minute)
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, cw := range rl.clients {
		cw.timestamps = inWindow(cw.timestamps, windowStart)
		if len(cw.timestamps) == 0 {
			delete(rl.clients, ip)
		}
	}
}

// inWindow filters ts in place, keeping entries after windowStart.
func inWindow(ts []time.Time, windowStart time.Time) []time.Time {
	valid := ts[:0]
	for _, t := range ts {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}
	return valid
}

// Middleware returns an http.Handler that enforces rate limits with a JSON 429 body.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return rl.limit(next, func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		if err := json.NewEncoder(w).Encode(map[string]string{
			"error": "rate limit exceeded",
		}); err != nil {
			slog.Warn("rate limiter: failed to write response", "error", err)
		}
	})
}

// PageMiddleware is Middleware for browser form posts: the 429 body is plain text.
func (rl *RateLimiter) PageMiddleware(next http.Handler) http.Handler {
	return rl.limit(next, func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusTooManyRequests)
		if _, err := io.WriteString(w, MsgTooManySubmissions+"\n"); err != nil {
			slog.Warn("rate limiter: failed to write response", "error", err)
		}
	})
}

// MsgTooManySubmissions is shown to browser users who hit the rate limit.
const MsgTooManySubmissions = "Too many submissions. Please wait a minute and try again."

func (rl *RateLimiter) limit(next http.Handler, reject func(w http.ResponseWriter)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if retryAfter, ok := rl.allow(rl.clientIP(r)); !ok {
			w.Header().Set("Retry-After", retryAfterSeconds(retryAfter))
			reject(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// allow records a request from ip. When the window is full it reports false
// and how long until the oldest request leaves it.
func (rl *RateLimiter) allow(ip string) (time.Duration, bool) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	cw, ok := rl.clients[ip]
	if !ok {
		cw = &clientWindow{}
		rl.clients[ip] = cw
	}
	cw.timestamps = inWindow(cw.timestamps, now.Add(-time.Minute))

	if len(cw.timestamps) >= rl.maxPerMinute {
		return cw.timestamps[0].Add(time.Minute).Sub(now), false
	}
	cw.timestamps = append(cw.timestamps, now)
	return 0, true
}

func retryAfterSeconds(d time.Duration) string {
	secs := int(d.Seconds()) + 1
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// clientIP extracts the real client IP, reading from the rightmost trusted
// proxy position in X-Forwarded-For to prevent spoofing.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && rl.trustedProxyCount > 0 {
		parts := strings.Split(xff, ",")
		idx := len(parts) - rl.trustedProxyCount
		if idx >= 0 && idx < len(parts) {
			return strings.TrimSpace(parts[idx])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

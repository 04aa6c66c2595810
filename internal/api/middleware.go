package api

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultCleanupInterval is how often idle client limiters are dropped.
const DefaultCleanupInterval = 5 * time.Minute

// RateLimiter implements a simple token bucket rate limiter
type RateLimiter struct {
	clients map[string]*ClientLimiter
	mu      sync.RWMutex
	rate    int           // requests per minute
	burst   int           // maximum burst size
	window  time.Duration // time window for rate limiting
	now     func() time.Time
}

// ClientLimiter tracks rate limits for a specific client
type ClientLimiter struct {
	tokens   int
	lastSeen time.Time
	mu       sync.Mutex
}

// NewRateLimiter creates a new rate limiter with the specified rate and burst
func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*ClientLimiter),
		rate:    requestsPerMinute,
		burst:   burst,
		window:  time.Minute,
		now:     time.Now,
	}
}

// getClientIP returns the client host. chi's RealIP middleware runs earlier
// and has already folded X-Forwarded-For / X-Real-IP into RemoteAddr.
func getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}

// RateLimit middleware implements rate limiting based on client IP
func (rl *RateLimiter) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := getClientIP(r)

		if !rl.allowRequest(clientIP) {
			w.Header().Set("Retry-After", strconv.Itoa(rl.retryAfterSeconds()))
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allowRequest checks if a request from the given client should be allowed
func (rl *RateLimiter) allowRequest(clientIP string) bool {
	rl.mu.RLock()
	limiter, exists := rl.clients[clientIP]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		// Double-check after acquiring write lock
		limiter, exists = rl.clients[clientIP]
		if !exists {
			limiter = &ClientLimiter{
				tokens:   rl.burst,
				lastSeen: rl.now(),
			}
			rl.clients[clientIP] = limiter
		}
		rl.mu.Unlock()
	}

	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	now := rl.now()
	elapsed := now.Sub(limiter.lastSeen)

	// Add tokens based on elapsed time
	tokensToAdd := int(elapsed.Seconds() * float64(rl.rate) / 60.0)
	if tokensToAdd > 0 {
		limiter.tokens += tokensToAdd
		if limiter.tokens > rl.burst {
			limiter.tokens = rl.burst
		}
	}

	limiter.lastSeen = now

	if limiter.tokens > 0 {
		limiter.tokens--
		return true
	}

	return false
}

// retryAfterSeconds is the time needed to earn one token back.
func (rl *RateLimiter) retryAfterSeconds() int {
	if rl.rate <= 0 {
		return int(rl.window.Seconds())
	}
	secs := int(rl.window.Seconds()) / rl.rate
	if secs < 1 {
		secs = 1
	}
	return secs
}

// Cleanup removes old entries from the rate limiter map
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, limiter := range rl.clients {
		limiter.mu.Lock()
		if rl.now().Sub(limiter.lastSeen) > rl.window*5 { // Remove after 5 minutes of inactivity
			delete(rl.clients, ip)
		}
		limiter.mu.Unlock()
	}
}

// CleanupRoutine runs cleanup periodically and can be cancelled via context
func (rl *RateLimiter) CleanupRoutine(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.Cleanup()
			case <-ctx.Done():
				// Context cancelled, exit the goroutine
				return
			}
		}
	}()
}

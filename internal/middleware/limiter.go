package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"foodcourt-be/internal/auth"
	"foodcourt-be/internal/utils"

	"golang.org/x/time/rate"
)

// Rate Limit Tiers
const (
	// Checkout (Strict)
	limitStrict = rate.Limit(1)
	burstStrict = 3

	// General (Default)
	limitGeneral = rate.Limit(10)
	burstGeneral = 20

	// Frontend-heavy apps
	limitFrontend = rate.Limit(20)
	burstFrontend = 40
)

const visitorIdleTimeout = 3 * time.Minute

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per identity and tier.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// getVisitor retrieves or creates a rate limiter for the given key.
func (l *RateLimiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		l.visitors[key] = &visitor{limiter, l.now()}
		return limiter
	}

	v.lastSeen = l.now()
	return v.limiter
}

// Cleanup removes visitors idle for longer than visitorIdleTimeout.
func (l *RateLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, v := range l.visitors {
		if l.now().Sub(v.lastSeen) > visitorIdleTimeout {
			delete(l.visitors, key)
			removed++
		}
	}
	return removed
}

// Run calls Cleanup every minute until ctx is done.
func (l *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup()
		}
	}
}

// Middleware checks if the request is allowed by the rate limiter. It must
// run after AuthMiddleware so sessions are keyed by user.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, burst, tier := resolveRateTier(r)

		// Same identity gets separate quotas per tier, e.g. "user:abc:strict".
		key := fmt.Sprintf("%s:%s", identity(r), tier)

		if !l.getVisitor(key, limit, burst).Allow() {
			utils.WriteJSONError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func identity(r *http.Request) string {
	if s, ok := auth.SessionFrom(r.Context()); ok {
		return "user:" + s.UserID
	}
	if deviceID := r.Header.Get("X-Device-ID"); deviceID != "" {
		return "device:" + deviceID
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}

// resolveRateTier determines which rate limit policy applies to the request.
func resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	if r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/checkout") {
		return limitStrict, burstStrict, "strict"
	}

	if r.Header.Get("X-Client-Type") == "frontend-heavy" {
		return limitFrontend, burstFrontend, "frontend"
	}

	return limitGeneral, burstGeneral, "general"
}

package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"flowershop/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits submissions per client address.
type RateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	now      func() time.Time
	logger   zerolog.Logger
}

// NewRateLimiter creates a limiter allowing perMinute requests per client
// with the given burst. A non-positive perMinute disables limiting.
func NewRateLimiter(perMinute, burst int, logger zerolog.Logger) *RateLimiter {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}

	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     limit,
		burst:    burst,
		now:      time.Now,
		logger:   logger.With().Str("component", "rate-limiter").Logger(),
	}
}

// getLimiter returns the limiter for the given client key.
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = rl.now()

	return v.limiter
}

// Handler returns the rate limiting middleware handler.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)

		if !rl.getLimiter(key).Allow() {
			rl.logger.Warn().
				Str("client", key).
				Str("path", r.URL.Path).
				Str("request_id", RequestID(r.Context())).
				Msg("rate limit exceeded")

			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, model.ErrCodeRateLimited, "too many submissions, try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Cleanup removes limiters idle for longer than idle.
func (rl *RateLimiter) Cleanup(idle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-idle)
	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
		}
	}
}

// StartCleanup periodically removes idle limiters until ctx is done.
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.Cleanup(interval)
			}
		}
	}()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default burst allowed per client.
	defaultMaxAttempts = 5
	// defaultWindowDuration is the time it takes to refill a full burst.
	defaultWindowDuration = 1 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP with a token bucket.
type RateLimiter struct {
	mu             sync.Mutex
	entries        map[string]*limiterEntry
	limit          rate.Limit
	burst          int
	windowDuration time.Duration
	enabled        bool
}

// NewRateLimiterWithConfig allows maxAttempts requests per window, refilling
// evenly across it. A disabled limiter lets everything through.
func NewRateLimiterWithConfig(maxAttempts int, windowDuration time.Duration, enabled bool) *RateLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if windowDuration <= 0 {
		windowDuration = defaultWindowDuration
	}

	return &RateLimiter{
		entries:        make(map[string]*limiterEntry),
		limit:          rate.Every(windowDuration / time.Duration(maxAttempts)),
		burst:          maxAttempts,
		windowDuration: windowDuration,
		enabled:        enabled,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.enabled {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		if !rl.limiterFor(clientIP).Allow() {
			slog.WarnContext(c.Request.Context(), "Rate limit exceeded",
				"ip", clientIP,
				"path", c.FullPath(),
			)
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.entries[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.entries[key] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// Reset clears the rate limiter state.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.entries = make(map[string]*limiterEntry)
}

// Cleanup drops clients idle for longer than a window; their buckets would
// be full again anyway.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.windowDuration)
	for key, entry := range rl.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.entries, key)
		}
	}
}

// Start sweeps idle clients once per window until ctx is cancelled.
func (rl *RateLimiter) Start(ctx context.Context) {
	slog.Info("Rate limiter cleanup started", "interval", rl.windowDuration)

	ticker := time.NewTicker(rl.windowDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Rate limiter cleanup stopped")
			return
		case <-ticker.C:
			rl.Cleanup()
		}
	}
}

// size reports how many clients are tracked.
func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.entries)
}

package adapters

import (
	"context"
	"log/slog"
	"time"

	"github.com/finance-tracker/personal-finance/internal/integration/persistence"
)

// TokenCleanup periodically deletes expired refresh and reset tokens.
type TokenCleanup struct {
	tokenRepository persistence.TokenRepository
	interval        time.Duration
	now             func() time.Time
}

// NewTokenCleanup creates a cleanup job running every interval.
func NewTokenCleanup(tokenRepository persistence.TokenRepository, interval time.Duration) *TokenCleanup {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &TokenCleanup{
		tokenRepository: tokenRepository,
		interval:        interval,
		now:             time.Now,
	}
}

// Start runs one pass immediately and then on every tick until ctx is cancelled.
func (c *TokenCleanup) Start(ctx context.Context) {
	slog.Info("Token cleanup started", "interval", c.interval)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Token cleanup stopped")
			return
		case <-ticker.C:
			c.RunOnce(ctx)
		}
	}
}

// RunOnce deletes tokens that have already expired and returns how many.
func (c *TokenCleanup) RunOnce(ctx context.Context) int64 {
	deleted, err := c.tokenRepository.DeleteExpired(ctx, c.now().UTC())
	if err != nil {
		slog.Error("Failed to delete expired tokens", "error", err)
		return 0
	}
	if deleted > 0 {
		slog.Info("Deleted expired tokens", "count", deleted)
	}
	return deleted
}

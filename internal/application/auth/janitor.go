package auth

import (
	"context"
	"log/slog"
	"time"
)

type tokenPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int, error)
}

// TokenJanitor periodically removes expired verification tokens and OTPs.
// DynamoDB TTL also expires them, but only eventually.
type TokenJanitor struct {
	tokens   tokenPurger
	interval time.Duration
	now      func() time.Time
}

// defaultSweepInterval replaces a non-positive interval, which time.NewTicker rejects.
const defaultSweepInterval = 15 * time.Minute

func NewTokenJanitor(tokens tokenPurger, interval time.Duration) *TokenJanitor {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &TokenJanitor{tokens: tokens, interval: interval, now: time.Now}
}

// Run sweeps once immediately and then every interval until ctx is cancelled.
func (j *TokenJanitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep purges once and returns the number of tokens removed.
func (j *TokenJanitor) Sweep(ctx context.Context) int {
	n, err := j.tokens.PurgeExpired(ctx, j.now())
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("token sweep failed", "purged", n, "err", err)
		}
		return n
	}
	if n > 0 {
		slog.Info("purged expired tokens", "count", n)
	}
	return n
}

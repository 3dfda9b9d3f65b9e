package session

import (
	"context"
	"log/slog"
	"time"
)

// StartSweeper runs a background goroutine that periodically evicts
// sessions idle longer than ttl. It stops when ctx is canceled.
func StartSweeper(ctx context.Context, store Store, interval, ttl time.Duration, clock func() time.Time) {
	if clock == nil {
		clock = time.Now
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		slog.Info("session sweeper started", "interval", interval, "ttl", ttl)

		for {
			select {
			case <-ticker.C:
				cutoff := clock().Add(-ttl)
				evicted, err := store.EvictIdleSince(ctx, cutoff)
				if err != nil {
					slog.Error("session sweep failed", "error", err)
					continue
				}
				if evicted > 0 {
					slog.Info("evicted idle sessions", "count", evicted)
				}
			case <-ctx.Done():
				slog.Info("session sweeper shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
}

package usecase

import (
	"context"
	"log/slog"
	"time"

	"catalog-service/app/port"
)

// BlacklistSweeper periodically removes expired entries from the token
// blacklist so the store only grows with live revocations.
type BlacklistSweeper struct {
	blacklist port.TokenBlacklist
	interval  time.Duration
	logger    *slog.Logger
}

// NewBlacklistSweeper creates a new BlacklistSweeper instance
func NewBlacklistSweeper(blacklist port.TokenBlacklist, interval time.Duration, logger *slog.Logger) *BlacklistSweeper {
	return &BlacklistSweeper{
		blacklist: blacklist,
		interval:  interval,
		logger:    logger.With("component", "blacklist_sweeper"),
	}
}

// Start runs the sweep loop until the context is cancelled. It sweeps once
// immediately, then on every tick.
func (s *BlacklistSweeper) Start(ctx context.Context) {
	go func() {
		s.logger.Info("blacklist sweeper started", "interval", s.interval)

		s.sweep(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Info("blacklist sweeper stopped")
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

func (s *BlacklistSweeper) sweep(ctx context.Context) {
	removed, err := s.blacklist.PruneExpired(ctx, time.Now().UTC())
	if err != nil {
		// a failed sweep leaves stale entries behind; they are retried next tick
		s.logger.Error("blacklist sweep failed", "error", err)
		return
	}
	s.logger.Info("blacklist sweep completed", "removed", removed)
}

package engine

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper triggers a full matching sweep on a fixed interval, so pools
// and batches created or edited between event-driven scans still find
// each other.
type Sweeper struct {
	interval time.Duration
	engine   *Engine
	logger   *slog.Logger
}

// NewSweeper creates a Sweeper ticking at the given interval.
func NewSweeper(interval time.Duration, engine *Engine, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		interval: interval,
		engine:   engine,
		logger:   logger,
	}
}

// Start launches a background goroutine that runs a full sweep on each
// tick. It stops when ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				created := s.engine.FullSweep()
				if created > 0 {
					s.logger.Info("scheduled sweep created matches",
						slog.Int("count", created))
				}
			}
		}
	}()
}

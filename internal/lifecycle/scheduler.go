package lifecycle

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler drives the expiry sweep with a single shared clock instead of a
// timer per notification.
type Scheduler struct {
	Machine  *Machine
	Interval time.Duration
	Logger   *slog.Logger
}

// Run ticks until the context is cancelled. Each tick is one idempotent
// sweep; a missed or doubled tick cannot double-expire anything.
func (s *Scheduler) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			if s.Logger != nil {
				s.Logger.Info("expiry scheduler stopped")
			}
			return
		case now := <-t.C:
			s.Machine.ExpireLapsed(now)
		}
	}
}

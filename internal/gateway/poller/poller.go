// Package poller drives the periodic snapshot refresh loop.
package poller

import (
	"context"
	"time"

	"github.com/autocore-io/autocore/pkg/log"
)

// RefreshFunc performs one refresh cycle. Failures are the callee's problem
// to log and absorb; the loop never stops on a bad cycle.
type RefreshFunc func(ctx context.Context)

// Poller runs RefreshFunc on a fixed interval and on demand. Ticks are
// independent; a slow refresh can overlap the next one.
type Poller struct {
	interval time.Duration
	fn       RefreshFunc
	trigger  chan struct{}
	logger   log.Logger
}

// New creates a Poller with the given interval.
func New(interval time.Duration, fn RefreshFunc) *Poller {
	return &Poller{
		interval: interval,
		fn:       fn,
		trigger:  make(chan struct{}, 1),
		logger:   log.WithName("poller"),
	}
}

// TriggerRefresh requests an immediate refresh cycle. Safe to call from any
// goroutine; requests arriving while one is already pending coalesce.
func (p *Poller) TriggerRefresh() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Run executes the loop until ctx is canceled. An initial refresh runs
// immediately so the gateway does not wait a full interval after boot.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("Starting refresh loop", "interval", p.interval.String())

	p.fn(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Refresh loop stopped")
			return ctx.Err()
		case <-ticker.C:
			p.fn(ctx)
		case <-p.trigger:
			p.logger.Debug("Manual refresh triggered")
			p.fn(ctx)
		}
	}
}

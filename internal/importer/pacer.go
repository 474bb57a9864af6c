package importer

import (
	"context"
	"time"
)

// Pacer spaces provider calls. Wait blocks until the next call is
// allowed or the context is done.
type Pacer interface {
	Wait(ctx context.Context) error
}

// IntervalPacer enforces a fixed minimum interval between calls. The
// first call passes immediately.
type IntervalPacer struct {
	interval time.Duration
	last     time.Time
}

// NewIntervalPacer creates a pacer with the given spacing. A
// non-positive interval disables pacing.
func NewIntervalPacer(interval time.Duration) *IntervalPacer {
	return &IntervalPacer{interval: interval}
}

// Wait blocks until the interval since the previous call has elapsed.
func (p *IntervalPacer) Wait(ctx context.Context) error {
	if p.interval <= 0 {
		return ctx.Err()
	}
	now := time.Now()
	if !p.last.IsZero() {
		if remaining := p.interval - now.Sub(p.last); remaining > 0 {
			timer := time.NewTimer(remaining)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	p.last = time.Now()
	return nil
}

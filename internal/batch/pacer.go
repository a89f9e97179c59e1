package batch

import (
	"context"
	"sync"
	"time"
)

// Pacer enforces a minimum interval between successive dispatches across
// all workers sharing it. It is a single pacing gate, not a per-worker
// timer: the aggregate dispatch rate is bounded to at most one request per
// delay interval regardless of worker count.
//
// Each Acquire reserves the next free dispatch slot under the mutex and then
// sleeps until that slot arrives, so concurrent callers are served in
// arrival order and each pays the cumulative pacing cost. Each run
// constructs its own Pacer; no pacing state is shared across runs.
type Pacer struct {
	delay time.Duration

	mu   sync.Mutex
	next time.Time
}

// NewPacer creates a pacer with the given minimum inter-dispatch interval.
// A zero or negative delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{delay: delay}
}

// Acquire blocks the caller until its reserved dispatch slot arrives or ctx
// is cancelled. With pacing disabled it only reports ctx state.
func (p *Pacer) Acquire(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}

	p.mu.Lock()
	now := time.Now()
	at := p.next
	if at.Before(now) {
		at = now
	}
	p.next = at.Add(p.delay)
	p.mu.Unlock()

	wait := time.Until(at)
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

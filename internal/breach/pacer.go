package breach

import (
	"breachcheck/pkg/domain"
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces out calls to remote sources. Each source gets its own limiter
// (one call per delay, burst of one) shared by every caller in the process, so
// pacing is per upstream rather than global.
type Pacer struct {
	delay time.Duration

	mu       sync.Mutex
	limiters map[domain.SourceID]*rate.Limiter
}

func (p *Pacer) limiter(id domain.SourceID) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, ok := p.limiters[id]
	if !ok {
		limit := rate.Inf
		if p.delay > 0 {
			limit = rate.Every(p.delay)
		}
		l = rate.NewLimiter(limit, 1)
		p.limiters[id] = l
	}

	return l
}

// Wait blocks until the source may be called again.
func (p *Pacer) Wait(ctx context.Context, id domain.SourceID) error {
	if err := p.limiter(id).Wait(ctx); err != nil {
		return fmt.Errorf("could not wait for %s pacing: %w", id, err)
	}

	return nil
}

// Pause sleeps the fixed delay used between consecutive remote calls of a
// sequential check.
func (p *Pacer) Pause(ctx context.Context) error {
	if p.delay <= 0 {
		return nil
	}

	t := time.NewTimer(p.delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("pause interrupted: %w", ctx.Err())
	case <-t.C:
		return nil
	}
}

func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{
		delay:    delay,
		limiters: make(map[domain.SourceID]*rate.Limiter),
	}
}

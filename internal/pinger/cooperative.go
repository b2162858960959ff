package pinger

import (
	"context"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/hamed0406/urlpinger/internal/domain"
)

// runCooperative starts one goroutine per target; the runtime parks each
// one on the network poller while its request is in flight. Every task
// writes only its own slot.
//
// The group has no shared context: one target's failure must not cancel
// the others.
func (p *Pinger) runCooperative(ctx context.Context, results []domain.PingResult) error {
	var g errgroup.Group
	if p.Concurrency > 0 {
		g.SetLimit(p.Concurrency)
	}

	errs := make([]error, len(p.Targets))
	for i := range p.Targets {
		i := i
		g.Go(func() error {
			results[i], errs[i] = p.pingOne(ctx, i)
			return nil
		})
	}
	_ = g.Wait()

	return multierr.Combine(errs...)
}

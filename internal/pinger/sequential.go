package pinger

import (
	"context"

	"go.uber.org/multierr"

	"github.com/hamed0406/urlpinger/internal/domain"
)

// runSequential pings targets one at a time on the calling goroutine.
func (p *Pinger) runSequential(ctx context.Context, results []domain.PingResult) error {
	var errs error
	for i := range p.Targets {
		res, err := p.pingOne(ctx, i)
		results[i] = res
		errs = multierr.Append(errs, err)
	}
	return errs
}

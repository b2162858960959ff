package pinger

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/multierr"

	"github.com/hamed0406/urlpinger/internal/domain"
)

// runMultiThread drains a queue of target indices with a fixed pool of
// workers. Each worker holds its own OS thread for the whole batch, so a
// request in flight blocks that thread, not just a goroutine.
func (p *Pinger) runMultiThread(ctx context.Context, results []domain.PingResult) error {
	n := len(p.Targets)
	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	errs := make([]error, n)
	workers := min(p.Workers, n)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()

			for i := range jobs {
				results[i], errs[i] = p.pingOne(ctx, i)
			}
		}()
	}
	wg.Wait()

	return multierr.Combine(errs...)
}

// Package pinger runs a batch of GET pings under one of three execution
// strategies and returns one result per target in input order.
package pinger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/urlpinger/internal/domain"
	"github.com/hamed0406/urlpinger/internal/probe"
)

// DefaultWorkers is the pool size of the multi-thread strategy.
const DefaultWorkers = 32

// Observer is notified of every ping and every finished batch.
type Observer interface {
	ObservePing(s domain.Strategy, r domain.PingResult)
	ObserveBatch(s domain.Strategy, targets int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObservePing(domain.Strategy, domain.PingResult)   {}
func (nopObserver) ObserveBatch(domain.Strategy, int, time.Duration) {}

type Pinger struct {
	Logger      *zap.Logger
	Targets     []domain.Target
	Strategy    domain.Strategy
	Checker     probe.Checker
	Workers     int // multi-thread pool size
	Concurrency int // cooperative in-flight cap, 0 for none
	Observer    Observer
}

type Option func(*Pinger)

func WithLogger(l *zap.Logger) Option {
	return func(p *Pinger) {
		if l != nil {
			p.Logger = l
		}
	}
}

func WithWorkers(n int) Option {
	return func(p *Pinger) { p.Workers = n }
}

func WithConcurrency(n int) Option {
	return func(p *Pinger) { p.Concurrency = n }
}

func WithObserver(o Observer) Option {
	return func(p *Pinger) {
		if o != nil {
			p.Observer = o
		}
	}
}

// New builds a Pinger. It fails for a strategy outside the known set, so a
// bad mode never reaches the network.
func New(targets []domain.Target, strategy domain.Strategy, checker probe.Checker, opts ...Option) (*Pinger, error) {
	if !strategy.Valid() {
		return nil, fmt.Errorf("pinger: %w: %v", domain.ErrUnknownStrategy, strategy)
	}
	if checker == nil {
		return nil, errors.New("pinger: nil checker")
	}

	p := &Pinger{
		Logger:   zap.NewNop(),
		Targets:  append([]domain.Target(nil), targets...),
		Strategy: strategy,
		Checker:  checker,
		Workers:  DefaultWorkers,
		Observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.Workers < 1 {
		p.Workers = 1
	}
	if p.Concurrency < 0 {
		p.Concurrency = 0
	}
	return p, nil
}

// Ping pings every target and returns the results in target order.
//
// The result slice is always complete. The error is non-nil only when
// tasks panicked; each such target is reported with domain.CausePanic.
func (p *Pinger) Ping(ctx context.Context) ([]domain.PingResult, error) {
	start := time.Now()
	results := make([]domain.PingResult, len(p.Targets))

	var err error
	switch p.Strategy {
	case domain.Sequential:
		err = p.runSequential(ctx, results)
	case domain.Cooperative:
		err = p.runCooperative(ctx, results)
	case domain.MultiThread:
		err = p.runMultiThread(ctx, results)
	default:
		return nil, fmt.Errorf("pinger: %w: %v", domain.ErrUnknownStrategy, p.Strategy)
	}

	took := time.Since(start)
	p.Observer.ObserveBatch(p.Strategy, len(p.Targets), took)
	p.Logger.Debug("batch_done",
		zap.String("strategy", p.Strategy.String()),
		zap.Int("targets", len(p.Targets)),
		zap.Duration("elapsed", took),
		zap.Error(err),
	)
	return results, err
}

// pingOne times a single check of target i. A panic in the checker is
// turned into a CausePanic result and an error.
func (p *Pinger) pingOne(ctx context.Context, i int) (res domain.PingResult, err error) {
	url := string(p.Targets[i])
	start := time.Now()
	defer func() {
		if v := recover(); v != nil {
			res = domain.Failed(url, domain.CausePanic, elapsed(start))
			err = fmt.Errorf("ping %q: panic: %v", url, v)
			p.Logger.Error("ping_panic",
				zap.String("url", url),
				zap.Any("panic", v),
				zap.Stack("stack"),
			)
		}
		p.Observer.ObservePing(p.Strategy, res)
	}()

	out := p.Checker.Check(ctx, url)
	res = domain.PingResult{URL: url, StatusCode: out.StatusCode, Duration: elapsed(start), Cause: out.Cause}
	if res.Cause != domain.CauseNone {
		res.StatusCode = domain.SentinelStatus
	}

	p.Logger.Debug("ping_done",
		zap.String("url", url),
		zap.Int("status", res.StatusCode),
		zap.String("cause", string(res.Cause)),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}

// elapsed is strictly positive, even on clocks too coarse to see a fast
// local failure.
func elapsed(start time.Time) time.Duration {
	if d := time.Since(start); d > 0 {
		return d
	}
	return time.Nanosecond
}

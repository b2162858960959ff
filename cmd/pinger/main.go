// Command pinger GETs a list of URLs and prints status code and latency
// for each, using a sequential, cooperative or multi-thread strategy.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/hamed0406/urlpinger/internal/config"
	"github.com/hamed0406/urlpinger/internal/domain"
	"github.com/hamed0406/urlpinger/internal/logging"
	"github.com/hamed0406/urlpinger/internal/pinger"
	"github.com/hamed0406/urlpinger/internal/probe"
	"github.com/hamed0406/urlpinger/internal/report"
)

const (
	exitOK     = 0
	exitPanics = 1
	exitUsage  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without the process: everything up to building the Pinger
// happens before any network traffic, so usage errors never ping.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("pinger", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintln(stderr, "pinger:", err)
		return exitUsage
	}
	if !fs.Changed("urls") && cfg.URLs == "" {
		fmt.Fprintln(stderr, "pinger: --urls is required")
		fs.PrintDefaults()
		return exitUsage
	}

	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, "pinger: logger:", err)
		return exitUsage
	}
	defer func() { _ = logger.Sync() }()

	checker := probe.NewHTTPChecker(probe.HTTPOptions{
		Timeout:   cfg.HTTPTimeout,
		UserAgent: cfg.UserAgent,
	})
	p, err := pinger.New(domain.ParseTargets(cfg.URLs), cfg.Strategy, checker,
		pinger.WithLogger(logger),
		pinger.WithWorkers(cfg.Workers),
		pinger.WithConcurrency(cfg.Concurrency),
	)
	if err != nil {
		fmt.Fprintln(stderr, "pinger:", err)
		return exitUsage
	}

	start := time.Now()
	results, pingErr := p.Ping(ctx)
	took := time.Since(start)

	if err := report.Write(stdout, cfg.Strategy, results, took); err != nil {
		logger.Error("report_write", zap.Error(err))
	}
	if pingErr != nil {
		logger.Error("ping_panics", zap.Error(pingErr))
		fmt.Fprintln(stderr, "pinger:", pingErr)
		return exitPanics
	}
	return exitOK
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/hamed0406/urlpinger/internal/config"
	"github.com/hamed0406/urlpinger/internal/httpapi"
	apimw "github.com/hamed0406/urlpinger/internal/httpapi/middleware"
	"github.com/hamed0406/urlpinger/internal/logging"
	"github.com/hamed0406/urlpinger/internal/metrics"
	"github.com/hamed0406/urlpinger/internal/probe"
)

func main() {
	root, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fs := pflag.NewFlagSet("api", pflag.ExitOnError)
	config.RegisterServerFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(fs)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	col, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal("metrics_register", zap.Error(err))
	}

	checker := probe.NewHTTPChecker(probe.HTTPOptions{Timeout: cfg.HTTPTimeout, UserAgent: cfg.UserAgent})
	api := httpapi.NewServer(logger, checker, httpapi.Options{
		Strategy:    cfg.Strategy,
		Workers:     cfg.Workers,
		Concurrency: cfg.Concurrency,
		MaxTargets:  cfg.API.MaxTargets,
		Observer:    col,
		Gatherer:    prometheus.DefaultGatherer,
	})
	keys := apimw.Keys{Public: cfg.API.PublicKeys, Admin: cfg.API.AdminKeys}

	srv := &http.Server{
		Addr:              cfg.API.Addr,
		Handler:           api.Router(keys, cfg.API.RPM, cfg.API.Burst),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api_listen", zap.String("addr", cfg.API.Addr), zap.String("mode", cfg.Strategy.String()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-root.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api_server", zap.Error(err))
		}
	}

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shCtx)
	logger.Info("bye")
}

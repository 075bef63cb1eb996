// Command htmlsaver accepts HTML documents over HTTP and persists them in
// batches through the configured storage backend.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/htmlsaver/pkg/config"
	"github.com/dmitrymomot/htmlsaver/pkg/httpserver"
	"github.com/dmitrymomot/htmlsaver/pkg/logger"
	"github.com/dmitrymomot/htmlsaver/pkg/sanitizer"
	"github.com/dmitrymomot/htmlsaver/pkg/saver"
)

const drainTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := newLogger(cfg, os.Stdout)
	logger.SetAsDefault(log)

	pipeline := sanitizer.NewPipeline()
	if cfg.RulesFile != "" {
		p, err := sanitizer.LoadRulesFile(cfg.RulesFile)
		if err != nil {
			return err
		}
		pipeline = p
		log.InfoContext(ctx, "sanitizer rules loaded",
			slog.String("path", cfg.RulesFile),
			slog.Int("stages", pipeline.Len()))
	}

	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := saver.NewMetrics(cfg.MetricsNamespace, reg)
	if err != nil {
		be.close(ctx)
		return err
	}

	h, err := saver.New[saver.Document](be.storage,
		saver.WithConfig(cfg.Saver),
		saver.WithPipeline(pipeline),
		saver.WithLogger(log),
		saver.WithMetrics(metrics),
	)
	if err != nil {
		be.close(ctx)
		return err
	}
	if err := saver.Init(h); err != nil {
		be.close(ctx)
		return err
	}
	sender, _ := saver.Global[saver.Document]()

	log.InfoContext(ctx, "saver started",
		logger.Backend(be.name),
		logger.BatchSize(cfg.Saver.BatchSize),
		logger.Duration(cfg.Saver.FlushInterval))

	router := newRouter(routerDeps{
		log:         log,
		sender:      sender,
		checks:      be.checks,
		metrics:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		maxBodySize: cfg.HTTP.MaxBodySize,
	})

	runErr := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, router)

	// HTTP is stopped at this point, so nothing new reaches the queue.
	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := h.Shutdown(drainCtx); err != nil {
		log.ErrorContext(drainCtx, "saver did not drain in time", logger.Error(err))
	} else {
		log.InfoContext(drainCtx, "saver drained")
	}
	be.close(drainCtx)

	return runErr
}

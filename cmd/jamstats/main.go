// Command jamstats aggregates a directory of roller derby statbooks into
// per-skater and per-team statistics.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/jamstats/internal/adapters/http/api"
	"github.com/okian/jamstats/internal/adapters/http/swagger"
	"github.com/okian/jamstats/internal/adapters/report"
	app "github.com/okian/jamstats/internal/app"
	"github.com/okian/jamstats/internal/config"
	"github.com/okian/jamstats/pkg/logger"
	"github.com/okian/jamstats/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// The custom registry exports its own system metrics.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// stdout carries the summary tables.
	if err := logger.InitWithWriter(os.Stderr); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.Load(ctx)
	if err != nil {
		stop()
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	err = run(ctx, cfg, os.Stdout)
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run executes one aggregation and, when configured, serves the result
// until ctx is canceled.
func run(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	if err := logger.SetFormat(cfg.LogFormat); err != nil {
		return err
	}
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithLogger(log.Named("service")),
		app.WithParseWorkers(cfg.ParseWorkers),
		app.WithQueueSize(cfg.QueueSize),
		app.WithAliases(cfg.Aliases()),
	)

	paths, err := app.DiscoverFiles(cfg.DataDir, cfg.FilePrefix)
	if err != nil {
		log.Error(ctx, "failed to list statbooks", logger.String("dir", cfg.DataDir), logger.Error(err))
		return err
	}

	out, err := svc.Run(ctx, paths)
	if err != nil {
		log.Error(ctx, "run failed", logger.Error(err))
		return err
	}

	if err := app.WriteOutput(cfg.OutputPath, out); err != nil {
		log.Error(ctx, "failed to write output", logger.String("path", cfg.OutputPath), logger.Error(err))
		return err
	}
	log.Info(ctx, "output written", logger.String("path", cfg.OutputPath))

	if cfg.Summary {
		if err := report.Summary(ctx, stdout, svc, cfg.SummaryLimit); err != nil {
			log.Error(ctx, "failed to print summary", logger.Error(err))
			return err
		}
	}

	if !cfg.Serve {
		return nil
	}
	return serve(ctx, cfg, svc, log)
}

// serve exposes the read API until ctx is canceled.
func serve(ctx context.Context, cfg *config.Config, svc *app.Service, log logger.Logger) error {
	go startSystemMetricsUpdater(ctx)

	mux := http.NewServeMux()
	api.NewServer(svc, svc, cfg.MaxLeaderboardLimit).Register(mux)
	swagger.Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			return fmt.Errorf("serve %s: %w", cfg.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}

	log.Info(ctx, "server stopped")
	return nil
}

// startSystemMetricsUpdater updates system metrics until ctx is canceled.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

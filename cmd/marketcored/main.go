// Command marketcored serves the market operations API.
package main

import (
	"context"
	"errors"
	"expvar"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"marketcore/internal/adapters/reports"
	"marketcore/internal/adapters/rest"
	"marketcore/internal/blob"
	"marketcore/internal/core"
	"marketcore/internal/seed"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	if err := run(logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := core.OpenPersistentStore()
	if err != nil {
		return err
	}

	blobs, err := blob.Open(ctx)
	if err != nil {
		return err
	}
	logger.Info("blob store ready", "driver", string(blobs.Driver()))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	metrics, err := core.OpenMetricsRecorder(registry)
	if err != nil {
		return err
	}
	tracer, traceCloser, err := core.OpenTracer()
	if err != nil {
		return err
	}
	if traceCloser != nil {
		defer func() { _ = traceCloser.Close() }()
	}

	svc := core.NewService(store,
		core.WithMetrics(metrics),
		core.WithTracer(tracer),
	)

	if truthy(os.Getenv("MARKETCORE_SEED")) {
		if err := seed.Apply(ctx, svc); err != nil {
			return err
		}
		logger.Info("sample dataset loaded")
	}

	worker := reports.NewWorker(svc, blobs, reports.NewSlogAuditLog(logger))
	worker.Start()

	exports := reports.NewHandler(worker, blobs)
	mux := http.NewServeMux()
	mux.Handle("/api/reports/exports", exports)
	mux.Handle("/api/reports/exports/", exports)
	mux.Handle("/api/", rest.NewHandler(svc))
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.Handle("/debug/vars", expvar.Handler())

	addr := os.Getenv("MARKETCORE_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := worker.Stop(shutdownCtx); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

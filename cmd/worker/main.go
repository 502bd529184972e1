package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kirillkom/telegram-gemini-bot/internal/config"
	"github.com/kirillkom/telegram-gemini-bot/internal/infrastructure/queue/nats"
	"github.com/kirillkom/telegram-gemini-bot/internal/infrastructure/resilience"
	"github.com/kirillkom/telegram-gemini-bot/internal/infrastructure/staging/localfs"
	"github.com/kirillkom/telegram-gemini-bot/internal/observability/logging"
	"github.com/kirillkom/telegram-gemini-bot/internal/observability/metrics"
)

// The worker is the staging janitor: it consumes keys of analyzed files and
// removes them from the staging store.
func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("worker", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	staging, err := localfs.New(cfg.StagingPath)
	if err != nil {
		slog.Error("init_staging_failed", "error", err)
		os.Exit(1)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
	})
	if err != nil {
		slog.Error("init_queue_failed", "error", err)
		os.Exit(1)
	}
	defer queue.Close()

	workerMetrics := metrics.NewWorkerMetrics("worker")
	mux := http.NewServeMux()
	mux.Handle("/metrics", workerMetrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	metricsServer := &http.Server{
		Addr:         ":" + cfg.WorkerMetricsPort,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("metrics_listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics_server_failed", "error", err)
		}
	}()

	slog.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = queue.SubscribeFileAnalyzed(ctx, func(handlerCtx context.Context, stagingKey string) error {
		start := time.Now()
		removeErr := staging.Remove(handlerCtx, stagingKey)
		workerMetrics.FinishCleanup(time.Since(start), removeErr)
		if removeErr != nil {
			slog.Warn("staging_cleanup_failed", "key", stagingKey, "error", removeErr)
			return removeErr
		}
		slog.Info("staging_cleaned", "key", stagingKey)
		return nil
	})
	if err != nil {
		slog.Error("worker_subscribe_failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("metrics_shutdown_failed", "error", err)
	}
}

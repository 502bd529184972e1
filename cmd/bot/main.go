package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kirillkom/telegram-gemini-bot/internal/adapters/telegram"
	"github.com/kirillkom/telegram-gemini-bot/internal/bootstrap"
	"github.com/kirillkom/telegram-gemini-bot/internal/config"
	"github.com/kirillkom/telegram-gemini-bot/internal/observability/logging"
	"github.com/kirillkom/telegram-gemini-bot/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("bot", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	botMetrics := metrics.NewBotMetrics("bot")
	mux := http.NewServeMux()
	mux.Handle("/metrics", botMetrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	metricsServer := &http.Server{
		Addr:         ":" + cfg.BotMetricsPort,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("metrics_listening", "port", cfg.BotMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics_server_failed", "error", err)
		}
	}()

	bot := telegram.NewBot(app.BotAPI, app.Dispatcher, app.Limiter, botMetrics, cfg.TelegramPollTimeout)
	if err := bot.Run(ctx); err != nil {
		slog.Error("bot_stopped", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("metrics_shutdown_failed", "error", err)
	}
}

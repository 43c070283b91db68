package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/server"
	"go-chi-calculator/internal/tape"
)

func main() {

	ctx := context.Background()

	// Configuration
	if err := loadDotEnv(); err != nil {
		panic(err)
	}
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Logger
	if err := observability.InitLogger(cfg.LogFormat); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Tracing, metrics, log export
	telemetryShutdown, err := initTelemetry(ctx, cfg)
	if err != nil {
		panic(err)
	}
	defer telemetryShutdown(ctx)

	// Tape
	store, err := tape.Open(cfg.TapePath)
	if err != nil {
		panic(err)
	}
	defer store.Close()

	// Sessions
	sessions := calculator.NewRegistry(cfg.MaxSessions)
	prometheus.MustRegister(calculator.NewCollector(sessions, store))

	handler := calculator.NewHandler(sessions, store, calculator.Limits{
		MaxLength:     cfg.MaxLength,
		WideMaxLength: cfg.WideMaxLength,
	})

	// Router
	router := server.NewRouter(handler)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		observability.Logger.Info("server started",
			zap.String("addr", cfg.HTTPAddr),
			zap.Bool("telemetry", cfg.TelemetryEnabled),
			zap.Bool("persistent_tape", cfg.TapePath != ""),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(err)
		}
	}()

	waitForShutdown(srv, cfg.ShutdownTimeout)
}

func waitForShutdown(srv *http.Server, timeout time.Duration) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Error("shutdown failed", zap.Error(err))
		return
	}
	observability.Logger.Info("server stopped")
}

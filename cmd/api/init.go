package main

import (
	"context"
	"errors"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
)

type shutdownFunc func(context.Context) error

// initTelemetry starts the OTLP trace, metric and log pipelines when enabled
// and registers the calculator's metric instruments. The returned function
// shuts down whatever was started.
func initTelemetry(ctx context.Context, cfg config.Config) (shutdownFunc, error) {
	var shutdowns []shutdownFunc
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if !cfg.TelemetryEnabled {
		return shutdown, calculator.InitMetrics()
	}

	for _, start := range []func(context.Context) (func(context.Context) error, error){
		observability.InitTracing,
		initMetrics,
		observability.InitLogging,
	} {
		fn, err := start(ctx)
		if err != nil {
			shutdown(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, fn)
	}

	return shutdown, nil
}

// initMetrics initialises all metric providers and application-specific
// metric instruments. Add new domain InitMetrics calls here as the project grows.
func initMetrics(ctx context.Context) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}

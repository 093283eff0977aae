package main

import (
	"context"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
)

// initTelemetry starts OTLP export when enabled and binds the calculator
// instruments to the exporting meter provider. Add new domain InitMetrics
// calls here as the service grows.
func initTelemetry(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	if !cfg.TelemetryEnabled {
		return func(context.Context) error { return nil }, nil
	}

	shutdown, err := observability.Setup(ctx)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}

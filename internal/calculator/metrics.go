package calculator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Instruments for POST /calculate, created by InitMetrics. Before InitMetrics
// runs they are no-op instruments from the global meter provider.
var (
	calculationsCounter metric.Int64Counter
	durationHistogram   metric.Float64Histogram
	errorCounter        metric.Int64Counter
	resultGauge         metric.Float64Gauge
)

func init() {
	if err := InitMetrics(); err != nil {
		panic(err)
	}
}

// InitMetrics (re)creates the calculator instruments against the current
// global meter provider. Call it again after observability.InitMetrics
// installs the exporting provider.
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	calculationsCounter, err = meter.Int64Counter("calculator.operations.total",
		metric.WithDescription("Calculations completed successfully, by operation"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating calculations counter: %w", err)
	}

	durationHistogram, err = meter.Float64Histogram("calculator.operation.duration",
		metric.WithDescription("Time spent computing a result in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating duration histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Rejected calculations, by operation and error kind"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("Most recent successful result"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	return nil
}

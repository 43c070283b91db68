package calculator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metric instruments. They start as no-ops and are replaced by InitMetrics.
var (
	keysCounter   metric.Int64Counter
	keysHistogram metric.Float64Histogram
	errorCounter  metric.Int64Counter
	resultGauge   metric.Float64Gauge
	depthGauge    metric.Int64Gauge
)

func init() {
	if err := registerInstruments(noop.NewMeterProvider().Meter("calculator")); err != nil {
		panic(err)
	}
}

// InitMetrics registers custom OTel metric instruments for the calculator domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	return registerInstruments(otel.Meter("calculator"))
}

func registerInstruments(meter metric.Meter) error {
	var err error

	keysCounter, err = meter.Int64Counter("calculator.keys.total",
		metric.WithDescription("Total number of keypad keys processed"),
		metric.WithUnit("{key}"),
	)
	if err != nil {
		return fmt.Errorf("creating keys counter: %w", err)
	}

	keysHistogram, err = meter.Float64Histogram("calculator.key.duration",
		metric.WithDescription("Duration of single key presses in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1),
	)
	if err != nil {
		return fmt.Errorf("creating keys histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of calculator errors, arithmetic and request"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The last numeric display value produced"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	depthGauge, err = meter.Int64Gauge("calculator.stack.depth",
		metric.WithDescription("Pending operations after the last key batch"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating depth gauge: %w", err)
	}

	return nil
}

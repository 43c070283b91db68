package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Logger is the process-wide logger. It discards everything until InitLogger
// runs, so packages and tests can log unconditionally.
var Logger = zap.NewNop()

// InitLogger builds Logger for the given format: "json" for production
// output, "console" for human-readable development output.
func InitLogger(format string) error {
	var (
		l   *zap.Logger
		err error
	)

	switch format {
	case "", "json":
		l, err = zap.NewProduction()
	case "console":
		l, err = zap.NewDevelopment()
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	if err != nil {
		return err
	}

	Logger = l
	return nil
}

func SyncLogger() {
	_ = Logger.Sync()
}

// LoggerWithTrace returns a child logger enriched with trace_id and span_id
// fields from the active OTel span in ctx.
//
// ctx itself is attached as a zap.Any("context", ctx) field: the otelzap
// bridge uses any context-valued field as the context for log.Logger.Emit,
// which fills in the native TraceID/SpanID of the exported OTLP record.
// Without it, records exported to Loki carry all-zero trace IDs and the
// Loki → Tempo derived field cannot resolve them.
//
// The plain string fields keep stdout JSON greppable.
func LoggerWithTrace(ctx context.Context) *zap.Logger {
	span := trace.SpanContextFromContext(ctx)

	if !span.IsValid() {
		return Logger
	}

	return Logger.With(
		zap.Any("context", ctx),
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	)
}

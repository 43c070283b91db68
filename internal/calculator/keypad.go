package calculator

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go-chi-calculator/internal/calculator/engine"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/tape"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// maxKeysPerRequest bounds a single batch of key presses.
const maxKeysPerRequest = 1024

// press applies keys to s in order, one child span per key, and appends
// completed calculations to store. A nil store or a session without an id
// skips the tape. A deleted session fails with ErrSessionNotFound and is left
// untouched. Arithmetic failures are part of the response, not errors.
func press(ctx context.Context, s *Session, keys []engine.Key, store tape.Store) (KeysResponse, error) {
	logger := observability.LoggerWithTrace(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return KeysResponse{}, ErrSessionNotFound
	}

	resp := KeysResponse{
		ID:    s.id,
		Steps: make([]StepResult, 0, len(keys)),
	}

	for i, k := range keys {
		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.key.%d", i),
			trace.WithAttributes(
				attribute.Int("calculator.key.index", i),
				attribute.String("calculator.key", k.String()),
				attribute.String("calculator.display.before", s.calc.Display()),
			),
		)

		start := time.Now()
		res := s.calc.Press(k)
		elapsed := float64(time.Since(start).Nanoseconds()) / 1e6 // ms

		attrs := metric.WithAttributes(attribute.String("key", k.String()))
		keysCounter.Add(ctx, 1, attrs)
		keysHistogram.Record(ctx, elapsed, attrs)

		step := StepResult{
			Key:     k.String(),
			Display: res.Display,
			State:   res.State.String(),
		}

		stepSpan.SetAttributes(
			attribute.String("calculator.display", res.Display),
			attribute.String("calculator.state", res.State.String()),
		)

		if res.Err != nil {
			step.Error = res.Err.Error()
			resp.Error = step.Error

			stepSpan.RecordError(res.Err)
			stepSpan.SetStatus(codes.Error, res.Err.Error())
			errorCounter.Add(ctx, 1, metric.WithAttributes(
				attribute.String("operation", "key"),
				attribute.String("kind", "arithmetic"),
			))

			logger.Warn("arithmetic error",
				zap.String("session_id", s.id),
				zap.Int("step", i),
				zap.String("key", k.String()),
				zap.Error(res.Err),
				zap.String("request_id", observability.RequestIDFromContext(ctx)),
			)
		} else {
			stepSpan.SetStatus(codes.Ok, "")
			if v, err := strconv.ParseFloat(res.Display, 64); err == nil {
				resultGauge.Record(ctx, v)
			}
		}

		if expr, done := s.track(k, res); done && store != nil && s.id != "" {
			entry, err := store.Append(ctx, s.id, tape.Entry{Expression: expr, Result: res.Display})
			if err != nil {
				stepSpan.RecordError(err)
				stepSpan.SetStatus(codes.Error, "tape append failed")
				stepSpan.End()
				return KeysResponse{}, fmt.Errorf("append tape entry: %w", err)
			}
			stepSpan.AddEvent("tape.append", trace.WithAttributes(
				attribute.Int64("tape.seq", entry.Seq),
				attribute.String("tape.expression", expr),
			))
		}

		stepSpan.End()
		resp.Steps = append(resp.Steps, step)
	}

	resp.Display = s.calc.Display()
	resp.State = s.calc.State().String()
	resp.Depth = s.calc.Depth()
	depthGauge.Record(ctx, int64(resp.Depth))

	return resp, nil
}

// parseKeys classifies the keys of a request.
func parseKeys(req KeysRequest) ([]engine.Key, error) {
	var (
		keys []engine.Key
		err  error
	)
	if req.Script != "" {
		keys, err = engine.ParseKeys(req.Script)
	} else {
		keys, err = engine.ParseKeyList(req.Keys)
	}
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, errNoKeys
	}
	if len(keys) > maxKeysPerRequest {
		return nil, fmt.Errorf("%w: %d keys, limit %d", errTooManyKeys, len(keys), maxKeysPerRequest)
	}
	return keys, nil
}

package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go-chi-calculator/internal/calculator/engine"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/tape"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var (
	errNoKeys        = errors.New("no keys provided")
	errTooManyKeys   = errors.New("too many keys")
	errUnknownLayout = errors.New("unknown layout")
	errInvalidLimit  = errors.New("limit must be a non-negative integer")
)

// Limits are the boundary-controlled operand lengths per layout. The session
// limit belongs to the Registry.
type Limits struct {
	MaxLength     int // default layout
	WideMaxLength int // wide layout
}

func (l Limits) maxLength(layout string, override int) (int, error) {
	if override != 0 {
		if override < engine.MinMaxLength {
			return 0, fmt.Errorf("%w, got %d", engine.ErrInvalidMaxLength, override)
		}
		return override, nil
	}
	switch layout {
	case "", "default":
		return l.MaxLength, nil
	case "wide":
		return l.WideMaxLength, nil
	}
	return 0, fmt.Errorf("%w %q", errUnknownLayout, layout)
}

// Handler serves the keypad endpoints.
type Handler struct {
	sessions *Registry
	tape     tape.Store
	limits   Limits
}

// NewHandler wires the keypad endpoints to a session registry and tape store.
func NewHandler(sessions *Registry, store tape.Store, limits Limits) *Handler {
	return &Handler{sessions: sessions, tape: store, limits: limits}
}

// ---------------------------------------------------------------------------
// Handlers: sessions
// ---------------------------------------------------------------------------

// CreateSession handles POST /calculator/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "calculator.session.create")
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		observability.RecordError(ctx, span, logger, errorCounter, "session.create", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	maxLength, err := h.limits.maxLength(req.Layout, req.MaxLength)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session.create", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	s, err := h.sessions.Create(engine.WithMaxLength(maxLength))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrTooManySessions) {
			status = http.StatusTooManyRequests
		}
		observability.RecordError(ctx, span, logger, errorCounter, "session.create", err.Error(), err, status, w)
		return
	}

	span.SetAttributes(
		attribute.String("calculator.session.id", s.ID()),
		attribute.Int("calculator.max_length", maxLength),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("session created",
		zap.String("session_id", s.ID()),
		zap.Int("max_length", maxLength),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, s.Snapshot())
}

// GetSession handles GET /calculator/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r, "session.get")
	if !ok {
		return
	}
	handlers.WriteJSON(w, http.StatusOK, s.Snapshot())
}

// DeleteSession handles DELETE /calculator/sessions/{id} and drops its tape.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "calculator.session.delete")
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("calculator.session.id", id))

	if err := h.sessions.Delete(id); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session.delete", err.Error(), err, http.StatusNotFound, w)
		return
	}
	if err := h.tape.Delete(ctx, id); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session.delete", "deleting tape failed", err, http.StatusInternalServerError, w)
		return
	}

	logger.Info("session deleted",
		zap.String("session_id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Handlers: key presses
// ---------------------------------------------------------------------------

// PressKeys handles POST /calculator/sessions/{id}/keys. Every key is
// validated before any is applied, so a bad request leaves the session as it was.
func (h *Handler) PressKeys(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "calculator.keys")
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("calculator.session.id", id))

	s, err := h.sessions.Get(id)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", err.Error(), err, http.StatusNotFound, w)
		return
	}

	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "invalid request body", err, http.StatusBadRequest, w)
		return
	}
	keys, err := parseKeys(req)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	h.respond(ctx, span, w, s, keys)
}

// Evaluate handles POST /calculator/evaluate. It replays keys in a fresh,
// unregistered session and returns the outcome.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "calculator.evaluate")
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "invalid request body", err, http.StatusBadRequest, w)
		return
	}
	keys, err := parseKeys(req)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", err.Error(), err, http.StatusBadRequest, w)
		return
	}
	maxLength, err := h.limits.maxLength(req.Layout, req.MaxLength)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	s, err := newSession("", engine.WithMaxLength(maxLength))
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	h.respond(ctx, span, w, s, keys)
}

func (h *Handler) respond(ctx context.Context, span trace.Span, w http.ResponseWriter, s *Session, keys []engine.Key) {
	logger := observability.LoggerWithTrace(ctx)
	span.SetAttributes(attribute.Int("calculator.keys.count", len(keys)))

	resp, err := press(ctx, s, keys, h.tape)
	if errors.Is(err, ErrSessionNotFound) {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", err.Error(), err, http.StatusNotFound, w)
		return
	}
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "recording tape failed", err, http.StatusInternalServerError, w)
		return
	}

	span.AddEvent("keys.complete", trace.WithAttributes(
		attribute.String("display", resp.Display),
		attribute.Int("depth", resp.Depth),
	))
	span.SetAttributes(attribute.String("calculator.display", resp.Display))
	span.SetStatus(codes.Ok, "")

	logger.Info("keys applied",
		zap.String("session_id", s.ID()),
		zap.Int("keys", len(keys)),
		zap.String("display", resp.Display),
		zap.String("state", resp.State),
		zap.Int("depth", resp.Depth),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// ---------------------------------------------------------------------------
// Handler: tape
// ---------------------------------------------------------------------------

// GetTape handles GET /calculator/sessions/{id}/tape?limit=n
func (h *Handler) GetTape(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r, "tape")
	if !ok {
		return
	}

	ctx, span := tracer.Start(r.Context(), "calculator.tape")
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			observability.RecordError(ctx, span, logger, errorCounter, "tape", errInvalidLimit.Error(), errInvalidLimit, http.StatusBadRequest, w)
			return
		}
		limit = n
	}

	entries, err := h.tape.List(ctx, s.ID(), limit)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "tape", "reading tape failed", err, http.StatusInternalServerError, w)
		return
	}

	resp := TapeResponse{ID: s.ID(), Entries: make([]TapeEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, TapeEntry{
			Seq:        e.Seq,
			Expression: e.Expression,
			Result:     e.Result,
			CreatedAt:  e.CreatedAt,
		})
	}
	span.SetAttributes(attribute.Int("calculator.tape.entries", len(resp.Entries)))
	span.SetStatus(codes.Ok, "")

	handlers.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request, opName string) (*Session, bool) {
	id := chi.URLParam(r, "id")
	s, err := h.sessions.Get(id)
	if err != nil {
		ctx := r.Context()
		observability.RecordError(ctx, trace.SpanFromContext(ctx), observability.LoggerWithTrace(ctx), errorCounter, opName, err.Error(), err, http.StatusNotFound, w)
		return nil, false
	}
	return s, true
}

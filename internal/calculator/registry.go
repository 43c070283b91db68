package calculator

import (
	"errors"
	"strings"
	"sync"
	"time"

	"go-chi-calculator/internal/calculator/engine"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("session limit reached")
)

// Session is a keypad session shared between requests. Its mutex makes key
// presses from concurrent requests apply one batch at a time, in arrival order.
type Session struct {
	mu        sync.Mutex
	id        string
	calc      *engine.Session
	expr      strings.Builder
	closed    bool
	createdAt time.Time
}

func newSession(id string, opts ...engine.Option) (*Session, error) {
	calc, err := engine.NewSession(opts...)
	if err != nil {
		return nil, err
	}
	return &Session{id: id, calc: calc, createdAt: time.Now().UTC()}, nil
}

// ID returns the session identifier; empty for one-off evaluations.
func (s *Session) ID() string { return s.id }

// Snapshot returns the current display state.
func (s *Session) Snapshot() SessionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionResponse{
		ID:        s.id,
		Display:   s.calc.Display(),
		State:     s.calc.State().String(),
		Depth:     s.calc.Depth(),
		MaxLength: s.calc.MaxLength(),
	}
}

// track appends k to the expression typed since the last completed equals
// and returns the finished expression when k completes one. An arithmetic
// error ends the expression, so the next key starts a fresh one.
func (s *Session) track(k engine.Key, res engine.Result) (string, bool) {
	if k == engine.KeyClear {
		s.expr.Reset()
		return "", false
	}
	if k != engine.KeyEquals && (res.Err != nil || res.Display == engine.ErrorSentinel) {
		s.expr.Reset()
		return "", false
	}

	label := k.String()
	cur := s.expr.String()
	if n := len(cur); n > 0 && !(isNumeralKey(k) && isNumeralByte(cur[n-1])) {
		s.expr.WriteByte(' ')
	}
	s.expr.WriteString(label)

	if k != engine.KeyEquals {
		return "", false
	}
	expr := s.expr.String()
	s.expr.Reset()
	if res.Err != nil || res.Display == engine.ErrorSentinel {
		return "", false
	}
	return expr, true
}

func isNumeralKey(k engine.Key) bool { return k.IsDigit() || k == engine.KeyDot }

func isNumeralByte(c byte) bool { return (c >= '0' && c <= '9') || c == '.' }

// Registry holds the open keypad sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	limit    int
}

// NewRegistry returns a registry that holds at most limit sessions.
func NewRegistry(limit int) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		limit:    limit,
	}
}

// Create opens a new session.
func (r *Registry) Create(opts ...engine.Option) (*Session, error) {
	s, err := newSession(uuid.New().String(), opts...)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sessions) >= r.limit {
		return nil, ErrTooManySessions
	}
	r.sessions[s.id] = s
	return s, nil
}

// Get returns the session with the given id.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete closes the session with the given id. It waits for a key batch in
// flight on that session to finish; later batches fail with
// ErrSessionNotFound.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok {
		r.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	r.mu.Unlock()

	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

package tape

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-memory tape store.
type Memory struct {
	mu     sync.RWMutex
	tapes  map[string][]Entry
	closed bool
	now    func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		tapes: make(map[string][]Entry),
		now:   time.Now,
	}
}

// Append adds an entry to the session's tape.
func (m *Memory) Append(_ context.Context, sessionID string, e Entry) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return Entry{}, ErrClosed
	}

	entries := m.tapes[sessionID]
	e.Seq = int64(len(entries)) + 1
	if e.CreatedAt.IsZero() {
		e.CreatedAt = m.now().UTC()
	}
	m.tapes[sessionID] = append(entries, e)
	return e, nil
}

// List returns a copy of the session's entries.
func (m *Memory) List(_ context.Context, sessionID string, limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}

	entries := m.tapes[sessionID]
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out, nil
}

// Delete drops the session's tape.
func (m *Memory) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.tapes, sessionID)
	return nil
}

// Count returns the total number of entries.
func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return 0, ErrClosed
	}
	n := 0
	for _, entries := range m.tapes {
		n += len(entries)
	}
	return n, nil
}

// Close marks the store closed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

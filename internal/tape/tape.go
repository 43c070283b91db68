// Package tape persists the calculation tape: one entry per completed
// equals press in a keypad session.
package tape

import (
	"context"
	"errors"
	"time"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("tape store closed")

// Entry is one line on the tape.
type Entry struct {
	Seq        int64
	Expression string
	Result     string
	CreatedAt  time.Time
}

// Store is the interface for tape persistence.
type Store interface {
	// Append stores e at the end of the session's tape and returns it with
	// Seq (and CreatedAt, when zero) filled in.
	Append(ctx context.Context, sessionID string, e Entry) (Entry, error)
	// List returns the session's entries in Seq order. A positive limit
	// keeps only the most recent entries.
	List(ctx context.Context, sessionID string, limit int) ([]Entry, error)
	// Delete removes the whole tape of a session.
	Delete(ctx context.Context, sessionID string) error
	// Count returns the number of entries across all sessions.
	Count(ctx context.Context) (int, error)
	// Close releases resources.
	Close() error
}

// Open returns a SQLite store at path, or an in-memory store when path is
// empty.
func Open(path string) (Store, error) {
	if path == "" {
		return NewMemory(), nil
	}
	return NewSQLite(path)
}

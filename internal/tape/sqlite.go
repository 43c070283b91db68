package tape

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// SchemaVersion is the current tape schema version.
const SchemaVersion = "1"

// SQLite is a SQLite-backed tape store.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLite opens (and if needed creates) a tape database at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open tape db: %w", err)
	}
	// a single connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS tape (
			session_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			expression TEXT NOT NULL,
			result TEXT NOT NULL,
			created_at TEXT NOT NULL,
			PRIMARY KEY (session_id, seq)
		);
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create tape schema: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.checkSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) checkSchema() error {
	var version string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = 'schema_version'").Scan(&version)
	switch {
	case err == sql.ErrNoRows:
		_, err = s.db.Exec("INSERT INTO metadata (key, value) VALUES ('schema_version', ?)", SchemaVersion)
		if err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case version != SchemaVersion:
		return fmt.Errorf("unsupported tape schema version: %s (expected %s)", version, SchemaVersion)
	}
	return nil
}

// Append adds an entry with the next sequence number for the session.
func (s *SQLite) Append(ctx context.Context, sessionID string, e Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), 0) + 1 FROM tape WHERE session_id = ?", sessionID,
	).Scan(&e.Seq)
	if err != nil {
		return Entry{}, err
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tape (session_id, seq, expression, result, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, sessionID, e.Seq, e.Expression, e.Result, e.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return Entry{}, err
	}

	if err := tx.Commit(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// List returns the session's entries in sequence order.
func (s *SQLite) List(ctx context.Context, sessionID string, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT seq, expression, result, created_at FROM tape
		WHERE session_id = ? ORDER BY seq DESC`
	args := []any{sessionID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			ts string
		)
		if err := rows.Scan(&e.Seq, &e.Expression, &e.Result, &ts); err != nil {
			return nil, err
		}
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse created_at of entry %d: %w", e.Seq, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// newest first from the query; callers expect sequence order
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Delete removes the session's tape.
func (s *SQLite) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM tape WHERE session_id = ?", sessionID)
	return err
}

// Count returns the total number of stored entries.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tape").Scan(&n)
	return n, err
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

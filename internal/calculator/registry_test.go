package calculator

import (
	"errors"
	"sync"
	"testing"

	"go-chi-calculator/internal/calculator/engine"
	"go-chi-calculator/internal/tape"
)

func TestRegistryLifecycle(t *testing.T) {
	reg := NewRegistry(2)

	a, err := reg.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := reg.Create(engine.WithMaxLength(engine.WideMaxLength)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := reg.Create(); !errors.Is(err, ErrTooManySessions) {
		t.Fatalf("expected ErrTooManySessions, got %v", err)
	}

	got, err := reg.Get(a.ID())
	if err != nil || got != a {
		t.Fatalf("expected to get session %s back, got %v (%v)", a.ID(), got, err)
	}

	if err := reg.Delete(a.ID()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := reg.Get(a.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := reg.Delete(a.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on second delete, got %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", reg.Len())
	}
}

func TestRegistryCreateRejectsInvalidLength(t *testing.T) {
	reg := NewRegistry(1)
	if _, err := reg.Create(engine.WithMaxLength(1)); !errors.Is(err, engine.ErrInvalidMaxLength) {
		t.Fatalf("expected ErrInvalidMaxLength, got %v", err)
	}
	if reg.Len() != 0 {
		t.Fatalf("expected no session to be registered, got %d", reg.Len())
	}
}

func TestSessionSerialisesConcurrentBatches(t *testing.T) {
	reg := NewRegistry(1)
	s, err := reg.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := press(t.Context(), s, []engine.Key{engine.Key1, engine.KeyAdd}, nil); err != nil {
		t.Fatalf("press failed: %v", err)
	}

	// each batch adds one; interleaved keys would corrupt the running total
	batch := []engine.Key{engine.Key1, engine.KeyAdd}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := press(t.Context(), s, batch, nil); err != nil {
				t.Errorf("press failed: %v", err)
			}
		}()
	}
	wg.Wait()

	resp, err := press(t.Context(), s, []engine.Key{engine.Key0, engine.KeyEquals}, nil)
	if err != nil {
		t.Fatalf("press failed: %v", err)
	}
	if resp.Display != "21" {
		t.Fatalf("expected 21, got %q", resp.Display)
	}
}

func TestSessionTrackExpression(t *testing.T) {
	s, err := newSession("x")
	if err != nil {
		t.Fatalf("newSession failed: %v", err)
	}

	var got []string
	for _, k := range []engine.Key{engine.Key1, engine.Key2, engine.KeyDot, engine.Key5, engine.KeyNegate, engine.KeySubtract, engine.Key3, engine.KeyEquals} {
		if expr, done := s.track(k, s.calc.Press(k)); done {
			got = append(got, expr)
		}
	}

	if len(got) != 1 || got[0] != "12.5 +/- - 3 =" {
		t.Fatalf("expected one expression %q, got %q", "12.5 +/- - 3 =", got)
	}
}

func TestSessionTrackDropsExpressionOnError(t *testing.T) {
	s, err := newSession("x")
	if err != nil {
		t.Fatalf("newSession failed: %v", err)
	}

	keys, err := engine.ParseKeys("5 / 0 + 7 =")
	if err != nil {
		t.Fatalf("ParseKeys failed: %v", err)
	}
	var got []string
	for _, k := range keys {
		if expr, done := s.track(k, s.calc.Press(k)); done {
			got = append(got, expr)
		}
	}

	if len(got) != 1 || got[0] != "7 =" {
		t.Fatalf("expected only %q after the failure, got %q", "7 =", got)
	}
}

func TestPressOnDeletedSession(t *testing.T) {
	reg := NewRegistry(1)
	store := tape.NewMemory()
	defer store.Close()

	s, err := reg.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := reg.Delete(s.ID()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(t.Context(), s.ID()); err != nil {
		t.Fatalf("deleting tape: %v", err)
	}

	keys, err := engine.ParseKeys("1 + 1 =")
	if err != nil {
		t.Fatalf("ParseKeys failed: %v", err)
	}
	if _, err := press(t.Context(), s, keys, store); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	n, err := store.Count(t.Context())
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no tape entries for a deleted session, got %d", n)
	}
	if snap := s.Snapshot(); snap.Display != "0" || snap.Depth != 0 {
		t.Fatalf("expected the deleted session untouched, got %+v", snap)
	}
}

package engine

import (
	"errors"
	"strconv"
	"testing"
)

func TestCombineDivideMatchesQuotient(t *testing.T) {
	tests := []struct{ a, b string }{
		{"10", "4"},
		{"1", "3"},
		{"-7.5", "2.5"},
		{"0", "9"},
		{"123456789", "0.001"},
	}

	for _, tc := range tests {
		t.Run(tc.a+"/"+tc.b, func(t *testing.T) {
			e := NewEvaluator()
			x, _ := strconv.ParseFloat(tc.a, 64)
			y, _ := strconv.ParseFloat(tc.b, 64)

			got := e.combine(tc.a, tc.b, OpDivide)
			if want := formatNumber(x / y); got != want {
				t.Fatalf("expected %q, got %q", want, got)
			}
			if e.Err() != nil {
				t.Fatalf("unexpected error: %v", e.Err())
			}
		})
	}
}

func TestCombineDivideByZeroClearsState(t *testing.T) {
	for _, zero := range []string{"0", "-0", "0.0"} {
		t.Run(zero, func(t *testing.T) {
			e := NewEvaluator()
			e.Apply(OpAdd, "1")
			e.Apply(OpMultiply, "2")

			got := e.combine("5", zero, OpDivide)
			if got != ErrorSentinel {
				t.Fatalf("expected %q, got %q", ErrorSentinel, got)
			}
			if !errors.Is(e.Err(), ErrDivisionByZero) {
				t.Fatalf("expected ErrDivisionByZero, got %v", e.Err())
			}
			if e.Depth() != 0 {
				t.Fatalf("expected empty stack, got depth %d", e.Depth())
			}
			if op, _ := e.LastOperation(); op != OpNone {
				t.Fatalf("expected memory to be cleared, got %s", op)
			}
		})
	}
}

func TestCombineFailures(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		wantErr error
	}{
		{"sentinel operand", ErrorSentinel, "1", ErrInvalidOperand},
		{"garbage operand", "1", "abc", ErrInvalidOperand},
		{"infinite operand", "Inf", "1", ErrInvalidOperand},
		{"overflow", "1e308", "10", ErrOverflow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEvaluator()
			if got := e.combine(tc.a, tc.b, OpMultiply); got != ErrorSentinel {
				t.Fatalf("expected %q, got %q", ErrorSentinel, got)
			}
			if !errors.Is(e.Err(), tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, e.Err())
			}
			if !errors.Is(e.Err(), ErrArithmetic) {
				t.Fatalf("expected error to wrap ErrArithmetic, got %v", e.Err())
			}
		})
	}
}

func TestApplyDefersHigherPrecedence(t *testing.T) {
	e := NewEvaluator()

	if got := e.Apply(OpAdd, "3"); got != "3" {
		t.Fatalf("expected display unchanged, got %q", got)
	}
	if got := e.Apply(OpMultiply, "4"); got != "4" {
		t.Fatalf("expected display unchanged, got %q", got)
	}
	if e.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", e.Depth())
	}

	// equal precedence resolves the deferred multiply, then the add
	if got := e.Apply(OpSubtract, "2"); got != "11" {
		t.Fatalf("expected 11, got %q", got)
	}
	if e.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", e.Depth())
	}
	if got := e.ApplyEquals("1"); got != "10" {
		t.Fatalf("expected 10, got %q", got)
	}
}

func TestApplyIgnoresNonBinaryAndSentinel(t *testing.T) {
	e := NewEvaluator()

	if got := e.Apply(OpPercent, "5"); got != "5" || e.Depth() != 0 {
		t.Fatalf("expected no-op for percent, got %q depth %d", got, e.Depth())
	}
	if got := e.Apply(OpAdd, ErrorSentinel); got != ErrorSentinel || e.Depth() != 0 {
		t.Fatalf("expected no-op on sentinel, got %q depth %d", got, e.Depth())
	}
}

func TestApplyEqualsWithoutOperationIsNoop(t *testing.T) {
	e := NewEvaluator()
	if got := e.ApplyEquals("42"); got != "42" {
		t.Fatalf("expected 42, got %q", got)
	}
}

func TestApplyEqualsRepeatsLastOperation(t *testing.T) {
	e := NewEvaluator()
	e.Apply(OpAdd, "5")

	display := "3"
	for _, want := range []string{"8", "11", "14"} {
		display = e.ApplyEquals(display)
		if display != want {
			t.Fatalf("expected %q, got %q", want, display)
		}
	}
	if op, second := e.LastOperation(); op != OpAdd || second != "3" {
		t.Fatalf("expected memory (Add, 3), got (%s, %q)", op, second)
	}
}

func TestApplyPercent(t *testing.T) {
	tests := []struct {
		name    string
		pending []pending
		display string
		want    string
		applied bool
	}{
		{"alone", nil, "50", "0.5", true},
		{"of additive base", []pending{{"100", OpAdd}}, "10", "10", true},
		{"of subtractive base", []pending{{"200", OpSubtract}}, "25", "50", true},
		{"multiplicative keeps raw percentage", []pending{{"2", OpMultiply}}, "50", "0.5", true},
		{"only top of stack inspected", []pending{{"100", OpAdd}, {"3", OpMultiply}}, "10", "0.1", true},
		{"sentinel base is ignored", []pending{{ErrorSentinel, OpAdd}}, "10", "10", false},
		{"sentinel display is ignored", nil, ErrorSentinel, ErrorSentinel, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEvaluator()
			for _, p := range tc.pending {
				e.stack.Push(p.operand, p.op)
			}

			got, applied := e.ApplyPercent(tc.display)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
			if applied != tc.applied {
				t.Fatalf("expected applied %t, got %t", tc.applied, applied)
			}
			if e.Depth() != len(tc.pending) {
				t.Fatalf("expected stack untouched at depth %d, got %d", len(tc.pending), e.Depth())
			}
		})
	}
}

func TestApplyPercentAloneForgetsLastOperation(t *testing.T) {
	e := NewEvaluator()
	e.Apply(OpAdd, "5")
	e.ApplyEquals("3")

	e.ApplyPercent("8")
	if op, _ := e.LastOperation(); op != OpNone {
		t.Fatalf("expected memory cleared after percent, got %s", op)
	}
}

func TestApplyNegate(t *testing.T) {
	tests := []struct {
		name      string
		display   string
		state     InputState
		want      string
		wantState InputState
	}{
		{"adds sign", "5", StateIntegerPart, "-5", StateIntegerPart},
		{"strips sign", "-5", StateIntegerPart, "5", StateIntegerPart},
		{"negates zero", "0", StateInitial, "-0", StateInitial},
		{"seeds negative operand", "12", StateBinaryOpPending, "-0", StateSignTogglePending},
		{"undo seeded sign", "-0", StateSignTogglePending, "0", StateBinaryOpPending},
		{"sentinel ignored", ErrorSentinel, StateEqualJustExecuted, ErrorSentinel, StateEqualJustExecuted},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEvaluator()
			got, state := e.ApplyNegate(tc.display, tc.state)
			if got != tc.want || state != tc.wantState {
				t.Fatalf("expected (%q, %s), got (%q, %s)", tc.want, tc.wantState, got, state)
			}
		})
	}
}

func TestFormatting(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{8, "8"},
		{2.5, "2.5"},
		{-0.25, "-0.25"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
	}
	for _, tc := range tests {
		if got := formatNumber(tc.in); got != tc.want {
			t.Fatalf("formatNumber(%v): expected %q, got %q", tc.in, tc.want, got)
		}
	}

	for in, want := range map[string]string{"5.0": "5", "-3.0": "-3", "5.05": "5.05", "7": "7", "0.": "0."} {
		if got := TrimWholeFraction(in); got != want {
			t.Fatalf("TrimWholeFraction(%q): expected %q, got %q", in, want, got)
		}
	}
}

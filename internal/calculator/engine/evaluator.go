package engine

import (
	"fmt"
	"math"
	"strings"
)

// Evaluator resolves chained operations with operator precedence. It keeps a
// stack of deferred operations and remembers the last binary operation so
// that repeated equals presses re-apply it.
//
// An Evaluator is not safe for concurrent use.
type Evaluator struct {
	stack opStack

	lastOp     Operator
	lastSecond string

	err error
}

// NewEvaluator returns an evaluator with an empty stack and memory.
func NewEvaluator() *Evaluator {
	e := &Evaluator{}
	e.Reset()
	return e
}

// Reset empties the stack and forgets the last operation.
func (e *Evaluator) Reset() {
	e.stack.Clear()
	e.lastOp = OpNone
	e.lastSecond = DefaultDisplay
	e.err = nil
}

// Err returns the arithmetic failure produced by the most recent call, if any.
func (e *Evaluator) Err() error { return e.err }

// Depth returns the number of deferred operations.
func (e *Evaluator) Depth() int { return e.stack.Len() }

// LastOperation returns the remembered operator and its second operand.
// The operator is OpNone when nothing is remembered.
func (e *Evaluator) LastOperation() (Operator, string) {
	return e.lastOp, e.lastSecond
}

// Apply handles a binary operator press with display as the current operand
// and returns the new display.
func (e *Evaluator) Apply(op Operator, display string) string {
	e.err = nil
	if !op.Binary() || display == ErrorSentinel {
		return display
	}

	opPrec := op.Precedence()
	if opPrec > e.stack.TopPrecedence() {
		e.stack.Push(display, op)
		e.lastOp = op
		return display
	}

	result := e.drain(opPrec, display)
	if result == ErrorSentinel {
		return result
	}
	e.stack.Push(result, op)
	return result
}

// ApplyEquals resolves everything still pending, or repeats the last
// operation when nothing is pending.
func (e *Evaluator) ApplyEquals(display string) string {
	e.err = nil
	if e.lastOp == OpNone {
		return display
	}
	if !e.stack.Empty() {
		return e.drain(PrecedenceNone, display)
	}
	return e.combine(display, e.lastSecond, e.lastOp)
}

// ApplyPercent converts display to a percentage. With an additive operation
// pending the percentage is taken of that operation's first operand, so
// "100 + 10 %" shows 10. The boolean is false when the press was ignored
// and nothing changed.
func (e *Evaluator) ApplyPercent(display string) (string, bool) {
	e.err = nil
	if display == ErrorSentinel {
		return display, false
	}
	v, ok := parseOperand(display)
	if !ok {
		return e.fail(fmt.Errorf("%w: %q", ErrInvalidOperand, display)), true
	}
	percentage := v / 100

	top, ok := e.stack.Peek()
	if !ok {
		e.lastOp = OpNone
		return formatNumber(percentage), true
	}
	if top.operand == ErrorSentinel {
		return display, false
	}
	if !top.op.Additive() {
		return formatNumber(percentage), true
	}
	base, ok := parseOperand(top.operand)
	if !ok {
		return display, false
	}
	return e.finite(base * percentage), true
}

// ApplyNegate toggles the sign of display. When a binary operator was just
// pressed it instead seeds "-0" for the next operand and reports that the
// sign is pending.
func (e *Evaluator) ApplyNegate(display string, state InputState) (string, InputState) {
	e.err = nil
	if display == ErrorSentinel {
		return display, state
	}
	if state == StateBinaryOpPending {
		return "-0", StateSignTogglePending
	}
	if strings.HasPrefix(display, "-") {
		display = display[1:]
		if state == StateSignTogglePending {
			state = StateBinaryOpPending
		}
		return display, state
	}
	return "-" + display, state
}

// drain pops and combines deferred operations while their precedence is at
// least prec, feeding each result in as the next second operand.
func (e *Evaluator) drain(prec Precedence, second string) string {
	result := second
	for !e.stack.Empty() && prec <= e.stack.TopPrecedence() {
		p, _ := e.stack.Pop()
		result = e.combine(p.operand, result, p.op)
		if result == ErrorSentinel {
			break
		}
	}
	return result
}

// combine applies op to a and b. Failures clear all pending state and
// return ErrorSentinel. Success remembers op and b for repeated equals.
func (e *Evaluator) combine(a, b string, op Operator) string {
	x, ok := parseOperand(a)
	if !ok {
		return e.fail(fmt.Errorf("%w: %q", ErrInvalidOperand, a))
	}
	y, ok := parseOperand(b)
	if !ok {
		return e.fail(fmt.Errorf("%w: %q", ErrInvalidOperand, b))
	}

	var v float64
	switch op {
	case OpAdd:
		v = x + y
	case OpSubtract:
		v = x - y
	case OpMultiply:
		v = x * y
	case OpDivide:
		if y == 0 {
			return e.fail(fmt.Errorf("%w: %s / %s", ErrDivisionByZero, a, b))
		}
		v = x / y
	default:
		return e.fail(fmt.Errorf("%w: %s is not binary", ErrArithmetic, op))
	}

	result := e.finite(v)
	if result == ErrorSentinel {
		return result
	}
	e.lastOp = op
	e.lastSecond = b
	return result
}

func (e *Evaluator) finite(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return e.fail(ErrOverflow)
	}
	return formatNumber(v)
}

func (e *Evaluator) fail(err error) string {
	e.stack.Clear()
	e.lastOp = OpNone
	e.lastSecond = DefaultDisplay
	e.err = err
	return ErrorSentinel
}

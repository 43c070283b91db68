// Package engine implements a keypad calculator core: an input accumulator
// that builds operands from digit keys and an evaluator that resolves chained
// operations by precedence. It performs no I/O.
package engine

// Result is the outcome of a single key press.
type Result struct {
	Key     Key
	Display string
	State   InputState
	// Err is set when the key produced ErrorSentinel.
	Err error
}

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	maxLength int
}

// WithMaxLength sets the maximum operand length accepted from digit keys.
func WithMaxLength(n int) Option {
	return func(o *sessionOptions) {
		o.maxLength = n
	}
}

// Session routes keys to the accumulator or the evaluator and owns the
// display string they share. A Session is not safe for concurrent use.
type Session struct {
	acc     *Accumulator
	eval    *Evaluator
	display string
	state   InputState
}

// NewSession returns a session showing DefaultDisplay.
func NewSession(opts ...Option) (*Session, error) {
	o := sessionOptions{maxLength: DefaultMaxLength}
	for _, opt := range opts {
		opt(&o)
	}

	acc, err := NewAccumulator(o.maxLength)
	if err != nil {
		return nil, err
	}

	return &Session{
		acc:     acc,
		eval:    NewEvaluator(),
		display: DefaultDisplay,
		state:   StateInitial,
	}, nil
}

// Display returns the string currently shown.
func (s *Session) Display() string { return s.display }

// State returns the current input state.
func (s *Session) State() InputState { return s.state }

// Depth returns the number of deferred operations.
func (s *Session) Depth() int { return s.eval.Depth() }

// MaxLength returns the operand length limit.
func (s *Session) MaxLength() int { return s.acc.MaxLength() }

// Reset is the clear key.
func (s *Session) Reset() {
	s.eval.Reset()
	s.display = DefaultDisplay
	s.state = StateInitial
}

// Press applies one key and returns the resulting display.
func (s *Session) Press(k Key) Result {
	var err error

	switch {
	case k.IsDigit() || k == KeyDot:
		s.display, s.state = s.acc.Handle(k, s.display, s.state)

	case k == KeyClear:
		s.Reset()

	case k == KeyEquals:
		s.state = StateEqualJustExecuted
		s.show(s.eval.ApplyEquals(s.display))
		err = s.eval.Err()

	case k == KeyPercent:
		display, applied := s.eval.ApplyPercent(s.display)
		if !applied {
			break
		}
		s.show(display)
		s.state = StatePercentPending
		err = s.eval.Err()

	case k == KeyNegate:
		// no trimming: the operand may still be mid-entry
		s.display, s.state = s.eval.ApplyNegate(s.display, s.state)

	default:
		op := k.Operator()
		if !op.Binary() {
			break
		}
		s.state = StateBinaryOpPending
		s.show(s.eval.Apply(op, s.display))
		err = s.eval.Err()
	}

	return Result{Key: k, Display: s.display, State: s.state, Err: err}
}

// PressAll applies keys in order and returns one Result per key.
func (s *Session) PressAll(keys []Key) []Result {
	results := make([]Result, 0, len(keys))
	for _, k := range keys {
		results = append(results, s.Press(k))
	}
	return results
}

func (s *Session) show(display string) {
	s.display = TrimWholeFraction(display)
}

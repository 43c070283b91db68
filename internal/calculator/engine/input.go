package engine

import "strings"

const (
	// DefaultDisplay is shown at session start and after clear.
	DefaultDisplay = "0"

	// DefaultMaxLength and WideMaxLength are the operand length limits used
	// by the narrow and wide keypad layouts.
	DefaultMaxLength = 10
	WideMaxLength    = 17

	// MinMaxLength leaves room for a seeded "-" and one digit.
	MinMaxLength = 2
)

// InputState drives how the next key is interpreted.
type InputState int

const (
	StateInitial InputState = iota
	StateIntegerPart
	StateFractionalPart
	StateBinaryOpPending
	StateSignTogglePending
	StatePercentPending
	StateEqualJustExecuted
)

var stateNames = [...]string{
	StateInitial:           "Initial",
	StateIntegerPart:       "IntegerPart",
	StateFractionalPart:    "FractionalPart",
	StateBinaryOpPending:   "BinaryOpPending",
	StateSignTogglePending: "SignTogglePending",
	StatePercentPending:    "PercentPending",
	StateEqualJustExecuted: "EqualJustExecuted",
}

func (s InputState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// Accumulator builds an operand string from digit and dot keys.
type Accumulator struct {
	maxLength int
}

// NewAccumulator returns an accumulator that stops appending once the
// display holds maxLength characters.
func NewAccumulator(maxLength int) (*Accumulator, error) {
	if maxLength < MinMaxLength {
		return nil, ErrInvalidMaxLength
	}
	return &Accumulator{maxLength: maxLength}, nil
}

// MaxLength returns the configured operand length limit.
func (a *Accumulator) MaxLength() int { return a.maxLength }

// CanAppend reports whether one more character fits on the display.
func (a *Accumulator) CanAppend(display string) bool {
	return len(display) < a.maxLength
}

// Handle applies a digit or dot key to display and returns the new display
// and state. Other keys leave both untouched.
func (a *Accumulator) Handle(k Key, display string, state InputState) (string, InputState) {
	if !k.IsDigit() && k != KeyDot {
		return display, state
	}

	// A digit after an operator, equals or percent starts a fresh operand.
	switch state {
	case StateBinaryOpPending, StateEqualJustExecuted, StatePercentPending:
		display, state = DefaultDisplay, StateInitial
	case StateSignTogglePending:
		display, state = "-", StateInitial
	}

	switch state {
	case StateInitial:
		if k == KeyDot {
			return a.startFraction(display)
		}
		return a.startInteger(k, display)

	case StateIntegerPart:
		if k == KeyDot {
			return a.appendChar(display, '.'), StateFractionalPart
		}
		return a.appendChar(display, digitChar(k)), StateIntegerPart

	case StateFractionalPart:
		if k == KeyDot {
			return display, state
		}
		return a.appendChar(display, digitChar(k)), StateFractionalPart
	}

	return display, state
}

func (a *Accumulator) startInteger(k Key, display string) (string, InputState) {
	if k == Key0 {
		// leading zeros are suppressed
		if display == "-" {
			return "-0", StateInitial
		}
		if display == DefaultDisplay || display == ErrorSentinel {
			return DefaultDisplay, StateInitial
		}
		return display, StateInitial
	}

	switch display {
	case DefaultDisplay, ErrorSentinel:
		display = ""
	case "-0":
		display = "-"
	}
	return a.appendChar(display, digitChar(k)), StateIntegerPart
}

func (a *Accumulator) startFraction(display string) (string, InputState) {
	if display == ErrorSentinel || display == "" {
		display = DefaultDisplay
	}
	if display == "-" {
		display = "-0"
	}
	if strings.IndexByte(display, '.') >= 0 {
		return display, StateFractionalPart
	}
	return a.appendChar(display, '.'), StateFractionalPart
}

func (a *Accumulator) appendChar(display string, c byte) string {
	if !a.CanAppend(display) {
		return display
	}
	return display + string(c)
}

func digitChar(k Key) byte {
	return byte('0' + int(k-Key0))
}

package engine

import (
	"errors"
	"fmt"
)

// ErrorSentinel is the display value shown after an arithmetic failure.
const ErrorSentinel = "Error"

var (
	// ErrArithmetic is wrapped by every failure that turns the display into
	// ErrorSentinel.
	ErrArithmetic = errors.New("arithmetic error")

	ErrInvalidOperand = fmt.Errorf("%w: invalid operand", ErrArithmetic)
	ErrDivisionByZero = fmt.Errorf("%w: division by zero", ErrArithmetic)
	ErrOverflow       = fmt.Errorf("%w: result is not finite", ErrArithmetic)

	ErrUnknownKey       = errors.New("unknown key")
	ErrInvalidMaxLength = errors.New("max length must be at least 2")
)

package engine

// Precedence orders operators by how tightly they bind. Levels are compared
// by ordinal only, so new levels may be inserted without touching callers.
type Precedence int

const (
	PrecedenceNone Precedence = iota
	PrecedenceAdditive
	PrecedenceMultiplicative
	PrecedenceExponent
	PrecedenceUnary
	PrecedenceParenthesis
	PrecedenceFunction
	PrecedenceConstant
)

var precedenceNames = [...]string{
	PrecedenceNone:           "None",
	PrecedenceAdditive:       "Additive",
	PrecedenceMultiplicative: "Multiplicative",
	PrecedenceExponent:       "Exponent",
	PrecedenceUnary:          "Unary",
	PrecedenceParenthesis:    "Parenthesis",
	PrecedenceFunction:       "Function",
	PrecedenceConstant:       "Constant",
}

func (p Precedence) String() string {
	if p < 0 || int(p) >= len(precedenceNames) {
		return "Unknown"
	}
	return precedenceNames[p]
}

// Operator is an arithmetic operation that can be entered on the keypad.
// The zero value OpNone means "no operator".
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpPercent
	OpNegate
)

var operatorNames = [...]string{
	OpNone:     "None",
	OpAdd:      "Add",
	OpSubtract: "Subtract",
	OpMultiply: "Multiply",
	OpDivide:   "Divide",
	OpPercent:  "Percent",
	OpNegate:   "Negate",
}

func (op Operator) String() string {
	if op < 0 || int(op) >= len(operatorNames) {
		return "Unknown"
	}
	return operatorNames[op]
}

// Precedence returns the binding level of op.
func (op Operator) Precedence() Precedence {
	switch op {
	case OpAdd, OpSubtract:
		return PrecedenceAdditive
	case OpMultiply, OpDivide:
		return PrecedenceMultiplicative
	case OpPercent, OpNegate:
		return PrecedenceUnary
	default:
		return PrecedenceNone
	}
}

// Binary reports whether op takes two operands.
func (op Operator) Binary() bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

// Additive reports whether op is Add or Subtract.
func (op Operator) Additive() bool {
	return op == OpAdd || op == OpSubtract
}

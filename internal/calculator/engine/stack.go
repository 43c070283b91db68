package engine

// pending is one deferred operation: the first operand and the operator
// waiting for its second operand.
type pending struct {
	operand string
	op      Operator
}

// opStack is a LIFO of deferred operations. Each entry carries an operand
// followed by its operator, so entries alternate operand/operator from the
// bottom up.
type opStack struct {
	items []pending
}

func (s *opStack) Push(operand string, op Operator) {
	s.items = append(s.items, pending{operand: operand, op: op})
}

// Pop removes and returns the top entry.
func (s *opStack) Pop() (pending, bool) {
	if len(s.items) == 0 {
		return pending{}, false
	}
	last := len(s.items) - 1
	p := s.items[last]
	s.items = s.items[:last]
	return p, true
}

// Peek returns the top entry without removing it.
func (s *opStack) Peek() (pending, bool) {
	if len(s.items) == 0 {
		return pending{}, false
	}
	return s.items[len(s.items)-1], true
}

// TopPrecedence is the precedence of the top operator, or None when empty.
func (s *opStack) TopPrecedence() Precedence {
	p, ok := s.Peek()
	if !ok {
		return PrecedenceNone
	}
	return p.op.Precedence()
}

func (s *opStack) Empty() bool { return len(s.items) == 0 }

func (s *opStack) Len() int { return len(s.items) }

// Clear drops every entry while keeping capacity.
func (s *opStack) Clear() {
	s.items = s.items[:0]
}

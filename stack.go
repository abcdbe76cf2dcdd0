package main

// stack is a bounded LIFO of cells.  Two instances exist per interpreter:
// the data stack (operands, unbounded) and the return stack (call and loop
// bookkeeping, fixed capacity).  Stacks never touch the dictionary or
// variable space; words read and write them as their sole interface.
type stack struct {
	name  string
	limit int // 0 means unbounded
	cells []Cell
}

func newStack(name string, limit int) *stack {
	return &stack{name: name, limit: limit}
}

func (s *stack) push(c Cell) error {
	if s.limit != 0 && len(s.cells) >= s.limit {
		return ReturnStackOverflowError{Depth: s.limit}
	}
	s.cells = append(s.cells, c)
	return nil
}

func (s *stack) pop(op string) (Cell, error) {
	i := len(s.cells) - 1
	if i < 0 {
		return 0, StackUnderflowError{Op: op, Stack: s.name, Needed: 1, Available: 0}
	}
	c := s.cells[i]
	s.cells = s.cells[:i]
	return c, nil
}

// peek returns the cell depth slots under the top; peek(op, 0) is the top of
// stack.
func (s *stack) peek(op string, depth int) (Cell, error) {
	i := len(s.cells) - 1 - depth
	if i < 0 {
		return 0, StackUnderflowError{Op: op, Stack: s.name, Needed: depth + 1, Available: len(s.cells)}
	}
	return s.cells[i], nil
}

func (s *stack) depth() int { return len(s.cells) }

func (s *stack) reset() { s.cells = s.cells[:0] }

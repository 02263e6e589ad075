package fsm

// CheckReachable verifies every state is reachable from state 0 and
// that every offset lands within [0, len(States)-1], satisfying
// spec.md §8 invariant 6 ("The compiler produces only in-range jumps
// and visits every AST node exactly once").
func CheckReachable(f *FSM) error {
	n := len(f.States)
	if n == 0 {
		return &CompileError{Reason: "empty FSM"}
	}

	seen := make([]bool, n)
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if i < 0 || n <= i {
			return &CompileError{Reason: "jump target out of range", Index: i}
		}
		if seen[i] {
			continue
		}
		seen[i] = true

		s := f.States[i]
		push := func(off int) {
			stack = append(stack, i+off)
		}
		if s.Next != nil {
			push(*s.Next)
		}
		switch s.Type {
		case Choice:
			push(s.Then)
			push(s.Else)
		case Try:
			push(s.Catch)
		}
	}

	for i, ok := range seen {
		if !ok {
			return &CompileError{Reason: "unreachable state", Index: i}
		}
	}
	return nil
}

package pegvm

// captureStack is the per-parse stack of captured spans consumed by
// the `peek` and `pop` rules.  Every mutation is recorded in an undo
// log so that a failed alternative can roll back pops as well as
// pushes; truncating to a length would only undo the latter.
type captureStack struct {
	entries []Range
	ops     []stackOp
}

type stackOp struct {
	// pop is true when the op removed `entry`, false when it
	// pushed it
	pop   bool
	entry Range
}

func (s *captureStack) len() int {
	return len(s.entries)
}

func (s *captureStack) push(r Range) {
	s.entries = append(s.entries, r)
	s.ops = append(s.ops, stackOp{entry: r})
}

func (s *captureStack) pop() Range {
	idx := len(s.entries) - 1
	r := s.entries[idx]
	s.entries = s.entries[:idx]
	s.ops = append(s.ops, stackOp{pop: true, entry: r})
	return r
}

func (s *captureStack) top() (Range, bool) {
	if len(s.entries) == 0 {
		return Range{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// mark returns a snapshot cookie for the current state.
func (s *captureStack) mark() int {
	return len(s.ops)
}

// restore replays the undo log backwards until the stack is back at
// the state `mark` captured.
func (s *captureStack) restore(mark int) {
	for i := len(s.ops) - 1; i >= mark; i-- {
		op := s.ops[i]
		if op.pop {
			s.entries = append(s.entries, op.entry)
		} else {
			s.entries = s.entries[:len(s.entries)-1]
		}
	}
	s.ops = s.ops[:mark]
}

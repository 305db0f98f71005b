package pegvm

// Atomicity is the per-parse mode deciding whether separators are
// auto inserted between sequence elements and whether nested rule
// matches emit their own tokens.  It is saved and restored on scope
// exit, so nested rule calls inherit the caller's mode unless their
// own kind forces a change.
type Atomicity int

const (
	// NonAtomic inserts separators and emits tokens
	NonAtomic Atomicity = iota

	// Atomic inserts no separators and suppresses nested tokens
	Atomic

	// CompoundAtomic inserts no separators but nested rules still
	// emit their tokens
	CompoundAtomic
)

var atomicityNames = map[Atomicity]string{
	NonAtomic:      "non-atomic",
	Atomic:         "atomic",
	CompoundAtomic: "compound-atomic",
}

func (a Atomicity) String() string { return atomicityNames[a] }

// context is the mutable per-parse state.  A fresh one is created by
// every Parse call and discarded when it returns, so concurrent
// parses over a shared Grammar never touch the same context.
type context struct {
	atomicity Atomicity
	stack     captureStack
	tokens    []Token

	// predStkCnt counts nested lookahead scopes; while positive,
	// token emission and capture pushes are suppressed
	predStkCnt int

	// ffp is the furthest offset any match attempt failed at
	ffp int

	trace TraceFunc
	depth int
}

func newContext() *context {
	return &context{atomicity: NonAtomic}
}

// checkpoint is a snapshot of every rollback-able piece of context
// state.  Positions are values owned by the evaluator's call frames,
// so they are not part of it.
type checkpoint struct {
	tokensLen int
	stackMark int
}

func (c *context) save() checkpoint {
	return checkpoint{
		tokensLen: len(c.tokens),
		stackMark: c.stack.mark(),
	}
}

func (c *context) rollback(cp checkpoint) {
	c.tokens = c.tokens[:cp.tokensLen]
	c.stack.restore(cp.stackMark)
}

// fail records a failed attempt at `pos` and reports it back, so the
// furthest-reached position survives all the backtracking above.
func (c *context) fail(pos Position) (Position, bool) {
	if pos.off > c.ffp {
		c.ffp = pos.off
	}
	return pos, false
}

// withinLookahead reports whether a lookahead attempt is running.
func (c *context) withinLookahead() bool { return c.predStkCnt > 0 }

// rule wraps the evaluation of a rule body, reserving a token slot
// before the body runs and committing its end offset after.  The
// slot keeps tokens in document order: the enclosing rule comes
// before everything its body emits.  On failure the slot and every
// nested token are discarded together.
func (c *context) rule(name string, pos Position, body func() (Position, bool)) (Position, bool) {
	if c.atomicity == Atomic || c.withinLookahead() {
		return body()
	}
	idx := len(c.tokens)
	c.tokens = append(c.tokens, Token{Rule: name, Range: NewRange(pos.off, pos.off)})
	end, ok := body()
	if !ok {
		c.tokens = c.tokens[:idx]
		return end, false
	}
	c.tokens[idx].Range.End = end.off
	return end, true
}

// capture pushes a span onto the capture stack unless a lookahead
// attempt is running.
func (c *context) capture(r Range) {
	if c.withinLookahead() {
		return
	}
	c.stack.push(r)
}

package pegvm

// machine evaluates a grammar's rules against one input.  It owns a
// context for the duration of a single Parse call; the Grammar it
// points at is shared and read only.
type machine struct {
	grammar *Grammar
	ctx     *context
}

// TraceEvent describes one step of the rule dispatcher, for the
// optional trace hook.
type TraceEvent struct {
	Rule    string
	Offset  int
	Depth   int
	Enter   bool
	Matched bool
}

// TraceFunc receives dispatcher events when tracing is enabled.
type TraceFunc func(TraceEvent)

// ParseOption customizes a single Parse call.
type ParseOption func(*context)

// WithTrace installs `fn` as the trace hook for one Parse call.  The
// hook sees every rule entry and exit, including the backtracked
// ones, so it is meant for debugging grammars rather than for
// consuming matches.
func WithTrace(fn TraceFunc) ParseOption {
	return func(c *context) { c.trace = fn }
}

// Parse matches `input` against the rule named `start`.  On success
// it returns the emitted tokens in document order.  An input that
// does not match produces a *MatchError carrying the furthest
// position any alternative reached.  A defective grammar (unknown
// rule reference, peek or pop on an empty capture stack) produces a
// *GrammarError instead; that is a configuration defect, not an
// input error.
func (g *Grammar) Parse(start, input string, opts ...ParseOption) (toks *Tokens, err error) {
	ctx := newContext()
	for _, opt := range opts {
		opt(ctx)
	}

	defer func() {
		if r := recover(); r != nil {
			ge, ok := r.(*GrammarError)
			if !ok {
				panic(r)
			}
			toks, err = nil, ge
		}
	}()

	m := &machine{grammar: g, ctx: ctx}
	end, ok := m.dispatch(start, NewPosition(input))
	if !ok {
		ffp := ctx.ffp
		if end.off > ffp {
			ffp = end.off
		}
		return nil, &MatchError{Rule: start, Input: input, Offset: ffp}
	}
	return &Tokens{input: input, toks: ctx.tokens, end: end.off}, nil
}

// dispatch resolves a rule name and evaluates it from `pos`,
// applying the atomicity wrapping the rule's kind asks for.  The
// five reserved names are intercepted before table lookup.
func (m *machine) dispatch(name string, pos Position) (Position, bool) {
	ctx := m.ctx
	m.traceEnter(name, pos)

	var (
		end Position
		ok  bool
	)
	switch name {
	case ruleAny:
		end, ok = pos.Advance()
		if !ok {
			end, ok = ctx.fail(pos)
		}

	case ruleEOI:
		end, ok = ctx.rule(ruleEOI, pos, func() (Position, bool) {
			if pos.AtEnd() {
				return pos, true
			}
			return ctx.fail(pos)
		})

	case ruleSOI:
		if pos.AtStart() {
			end, ok = pos, true
		} else {
			end, ok = ctx.fail(pos)
		}

	case rulePeek:
		end, ok = m.matchTop(pos, false)

	case rulePop:
		end, ok = m.matchTop(pos, true)

	default:
		rule, found := m.grammar.Rule(name)
		if !found {
			panic(&GrammarError{Message: "undefined rule " + name})
		}
		if name == ruleWhitespace || name == ruleComment {
			end, ok = m.evalSeparatorRule(rule, pos)
		} else {
			end, ok = m.evalRule(rule, pos)
		}
	}

	m.traceExit(name, end, ok)
	return end, ok
}

// matchTop matches the literal text of the top-of-stack capture.
// When `remove` is set, a successful match also pops the entry.
func (m *machine) matchTop(pos Position, remove bool) (Position, bool) {
	top, ok := m.ctx.stack.top()
	if !ok {
		what := rulePeek
		if remove {
			what = rulePop
		}
		panic(&GrammarError{Message: what + " called on empty capture stack"})
	}
	end, ok := pos.MatchLiteral(top.Str(pos.input))
	if !ok {
		return m.ctx.fail(pos)
	}
	if remove {
		m.ctx.stack.pop()
	}
	return end, true
}

// evalRule applies the kind-specific wrapping for ordinary rules.
func (m *machine) evalRule(rule *Rule, pos Position) (Position, bool) {
	ctx := m.ctx
	body := func() (Position, bool) { return m.eval(rule.Expr, pos) }

	switch rule.Kind {
	case KindSilent:
		return body()

	case KindNormal:
		return ctx.rule(rule.Name, pos, body)

	case KindAtomic:
		return ctx.rule(rule.Name, pos, func() (Position, bool) {
			return m.atomic(Atomic, body)
		})

	case KindCompoundAtomic:
		return m.atomic(CompoundAtomic, func() (Position, bool) {
			return ctx.rule(rule.Name, pos, body)
		})

	case KindNonAtomic:
		return m.atomic(NonAtomic, func() (Position, bool) {
			return ctx.rule(rule.Name, pos, body)
		})

	default:
		panic(&GrammarError{Message: "rule " + rule.Name + " has unknown kind"})
	}
}

// evalSeparatorRule handles the two separator rules.  Their bodies
// always run in Atomic mode no matter the declared kind, so a
// whitespace rule made of sequences never skips within itself, and
// only the Normal and Atomic kinds emit a token.
func (m *machine) evalSeparatorRule(rule *Rule, pos Position) (Position, bool) {
	ctx := m.ctx
	body := func() (Position, bool) {
		return m.atomic(Atomic, func() (Position, bool) {
			return m.eval(rule.Expr, pos)
		})
	}
	switch rule.Kind {
	case KindNormal, KindAtomic:
		return ctx.rule(rule.Name, pos, body)
	default:
		return body()
	}
}

// atomic runs `body` with the given atomicity, restoring the
// caller's mode on the way out.
func (m *machine) atomic(a Atomicity, body func() (Position, bool)) (Position, bool) {
	prev := m.ctx.atomicity
	m.ctx.atomicity = a
	end, ok := body()
	m.ctx.atomicity = prev
	return end, ok
}

// eval walks one expression node.  It is rollback safe: when it
// reports failure, no capture, token or cursor advance from the
// attempt is observable by the caller.
func (m *machine) eval(e Expr, pos Position) (Position, bool) {
	ctx := m.ctx

	switch n := e.(type) {
	case *LiteralNode:
		end, ok := pos.MatchLiteral(n.text)
		if !ok {
			return ctx.fail(pos)
		}
		return end, true

	case *InsensitiveNode:
		end, ok := pos.MatchInsensitive(n.text)
		if !ok {
			return ctx.fail(pos)
		}
		return end, true

	case *RangeNode:
		end, ok := pos.MatchRange(n.lo, n.hi)
		if !ok {
			return ctx.fail(pos)
		}
		return end, true

	case *IdentifierNode:
		return m.dispatch(n.Name, pos)

	case *AndNode:
		_, ok := m.lookahead(n.Expr, pos)
		if !ok {
			return ctx.fail(pos)
		}
		return pos, true

	case *NotNode:
		_, ok := m.lookahead(n.Expr, pos)
		if ok {
			return ctx.fail(pos)
		}
		return pos, true

	case *SequenceNode:
		cp := ctx.save()
		end, ok := m.eval(n.Left, pos)
		if ok {
			end, _ = m.skip(end)
			end, ok = m.eval(n.Right, end)
		}
		if !ok {
			ctx.rollback(cp)
			return end, false
		}
		return end, true

	case *ChoiceNode:
		if end, ok := m.eval(n.Left, pos); ok {
			return end, true
		}
		return m.eval(n.Right, pos)

	case *OptionalNode:
		if end, ok := m.eval(n.Expr, pos); ok {
			return end, true
		}
		return pos, true

	case *ZeroOrMoreNode:
		return m.repeat(n.Expr, 0, -1, pos)

	case *OneOrMoreNode:
		return m.repeat(n.Expr, 1, -1, pos)

	case *RepeatExactNode:
		return m.repeat(n.Expr, n.Count, n.Count, pos)

	case *RepeatMinNode:
		return m.repeat(n.Expr, n.Min, -1, pos)

	case *RepeatMaxNode:
		return m.repeat(n.Expr, 0, n.Max, pos)

	case *RepeatMinMaxNode:
		return m.repeat(n.Expr, n.Min, n.Max, pos)

	case *CaptureNode:
		end, ok := m.eval(n.Expr, pos)
		if !ok {
			return end, false
		}
		ctx.capture(NewRange(pos.off, end.off))
		return end, true

	case *ScanNode:
		return m.scan(n.Literals, pos)

	default:
		panic(&GrammarError{Message: "unknown expression node in grammar"})
	}
}

// lookahead evaluates `e` inside a lookahead scope: the position is
// never kept, and captures and tokens made during the attempt are
// discarded no matter the outcome.
func (m *machine) lookahead(e Expr, pos Position) (Position, bool) {
	ctx := m.ctx
	cp := ctx.save()
	ctx.predStkCnt++
	end, ok := m.eval(e, pos)
	ctx.predStkCnt--
	ctx.rollback(cp)
	return end, ok
}

// scan advances to the earliest occurrence of any of the literals.
// When none occurs it fails in place, since a failed scan never
// moves the cursor.
func (m *machine) scan(literals []string, pos Position) (Position, bool) {
	var (
		best  Position
		found bool
	)
	for _, lit := range literals {
		end, ok := pos.ScanTo(lit)
		if !ok {
			continue
		}
		if !found || end.off < best.off {
			best = end
			found = true
		}
	}
	if !found {
		return m.ctx.fail(pos)
	}
	return best, true
}

// repeat implements bounded greedy repetition.  min occurrences are
// mandatory; max < 0 means unbounded.  A separator skip runs before
// every occurrence except the first.  The whole repetition sits in
// one rollback scope, so a failure among the mandatory occurrences
// undoes every capture and token matched so far.
func (m *machine) repeat(e Expr, min, max int, pos Position) (Position, bool) {
	ctx := m.ctx
	cp := ctx.save()

	end := pos
	count := 0
	for ; count < min; count++ {
		next := end
		if count > 0 {
			next, _ = m.skip(next)
		}
		next, ok := m.eval(e, next)
		if !ok {
			ctx.rollback(cp)
			return next, false
		}
		end = next
	}

	for max < 0 || count < max {
		attempt := ctx.save()
		next := end
		if count > 0 {
			next, _ = m.skip(next)
		}
		next, ok := m.eval(e, next)
		if !ok {
			ctx.rollback(attempt)
			break
		}
		if next.off == end.off {
			// no progress; stop instead of spinning on an
			// expression that matches the empty string
			ctx.rollback(attempt)
			break
		}
		end = next
		count++
	}
	return end, true
}

// skip consumes optional whitespace and comments between grammar
// atoms.  It always succeeds, is a no-op outside NonAtomic mode and
// a no-op when the grammar defines neither separator rule.
func (m *machine) skip(pos Position) (Position, bool) {
	g := m.grammar
	if m.ctx.atomicity != NonAtomic || (!g.hasWhitespace && !g.hasComment) {
		return pos, true
	}

	switch {
	case g.hasWhitespace && !g.hasComment:
		return m.skipRepeated(ruleWhitespace, pos), true

	case !g.hasWhitespace && g.hasComment:
		return m.skipRepeated(ruleComment, pos), true

	default:
		// whitespace* (comment whitespace*)*
		end := m.skipRepeated(ruleWhitespace, pos)
		for {
			next, ok := m.dispatch(ruleComment, end)
			if !ok || next.off == end.off {
				return end, true
			}
			end = m.skipRepeated(ruleWhitespace, next)
		}
	}
}

// skipRepeated greedily consumes zero or more matches of a separator
// rule, stopping when an attempt fails or stalls.
func (m *machine) skipRepeated(name string, pos Position) Position {
	end := pos
	for {
		next, ok := m.dispatch(name, end)
		if !ok || next.off == end.off {
			return end
		}
		end = next
	}
}

func (m *machine) traceEnter(name string, pos Position) {
	if m.ctx.trace == nil {
		return
	}
	m.ctx.trace(TraceEvent{Rule: name, Offset: pos.off, Depth: m.ctx.depth, Enter: true})
	m.ctx.depth++
}

func (m *machine) traceExit(name string, pos Position, matched bool) {
	if m.ctx.trace == nil {
		return
	}
	m.ctx.depth--
	m.ctx.trace(TraceEvent{Rule: name, Offset: pos.off, Depth: m.ctx.depth, Matched: matched})
}

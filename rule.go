package pegvm

import "fmt"

// RuleKind governs whether a rule match emits a token and how
// atomicity propagates into the rule's body.
type RuleKind int

const (
	// KindNormal emits a token and inherits the caller's atomicity
	KindNormal RuleKind = iota

	// KindSilent emits no token and inherits the caller's atomicity
	KindSilent

	// KindAtomic emits a token and evaluates its body in Atomic
	// mode, suppressing nested tokens and separator insertion
	KindAtomic

	// KindCompoundAtomic suppresses separator insertion in its
	// body like KindAtomic does, but nested rules still emit
	// their tokens
	KindCompoundAtomic

	// KindNonAtomic emits a token and re-enables separator
	// insertion and nested token emission even when the caller
	// was atomic
	KindNonAtomic
)

var ruleKindNames = map[RuleKind]string{
	KindNormal:         "normal",
	KindSilent:         "silent",
	KindAtomic:         "atomic",
	KindCompoundAtomic: "compound-atomic",
	KindNonAtomic:      "non-atomic",
}

func (k RuleKind) String() string {
	if name, ok := ruleKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("RuleKind(%d)", int(k))
}

// Rule is a single named grammar rule.  Rule values are produced by
// a grammar compiler, already name resolved and well typed.
type Rule struct {
	Name string
	Kind RuleKind
	Expr Expr
}

// Reserved rule names handled by the dispatcher before table lookup.
// They can't be shadowed by user rules.
const (
	ruleAny  = "any"
	ruleEOI  = "eoi"
	ruleSOI  = "soi"
	rulePeek = "peek"
	rulePop  = "pop"
)

// Separator rules picked up by the skip inserter when defined.
const (
	ruleWhitespace = "whitespace"
	ruleComment    = "comment"
)

var reservedNames = map[string]struct{}{
	ruleAny:  {},
	ruleEOI:  {},
	ruleSOI:  {},
	rulePeek: {},
	rulePop:  {},
}

// Grammar is an immutable rule table.  It is built once and can then
// be shared, without synchronization, across any number of
// concurrent Parse calls.
type Grammar struct {
	rules map[string]*Rule

	hasWhitespace bool
	hasComment    bool
}

// NewGrammar builds a Grammar out of a validated collection of
// rules.  It rejects duplicate rule names and rules that would
// shadow a reserved name, and decodes every string and range literal
// once, so match attempts never re-run the escape decoder.
func NewGrammar(rules []Rule) (*Grammar, error) {
	g := &Grammar{rules: make(map[string]*Rule, len(rules))}
	for i := range rules {
		rule := rules[i]
		if _, ok := reservedNames[rule.Name]; ok {
			return nil, fmt.Errorf("rule %q shadows a reserved name", rule.Name)
		}
		if _, ok := g.rules[rule.Name]; ok {
			return nil, fmt.Errorf("duplicate rule %q", rule.Name)
		}
		if rule.Expr == nil {
			return nil, fmt.Errorf("rule %q has no expression", rule.Name)
		}
		if err := decodeLiterals(rule.Expr); err != nil {
			return nil, fmt.Errorf("rule %q: %w", rule.Name, err)
		}
		g.rules[rule.Name] = &rule
	}
	g.hasWhitespace = g.rules[ruleWhitespace] != nil
	g.hasComment = g.rules[ruleComment] != nil
	return g, nil
}

// Rule returns the rule registered under `name`, if any.
func (g *Grammar) Rule(name string) (*Rule, bool) {
	r, ok := g.rules[name]
	return r, ok
}

// Len returns how many rules the grammar holds.
func (g *Grammar) Len() int { return len(g.rules) }

// decodeLiterals walks an expression tree decoding the escape syntax
// of every literal it finds, caching the result within the node.
func decodeLiterals(e Expr) error {
	switch n := e.(type) {
	case *LiteralNode:
		text, err := Unescape(n.Raw)
		if err != nil {
			return fmt.Errorf("literal %s: %w", n.Text(), err)
		}
		n.text = text

	case *InsensitiveNode:
		text, err := Unescape(n.Raw)
		if err != nil {
			return fmt.Errorf("literal %s: %w", n.Text(), err)
		}
		n.text = text

	case *RangeNode:
		lo, err := decodeChar(n.Left)
		if err != nil {
			return fmt.Errorf("range %s: %w", n.Text(), err)
		}
		hi, err := decodeChar(n.Right)
		if err != nil {
			return fmt.Errorf("range %s: %w", n.Text(), err)
		}
		n.lo, n.hi = lo, hi

	case *AndNode:
		return decodeLiterals(n.Expr)
	case *NotNode:
		return decodeLiterals(n.Expr)
	case *SequenceNode:
		if err := decodeLiterals(n.Left); err != nil {
			return err
		}
		return decodeLiterals(n.Right)
	case *ChoiceNode:
		if err := decodeLiterals(n.Left); err != nil {
			return err
		}
		return decodeLiterals(n.Right)
	case *OptionalNode:
		return decodeLiterals(n.Expr)
	case *ZeroOrMoreNode:
		return decodeLiterals(n.Expr)
	case *OneOrMoreNode:
		return decodeLiterals(n.Expr)
	case *RepeatExactNode:
		return decodeLiterals(n.Expr)
	case *RepeatMinNode:
		return decodeLiterals(n.Expr)
	case *RepeatMaxNode:
		return decodeLiterals(n.Expr)
	case *RepeatMinMaxNode:
		return decodeLiterals(n.Expr)
	case *CaptureNode:
		return decodeLiterals(n.Expr)

	case *ScanNode:
		if len(n.Literals) == 0 {
			return fmt.Errorf("scan expression has no literals")
		}

	case *IdentifierNode:
		// nothing to decode

	default:
		return fmt.Errorf("unknown expression node %T", e)
	}
	return nil
}

// decodeChar decodes a single-char literal, e.g. the endpoints of a
// range.
func decodeChar(raw string) (rune, error) {
	text, err := Unescape(raw)
	if err != nil {
		return 0, err
	}
	runes := []rune(text)
	if len(runes) != 1 {
		return 0, fmt.Errorf("expected a single character, got %q", text)
	}
	return runes[0], nil
}

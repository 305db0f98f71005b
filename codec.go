package pegvm

import (
	"encoding/json"
	"fmt"
)

// The JSON rule-set format is the serialized output of a grammar
// compiler: a list of named, kinded rules whose expressions are
// tagged `op` objects.  It is a wire format for pre-compiled
// grammars, not a grammar language.
//
//	{"rules": [
//	  {"name": "start", "kind": "normal",
//	   "expr": {"op": "seq",
//	            "left":  {"op": "literal", "text": "("},
//	            "right": {"op": "ref", "name": "inner"}}}
//	]}

type ruleSetJSON struct {
	Rules []ruleJSON `json:"rules"`
}

type ruleJSON struct {
	Name string    `json:"name"`
	Kind string    `json:"kind"`
	Expr *exprJSON `json:"expr"`
}

type exprJSON struct {
	Op string `json:"op"`

	// literal, insensitive
	Text string `json:"text,omitempty"`

	// range
	Low  string `json:"low,omitempty"`
	High string `json:"high,omitempty"`

	// ref
	Name string `json:"name,omitempty"`

	// and, not, opt, rep, rep1, repexact, repmin, repmax,
	// repminmax, capture
	Expr *exprJSON `json:"expr,omitempty"`

	// seq, choice
	Left  *exprJSON `json:"left,omitempty"`
	Right *exprJSON `json:"right,omitempty"`

	// repetition bounds
	Count int `json:"count,omitempty"`
	Min   int `json:"min,omitempty"`
	Max   int `json:"max,omitempty"`

	// scan
	Literals []string `json:"literals,omitempty"`
}

var kindsByName = map[string]RuleKind{
	"normal":          KindNormal,
	"silent":          KindSilent,
	"atomic":          KindAtomic,
	"compound-atomic": KindCompoundAtomic,
	"non-atomic":      KindNonAtomic,
}

// DecodeRules reads a JSON rule set into the Rule values NewGrammar
// takes.  It validates kinds and operators; the deeper validation
// (duplicates, literal escapes) still happens in NewGrammar.
func DecodeRules(data []byte) ([]Rule, error) {
	var doc ruleSetJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode rule set: %w", err)
	}
	rules := make([]Rule, 0, len(doc.Rules))
	for _, rj := range doc.Rules {
		if rj.Name == "" {
			return nil, fmt.Errorf("rule with empty name")
		}
		kind, ok := kindsByName[rj.Kind]
		if !ok {
			return nil, fmt.Errorf("rule %q: unknown kind %q", rj.Name, rj.Kind)
		}
		if rj.Expr == nil {
			return nil, fmt.Errorf("rule %q: missing expr", rj.Name)
		}
		expr, err := decodeExpr(rj.Expr)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", rj.Name, err)
		}
		rules = append(rules, Rule{Name: rj.Name, Kind: kind, Expr: expr})
	}
	return rules, nil
}

func decodeExpr(ej *exprJSON) (Expr, error) {
	one := func() (Expr, error) {
		if ej.Expr == nil {
			return nil, fmt.Errorf("op %q: missing expr", ej.Op)
		}
		return decodeExpr(ej.Expr)
	}
	two := func() (Expr, Expr, error) {
		if ej.Left == nil || ej.Right == nil {
			return nil, nil, fmt.Errorf("op %q: missing left or right", ej.Op)
		}
		left, err := decodeExpr(ej.Left)
		if err != nil {
			return nil, nil, err
		}
		right, err := decodeExpr(ej.Right)
		if err != nil {
			return nil, nil, err
		}
		return left, right, nil
	}

	switch ej.Op {
	case "literal":
		return NewLiteralNode(ej.Text), nil
	case "insensitive":
		return NewInsensitiveNode(ej.Text), nil
	case "range":
		return NewRangeNode(ej.Low, ej.High), nil
	case "ref":
		if ej.Name == "" {
			return nil, fmt.Errorf("op %q: missing name", ej.Op)
		}
		return NewIdentifierNode(ej.Name), nil
	case "and":
		e, err := one()
		if err != nil {
			return nil, err
		}
		return NewAndNode(e), nil
	case "not":
		e, err := one()
		if err != nil {
			return nil, err
		}
		return NewNotNode(e), nil
	case "seq":
		left, right, err := two()
		if err != nil {
			return nil, err
		}
		return NewSequenceNode(left, right), nil
	case "choice":
		left, right, err := two()
		if err != nil {
			return nil, err
		}
		return NewChoiceNode(left, right), nil
	case "opt":
		e, err := one()
		if err != nil {
			return nil, err
		}
		return NewOptionalNode(e), nil
	case "rep":
		e, err := one()
		if err != nil {
			return nil, err
		}
		return NewZeroOrMoreNode(e), nil
	case "rep1":
		e, err := one()
		if err != nil {
			return nil, err
		}
		return NewOneOrMoreNode(e), nil
	case "repexact":
		e, err := one()
		if err != nil {
			return nil, err
		}
		if ej.Count < 0 {
			return nil, fmt.Errorf("op %q: negative count", ej.Op)
		}
		return NewRepeatExactNode(e, ej.Count), nil
	case "repmin":
		e, err := one()
		if err != nil {
			return nil, err
		}
		if ej.Min < 0 {
			return nil, fmt.Errorf("op %q: negative min", ej.Op)
		}
		return NewRepeatMinNode(e, ej.Min), nil
	case "repmax":
		e, err := one()
		if err != nil {
			return nil, err
		}
		if ej.Max < 0 {
			return nil, fmt.Errorf("op %q: negative max", ej.Op)
		}
		return NewRepeatMaxNode(e, ej.Max), nil
	case "repminmax":
		e, err := one()
		if err != nil {
			return nil, err
		}
		if ej.Min < 0 || ej.Max < ej.Min {
			return nil, fmt.Errorf("op %q: invalid bounds %d..%d", ej.Op, ej.Min, ej.Max)
		}
		return NewRepeatMinMaxNode(e, ej.Min, ej.Max), nil
	case "capture":
		e, err := one()
		if err != nil {
			return nil, err
		}
		return NewCaptureNode(e), nil
	case "scan":
		if len(ej.Literals) == 0 {
			return nil, fmt.Errorf("op %q: missing literals", ej.Op)
		}
		return NewScanNode(ej.Literals), nil
	default:
		return nil, fmt.Errorf("unknown op %q", ej.Op)
	}
}

// EncodeRules writes rules back into the JSON rule-set format.
func EncodeRules(rules []Rule) ([]byte, error) {
	doc := ruleSetJSON{Rules: make([]ruleJSON, 0, len(rules))}
	for _, r := range rules {
		ej, err := encodeExpr(r.Expr)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		doc.Rules = append(doc.Rules, ruleJSON{
			Name: r.Name,
			Kind: r.Kind.String(),
			Expr: ej,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

func encodeExpr(e Expr) (*exprJSON, error) {
	one := func(op string, sub Expr) (*exprJSON, error) {
		ej, err := encodeExpr(sub)
		if err != nil {
			return nil, err
		}
		return &exprJSON{Op: op, Expr: ej}, nil
	}

	switch n := e.(type) {
	case *LiteralNode:
		return &exprJSON{Op: "literal", Text: n.Raw}, nil
	case *InsensitiveNode:
		return &exprJSON{Op: "insensitive", Text: n.Raw}, nil
	case *RangeNode:
		return &exprJSON{Op: "range", Low: n.Left, High: n.Right}, nil
	case *IdentifierNode:
		return &exprJSON{Op: "ref", Name: n.Name}, nil
	case *AndNode:
		return one("and", n.Expr)
	case *NotNode:
		return one("not", n.Expr)
	case *SequenceNode:
		left, err := encodeExpr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := encodeExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return &exprJSON{Op: "seq", Left: left, Right: right}, nil
	case *ChoiceNode:
		left, err := encodeExpr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := encodeExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return &exprJSON{Op: "choice", Left: left, Right: right}, nil
	case *OptionalNode:
		return one("opt", n.Expr)
	case *ZeroOrMoreNode:
		return one("rep", n.Expr)
	case *OneOrMoreNode:
		return one("rep1", n.Expr)
	case *RepeatExactNode:
		ej, err := one("repexact", n.Expr)
		if err != nil {
			return nil, err
		}
		ej.Count = n.Count
		return ej, nil
	case *RepeatMinNode:
		ej, err := one("repmin", n.Expr)
		if err != nil {
			return nil, err
		}
		ej.Min = n.Min
		return ej, nil
	case *RepeatMaxNode:
		ej, err := one("repmax", n.Expr)
		if err != nil {
			return nil, err
		}
		ej.Max = n.Max
		return ej, nil
	case *RepeatMinMaxNode:
		ej, err := one("repminmax", n.Expr)
		if err != nil {
			return nil, err
		}
		ej.Min = n.Min
		ej.Max = n.Max
		return ej, nil
	case *CaptureNode:
		return one("capture", n.Expr)
	case *ScanNode:
		return &exprJSON{Op: "scan", Literals: n.Literals}, nil
	default:
		return nil, fmt.Errorf("unknown expression node %T", e)
	}
}

package pegvm

import (
	"fmt"
	"strings"
)

// Expr is the interface implemented by every node of a rule's
// expression tree.  Trees are produced by a grammar compiler, handed
// to `NewGrammar` and never mutated afterwards, so the same tree can
// back any number of concurrent parses.
type Expr interface {
	// Text is the representation of an expression node, meant to
	// display just the grammar fragment it denotes, being useful
	// for stringifying a rule again
	Text() string

	// String returns the string representation of a given node
	String() string
}

// Node Type: Literal

type LiteralNode struct {
	// Raw is the literal in grammar escape syntax, e.g. `a\nb`
	Raw string

	// decoded by NewGrammar via Unescape
	text string
}

func NewLiteralNode(raw string) *LiteralNode {
	return &LiteralNode{Raw: raw}
}

func (n LiteralNode) Text() string   { return fmt.Sprintf(`"%s"`, n.Raw) }
func (n LiteralNode) String() string { return fmt.Sprintf("Literal(%s)", n.Raw) }

// Node Type: Insensitive

// InsensitiveNode matches its literal ignoring case.
type InsensitiveNode struct {
	Raw string

	text string
}

func NewInsensitiveNode(raw string) *InsensitiveNode {
	return &InsensitiveNode{Raw: raw}
}

func (n InsensitiveNode) Text() string   { return fmt.Sprintf(`^"%s"`, n.Raw) }
func (n InsensitiveNode) String() string { return fmt.Sprintf("Insensitive(%s)", n.Raw) }

// Node Type: Range

// RangeNode matches a single rune between Left and Right, both
// inclusive.  Left and Right are single-char literals in grammar
// escape syntax.
type RangeNode struct {
	Left  string
	Right string

	lo, hi rune
}

func NewRangeNode(left, right string) *RangeNode {
	return &RangeNode{Left: left, Right: right}
}

func (n RangeNode) Text() string   { return fmt.Sprintf("'%s'..'%s'", n.Left, n.Right) }
func (n RangeNode) String() string { return fmt.Sprintf("Range(%s, %s)", n.Left, n.Right) }

// Node Type: Identifier

// IdentifierNode is a reference to a named rule, resolved at match
// time by the rule dispatcher.
type IdentifierNode struct {
	Name string
}

func NewIdentifierNode(name string) *IdentifierNode {
	return &IdentifierNode{Name: name}
}

func (n IdentifierNode) Text() string   { return n.Name }
func (n IdentifierNode) String() string { return fmt.Sprintf("Identifier(%s)", n.Name) }

// Node Type: And

// AndNode is the positive lookahead predicate.  It succeeds when its
// sub expression matches, and never consumes input.
type AndNode struct {
	Expr Expr
}

func NewAndNode(expr Expr) *AndNode {
	return &AndNode{Expr: expr}
}

func (n AndNode) Text() string   { return fmt.Sprintf("&%s", n.Expr.Text()) }
func (n AndNode) String() string { return fmt.Sprintf("And(%s)", n.Expr) }

// Node Type: Not

// NotNode is the negative lookahead predicate.  It succeeds when its
// sub expression fails, and never consumes input.
type NotNode struct {
	Expr Expr
}

func NewNotNode(expr Expr) *NotNode {
	return &NotNode{Expr: expr}
}

func (n NotNode) Text() string   { return fmt.Sprintf("!%s", n.Expr.Text()) }
func (n NotNode) String() string { return fmt.Sprintf("Not(%s)", n.Expr) }

// Node Type: Sequence

type SequenceNode struct {
	Left  Expr
	Right Expr
}

func NewSequenceNode(left, right Expr) *SequenceNode {
	return &SequenceNode{Left: left, Right: right}
}

func (n SequenceNode) Text() string   { return fmt.Sprintf("%s ~ %s", n.Left.Text(), n.Right.Text()) }
func (n SequenceNode) String() string { return fmt.Sprintf("Sequence(%s, %s)", n.Left, n.Right) }

// Node Type: Choice

// ChoiceNode is the ordered choice: Left is attempted first and
// Right is only tried, from the same starting position, when Left
// fails.
type ChoiceNode struct {
	Left  Expr
	Right Expr
}

func NewChoiceNode(left, right Expr) *ChoiceNode {
	return &ChoiceNode{Left: left, Right: right}
}

func (n ChoiceNode) Text() string   { return fmt.Sprintf("%s | %s", n.Left.Text(), n.Right.Text()) }
func (n ChoiceNode) String() string { return fmt.Sprintf("Choice(%s, %s)", n.Left, n.Right) }

// Node Type: Optional

type OptionalNode struct {
	Expr Expr
}

func NewOptionalNode(expr Expr) *OptionalNode {
	return &OptionalNode{Expr: expr}
}

func (n OptionalNode) Text() string   { return fmt.Sprintf("%s?", n.Expr.Text()) }
func (n OptionalNode) String() string { return fmt.Sprintf("Optional(%s)", n.Expr) }

// Node Type: ZeroOrMore

type ZeroOrMoreNode struct {
	Expr Expr
}

func NewZeroOrMoreNode(expr Expr) *ZeroOrMoreNode {
	return &ZeroOrMoreNode{Expr: expr}
}

func (n ZeroOrMoreNode) Text() string   { return fmt.Sprintf("%s*", n.Expr.Text()) }
func (n ZeroOrMoreNode) String() string { return fmt.Sprintf("ZeroOrMore(%s)", n.Expr) }

// Node Type: OneOrMore

type OneOrMoreNode struct {
	Expr Expr
}

func NewOneOrMoreNode(expr Expr) *OneOrMoreNode {
	return &OneOrMoreNode{Expr: expr}
}

func (n OneOrMoreNode) Text() string   { return fmt.Sprintf("%s+", n.Expr.Text()) }
func (n OneOrMoreNode) String() string { return fmt.Sprintf("OneOrMore(%s)", n.Expr) }

// Node Type: RepeatExact

type RepeatExactNode struct {
	Expr  Expr
	Count int
}

func NewRepeatExactNode(expr Expr, count int) *RepeatExactNode {
	return &RepeatExactNode{Expr: expr, Count: count}
}

func (n RepeatExactNode) Text() string   { return fmt.Sprintf("%s{%d}", n.Expr.Text(), n.Count) }
func (n RepeatExactNode) String() string { return fmt.Sprintf("RepeatExact(%s, %d)", n.Expr, n.Count) }

// Node Type: RepeatMin

type RepeatMinNode struct {
	Expr Expr
	Min  int
}

func NewRepeatMinNode(expr Expr, min int) *RepeatMinNode {
	return &RepeatMinNode{Expr: expr, Min: min}
}

func (n RepeatMinNode) Text() string   { return fmt.Sprintf("%s{%d,}", n.Expr.Text(), n.Min) }
func (n RepeatMinNode) String() string { return fmt.Sprintf("RepeatMin(%s, %d)", n.Expr, n.Min) }

// Node Type: RepeatMax

type RepeatMaxNode struct {
	Expr Expr
	Max  int
}

func NewRepeatMaxNode(expr Expr, max int) *RepeatMaxNode {
	return &RepeatMaxNode{Expr: expr, Max: max}
}

func (n RepeatMaxNode) Text() string   { return fmt.Sprintf("%s{,%d}", n.Expr.Text(), n.Max) }
func (n RepeatMaxNode) String() string { return fmt.Sprintf("RepeatMax(%s, %d)", n.Expr, n.Max) }

// Node Type: RepeatMinMax

type RepeatMinMaxNode struct {
	Expr Expr
	Min  int
	Max  int
}

func NewRepeatMinMaxNode(expr Expr, min, max int) *RepeatMinMaxNode {
	return &RepeatMinMaxNode{Expr: expr, Min: min, Max: max}
}

func (n RepeatMinMaxNode) Text() string {
	return fmt.Sprintf("%s{%d,%d}", n.Expr.Text(), n.Min, n.Max)
}

func (n RepeatMinMaxNode) String() string {
	return fmt.Sprintf("RepeatMinMax(%s, %d, %d)", n.Expr, n.Min, n.Max)
}

// Node Type: Capture

// CaptureNode matches its sub expression and, on success, pushes the
// matched span onto the capture stack, where `peek` and `pop` can
// find it.
type CaptureNode struct {
	Expr Expr
}

func NewCaptureNode(expr Expr) *CaptureNode {
	return &CaptureNode{Expr: expr}
}

func (n CaptureNode) Text() string   { return fmt.Sprintf("push(%s)", n.Expr.Text()) }
func (n CaptureNode) String() string { return fmt.Sprintf("Capture(%s)", n.Expr) }

// Node Type: Scan

// ScanNode advances the cursor to the earliest occurrence of any of
// its literals, stopping right before it.  Literals are matched
// verbatim, without escape decoding.
type ScanNode struct {
	Literals []string
}

func NewScanNode(literals []string) *ScanNode {
	return &ScanNode{Literals: literals}
}

func (n ScanNode) Text() string {
	var s strings.Builder
	s.WriteString("skip(")
	for i, lit := range n.Literals {
		fmt.Fprintf(&s, "%q", lit)
		if i < len(n.Literals)-1 {
			s.WriteString(", ")
		}
	}
	s.WriteString(")")
	return s.String()
}

func (n ScanNode) String() string { return fmt.Sprintf("Scan(%s)", n.Text()) }

package pegvm

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenPrinter renders a token sequence as an indented tree, nesting
// tokens by span containment.
type TokenPrinter struct {
	padStr []string
	output strings.Builder
}

// FormatTokens returns the tree rendering of a token sequence.
func FormatTokens(toks *Tokens) string {
	p := &TokenPrinter{}
	for _, root := range buildTokenTree(toks) {
		p.visit(root, toks.input)
		p.output.WriteRune('\n')
	}
	return p.output.String()
}

type tokenTree struct {
	tok      Token
	children []*tokenTree
}

// buildTokenTree nests the document-ordered flat sequence back into
// a forest.  A token is a child of the nearest preceding token whose
// span contains it.
func buildTokenTree(toks *Tokens) []*tokenTree {
	var (
		roots []*tokenTree
		open  []*tokenTree
	)
	for i := 0; i < toks.Len(); i++ {
		node := &tokenTree{tok: toks.At(i)}
		for len(open) > 0 && !open[len(open)-1].tok.Range.Contains(node.tok.Range) {
			open = open[:len(open)-1]
		}
		if len(open) == 0 {
			roots = append(roots, node)
		} else {
			parent := open[len(open)-1]
			parent.children = append(parent.children, node)
		}
		open = append(open, node)
	}
	return roots
}

func (p *TokenPrinter) visit(node *tokenTree, input string) {
	p.write(node.tok.Rule)
	p.write(fmt.Sprintf(" (%s)", node.tok.Range))
	if len(node.children) == 0 {
		p.write(" ")
		p.write(strconv.Quote(node.tok.Range.Str(input)))
		return
	}
	for i, child := range node.children {
		p.write("\n")
		switch {
		case i == len(node.children)-1:
			p.pwrite("└── ")
			p.indent("    ")
		default:
			p.pwrite("├── ")
			p.indent("│   ")
		}
		p.visit(child, input)
		p.unindent()
	}
}

func (p *TokenPrinter) indent(s string) {
	p.padStr = append(p.padStr, s)
}

func (p *TokenPrinter) unindent() {
	p.padStr = p.padStr[:len(p.padStr)-1]
}

func (p *TokenPrinter) pwrite(s string) {
	for _, pad := range p.padStr {
		p.write(pad)
	}
	p.write(s)
}

func (p *TokenPrinter) write(s string) {
	p.output.WriteString(s)
}

package pegvm

import "fmt"

// Range takes as little as possible (16 bytes in 64bit systems) to
// represent a span within the input, in byte offsets.
type Range struct{ Start, End int }

func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

func (r Range) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("%d", r.Start)
	}
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// Str returns the slice of `input` the range covers.
func (r Range) Str(input string) string {
	return input[r.Start:r.End]
}

func (r Range) Contains(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Token is a single emitted rule match: the rule's name plus the
// input range it covered.
type Token struct {
	Rule  string
	Range Range
}

func (t Token) String() string {
	return fmt.Sprintf("%s@%s", t.Rule, t.Range)
}

// Tokens is the outcome of a successful parse: the emitted tokens in
// document order, outer rules before the rules nested within them.
type Tokens struct {
	input string
	toks  []Token
	end   int
}

// Len returns how many tokens were emitted.
func (t *Tokens) Len() int { return len(t.toks) }

// At returns the i-th token in document order.
func (t *Tokens) At(i int) Token { return t.toks[i] }

// Text returns the input text covered by the i-th token.
func (t *Tokens) Text(i int) string { return t.toks[i].Range.Str(t.input) }

// Input returns the input the tokens were matched against.
func (t *Tokens) Input() string { return t.input }

// End returns the byte offset right after the start rule's match.
func (t *Tokens) End() int { return t.end }

// Iter returns a fresh iterator over the sequence.  Each call starts
// over from the first token.
func (t *Tokens) Iter() *TokenIterator {
	return &TokenIterator{toks: t.toks}
}

// TokenIterator walks a token sequence in document order.
type TokenIterator struct {
	toks []Token
	i    int
}

// Next returns the next token, or false when the sequence is over.
func (it *TokenIterator) Next() (Token, bool) {
	if it.i >= len(it.toks) {
		return Token{}, false
	}
	tok := it.toks[it.i]
	it.i++
	return tok, true
}

// Reset rewinds the iterator back to the first token.
func (it *TokenIterator) Reset() { it.i = 0 }

package pegvm

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Position is an immutable cursor over a parse input: a reference to
// the whole input plus a byte offset.  Matchers return a new
// Position instead of mutating the receiver, so failed attempts
// leave the caller's copy untouched.
type Position struct {
	input string
	off   int
}

// NewPosition returns a cursor at the start of `input`.
func NewPosition(input string) Position {
	return Position{input: input}
}

// Offset returns the byte offset of the cursor within the input.
func (p Position) Offset() int { return p.off }

// AtStart reports whether the cursor sits at the very start of the
// input.
func (p Position) AtStart() bool { return p.off == 0 }

// AtEnd reports whether the entire input has been consumed.
func (p Position) AtEnd() bool { return p.off >= len(p.input) }

// MatchLiteral advances past `text` if the input continues with it.
func (p Position) MatchLiteral(text string) (Position, bool) {
	if !strings.HasPrefix(p.input[p.off:], text) {
		return p, false
	}
	p.off += len(text)
	return p, true
}

// MatchInsensitive advances past a prefix that equals `text` when
// compared rune by rune under simple case folding.
func (p Position) MatchInsensitive(text string) (Position, bool) {
	rest := p.input[p.off:]
	consumed := 0
	for _, want := range text {
		r, size := utf8.DecodeRuneInString(rest[consumed:])
		if size == 0 {
			return p, false
		}
		if unicode.ToLower(r) != unicode.ToLower(want) {
			return p, false
		}
		consumed += size
	}
	p.off += consumed
	return p, true
}

// MatchRange advances one rune if it sits between lo and hi, both
// inclusive.
func (p Position) MatchRange(lo, hi rune) (Position, bool) {
	r, size := utf8.DecodeRuneInString(p.input[p.off:])
	if size == 0 || r < lo || r > hi {
		return p, false
	}
	p.off += size
	return p, true
}

// Advance consumes exactly one code point.
func (p Position) Advance() (Position, bool) {
	_, size := utf8.DecodeRuneInString(p.input[p.off:])
	if size == 0 {
		return p, false
	}
	p.off += size
	return p, true
}

// ScanTo advances the cursor to the earliest occurrence of `text`,
// stopping right before it.  It fails, leaving the cursor untouched,
// when `text` does not occur in the remaining input.
func (p Position) ScanTo(text string) (Position, bool) {
	idx := strings.Index(p.input[p.off:], text)
	if idx < 0 {
		return p, false
	}
	p.off += idx
	return p, true
}

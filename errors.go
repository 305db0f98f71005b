package pegvm

import (
	"fmt"
	"strings"
)

// MatchError is the error returned when an input does not match the
// start rule.  It carries the furthest byte offset any alternative
// reached before the parse gave up, which is the anchor downstream
// error messages should point at.
type MatchError struct {
	Rule   string
	Input  string
	Offset int
}

func (e *MatchError) Error() string {
	line, col := e.Position()
	return fmt.Sprintf("rule %s: no match at line %d, column %d (offset %d)", e.Rule, line, col, e.Offset)
}

// Position returns the 1-indexed line and column of the failure
// offset.  The column counts runes, not bytes.
func (e *MatchError) Position() (line, col int) {
	prefix := e.Input
	if e.Offset < len(prefix) {
		prefix = prefix[:e.Offset]
	}
	line = strings.Count(prefix, "\n") + 1
	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	col = len([]rune(prefix[lineStart:])) + 1
	return line, col
}

// GrammarError reports a contract violation by the grammar compiler
// or an ill-formed grammar: an unknown rule reference, or peek/pop
// reaching an empty capture stack.  It is never produced by
// well-validated grammars and is not part of the ordinary
// backtracking channel.
type GrammarError struct {
	Message string
}

func (e *GrammarError) Error() string {
	return "grammar error: " + e.Message
}

package pegvm

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Unescape turns a grammar literal written in escape syntax into the
// runtime string it denotes.  Recognized escapes are `\"`, `\\`,
// `\r`, `\n`, `\t`, `\0`, `\'`, `\xHH` (exactly two hex digits) and
// `\u{H..H}` (two to six hex digits).  It is a pure function, safe
// to call concurrently.
func Unescape(s string) (string, error) {
	// fast path for literals without escapes
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}

	var out strings.Builder
	out.Grow(len(s))

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' {
			out.WriteRune(r)
			continue
		}

		i++
		if i >= len(runes) {
			return "", fmt.Errorf("unterminated escape")
		}

		switch runes[i] {
		case '"':
			out.WriteRune('"')
		case '\\':
			out.WriteRune('\\')
		case 'r':
			out.WriteRune('\r')
		case 'n':
			out.WriteRune('\n')
		case 't':
			out.WriteRune('\t')
		case '0':
			out.WriteRune(0)
		case '\'':
			out.WriteRune('\'')
		case 'x':
			if i+2 >= len(runes) {
				return "", fmt.Errorf(`truncated \x escape`)
			}
			digits := string(runes[i+1 : i+3])
			value, err := strconv.ParseUint(digits, 16, 8)
			if err != nil {
				return "", fmt.Errorf(`invalid \x escape %q`, digits)
			}
			out.WriteRune(rune(value))
			i += 2
		case 'u':
			if i+1 >= len(runes) || runes[i+1] != '{' {
				return "", fmt.Errorf(`missing { in \u escape`)
			}
			i += 2
			start := i
			for i < len(runes) && runes[i] != '}' {
				i++
			}
			if i >= len(runes) {
				return "", fmt.Errorf(`missing } in \u escape`)
			}
			digits := string(runes[start:i])
			if len(digits) < 2 || len(digits) > 6 {
				return "", fmt.Errorf(`\u escape takes 2 to 6 hex digits, got %d`, len(digits))
			}
			value, err := strconv.ParseUint(digits, 16, 32)
			if err != nil {
				return "", fmt.Errorf(`invalid \u escape %q`, digits)
			}
			if !utf8.ValidRune(rune(value)) {
				return "", fmt.Errorf(`\u escape %q is not a valid scalar`, digits)
			}
			out.WriteRune(rune(value))
		default:
			return "", fmt.Errorf("unknown escape %q", string(runes[i]))
		}
	}
	return out.String(), nil
}

package pegvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnescape(t *testing.T) {
	t.Run("passthrough", func(t *testing.T) {
		out, err := Unescape("hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", out)
	})

	t.Run("all escapes", func(t *testing.T) {
		out, err := Unescape(`a\nb\x55c\u{111}d`)
		require.NoError(t, err)
		assert.Equal(t, "a\nb\x55cđd", out)
	})

	t.Run("simple escapes", func(t *testing.T) {
		tests := []struct {
			input    string
			expected string
		}{
			{`\"`, "\""},
			{`\\`, "\\"},
			{`\r`, "\r"},
			{`\n`, "\n"},
			{`\t`, "\t"},
			{`\0`, "\x00"},
			{`\'`, "'"},
		}
		for _, test := range tests {
			out, err := Unescape(test.input)
			require.NoError(t, err, test.input)
			assert.Equal(t, test.expected, out, test.input)
		}
	})

	t.Run("hex byte is a unicode scalar", func(t *testing.T) {
		// 0xE9 is é, which UTF-8 encodes in two bytes
		out, err := Unescape(`\xe9`)
		require.NoError(t, err)
		assert.Equal(t, "é", out)
	})

	t.Run("malformed", func(t *testing.T) {
		tests := []struct {
			name  string
			input string
		}{
			{"empty escape", `\`},
			{"wrong escape", `\w`},
			{"wrong byte", `\xfg`},
			{"short byte", `\xf`},
			{"no open brace unicode", `\u11`},
			{"no close brace unicode", `\u{11`},
			{"short unicode", `\u{1}`},
			{"long unicode", `\u{1111111}`},
			{"surrogate unicode", `\u{d800}`},
		}
		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				_, err := Unescape(test.input)
				assert.Error(t, err)
			})
		}
	})
}

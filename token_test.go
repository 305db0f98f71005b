package pegvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "3", NewRange(3, 3).String())
		assert.Equal(t, "3..7", NewRange(3, 7).String())
	})

	t.Run("str slices the input", func(t *testing.T) {
		assert.Equal(t, "bc", NewRange(1, 3).Str("abcd"))
	})

	t.Run("contains", func(t *testing.T) {
		tests := []struct {
			name     string
			parent   Range
			other    Range
			expected bool
		}{
			{"fully contained", NewRange(0, 10), NewRange(2, 8), true},
			{"identical", NewRange(5, 15), NewRange(5, 15), true},
			{"same start", NewRange(0, 10), NewRange(0, 5), true},
			{"same end", NewRange(0, 10), NewRange(5, 10), true},
			{"starts before", NewRange(5, 15), NewRange(3, 10), false},
			{"ends after", NewRange(5, 15), NewRange(10, 20), false},
			{"disjoint", NewRange(10, 20), NewRange(0, 5), false},
			{"encompasses parent", NewRange(5, 15), NewRange(0, 20), false},
		}
		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				assert.Equal(t, test.expected, test.parent.Contains(test.other))
			})
		}
	})
}

func TestTokens(t *testing.T) {
	g := mustGrammar(t, rules(
		def("pair", KindNormal, seq(ref("item"), lit(","), ref("item"))),
		def("item", KindNormal, plus(rng("a", "z"))),
	))
	toks, err := g.Parse("pair", "ab,cd")
	require.NoError(t, err)

	t.Run("document order", func(t *testing.T) {
		require.Equal(t, 3, toks.Len())
		assert.Equal(t, Token{Rule: "pair", Range: NewRange(0, 5)}, toks.At(0))
		assert.Equal(t, Token{Rule: "item", Range: NewRange(0, 2)}, toks.At(1))
		assert.Equal(t, Token{Rule: "item", Range: NewRange(3, 5)}, toks.At(2))
	})

	t.Run("text", func(t *testing.T) {
		assert.Equal(t, "ab,cd", toks.Text(0))
		assert.Equal(t, "ab", toks.Text(1))
		assert.Equal(t, "cd", toks.Text(2))
	})

	t.Run("iterator is restartable", func(t *testing.T) {
		it := toks.Iter()
		first, ok := it.Next()
		require.True(t, ok)
		assert.Equal(t, "pair", first.Rule)

		for {
			if _, ok := it.Next(); !ok {
				break
			}
		}

		it.Reset()
		again, ok := it.Next()
		require.True(t, ok)
		assert.Equal(t, first, again)

		// a fresh iterator starts over independently
		other := toks.Iter()
		tok, ok := other.Next()
		require.True(t, ok)
		assert.Equal(t, first, tok)
	})

	t.Run("token string", func(t *testing.T) {
		assert.Equal(t, "pair@0..5", toks.At(0).String())
	})
}

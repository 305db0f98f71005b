package pegvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition(t *testing.T) {
	t.Run("literal", func(t *testing.T) {
		pos := NewPosition("foobar")
		end, ok := pos.MatchLiteral("foo")
		assert.True(t, ok)
		assert.Equal(t, 3, end.Offset())

		_, ok = end.MatchLiteral("foo")
		assert.False(t, ok)
	})

	t.Run("failed literal leaves cursor in place", func(t *testing.T) {
		pos := NewPosition("foobar")
		end, ok := pos.MatchLiteral("fox")
		assert.False(t, ok)
		assert.Equal(t, 0, end.Offset())
	})

	t.Run("insensitive", func(t *testing.T) {
		pos := NewPosition("FoObAr")
		end, ok := pos.MatchInsensitive("foobar")
		assert.True(t, ok)
		assert.Equal(t, 6, end.Offset())
	})

	t.Run("insensitive multibyte", func(t *testing.T) {
		pos := NewPosition("Épée")
		end, ok := pos.MatchInsensitive("épée")
		assert.True(t, ok)
		assert.True(t, end.AtEnd())
	})

	t.Run("range", func(t *testing.T) {
		pos := NewPosition("42")
		end, ok := pos.MatchRange('0', '9')
		assert.True(t, ok)
		assert.Equal(t, 1, end.Offset())

		_, ok = pos.MatchRange('a', 'z')
		assert.False(t, ok)
	})

	t.Run("advance one code point", func(t *testing.T) {
		pos := NewPosition("éx")
		end, ok := pos.Advance()
		assert.True(t, ok)
		assert.Equal(t, 2, end.Offset())

		end, ok = end.Advance()
		assert.True(t, ok)
		assert.True(t, end.AtEnd())

		_, ok = end.Advance()
		assert.False(t, ok)
	})

	t.Run("start and end", func(t *testing.T) {
		pos := NewPosition("")
		assert.True(t, pos.AtStart())
		assert.True(t, pos.AtEnd())
	})

	t.Run("scan stops before the literal", func(t *testing.T) {
		pos := NewPosition("aaab")
		end, ok := pos.ScanTo("b")
		assert.True(t, ok)
		assert.Equal(t, 3, end.Offset())

		_, ok = pos.ScanTo("z")
		assert.False(t, ok)
	})
}

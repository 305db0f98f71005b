package pegvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRules(t *testing.T) {
	t.Run("full grammar", func(t *testing.T) {
		doc := `{
		  "rules": [
		    {"name": "start", "kind": "normal",
		     "expr": {"op": "seq",
		              "left":  {"op": "literal", "text": "("},
		              "right": {"op": "seq",
		                        "left":  {"op": "rep", "expr": {"op": "ref", "name": "inner"}},
		                        "right": {"op": "literal", "text": ")"}}}},
		    {"name": "inner", "kind": "silent",
		     "expr": {"op": "seq",
		              "left":  {"op": "not", "expr": {"op": "literal", "text": ")"}},
		              "right": {"op": "ref", "name": "any"}}}
		  ]
		}`
		rs, err := DecodeRules([]byte(doc))
		require.NoError(t, err)
		require.Len(t, rs, 2)
		assert.Equal(t, KindSilent, rs[1].Kind)

		g, err := NewGrammar(rs)
		require.NoError(t, err)

		toks, err := g.Parse("start", "(abc)")
		require.NoError(t, err)
		assert.Equal(t, 5, toks.End())
	})

	t.Run("escapes travel in raw form", func(t *testing.T) {
		doc := `{"rules": [{"name": "start", "kind": "atomic",
		  "expr": {"op": "rep1",
		           "expr": {"op": "range", "low": "\\x30", "high": "\\x39"}}}]}`
		rs, err := DecodeRules([]byte(doc))
		require.NoError(t, err)

		g, err := NewGrammar(rs)
		require.NoError(t, err)

		toks, err := g.Parse("start", "2026")
		require.NoError(t, err)
		assert.Equal(t, 4, toks.End())
	})

	t.Run("malformed documents", func(t *testing.T) {
		tests := []struct {
			name string
			doc  string
		}{
			{"not json", `{`},
			{"empty rule name", `{"rules": [{"name": "", "kind": "normal", "expr": {"op": "literal"}}]}`},
			{"unknown kind", `{"rules": [{"name": "a", "kind": "fancy", "expr": {"op": "literal"}}]}`},
			{"missing expr", `{"rules": [{"name": "a", "kind": "normal"}]}`},
			{"unknown op", `{"rules": [{"name": "a", "kind": "normal", "expr": {"op": "maybe"}}]}`},
			{"ref without name", `{"rules": [{"name": "a", "kind": "normal", "expr": {"op": "ref"}}]}`},
			{"seq without right", `{"rules": [{"name": "a", "kind": "normal", "expr": {"op": "seq", "left": {"op": "literal", "text": "x"}}}]}`},
			{"negative count", `{"rules": [{"name": "a", "kind": "normal", "expr": {"op": "repexact", "count": -1, "expr": {"op": "literal", "text": "x"}}}]}`},
			{"inverted bounds", `{"rules": [{"name": "a", "kind": "normal", "expr": {"op": "repminmax", "min": 3, "max": 1, "expr": {"op": "literal", "text": "x"}}}]}`},
			{"scan without literals", `{"rules": [{"name": "a", "kind": "normal", "expr": {"op": "scan"}}]}`},
		}
		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				_, err := DecodeRules([]byte(test.doc))
				assert.Error(t, err)
			})
		}
	})
}

func TestEncodeRules(t *testing.T) {
	t.Run("round trip keeps behavior", func(t *testing.T) {
		original := rules(
			def("start", KindNormal, seq(
				ref("soi"),
				push(ref("word")),
				ins("SEP"),
				ref("pop"),
				ref("eoi"),
			)),
			def("word", KindAtomic, repMinMax(rng("a", "z"), 1, 8)),
			def("whitespace", KindSilent, plus(cho(lit(" "), lit(`\t`)))),
		)

		data, err := EncodeRules(original)
		require.NoError(t, err)

		decoded, err := DecodeRules(data)
		require.NoError(t, err)

		g, err := NewGrammar(decoded)
		require.NoError(t, err)

		toks, err := g.Parse("start", "abc sep abc")
		require.NoError(t, err)
		assert.Equal(t, 11, toks.End())

		_, err = g.Parse("start", "abc sep xyz")
		var merr *MatchError
		require.ErrorAs(t, err, &merr)
	})
}

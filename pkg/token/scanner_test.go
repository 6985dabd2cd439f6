package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/locmark/pkg/token"
)

func TestFind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		sep    string
		from   int
		want   token.Range
		wantOK bool
	}{
		{name: "plain match", text: "a|b", sep: "|", want: token.Range{Start: 1, End: 2}, wantOK: true},
		{name: "starts at cursor", text: "|a|b", sep: "|", from: 1, want: token.Range{Start: 2, End: 3}, wantOK: true},
		{name: "escaped match is skipped", text: `\|a|`, sep: "|", want: token.Range{Start: 3, End: 4}, wantOK: true},
		{name: "double escape does not escape", text: `\\|a`, sep: "|", want: token.Range{Start: 2, End: 3}, wantOK: true},
		{name: "triple escape escapes", text: `\\\|a`, sep: "|", wantOK: false},
		{name: "multi-byte separator", text: "one→two", sep: "→", want: token.Range{Start: 3, End: 6}, wantOK: true},
		{name: "no match", text: "abc", sep: "|", wantOK: false},
		{name: "empty separator", text: "abc", sep: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := token.Find(tt.sep, `\`, tt.text, tt.from)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFind_GraphemeBoundaries(t *testing.T) {
	t.Parallel()

	// "e" followed by a combining acute accent is one grapheme cluster, so
	// searching for the bare "e" must skip it.
	text := "e\u0301 e"
	got, ok := token.Find("e", "", text, 0)
	require.True(t, ok)
	assert.Equal(t, token.Range{Start: 4, End: 5}, got)
}

func TestFindPair(t *testing.T) {
	t.Parallel()

	t.Run("finds outer and inner ranges", func(t *testing.T) {
		t.Parallel()
		outer, inner, found, err := token.FindPair("<", ">", `\`, "a <b:c> d", 0)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, token.Range{Start: 2, End: 7}, outer)
		assert.Equal(t, token.Range{Start: 3, End: 6}, inner)
	})

	t.Run("same left and right", func(t *testing.T) {
		t.Parallel()
		outer, inner, found, err := token.FindPair("|", "|", `\`, "x |name| y", 0)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "|name|", "x |name| y"[outer.Start:outer.End])
		assert.Equal(t, "name", "x |name| y"[inner.Start:inner.End])
	})

	t.Run("missing left is not an error", func(t *testing.T) {
		t.Parallel()
		_, _, found, err := token.FindPair("<", ">", `\`, "plain", 0)
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("unclosed token", func(t *testing.T) {
		t.Parallel()
		_, _, found, err := token.FindPair("<", ">", `\`, "a <b", 0)
		require.True(t, found)
		require.ErrorIs(t, err, token.ErrUnclosedToken)
	})

	t.Run("escaped right token is skipped", func(t *testing.T) {
		t.Parallel()
		text := `|a\|b|`
		outer, _, found, err := token.FindPair("|", "|", `\`, text, 0)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, token.Range{Start: 0, End: len(text)}, outer)
	})
}

func TestScanner_Occurrences(t *testing.T) {
	t.Parallel()

	s := token.NewScanner(`a\b\\c`, `\`)
	got := s.Occurrences(`\`)
	require.Len(t, got, 3)
	assert.Equal(t, token.Range{Start: 1, End: 2}, got[0])
	assert.Equal(t, token.Range{Start: 3, End: 4}, got[1])
	assert.Equal(t, token.Range{Start: 4, End: 5}, got[2])
	assert.True(t, s.Escaped(2))
	assert.False(t, s.Escaped(5))
}

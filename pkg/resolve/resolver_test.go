package resolve_test

import (
	"context"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/locmark/pkg/cache"
	"github.com/dmitrymomot/locmark/pkg/resolve"
	"github.com/dmitrymomot/locmark/pkg/token"
	"github.com/dmitrymomot/locmark/pkg/tree"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects overlapping tokens", func(t *testing.T) {
		t.Parallel()
		r, err := resolve.New(tree.Config{
			Source: []token.Token{token.OneWord("[", "]"), token.OneWord("]", ")")},
		})
		require.ErrorIs(t, err, resolve.ErrInvalidConfig)
		require.ErrorIs(t, err, token.ErrOverlappingTokens)
		assert.Nil(t, r)
	})

	t.Run("rejects empty tokens", func(t *testing.T) {
		t.Parallel()
		_, err := resolve.New(tree.Config{Source: []token.Token{token.OneWord("", "|")}})
		require.ErrorIs(t, err, token.ErrEmptyToken)
	})

	t.Run("accepts a valid set", func(t *testing.T) {
		t.Parallel()
		r, err := resolve.New(orderedConfig)
		require.NoError(t, err)
		assert.Equal(t, orderedConfig, r.Config())
		require.NoError(t, r.Close())
	})
}

func TestResolver_Parse(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("memoizes trees", func(t *testing.T) {
		t.Parallel()
		r := newResolver(t, orderedConfig)
		a, err := r.Parse(ctx, "<a:b>")
		require.NoError(t, err)
		b, err := r.Parse(ctx, "<a:b>")
		require.NoError(t, err)
		assert.Same(t, a, b)
	})

	t.Run("without cache", func(t *testing.T) {
		t.Parallel()
		r := newResolver(t, orderedConfig, resolve.WithoutCache())
		a, err := r.Parse(ctx, "<a:b>")
		require.NoError(t, err)
		b, err := r.Parse(ctx, "<a:b>")
		require.NoError(t, err)
		assert.NotSame(t, a, b)
		assert.Equal(t, a, b)
	})

	t.Run("shared cache keys include the configuration", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[*tree.Tree](cache.WithCleanupInterval(0))
		t.Cleanup(func() { _ = c.Close() })

		plain := newResolver(t, tree.Config{Ordered: []token.Token{choice}}, resolve.WithCache(c, time.Minute))
		escaped := newResolver(t, tree.Config{Escape: `\`, Ordered: []token.Token{choice}}, resolve.WithCache(c, time.Minute))

		a, err := plain.Parse(ctx, `<a\:b:c>`)
		require.NoError(t, err)
		b, err := escaped.Parse(ctx, `<a\:b:c>`)
		require.NoError(t, err)
		assert.Len(t, a.Groups[0].Spans, 3)
		assert.Len(t, b.Groups[0].Spans, 2)
	})

	t.Run("concurrent parses share one tree", func(t *testing.T) {
		t.Parallel()
		r := newResolver(t, orderedConfig)
		trees := make([]*tree.Tree, 16)
		var wg sync.WaitGroup
		for i := range trees {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tr, err := r.Parse(ctx, "the <x:y> and *z*")
				assert.NoError(t, err)
				trees[i] = tr
			}()
		}
		wg.Wait()
		for _, tr := range trees {
			assert.Equal(t, trees[0], tr)
		}
	})
}

func TestPreset(t *testing.T) {
	t.Parallel()

	t.Run("default preset is valid", func(t *testing.T) {
		t.Parallel()
		p := resolve.DefaultPreset()
		require.NoError(t, p.Config().Validate())
		assert.Equal(t, `\`, p.Escape)
		assert.True(t, p.Prologue)
		assert.Equal(t, token.MultipleWords("<<", "|", ">>"), p.MustToken("plural"))
		assert.Len(t, p.OfKind(tree.Attributes), 3)
		assert.Equal(t, "bold", p.OfKind(tree.Attributes)[0].Style)

		_, err := p.Token("nope")
		require.ErrorIs(t, err, resolve.ErrUnknownToken)
	})

	t.Run("load from fs", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"tokens.yaml": {Data: []byte(`
escape: '\'
tokens:
  - name: var
    kind: source
    left: "%"
    right: "%"
  - name: pick
    kind: ordered
    left: "["
    interior: "|"
    right: "]"
`)},
		}
		p, err := resolve.LoadPreset(fsys, "tokens.yaml")
		require.NoError(t, err)
		cfg := p.Config()
		assert.Equal(t, []token.Token{token.OneWord("%", "%")}, cfg.Source)
		assert.Equal(t, []token.Token{token.MultipleWords("[", "|", "]")}, cfg.Ordered)

		_, err = resolve.LoadPreset(fsys, "missing.yaml")
		require.Error(t, err)
	})

	t.Run("invalid presets", func(t *testing.T) {
		t.Parallel()
		tests := map[string]string{
			"bad yaml":     "tokens: [",
			"unknown kind": "tokens:\n  - name: a\n    kind: nope\n    left: x\n    right: y\n",
			"missing kind": "tokens:\n  - name: a\n    left: x\n    right: y\n",
			"no name":      "tokens:\n  - kind: source\n    left: x\n    right: y\n",
			"duplicate":    "tokens:\n  - {name: a, kind: source, left: x, right: y}\n  - {name: a, kind: return, left: u, right: v}\n",
			"overlapping":  "tokens:\n  - {name: a, kind: source, left: x, right: y}\n  - {name: b, kind: return, left: y, right: z}\n",
		}
		for name, data := range tests {
			_, err := resolve.ParsePreset([]byte(data))
			require.ErrorIs(t, err, resolve.ErrInvalidPreset, name)
		}
	})
}

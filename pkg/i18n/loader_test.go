package i18n_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/locmark/pkg/i18n"
)

func TestLoaders(t *testing.T) {
	t.Parallel()

	t.Run("json and yaml", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"en/app.json":   {Data: []byte(`{"hello": "Hello, {{name}}", "nested": {"deep": {"key": "deep"}}}`)},
			"pl/app.yml":    {Data: []byte("hello: \"Cześć, {{name}}\"\n")},
			"pl/README.txt": {Data: []byte("ignored")},
		}
		c, err := i18n.New(i18n.WithJSONDir(fsys), i18n.WithYAMLDir(fsys))
		require.NoError(t, err)

		assert.Equal(t, "Hello, Ann", c.T("en", "app", "hello", i18n.M{"name": "Ann"}))
		assert.Equal(t, "Cześć, Ann", c.T("pl", "app", "hello", i18n.M{"name": "Ann"}))
		assert.Equal(t, "deep", c.T("en", "app", "nested.deep.key"))
		assert.Equal(t, []string{"en", "pl"}, c.Languages())
	})

	t.Run("file outside a language directory", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithJSONDir(fstest.MapFS{"app.json": {Data: []byte(`{}`)}}))
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
	})

	t.Run("malformed file", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithYAMLDir(fstest.MapFS{"en/app.yaml": {Data: []byte("a: [")}}))
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
	})
}

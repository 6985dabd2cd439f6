package i18n_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/locmark/pkg/i18n"
)

func TestTranslator(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)

	t.Run("binds language and namespace", func(t *testing.T) {
		t.Parallel()
		tr := i18n.NewTranslator(c, "de", "cart")
		assert.Equal(t, "de", tr.Language())
		assert.Equal(t, "cart", tr.Namespace())
		assert.Equal(t, "Hallo, Ann!", tr.T("greeting", i18n.M{"name": "Ann"}))
		assert.Equal(t, "Sie haben 3 Artikel", tr.Tn("items", 3))
		assert.Equal(t, "Sie haben 2,5 Artikel", tr.Tf("items", 2.5))
		assert.Equal(t, "1.234,5", tr.FormatNumber(1234.5))
		assert.Equal(t, "Save", tr.TranslateMessage("buttons.save", nil))
	})

	t.Run("empty language uses the default", func(t *testing.T) {
		t.Parallel()
		tr := i18n.NewTranslator(c, "", "cart")
		assert.Equal(t, "en", tr.Language())
		assert.Equal(t, "HELLO Bob", tr.Text(context.Background(), "shout", i18n.M{"name": "Bob"}).String())
	})

	t.Run("for request", func(t *testing.T) {
		t.Parallel()
		tr := i18n.ForRequest(c, "ru-RU,ru;q=0.9,en;q=0.5", "cart")
		assert.Equal(t, "ru", tr.Language())
		assert.Equal(t, "Корзина", tr.T("title"))
	})

	t.Run("nil catalog panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { i18n.NewTranslator(nil, "en", "cart") })
	})
}

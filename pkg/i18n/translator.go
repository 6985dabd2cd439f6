package i18n

import (
	"context"
	"time"

	"github.com/dmitrymomot/locmark/pkg/shape"
)

// Translator fixes the language and namespace of a Catalog.
type Translator struct {
	catalog   *Catalog
	format    *LocaleFormat
	language  string
	namespace string
}

// NewTranslator binds c to language and namespace. An empty language selects
// the catalog default.
func NewTranslator(c *Catalog, language, namespace string) *Translator {
	if c == nil {
		panic("i18n: catalog is not provided")
	}
	if language == "" {
		language = c.DefaultLanguage()
	}
	return &Translator{
		catalog:   c,
		format:    c.Format(language),
		language:  language,
		namespace: namespace,
	}
}

// ForRequest binds c to the best language for an Accept-Language header.
func ForRequest(c *Catalog, acceptLanguage, namespace string) *Translator {
	return NewTranslator(c, ParseAcceptLanguage(acceptLanguage, c.Languages()), namespace)
}

func (t *Translator) T(key string, args ...M) string {
	return t.catalog.T(t.language, t.namespace, key, args...)
}

func (t *Translator) Tn(key string, n int, args ...M) string {
	return t.catalog.Tn(t.language, t.namespace, key, n, args...)
}

func (t *Translator) Tf(key string, x float64, args ...M) string {
	return t.catalog.Tf(t.language, t.namespace, key, x, args...)
}

func (t *Translator) Text(ctx context.Context, key string, args ...M) shape.Text {
	return t.catalog.Text(ctx, t.language, t.namespace, key, args...)
}

// TranslateMessage has the shape of a validation message translator.
func (t *Translator) TranslateMessage(key string, values map[string]any) string {
	return t.catalog.T(t.language, t.namespace, key, values)
}

func (t *Translator) FormatNumber(n float64) string        { return t.format.FormatNumber(n) }
func (t *Translator) FormatCurrency(amount float64) string { return t.format.FormatCurrency(amount) }
func (t *Translator) FormatPercent(n float64) string       { return t.format.FormatPercent(n) }
func (t *Translator) FormatDate(d time.Time) string        { return t.format.FormatDate(d) }
func (t *Translator) FormatTime(d time.Time) string        { return t.format.FormatTime(d) }
func (t *Translator) FormatDateTime(d time.Time) string    { return t.format.FormatDateTime(d) }

func (t *Translator) Language() string      { return t.language }
func (t *Translator) Namespace() string     { return t.namespace }
func (t *Translator) Format() *LocaleFormat { return t.format }

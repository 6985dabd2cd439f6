// Package i18n keeps localization templates per language and namespace and
// resolves them with a locmark token preset.
//
// Templates use the preset grammar ([resolve.DefaultPreset] unless
// [WithPreset] says otherwise): {{name}} placeholders, <<one|many>> plural
// groups, ((a/b)) ordered choices, @[id;key=value¦key] dictionaries, ^upper^
// case mapping and *bold*, _italic_ and `code` styling.
//
//	c, err := i18n.New(
//	    i18n.WithTranslations("en", "cart", map[string]any{
//	        "items": "You have {{count}} <<item|items>>",
//	    }),
//	    i18n.WithTranslations("ru", "cart", map[string]any{
//	        "items": "У вас {{count}} <<товар|товара|товаров>>",
//	    }),
//	)
//
//	c.Tn("en", "cart", "items", 1000) // "You have 1,000 items"
//	c.Tn("ru", "cart", "items", 22)   // "У вас 22 товара"
//
// # Arguments
//
// [M] supplies placeholder values by name. "count" also selects the plural
// zone, "choice" the ordered alternative, and any string argument the key of
// the dictionary with the same id. Numbers are rendered with the language's
// [LocaleFormat].
//
// # Plural Rules
//
// Each language uses plural.ForCode unless [WithPluralRule] sets a rule.
// A plural prologue in the template itself ("||(1)(*)||...") overrides both.
//
// # Fallback
//
// A key is looked up in the requested language, its base language ("de" for
// "de-AT") and the default language. When all fail the key itself is
// returned and the [WithMissingKeyHandler] callback runs.
//
// # Files
//
// [WithJSONDir] and [WithYAMLDir] load {lang}/{namespace}.json or .yaml
// files from an fs.FS. Nested objects become dot-separated keys.
//
// # Rich Output
//
// [Catalog.Text] resolves into shape.Text so styling survives for HTML or
// markdown rendering; [Catalog.T] drops it.
//
// # Requests
//
// [ParseAcceptLanguage] matches an Accept-Language header against the
// catalog languages and [ForRequest] returns a [Translator] bound to the
// result.
package i18n

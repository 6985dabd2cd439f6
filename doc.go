// Package locmark resolves localization markup: templates mixing literal
// text with delimited tokens for placeholders, case mapping, styled spans,
// ordered choices, plural forms and keyed dictionaries.
//
// A template is parsed once into a [Tree] that can be resolved many times
// with different data:
//
//	r, err := locmark.New()
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	p := locmark.DefaultPreset()
//	out, err := r.ResolveString(ctx, "You have {{count}} <<file|files>>", locmark.Data{
//	    Source: map[locmark.Token]func(string) string{
//	        p.MustToken("placeholder"): func(string) string { return "3" },
//	    },
//	    Plural: map[locmark.Token]locmark.PluralValue{
//	        p.MustToken("plural"): plural.MustParseValue("3"),
//	    },
//	})
//	// out == "You have 3 files"
//
// The building blocks live in subpackages:
//
//   - pkg/token: delimiter triples and grapheme-safe scanning
//   - pkg/tree: the template tree and its builder
//   - pkg/plural: plural rule definitions and decimal values
//   - pkg/resolve: the two-pass engine, presets and the caching resolver
//   - pkg/shape: styled text with HTML and markdown rendering
//   - pkg/i18n: translation catalogs on top of presets
//   - pkg/cache: memory and Redis tree caches
//
// The cmd/locmarkd binary serves a preview API over HTTP.
package locmark

// Package resolve rewrites localization templates using their replacement
// trees.
//
// A [Resolver] owns a validated token configuration and memoizes the tree of
// every template it parses. An [Engine] walks a tree and rewrites a value of
// source type S into a value of target type T through two [Adapter]s:
//
//	r, err := resolve.New(resolve.DefaultPreset().Config())
//	if err != nil {
//		return err // errors.Is(err, resolve.ErrInvalidConfig)
//	}
//	defer r.Close()
//
//	out, err := r.ResolveString(ctx, "{{n}} <<file|files>>", resolve.Data[string, string]{
//		Source: map[token.Token]func(string) string{placeholder: func(string) string { return "3" }},
//		Plural: map[token.Token]plural.Value{pluralToken: plural.FromInt(3, plural.DefaultFormat)},
//	})
//	// out == "3 files"
//
// # Resolution
//
// Resolution runs two depth-first passes. The first replaces source spans on
// the source value. The value is then converted to the target type, and the
// second pass applies attributes, return transforms and choices. For ordered,
// plural and dictionary groups exactly one alternative survives: the one at
// the desired index, or the last one when the index is out of range.
//
// After every change of the text, pending spans are re-anchored by literal
// comparison of the text before and after the changed region. A span that
// cannot be re-anchored is dropped.
//
// Missing resolution data is not an error: the occurrence is logged and left
// in the output as written.
//
// # Presets
//
// Token sets can be described in YAML and loaded with [LoadPreset].
// [DefaultPreset] is the built-in set used by the i18n catalogs and the
// preview service.
package resolve

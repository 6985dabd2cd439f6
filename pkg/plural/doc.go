// Package plural implements the plurality rule language used by templates to
// pick one of several alternatives for a number.
//
// # Rules
//
// A rule is a sequence of zones, one per template alternative:
//
//	(1)(2→4:^*[^1][2→4]$)?(*)
//
// Each zone lists ':'-separated predicates:
//
//   - an exact number: 1, 0.5
//   - an integer interval: 2→4, 5→ (bounds optional)
//   - a float interval: [0→2[, ]0→1] (brackets choose open or closed bounds)
//   - a digit glob: * (any digits), ? (one digit), {…} (optional group),
//     [2→4] and [^1] (digit classes), *. (values with a fraction)
//
// '↓' after a zone lowers its priority; '?' marks it optional. When a template
// supplies fewer alternatives than the rule has zones, the most optional zones
// are dropped first.
//
// # Selection
//
//	def := plural.Parse("(1)(*)")
//	def.IndexOfZone(plural.FromInt(1, plural.DefaultFormat), 2) // 0
//	def.IndexOfZone(plural.FromInt(5, plural.DefaultFormat), 2) // 1
//
// # Values
//
// [Value] is an exact decimal: floats are converted through their shortest
// decimal representation and rounded in decimal, so 0.1 never turns into
// 0.1000000000000000055. It exposes the CLDR operands n, i, v, w, f and t.
//
// # Presets
//
// [ForLanguage] and [ForCode] return definitions for common language families.
package plural

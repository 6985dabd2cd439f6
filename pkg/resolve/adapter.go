package resolve

import (
	"github.com/dmitrymomot/locmark/pkg/plural"
	"github.com/dmitrymomot/locmark/pkg/token"
)

// Adapter gives the engine access to one value representation, such as plain
// strings or styled text. Offsets are byte offsets into String(v).
type Adapter[V any] interface {
	// String projects the value to its text.
	String(v V) string
	// Slice returns the part of v covering r.
	Slice(v V, r token.Range) V
	// Remove deletes r from v.
	Remove(v *V, r token.Range)
	// Replace substitutes r with with and returns the new text of v.
	Replace(v *V, r token.Range, with V) string
}

// Data is the per-call input of a resolution.
type Data[S, T any] struct {
	// Source transforms the content of source spans, before conversion.
	Source map[token.Token]func(S) S
	// Return transforms the content of return spans, after conversion.
	Return map[token.Token]func(T) T
	// Attributes styles the range of attributes spans. It must not change the text.
	Attributes map[token.Token]func(v *T, r token.Range)
	// Ordered is the alternative index per ordered token.
	Ordered map[token.Token]int
	// Plural is the value per plural token.
	Plural map[token.Token]plural.Value
	// Dictionary is the selected key per dictionary id.
	Dictionary map[string]string
	// Plurality replaces the engine default definition for this call.
	Plurality *plural.Definition
}

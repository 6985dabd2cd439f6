package shape

import "github.com/dmitrymomot/locmark/pkg/token"

// Rich adapts styled Text.
type Rich struct{}

func (Rich) String(v Text) string {
	return v.String()
}

func (Rich) Slice(v Text, r token.Range) Text {
	return v.Slice(r)
}

func (Rich) Remove(v *Text, r token.Range) {
	v.Remove(r)
}

func (Rich) Replace(v *Text, r token.Range, with Text) string {
	v.Replace(r, with)
	return v.String()
}

// Style returns an attributes function adding styles to its range.
func Style(styles ...string) func(v *Text, r token.Range) {
	return func(v *Text, r token.Range) {
		for _, s := range styles {
			v.Apply(r, s)
		}
	}
}

// Embed converts plain text to Text with the given default styles.
func Embed(styles ...string) func(string) Text {
	return func(s string) Text {
		return NewText(s, styles...)
	}
}

// Upper is a transform mapping the letters of every run to upper case.
func Upper(v Text) Text {
	return v.Map(toUpper)
}

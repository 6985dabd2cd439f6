package shape

import "github.com/dmitrymomot/locmark/pkg/token"

// Plain adapts plain strings.
type Plain struct{}

func (Plain) String(v string) string {
	return v
}

func (Plain) Slice(v string, r token.Range) string {
	return v[r.Start:r.End]
}

func (Plain) Remove(v *string, r token.Range) {
	*v = (*v)[:r.Start] + (*v)[r.End:]
}

func (Plain) Replace(v *string, r token.Range, with string) string {
	*v = (*v)[:r.Start] + with + (*v)[r.End:]
	return *v
}

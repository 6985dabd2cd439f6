package shape

import (
	"slices"
	"strings"

	"github.com/dmitrymomot/locmark/pkg/token"
)

// Run is a stretch of text sharing one set of styles.
type Run struct {
	Text string `json:"text"`
	// Styles is sorted and free of duplicates.
	Styles []string `json:"styles,omitempty"`
}

// HasStyle reports whether the run carries style.
func (r Run) HasStyle(style string) bool {
	_, ok := slices.BinarySearch(r.Styles, style)
	return ok
}

// Text is styled text: a sequence of runs. The zero value is empty text.
// Methods with a value receiver never modify the receiver.
type Text struct {
	runs []Run
}

// NewText returns s with the given styles applied to all of it.
func NewText(s string, styles ...string) Text {
	if s == "" {
		return Text{}
	}
	set := slices.Clone(styles)
	slices.Sort(set)
	return Text{runs: []Run{{Text: s, Styles: slices.Compact(set)}}}
}

// FromRuns builds a text from runs, normalizing styles and merging neighbours.
func FromRuns(runs ...Run) Text {
	t := Text{runs: make([]Run, 0, len(runs))}
	for _, r := range runs {
		set := slices.Clone(r.Styles)
		slices.Sort(set)
		t.runs = append(t.runs, Run{Text: r.Text, Styles: slices.Compact(set)})
	}
	t.normalize()
	return t
}

// String returns the unstyled text.
func (t Text) String() string {
	var b strings.Builder
	for _, r := range t.runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Len returns the byte length of the text.
func (t Text) Len() int {
	n := 0
	for _, r := range t.runs {
		n += len(r.Text)
	}
	return n
}

// Runs returns a copy of the runs.
func (t Text) Runs() []Run {
	return slices.Clone(t.runs)
}

// Slice returns the part of t covering r.
func (t Text) Slice(r token.Range) Text {
	c := Text{runs: slices.Clone(t.runs)}
	i := c.split(r.Start)
	j := c.split(r.End)
	out := Text{runs: slices.Clone(c.runs[i:j])}
	out.normalize()
	return out
}

// Remove deletes r.
func (t *Text) Remove(r token.Range) {
	t.own()
	i := t.split(r.Start)
	j := t.split(r.End)
	t.runs = slices.Delete(t.runs, i, j)
	t.normalize()
}

// Replace substitutes r with with.
func (t *Text) Replace(r token.Range, with Text) {
	t.own()
	i := t.split(r.Start)
	j := t.split(r.End)
	t.runs = slices.Replace(t.runs, i, j, with.runs...)
	t.normalize()
}

// Apply adds style to every run inside r.
func (t *Text) Apply(r token.Range, style string) {
	t.own()
	i := t.split(r.Start)
	j := t.split(r.End)
	for k := i; k < j; k++ {
		t.runs[k].Styles = addStyle(t.runs[k].Styles, style)
	}
	t.normalize()
}

// Map returns a copy of t with fn applied to the text of every run.
func (t Text) Map(fn func(string) string) Text {
	out := Text{runs: make([]Run, len(t.runs))}
	for i, r := range t.runs {
		out.runs[i] = Run{Text: fn(r.Text), Styles: r.Styles}
	}
	out.normalize()
	return out
}

// own detaches the runs from copies of t made before a mutation.
func (t *Text) own() {
	t.runs = slices.Clone(t.runs)
}

// split makes pos a run boundary and returns the index of the first run at
// or after pos.
func (t *Text) split(pos int) int {
	off := 0
	for i, r := range t.runs {
		if pos == off {
			return i
		}
		if pos < off+len(r.Text) {
			cut := pos - off
			left := Run{Text: r.Text[:cut], Styles: r.Styles}
			right := Run{Text: r.Text[cut:], Styles: r.Styles}
			t.runs = slices.Replace(t.runs, i, i+1, left, right)
			return i + 1
		}
		off += len(r.Text)
	}
	return len(t.runs)
}

// normalize drops empty runs and merges neighbours with equal styles.
func (t *Text) normalize() {
	out := t.runs[:0]
	for _, r := range t.runs {
		if r.Text == "" {
			continue
		}
		if n := len(out); n > 0 && slices.Equal(out[n-1].Styles, r.Styles) {
			out[n-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	clear(t.runs[len(out):])
	t.runs = out
}

func addStyle(styles []string, style string) []string {
	i, found := slices.BinarySearch(styles, style)
	if found {
		return styles
	}
	return slices.Insert(slices.Clone(styles), i, style)
}

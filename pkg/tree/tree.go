package tree

import (
	"slices"

	"github.com/dmitrymomot/locmark/pkg/token"
)

// NoParent marks a root span.
const NoParent = -1

// Span is one replaceable region. Range is the content; Container also covers
// the tokens around it. Spans of one multiple-words occurrence share their
// Container and their Group.
type Span struct {
	Kind      Kind        `json:"kind"`
	Token     token.Token `json:"token"`
	Group     int         `json:"group"`
	Index     int         `json:"index"`
	Range     token.Range `json:"range"`
	Container token.Range `json:"container"`
	Parent    int         `json:"parent"`
	Children  []int       `json:"children,omitempty"`
	// RemovedLeft and RemovedRight are the token lengths stripped before
	// resolution, set on attributes spans only.
	RemovedLeft  int  `json:"removed_left,omitempty"`
	RemovedRight int  `json:"removed_right,omitempty"`
	Deleted      bool `json:"deleted,omitempty"`
}

// Group is the state shared by the spans of one token occurrence.
type Group struct {
	Kind  Kind        `json:"kind"`
	Token token.Token `json:"token"`
	// Spans lists the group members in segment order.
	Spans []int `json:"spans"`
	// Count is the number of alternatives.
	Count int `json:"count"`
	// Ordinal is the position of a plural group among all plural groups in
	// template order; it selects the prologue override.
	Ordinal int `json:"ordinal,omitempty"`
	// ID, Keys and Default describe dictionary groups. Default is the index of
	// the fallback value, or -1.
	ID      string   `json:"id,omitempty"`
	Keys    []string `json:"keys,omitempty"`
	Default int      `json:"default,omitempty"`
}

// Tree is the replacement forest of one template. Spans live in an arena and
// reference each other by index. A built tree is never mutated by the engine;
// resolution works on a Clone.
type Tree struct {
	// Text is the template after the prologue, escapes and attribute tokens
	// were removed.
	Text   string  `json:"text"`
	Spans  []Span  `json:"spans"`
	Roots  []int   `json:"roots"`
	Groups []Group `json:"groups"`
	// Removals are the ranges cut from the original template, in the order
	// they must be replayed. Each range is relative to the text left by the
	// previous removals.
	Removals []token.Range `json:"removals,omitempty"`
	// Overrides are the prologue plural rules by plural group ordinal.
	// "" uses the default definition.
	Overrides []string `json:"overrides,omitempty"`
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		Text:      t.Text,
		Spans:     slices.Clone(t.Spans),
		Roots:     slices.Clone(t.Roots),
		Groups:    slices.Clone(t.Groups),
		Removals:  slices.Clone(t.Removals),
		Overrides: slices.Clone(t.Overrides),
	}
	for i := range c.Spans {
		c.Spans[i].Children = slices.Clone(c.Spans[i].Children)
	}
	for i := range c.Groups {
		c.Groups[i].Spans = slices.Clone(c.Groups[i].Spans)
		c.Groups[i].Keys = slices.Clone(c.Groups[i].Keys)
	}
	return c
}

// Override returns the prologue rule for a plural group ordinal, or "".
func (t *Tree) Override(ordinal int) string {
	if ordinal < 0 || ordinal >= len(t.Overrides) {
		return ""
	}
	return t.Overrides[ordinal]
}

// Walk calls fn for every span in depth-first pre-order, including deleted
// ones. Children are read after fn returns, so fn may tombstone spans.
func (t *Tree) Walk(fn func(i int)) {
	stack := make([]int, 0, len(t.Spans))
	for i := len(t.Roots) - 1; i >= 0; i-- {
		stack = append(stack, t.Roots[i])
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(i)
		children := t.Spans[i].Children
		for j := len(children) - 1; j >= 0; j-- {
			stack = append(stack, children[j])
		}
	}
}

// Descendants returns every span below i.
func (t *Tree) Descendants(i int) []int {
	var out []int
	stack := slices.Clone(t.Spans[i].Children)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, n)
		stack = append(stack, t.Spans[n].Children...)
	}
	return out
}

// Pending returns the number of spans not yet deleted.
func (t *Tree) Pending() int {
	n := 0
	for _, s := range t.Spans {
		if !s.Deleted {
			n++
		}
	}
	return n
}

package tree

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"

	"github.com/dmitrymomot/locmark/pkg/logger"
	"github.com/dmitrymomot/locmark/pkg/token"
)

// prologueDelimiter opens and closes the plural override prologue.
const prologueDelimiter = "||"

// defaultOverride in a prologue keeps the default definition for its group.
const defaultOverride = "_"

// Option configures Build.
type Option func(*builder)

// WithLogger sets the logger receiving malformed-template diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.logger = l
		}
	}
}

type builder struct {
	logger  *slog.Logger
	cfg     Config
	scanner *token.Scanner
	tree    *Tree
}

// Build scans template for every configured token and returns its
// replacement tree. Malformed markup never fails the build: unclosed tokens,
// bad prologues and insertion conflicts are logged and the offending
// occurrence is left as plain text.
//
// Kinds are inserted in the order ordered, plural, dictionary, source, return,
// attributes, so choices become parents of simple spans on identical slices.
func Build(template string, cfg Config, opts ...Option) *Tree {
	b := &builder{
		logger: logger.NewNope(),
		cfg:    cfg,
		tree:   &Tree{},
	}
	for _, opt := range opts {
		opt(b)
	}

	text := template
	if cfg.Prologue {
		text = b.prologue(template)
	}
	b.tree.Text = text
	b.scanner = token.NewScanner(text, cfg.Escape)

	for _, t := range cfg.Ordered {
		b.scanChoice(Ordered, t)
	}
	for _, t := range cfg.Plural {
		b.scanChoice(Plural, t)
	}
	for _, d := range cfg.Dictionary {
		b.scanDictionary(d)
	}
	for _, t := range cfg.Source {
		b.scanSimple(SimpleSource, t)
	}
	for _, t := range cfg.Return {
		b.scanSimple(SimpleReturn, t)
	}
	for _, t := range cfg.Attributes {
		b.scanSimple(Attributes, t)
	}

	b.numberPluralGroups()
	b.strip()
	return b.tree
}

// prologue consumes a leading "||rule|rule||" and records the overrides.
func (b *builder) prologue(template string) string {
	if !strings.HasPrefix(template, prologueDelimiter) {
		return template
	}
	end := strings.Index(template[len(prologueDelimiter):], prologueDelimiter)
	if end < 0 {
		b.logger.Warn("tree: unclosed plural override prologue",
			slog.String("template", template),
		)
		return template
	}
	body := template[len(prologueDelimiter) : len(prologueDelimiter)+end]
	for _, rule := range strings.Split(body, "|") {
		if rule == defaultOverride {
			rule = ""
		}
		b.tree.Overrides = append(b.tree.Overrides, rule)
	}
	cut := 2*len(prologueDelimiter) + end
	b.tree.Removals = append(b.tree.Removals, token.Range{Start: 0, End: cut})
	return template[cut:]
}

func (b *builder) scanSimple(kind Kind, t token.Token) {
	b.scanPairs(t.Left, t.Right, t.String(), func(outer, inner token.Range) {
		b.insert(Group{Kind: kind, Token: t, Count: 1, Default: -1}, outer, []token.Range{inner})
	})
}

func (b *builder) scanChoice(kind Kind, t token.Token) {
	b.scanPairs(t.Left, t.Right, t.String(), func(outer, inner token.Range) {
		segments := b.split(inner, t.Interior)
		b.insert(Group{Kind: kind, Token: t, Count: len(segments), Default: -1}, outer, segments)
	})
}

// scanDictionary reads "left id sep key kv value sep key kv value default key right".
func (b *builder) scanDictionary(d token.Dictionary) {
	b.scanPairs(d.Left, d.Right, d.Left+"…"+d.Right, func(outer, inner token.Range) {
		body := inner
		defaultKey, hasDefault := "", false
		if r, ok := b.scanner.Find(d.Default, inner.Start); ok && r.End <= inner.End {
			body.End = r.Start
			defaultKey, hasDefault = b.unescape(b.tree.Text[r.End:inner.End]), true
		}

		parts := b.split(body, d.Separator)
		if len(parts) < 2 {
			b.logger.Warn("tree: dictionary has no entries",
				slog.String("token", d.Left+"…"+d.Right),
				slog.Int("offset", outer.Start),
			)
			return
		}

		g := Group{
			Kind:    Dictionary,
			Token:   d.Token(),
			ID:      b.unescape(b.tree.Text[parts[0].Start:parts[0].End]),
			Default: -1,
		}
		values := make([]token.Range, 0, len(parts)-1)
		for _, entry := range parts[1:] {
			key, value := entry, entry
			if kv, ok := b.scanner.Find(d.KeyValue, entry.Start); ok && kv.End <= entry.End {
				key = token.Range{Start: entry.Start, End: kv.Start}
				value = token.Range{Start: kv.End, End: entry.End}
			}
			name := b.unescape(b.tree.Text[key.Start:key.End])
			if hasDefault && g.Default < 0 && name == defaultKey {
				g.Default = len(values)
			}
			g.Keys = append(g.Keys, name)
			values = append(values, value)
		}
		g.Count = len(values)
		b.insert(g, outer, values)
	})
}

func (b *builder) scanPairs(left, right, name string, fn func(outer, inner token.Range)) {
	cursor := 0
	for {
		outer, inner, err := b.scanner.FindPair(left, right, cursor)
		if token.IsNotFound(err) {
			return
		}
		if err != nil {
			b.logger.Warn("tree: unclosed token",
				slog.String("token", name),
				slog.Int("offset", cursor),
				slog.String("error", err.Error()),
			)
			return
		}
		fn(outer, inner)
		cursor = outer.End
	}
}

// split cuts r at every unescaped occurrence of sep inside it.
func (b *builder) split(r token.Range, sep string) []token.Range {
	var out []token.Range
	from := r.Start
	for {
		m, ok := b.scanner.Find(sep, from)
		if !ok || m.End > r.End {
			break
		}
		out = append(out, token.Range{Start: from, End: m.Start})
		from = m.End
	}
	return append(out, token.Range{Start: from, End: r.End})
}

func (b *builder) unescape(s string) string {
	if b.cfg.Escape == "" {
		return s
	}
	return strings.ReplaceAll(s, b.cfg.Escape, "")
}

// insert places the spans of one occurrence into the forest. Placement is
// decided for the whole group before anything is mutated, so a conflict drops
// the occurrence without leaving partial state.
func (b *builder) insert(g Group, container token.Range, ranges []token.Range) {
	parent, adopt, ok := b.place(g.Kind, container, ranges)
	if !ok {
		b.logger.Warn("tree: overlapping tokens, occurrence left as text",
			slog.String("token", g.Token.String()),
			slog.String("kind", g.Kind.String()),
			slog.Int("offset", container.Start),
		)
		return
	}

	t := b.tree
	gi := len(t.Groups)
	adopted := make(map[int]bool)
	for k, r := range ranges {
		si := len(t.Spans)
		t.Spans = append(t.Spans, Span{
			Kind:      g.Kind,
			Token:     g.Token,
			Group:     gi,
			Index:     k,
			Range:     r,
			Container: container,
			Parent:    parent,
			Children:  adopt[k],
		})
		for _, c := range adopt[k] {
			t.Spans[c].Parent = si
			adopted[c] = true
		}
		b.sortLevel(t.Spans[si].Children)
		g.Spans = append(g.Spans, si)
	}
	t.Groups = append(t.Groups, g)

	level := b.level(parent)
	kept := (*level)[:0]
	for _, i := range *level {
		if !adopted[i] {
			kept = append(kept, i)
		}
	}
	*level = append(kept, g.Spans...)
	b.sortLevel(*level)
}

// place finds the parent of a new occurrence and, per segment, the existing
// spans it adopts.
func (b *builder) place(kind Kind, container token.Range, ranges []token.Range) (int, [][]int, bool) {
	parent := NoParent
	level := b.tree.Roots
	isAttr := kind == Attributes

	for {
		if i := b.enclosing(level, container); i >= 0 {
			parent = i
			level = b.tree.Spans[i].Children
			continue
		}

		adopt := make([][]int, len(ranges))
		for _, i := range level {
			s := b.tree.Spans[i]
			sAttr := s.Kind == Attributes
			switch {
			case s.Container == container:
			case !s.Container.Overlaps(container):
			case isAttr && sAttr:
			case !isAttr && containing(ranges, s.Container) >= 0:
				k := containing(ranges, s.Container)
				adopt[k] = append(adopt[k], i)
			case isAttr && container.Contains(s.Container):
			case sAttr && s.Container.Contains(container):
			default:
				return NoParent, nil, false
			}
		}
		return parent, adopt, true
	}
}

// enclosing returns the span of level whose content holds container, looking
// at every segment of a group rather than only the first one overlapping it.
func (b *builder) enclosing(level []int, container token.Range) int {
	for _, i := range level {
		s := b.tree.Spans[i]
		if s.Kind != Attributes && s.Range.Contains(container) {
			return i
		}
	}
	return -1
}

func containing(ranges []token.Range, r token.Range) int {
	for k, c := range ranges {
		if c.Contains(r) {
			return k
		}
	}
	return -1
}

func (b *builder) level(parent int) *[]int {
	if parent == NoParent {
		return &b.tree.Roots
	}
	return &b.tree.Spans[parent].Children
}

func (b *builder) sortLevel(level []int) {
	slices.SortStableFunc(level, func(x, y int) int {
		sx, sy := b.tree.Spans[x], b.tree.Spans[y]
		if c := cmp.Compare(sx.Container.Start, sy.Container.Start); c != 0 {
			return c
		}
		return cmp.Compare(sx.Range.Start, sy.Range.Start)
	})
}

// numberPluralGroups assigns ordinals to plural groups in template order.
func (b *builder) numberPluralGroups() {
	var plural []int
	for gi, g := range b.tree.Groups {
		if g.Kind == Plural {
			plural = append(plural, gi)
		}
	}
	slices.SortStableFunc(plural, func(x, y int) int {
		return cmp.Compare(
			b.tree.Spans[b.tree.Groups[x].Spans[0]].Container.Start,
			b.tree.Spans[b.tree.Groups[y].Spans[0]].Container.Start,
		)
	})
	for ordinal, gi := range plural {
		b.tree.Groups[gi].Ordinal = ordinal
	}
}

// strip removes every escape token and the tokens of attributes spans, which
// never change the text during resolution, and shifts all spans accordingly.
func (b *builder) strip() {
	t := b.tree
	var cuts []token.Range
	if b.cfg.Escape != "" {
		cuts = append(cuts, b.scanner.Occurrences(b.cfg.Escape)...)
	}
	for i := range t.Spans {
		s := &t.Spans[i]
		if s.Kind != Attributes {
			continue
		}
		s.RemovedLeft = s.Range.Start - s.Container.Start
		s.RemovedRight = s.Container.End - s.Range.End
		cuts = append(cuts,
			token.Range{Start: s.Container.Start, End: s.Range.Start},
			token.Range{Start: s.Range.End, End: s.Container.End},
		)
	}
	if len(cuts) == 0 {
		return
	}
	slices.SortFunc(cuts, func(x, y token.Range) int {
		return cmp.Compare(x.Start, y.Start)
	})

	var sb strings.Builder
	prev := 0
	for _, c := range cuts {
		sb.WriteString(t.Text[prev:c.Start])
		prev = c.End
	}
	sb.WriteString(t.Text[prev:])
	t.Text = sb.String()

	shift := func(x int) int {
		removed := 0
		for _, c := range cuts {
			switch {
			case c.End <= x:
				removed += c.Len()
			case c.Start < x:
				return c.Start - removed
			default:
				return x - removed
			}
		}
		return x - removed
	}
	for i := range t.Spans {
		s := &t.Spans[i]
		s.Range = token.Range{Start: shift(s.Range.Start), End: shift(s.Range.End)}
		s.Container = token.Range{Start: shift(s.Container.Start), End: shift(s.Container.End)}
	}

	for i := len(cuts) - 1; i >= 0; i-- {
		t.Removals = append(t.Removals, cuts[i])
	}
}

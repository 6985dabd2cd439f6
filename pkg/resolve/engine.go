package resolve

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dmitrymomot/locmark/pkg/plural"
	"github.com/dmitrymomot/locmark/pkg/token"
	"github.com/dmitrymomot/locmark/pkg/tree"
)

// Engine rewrites values of type S into values of type T by walking a
// replacement tree. It holds no per-call state and is safe for concurrent use.
type Engine[S, T any] struct {
	src     Adapter[S]
	dst     Adapter[T]
	convert func(S) T
	opts    *options
}

// NewEngine returns an engine reading S through src, converting with convert
// and writing T through dst. convert must preserve the text.
func NewEngine[S, T any](src Adapter[S], dst Adapter[T], convert func(S) T, opts ...Option) *Engine[S, T] {
	return newEngine(src, dst, convert, newOptions(opts))
}

// WithLogger returns a copy of e logging resolution diagnostics to l.
func (e *Engine[S, T]) WithLogger(l *slog.Logger) *Engine[S, T] {
	o := *e.opts
	o.logger = l
	c := *e
	c.opts = &o
	return &c
}

// Resolve applies data to source, whose text must be the template t was
// built from. t is not modified, so one tree serves any number of calls.
//
// Source spans are resolved first, on the source value. The value is then
// converted, and every other kind is resolved on the target value. After
// each text change, pending spans are re-anchored; spans whose text was
// replaced are dropped.
func (e *Engine[S, T]) Resolve(t *tree.Tree, source S, data Data[S, T]) (T, error) {
	var zero T
	tr := t.Clone()

	for _, r := range tr.Removals {
		if r.End > len(e.src.String(source)) {
			return zero, fmt.Errorf("%w: removal %s out of bounds", ErrSourceMismatch, r)
		}
		e.src.Remove(&source, r)
	}
	if got := e.src.String(source); got != tr.Text {
		return zero, fmt.Errorf("%w: got %q, want %q", ErrSourceMismatch, got, tr.Text)
	}

	first := &pass[S]{tree: tr, text: tr.Text, value: &source, adapter: e.src, logger: e.opts.logger}
	tr.Walk(func(i int) {
		s := tr.Spans[i]
		if s.Deleted || s.Kind != tree.SimpleSource {
			return
		}
		fn, ok := data.Source[s.Token]
		if !ok || fn == nil {
			first.missing(i, "no source transform")
			return
		}
		first.replace(i, fn(e.src.Slice(source, s.Range)))
	})

	target := e.convert(source)
	if got := e.dst.String(target); got != first.text {
		return zero, fmt.Errorf("%w: got %q, want %q", ErrTargetMismatch, got, first.text)
	}

	second := &pass[T]{tree: tr, text: first.text, value: &target, adapter: e.dst, logger: e.opts.logger}
	tr.Walk(func(i int) {
		s := tr.Spans[i]
		if s.Deleted {
			return
		}
		switch s.Kind {
		case tree.Attributes:
			fn, ok := data.Attributes[s.Token]
			if !ok || fn == nil {
				second.missing(i, "no attributes function")
			} else {
				fn(&target, s.Range)
			}
			tr.Spans[i].Deleted = true
		case tree.SimpleReturn:
			fn, ok := data.Return[s.Token]
			if !ok || fn == nil {
				second.missing(i, "no return transform")
				return
			}
			second.replace(i, fn(e.dst.Slice(target, s.Range)))
		case tree.Ordered, tree.Plural, tree.Dictionary:
			index, ok := e.choose(tr, tr.Groups[s.Group], data)
			if !ok {
				second.missing(i, "no choice data")
				second.release(s.Group)
				return
			}
			second.keep(s.Group, index)
		}
	})
	return target, nil
}

// choose returns the alternative of a choice group that survives.
func (e *Engine[S, T]) choose(tr *tree.Tree, g tree.Group, data Data[S, T]) (int, bool) {
	var desired int
	switch g.Kind {
	case tree.Ordered:
		n, ok := data.Ordered[g.Token]
		if !ok {
			return 0, false
		}
		desired = n
	case tree.Plural:
		v, ok := data.Plural[g.Token]
		if !ok {
			return 0, false
		}
		desired = e.definition(tr, g, data).IndexOfZone(v, g.Count)
	case tree.Dictionary:
		key, ok := data.Dictionary[g.ID]
		if !ok {
			return 0, false
		}
		desired = slices.Index(g.Keys, key)
		if desired < 0 {
			desired = g.Default
			e.opts.logger.Warn("resolve: unknown dictionary key, using default",
				slog.String("id", g.ID),
				slog.String("key", key),
				slog.Int("default", g.Default),
			)
		}
	}
	if desired < 0 || desired >= g.Count {
		desired = g.Count - 1
	}
	return desired, true
}

func (e *Engine[S, T]) definition(tr *tree.Tree, g tree.Group, data Data[S, T]) *plural.Definition {
	if rule := tr.Override(g.Ordinal); rule != "" {
		return plural.Parse(rule, plural.WithLogger(e.opts.logger))
	}
	if data.Plurality != nil {
		return data.Plurality
	}
	return e.opts.plurality
}

// pass is the mutable state of one traversal over one value type.
type pass[V any] struct {
	tree    *tree.Tree
	text    string
	value   *V
	adapter Adapter[V]
	logger  *slog.Logger
}

func (p *pass[V]) missing(i int, reason string) {
	s := p.tree.Spans[i]
	p.logger.Warn("resolve: token left unresolved",
		slog.String("reason", reason),
		slog.String("token", s.Token.String()),
		slog.String("kind", s.Kind.String()),
		slog.Int("offset", s.Container.Start),
	)
}

// release tombstones a group without touching the text, leaving its
// descendants pending.
func (p *pass[V]) release(group int) {
	for _, si := range p.tree.Groups[group].Spans {
		p.tree.Spans[si].Deleted = true
	}
}

// replace substitutes the container of span i with value.
func (p *pass[V]) replace(i int, with V) {
	s := p.tree.Spans[i]
	p.release(s.Group)
	for _, d := range p.tree.Descendants(i) {
		p.tree.Spans[d].Deleted = true
	}
	p.rewrite(s.Container, with, nil)
}

// keep replaces the shared container of a choice group with the content of
// its alternative index, dropping the other alternatives with their spans.
func (p *pass[V]) keep(group, index int) {
	g := p.tree.Groups[group]
	survivor := p.tree.Spans[g.Spans[index]]
	p.release(group)
	for k, si := range g.Spans {
		if k == index {
			continue
		}
		for _, d := range p.tree.Descendants(si) {
			p.tree.Spans[d].Deleted = true
		}
	}
	kept := survivor.Range
	p.rewrite(survivor.Container, p.adapter.Slice(*p.value, kept), &kept)
}

func (p *pass[V]) rewrite(region token.Range, with V, kept *token.Range) {
	old := p.text
	p.text = p.adapter.Replace(p.value, region, with)
	p.reanchor(old, region, kept)
}

// reanchor moves every pending span from old to the current text. Adapters
// only change the replaced region, so offsets before it are unchanged,
// offsets after it shift by the length difference and offsets inside the
// kept range follow it. Other offsets inside the region lost their text. An
// adapter that also changed text outside the region leaves no anchor at all.
func (p *pass[V]) reanchor(old string, region token.Range, kept *token.Range) {
	if !strings.HasPrefix(p.text, old[:region.Start]) || !strings.HasSuffix(p.text, old[region.End:]) {
		p.logger.Warn("resolve: text changed outside the replaced region, pending spans dropped",
			slog.Int("offset", region.Start),
		)
		for i := range p.tree.Spans {
			p.tree.Spans[i].Deleted = true
		}
		return
	}

	shift := len(p.text) - len(old)
	remap := func(x int) (int, bool) {
		switch {
		case x <= region.Start:
			return x, true
		case x >= region.End:
			return x + shift, true
		case kept != nil && kept.Start <= x && x <= kept.End:
			return region.Start + x - kept.Start, true
		default:
			return 0, false
		}
	}

	for i := range p.tree.Spans {
		s := &p.tree.Spans[i]
		if s.Deleted {
			continue
		}
		rs, ok1 := remap(s.Range.Start)
		re, ok2 := remap(s.Range.End)
		cs, ok3 := remap(s.Container.Start)
		ce, ok4 := remap(s.Container.End)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			s.Deleted = true
			p.logger.Debug("resolve: span lost its anchor",
				slog.String("token", s.Token.String()),
				slog.Int("offset", s.Container.Start),
			)
			continue
		}
		s.Range = token.Range{Start: rs, End: re}
		s.Container = token.Range{Start: cs, End: ce}
	}
}

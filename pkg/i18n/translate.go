package i18n

import (
	"context"
	"log/slog"
	"maps"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/locmark/pkg/logger"
	"github.com/dmitrymomot/locmark/pkg/plural"
	"github.com/dmitrymomot/locmark/pkg/resolve"
	"github.com/dmitrymomot/locmark/pkg/shape"
	"github.com/dmitrymomot/locmark/pkg/token"
	"github.com/dmitrymomot/locmark/pkg/tree"
)

// Argument names with a meaning beyond placeholders.
const (
	CountArg  = "count"
	ChoiceArg = "choice"
)

// presetTokens are the preset tokens grouped by what the catalog feeds them.
type presetTokens struct {
	source     []resolve.NamedToken
	ret        []resolve.NamedToken
	attributes []resolve.NamedToken
	ordered    []token.Token
	plural     []token.Token
}

func lookupTokens(p *resolve.Preset) (presetTokens, error) {
	t := presetTokens{
		source:     p.OfKind(tree.SimpleSource),
		ret:        p.OfKind(tree.SimpleReturn),
		attributes: p.OfKind(tree.Attributes),
	}
	if len(t.source) == 0 {
		return t, ErrMissingToken
	}
	for _, n := range p.OfKind(tree.Ordered) {
		t.ordered = append(t.ordered, n.Token())
	}
	for _, n := range p.OfKind(tree.Plural) {
		t.plural = append(t.plural, n.Token())
	}
	return t, nil
}

// T resolves the template of key in lang. Placeholders take their values
// from args; plural groups select by args["count"], ordered choices by
// args["choice"] and dictionaries by the string argument named after their
// id. A key without a template in any fallback language is returned as is.
func (c *Catalog) T(lang, namespace, key string, args ...M) string {
	return c.TContext(context.Background(), lang, namespace, key, args...)
}

// TContext is T with a context for the template cache.
func (c *Catalog) TContext(ctx context.Context, lang, namespace, key string, args ...M) string {
	tpl, ok := c.lookup(lang, namespace, key)
	if !ok {
		return key
	}
	e := resolve.EngineFor(c.resolver, shape.Plain{}, shape.Plain{}, func(s string) string { return s })
	out, err := resolve.Resolve(ctx, c.resolver, e, tpl, data(c, c.logger, lang, merge(args), plainReturn, plainAttribute))
	if err != nil {
		c.logger.ErrorContext(ctx, "i18n: resolve failed",
			slog.String("lang", lang), slog.String("key", key), slog.String("error", err.Error()))
		return tpl
	}
	return out
}

// Tn is T with n as the "count" argument. Explicit args win.
func (c *Catalog) Tn(lang, namespace, key string, n int, args ...M) string {
	return c.T(lang, namespace, key, append([]M{{CountArg: n}}, args...)...)
}

// Tf is Tn for fractional counts.
func (c *Catalog) Tf(lang, namespace, key string, x float64, args ...M) string {
	return c.T(lang, namespace, key, append([]M{{CountArg: x}}, args...)...)
}

// Text resolves like T into styled text: attributes tokens apply their preset
// style instead of being dropped.
func (c *Catalog) Text(ctx context.Context, lang, namespace, key string, args ...M) shape.Text {
	tpl, ok := c.lookup(lang, namespace, key)
	if !ok {
		return shape.NewText(key)
	}
	e := resolve.EngineFor(c.resolver, shape.Plain{}, shape.Rich{}, shape.Embed())
	out, err := resolve.Resolve(ctx, c.resolver, e, tpl, data(c, c.logger, lang, merge(args), richReturn, richAttribute))
	if err != nil {
		c.logger.ErrorContext(ctx, "i18n: resolve failed",
			slog.String("lang", lang), slog.String("key", key), slog.String("error", err.Error()))
		return shape.NewText(tpl)
	}
	return out
}

// Preview resolves an inline template for lang into styled text, bypassing
// the tree cache, and returns the warnings produced while building and
// resolving it. Resolution errors are returned; diagnostics never are.
func (c *Catalog) Preview(ctx context.Context, lang, template string, args M) (shape.Text, []logger.Entry, error) {
	rec := logger.NewRecorder(slog.LevelWarn)
	log := logger.Tee(c.logger, rec)

	t := tree.Build(template, c.preset.Config(), tree.WithLogger(log))
	e := resolve.EngineFor(c.resolver, shape.Plain{}, shape.Rich{}, shape.Embed()).WithLogger(log)
	out, err := e.Resolve(t, template, data(c, log, lang, args, richReturn, richAttribute))
	if err != nil {
		c.logger.ErrorContext(ctx, "i18n: preview failed", slog.String("lang", lang), slog.String("error", err.Error()))
		return shape.Text{}, rec.Entries(), err
	}
	return out, rec.Entries(), nil
}

// data maps args onto the preset tokens for lang.
func data[T any](
	c *Catalog,
	log *slog.Logger,
	lang string,
	args M,
	ret func(fn func(string) string) func(T) T,
	attr func(style string) func(*T, token.Range),
) resolve.Data[string, T] {
	format := c.Format(lang)
	d := resolve.Data[string, T]{
		Source:     make(map[token.Token]func(string) string, len(c.tokens.source)),
		Return:     make(map[token.Token]func(T) T, len(c.tokens.ret)),
		Attributes: make(map[token.Token]func(*T, token.Range), len(c.tokens.attributes)),
		Plurality:  c.Plurality(lang),
	}

	for _, n := range c.tokens.source {
		tok := n.Token()
		d.Source[tok] = func(name string) string {
			v, ok := args[strings.TrimSpace(name)]
			if !ok {
				return tok.Left + name + tok.Right
			}
			return format.Arg(v)
		}
	}
	for _, n := range c.tokens.ret {
		if fn := caseMapping(n.Name, lang); fn != nil {
			d.Return[n.Token()] = ret(fn)
		}
	}
	for _, n := range c.tokens.attributes {
		d.Attributes[n.Token()] = attr(n.Style)
	}

	if v, ok := args[CountArg]; ok && len(c.tokens.plural) > 0 {
		count, err := format.Count(v)
		if err != nil {
			log.Warn("i18n: invalid count", slog.Any("count", v), slog.String("error", err.Error()))
		} else {
			d.Plural = make(map[token.Token]plural.Value, len(c.tokens.plural))
			for _, t := range c.tokens.plural {
				d.Plural[t] = count
			}
		}
	}
	if v, ok := args[ChoiceArg].(int); ok {
		d.Ordered = make(map[token.Token]int, len(c.tokens.ordered))
		for _, t := range c.tokens.ordered {
			d.Ordered[t] = v
		}
	}
	for k, v := range args {
		if s, ok := v.(string); ok {
			if d.Dictionary == nil {
				d.Dictionary = make(map[string]string)
			}
			d.Dictionary[k] = s
		}
	}
	return d
}

// caseMapping returns the case conversion a return token named name stands
// for, in the conventions of lang.
func caseMapping(name, lang string) func(string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Und
	}
	var caser func() cases.Caser
	switch name {
	case "upper":
		caser = func() cases.Caser { return cases.Upper(tag) }
	case "lower":
		caser = func() cases.Caser { return cases.Lower(tag) }
	case "title":
		caser = func() cases.Caser { return cases.Title(tag) }
	default:
		return nil
	}
	// Casers keep state; each call gets its own.
	return func(s string) string { return caser().String(s) }
}

func plainReturn(fn func(string) string) func(string) string {
	return fn
}

func plainAttribute(string) func(*string, token.Range) {
	return func(*string, token.Range) {}
}

func richReturn(fn func(string) string) func(shape.Text) shape.Text {
	return func(t shape.Text) shape.Text { return t.Map(fn) }
}

func richAttribute(style string) func(*shape.Text, token.Range) {
	if style == "" {
		return func(*shape.Text, token.Range) {}
	}
	return shape.Style(style)
}

func merge(args []M) M {
	out := make(M)
	for _, a := range args {
		maps.Copy(out, a)
	}
	return out
}

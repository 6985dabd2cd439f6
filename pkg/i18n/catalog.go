package i18n

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/locmark/pkg/cache"
	"github.com/dmitrymomot/locmark/pkg/logger"
	"github.com/dmitrymomot/locmark/pkg/plural"
	"github.com/dmitrymomot/locmark/pkg/resolve"
	"github.com/dmitrymomot/locmark/pkg/tree"
)

// DefaultLang is the fallback language unless WithDefaultLanguage says otherwise.
const DefaultLang = "en"

// M carries the arguments of one translation: placeholder values, the plural
// count under "count", an ordered choice under "choice" and dictionary keys
// under their dictionary id.
type M map[string]any

// Catalog holds localization templates per language and namespace and
// resolves them with a token preset. It is immutable after New and safe for
// concurrent use.
type Catalog struct {
	// "lang:namespace:key.path" -> template
	templates map[string]string
	rules     map[string]*plural.Definition
	formats   map[string]*LocaleFormat

	preset   *resolve.Preset
	resolver *resolve.Resolver
	tokens   presetTokens
	logger   *slog.Logger

	missingKeyHandler func(lang, namespace, key string)
	defaultLang       string
	languages         []string
}

// Option configures a Catalog.
type Option func(*config) error

type config struct {
	templates map[string]string
	rules     map[string]string
	formats   map[string]*LocaleFormat
	preset    *resolve.Preset
	cache     cache.Cache[*tree.Tree]
	cacheTTL  time.Duration
	logger    *slog.Logger
	missing   func(lang, namespace, key string)
	lang      string
	languages []string
}

// New builds a catalog. Templates are parsed lazily on first use and the
// trees are memoized.
func New(opts ...Option) (*Catalog, error) {
	cfg := &config{
		templates: make(map[string]string),
		rules:     make(map[string]string),
		formats:   make(map[string]*LocaleFormat),
		logger:    logger.NewNope(),
		lang:      DefaultLang,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("i18n: failed to apply option: %w", err)
		}
	}
	if cfg.lang == "" {
		return nil, ErrEmptyLanguage
	}
	if cfg.preset == nil {
		cfg.preset = resolve.DefaultPreset()
	}

	tokens, err := lookupTokens(cfg.preset)
	if err != nil {
		return nil, err
	}

	ropts := []resolve.Option{resolve.WithLogger(cfg.logger)}
	if cfg.cache != nil {
		ropts = append(ropts, resolve.WithCache(cfg.cache, cfg.cacheTTL))
	}
	r, err := resolve.New(cfg.preset.Config(), ropts...)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		templates:         cfg.templates,
		rules:             make(map[string]*plural.Definition),
		formats:           cfg.formats,
		preset:            cfg.preset,
		resolver:          r,
		tokens:            tokens,
		logger:            cfg.logger,
		missingKeyHandler: cfg.missing,
		defaultLang:       cfg.lang,
	}
	c.languages = c.buildLanguages(cfg.languages)
	for _, lang := range c.languages {
		c.rules[lang] = plural.ForCode(lang, plural.WithLogger(cfg.logger))
	}
	for lang, rule := range cfg.rules {
		c.rules[lang] = plural.Parse(rule, plural.WithLogger(cfg.logger))
	}
	return c, nil
}

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(c *config) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		c.lang = lang
		return nil
	}
}

// WithLanguages declares supported languages beyond those that have
// templates. The default language always comes first.
func WithLanguages(langs ...string) Option {
	return func(c *config) error {
		c.languages = append(c.languages, langs...)
		return nil
	}
}

// WithTranslations adds templates for one language and namespace. Nested
// maps are flattened into dot-separated keys.
func WithTranslations(lang, namespace string, templates map[string]any) Option {
	return func(c *config) error {
		return c.add(lang, namespace, templates)
	}
}

// WithPluralRule overrides the plural rule of lang, e.g. "(1)(*)".
// By default the rule comes from plural.ForCode.
func WithPluralRule(lang, rule string) Option {
	return func(c *config) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		c.rules[lang] = rule
		return nil
	}
}

// WithFormat sets the number format of lang. By default FormatFor(lang).
func WithFormat(lang string, f *LocaleFormat) Option {
	return func(c *config) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		c.formats[lang] = f
		return nil
	}
}

// WithPreset replaces the default token preset.
func WithPreset(p *resolve.Preset) Option {
	return func(c *config) error {
		c.preset = p
		return nil
	}
}

// WithCache memoizes template trees in a shared cache.
func WithCache(tc cache.Cache[*tree.Tree], ttl time.Duration) Option {
	return func(c *config) error {
		c.cache, c.cacheTTL = tc, ttl
		return nil
	}
}

// WithLogger sets the logger receiving template diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		if l != nil {
			c.logger = l
		}
		return nil
	}
}

// WithMissingKeyHandler is called when a key exists in no fallback language.
func WithMissingKeyHandler(handler func(lang, namespace, key string)) Option {
	return func(c *config) error {
		c.missing = handler
		return nil
	}
}

func (c *config) add(lang, namespace string, templates map[string]any) error {
	if lang == "" {
		return ErrEmptyLanguage
	}
	if namespace == "" {
		return ErrEmptyNamespace
	}
	for key, value := range flatten(templates, "") {
		c.templates[buildKey(lang, namespace, key)] = value
	}
	c.languages = append(c.languages, lang)
	return nil
}

// Close releases the template cache.
func (c *Catalog) Close() error {
	return c.resolver.Close()
}

// Languages returns the supported languages, the default one first.
func (c *Catalog) Languages() []string {
	return slices.Clone(c.languages)
}

// DefaultLanguage returns the fallback language.
func (c *Catalog) DefaultLanguage() string {
	return c.defaultLang
}

// Preset returns the token preset templates are written in.
func (c *Catalog) Preset() *resolve.Preset {
	return c.preset
}

// Plurality returns the plural definition used for lang.
func (c *Catalog) Plurality(lang string) *plural.Definition {
	for _, l := range c.chain(lang) {
		if d, ok := c.rules[l]; ok {
			return d
		}
	}
	return plural.ForCode(lang)
}

// Format returns the number format used for lang.
func (c *Catalog) Format(lang string) *LocaleFormat {
	if f, ok := c.formats[lang]; ok {
		return f
	}
	if f, ok := c.formats[baseLanguage(lang)]; ok {
		return f
	}
	return FormatFor(lang)
}

// lookup finds the template of key in lang, its base language or the
// default language, in that order.
func (c *Catalog) lookup(lang, namespace, key string) (string, bool) {
	for _, l := range c.chain(lang) {
		if tpl, ok := c.templates[buildKey(l, namespace, key)]; ok {
			return tpl, true
		}
	}
	if c.missingKeyHandler != nil {
		c.missingKeyHandler(lang, namespace, key)
	}
	return "", false
}

func (c *Catalog) chain(lang string) []string {
	out := []string{lang}
	if base := baseLanguage(lang); base != lang {
		out = append(out, base)
	}
	if !slices.Contains(out, c.defaultLang) {
		out = append(out, c.defaultLang)
	}
	return out
}

func (c *Catalog) buildLanguages(extra []string) []string {
	set := make(map[string]bool)
	for _, l := range extra {
		if l != "" && l != c.defaultLang {
			set[l] = true
		}
	}
	return append([]string{c.defaultLang}, slices.Sorted(maps.Keys(set))...)
}

func buildKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

func flatten(data map[string]any, prefix string) map[string]string {
	out := make(map[string]string)
	for key, value := range data {
		if prefix != "" {
			key = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[key] = v
		case map[string]any:
			maps.Copy(out, flatten(v, key))
		case map[string]string:
			for sub, s := range v {
				out[key+"."+sub] = s
			}
		default:
			out[key] = fmt.Sprint(v)
		}
	}
	return out
}

// baseLanguage strips the region: "en-US" -> "en".
func baseLanguage(lang string) string {
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		return lang[:i]
	}
	return lang
}

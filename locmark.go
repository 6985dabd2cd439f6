package locmark

import (
	"github.com/dmitrymomot/locmark/pkg/i18n"
	"github.com/dmitrymomot/locmark/pkg/plural"
	"github.com/dmitrymomot/locmark/pkg/resolve"
	"github.com/dmitrymomot/locmark/pkg/shape"
	"github.com/dmitrymomot/locmark/pkg/token"
	"github.com/dmitrymomot/locmark/pkg/tree"
)

// Type aliases - public API
type (
	// Token is a left/interior/right delimiter triple.
	Token = token.Token

	// Range is a byte range into a template.
	Range = token.Range

	// Config describes the token kinds a tree is built with.
	Config = tree.Config

	// Tree is the parsed, reusable form of a template.
	Tree = tree.Tree

	// Preset is a named token set loaded from YAML.
	Preset = resolve.Preset

	// Resolver builds trees at most once and resolves them.
	Resolver = resolve.Resolver

	// Option configures a Resolver.
	Option = resolve.Option

	// Data supplies the values a plain-text resolution consumes.
	Data = resolve.Data[string, string]

	// Text is styled text produced by rich resolution.
	Text = shape.Text

	// PluralValue is a decimal number used for plural selection.
	PluralValue = plural.Value

	// Catalog holds translations resolved through a preset.
	Catalog = i18n.Catalog
)

// New creates a Resolver for the built-in preset.
func New(opts ...Option) (*Resolver, error) {
	return resolve.New(resolve.DefaultPreset().Config(), opts...)
}

// DefaultPreset returns the built-in token set.
func DefaultPreset() *Preset {
	return resolve.DefaultPreset()
}

// NewCatalog creates a translation catalog.
func NewCatalog(opts ...i18n.Option) (*Catalog, error) {
	return i18n.New(opts...)
}

// Functional options re-exported from pkg/resolve.
var (
	WithLogger    = resolve.WithLogger
	WithPlurality = resolve.WithPlurality
	WithCache     = resolve.WithCache
	WithoutCache  = resolve.WithoutCache
)

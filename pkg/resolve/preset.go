package resolve

import (
	_ "embed"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/locmark/pkg/token"
	"github.com/dmitrymomot/locmark/pkg/tree"
)

//go:embed presets/default.yaml
var defaultPreset []byte

// NamedToken is a token of a preset.
type NamedToken struct {
	Name     string    `yaml:"name" json:"name"`
	Kind     tree.Kind `yaml:"kind" json:"kind"`
	Left     string    `yaml:"left" json:"left"`
	Interior string    `yaml:"interior,omitempty" json:"interior,omitempty"`
	Right    string    `yaml:"right" json:"right"`
	// Style names the styling applied by attributes tokens.
	Style string `yaml:"style,omitempty" json:"style,omitempty"`
}

// Token returns the delimiter spec.
func (n NamedToken) Token() token.Token {
	return token.Token{Left: n.Left, Interior: n.Interior, Right: n.Right}
}

// Preset is a named token configuration, usually read from YAML.
type Preset struct {
	Escape     string             `yaml:"escape" json:"escape"`
	Prologue   bool               `yaml:"prologue" json:"prologue"`
	Tokens     []NamedToken       `yaml:"tokens" json:"tokens"`
	Dictionary []token.Dictionary `yaml:"dictionary" json:"dictionary"`
}

// DefaultPreset returns the built-in token set:
// {{name}} placeholders, ^upper^, *bold*, _italic_, `code`,
// ((a/b)) choices, <<one|many>> plurals and @[id;key=value¦key] dictionaries,
// escaped with a backslash.
func DefaultPreset() *Preset {
	p, err := ParsePreset(defaultPreset)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePreset decodes and validates a YAML preset.
func ParsePreset(data []byte) (*Preset, error) {
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}
	seen := make(map[string]bool, len(p.Tokens))
	for _, t := range p.Tokens {
		if t.Name == "" {
			return nil, fmt.Errorf("%w: token without name", ErrInvalidPreset)
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("%w: duplicate token %q", ErrInvalidPreset, t.Name)
		}
		seen[t.Name] = true
		if t.Kind == tree.Dictionary || t.Kind == 0 {
			return nil, fmt.Errorf("%w: token %q has unsupported kind %s", ErrInvalidPreset, t.Name, t.Kind)
		}
	}
	if err := p.Config().Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}
	return &p, nil
}

// LoadPreset reads a YAML preset from fsys.
func LoadPreset(fsys fs.FS, name string) (*Preset, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("resolve: read preset %s: %w", name, err)
	}
	return ParsePreset(data)
}

// Config returns the tree configuration of the preset.
func (p *Preset) Config() tree.Config {
	cfg := tree.Config{
		Escape:     p.Escape,
		Prologue:   p.Prologue,
		Dictionary: p.Dictionary,
	}
	for _, n := range p.Tokens {
		t := n.Token()
		switch n.Kind {
		case tree.SimpleSource:
			cfg.Source = append(cfg.Source, t)
		case tree.SimpleReturn:
			cfg.Return = append(cfg.Return, t)
		case tree.Ordered:
			cfg.Ordered = append(cfg.Ordered, t)
		case tree.Plural:
			cfg.Plural = append(cfg.Plural, t)
		case tree.Attributes:
			cfg.Attributes = append(cfg.Attributes, t)
		}
	}
	return cfg
}

// Token returns the token with the given name.
func (p *Preset) Token(name string) (token.Token, error) {
	for _, n := range p.Tokens {
		if n.Name == name {
			return n.Token(), nil
		}
	}
	return token.Token{}, fmt.Errorf("%w: %q", ErrUnknownToken, name)
}

// MustToken is like Token but panics when the name is unknown.
func (p *Preset) MustToken(name string) token.Token {
	t, err := p.Token(name)
	if err != nil {
		panic(err)
	}
	return t
}

// OfKind returns the preset tokens of one kind, in declaration order.
func (p *Preset) OfKind(kind tree.Kind) []NamedToken {
	var out []NamedToken
	for _, n := range p.Tokens {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

package tree

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/dmitrymomot/locmark/pkg/token"
)

// Config is the token configuration a tree is built with.
type Config struct {
	// Escape suppresses the token occurrence it precedes. Empty disables escaping.
	Escape string `json:"escape,omitempty" yaml:"escape,omitempty"`
	// Source tokens are replaced before the value is converted to the target type.
	Source []token.Token `json:"source,omitempty" yaml:"source,omitempty"`
	// Return tokens are replaced after the conversion.
	Return []token.Token `json:"return,omitempty" yaml:"return,omitempty"`
	// Ordered tokens select one alternative by index.
	Ordered []token.Token `json:"ordered,omitempty" yaml:"ordered,omitempty"`
	// Plural tokens select one alternative by plural value.
	Plural []token.Token `json:"plural,omitempty" yaml:"plural,omitempty"`
	// Attributes tokens style their content.
	Attributes []token.Token `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	// Dictionary tokens select one value by key.
	Dictionary []token.Dictionary `json:"dictionary,omitempty" yaml:"dictionary,omitempty"`
	// Prologue enables the "||rule|rule||" plural override prologue.
	Prologue bool `json:"prologue,omitempty" yaml:"prologue,omitempty"`
}

// Tokens returns every configured token in build order.
func (c Config) Tokens() []token.Token {
	out := make([]token.Token, 0, len(c.Source)+len(c.Return)+len(c.Ordered)+len(c.Plural)+len(c.Attributes))
	out = append(out, c.Ordered...)
	out = append(out, c.Plural...)
	out = append(out, c.Source...)
	out = append(out, c.Return...)
	out = append(out, c.Attributes...)
	return out
}

// Validate checks token shapes and that the whole set, escape included, is
// unambiguous.
func (c Config) Validate() error {
	for _, t := range c.Source {
		if t.IsMultipleWords() {
			return fmt.Errorf("%w: source token %s has an interior", ErrTokenShape, t)
		}
	}
	for _, t := range c.Return {
		if t.IsMultipleWords() {
			return fmt.Errorf("%w: return token %s has an interior", ErrTokenShape, t)
		}
	}
	for _, t := range c.Attributes {
		if t.IsMultipleWords() {
			return fmt.Errorf("%w: attributes token %s has an interior", ErrTokenShape, t)
		}
	}
	for _, t := range c.Ordered {
		if !t.IsMultipleWords() {
			return fmt.Errorf("%w: ordered token %s has no interior", ErrTokenShape, t)
		}
	}
	for _, t := range c.Plural {
		if !t.IsMultipleWords() {
			return fmt.Errorf("%w: plural token %s has no interior", ErrTokenShape, t)
		}
	}
	if len(c.Tokens()) == 0 && len(c.Dictionary) == 0 {
		return ErrNoTokens
	}
	return token.ValidateAll(c.Escape, c.Tokens(), c.Dictionary)
}

// Fingerprint returns a stable digest of the configuration, used to key
// cached trees.
func (c Config) Fingerprint() string {
	data, err := json.Marshal(c)
	if err != nil {
		// Config holds only strings and bools.
		panic(err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

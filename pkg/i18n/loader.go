package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// WithJSONDir loads {lang}/{namespace}.json files from fsys.
//
//	en/cart.json
//	de/cart.json
func WithJSONDir(fsys fs.FS) Option {
	return func(c *config) error {
		return c.loadDir(fsys, []string{".json"}, json.Unmarshal)
	}
}

// WithYAMLDir loads {lang}/{namespace}.yaml (or .yml) files from fsys.
func WithYAMLDir(fsys fs.FS) Option {
	return func(c *config) error {
		return c.loadDir(fsys, []string{".yaml", ".yml"}, yaml.Unmarshal)
	}
}

func (c *config) loadDir(fsys fs.FS, exts []string, unmarshal func([]byte, any) error) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		ext := strings.ToLower(path.Ext(p))
		if !slices.Contains(exts, ext) {
			return nil
		}

		dir := path.Dir(p)
		if dir == "." {
			return fmt.Errorf("%w: %q must be inside a language directory", ErrInvalidFile, p)
		}

		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("i18n: reading %q: %w", p, err)
		}
		var templates map[string]any
		if err := unmarshal(raw, &templates); err != nil {
			return fmt.Errorf("%w: parsing %q: %w", ErrInvalidFile, p, err)
		}
		return c.add(path.Base(dir), strings.TrimSuffix(path.Base(p), path.Ext(p)), templates)
	})
}

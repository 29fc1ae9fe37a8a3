// Package theme describes the Ad Maiora look as a go-theme manifest and
// resolves selections into the tokens, CSS variables and asset URLs the page
// layout reads.
package theme

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"
)

const (
	// DefaultName is the theme served when a request does not choose one.
	DefaultName = "admaiora"
	// VariantContrast raises text contrast for the gold accents.
	VariantContrast = "contrast"

	cssVarPrefix = "--am-"
)

// ErrUnknownTheme is returned for theme or variant names that were never
// registered.
var ErrUnknownTheme = errors.New("theme: unknown theme")

// Manifest returns the built-in site manifest.
func Manifest() *gotheme.Manifest {
	return &gotheme.Manifest{
		Name:    DefaultName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-gold":   "#c9a227",
			"color-navy":   "#0b1f3a",
			"color-ivory":  "#faf7f0",
			"color-ink":    "#111111",
			"color-border": "#d4d8e0",
			"color-error":  "#b42318",
			"font-heading": "'Playfair Display', Georgia, serif",
			"font-body":    "'Lora', Georgia, serif",
		},
		Templates: map[string]string{
			"site.layout":  "layout.tmpl",
			"forms.layout": "templates/form.tmpl",
		},
		Assets: gotheme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"site.stylesheet": "site.css",
				"site.script":     "site.js",
				"form.stylesheet": "admaiora-form.css",
			},
		},
		Variants: map[string]gotheme.Variant{
			VariantContrast: {
				Tokens: map[string]string{
					"color-gold": "#8a6d00",
					"color-ink":  "#000000",
				},
			},
		},
	}
}

type manifestRegistry interface {
	Register(manifest *gotheme.Manifest) error
}

// Selector implements go-theme's ThemeSelector over a fixed set of
// manifests. Manifests are also registered in a go-theme registry so they
// pass the library's own validation.
type Selector struct {
	mu             sync.RWMutex
	registry       manifestRegistry
	manifests      map[string]*gotheme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ gotheme.ThemeSelector = (*Selector)(nil)

// NewSelector registers the given manifests, defaulting to Manifest() when
// none are passed. The first manifest becomes the default theme.
func NewSelector(manifests ...*gotheme.Manifest) (*Selector, error) {
	if len(manifests) == 0 {
		manifests = []*gotheme.Manifest{Manifest()}
	}
	s := &Selector{
		registry:  gotheme.NewRegistry(),
		manifests: make(map[string]*gotheme.Manifest, len(manifests)),
	}
	for _, manifest := range manifests {
		if err := s.Register(manifest); err != nil {
			return nil, err
		}
	}
	s.defaultTheme = manifests[0].Name
	return s, nil
}

// Register adds a manifest. Names must be unique.
func (s *Selector) Register(manifest *gotheme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return errors.New("theme: manifest name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.manifests[manifest.Name]; exists {
		return fmt.Errorf("theme: manifest %q already registered", manifest.Name)
	}
	if err := s.registry.Register(manifest); err != nil {
		return fmt.Errorf("theme: register %q: %w", manifest.Name, err)
	}
	s.manifests[manifest.Name] = manifest
	return nil
}

// WithDefaultVariant sets the variant used when Select receives none.
func (s *Selector) WithDefaultVariant(variant string) *Selector {
	s.mu.Lock()
	s.defaultVariant = strings.TrimSpace(variant)
	s.mu.Unlock()
	return s
}

// Select resolves a theme and variant, falling back to the defaults for
// empty names.
func (s *Selector) Select(name, variant string, _ ...gotheme.QueryOption) (*gotheme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if name = strings.TrimSpace(name); name == "" {
		name = s.defaultTheme
	}
	if variant = strings.TrimSpace(variant); variant == "" {
		variant = s.defaultVariant
	}

	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q has no variant %q", ErrUnknownTheme, name, variant)
		}
	}
	return &gotheme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Config is a selection flattened for templates: variant values override
// the base manifest.
type Config struct {
	Theme     string
	Variant   string
	Tokens    map[string]string
	CSSVars   map[string]string
	Templates map[string]string
	assets    map[string]string
	prefix    string
}

// Resolve merges the selected variant into the manifest.
func Resolve(selection *gotheme.Selection) Config {
	if selection == nil || selection.Manifest == nil {
		return Config{}
	}
	manifest := selection.Manifest
	cfg := Config{
		Theme:     selection.Theme,
		Variant:   selection.Variant,
		Tokens:    merge(manifest.Tokens, nil),
		Templates: merge(manifest.Templates, nil),
		assets:    merge(manifest.Assets.Files, nil),
		prefix:    manifest.Assets.Prefix,
	}
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		cfg.Tokens = merge(cfg.Tokens, variant.Tokens)
		cfg.Templates = merge(cfg.Templates, variant.Templates)
		cfg.assets = merge(cfg.assets, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			cfg.prefix = variant.Assets.Prefix
		}
	}

	cfg.CSSVars = make(map[string]string, len(cfg.Tokens))
	for key, value := range cfg.Tokens {
		cfg.CSSVars[cssVarPrefix+key] = value
	}
	return cfg
}

// AssetURL returns the public URL of a named asset, or "" when the theme
// does not declare it.
func (c Config) AssetURL(key string) string {
	file, ok := c.assets[key]
	if !ok || file == "" {
		return ""
	}
	if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
		return file
	}
	prefix := c.prefix
	if prefix == "" {
		prefix = "/"
	}
	return path.Join(prefix, file)
}

// StyleBlock renders the CSS variables as a :root rule in a stable order.
func (c Config) StyleBlock() string {
	if len(c.CSSVars) == 0 {
		return ""
	}
	names := make([]string, 0, len(c.CSSVars))
	for name := range c.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root {")
	for _, name := range names {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(cssValue(c.CSSVars[name]))
		b.WriteString("; ")
	}
	b.WriteString("}")
	return b.String()
}

// cssValue drops characters that could close the style element or the rule.
func cssValue(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '{', '}', ';':
			return -1
		}
		return r
	}, value)
}

func merge(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

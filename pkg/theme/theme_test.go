package theme_test

import (
	"errors"
	"strings"
	"testing"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-admaiora/pkg/theme"
)

func TestSelector_DefaultsAndVariants(t *testing.T) {
	selector, err := theme.NewSelector()
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select default: %v", err)
	}
	if selection.Theme != theme.DefaultName || selection.Variant != "" {
		t.Fatalf("unexpected default selection %+v", selection)
	}
	base := theme.Resolve(selection)
	if base.CSSVars["--am-color-gold"] != "#c9a227" {
		t.Fatalf("expected base gold token, got %v", base.CSSVars)
	}

	contrast, err := selector.Select(theme.DefaultName, theme.VariantContrast)
	if err != nil {
		t.Fatalf("select contrast: %v", err)
	}
	cfg := theme.Resolve(contrast)
	if cfg.Tokens["color-gold"] != "#8a6d00" || cfg.Tokens["color-navy"] != "#0b1f3a" {
		t.Fatalf("variant tokens not merged: %v", cfg.Tokens)
	}
}

func TestSelector_UnknownNames(t *testing.T) {
	selector, err := theme.NewSelector()
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	if _, err := selector.Select("other", ""); !errors.Is(err, theme.ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
	if _, err := selector.Select("", "neon"); !errors.Is(err, theme.ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme for variant, got %v", err)
	}
	if err := selector.Register(theme.Manifest()); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestSelector_DefaultVariant(t *testing.T) {
	selector, err := theme.NewSelector()
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	selection, err := selector.WithDefaultVariant(theme.VariantContrast).Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Variant != theme.VariantContrast {
		t.Fatalf("expected default variant, got %q", selection.Variant)
	}
}

func TestConfig_AssetsAndStyleBlock(t *testing.T) {
	cfg := theme.Resolve(&gotheme.Selection{
		Theme: "t",
		Manifest: &gotheme.Manifest{
			Name:    "t",
			Version: "1",
			Tokens:  map[string]string{"b": "2", "a": "1</style>"},
			Assets: gotheme.Assets{
				Prefix: "/static",
				Files:  map[string]string{"css": "site.css", "cdn": "https://cdn.test/x.js"},
			},
		},
	})

	if got := cfg.AssetURL("css"); got != "/static/site.css" {
		t.Fatalf("AssetURL(css) = %q", got)
	}
	if got := cfg.AssetURL("cdn"); got != "https://cdn.test/x.js" {
		t.Fatalf("AssetURL(cdn) = %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("AssetURL(missing) = %q", got)
	}

	block := cfg.StyleBlock()
	if block != ":root {--am-a: 1/style; --am-b: 2; }" {
		t.Fatalf("unexpected style block %q", block)
	}
	if strings.Contains(block, "<") {
		t.Fatalf("style block must not contain markup")
	}
}

func TestResolve_Nil(t *testing.T) {
	if cfg := theme.Resolve(nil); cfg.Theme != "" || cfg.StyleBlock() != "" {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

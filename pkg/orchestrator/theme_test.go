package orchestrator_test

import (
	"errors"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/orchestrator"
)

func acmeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:      "acme",
		Version:   "1.0.0",
		Tokens:    map[string]string{"brand": "#123456", "radius": "4px"},
		Templates: map[string]string{"forms.input": "themes/acme/input.tmpl"},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme/",
			Files:  map[string]string{"bootstrap.stylesheet": "theme.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens:    map[string]string{"brand": "#654321"},
				Templates: map[string]string{"forms.checkbox": "themes/acme/dark/checkbox.tmpl"},
				Assets: theme.Assets{
					Files: map[string]string{"bootstrap.vendor": "vendor.dark.js"},
				},
			},
		},
	}
}

func TestRendererConfig_MergesVariant(t *testing.T) {
	cfg := orchestrator.RendererConfig(&theme.Selection{Theme: "acme", Variant: "dark", Manifest: acmeManifest()})

	if diff := cmp.Diff(map[string]string{"brand": "#654321", "radius": "4px"}, cfg.Tokens); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"--brand": "#654321", "--radius": "4px"}, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	wantPartials := map[string]string{
		"forms.input":    "themes/acme/input.tmpl",
		"forms.checkbox": "themes/acme/dark/checkbox.tmpl",
	}
	if diff := cmp.Diff(wantPartials, cfg.Partials); diff != "" {
		t.Fatalf("partials mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.AssetURL("bootstrap.stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("stylesheet url %q", got)
	}
	if got := cfg.AssetURL("bootstrap.vendor"); got != "/assets/themes/acme/vendor.dark.js" {
		t.Fatalf("vendor url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url, got %q", got)
	}
	if orchestrator.RendererConfig(nil) != nil {
		t.Fatalf("expected nil config for nil selection")
	}
}

func TestManifestSelector(t *testing.T) {
	other := &theme.Manifest{Name: "zen"}
	selector := orchestrator.NewManifestSelector(other, acmeManifest(), nil)

	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select default: %v", err)
	}
	if selection.Theme != "acme" {
		t.Fatalf("expected first manifest by name, got %q", selection.Theme)
	}

	selection, err = selector.Select("acme", "dark")
	if err != nil || selection.Variant != "dark" || selection.Manifest.Name != "acme" {
		t.Fatalf("unexpected selection %#v %v", selection, err)
	}

	if _, err := selector.Select("acme", "neon"); !errors.Is(err, orchestrator.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound for variant, got %v", err)
	}
	if _, err := selector.Select("missing", ""); !errors.Is(err, orchestrator.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
	if _, err := orchestrator.NewManifestSelector().Select("", ""); !errors.Is(err, orchestrator.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound for empty selector, got %v", err)
	}
}

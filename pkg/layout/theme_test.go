package layout_test

import (
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfield/pkg/layout"
)

func TestFromRendererConfig(t *testing.T) {
	cfg := &theme.RendererConfig{
		Theme:   "acme",
		Variant: "horizontal",
		Tokens: map[string]string{
			layout.TokenHorizontalLabel:   "col-lg-4",
			layout.TokenHorizontalWrapper: "col-lg-8",
			layout.TokenInputClass:        "form-control input-lg",
		},
		Partials: map[string]string{
			layout.PartialCheckbox: "<div class=\"checkbox acme\">{beginLabel}{input}{labelTitle}{endLabel}</div>",
		},
	}

	mode, ok := layout.ModeFromRendererConfig(cfg)
	if !ok || mode != layout.ModeHorizontal {
		t.Fatalf("expected horizontal mode from variant, got %q (ok=%v)", mode, ok)
	}

	preset, err := layout.Resolve(mode, layout.FromRendererConfig(cfg))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := preset.LabelOptions["class"]; got != "control-label col-lg-4" {
		t.Fatalf("unexpected label class %q", got)
	}
	if got := preset.WrapperOptions["class"]; got != "col-lg-8" {
		t.Fatalf("unexpected wrapper class %q", got)
	}
	if got := preset.InputOptions["class"]; got != "form-control input-lg" {
		t.Fatalf("unexpected input class %q", got)
	}
	if preset.Templates.Checkbox != cfg.Partials[layout.PartialCheckbox] {
		t.Fatalf("expected checkbox partial to override template")
	}
	if preset.Templates.Radio != layout.RadioTemplate {
		t.Fatalf("radio template should keep its default")
	}
}

func TestModeFromRendererConfig_IgnoresUnrelatedVariants(t *testing.T) {
	if _, ok := layout.ModeFromRendererConfig(&theme.RendererConfig{Variant: "dark"}); ok {
		t.Fatalf("variant 'dark' should not map to a layout mode")
	}
	if _, ok := layout.ModeFromRendererConfig(nil); ok {
		t.Fatalf("nil config should not map to a layout mode")
	}
}

func TestModeFromRendererConfig_Tokens(t *testing.T) {
	cases := map[string]struct {
		cfg  theme.RendererConfig
		want layout.Mode
	}{
		"layout token beats variant": {
			cfg:  theme.RendererConfig{Variant: "inline", Tokens: map[string]string{"layout": "Horizontal"}},
			want: layout.ModeHorizontal,
		},
		"prefixed token first": {
			cfg: theme.RendererConfig{Variant: "dark", Tokens: map[string]string{
				layout.TokenLayout: "inline",
				"mode":             "horizontal",
			}},
			want: layout.ModeInline,
		},
		"mode token": {
			cfg:  theme.RendererConfig{Variant: "dark", Tokens: map[string]string{"mode": "horizontal"}},
			want: layout.ModeHorizontal,
		},
		"invalid token falls back to variant": {
			cfg:  theme.RendererConfig{Variant: "inline", Tokens: map[string]string{"layout": "grid"}},
			want: layout.ModeInline,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := tc.cfg
			mode, ok := layout.ModeFromRendererConfig(&cfg)
			if !ok || mode != tc.want {
				t.Fatalf("expected %q, got %q (ok=%v)", tc.want, mode, ok)
			}
		})
	}
}

func TestFromRendererConfig_EmptyTokenClearsGridClass(t *testing.T) {
	cfg := &theme.RendererConfig{Tokens: map[string]string{layout.TokenHorizontalHint: ""}}
	preset, err := layout.Resolve(layout.ModeHorizontal, layout.FromRendererConfig(cfg))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if preset.Horizontal.Hint != "" || preset.HintOptions["class"] != "help-block" {
		t.Fatalf("expected hint grid class cleared, got %q / %q", preset.Horizontal.Hint, preset.HintOptions["class"])
	}
	if preset.Horizontal.Label != "col-sm-3" {
		t.Fatalf("label class should keep its default, got %q", preset.Horizontal.Label)
	}
}

func TestFromSelection_VariantWins(t *testing.T) {
	selection := &theme.Selection{
		Theme:   "acme",
		Variant: "compact",
		Manifest: &theme.Manifest{
			Name: "acme",
			Tokens: map[string]string{
				layout.TokenInputClass: "form-control",
				layout.TokenFormClass:  "acme-form",
			},
			Variants: map[string]theme.Variant{
				"compact": {Tokens: map[string]string{layout.TokenInputClass: "form-control input-sm"}},
			},
		},
	}

	overrides := layout.FromSelection(selection)
	if got := overrides.InputOptions["class"]; got != "form-control input-sm" {
		t.Fatalf("expected variant input class, got %q", got)
	}
	if overrides.FormClass != "acme-form" {
		t.Fatalf("expected manifest form class, got %q", overrides.FormClass)
	}
}

package layout_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/itsatony/go-cuserr"

	"github.com/goliatone/go-formfield/pkg/layout"
	"github.com/goliatone/go-formfield/pkg/tag"
)

func TestResolve_DefaultMode(t *testing.T) {
	preset, err := layout.Resolve("", layout.Overrides{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if preset.Mode != layout.ModeDefault {
		t.Fatalf("expected default mode, got %q", preset.Mode)
	}
	if preset.Templates.Field != "{label}\n{input}\n{hint}\n{error}" {
		t.Fatalf("unexpected field template %q", preset.Templates.Field)
	}
	want := tag.Attrs{"tag": "p", "class": "help-block help-block-error"}
	if diff := cmp.Diff(want, preset.ErrorOptions); diff != "" {
		t.Fatalf("error options mismatch (-want +got):\n%s", diff)
	}
	if !preset.EnableLabel || !preset.EnableError {
		t.Fatalf("default layout should render label and error")
	}
	if preset.FormClass != "" {
		t.Fatalf("default layout should not set a form class, got %q", preset.FormClass)
	}
}

func TestResolve_HorizontalMergesClassesBeforeApplying(t *testing.T) {
	preset, err := layout.Resolve(layout.ModeHorizontal, layout.Overrides{
		Horizontal: layout.HorizontalClasses{Label: "col-md-2", Wrapper: "col-md-10"},
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	wantClasses := layout.HorizontalClasses{
		Offset:  "col-sm-offset-3",
		Label:   "col-md-2",
		Wrapper: "col-md-10",
		Hint:    "col-sm-3",
	}
	if diff := cmp.Diff(wantClasses, preset.Horizontal); diff != "" {
		t.Fatalf("horizontal classes mismatch (-want +got):\n%s", diff)
	}

	checks := map[string]string{
		"label":   preset.LabelOptions["class"],
		"wrapper": preset.WrapperOptions["class"],
		"error":   preset.ErrorOptions["class"],
		"hint":    preset.HintOptions["class"],
	}
	want := map[string]string{
		"label":   "control-label col-md-2",
		"wrapper": "col-md-10",
		"error":   "help-block help-block-error",
		"hint":    "help-block col-sm-3",
	}
	if diff := cmp.Diff(want, checks); diff != "" {
		t.Fatalf("applied classes mismatch (-want +got):\n%s", diff)
	}
	if preset.Templates.Field != layout.HorizontalFieldTemplate {
		t.Fatalf("expected horizontal template, got %q", preset.Templates.Field)
	}
	if preset.FormClass != "form-horizontal" {
		t.Fatalf("expected form-horizontal, got %q", preset.FormClass)
	}
}

func TestResolve_InlineDisablesErrors(t *testing.T) {
	preset, err := layout.Resolve(layout.ModeInline, layout.Overrides{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if preset.EnableError {
		t.Fatalf("inline layout must not render errors")
	}
	if got := preset.LabelOptions["class"]; got != "sr-only" {
		t.Fatalf("expected sr-only label, got %q", got)
	}
	if preset.FormClass != "form-inline" {
		t.Fatalf("expected form-inline, got %q", preset.FormClass)
	}
}

func TestResolve_CallerOverridesWin(t *testing.T) {
	enable := true
	preset, err := layout.Resolve(layout.ModeInline, layout.Overrides{
		InputOptions: tag.Attrs{"class": "form-control input-sm", "autocomplete": "off"},
		EnableError:  &enable,
		Templates:    layout.Templates{Field: "{input}"},
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := tag.Attrs{"class": "form-control input-sm", "autocomplete": "off"}
	if diff := cmp.Diff(want, preset.InputOptions); diff != "" {
		t.Fatalf("input options mismatch (-want +got):\n%s", diff)
	}
	if !preset.EnableError {
		t.Fatalf("explicit enableError should override inline default")
	}
	if preset.Templates.Field != "{input}" {
		t.Fatalf("expected template override, got %q", preset.Templates.Field)
	}
	if preset.Templates.Checkbox != layout.CheckboxTemplate {
		t.Fatalf("unrelated templates should keep their defaults")
	}
}

func TestResolve_UnknownModeIsConfigurationError(t *testing.T) {
	_, err := layout.Resolve("stacked", layout.Overrides{})
	if err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if !errors.Is(err, layout.ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
	var custom *cuserr.CustomError
	if !errors.As(err, &custom) {
		t.Fatalf("expected cuserr.CustomError, got %T", err)
	}
	if mode, ok := custom.GetMetadata(layout.MetaKeyMode); !ok || mode != "stacked" {
		t.Fatalf("expected mode metadata, got %q (ok=%v)", mode, ok)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]layout.Mode{
		"":             layout.ModeDefault,
		"  Horizontal": layout.ModeHorizontal,
		"inline":       layout.ModeInline,
	}
	for raw, want := range cases {
		got, err := layout.ParseMode(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %q, got %q", raw, want, got)
		}
	}
	if _, err := layout.ParseMode("grid"); !errors.Is(err, layout.ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestPresetCloneIsolatesMaps(t *testing.T) {
	preset, err := layout.Resolve(layout.ModeDefault, layout.Overrides{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	clone := preset.Clone()
	clone.InputOptions["class"] = "changed"
	if preset.InputOptions["class"] != "form-control" {
		t.Fatalf("mutating clone leaked into original preset")
	}
}

func TestResolve_HorizontalClearRemovesDefaults(t *testing.T) {
	overrides := layout.Overrides{
		Horizontal: layout.HorizontalClasses{Clear: []string{"hint", "Offset"}},
	}.Merge(layout.Overrides{
		Horizontal: layout.HorizontalClasses{Offset: "col-sm-offset-2"},
	})

	preset, err := layout.Resolve(layout.ModeHorizontal, overrides)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := layout.HorizontalClasses{
		Offset:  "col-sm-offset-2",
		Label:   "col-sm-3",
		Wrapper: "col-sm-6",
	}
	if diff := cmp.Diff(want, preset.Horizontal); diff != "" {
		t.Fatalf("horizontal classes mismatch (-want +got):\n%s", diff)
	}
	if got := preset.HintOptions["class"]; got != "help-block" {
		t.Fatalf("expected hint grid class to be cleared, got %q", got)
	}
}

func TestHorizontalClasses_MergeKeepsPendingClears(t *testing.T) {
	merged := layout.HorizontalClasses{Hint: "col-xs-12"}.Merge(layout.HorizontalClasses{Clear: []string{"hint", "bogus"}})
	want := layout.HorizontalClasses{Clear: []string{"hint"}}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}

	refilled := merged.Merge(layout.HorizontalClasses{Hint: "col-xs-6"})
	if diff := cmp.Diff(layout.HorizontalClasses{Hint: "col-xs-6"}, refilled); diff != "" {
		t.Fatalf("refill mismatch (-want +got):\n%s", diff)
	}
}

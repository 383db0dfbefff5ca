package layout_test

import (
	"errors"
	"os"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/layout"
)

func TestRegistry_BuiltinsRegistered(t *testing.T) {
	reg := layout.NewRegistry()
	want := []string{"default", "horizontal", "inline"}
	if diff := cmp.Diff(want, reg.List()); diff != "" {
		t.Fatalf("registry names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_RegisterAndResolve(t *testing.T) {
	reg := layout.NewRegistry()
	reg.MustRegister("wide", layout.Profile{
		Mode:      layout.ModeHorizontal,
		Overrides: layout.Overrides{Horizontal: layout.HorizontalClasses{Wrapper: "col-sm-9"}},
	})

	preset, err := reg.Resolve("wide", layout.Overrides{FormClass: "form-horizontal well"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := preset.WrapperOptions["class"]; got != "col-sm-9" {
		t.Fatalf("expected profile wrapper class, got %q", got)
	}
	if preset.FormClass != "form-horizontal well" {
		t.Fatalf("expected extra overrides to apply, got %q", preset.FormClass)
	}
}

func TestRegistry_RejectsUnknownMode(t *testing.T) {
	reg := layout.NewRegistry()
	err := reg.Register("broken", layout.Profile{Mode: "grid"})
	if !errors.Is(err, layout.ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
	if reg.Has("broken") {
		t.Fatalf("invalid profile must not be registered")
	}
}

func TestRegistry_GetMissingProfile(t *testing.T) {
	reg := layout.NewRegistry()
	if _, err := reg.Get("missing"); !errors.Is(err, layout.ErrUnknownProfile) {
		t.Fatalf("expected ErrUnknownProfile, got %v", err)
	}
}

func TestLoadFS_Profiles(t *testing.T) {
	reg, err := layout.LoadFS(os.DirFS("testdata/profiles"))
	if err != nil {
		t.Fatalf("load profiles: %v", err)
	}

	want := []string{"admin-horizontal", "compact", "default", "horizontal", "inline", "search-bar"}
	if diff := cmp.Diff(want, reg.List()); diff != "" {
		t.Fatalf("profile names mismatch (-want +got):\n%s", diff)
	}

	admin, err := reg.Resolve("admin-horizontal")
	if err != nil {
		t.Fatalf("resolve admin-horizontal: %v", err)
	}
	if got := admin.LabelOptions["class"]; got != "control-label col-md-2" {
		t.Fatalf("unexpected label class %q", got)
	}
	if got := admin.Horizontal.Offset; got != "col-md-offset-2" {
		t.Fatalf("unexpected offset class %q", got)
	}
	if got := admin.InputOptions["class"]; got != "form-control input-sm" {
		t.Fatalf("unexpected input class %q", got)
	}

	search, err := reg.Resolve("search-bar")
	if err != nil {
		t.Fatalf("resolve search-bar: %v", err)
	}
	if !search.EnableError {
		t.Fatalf("search-bar enables errors explicitly")
	}

	compact, err := reg.Resolve("compact")
	if err != nil {
		t.Fatalf("resolve compact: %v", err)
	}
	if compact.Templates.Field != "{label}\n{input}\n{error}" {
		t.Fatalf("unexpected compact template %q", compact.Templates.Field)
	}
	if got := compact.HintOptions["tag"]; got != "small" {
		t.Fatalf("expected hint tag override, got %q", got)
	}
}

func TestLoadFS_DuplicateAcrossFiles(t *testing.T) {
	_, err := layout.LoadFS(os.DirFS("testdata/duplicate"))
	if !errors.Is(err, layout.ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestRegistry_RejectsDuplicateNames(t *testing.T) {
	reg := layout.NewRegistry()
	reg.MustRegister("wide", layout.Profile{Mode: layout.ModeHorizontal})
	if err := reg.Register("wide", layout.Profile{Mode: layout.ModeInline}); !errors.Is(err, layout.ErrDuplicateProfile) {
		t.Fatalf("expected ErrDuplicateProfile, got %v", err)
	}
	if profile, _ := reg.Get("wide"); profile.Mode != layout.ModeHorizontal {
		t.Fatalf("first registration must be kept, got %q", profile.Mode)
	}

	if err := reg.Register("inline", layout.Profile{Mode: layout.ModeInline, Overrides: layout.Overrides{FormClass: "form-inline pull-right"}}); err != nil {
		t.Fatalf("shadowing a built-in mode: %v", err)
	}
	if err := reg.Register("inline", layout.Profile{Mode: layout.ModeInline}); !errors.Is(err, layout.ErrDuplicateProfile) {
		t.Fatalf("expected second shadow of a built-in to fail, got %v", err)
	}
}

func TestRegistry_LoadFSRejectsRegisteredNames(t *testing.T) {
	reg := layout.NewRegistry()
	reg.MustRegister("compact", layout.Profile{})

	err := reg.LoadFS(os.DirFS("testdata/profiles"))
	if !errors.Is(err, layout.ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}

	again := layout.NewRegistry()
	fsys := fstest.MapFS{"a.yaml": &fstest.MapFile{Data: []byte("layouts:\n  tight:\n    mode: inline\n")}}
	if err := again.LoadFS(fsys); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if err := again.LoadFS(fsys); !errors.Is(err, layout.ErrInvalidProfile) {
		t.Fatalf("expected second load to fail, got %v", err)
	}
}

func TestLoadFS_InvalidMode(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.yaml": &fstest.MapFile{Data: []byte("layouts:\n  odd:\n    mode: vertical\n")},
	}
	_, err := layout.LoadFS(fsys)
	if !errors.Is(err, layout.ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}
}

package bootstrap_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-formfield/pkg/bootstrap"
	"github.com/goliatone/go-formfield/pkg/layout"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/tag"
)

func TestForm_BeginWithMethodOverride(t *testing.T) {
	form := newForm(t,
		bootstrap.WithLayout(layout.ModeHorizontal),
		bootstrap.WithID("signup"),
		bootstrap.WithAction("/users/1"),
		bootstrap.WithMethod("patch"),
	)

	want := `<form id="signup" class="form-horizontal" action="/users/1" method="post">` + "\n" +
		`<input type="hidden" name="_method" value="PATCH">`
	assertMarkup(t, want, form.Begin())
	assertMarkup(t, "</form>", form.End())
}

func TestForm_BeginWithHiddenInputs(t *testing.T) {
	form := newForm(t,
		bootstrap.WithAction("/users"),
		bootstrap.WithHiddenInput("_csrf", "a<b"),
		bootstrap.WithHiddenInput(" ", "skipped"),
		bootstrap.WithHiddenInput(bootstrap.MethodParam, "PUT"),
		bootstrap.WithHiddenInput("return", "/home"),
	)

	want := `<form action="/users" method="post">` + "\n" +
		`<input type="hidden" name="_csrf" value="a&lt;b">` + "\n" +
		`<input type="hidden" name="return" value="/home">`
	assertMarkup(t, want, form.Begin())
}

func TestForm_BeginPlain(t *testing.T) {
	form := newForm(t,
		bootstrap.WithLayout(layout.ModeInline),
		bootstrap.WithMethod("GET"),
		bootstrap.WithAction("/search"),
		bootstrap.WithOptions(tag.Attrs{"role": "search"}),
		bootstrap.WithMultipart(),
	)
	want := `<form class="form-inline" action="/search" method="get" enctype="multipart/form-data" role="search">`
	assertMarkup(t, want, form.Begin())
}

func TestForm_WithModel(t *testing.T) {
	form := newForm(t, bootstrap.WithModel(model.FormModel{
		OperationID: "createPet",
		Endpoint:    "/pets",
		Method:      "POST",
		Fields:      []model.Field{{Name: "name", Required: true}},
	}))

	assertMarkup(t, `<form id="createPet" action="/pets" method="post">`, form.Begin())
	if got := form.Field("name").Render(); !strings.Contains(got, "required") {
		t.Fatalf("expected bound field to be required:\n%s", got)
	}
}

func TestForm_WithModelMethodOverride(t *testing.T) {
	patch := model.FormModel{OperationID: "updatePet", Endpoint: "/pets/1", Method: "PATCH"}

	form := newForm(t, bootstrap.WithModel(patch))
	want := `<form id="updatePet" action="/pets/1" method="post">` + "\n" +
		`<input type="hidden" name="_method" value="PATCH">`
	assertMarkup(t, want, form.Begin())

	explicit := newForm(t, bootstrap.WithMethod("get"), bootstrap.WithModel(patch))
	assertMarkup(t, `<form id="updatePet" action="/pets/1" method="get">`, explicit.Begin())

	plain := newForm(t, bootstrap.WithAction("/pets"))
	assertMarkup(t, `<form action="/pets" method="post">`, plain.Begin())
}

func TestForm_ErrorSummaryHiddenWhenEmpty(t *testing.T) {
	form := newForm(t)
	want := `<div class="error-summary alert alert-danger" style="display:none"><p>Please fix the following errors:</p><ul></ul></div>`
	assertMarkup(t, want, form.ErrorSummary(nil))
}

func TestForm_ErrorSummaryOrdering(t *testing.T) {
	form := newForm(t,
		bootstrap.WithFields([]model.Field{{Name: "name"}, {Name: "email"}}),
		bootstrap.WithErrors(map[string][]string{
			"email": {"Bad <email>"},
			"name":  {"Required", "Too short"},
			"extra": {"Unknown field"},
		}),
		bootstrap.WithFormErrors("Session expired", "Required"),
	)

	want := `<div class="error-summary alert alert-danger"><p>Please fix the following errors:</p>` +
		`<ul><li>Session expired</li>` + "\n" +
		`<li>Required</li>` + "\n" +
		`<li>Bad &lt;email&gt;</li>` + "\n" +
		`<li>Unknown field</li></ul></div>`
	assertMarkup(t, want, form.ErrorSummary(nil))
}

func TestForm_UnknownLayout(t *testing.T) {
	_, err := bootstrap.New(bootstrap.WithLayout("grid"))
	if !errors.Is(err, layout.ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestForm_WithProfile(t *testing.T) {
	reg := layout.NewRegistry()
	reg.MustRegister("narrow", layout.Profile{
		Mode:      layout.ModeHorizontal,
		Overrides: layout.Overrides{Horizontal: layout.HorizontalClasses{Label: "col-xs-4", Wrapper: "col-xs-8"}},
	})
	form := newForm(t, bootstrap.WithProfile(reg, "narrow"))

	got := form.Field("city").Render()
	if !strings.Contains(got, `<label class="control-label col-xs-4" for="f-city">City</label>`) {
		t.Fatalf("profile classes not applied:\n%s", got)
	}
	if !strings.Contains(got, `<div class="col-xs-8">`) {
		t.Fatalf("profile wrapper not applied:\n%s", got)
	}
}

func TestForm_WithOverridesAndPreset(t *testing.T) {
	form := newForm(t, bootstrap.WithOverrides(layout.Overrides{
		InputOptions: tag.Attrs{"class": "form-control input-sm"},
	}))
	if got := form.Field("a").Render(); !strings.Contains(got, `class="form-control input-sm"`) {
		t.Fatalf("override not applied:\n%s", got)
	}

	preset := form.Preset()
	preset.Templates.Field = "{input}"
	custom := newForm(t, bootstrap.WithPreset(preset))
	if got := custom.Field("a").Render(); strings.Contains(got, "<label") {
		t.Fatalf("preset template not applied:\n%s", got)
	}
}

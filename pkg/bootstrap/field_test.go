package bootstrap_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-formfield/pkg/bootstrap"
	"github.com/goliatone/go-formfield/pkg/layout"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/tag"
)

func newForm(t *testing.T, options ...bootstrap.Option) *bootstrap.Form {
	t.Helper()
	form, err := bootstrap.New(append([]bootstrap.Option{bootstrap.WithName("F")}, options...)...)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return form
}

func assertMarkup(t *testing.T, want, got string) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}
}

func TestField_DefaultLayoutTextInput(t *testing.T) {
	form := newForm(t,
		bootstrap.WithName("Signup"),
		bootstrap.WithFields([]model.Field{{Name: "email", Required: true, Description: "We never share it"}}),
		bootstrap.WithErrors(map[string][]string{"email": {"Email is invalid", "second"}}),
	)

	want := strings.Join([]string{
		`<div class="form-group field-signup-email required has-error">`,
		`<label class="control-label" for="signup-email">Email</label>`,
		`<input type="text" id="signup-email" class="form-control" name="Signup[email]" aria-invalid="true" aria-required="true">`,
		`<p class="help-block">We never share it</p>`,
		`<p class="help-block help-block-error">Email is invalid</p>`,
		`</div>`,
	}, "\n")
	assertMarkup(t, want, form.Field("email").Render())
}

func TestField_ErrorTagRenderedEvenWhenEmpty(t *testing.T) {
	form := newForm(t, bootstrap.WithValues(map[string]any{"title": "Hello & bye"}))

	want := strings.Join([]string{
		`<div class="form-group field-f-title">`,
		`<label class="control-label" for="f-title">Title</label>`,
		`<input type="text" id="f-title" class="form-control" name="F[title]" value="Hello &amp; bye">`,
		``,
		`<p class="help-block help-block-error"></p>`,
		`</div>`,
	}, "\n")
	assertMarkup(t, want, form.Field("title").Render())
}

func TestField_HorizontalLayout(t *testing.T) {
	form := newForm(t, bootstrap.WithLayout(layout.ModeHorizontal))

	got := form.Field("name").Hint("Full name").Render()
	want := strings.Join([]string{
		`<div class="form-group field-f-name">`,
		`<label class="control-label col-sm-3" for="f-name">Name</label>`,
		`<div class="col-sm-6">`,
		`<input type="text" id="f-name" class="form-control" name="F[name]">`,
		`<p class="help-block help-block-error"></p>`,
		`</div>`,
		`<p class="help-block col-sm-3">Full name</p>`,
		`</div>`,
	}, "\n")
	assertMarkup(t, want, got)
}

func TestField_HorizontalNoLabelAddsOffset(t *testing.T) {
	form := newForm(t, bootstrap.WithLayout(layout.ModeHorizontal))

	got := form.Field("name").NoLabel().Render()
	want := strings.Join([]string{
		`<div class="form-group field-f-name">`,
		``,
		`<div class="col-sm-6 col-sm-offset-3">`,
		`<input type="text" id="f-name" class="form-control" name="F[name]">`,
		`<p class="help-block help-block-error"></p>`,
		`</div>`,
		``,
		`</div>`,
	}, "\n")
	assertMarkup(t, want, got)
}

func TestField_InlineLayoutHidesErrors(t *testing.T) {
	form := newForm(t,
		bootstrap.WithLayout(layout.ModeInline),
		bootstrap.WithErrors(map[string][]string{"q": {"Too short"}}),
	)

	got := form.Field("q").Render()
	want := strings.Join([]string{
		`<div class="form-group field-f-q has-error">`,
		`<label class="sr-only" for="f-q">Q</label>`,
		`<input type="text" id="f-q" class="form-control" name="F[q]" aria-invalid="true">`,
		``,
		``,
		`</div>`,
	}, "\n")
	assertMarkup(t, want, got)
}

func TestField_HorizontalCheckbox(t *testing.T) {
	form := newForm(t,
		bootstrap.WithLayout(layout.ModeHorizontal),
		bootstrap.WithValues(map[string]any{"agree": true}),
	)

	got := form.Field("agree").Checkbox(bootstrap.ChoiceOptions{}, true).Render()
	want := strings.Join([]string{
		`<div class="form-group field-f-agree">`,
		`<div class="col-sm-6 col-sm-offset-3">`,
		`<div class="checkbox">`,
		`<label for="f-agree">`,
		`<input type="hidden" name="F[agree]" value="0"><input type="checkbox" id="f-agree" name="F[agree]" value="1" checked>`,
		`Agree`,
		`</label>`,
		`</div>`,
		`<p class="help-block help-block-error"></p>`,
		`</div>`,
		``,
		`</div>`,
	}, "\n")
	assertMarkup(t, want, got)
}

func TestField_DefaultRadioWithLabelOption(t *testing.T) {
	form := newForm(t)

	got := form.Field("plan").Radio(bootstrap.ChoiceOptions{Label: "Pro <strong>plan</strong>", Value: "pro", NoUncheck: true}, true).Render()
	want := strings.Join([]string{
		`<div class="form-group field-f-plan">`,
		`<div class="radio">`,
		`<label for="f-plan">`,
		`<input type="radio" id="f-plan" name="F[plan]" value="pro">`,
		`Pro <strong>plan</strong>`,
		`</label>`,
		`<p class="help-block help-block-error"></p>`,
		``,
		`</div>`,
		`</div>`,
	}, "\n")
	assertMarkup(t, want, got)
}

func TestField_CheckboxNotEnclosedUsesFieldTemplate(t *testing.T) {
	form := newForm(t)

	got := form.Field("agree").Checkbox(bootstrap.ChoiceOptions{Label: "I agree"}, false).Render()
	if !strings.Contains(got, `<label class="control-label" for="f-agree">I agree</label>`) {
		t.Fatalf("expected standalone label, got:\n%s", got)
	}
	if strings.Contains(got, `<div class="checkbox">`) {
		t.Fatalf("non enclosed checkbox must not use the checkbox template:\n%s", got)
	}
}

func TestField_InlineCheckboxList(t *testing.T) {
	form := newForm(t,
		bootstrap.WithLayout(layout.ModeInline),
		bootstrap.WithValues(map[string]any{"tags": []string{"b"}}),
	)

	items := []bootstrap.Item{{Value: "a", Label: "A"}, {Value: "b", Label: "B & C"}}
	got := form.Field("tags").Inline(true).CheckboxList(items, bootstrap.ListOptions{}).Render()
	want := strings.Join([]string{
		`<div class="form-group field-f-tags">`,
		`<label class="sr-only">Tags</label>`,
		`<div>`,
		`<input type="hidden" name="F[tags]" value=""><div id="f-tags"><label class="checkbox-inline"><input type="checkbox" name="F[tags][]" value="a"> A</label>`,
		`<label class="checkbox-inline"><input type="checkbox" name="F[tags][]" value="b" checked> B &amp; C</label></div>`,
		``,
		`</div>`,
		``,
		`</div>`,
	}, "\n")
	assertMarkup(t, want, got)
}

func TestField_RadioListStacked(t *testing.T) {
	form := newForm(t, bootstrap.WithValues(map[string]any{"status": "live"}))

	items := []bootstrap.Item{{Value: "draft", Label: "Draft"}, {Value: "live", Label: "<b>Live</b>"}}
	got := form.Field("status").RadioList(items, bootstrap.ListOptions{NoEncode: true, NoUnselect: true}).Render()

	wantInput := `<div id="f-status"><div class="radio"><label><input type="radio" name="F[status]" value="draft"> Draft</label></div>` + "\n" +
		`<div class="radio"><label><input type="radio" name="F[status]" value="live" checked> <b>Live</b></label></div></div>`
	if !strings.Contains(got, wantInput) {
		t.Fatalf("unexpected radio list markup:\n%s", got)
	}
	if !strings.Contains(got, `<label class="control-label">Status</label>`) {
		t.Fatalf("list label must not carry a for attribute:\n%s", got)
	}
}

func TestField_CustomItemRenderer(t *testing.T) {
	form := newForm(t)
	items := []bootstrap.Item{{Value: "x", Label: "X"}}
	got := form.Field("pick").CheckboxList(items, bootstrap.ListOptions{
		Item: func(index int, label, name string, checked bool, value string) string {
			return "<span>" + name + "=" + value + "</span>"
		},
	}).Render()
	if !strings.Contains(got, `<div id="f-pick"><span>F[pick][]=x</span></div>`) {
		t.Fatalf("custom item renderer not used:\n%s", got)
	}
}

func TestField_DropDownList(t *testing.T) {
	form := newForm(t, bootstrap.WithValues(map[string]any{"status": "live"}))

	items := []bootstrap.Item{{Value: "draft", Label: "Draft"}, {Value: "live", Label: "Live"}}
	got := form.Field("status").DropDownList(items, bootstrap.SelectOptions{Prompt: "Choose"}).Render()
	want := `<select id="f-status" class="form-control" name="F[status]">` + "\n" +
		`<option value="">Choose</option>` + "\n" +
		`<option value="draft">Draft</option>` + "\n" +
		`<option value="live" selected>Live</option>` + "\n" +
		`</select>`
	if !strings.Contains(got, want) {
		t.Fatalf("unexpected select markup:\n%s", got)
	}
}

func TestField_MultipleListBox(t *testing.T) {
	form := newForm(t, bootstrap.WithValues(map[string]any{"roles": []any{"admin", "editor"}}))

	items := []bootstrap.Item{{Value: "admin", Label: "Admin"}, {Value: "editor", Label: "Editor"}, {Value: "viewer", Label: "Viewer"}}
	got := form.Field("roles").ListBox(items, bootstrap.SelectOptions{Multiple: true}).Render()
	want := `<input type="hidden" name="F[roles]" value=""><select id="f-roles" class="form-control" name="F[roles][]" multiple size="4">` + "\n" +
		`<option value="admin" selected>Admin</option>` + "\n" +
		`<option value="editor" selected>Editor</option>` + "\n" +
		`<option value="viewer">Viewer</option>` + "\n" +
		`</select>`
	if !strings.Contains(got, want) {
		t.Fatalf("unexpected list box markup:\n%s", got)
	}
}

func TestField_OtherInputs(t *testing.T) {
	form := newForm(t, bootstrap.WithValues(map[string]any{
		"bio":    "<b>hi</b>",
		"author": "Ada",
		"token":  "abc",
		"secret": "hunter2",
	}))

	cases := []struct {
		name  string
		field *bootstrap.Field
		want  string
	}{
		{
			name:  "textarea encodes value",
			field: form.Field("bio").Textarea(tag.Attrs{"rows": "3"}),
			want:  `<textarea id="f-bio" class="form-control" name="F[bio]" rows="3">&lt;b&gt;hi&lt;/b&gt;</textarea>`,
		},
		{
			name:  "file input with hidden companion",
			field: form.Field("avatar").FileInput(nil),
			want:  `<input type="hidden" name="F[avatar]" value=""><input type="file" id="f-avatar" name="F[avatar]">`,
		},
		{
			name:  "static control",
			field: form.Field("author").StaticControl(nil),
			want:  `<p class="form-control-static">Ada</p>`,
		},
		{
			name:  "hidden input",
			field: form.Field("token").HiddenInput(nil),
			want:  `<input type="hidden" id="f-token" name="F[token]" value="abc">`,
		},
		{
			name:  "password input does not echo value",
			field: form.Field("secret").PasswordInput(nil),
			want:  `<input type="password" id="f-secret" class="form-control" name="F[secret]">`,
		},
		{
			name:  "typed input",
			field: form.Field("website").Input("url", tag.Attrs{"placeholder": "https://"}),
			want:  `<input type="url" id="f-website" class="form-control" name="F[website]" placeholder="https://">`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.field.Render()
			if !strings.Contains(got, tc.want) {
				t.Fatalf("expected %q in:\n%s", tc.want, got)
			}
		})
	}
}

func TestField_ConstraintsFromModel(t *testing.T) {
	form := newForm(t, bootstrap.WithFields([]model.Field{
		{
			Name:        "code",
			Placeholder: "ABC-123",
			Validations: []model.ValidationRule{{Kind: model.ValidationRuleMaxLength, Params: map[string]string{"value": "7"}}},
		},
		{
			Name: "age",
			Validations: []model.ValidationRule{
				{Kind: model.ValidationRuleMin, Params: map[string]string{"value": "18"}},
				{Kind: model.ValidationRuleMax, Params: map[string]string{"value": "99"}},
			},
		},
	}))

	code := form.Field("code").Render()
	if !strings.Contains(code, `maxlength="7"`) || !strings.Contains(code, `placeholder="ABC-123"`) {
		t.Fatalf("expected maxlength and placeholder:\n%s", code)
	}
	age := form.Field("age").Input("number", nil).Render()
	if !strings.Contains(age, `max="99" min="18"`) {
		t.Fatalf("expected numeric bounds:\n%s", age)
	}
}

func TestField_CustomInputIDFlowsToLabelAndContainer(t *testing.T) {
	form := newForm(t)
	got := form.Field("name").TextInput(tag.Attrs{"id": "custom"}).Render()
	if !strings.Contains(got, `class="form-group field-custom"`) {
		t.Fatalf("container should use custom id:\n%s", got)
	}
	if !strings.Contains(got, `for="custom"`) {
		t.Fatalf("label should target custom id:\n%s", got)
	}
}

func TestField_TemplateAndParts(t *testing.T) {
	form := newForm(t)
	got := form.Field("name").Template("{input}|{custom}").Render()
	want := "<div class=\"form-group field-f-name\">\n" +
		`<input type="text" id="f-name" class="form-control" name="F[name]">|{custom}` +
		"\n</div>"
	assertMarkup(t, want, got)
}

func TestField_ContainerTagOption(t *testing.T) {
	form := newForm(t)
	got := form.Field("name").Options(tag.Attrs{"tag": "section", "class": "row"}).NoLabel().NoError().Render()
	if !strings.HasPrefix(got, `<section class="row field-f-name">`) || !strings.HasSuffix(got, "</section>") {
		t.Fatalf("expected section container:\n%s", got)
	}
}

func TestField_LabelAndHintAreSanitized(t *testing.T) {
	form := newForm(t)
	got := form.Field("email").
		Label(`Email <em>address</em><script>alert(1)</script>`).
		Hint(`See <a href="/docs">docs</a><script>x()</script>`).
		Render()

	if strings.Contains(got, "<script") {
		t.Fatalf("script should be stripped:\n%s", got)
	}
	if !strings.Contains(got, "Email <em>address</em></label>") {
		t.Fatalf("expected explicit label markup:\n%s", got)
	}
	if !strings.Contains(got, "docs</a>") {
		t.Fatalf("expected hint link:\n%s", got)
	}
}

func TestField_GeneratedLabelIsEncoded(t *testing.T) {
	form := newForm(t, bootstrap.WithFields([]model.Field{{Name: "terms", Label: "Terms & <Conditions>"}}))
	got := form.Field("terms").Render()
	if !strings.Contains(got, ">Terms &amp; &lt;Conditions&gt;</label>") {
		t.Fatalf("expected encoded label:\n%s", got)
	}
}

func TestField_NoHintAndHintOverride(t *testing.T) {
	form := newForm(t, bootstrap.WithFields([]model.Field{{Name: "bio", Description: "About you"}}))
	if got := form.Field("bio").NoHint().Render(); strings.Contains(got, "About you") {
		t.Fatalf("NoHint should drop the description:\n%s", got)
	}
	if got := form.Field("bio").Hint("Short bio").Render(); !strings.Contains(got, `<p class="help-block">Short bio</p>`) {
		t.Fatalf("Hint should replace the description:\n%s", got)
	}
}

func TestField_RenderIsRepeatable(t *testing.T) {
	form := newForm(t)
	field := form.Field("name").InputTemplate(`<div class="x">{input}</div>`)
	first := field.Render()
	if second := field.Render(); first != second {
		t.Fatalf("render changed between calls:\n%s\n---\n%s", first, second)
	}
	if strings.Count(first, `<div class="x">`) != 1 {
		t.Fatalf("input template applied more than once:\n%s", first)
	}
}

func TestField_NestedAttribute(t *testing.T) {
	form := newForm(t, bootstrap.WithValues(map[string]any{"owner": map[string]any{"email": "a@b.c"}}))
	got := form.Field("owner.email").Render()
	if !strings.Contains(got, `id="f-owner-email"`) || !strings.Contains(got, `name="F[owner][email]"`) || !strings.Contains(got, `value="a@b.c"`) {
		t.Fatalf("unexpected nested binding:\n%s", got)
	}
}

func TestField_LogsRender(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	form := newForm(t, bootstrap.WithLogger(zap.New(core)))

	form.Field("name").Render()

	entries := logs.FilterMessage(bootstrap.LogMsgFieldRendered).All()
	if len(entries) != 1 {
		t.Fatalf("expected one render log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()[bootstrap.LogFieldAttribute]; got != "name" {
		t.Fatalf("expected attribute field, got %v", got)
	}
}

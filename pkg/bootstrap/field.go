package bootstrap

import (
	"maps"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfield/pkg/layout"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/tag"
)

// Field renders one attribute. Configuration calls return the field so they
// can be chained; Render produces the markup and can be called repeatedly.
type Field struct {
	form *Form
	spec model.Field

	mode       layout.Mode
	templates  layout.Templates
	horizontal layout.HorizontalClasses

	template      string
	inputTemplate string

	options        tag.Attrs
	inputOptions   tag.Attrs
	labelOptions   tag.Attrs
	errorOptions   tag.Attrs
	hintOptions    tag.Attrs
	wrapperOptions tag.Attrs

	enableLabel bool
	enableError bool
	inline      bool

	labelText    *string
	hintText     *string
	skipLabelFor bool
	inputID      string
	addon        *Addon

	parts map[string]string
}

func newField(form *Form, spec model.Field) *Field {
	preset := form.preset.Clone()
	return &Field{
		form:           form,
		spec:           spec,
		mode:           preset.Mode,
		templates:      preset.Templates,
		horizontal:     preset.Horizontal,
		template:       preset.Templates.Field,
		options:        preset.Options,
		inputOptions:   preset.InputOptions,
		labelOptions:   preset.LabelOptions,
		errorOptions:   preset.ErrorOptions,
		hintOptions:    preset.HintOptions,
		wrapperOptions: preset.WrapperOptions,
		enableLabel:    preset.EnableLabel,
		enableError:    preset.EnableError,
		parts:          make(map[string]string),
	}
}

// Attribute reports the dotted attribute path.
func (f *Field) Attribute() string {
	return f.spec.Name
}

// Template replaces the field template.
func (f *Field) Template(template string) *Field {
	f.template = template
	return f
}

// InputTemplate wraps the rendered input; it must contain {input}.
func (f *Field) InputTemplate(template string) *Field {
	f.inputTemplate = template
	return f
}

// Options merges attributes into the container options. A "tag" entry
// changes the container element.
func (f *Field) Options(options tag.Attrs) *Field {
	f.options = tag.Merge(f.options, options)
	return f
}

// InputOptions merges attributes applied to every input rendered afterwards.
func (f *Field) InputOptions(options tag.Attrs) *Field {
	f.inputOptions = tag.Merge(f.inputOptions, options)
	return f
}

// WrapperOptions merges attributes into the {beginWrapper} element.
func (f *Field) WrapperOptions(options tag.Attrs) *Field {
	f.wrapperOptions = tag.Merge(f.wrapperOptions, options)
	return f
}

// Inline toggles inline rendering of checkbox and radio lists.
func (f *Field) Inline(inline bool) *Field {
	f.inline = inline
	return f
}

// Addon decorates the input with prepended and appended parts.
func (f *Field) Addon(addon Addon) *Field {
	if addon.Empty() {
		f.addon = nil
		return f
	}
	f.addon = &addon
	return f
}

// Label sets an explicit label. text is trusted markup and is sanitized; an
// empty text keeps the generated label.
func (f *Field) Label(text string, options ...tag.Attrs) *Field {
	f.enableLabel = true
	if text != "" {
		f.labelText = &text
	}
	for _, opts := range options {
		f.labelOptions = tag.Merge(f.labelOptions, opts)
	}
	return f
}

// NoLabel disables the label. In the horizontal layout the wrapper gets the
// offset class so the input stays aligned.
func (f *Field) NoLabel() *Field {
	f.enableLabel = false
	if f.mode == layout.ModeHorizontal {
		f.wrapperOptions = tag.AddClass(f.wrapperOptions, f.horizontal.Offset)
	}
	return f
}

// Hint sets the hint content, overriding the field description.
func (f *Field) Hint(text string, options ...tag.Attrs) *Field {
	f.hintText = &text
	delete(f.parts, PartHint)
	for _, opts := range options {
		f.hintOptions = tag.Merge(f.hintOptions, opts)
	}
	return f
}

// NoHint removes the hint.
func (f *Field) NoHint() *Field {
	f.parts[PartHint] = ""
	return f
}

// Error enables error rendering and merges error options.
func (f *Field) Error(options ...tag.Attrs) *Field {
	f.enableError = true
	delete(f.parts, PartError)
	for _, opts := range options {
		f.errorOptions = tag.Merge(f.errorOptions, opts)
	}
	return f
}

// NoError disables error rendering.
func (f *Field) NoError() *Field {
	f.enableError = false
	return f
}

// Widget installs pre-rendered input markup as is.
func (f *Field) Widget(markup string) *Field {
	f.parts[PartInput] = markup
	return f
}

// String renders the field.
func (f *Field) String() string {
	return f.Render()
}

// Render fills the parts the template needs and substitutes them. Missing
// parts are computed in order: wrapper, label parts, error switch, input
// template and addon, then input, label, error and hint defaults.
func (f *Field) Render() string {
	parts := maps.Clone(f.parts)

	if _, ok := parts[PartBeginWrapper]; !ok {
		opts := f.wrapperOptions.Clone()
		name := opts.Pop("tag", "div")
		parts[PartBeginWrapper] = tag.Begin(name, opts)
		parts[PartEndWrapper] = tag.End(name)
	}

	if !f.enableLabel {
		parts[PartLabel] = ""
		parts[PartBeginLabel] = ""
		parts[PartLabelTitle] = ""
		parts[PartEndLabel] = ""
	} else if _, ok := parts[PartBeginLabel]; !ok {
		f.renderLabelParts(parts)
	}

	if !f.enableError {
		parts[PartError] = ""
	}

	if f.inputTemplate != "" || f.addon != nil {
		input, ok := parts[PartInput]
		if !ok {
			input = f.textualInput("text", nil)
		}
		if f.inputTemplate != "" {
			input = Substitute(f.inputTemplate, map[string]string{PartInput: input})
		}
		if f.addon != nil {
			input = f.addon.Wrap(input)
		}
		parts[PartInput] = input
	}

	if _, ok := parts[PartInput]; !ok {
		parts[PartInput] = f.textualInput("text", nil)
	}
	if _, ok := parts[PartLabel]; !ok {
		parts[PartLabel] = f.labelTag()
	}
	if _, ok := parts[PartError]; !ok {
		parts[PartError] = f.errorTag()
	}
	if _, ok := parts[PartHint]; !ok {
		parts[PartHint] = f.hintTag()
	}

	content := Substitute(f.template, parts)
	f.form.logger.Debug(LogMsgFieldRendered,
		zap.String(LogFieldAttribute, f.spec.Name),
		zap.String(LogFieldInputID, f.InputID()),
		zap.String(LogFieldLayout, string(f.mode)),
		zap.Bool(LogFieldHasError, f.hasError()),
	)
	return f.begin() + "\n" + content + "\n" + f.end()
}

// InputName is the submitted name of the field's input.
func (f *Field) InputName() string {
	return model.InputName(f.form.cfg.name, f.spec.Name)
}

// InputID is the element id of the field's input. An "id" passed to an input
// method replaces the generated one.
func (f *Field) InputID() string {
	if f.inputID != "" {
		return f.inputID
	}
	return model.InputID(f.form.cfg.name, f.spec.Name)
}

func (f *Field) begin() string {
	opts := f.options.Clone()
	classes := []string{"field-" + f.InputID()}
	if f.spec.Required {
		classes = append(classes, "required")
	}
	if f.hasError() {
		classes = append(classes, "has-error")
	}
	tag.AddClass(opts, classes...)
	return tag.Begin(opts.Pop("tag", "div"), opts)
}

func (f *Field) end() string {
	return tag.End(f.options.Clone().Pop("tag", "div"))
}

func (f *Field) renderLabelParts(parts map[string]string) {
	opts := f.labelOptions.Clone()
	if !opts.Has("for") {
		opts["for"] = f.InputID()
	}
	parts[PartBeginLabel] = tag.Begin("label", opts)
	parts[PartEndLabel] = tag.End("label")
	if _, ok := parts[PartLabelTitle]; !ok {
		parts[PartLabelTitle] = f.labelContent()
	}
}

func (f *Field) labelTag() string {
	opts := f.labelOptions.Clone()
	switch {
	case f.skipLabelFor:
		delete(opts, "for")
	case !opts.Has("for"):
		opts["for"] = f.InputID()
	}
	return tag.Tag("label", f.labelContent(), opts)
}

func (f *Field) labelContent() string {
	if f.labelText != nil {
		return sanitizeMarkup(*f.labelText)
	}
	if label := f.spec.Hint(model.HintLabel); label != "" {
		return tag.Encode(label)
	}
	if label := strings.TrimSpace(f.spec.Label); label != "" {
		return tag.Encode(label)
	}
	return tag.Encode(f.form.cfg.labeler(f.spec.Name))
}

func (f *Field) errorTag() string {
	opts := f.errorOptions.Clone()
	name := opts.Pop("tag", "div")
	message, _ := f.form.firstError(f.spec.Name)
	return tag.Tag(name, tag.Encode(message), opts)
}

func (f *Field) hintTag() string {
	text := f.spec.HintText()
	if f.hintText != nil {
		text = *f.hintText
	}
	content := sanitizeMarkup(text)
	if content == "" {
		return ""
	}
	opts := f.hintOptions.Clone()
	name := opts.Pop("tag", "div")
	return tag.Tag(name, content, opts)
}

func (f *Field) hasError() bool {
	_, ok := f.form.firstError(f.spec.Name)
	return ok
}

func (f *Field) boundValue() (any, bool) {
	return f.form.value(f.spec.Name, f.spec.Default)
}

// inputAttrs merges the field's input options (when withDefaults) with the
// call options and fills id, name and aria attributes.
func (f *Field) inputAttrs(options tag.Attrs, withDefaults bool) tag.Attrs {
	var opts tag.Attrs
	if withDefaults {
		opts = tag.Merge(f.inputOptions, options)
	} else {
		opts = options.Clone()
	}
	if id := strings.TrimSpace(opts["id"]); id != "" {
		f.inputID = id
	} else {
		opts["id"] = f.InputID()
	}
	if !opts.Has("name") {
		opts["name"] = f.InputName()
	}
	f.addAria(opts)
	return opts
}

func (f *Field) addAria(opts tag.Attrs) {
	if f.spec.Required && !opts.Has("aria-required") {
		opts["aria-required"] = "true"
	}
	if f.hasError() && !opts.Has("aria-invalid") {
		opts["aria-invalid"] = "true"
	}
}

package bootstrap

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/tag"
)

// Item is one choice of a select, checkbox list or radio list.
type Item struct {
	Value string
	Label string
}

// SelectOptions configures DropDownList and ListBox.
type SelectOptions struct {
	// Prompt adds a leading empty-valued option.
	Prompt string
	// Multiple allows several selections; the name gets a [] suffix.
	Multiple bool
	// Size is the visible row count of a list box. Defaults to 4.
	Size int
	// NoUnselect drops the hidden input submitted when nothing is selected.
	NoUnselect bool
	// NoEncode emits option labels as sanitized markup instead of text.
	NoEncode bool
	Options  tag.Attrs
}

var textLikeTypes = map[string]struct{}{
	"text":     {},
	"password": {},
	"email":    {},
	"search":   {},
	"tel":      {},
	"url":      {},
	"number":   {},
}

// TextInput renders a text input.
func (f *Field) TextInput(options tag.Attrs) *Field {
	f.parts[PartInput] = f.textualInput("text", options)
	return f
}

// PasswordInput renders a password input. The bound value is not echoed.
func (f *Field) PasswordInput(options tag.Attrs) *Field {
	f.parts[PartInput] = f.textualInput("password", options)
	return f
}

// Input renders an input of the given HTML type (email, number, date, ...).
func (f *Field) Input(inputType string, options tag.Attrs) *Field {
	inputType = strings.ToLower(strings.TrimSpace(inputType))
	if inputType == "" {
		inputType = "text"
	}
	f.parts[PartInput] = f.textualInput(inputType, options)
	return f
}

func (f *Field) textualInput(inputType string, options tag.Attrs) string {
	opts := f.inputAttrs(options, true)
	opts["type"] = inputType
	if !opts.Has("value") && inputType != "password" {
		if value, ok := f.boundValue(); ok {
			opts["value"] = model.StringValue(value)
		}
	}
	f.applyConstraints(opts, inputType)
	return tag.Tag("input", "", opts)
}

func (f *Field) applyConstraints(opts tag.Attrs, inputType string) {
	if placeholder := f.spec.PlaceholderText(); placeholder != "" && !opts.Has("placeholder") {
		opts["placeholder"] = placeholder
	}
	if _, ok := textLikeTypes[inputType]; !ok && inputType != "textarea" {
		return
	}
	if rule, ok := f.spec.Rule(model.ValidationRuleMaxLength); ok && !opts.Has("maxlength") && inputType != "number" {
		if value := rule.Params["value"]; value != "" {
			opts["maxlength"] = value
		}
	}
	if inputType != "number" {
		return
	}
	if rule, ok := f.spec.Rule(model.ValidationRuleMin); ok && !opts.Has("min") {
		opts["min"] = rule.Params["value"]
	}
	if rule, ok := f.spec.Rule(model.ValidationRuleMax); ok && !opts.Has("max") {
		opts["max"] = rule.Params["value"]
	}
}

// Textarea renders a textarea holding the encoded bound value.
func (f *Field) Textarea(options tag.Attrs) *Field {
	opts := f.inputAttrs(options, true)
	value := opts.Pop("value", "")
	if value == "" {
		if bound, ok := f.boundValue(); ok {
			value = model.StringValue(bound)
		}
	}
	f.applyConstraints(opts, "textarea")
	f.parts[PartInput] = tag.Tag("textarea", tag.Encode(value), opts)
	return f
}

// FileInput renders a file input preceded by an empty hidden input so the
// attribute is always submitted. The input only receives the form-control
// class when input options were customised.
func (f *Field) FileInput(options tag.Attrs) *Field {
	withDefaults := !(len(f.inputOptions) == 1 && f.inputOptions["class"] == "form-control")
	opts := f.inputAttrs(options, withDefaults)
	opts["type"] = "file"
	hidden := tag.Tag("input", "", tag.Attrs{"type": "hidden", "name": opts["name"], "value": ""})
	f.parts[PartInput] = hidden + tag.Tag("input", "", opts)
	return f
}

// HiddenInput renders a hidden input carrying the bound value.
func (f *Field) HiddenInput(options tag.Attrs) *Field {
	opts := options.Clone()
	if id := strings.TrimSpace(opts["id"]); id != "" {
		f.inputID = id
	} else {
		opts["id"] = f.InputID()
	}
	if !opts.Has("name") {
		opts["name"] = f.InputName()
	}
	opts["type"] = "hidden"
	if !opts.Has("value") {
		value, _ := f.boundValue()
		opts["value"] = model.StringValue(value)
	}
	f.parts[PartInput] = tag.Tag("input", "", opts)
	return f
}

// StaticControl renders the bound value as plain text inside
// <p class="form-control-static">.
func (f *Field) StaticControl(options tag.Attrs) *Field {
	opts := tag.AddClass(options.Clone(), "form-control-static")
	if id := strings.TrimSpace(opts["id"]); id != "" {
		f.inputID = id
	}
	value := opts.Pop("value", "")
	if value == "" {
		if bound, ok := f.boundValue(); ok {
			value = model.StringValue(bound)
		}
	}
	f.parts[PartInput] = tag.Tag("p", tag.Encode(value), opts)
	return f
}

// DropDownList renders a <select>. With Multiple set it renders a list box.
func (f *Field) DropDownList(items []Item, options SelectOptions) *Field {
	if options.Multiple {
		return f.ListBox(items, options)
	}
	opts := f.inputAttrs(options.Options, true)
	selection := f.selection()
	f.parts[PartInput] = tag.Tag("select", "\n"+renderSelectOptions(items, selection, options)+"\n", opts)
	return f
}

// ListBox renders a multi-row <select> preceded by a hidden input submitted
// when nothing is selected.
func (f *Field) ListBox(items []Item, options SelectOptions) *Field {
	opts := f.inputAttrs(options.Options, true)
	size := options.Size
	if size <= 0 {
		size = 4
	}
	if !opts.Has("size") {
		opts["size"] = strconv.Itoa(size)
	}
	name := opts["name"]
	if options.Multiple {
		opts["multiple"] = "true"
		if !strings.HasSuffix(name, "[]") {
			opts["name"] = name + "[]"
		}
	}
	var hidden string
	if !options.NoUnselect {
		hidden = tag.Tag("input", "", tag.Attrs{"type": "hidden", "name": strings.TrimSuffix(name, "[]"), "value": ""})
	}
	selection := f.selection()
	f.parts[PartInput] = hidden + tag.Tag("select", "\n"+renderSelectOptions(items, selection, options)+"\n", opts)
	return f
}

func renderSelectOptions(items []Item, selection map[string]struct{}, options SelectOptions) string {
	lines := make([]string, 0, len(items)+1)
	if options.Prompt != "" {
		lines = append(lines, tag.Tag("option", tag.Encode(options.Prompt), tag.Attrs{"value": ""}))
	}
	for _, item := range items {
		attrs := tag.Attrs{"value": item.Value}
		if _, ok := selection[item.Value]; ok {
			attrs["selected"] = "true"
		}
		lines = append(lines, tag.Tag("option", itemLabel(item.Label, options.NoEncode), attrs))
	}
	return strings.Join(lines, "\n")
}

func (f *Field) selection() map[string]struct{} {
	value, ok := f.boundValue()
	if !ok {
		return nil
	}
	out := make(map[string]struct{})
	for _, entry := range model.StringValues(value) {
		out[entry] = struct{}{}
	}
	return out
}

func itemLabel(label string, noEncode bool) string {
	if noEncode {
		return sanitizeMarkup(label)
	}
	return tag.Encode(label)
}

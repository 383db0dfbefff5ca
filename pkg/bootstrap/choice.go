package bootstrap

import (
	"strings"

	"github.com/goliatone/go-formfield/pkg/layout"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/tag"
)

// ChoiceOptions configures Checkbox and Radio.
type ChoiceOptions struct {
	// Template replaces the checkbox/radio template when enclosed by a label.
	Template string
	// Label replaces the generated label text. Trusted markup, sanitized.
	Label string
	// Value is submitted when checked. Defaults to "1".
	Value string
	// Uncheck is submitted through a hidden input when unchecked. Defaults to "0".
	Uncheck string
	// NoUncheck drops the hidden input.
	NoUncheck bool
	Options   tag.Attrs
}

// ListOptions configures CheckboxList and RadioList.
type ListOptions struct {
	// Template replaces the inline list template.
	Template string
	// NoEncode emits item labels as sanitized markup instead of text.
	NoEncode bool
	// Item renders one entry, replacing the built-in markup.
	Item func(index int, label, name string, checked bool, value string) string
	// ItemOptions are merged into every item input.
	ItemOptions tag.Attrs
	// ItemLabelOptions are merged into every item label.
	ItemLabelOptions tag.Attrs
	// Options are applied to the list container.
	Options tag.Attrs
	// Separator joins items. Defaults to "\n".
	Separator string
	// NoUnselect drops the hidden input submitted when nothing is checked.
	NoUnselect bool
}

// Checkbox renders a single checkbox. When enclosedByLabel is true the input
// sits inside its label using the checkbox template of the layout.
func (f *Field) Checkbox(options ChoiceOptions, enclosedByLabel bool) *Field {
	return f.choice("checkbox", options, enclosedByLabel)
}

// Radio renders a single radio button, see Checkbox.
func (f *Field) Radio(options ChoiceOptions, enclosedByLabel bool) *Field {
	return f.choice("radio", options, enclosedByLabel)
}

func (f *Field) choice(kind string, options ChoiceOptions, enclosedByLabel bool) *Field {
	if enclosedByLabel {
		switch {
		case options.Template != "":
			f.template = options.Template
		case f.mode == layout.ModeHorizontal && kind == "checkbox":
			f.template = f.templates.HorizontalCheckbox
		case f.mode == layout.ModeHorizontal:
			f.template = f.templates.HorizontalRadio
		case kind == "checkbox":
			f.template = f.templates.Checkbox
		default:
			f.template = f.templates.Radio
		}
		if options.Label != "" {
			f.parts[PartLabelTitle] = sanitizeMarkup(options.Label)
		}
		if f.mode == layout.ModeHorizontal {
			f.wrapperOptions = tag.AddClass(f.wrapperOptions, f.horizontal.Offset)
		}
		delete(f.labelOptions, "class")
	} else if options.Label != "" && f.labelText == nil {
		label := options.Label
		f.labelText = &label
	}

	opts := f.inputAttrs(options.Options, false)
	opts["type"] = kind
	value := options.Value
	if value == "" {
		value = "1"
	}
	opts["value"] = value
	if !opts.Has("checked") {
		if bound, ok := f.boundValue(); ok && model.StringValue(bound) == value {
			opts["checked"] = "true"
		}
	}

	var hidden string
	if !options.NoUncheck {
		uncheck := options.Uncheck
		if uncheck == "" {
			uncheck = "0"
		}
		hidden = tag.Tag("input", "", tag.Attrs{"type": "hidden", "name": opts["name"], "value": uncheck})
	}
	f.parts[PartInput] = hidden + tag.Tag("input", "", opts)
	return f
}

// CheckboxList renders one checkbox per item. Inline fields use the inline
// list template with checkbox-inline labels; otherwise every item is wrapped
// in <div class="checkbox">.
func (f *Field) CheckboxList(items []Item, options ListOptions) *Field {
	return f.choiceList("checkbox", items, options)
}

// RadioList renders one radio button per item, see CheckboxList.
func (f *Field) RadioList(items []Item, options ListOptions) *Field {
	return f.choiceList("radio", items, options)
}

func (f *Field) choiceList(kind string, items []Item, options ListOptions) *Field {
	labelOptions := options.ItemLabelOptions
	if f.inline {
		switch {
		case options.Template != "":
			f.template = options.Template
		case kind == "checkbox":
			f.template = f.templates.InlineCheckboxList
		default:
			f.template = f.templates.InlineRadioList
		}
		if labelOptions == nil {
			labelOptions = tag.Attrs{"class": kind + "-inline"}
		}
	}

	name := f.InputName()
	if kind == "checkbox" && !strings.HasSuffix(name, "[]") {
		name += "[]"
	}
	selection := f.selection()

	lines := make([]string, 0, len(items))
	for idx, item := range items {
		_, checked := selection[item.Value]
		if options.Item != nil {
			lines = append(lines, options.Item(idx, item.Label, name, checked, item.Value))
			continue
		}
		input := tag.Merge(tag.Attrs{"type": kind, "name": name, "value": item.Value}, options.ItemOptions)
		if checked {
			input["checked"] = "true"
		}
		entry := tag.Tag("label", tag.Tag("input", "", input)+" "+itemLabel(item.Label, options.NoEncode), labelOptions.Clone())
		if !f.inline {
			entry = `<div class="` + kind + `">` + entry + "</div>"
		}
		lines = append(lines, entry)
	}

	separator := options.Separator
	if separator == "" {
		separator = "\n"
	}

	container := options.Options.Clone()
	if id := strings.TrimSpace(container["id"]); id != "" {
		f.inputID = id
	} else {
		container["id"] = f.InputID()
	}
	f.addAria(container)

	var hidden string
	if !options.NoUnselect {
		hidden = tag.Tag("input", "", tag.Attrs{"type": "hidden", "name": strings.TrimSuffix(name, "[]"), "value": ""})
	}
	f.skipLabelFor = true
	f.parts[PartInput] = hidden + tag.Tag("div", strings.Join(lines, separator), container)
	return f
}

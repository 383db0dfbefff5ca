package bootstrap

import (
	"strings"

	activefield "github.com/goliatone/go-formfield/pkg/bootstrap"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/tag"
	"github.com/goliatone/go-formfield/pkg/widgets"
)

// Values of the addon.button hint.
const (
	addonButtonPrepend = "prepend"
	addonButtonAppend  = "append"
	addonButtonBoth    = "both"
)

func renderField(form *activefield.Form, spec model.Field, widget string) string {
	field := form.FieldFor(spec)
	applyHints(form, field, spec)

	switch widget {
	case "", widgets.WidgetText:
		field.TextInput(nil)
	case widgets.WidgetPassword:
		field.PasswordInput(nil)
	case widgets.WidgetTextarea:
		var opts tag.Attrs
		if rows := spec.Hint(model.HintRows); rows != "" {
			opts = tag.Attrs{"rows": rows}
		}
		field.Textarea(opts)
	case widgets.WidgetCheckbox:
		field.Checkbox(activefield.ChoiceOptions{}, true)
	case widgets.WidgetSelect:
		field.DropDownList(enumItems(spec, spec.Enum), activefield.SelectOptions{Prompt: spec.Hint(model.HintPrompt)})
	case widgets.WidgetListBox:
		field.ListBox(enumItems(spec, choices(spec)), activefield.SelectOptions{
			Prompt:   spec.Hint(model.HintPrompt),
			Multiple: spec.Type == model.FieldTypeArray,
		})
	case widgets.WidgetRadioList:
		field.RadioList(enumItems(spec, spec.Enum), activefield.ListOptions{})
	case widgets.WidgetCheckboxList:
		field.CheckboxList(enumItems(spec, choices(spec)), activefield.ListOptions{})
	case widgets.WidgetHidden:
		field.Template(activefield.PartInput).HiddenInput(nil)
	case widgets.WidgetFile:
		field.FileInput(nil)
	case widgets.WidgetStatic:
		field.StaticControl(nil)
	default:
		field.Input(widget, nil)
	}
	return field.Render()
}

func applyHints(form *activefield.Form, field *activefield.Field, spec model.Field) {
	if template := spec.Hint(model.HintTemplate); template != "" {
		field.Template(template)
	}
	if template := spec.Hint(model.HintInputTemplate); template != "" {
		field.InputTemplate(template)
	}
	if spec.BoolHint(model.HintInline) {
		field.Inline(true)
	}
	if spec.BoolHint(model.HintHideLabel) {
		field.NoLabel()
	}
	if class := spec.Hint(model.HintCSSClass); class != "" {
		base := form.Preset().Options["class"]
		field.Options(tag.Attrs{"class": tag.NormalizeClass(base + " " + class)})
	}
	if addon, ok := addonFromHints(spec); ok {
		field.Addon(addon)
	}
}

func addonFromHints(spec model.Field) (activefield.Addon, bool) {
	prepend := spec.Hint(model.HintAddonPrepend)
	appendText := spec.Hint(model.HintAddonAppend)
	if prepend == "" && appendText == "" {
		return activefield.Addon{}, false
	}
	button := strings.ToLower(spec.Hint(model.HintAddonButton))

	var addon activefield.Addon
	if prepend != "" {
		part := activefield.Text(prepend)
		part.AsButton = button == addonButtonPrepend || button == addonButtonBoth
		addon.Prepend = []activefield.AddonPart{part}
	}
	if appendText != "" {
		part := activefield.Text(appendText)
		part.AsButton = button == addonButtonAppend || button == addonButtonBoth
		addon.Append = []activefield.AddonPart{part}
	}
	return addon, true
}

// choices returns the enum of a field, or of its items for arrays.
func choices(spec model.Field) []any {
	if len(spec.Enum) > 0 {
		return spec.Enum
	}
	if spec.Items != nil {
		return spec.Items.Enum
	}
	return nil
}

func enumItems(spec model.Field, values []any) []activefield.Item {
	labels := spec.EnumLabels()
	if labels == nil && spec.Items != nil {
		labels = spec.Items.EnumLabels()
	}
	items := make([]activefield.Item, 0, len(values))
	for _, value := range values {
		str := model.StringValue(value)
		label := labels[str]
		if label == "" {
			label = str
		}
		items = append(items, activefield.Item{Value: str, Label: label})
	}
	return items
}

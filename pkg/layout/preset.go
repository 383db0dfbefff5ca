package layout

import (
	"strings"

	"github.com/goliatone/go-formfield/pkg/tag"
)

// Mode names one of the Bootstrap form layouts.
type Mode string

const (
	ModeDefault    Mode = "default"
	ModeHorizontal Mode = "horizontal"
	ModeInline     Mode = "inline"
)

// Modes lists the supported layout modes in declaration order.
func Modes() []Mode {
	return []Mode{ModeDefault, ModeHorizontal, ModeInline}
}

// Valid reports whether m is a supported mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeDefault, ModeHorizontal, ModeInline:
		return true
	default:
		return false
	}
}

// ParseMode normalises raw into a Mode. Empty input selects ModeDefault.
func ParseMode(raw string) (Mode, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ModeDefault, nil
	}
	mode := Mode(trimmed)
	if !mode.Valid() {
		return "", newModeError(raw)
	}
	return mode, nil
}

// Templates used by fields. Every template is a plain string holding
// placeholder tokens such as {label} or {input}.
const (
	DefaultFieldTemplate    = "{label}\n{input}\n{hint}\n{error}"
	HorizontalFieldTemplate = "{label}\n{beginWrapper}\n{input}\n{error}\n{endWrapper}\n{hint}"

	CheckboxTemplate = "<div class=\"checkbox\">\n{beginLabel}\n{input}\n{labelTitle}\n{endLabel}\n{error}\n{hint}\n</div>"
	RadioTemplate    = "<div class=\"radio\">\n{beginLabel}\n{input}\n{labelTitle}\n{endLabel}\n{error}\n{hint}\n</div>"

	HorizontalCheckboxTemplate = "{beginWrapper}\n<div class=\"checkbox\">\n{beginLabel}\n{input}\n{labelTitle}\n{endLabel}\n</div>\n{error}\n{endWrapper}\n{hint}"
	HorizontalRadioTemplate    = "{beginWrapper}\n<div class=\"radio\">\n{beginLabel}\n{input}\n{labelTitle}\n{endLabel}\n</div>\n{error}\n{endWrapper}\n{hint}"

	InlineCheckboxListTemplate = "{label}\n{beginWrapper}\n{input}\n{error}\n{endWrapper}\n{hint}"
	InlineRadioListTemplate    = "{label}\n{beginWrapper}\n{input}\n{error}\n{endWrapper}\n{hint}"
)

// Templates groups the field templates a preset carries.
type Templates struct {
	Field              string `json:"field,omitempty" yaml:"field,omitempty"`
	Checkbox           string `json:"checkbox,omitempty" yaml:"checkbox,omitempty"`
	Radio              string `json:"radio,omitempty" yaml:"radio,omitempty"`
	HorizontalCheckbox string `json:"horizontalCheckbox,omitempty" yaml:"horizontalCheckbox,omitempty"`
	HorizontalRadio    string `json:"horizontalRadio,omitempty" yaml:"horizontalRadio,omitempty"`
	InlineCheckboxList string `json:"inlineCheckboxList,omitempty" yaml:"inlineCheckboxList,omitempty"`
	InlineRadioList    string `json:"inlineRadioList,omitempty" yaml:"inlineRadioList,omitempty"`
}

// Merge returns t with every non-empty template from next applied on top.
func (t Templates) Merge(next Templates) Templates {
	t.Field = pick(t.Field, next.Field)
	t.Checkbox = pick(t.Checkbox, next.Checkbox)
	t.Radio = pick(t.Radio, next.Radio)
	t.HorizontalCheckbox = pick(t.HorizontalCheckbox, next.HorizontalCheckbox)
	t.HorizontalRadio = pick(t.HorizontalRadio, next.HorizontalRadio)
	t.InlineCheckboxList = pick(t.InlineCheckboxList, next.InlineCheckboxList)
	t.InlineRadioList = pick(t.InlineRadioList, next.InlineRadioList)
	return t
}

// HorizontalClasses are the grid classes used by the horizontal layout.
// Empty fields leave the class underneath untouched; to drop one, name its
// slot ("offset", "label", "wrapper", "error", "hint") in Clear.
type HorizontalClasses struct {
	Offset  string   `json:"offset,omitempty" yaml:"offset,omitempty"`
	Label   string   `json:"label,omitempty" yaml:"label,omitempty"`
	Wrapper string   `json:"wrapper,omitempty" yaml:"wrapper,omitempty"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
	Hint    string   `json:"hint,omitempty" yaml:"hint,omitempty"`
	Clear   []string `json:"clear,omitempty" yaml:"clear,omitempty"`
}

// DefaultHorizontalClasses returns the Bootstrap 3 two-column grid.
func DefaultHorizontalClasses() HorizontalClasses {
	return HorizontalClasses{
		Offset:  "col-sm-offset-3",
		Label:   "col-sm-3",
		Wrapper: "col-sm-6",
		Error:   "",
		Hint:    "col-sm-3",
	}
}

// Merge returns h with next applied on top: slots listed in next.Clear are
// emptied first, then every non-empty class from next wins. Cleared slots
// that next does not refill stay in the result's Clear list.
func (h HorizontalClasses) Merge(next HorizontalClasses) HorizontalClasses {
	cleared := make(map[string]struct{}, len(h.Clear)+len(next.Clear))
	for _, slot := range h.Clear {
		cleared[strings.ToLower(strings.TrimSpace(slot))] = struct{}{}
	}
	for _, slot := range next.Clear {
		slot = strings.ToLower(strings.TrimSpace(slot))
		if field := h.slot(slot); field != nil {
			*field = ""
			cleared[slot] = struct{}{}
		}
	}

	h.Offset = pick(h.Offset, next.Offset)
	h.Label = pick(h.Label, next.Label)
	h.Wrapper = pick(h.Wrapper, next.Wrapper)
	h.Error = pick(h.Error, next.Error)
	h.Hint = pick(h.Hint, next.Hint)

	h.Clear = nil
	for _, slot := range horizontalSlots {
		if _, ok := cleared[slot]; ok && *h.slot(slot) == "" {
			h.Clear = append(h.Clear, slot)
		}
	}
	return h
}

var horizontalSlots = []string{"offset", "label", "wrapper", "error", "hint"}

func (h *HorizontalClasses) slot(name string) *string {
	switch name {
	case "offset":
		return &h.Offset
	case "label":
		return &h.Label
	case "wrapper":
		return &h.Wrapper
	case "error":
		return &h.Error
	case "hint":
		return &h.Hint
	default:
		return nil
	}
}

// Preset is the resolved configuration every field of a form starts from.
type Preset struct {
	Mode       Mode
	Templates  Templates
	Horizontal HorizontalClasses

	// Options apply to the field container (div.form-group). A "tag" entry
	// overrides the element name for container, wrapper, error and hint.
	Options        tag.Attrs
	InputOptions   tag.Attrs
	LabelOptions   tag.Attrs
	ErrorOptions   tag.Attrs
	HintOptions    tag.Attrs
	WrapperOptions tag.Attrs

	EnableLabel bool
	EnableError bool

	// FormClass is added to the enclosing <form>.
	FormClass string
}

// Clone deep-copies the option maps so callers can mutate the result.
func (p Preset) Clone() Preset {
	out := p
	out.Options = p.Options.Clone()
	out.InputOptions = p.InputOptions.Clone()
	out.LabelOptions = p.LabelOptions.Clone()
	out.ErrorOptions = p.ErrorOptions.Clone()
	out.HintOptions = p.HintOptions.Clone()
	out.WrapperOptions = p.WrapperOptions.Clone()
	return out
}

// Overrides carries caller configuration layered over a mode's preset.
// Option maps merge key by key; a "class" entry replaces the preset class.
type Overrides struct {
	Horizontal HorizontalClasses `json:"horizontalCssClasses,omitempty" yaml:"horizontalCssClasses,omitempty"`
	Templates  Templates         `json:"templates,omitempty" yaml:"templates,omitempty"`

	Options        tag.Attrs `json:"options,omitempty" yaml:"options,omitempty"`
	InputOptions   tag.Attrs `json:"inputOptions,omitempty" yaml:"inputOptions,omitempty"`
	LabelOptions   tag.Attrs `json:"labelOptions,omitempty" yaml:"labelOptions,omitempty"`
	ErrorOptions   tag.Attrs `json:"errorOptions,omitempty" yaml:"errorOptions,omitempty"`
	HintOptions    tag.Attrs `json:"hintOptions,omitempty" yaml:"hintOptions,omitempty"`
	WrapperOptions tag.Attrs `json:"wrapperOptions,omitempty" yaml:"wrapperOptions,omitempty"`

	EnableLabel *bool  `json:"enableLabel,omitempty" yaml:"enableLabel,omitempty"`
	EnableError *bool  `json:"enableError,omitempty" yaml:"enableError,omitempty"`
	FormClass   string `json:"formClass,omitempty" yaml:"formClass,omitempty"`
}

// Merge layers next over o and returns the combined overrides.
func (o Overrides) Merge(next Overrides) Overrides {
	out := o
	out.Horizontal = o.Horizontal.Merge(next.Horizontal)
	out.Templates = o.Templates.Merge(next.Templates)
	out.Options = mergeOptional(o.Options, next.Options)
	out.InputOptions = mergeOptional(o.InputOptions, next.InputOptions)
	out.LabelOptions = mergeOptional(o.LabelOptions, next.LabelOptions)
	out.ErrorOptions = mergeOptional(o.ErrorOptions, next.ErrorOptions)
	out.HintOptions = mergeOptional(o.HintOptions, next.HintOptions)
	out.WrapperOptions = mergeOptional(o.WrapperOptions, next.WrapperOptions)
	if next.EnableLabel != nil {
		value := *next.EnableLabel
		out.EnableLabel = &value
	}
	if next.EnableError != nil {
		value := *next.EnableError
		out.EnableError = &value
	}
	out.FormClass = pick(o.FormClass, next.FormClass)
	return out
}

// Resolve builds the preset for mode and applies overrides. Horizontal grid
// classes from overrides are merged before they are folded into the label,
// wrapper, error and hint options.
func Resolve(mode Mode, overrides Overrides) (Preset, error) {
	if mode == "" {
		mode = ModeDefault
	}
	if !mode.Valid() {
		return Preset{}, newModeError(string(mode))
	}

	preset := basePreset()
	preset.Mode = mode
	preset.Horizontal = DefaultHorizontalClasses().Merge(overrides.Horizontal)
	preset.Horizontal.Clear = nil

	switch mode {
	case ModeHorizontal:
		classes := preset.Horizontal
		preset.Templates.Field = HorizontalFieldTemplate
		preset.WrapperOptions = tag.Attrs{"class": classes.Wrapper}
		preset.LabelOptions = tag.Attrs{"class": "control-label " + classes.Label}
		preset.ErrorOptions["class"] = "help-block help-block-error " + classes.Error
		preset.HintOptions["class"] = "help-block " + classes.Hint
		preset.FormClass = "form-horizontal"
	case ModeInline:
		preset.LabelOptions = tag.Attrs{"class": "sr-only"}
		preset.EnableError = false
		preset.FormClass = "form-inline"
	}

	preset.apply(overrides)
	preset.normalizeClasses()
	return preset, nil
}

func basePreset() Preset {
	return Preset{
		Templates: Templates{
			Field:              DefaultFieldTemplate,
			Checkbox:           CheckboxTemplate,
			Radio:              RadioTemplate,
			HorizontalCheckbox: HorizontalCheckboxTemplate,
			HorizontalRadio:    HorizontalRadioTemplate,
			InlineCheckboxList: InlineCheckboxListTemplate,
			InlineRadioList:    InlineRadioListTemplate,
		},
		Options:        tag.Attrs{"class": "form-group"},
		InputOptions:   tag.Attrs{"class": "form-control"},
		LabelOptions:   tag.Attrs{"class": "control-label"},
		ErrorOptions:   tag.Attrs{"tag": "p", "class": "help-block help-block-error"},
		HintOptions:    tag.Attrs{"tag": "p", "class": "help-block"},
		WrapperOptions: tag.Attrs{},
		EnableLabel:    true,
		EnableError:    true,
	}
}

func (p *Preset) apply(o Overrides) {
	p.Templates = p.Templates.Merge(o.Templates)
	p.Options = tag.Merge(p.Options, o.Options)
	p.InputOptions = tag.Merge(p.InputOptions, o.InputOptions)
	p.LabelOptions = tag.Merge(p.LabelOptions, o.LabelOptions)
	p.ErrorOptions = tag.Merge(p.ErrorOptions, o.ErrorOptions)
	p.HintOptions = tag.Merge(p.HintOptions, o.HintOptions)
	p.WrapperOptions = tag.Merge(p.WrapperOptions, o.WrapperOptions)
	if o.EnableLabel != nil {
		p.EnableLabel = *o.EnableLabel
	}
	if o.EnableError != nil {
		p.EnableError = *o.EnableError
	}
	p.FormClass = pick(p.FormClass, o.FormClass)
}

func (p *Preset) normalizeClasses() {
	for _, attrs := range []tag.Attrs{p.Options, p.InputOptions, p.LabelOptions, p.ErrorOptions, p.HintOptions, p.WrapperOptions} {
		if class, ok := attrs["class"]; ok {
			attrs["class"] = tag.NormalizeClass(class)
		}
	}
}

func mergeOptional(base, next tag.Attrs) tag.Attrs {
	if len(base) == 0 && len(next) == 0 {
		return nil
	}
	return tag.Merge(base, next)
}

func pick(current, next string) string {
	if next != "" {
		return next
	}
	return current
}

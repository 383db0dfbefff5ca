package layout

import (
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfield/pkg/tag"
)

// Token keys read from a theme's resolved tokens. Class tokens replace the
// class of the matching option map; a horizontal token set to "" clears that
// grid class.
const (
	TokenHorizontalOffset  = "formfield.horizontal.offset"
	TokenHorizontalLabel   = "formfield.horizontal.label"
	TokenHorizontalWrapper = "formfield.horizontal.wrapper"
	TokenHorizontalError   = "formfield.horizontal.error"
	TokenHorizontalHint    = "formfield.horizontal.hint"

	TokenGroupClass   = "formfield.group.class"
	TokenInputClass   = "formfield.input.class"
	TokenLabelClass   = "formfield.label.class"
	TokenErrorClass   = "formfield.error.class"
	TokenHintClass    = "formfield.hint.class"
	TokenWrapperClass = "formfield.wrapper.class"
	TokenFormClass    = "formfield.form.class"

	// TokenLayout names the layout mode a theme variant renders with.
	// "layout" and "mode" are read too.
	TokenLayout = "formfield.layout"
)

// Partial keys read from a theme's resolved partials. Values are template
// strings, not file paths.
const (
	PartialField              = "formfield.template"
	PartialCheckbox           = "formfield.checkbox"
	PartialRadio              = "formfield.radio"
	PartialHorizontalCheckbox = "formfield.horizontal-checkbox"
	PartialHorizontalRadio    = "formfield.horizontal-radio"
	PartialInlineCheckboxList = "formfield.inline-checkbox-list"
	PartialInlineRadioList    = "formfield.inline-radio-list"
)

// FromRendererConfig extracts layout overrides from a resolved theme. A nil
// config yields zero overrides.
func FromRendererConfig(cfg *theme.RendererConfig) Overrides {
	if cfg == nil {
		return Overrides{}
	}
	return overridesFrom(cfg.Tokens, cfg.Partials)
}

// ModeFromRendererConfig reads the layout mode from the theme tokens, then
// from the variant name. Values that are not a mode are skipped.
func ModeFromRendererConfig(cfg *theme.RendererConfig) (Mode, bool) {
	if cfg == nil {
		return "", false
	}
	candidates := []string{cfg.Tokens[TokenLayout], cfg.Tokens["layout"], cfg.Tokens["mode"], cfg.Variant}
	for _, candidate := range candidates {
		mode := Mode(strings.ToLower(strings.TrimSpace(candidate)))
		if mode != "" && mode.Valid() {
			return mode, true
		}
	}
	return "", false
}

// FromSelection merges manifest tokens and templates with the selected
// variant's and converts them into overrides.
func FromSelection(selection *theme.Selection) Overrides {
	if selection == nil || selection.Manifest == nil {
		return Overrides{}
	}
	tokens, templates := SelectionValues(selection)
	return overridesFrom(tokens, templates)
}

// SelectionValues flattens a selection into tokens and template partials,
// variant values winning over the manifest's.
func SelectionValues(selection *theme.Selection) (map[string]string, map[string]string) {
	if selection == nil || selection.Manifest == nil {
		return nil, nil
	}
	manifest := selection.Manifest
	tokens := copyStrings(manifest.Tokens)
	templates := copyStrings(manifest.Templates)
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStrings(tokens, variant.Tokens)
		templates = mergeStrings(templates, variant.Templates)
	}
	return tokens, templates
}

func overridesFrom(tokens, partials map[string]string) Overrides {
	var o Overrides
	o.Horizontal = HorizontalClasses{
		Offset:  tokens[TokenHorizontalOffset],
		Label:   tokens[TokenHorizontalLabel],
		Wrapper: tokens[TokenHorizontalWrapper],
		Error:   tokens[TokenHorizontalError],
		Hint:    tokens[TokenHorizontalHint],
	}
	for slot, key := range map[string]string{
		"offset":  TokenHorizontalOffset,
		"label":   TokenHorizontalLabel,
		"wrapper": TokenHorizontalWrapper,
		"error":   TokenHorizontalError,
		"hint":    TokenHorizontalHint,
	} {
		if value, ok := tokens[key]; ok && strings.TrimSpace(value) == "" {
			o.Horizontal.Clear = append(o.Horizontal.Clear, slot)
		}
	}
	o.Options = classOverride(tokens[TokenGroupClass])
	o.InputOptions = classOverride(tokens[TokenInputClass])
	o.LabelOptions = classOverride(tokens[TokenLabelClass])
	o.ErrorOptions = classOverride(tokens[TokenErrorClass])
	o.HintOptions = classOverride(tokens[TokenHintClass])
	o.WrapperOptions = classOverride(tokens[TokenWrapperClass])
	o.FormClass = strings.TrimSpace(tokens[TokenFormClass])

	o.Templates = Templates{
		Field:              partials[PartialField],
		Checkbox:           partials[PartialCheckbox],
		Radio:              partials[PartialRadio],
		HorizontalCheckbox: partials[PartialHorizontalCheckbox],
		HorizontalRadio:    partials[PartialHorizontalRadio],
		InlineCheckboxList: partials[PartialInlineCheckboxList],
		InlineRadioList:    partials[PartialInlineRadioList],
	}
	return o
}

func classOverride(value string) tag.Attrs {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return tag.Attrs{"class": value}
}

func copyStrings(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func mergeStrings(base, next map[string]string) map[string]string {
	if len(next) == 0 {
		return base
	}
	if base == nil {
		base = make(map[string]string, len(next))
	}
	for key, value := range next {
		base[key] = value
	}
	return base
}

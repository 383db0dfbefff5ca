package uischema

import "strings"

// Store keeps the parsed operations from UI schema documents. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	operations map[string]Operation
}

// Operation describes the UI overrides for a specific OpenAPI operation.
type Operation struct {
	ID     string
	Source string
	Form   FormConfig
	Fields map[string]FieldConfig
}

// FormConfig holds form level settings.
type FormConfig struct {
	Title       string            `json:"title" yaml:"title"`
	Layout      string            `json:"layout" yaml:"layout"`
	Horizontal  HorizontalConfig  `json:"horizontal" yaml:"horizontal"`
	SubmitLabel string            `json:"submitLabel" yaml:"submitLabel"`
	Metadata    map[string]string `json:"metadata" yaml:"metadata"`
	UIHints     map[string]string `json:"uiHints" yaml:"uiHints"`
}

// HorizontalConfig overrides the grid classes of the horizontal layout.
type HorizontalConfig struct {
	Label   string `json:"label" yaml:"label"`
	Wrapper string `json:"wrapper" yaml:"wrapper"`
	Offset  string `json:"offset" yaml:"offset"`
}

// FieldConfig customises how one field renders.
type FieldConfig struct {
	Order         *int              `json:"order,omitempty" yaml:"order,omitempty"`
	Label         string            `json:"label,omitempty" yaml:"label,omitempty"`
	Hint          string            `json:"hint,omitempty" yaml:"hint,omitempty"`
	Placeholder   string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Widget        string            `json:"widget,omitempty" yaml:"widget,omitempty"`
	CSSClass      string            `json:"cssClass,omitempty" yaml:"cssClass,omitempty"`
	Prompt        string            `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Template      string            `json:"template,omitempty" yaml:"template,omitempty"`
	InputTemplate string            `json:"inputTemplate,omitempty" yaml:"inputTemplate,omitempty"`
	Inline        *bool             `json:"inline,omitempty" yaml:"inline,omitempty"`
	HideLabel     *bool             `json:"hideLabel,omitempty" yaml:"hideLabel,omitempty"`
	Addon         *AddonConfig      `json:"addon,omitempty" yaml:"addon,omitempty"`
	EnumLabels    map[string]string `json:"enumLabels,omitempty" yaml:"enumLabels,omitempty"`
	UIHints       map[string]string `json:"uiHints,omitempty" yaml:"uiHints,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	OriginalPath  string            `json:"-" yaml:"-"`
}

// AddonConfig wraps the input in an input group. Button is one of
// "prepend", "append" or "both" and marks which side holds buttons.
type AddonConfig struct {
	Prepend string `json:"prepend,omitempty" yaml:"prepend,omitempty"`
	Append  string `json:"append,omitempty" yaml:"append,omitempty"`
	Button  string `json:"button,omitempty" yaml:"button,omitempty"`
}

// NormalizeFieldPath converts overlay field keys into dotted notation:
// "owner[email]" and "owner.email" are the same field, "tags[]" addresses
// the item schema of an array as "tags.items".
func NormalizeFieldPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	replacer := strings.NewReplacer(
		"[].", ".items.",
		"[]", ".items",
		"[", ".",
		"]", "",
	)
	normalised := replacer.Replace(trimmed)
	for strings.Contains(normalised, "..") {
		normalised = strings.ReplaceAll(normalised, "..", ".")
	}
	return strings.Trim(normalised, ".")
}

package bootstrap

import (
	"strings"

	"github.com/goliatone/go-formfield/pkg/tag"
)

// AddonPart is one decoration next to an input. Content is trusted markup and
// is sanitized before emission.
type AddonPart struct {
	Content string
	// AsButton wraps the content in input-group-btn instead of input-group-addon.
	AsButton bool
	Options  tag.Attrs
}

// Addon describes the input-group decorations of a field.
type Addon struct {
	Prepend      []AddonPart
	Append       []AddonPart
	GroupOptions tag.Attrs
}

// Text builds a plain text addon part.
func Text(content string) AddonPart {
	return AddonPart{Content: content}
}

// Button builds a button addon part.
func Button(content string) AddonPart {
	return AddonPart{Content: content, AsButton: true}
}

// Empty reports whether the addon has no visible part once its content is
// sanitized.
func (a Addon) Empty() bool {
	for _, part := range a.Prepend {
		if part.visible() {
			return false
		}
	}
	for _, part := range a.Append {
		if part.visible() {
			return false
		}
	}
	return true
}

// Wrap surrounds input with the input-group markup. An empty addon returns
// input untouched.
func (a Addon) Wrap(input string) string {
	if a.Empty() {
		return input
	}
	var b strings.Builder
	b.WriteString(tag.Begin("div", tag.AddClass(a.GroupOptions.Clone(), "input-group")))
	for _, part := range a.Prepend {
		b.WriteString(part.render())
	}
	b.WriteString(input)
	for _, part := range a.Append {
		b.WriteString(part.render())
	}
	b.WriteString(tag.End("div"))
	return b.String()
}

// Format returns the input-group markup around a literal {input} token,
// usable as an input template.
func (a Addon) Format() string {
	return a.Wrap(PartInput)
}

func (p AddonPart) visible() bool {
	return strings.TrimSpace(sanitizeMarkup(p.Content)) != ""
}

func (p AddonPart) render() string {
	content := sanitizeMarkup(p.Content)
	if strings.TrimSpace(content) == "" {
		return ""
	}
	class := "input-group-addon"
	if p.AsButton {
		class = "input-group-btn"
	}
	attrs := tag.AddClass(tag.Attrs{"class": class}, p.Options["class"])
	for key, value := range p.Options {
		if key != "class" {
			attrs[key] = value
		}
	}
	return tag.Tag("span", content, attrs)
}

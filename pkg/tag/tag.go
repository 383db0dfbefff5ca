// Package tag builds the handful of HTML tags form fields need. Attributes are
// emitted in a fixed order (well-known attributes first, the rest sorted by
// name) so rendered markup stays byte-for-byte stable across runs.
package tag

import (
	"html"
	"sort"
	"strings"
)

// Attrs holds tag attributes. Boolean attributes (checked, selected, ...)
// render bare unless their value is "false", in which case they are omitted.
type Attrs map[string]string

var attributeOrder = []string{
	"type",
	"id",
	"class",
	"name",
	"value",
	"href",
	"src",
	"form",
	"action",
	"method",
	"selected",
	"checked",
	"readonly",
	"disabled",
	"multiple",
	"size",
	"maxlength",
	"minlength",
	"rows",
	"cols",
	"alt",
	"title",
	"rel",
}

var attributeRank = func(keys []string) map[string]int {
	out := make(map[string]int, len(keys))
	for idx, key := range keys {
		out[key] = idx
	}
	return out
}(attributeOrder)

var booleanAttributes = map[string]struct{}{
	"autofocus":  {},
	"checked":    {},
	"disabled":   {},
	"hidden":     {},
	"multiple":   {},
	"novalidate": {},
	"readonly":   {},
	"required":   {},
	"selected":   {},
}

var voidElements = map[string]struct{}{
	"br":    {},
	"hr":    {},
	"img":   {},
	"input": {},
	"link":  {},
	"meta":  {},
}

// Clone returns a shallow copy. A nil receiver yields an empty, writable map.
func (a Attrs) Clone() Attrs {
	out := make(Attrs, len(a))
	for key, value := range a {
		out[key] = value
	}
	return out
}

// Has reports whether key is present.
func (a Attrs) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Pop removes key and returns its value, or fallback when the key is absent.
func (a Attrs) Pop(key, fallback string) string {
	value, ok := a[key]
	if !ok {
		return fallback
	}
	delete(a, key)
	return value
}

// Merge layers the supplied maps over a copy of base. Later maps win.
func Merge(base Attrs, layers ...Attrs) Attrs {
	out := base.Clone()
	for _, layer := range layers {
		for key, value := range layer {
			out[key] = value
		}
	}
	return out
}

// AddClass appends CSS classes to attrs["class"], skipping duplicates. The
// returned map is attrs itself, or a new one when attrs is nil.
func AddClass(attrs Attrs, classes ...string) Attrs {
	if attrs == nil {
		attrs = Attrs{}
	}
	current := strings.Fields(attrs["class"])
	seen := make(map[string]struct{}, len(current))
	for _, token := range current {
		seen[token] = struct{}{}
	}
	for _, class := range classes {
		for _, token := range strings.Fields(class) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			current = append(current, token)
		}
	}
	if len(current) == 0 {
		return attrs
	}
	attrs["class"] = strings.Join(current, " ")
	return attrs
}

// NormalizeClass collapses whitespace and drops duplicate class tokens.
func NormalizeClass(value string) string {
	return AddClass(Attrs{}, value)["class"]
}

// Encode escapes text for use as element content or attribute value.
func Encode(value string) string {
	return html.EscapeString(value)
}

// Render serialises attributes with a leading space before each entry.
func Render(attrs Attrs) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		if strings.TrimSpace(key) == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, iok := attributeRank[keys[i]]
		rj, jok := attributeRank[keys[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		case jok:
			return false
		default:
			return keys[i] < keys[j]
		}
	})

	var b strings.Builder
	for _, key := range keys {
		value := attrs[key]
		if _, ok := booleanAttributes[key]; ok {
			if value == "false" {
				continue
			}
			b.WriteByte(' ')
			b.WriteString(key)
			continue
		}
		if key == "class" {
			value = NormalizeClass(value)
			if value == "" {
				continue
			}
		}
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteString(`="`)
		b.WriteString(Encode(value))
		b.WriteByte('"')
	}
	return b.String()
}

// Begin renders an opening tag. An empty name renders nothing.
func Begin(name string, attrs Attrs) string {
	if name == "" {
		return ""
	}
	return "<" + name + Render(attrs) + ">"
}

// End renders a closing tag. An empty name renders nothing.
func End(name string) string {
	if name == "" {
		return ""
	}
	return "</" + name + ">"
}

// Tag renders a complete element. content is written verbatim; callers encode
// text themselves. Void elements ignore content.
func Tag(name, content string, attrs Attrs) string {
	if name == "" {
		return content
	}
	if _, ok := voidElements[strings.ToLower(name)]; ok {
		return Begin(name, attrs)
	}
	return Begin(name, attrs) + content + End(name)
}

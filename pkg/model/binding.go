package model

import (
	"fmt"
	"strings"
)

var idReplacer = strings.NewReplacer("[]", "", "][", "-", "[", "-", "]", "", " ", "-", ".", "-")

// InputName builds the submitted name of an attribute. With a form name the
// attribute is bracketed (`Form[owner][email]`); without one the first path
// segment stays bare (`owner[email]`).
func InputName(formName, attribute string) string {
	segments := pathSegments(attribute)
	if len(segments) == 0 {
		return strings.TrimSpace(formName)
	}
	var b strings.Builder
	formName = strings.TrimSpace(formName)
	if formName != "" {
		b.WriteString(formName)
	} else {
		b.WriteString(segments[0])
		segments = segments[1:]
	}
	for _, segment := range segments {
		b.WriteByte('[')
		b.WriteString(segment)
		b.WriteByte(']')
	}
	return b.String()
}

// InputID derives an element id from an input name: brackets, dots and
// spaces become dashes and the result is lowercased.
func InputID(formName, attribute string) string {
	return strings.ToLower(idReplacer.Replace(InputName(formName, attribute)))
}

// Flatten expands object fields into their leaf fields, rewriting names into
// dotted paths. Array fields stay single entries.
func Flatten(fields []Field) []Field {
	var out []Field
	flattenInto(&out, fields, "")
	return out
}

func flattenInto(out *[]Field, fields []Field, prefix string) {
	for _, field := range fields {
		name := joinPath(prefix, field.Name)
		if field.Type == FieldTypeObject && len(field.Nested) > 0 {
			flattenInto(out, field.Nested, name)
			continue
		}
		field.Name = name
		*out = append(*out, field)
	}
}

// FindField resolves a dotted path against fields, descending into nested
// object fields.
func FindField(fields []Field, path string) (Field, bool) {
	segments := pathSegments(path)
	current := fields
	for idx, segment := range segments {
		found := false
		for _, field := range current {
			if field.Name != segment {
				continue
			}
			if idx == len(segments)-1 {
				return field, true
			}
			current = field.Nested
			found = true
			break
		}
		if !found {
			return Field{}, false
		}
	}
	return Field{}, false
}

// LookupValue resolves a dotted path against a values map. Flat keys win over
// nested maps ("owner.email" before values["owner"]["email"]).
func LookupValue(values map[string]any, path string) (any, bool) {
	if len(values) == 0 {
		return nil, false
	}
	if value, ok := values[path]; ok {
		return value, true
	}
	segments := pathSegments(path)
	var current any = values
	for _, segment := range segments {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// StringValue renders a bound value as the string submitted by a control.
func StringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	case fmt.Stringer:
		return v.String()
	default:
		if str, ok := CanonicalizeExtensionValue(v); ok {
			return str
		}
		return fmt.Sprint(v)
	}
}

// StringValues renders a bound value as the list of selected values used by
// multi-choice controls.
func StringValues(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, StringValue(item))
		}
		return out
	default:
		return []string{StringValue(v)}
	}
}

func pathSegments(path string) []string {
	var out []string
	for _, segment := range strings.Split(path, ".") {
		if segment = strings.TrimSpace(segment); segment != "" {
			out = append(out, segment)
		}
	}
	return out
}

func joinPath(parent, child string) string {
	parent = strings.TrimSpace(parent)
	child = strings.TrimSpace(child)
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}

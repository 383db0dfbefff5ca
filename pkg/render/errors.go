package render

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfield/pkg/model"
)

// ErrorMapping splits a server error payload into field errors keyed by
// dotted field path and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// Envelope segments dropped from the front of an error path.
var envelopeSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
}

var formLevelKeys = map[string]struct{}{
	"":                 {},
	"form":             {},
	"base":             {},
	"__all__":          {},
	"non_field_errors": {},
	"non-field-errors": {},
}

// MapErrorPayload resolves payload keys (JSON pointers such as
// "/body/owner/email", dotted or bracketed paths such as "owner[email]")
// against the fields of form. Keys matching no field become form errors.
// Messages are trimmed and deduplicated.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{}
	if len(payload) == 0 {
		return mapping
	}
	known := knownPaths(form.Fields)

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		messages := MergeFormErrors(nil, payload[key]...)
		if len(messages) == 0 {
			continue
		}
		path, ok := resolveErrorPath(key, known)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[path] = MergeFormErrors(mapping.Fields[path], messages...)
	}
	mapping.Form = MergeFormErrors(mapping.Form)
	return mapping
}

// MergeFormErrors appends extras to existing, trimming blanks and dropping
// duplicates while keeping first-seen order.
func MergeFormErrors(existing []string, extras ...string) []string {
	var out []string
	seen := make(map[string]struct{}, len(existing)+len(extras))
	for _, group := range [][]string{existing, extras} {
		for _, message := range group {
			message = strings.TrimSpace(message)
			if message == "" {
				continue
			}
			if _, dup := seen[message]; dup {
				continue
			}
			seen[message] = struct{}{}
			out = append(out, message)
		}
	}
	return out
}

func resolveErrorPath(raw string, known map[string]struct{}) (string, bool) {
	if _, ok := formLevelKeys[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return "", false
	}
	segments := splitErrorPath(raw)
	for len(segments) > 0 {
		if _, ok := envelopeSegments[strings.ToLower(segments[0])]; !ok {
			break
		}
		segments = segments[1:]
	}
	segments = dropIndexes(segments)

	for end := len(segments); end > 0; end-- {
		candidate := strings.Join(segments[:end], ".")
		if _, ok := known[candidate]; ok {
			return candidate, true
		}
	}
	return "", false
}

func splitErrorPath(raw string) []string {
	trimmed := strings.TrimLeft(strings.TrimSpace(raw), "#$/.")
	parts := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '/' || r == '.' || r == '[' || r == ']'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		// JSON pointer escapes: ~1 is "/", ~0 is "~".
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		out = append(out, part)
	}
	return out
}

func dropIndexes(segments []string) []string {
	out := segments[:0:0]
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

// knownPaths lists every addressable field path, object containers included.
func knownPaths(fields []model.Field) map[string]struct{} {
	paths := make(map[string]struct{})
	var walk func(prefix string, fields []model.Field)
	walk = func(prefix string, fields []model.Field) {
		for _, field := range fields {
			name := strings.TrimSpace(field.Name)
			if name == "" {
				continue
			}
			path := name
			if prefix != "" {
				path = prefix + "." + name
			}
			paths[path] = struct{}{}
			walk(path, field.Nested)
			if field.Items != nil {
				walk(path, field.Items.Nested)
			}
		}
	}
	walk("", fields)
	return paths
}

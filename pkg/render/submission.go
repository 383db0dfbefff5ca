package render

import (
	"fmt"
	"sort"
	"strings"
)

// HiddenInput is a name/value pair emitted as <input type="hidden"> right
// after the opening form tag, next to the _method override.
type HiddenInput struct {
	Name  string
	Value string
}

// Hidden returns a HiddenInput for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenInput {
	text := ""
	if value != nil {
		text = fmt.Sprint(value)
	}
	return HiddenInput{Name: strings.TrimSpace(name), Value: text}
}

// CSRFToken carries a request forgery token. The name must match what the
// backend reads, e.g. "_csrf".
func CSRFToken(name, token string) HiddenInput {
	return Hidden(name, token)
}

// VersionField carries a record version for optimistic locking.
func VersionField(name string, version any) HiddenInput {
	return Hidden(name, version)
}

// MergeHiddenInputs copies base and applies inputs on top. Blank names are
// dropped; later inputs win.
func MergeHiddenInputs(base map[string]string, inputs ...HiddenInput) map[string]string {
	out := make(map[string]string, len(base)+len(inputs))
	for name, value := range base {
		if key := strings.TrimSpace(name); key != "" {
			out[key] = value
		}
	}
	for _, input := range inputs {
		if key := strings.TrimSpace(input.Name); key != "" {
			out[key] = input.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenInputs returns inputs ordered by name. The _method override is
// owned by the form and skipped here.
func SortedHiddenInputs(inputs map[string]string) []HiddenInput {
	names := make([]string, 0, len(inputs))
	clean := make(map[string]string, len(inputs))
	for name, value := range inputs {
		key := strings.TrimSpace(name)
		if key == "" || key == MethodParam {
			continue
		}
		if _, dup := clean[key]; !dup {
			names = append(names, key)
		}
		clean[key] = value
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	out := make([]HiddenInput, len(names))
	for idx, name := range names {
		out[idx] = HiddenInput{Name: name, Value: clean[name]}
	}
	return out
}

// MethodParam is the hidden input that carries verbs other than GET and POST.
const MethodParam = "_method"

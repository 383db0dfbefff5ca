package model

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// ExtensionNamespace is the OpenAPI vendor extension carrying field hints.
const ExtensionNamespace = "x-formgen"

// UI hint keys understood by the Bootstrap renderer.
const (
	HintLabel         = "label"
	HintHint          = "hint"
	HintHelpText      = "helpText"
	HintPlaceholder   = "placeholder"
	HintWidget        = "widget"
	HintInputType     = "inputType"
	HintCSSClass      = "cssClass"
	HintHideLabel     = "hideLabel"
	HintInline        = "inline"
	HintTemplate      = "template"
	HintInputTemplate = "inputTemplate"
	HintAddonPrepend  = "addon.prepend"
	HintAddonAppend   = "addon.append"
	HintAddonButton   = "addon.button"
	HintEnumLabels    = "enumLabels"
	HintPrompt        = "prompt"
	HintRows          = "rows"
	HintSubmitLabel   = "submitLabel"
	HintLayout        = "layout"

	// Form-level horizontal grid classes.
	HintLayoutLabel   = "layout.label"
	HintLayoutWrapper = "layout.wrapper"
	HintLayoutOffset  = "layout.offset"
)

var (
	uiHintKeys = []string{
		HintAddonAppend,
		HintAddonButton,
		HintAddonPrepend,
		HintCSSClass,
		HintEnumLabels,
		HintHelpText,
		HintHideLabel,
		HintHint,
		HintInline,
		HintInputTemplate,
		HintInputType,
		HintLabel,
		HintLayout,
		HintLayoutLabel,
		HintLayoutOffset,
		HintLayoutWrapper,
		HintPlaceholder,
		HintPrompt,
		HintRows,
		HintSubmitLabel,
		HintTemplate,
		HintWidget,
	}

	uiHintKeySet = func(keys []string) map[string]struct{} {
		result := make(map[string]struct{}, len(keys))
		for _, key := range keys {
			result[key] = struct{}{}
		}
		return result
	}(uiHintKeys)
)

// AllowedUIHintKeys returns a sorted copy of the recognised UI hint keys.
func AllowedUIHintKeys() []string {
	keys := append([]string(nil), uiHintKeys...)
	sort.Strings(keys)
	return keys
}

// IsAllowedUIHintKey reports whether key participates in the UI hint contract.
func IsAllowedUIHintKey(key string) bool {
	_, ok := uiHintKeySet[key]
	return ok
}

// ParseUIExtensions extracts metadata and UI hints from `x-formgen` (nested
// map) and `x-formgen-<key>` (flat) extensions. Nested maps under "addon" are
// flattened into dotted keys. Nil maps are returned when nothing applies.
func ParseUIExtensions(ext map[string]any) (map[string]string, map[string]string) {
	if len(ext) == 0 {
		return nil, nil
	}

	metadata := make(map[string]string)
	for key, value := range ext {
		switch {
		case key == ExtensionNamespace:
			nested, ok := value.(map[string]any)
			if !ok {
				continue
			}
			for nestedKey, nestedValue := range nested {
				collectExtension(metadata, nestedKey, nestedValue)
			}
		case strings.HasPrefix(key, ExtensionNamespace+"-"):
			collectExtension(metadata, strings.TrimPrefix(key, ExtensionNamespace+"-"), value)
		}
	}
	if len(metadata) == 0 {
		return nil, nil
	}

	hints := make(map[string]string)
	for key, value := range metadata {
		if IsAllowedUIHintKey(key) {
			hints[key] = value
		}
	}
	if len(hints) == 0 {
		hints = nil
	}
	return metadata, hints
}

func collectExtension(dest map[string]string, key string, value any) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	if key == "addon" || key == HintLayout {
		if nested, ok := value.(map[string]any); ok {
			for nestedKey, nestedValue := range nested {
				if str, ok := CanonicalizeExtensionValue(nestedValue); ok {
					dest[key+"."+nestedKey] = str
				}
			}
			return
		}
	}
	if str, ok := CanonicalizeExtensionValue(value); ok {
		dest[key] = str
	}
}

// CanonicalizeExtensionValue turns an extension value into a deterministic
// string. Maps and slices are JSON encoded. Returns false for empty or
// unsupported values.
func CanonicalizeExtensionValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 64), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case map[string]any, map[string]string, []any, []string:
		payload, err := json.Marshal(v)
		if err != nil || string(payload) == "{}" || string(payload) == "[]" || string(payload) == "null" {
			return "", false
		}
		return string(payload), true
	case interface{ String() string }:
		s := v.String()
		if s == "" {
			return "", false
		}
		return s, true
	default:
		return "", false
	}
}

// EnumLabels decodes the enumLabels hint, a JSON object mapping enum values
// to display labels.
func (f Field) EnumLabels() map[string]string {
	raw := f.Hint(HintEnumLabels)
	if raw == "" {
		return nil
	}
	var labels map[string]string
	if err := json.Unmarshal([]byte(raw), &labels); err != nil {
		return nil
	}
	return labels
}

// BoolHint reports whether the hint for key parses as true.
func (f Field) BoolHint(key string) bool {
	value, err := strconv.ParseBool(f.Hint(key))
	return err == nil && value
}

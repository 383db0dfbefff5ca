package widgets

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-formfield/pkg/model"
)

// Built-in widget identifiers. Each maps onto one Field input method of the
// bootstrap package.
const (
	WidgetText         = "text"
	WidgetTextarea     = "textarea"
	WidgetPassword     = "password"
	WidgetEmail        = "email"
	WidgetURL          = "url"
	WidgetNumber       = "number"
	WidgetDate         = "date"
	WidgetDateTime     = "datetime-local"
	WidgetCheckbox     = "checkbox"
	WidgetSelect       = "select"
	WidgetRadioList    = "radio-list"
	WidgetCheckboxList = "checkbox-list"
	WidgetListBox      = "listbox"
	WidgetHidden       = "hidden"
	WidgetFile         = "file"
	WidgetStatic       = "static"
)

// Strings longer than this limit resolve to a textarea.
const textareaThreshold = 255

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// NewEmptyRegistry constructs a registry without matchers; only explicit
// hints resolve.
func NewEmptyRegistry() *Registry {
	return &Registry{}
}

// Register adds a matcher with the provided name and priority. The latest
// registration wins among duplicate names of equal priority only by order.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. Explicit hints (the widget
// hint, widget metadata, then the inputType hint) are honoured before
// matchers run.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	if len(rules) == 0 {
		return "", false
	}
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator: every field, nested fields included,
// gets UIHints["widget"] and Metadata["widget"] set to the resolved widget
// unless already present.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil {
		return nil
	}
	form.Fields = r.decorateFields(form.Fields)
	return nil
}

func (r *Registry) decorateFields(fields []model.Field) []model.Field {
	if len(fields) == 0 {
		return fields
	}
	decorated := make([]model.Field, len(fields))
	for idx, field := range fields {
		decorated[idx] = r.decorateField(field)
	}
	return decorated
}

func (r *Registry) decorateField(field model.Field) model.Field {
	if len(field.Nested) > 0 {
		field.Nested = r.decorateFields(field.Nested)
	}
	if field.Type == model.FieldTypeObject && len(field.Nested) > 0 {
		return field
	}
	widget, ok := r.Resolve(field)
	if !ok || widget == "" {
		return field
	}
	if field.Metadata == nil {
		field.Metadata = make(map[string]string)
	}
	if field.Metadata[model.HintWidget] == "" {
		field.Metadata[model.HintWidget] = widget
	}
	if field.UIHints == nil {
		field.UIHints = make(map[string]string)
	}
	if field.UIHints[model.HintWidget] == "" {
		field.UIHints[model.HintWidget] = widget
	}
	return field
}

func explicitWidget(field model.Field) string {
	if widget := field.Hint(model.HintWidget); widget != "" {
		return widget
	}
	if field.Metadata != nil {
		if widget := strings.TrimSpace(field.Metadata[model.HintWidget]); widget != "" {
			return widget
		}
	}
	return field.Hint(model.HintInputType)
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetCheckbox, 90, func(field model.Field) bool {
		return field.Type == model.FieldTypeBoolean
	})

	r.Register(WidgetCheckboxList, 80, func(field model.Field) bool {
		if field.Type != model.FieldTypeArray {
			return false
		}
		return len(field.Enum) > 0 || (field.Items != nil && len(field.Items.Enum) > 0)
	})

	r.Register(WidgetSelect, 70, func(field model.Field) bool {
		if field.Type == model.FieldTypeArray || field.Type == model.FieldTypeObject {
			return false
		}
		return len(field.Enum) > 0
	})

	r.Register(WidgetFile, 65, formatMatcher("binary"))
	r.Register(WidgetPassword, 60, formatMatcher("password"))
	r.Register(WidgetEmail, 58, formatMatcher("email", "idn-email"))
	r.Register(WidgetURL, 56, formatMatcher("uri", "url"))
	r.Register(WidgetDate, 55, formatMatcher("date"))
	r.Register(WidgetDateTime, 54, formatMatcher("date-time"))

	r.Register(WidgetTextarea, 50, func(field model.Field) bool {
		if field.Type != model.FieldTypeString {
			return false
		}
		format := strings.ToLower(strings.TrimSpace(field.Format))
		if format == "textarea" || format == "markdown" || format == "html" {
			return true
		}
		rule, ok := field.Rule(model.ValidationRuleMaxLength)
		if !ok {
			return false
		}
		limit, err := strconv.Atoi(rule.Params["value"])
		return err == nil && limit > textareaThreshold
	})

	r.Register(WidgetNumber, 40, func(field model.Field) bool {
		return field.Type == model.FieldTypeInteger || field.Type == model.FieldTypeNumber
	})
}

func formatMatcher(formats ...string) Matcher {
	return func(field model.Field) bool {
		if field.Type != model.FieldTypeString && field.Type != "" {
			return false
		}
		format := strings.ToLower(strings.TrimSpace(field.Format))
		for _, candidate := range formats {
			if format == candidate {
				return true
			}
		}
		return false
	}
}

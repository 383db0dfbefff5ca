// Package validation checks submitted values against the rules a form model
// carries (required, bounds, lengths, patterns, enums). Results are keyed by
// dotted field path so they can be passed straight to RenderOptions.Errors.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/goliatone/go-formfield/pkg/model"
)

// Rule names reported in Issue.Rule besides the model.ValidationRule kinds.
const (
	RuleRequired = "required"
	RuleType     = "type"
	RuleEnum     = "enum"
)

// Issue is one failed rule.
type Issue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Result captures the validation outcome of one submission.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Errors groups issue messages by field path.
func (r Result) Errors() map[string][]string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, issue := range r.Issues {
		out[issue.Field] = append(out[issue.Field], issue.Message)
	}
	return out
}

var patterns sync.Map

// Validate checks values against every leaf field of form. Empty optional
// values skip the remaining rules.
func Validate(form model.FormModel, values map[string]any) Result {
	result := Result{Valid: true}
	for _, field := range model.Flatten(form.Fields) {
		for _, issue := range validateField(field, values) {
			result.Valid = false
			result.Issues = append(result.Issues, issue)
		}
	}
	return result
}

func validateField(field model.Field, values map[string]any) []Issue {
	label := field.DisplayLabel()
	fail := func(rule, message string) []Issue {
		return []Issue{{Field: field.Name, Rule: rule, Message: label + " " + message}}
	}

	raw, present := model.LookupValue(values, field.Name)
	if field.Type == model.FieldTypeArray {
		selected := nonEmpty(model.StringValues(raw))
		if len(selected) == 0 {
			if field.Required {
				return fail(RuleRequired, "cannot be blank.")
			}
			return nil
		}
		if field.Items != nil && len(field.Items.Enum) > 0 {
			for _, value := range selected {
				if !inEnum(field.Items.Enum, value) {
					return fail(RuleEnum, "is invalid.")
				}
			}
		}
		return nil
	}

	value := strings.TrimSpace(model.StringValue(raw))
	if !present || value == "" {
		if field.Required {
			return fail(RuleRequired, "cannot be blank.")
		}
		return nil
	}

	switch field.Type {
	case model.FieldTypeInteger:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return fail(RuleType, "must be an integer.")
		}
	case model.FieldTypeNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fail(RuleType, "must be a number.")
		}
	}
	if len(field.Enum) > 0 && !inEnum(field.Enum, value) {
		return fail(RuleEnum, "is invalid.")
	}

	var issues []Issue
	for _, rule := range field.Validations {
		if message, ok := check(rule, value); !ok {
			issues = append(issues, Issue{Field: field.Name, Rule: rule.Kind, Message: label + " " + message})
		}
	}
	return issues
}

func check(rule model.ValidationRule, value string) (string, bool) {
	limit := rule.Params["value"]
	switch rule.Kind {
	case model.ValidationRuleMin, model.ValidationRuleMax:
		bound, err := strconv.ParseFloat(limit, 64)
		number, numErr := strconv.ParseFloat(value, 64)
		if err != nil || numErr != nil {
			return "", true
		}
		if rule.Kind == model.ValidationRuleMin && number < bound {
			return "must be no less than " + limit + ".", false
		}
		if rule.Kind == model.ValidationRuleMax && number > bound {
			return "must be no greater than " + limit + ".", false
		}
	case model.ValidationRuleMinLength, model.ValidationRuleMaxLength:
		bound, err := strconv.Atoi(limit)
		if err != nil {
			return "", true
		}
		length := utf8.RuneCountInString(value)
		if rule.Kind == model.ValidationRuleMinLength && length < bound {
			return "should contain at least " + limit + " characters.", false
		}
		if rule.Kind == model.ValidationRuleMaxLength && length > bound {
			return "should contain at most " + limit + " characters.", false
		}
	case model.ValidationRulePattern:
		re, err := compile(rule.Params["pattern"])
		if err != nil || !re.MatchString(value) {
			return "is invalid.", false
		}
	}
	return "", true
}

func compile(pattern string) (*regexp.Regexp, error) {
	if cached, ok := patterns.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patterns.Store(pattern, re)
	return re, nil
}

func inEnum(enum []any, value string) bool {
	for _, option := range enum {
		if model.StringValue(option) == value {
			return true
		}
	}
	return false
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			out = append(out, value)
		}
	}
	return out
}

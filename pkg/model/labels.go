package model

import (
	"regexp"
	"strings"
	"unicode"
)

var wordSeparators = regexp.MustCompile(`[_\-.\s]+`)

// DefaultLabeler turns an attribute name into a label: "first_name" and
// "firstName" both become "First Name". Dotted paths use their last segment.
func DefaultLabeler(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	if name == "" {
		return ""
	}

	var words []string
	for _, chunk := range wordSeparators.Split(name, -1) {
		for _, word := range splitCamel(chunk) {
			words = append(words, capitalize(word))
		}
	}
	return strings.Join(words, " ")
}

// splitCamel breaks "userID2fa" into "user", "ID", "2", "fa".
func splitCamel(input string) []string {
	if input == "" {
		return nil
	}
	runes := []rune(input)
	var (
		words []string
		start int
	)
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := (unicode.IsLower(prev) && unicode.IsUpper(cur)) ||
			(unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
			(unicode.IsDigit(prev) && unicode.IsLetter(cur)) ||
			(unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]))
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	return append(words, string(runes[start:]))
}

func capitalize(word string) string {
	if word == "" {
		return ""
	}
	runes := []rune(word)
	if allUpper(runes) && len(runes) > 1 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func allUpper(runes []rune) bool {
	for _, r := range runes {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func trim(value string) string {
	return strings.TrimSpace(value)
}

// DisplayLabel returns the label a control shows: the label hint, then the
// field label, then a label generated from the attribute name.
func (f Field) DisplayLabel() string {
	if label := f.Hint(HintLabel); label != "" {
		return label
	}
	if label := trim(f.Label); label != "" {
		return label
	}
	return DefaultLabeler(f.Name)
}

// HintText returns the help text rendered under a control.
func (f Field) HintText() string {
	if hint := f.Hint(HintHint); hint != "" {
		return hint
	}
	if hint := f.Hint(HintHelpText); hint != "" {
		return hint
	}
	return trim(f.Description)
}

// PlaceholderText returns the placeholder hint or the field placeholder.
func (f Field) PlaceholderText() string {
	if placeholder := f.Hint(HintPlaceholder); placeholder != "" {
		return placeholder
	}
	return trim(f.Placeholder)
}

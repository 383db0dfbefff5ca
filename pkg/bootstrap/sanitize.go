package bootstrap

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// sanitizeMarkup cleans caller supplied HTML (explicit labels, hints, addon
// content) down to inline formatting, icons and buttons.
func sanitizeMarkup(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return markupSanitizer().Sanitize(raw)
}

func markupSanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowElements("span", "i", "small", "button")
		policy.AllowAttrs("class", "title", "aria-hidden").Globally()
		policy.AllowAttrs("type").OnElements("button")
		markupPolicy = policy
	})
	return markupPolicy
}

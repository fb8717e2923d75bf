package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

// sanitizeHelpMarkup reduces descriptor help text to a small inline-markup
// subset. Help text is operator-authored, not end-user input, but it still
// travels through descriptor files and must not smuggle script into forms.
func sanitizeHelpMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	policy := helpSanitizer()
	cleaned := strings.TrimSpace(policy.Sanitize(trimmed))
	if cleaned == "" {
		return ""
	}
	return cleaned
}

func helpSanitizer() *bluemonday.Policy {
	helpPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "i", "em", "strong", "code", "br")
		policy.AllowAttrs("href", "title").OnElements("a")
		policy.AllowURLSchemes("http", "https", "mailto")
		policy.RequireNoFollowOnLinks(true)

		helpPolicy = policy
	})
	return helpPolicy
}

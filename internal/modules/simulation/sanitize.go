package simulation

import (
	"regexp"
	"strings"
)

var (
	tagPattern          = regexp.MustCompile(`<[^>]*>`)
	eventHandlerPattern = regexp.MustCompile(`(?i)\bon\w+\s*=`)
	newlineRunPattern   = regexp.MustCompile(`\n{3,}`)
)

// sanitizeText strips markup and dangerous characters from a free-text field.
// Applied to every text input before validation, so stored and echoed values
// never contain HTML.
func sanitizeText(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	s = tagPattern.ReplaceAllString(s, "")
	s = eventHandlerPattern.ReplaceAllString(s, "")

	// Quote and ampersand characters have no legitimate use in property
	// names or memos and break naive downstream templating.
	s = strings.NewReplacer(`"`, "", "'", "", "`", "", "&", "").Replace(s)

	s = newlineRunPattern.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}

// containsHTML reports whether the raw value carried markup, for strict-mode
// rejection.
func containsHTML(s string) bool {
	return tagPattern.MatchString(s) || eventHandlerPattern.MatchString(s)
}

// validURLScheme accepts only plain web URLs. Everything else, including
// javascript: and data: schemes, is refused.
func validURLScheme(url string) bool {
	lower := strings.ToLower(strings.TrimSpace(url))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

package script

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	displayPolicyOnce sync.Once
	displayPolicy     *bluemonday.Policy
)

// SanitizeDisplayName strips markup and double quotes from an in-game name so
// it can sit inside a quoted translation string. Whitespace runs collapse to
// single spaces.
func SanitizeDisplayName(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := html.UnescapeString(displaySanitizer().Sanitize(trimmed))
	cleaned = strings.ReplaceAll(cleaned, `"`, "")
	return strings.Join(strings.Fields(cleaned), " ")
}

func displaySanitizer() *bluemonday.Policy {
	displayPolicyOnce.Do(func() {
		displayPolicy = bluemonday.StrictPolicy()
	})
	return displayPolicy
}

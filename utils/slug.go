package utils

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
var dashRuns = regexp.MustCompile(`-+`)

// NormalizeSlug turns free text into the URL-safe token used for public
// booking links: lower-case, any run of characters outside [a-z0-9-] becomes a
// single dash, leading and trailing dashes are trimmed.
func NormalizeSlug(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

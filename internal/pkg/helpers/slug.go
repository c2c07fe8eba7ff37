package helpers

import (
	"regexp"
	"strings"
)

var slugRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a display name to a URL-safe slug: lowercase, hyphens for
// runs of anything non-alphanumeric, no leading or trailing hyphens.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = slugRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

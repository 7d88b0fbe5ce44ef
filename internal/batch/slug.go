package batch

import (
	"regexp"
	"strings"
)

const maxSlugLength = 80

var (
	slugDropRe     = regexp.MustCompile(`[^a-z0-9_-]`)
	slugCollapseRe = regexp.MustCompile(`[_-]+`)
)

// SafeSlug derives a filesystem-safe directory name from free-form text
// such as an email address or a full name.
func SafeSlug(text string) string {
	slug := strings.ToLower(text)
	slug = strings.ReplaceAll(slug, " ", "_")
	slug = slugDropRe.ReplaceAllString(slug, "")
	slug = slugCollapseRe.ReplaceAllString(slug, "_")
	slug = strings.Trim(slug, "_-")

	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "_-")
	}

	if slug == "" {
		return "unknown"
	}
	return slug
}

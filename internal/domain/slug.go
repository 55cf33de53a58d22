package domain

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// SlugMaxLength is the maximum length of the text portion of a slug.
const SlugMaxLength = 50

// SlugFallback is used when the source text produces an empty slug.
const SlugFallback = "seed"

// Slugify converts text into a URL-safe slug:
//   - lowercases and trims
//   - strips characters outside [word chars, whitespace, hyphen]
//   - collapses whitespace/underscore runs into single hyphens
//   - trims leading/trailing hyphens
//   - truncates to maxLength, re-trimming hyphens exposed by truncation
//
// An empty result is returned as-is; callers fall back to SlugFallback.
func Slugify(text string, maxLength int) string {
	text = strings.ToLower(strings.TrimSpace(text))

	var b strings.Builder
	b.Grow(len(text))
	pendingHyphen := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r) || r == '_':
			if b.Len() > 0 {
				pendingHyphen = true
			}
		case r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen {
				b.WriteByte('-')
				pendingHyphen = false
			}
			b.WriteRune(r)
		}
	}

	slug := strings.Trim(b.String(), "-")
	if maxLength > 0 && len(slug) > maxLength {
		slug = strings.TrimRight(slug[:maxLength], "-")
	}
	return slug
}

// SlugPrefix returns the first 7 characters of the entity id, the namespace
// portion of a slug. Prefix collisions are accepted as vanishingly unlikely
// for a single user's entity counts and are not detected.
func SlugPrefix(id uuid.UUID) string {
	return id.String()[:7]
}

// BuildSlug combines the id prefix and slugified content into the base slug
// form "prefix/text". Content is cut to SlugMaxLength before slugifying.
func BuildSlug(id uuid.UUID, content string) string {
	text := content
	if len(text) > SlugMaxLength {
		text = text[:SlugMaxLength]
	}
	slug := Slugify(text, SlugMaxLength)
	if slug == "" {
		slug = SlugFallback
	}
	return SlugPrefix(id) + "/" + slug
}

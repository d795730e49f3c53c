package store

import (
	"strings"

	"github.com/google/uuid"
)

// Maximum field lengths enforced before any row is written. They mirror the
// column definitions in the initial migration.
const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
)

// IsValidID reports whether id is a well-formed UUID.
func IsValidID(id string) bool {
	if id == "" {
		return false
	}
	return uuid.Validate(id) == nil
}

// NormalizeTagName canonicalizes a tag name: trimmed and lowercased.
// Tags are case-insensitive; "Go", "go " and "GO" are the same tag.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeTagNames canonicalizes and de-duplicates a set of tag names,
// dropping entries that are empty after trimming. Order of first occurrence
// is preserved.
func NormalizeTagNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		n := NormalizeTagName(name)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// NormalizeLanguage canonicalizes a programming-language label.
func NormalizeLanguage(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}

// Package catalog normalizes reference-item names returned by the backend
// (country, state, and lake names) into stable slugs for identity keys and
// reference-image paths.
package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemoveDiacritics removes diacritical marks from a string (e.g., "São Tomé" -> "Sao Tome").
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// Slug normalizes a reference-item name for use in file paths and lookups
// (lowercase, diacritics stripped, separators collapsed to underscores).
func Slug(name string) string {
	name = RemoveDiacritics(name)
	name = strings.ToLower(name)

	var b strings.Builder
	lastUnderscore := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// ReferenceImagePath builds the relative path of a reference silhouette
// image for a category and item name, matching the backend's data layout.
func ReferenceImagePath(categoryID, itemName string) string {
	return categoryID + "/" + Slug(itemName) + ".png"
}

package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	multiHyphen  = regexp.MustCompile(`-+`)
)

// GenerateSlug derives a lowercase, URL-safe slug from a title.
// "Hello, World! v2" → "hello-world-v2"
func GenerateSlug(input string) string {
	ascii := RemoveDiacritics(input)

	lower := strings.ToLower(ascii)

	hyphenated := strings.ReplaceAll(lower, " ", "-")

	// Keep only a-z, 0-9 and hyphens
	cleaned := nonSlugChars.ReplaceAllString(hyphenated, "")

	// Collapse consecutive hyphens left behind by stripped characters
	normalized := multiHyphen.ReplaceAllString(cleaned, "-")

	return strings.Trim(normalized, "-")
}

// RemoveDiacritics folds accented characters to their ASCII base form
// ("Café São" → "Cafe Sao") by decomposing and dropping combining marks.
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return result
}

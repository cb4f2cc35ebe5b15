// Package normalize provides utilities for normalizing and sanitizing names.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Matches any non-alphanumeric character.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// Matches multiple hyphens.
	multipleHyphens = regexp.MustCompile(`-+`)
)

// Name cleans a display name: NFC composed, null bytes dropped, inner
// whitespace collapsed to single spaces, ends trimmed.
func Name(s string) string {
	s = norm.NFC.String(sanitizeString(s))
	return strings.Join(strings.Fields(s), " ")
}

// Key converts a name to the key used for uniqueness and lookups.
// "Crème Brûlée" -> "creme-brulee".
// "  Greek  " -> "greek".
// "Sweet & Sour Pork" -> "sweet-sour-pork".
func Key(s string) string {
	// Normalize unicode (decompose accented characters).
	s = norm.NFKD.String(sanitizeString(s))

	// Remove non-ASCII characters.
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = multipleHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Phone keeps digits and a leading plus sign.
func Phone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for i, r := range s {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sanitizeString removes null bytes, which cause issues in databases and JSON.
func sanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, s)
}

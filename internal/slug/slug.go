// Package slug turns titles into URL-safe identifiers.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength is the stored width of a slug column.
const MaxLength = 250

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// From lowercases s, folds accented letters to ASCII, replaces every run of
// non-alphanumeric characters with a single hyphen and trims hyphens from
// both ends. "The Hobbit" becomes "the-hobbit".
func From(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	result := nonAlphanumeric.ReplaceAllString(strings.ToLower(folded), "-")
	result = strings.Trim(result, "-")

	if len(result) > MaxLength {
		result = strings.TrimRight(result[:MaxLength], "-")
	}
	return result
}

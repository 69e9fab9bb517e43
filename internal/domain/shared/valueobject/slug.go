package valueobject

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)
	slugPattern      = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	// NFD decomposition followed by removal of combining marks folds
	// diacritics to their base letters ("Café" -> "Cafe").
	slugFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify derives a URL-safe slug from a name: diacritics folded, lowered,
// non-alphanumeric runs collapsed to single hyphens. Returns "" when nothing
// usable remains.
func Slugify(name string) string {
	folded, _, err := transform.String(slugFolder, name)
	if err != nil {
		folded = name
	}
	s := strings.ToLower(folded)
	s = slugInvalidChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsValidSlug reports whether s is a well-formed slug
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

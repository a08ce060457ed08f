// Package slug turns titles into URL-safe identifiers.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	invalidChars = regexp.MustCompile(`[^\w\s-]`)
	separators   = regexp.MustCompile(`[-\s]+`)
)

// Make returns the lowercased, hyphenated ASCII form of s.
// Accented letters lose their marks ("Crème brûlée" -> "creme-brulee"),
// other non-ASCII characters are dropped. Make(Make(s)) == Make(s).
func Make(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), runes.Remove(runes.Predicate(isNotASCII)))
	ascii, _, err := transform.String(t, s)
	if err != nil {
		ascii = s
	}

	ascii = invalidChars.ReplaceAllString(strings.ToLower(ascii), "")
	ascii = separators.ReplaceAllString(ascii, "-")
	return strings.Trim(ascii, "-_")
}

// WithSuffix appends the numeric collision suffix used for duplicate slugs.
func WithSuffix(base string, n int) string {
	if n <= 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}

func isNotASCII(r rune) bool {
	return r > unicode.MaxASCII
}

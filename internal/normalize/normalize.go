package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	unitAnnotationRe = regexp.MustCompile(`\s*[(\[][^)\]]*[)\]]`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
	slashSpacingRe   = regexp.MustCompile(`\s*/\s*`)

	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Key canonicalizes a raw commodity name into a lookup key: trims, drops
// parenthesized/bracketed unit annotations such as "(Rp/Kg)", folds
// diacritics, lower-cases and collapses whitespace ("a / b" becomes "a/b").
// Whitespace-only input yields "", which never matches a catalog entry.
func Key(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// Unit annotations live in trailing parentheses or brackets.
	s = unitAnnotationRe.ReplaceAllString(s, " ")

	// Fold diacritics (é -> e) so spreadsheet typography never splits a name.
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}

	s = strings.ToLower(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = slashSpacingRe.ReplaceAllString(s, "/")
	return strings.TrimSpace(s)
}

// StripUnit removes a parenthesized/bracketed unit annotation but keeps the
// original casing. Used for the raw commodity names carried into reports.
func StripUnit(raw string) string {
	s := unitAnnotationRe.ReplaceAllString(raw, " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

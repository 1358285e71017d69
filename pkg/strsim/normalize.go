// Package strsim provides the string-similarity substrate for place
// reconciliation: normalization of free-text addresses, longest common
// subsequence/substring extraction, Levenshtein distance and ratio, a
// metric menu, and match-rating comparison for short tokens.
package strsim

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mozillazg/go-unidecode"
)

// DefaultKeywords are the tokens stripped during normalization. French
// postal routing suffixes ("cedex") carry no address information and
// break similarity scoring against API results; all three spellings are
// kept so caller-supplied lists behave identically on raw input.
var DefaultKeywords = []string{"cedex", "Cedex", "CEDEX"}

// charReplacements maps the accented and special characters seen in
// French address data. Order matters: replacements apply sequentially.
var charReplacements = []struct{ from, to string }{
	{"é", "e"}, {"è", "e"}, {"ê", "e"},
	{"à", "a"}, {"ù", "u"}, {"û", "u"},
	{"ç", "c"}, {"ô", "o"}, {"î", "i"}, {"ï", "i"}, {"â", "a"},
	{"-", " "}, {"*", " "}, {".", " "}, {"_", " "},
	{"{", ""}, {"}", ""}, {"!", ""},
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// CollapseWhitespace reduces runs of whitespace to single spaces and
// trims the ends.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// ReplaceCharacters substitutes accented vowels with their base form,
// turns separator punctuation into spaces and deletes brace/bang noise.
func ReplaceCharacters(s string) string {
	for _, r := range charReplacements {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	return s
}

// RemoveKeywords strips every occurrence of the given keywords and
// collapses the remaining whitespace. With no keywords supplied the
// default list applies. Single-rune inputs pass through untouched.
func RemoveKeywords(s string, keywords ...string) string {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	if utf8.RuneCountInString(s) > 1 {
		for _, kw := range keywords {
			if strings.Contains(s, kw) {
				s = strings.ReplaceAll(s, kw, "")
			}
		}
	}
	return CollapseWhitespace(s)
}

// Normalize lowercases, replaces accented and special characters,
// removes keyword noise and collapses whitespace. It is idempotent and
// side-effect free, and is applied to both sides of every similarity
// comparison in the pipeline.
func Normalize(s string) string {
	return RemoveKeywords(ReplaceCharacters(strings.ToLower(s)))
}

// Clean transliterates to ASCII, folds newlines and repeated spaces,
// strips surrounding quotes and lowercases. An empty result means the
// value was effectively missing.
func Clean(s string) string {
	c := unidecode.Unidecode(s)
	c = strings.ReplaceAll(c, "\n", " ")
	c = CollapseWhitespace(c)
	c = strings.Trim(c, `"'`)
	return strings.TrimSpace(strings.ToLower(c))
}

// Fold transliterates arbitrary text to its closest ASCII
// representation.
func Fold(s string) string {
	return unidecode.Unidecode(s)
}

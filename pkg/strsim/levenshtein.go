package strsim

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldChain = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// asciiFold decomposes to NFKD, strips combining marks and drops any
// rune still outside ASCII. Matches the comparison form used by the
// Levenshtein ratio.
func asciiFold(s string) string {
	folded, _, err := transform.String(foldChain, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Levenshtein returns the unit-cost edit distance between a and b along
// with the paired ratio (lenA+lenB-distance)/(lenA+lenB). Either input
// empty yields 0, 0 so callers never divide by zero. With fold set both
// inputs are reduced to ASCII before comparison.
func Levenshtein(a, b string, fold bool) (int, float64) {
	if a == "" || b == "" {
		return 0, 0
	}
	if fold {
		a = asciiFold(a)
		b = asciiFold(b)
	}
	sum := float64(utf8.RuneCountInString(a) + utf8.RuneCountInString(b))
	if sum == 0 {
		return 0, 0
	}
	d := levenshtein.ComputeDistance(a, b)
	return d, (sum - float64(d)) / sum
}

// Similarity scores two strings in [0, 1] after normalizing both sides.
// With lcs false the score is the plain Levenshtein ratio. With lcs
// true the longest common subsequence shared with the longer side is
// extracted and scored against the shorter side, which rewards
// truncated or partially qualified names: a short query fully contained
// in a longer official name scores 1.
func Similarity(left, right string, lcs bool) float64 {
	s1, s2 := Normalize(left), Normalize(right)
	if !lcs {
		_, ratio := Levenshtein(s1, s2, true)
		return ratio
	}
	if utf8.RuneCountInString(s1) > utf8.RuneCountInString(s2) {
		s1, s2 = s2, s1
	}
	extracted := LCSSubsequence(s1, s2).String
	_, ratio := Levenshtein(extracted, s1, true)
	return ratio
}

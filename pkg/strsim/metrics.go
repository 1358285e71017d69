package strsim

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/antzucaro/matchr"
	"github.com/rotisserie/eris"
	"github.com/xrash/smetrics"
)

// Supported Distance metrics.
const (
	MetricLevenshtein        = "levenshtein"
	MetricDamerauLevenshtein = "damerau-levenshtein"
	MetricHamming            = "hamming"
	MetricJaro               = "jaro"
	MetricJaroWinkler        = "jaro-winkler"
)

// Supported Match methods.
const (
	MethodMatchRating     = "match-rating"
	MethodDoubleMetaphone = "double-metaphone"
)

// Score pairs the compared label with its similarity ratio.
type Score struct {
	Label string
	Ratio float64
}

// Distance scores s1 against s2 under the named metric. With lcs set
// the longest common subsequence shared with s2 replaces s1 in the
// comparison, but edit-distance ratios keep using the original lengths
// so a short extraction cannot inflate the score. Jaro variants return
// their similarity directly.
func Distance(s1, s2, metric string, lcs bool) (Score, error) {
	s3 := s1
	if lcs {
		s3 = LCSSubsequence(s2, s1).String
	}
	length := float64(utf8.RuneCountInString(s1) + utf8.RuneCountInString(s2))

	var ratio float64
	switch metric {
	case MetricLevenshtein:
		ratio = editRatio(length, levenshtein.ComputeDistance(s3, s2))
	case MetricDamerauLevenshtein:
		ratio = editRatio(length, matchr.DamerauLevenshtein(s3, s2))
	case MetricHamming:
		d, err := hamming(s3, s2)
		if err != nil {
			return Score{}, err
		}
		ratio = editRatio(length, d)
	case MetricJaro:
		ratio = smetrics.Jaro(s3, s2)
	case MetricJaroWinkler:
		ratio = smetrics.JaroWinkler(s3, s2, 0.7, 4)
	default:
		return Score{}, eris.Errorf("strsim: unknown distance metric %q", metric)
	}
	return Score{Label: s1, Ratio: ratio}, nil
}

// Match reports whether two strings agree under a phonetic comparison.
// With lcs set the longest common subsequence shared with s2 replaces
// s1, so a name buried inside a longer string can still match.
func Match(s1, s2, method string, lcs bool) (bool, error) {
	s3 := s1
	if lcs {
		s3 = LCSSubsequence(s2, s1).String
	}
	switch method {
	case MethodMatchRating:
		return MatchRating(s3, s2), nil
	case MethodDoubleMetaphone:
		p1, alt1 := matchr.DoubleMetaphone(s3)
		p2, alt2 := matchr.DoubleMetaphone(s2)
		if p1 == "" && p2 == "" {
			return false, nil
		}
		return p1 == p2 || p1 == alt2 || alt1 == p2, nil
	default:
		return false, eris.Errorf("strsim: unknown match method %q", method)
	}
}

func editRatio(length float64, d int) float64 {
	if length == 0 {
		return 0
	}
	return (length - float64(d)) / length
}

// hamming tolerates unequal lengths: the aligned prefix is scored by
// the usual Hamming distance and the overhang counts one edit per rune.
func hamming(a, b string) (int, error) {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	overhang := len(rb) - len(ra)
	if len(ra) == 0 {
		return overhang, nil
	}
	d, err := smetrics.Hamming(string(ra), string(rb[:len(ra)]))
	if err != nil {
		return 0, eris.Wrap(err, "strsim: hamming")
	}
	return d + overhang, nil
}

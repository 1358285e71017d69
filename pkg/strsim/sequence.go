package strsim

import "strings"

// BuildSequence joins the non-empty parts with single spaces and runs
// the result through the full cleaning chain, yielding a query string
// ready for geocoding.
func BuildSequence(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	return RemoveKeywords(ReplaceCharacters(Clean(b.String())))
}

// MostFrequent returns the value occurring most often. The value seen
// first wins ties, so the result is stable for equally common inputs.
func MostFrequent(values []string) string {
	counts := make(map[string]int, len(values))
	best, bestCount := "", 0
	for _, v := range values {
		counts[v]++
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

// LongestMatch extracts the longest common substring of every
// consecutive pair and returns the most frequent extraction. Useful for
// recovering the shared trade name from a batch of noisy store labels.
func LongestMatch(values []string) string {
	if len(values) < 2 {
		if len(values) == 1 {
			return values[0]
		}
		return ""
	}
	matches := make([]string, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		matches = append(matches, LCSSubstring(values[i-1], values[i]).String)
	}
	return MostFrequent(matches)
}

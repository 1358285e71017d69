package strsim

import "strings"

// matchRatingCodex encodes a token to its match-rating skeleton: ASCII
// uppercase, first letter kept, later vowels dropped, consecutive
// duplicate consonants collapsed, and encodings longer than six reduced
// to their first and last three letters. Non-letters are ignored.
func matchRatingCodex(s string) string {
	s = strings.ToUpper(Fold(s))
	out := make([]byte, 0, len(s))
	var prev byte
	first := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			continue
		}
		vowel := c == 'A' || c == 'E' || c == 'I' || c == 'O' || c == 'U'
		if first || (!vowel && c != prev) {
			out = append(out, c)
		}
		first = false
		prev = c
	}
	if len(out) > 6 {
		out = append(out[:3:3], out[len(out)-3:]...)
	}
	return string(out)
}

// MatchRating compares two tokens under the match rating approach.
// Encodings differing in length by three or more are never a match.
// Otherwise identical characters are cancelled position by position,
// the residues are compared right-aligned, and the resulting rating
// must reach the minimum implied by the combined encoding length.
func MatchRating(a, b string) bool {
	c1, c2 := matchRatingCodex(a), matchRatingCodex(b)
	if c1 == "" || c2 == "" {
		return false
	}
	diff := len(c1) - len(c2)
	if diff < 0 {
		diff = -diff
	}
	if diff >= 3 {
		return false
	}

	var minRating int
	switch sum := len(c1) + len(c2); {
	case sum <= 4:
		minRating = 5
	case sum <= 7:
		minRating = 4
	case sum <= 11:
		minRating = 3
	default:
		minRating = 2
	}

	longer, shorter := c1, c2
	if len(c2) > len(c1) {
		longer, shorter = c2, c1
	}
	var res1, res2 []byte
	for i := 0; i < len(longer); i++ {
		if i >= len(shorter) {
			res1 = append(res1, longer[i])
			continue
		}
		if longer[i] != shorter[i] {
			res1 = append(res1, longer[i])
			res2 = append(res2, shorter[i])
		}
	}

	var unmatched1, unmatched2 int
	for i, j := len(res1)-1, len(res2)-1; i >= 0 || j >= 0; i, j = i-1, j-1 {
		var x, y byte
		if i >= 0 {
			x = res1[i]
		}
		if j >= 0 {
			y = res2[j]
		}
		if x != y {
			if x != 0 {
				unmatched1++
			}
			if y != 0 {
				unmatched2++
			}
		}
	}
	worst := unmatched1
	if unmatched2 > worst {
		worst = unmatched2
	}
	return 6-worst >= minRating
}

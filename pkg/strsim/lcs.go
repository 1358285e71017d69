package strsim

// LCSResult carries both the length and the extracted string of a
// longest-common computation. String is whitespace-collapsed so it can
// feed directly into ratio scoring.
type LCSResult struct {
	Length int
	String string
}

// LCSSubsequence computes the longest common subsequence of a and b via
// the standard dynamic program and reads one witness back with the
// classic backtrack, preferring the earlier row on ties so the result
// is deterministic.
func LCSSubsequence(a, b string) LCSResult {
	ra, rb := []rune(a), []rune(b)
	m, n := len(ra), len(rb)

	table := make([][]int, m+1)
	for i := range table {
		table[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			switch {
			case ra[i-1] == rb[j-1]:
				table[i][j] = table[i-1][j-1] + 1
			case table[i-1][j] >= table[i][j-1]:
				table[i][j] = table[i-1][j]
			default:
				table[i][j] = table[i][j-1]
			}
		}
	}

	out := make([]rune, 0, table[m][n])
	for i, j := m, n; i > 0 && j > 0; {
		switch {
		case ra[i-1] == rb[j-1]:
			out = append(out, ra[i-1])
			i--
			j--
		case table[i-1][j] >= table[i][j-1]:
			i--
		default:
			j--
		}
	}
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return LCSResult{Length: table[m][n], String: CollapseWhitespace(string(out))}
}

// LCSSubstring computes the longest common contiguous substring. When
// several substrings share the maximal length the first one found in a
// wins. The extraction is taken from a.
func LCSSubstring(a, b string) LCSResult {
	ra, rb := []rune(a), []rune(b)
	m, n := len(ra), len(rb)

	table := make([][]int, m+1)
	for i := range table {
		table[i] = make([]int, n+1)
	}
	longest, end := 0, 0
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if ra[i-1] != rb[j-1] {
				continue
			}
			table[i][j] = table[i-1][j-1] + 1
			if table[i][j] > longest {
				longest = table[i][j]
				end = i
			}
		}
	}
	return LCSResult{Length: longest, String: CollapseWhitespace(string(ra[end-longest : end]))}
}

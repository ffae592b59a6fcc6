// Package engine implements the validation checks: identity, duplicate
// identity, fiscal-half quota completeness, LMS quota alignment, and
// on-leave-with-quota. Each check is a pure function of its inputs.
package engine

// levenshteinDistance computes the Levenshtein edit distance between two
// strings: the minimum number of single-character insertions, deletions,
// or substitutions transforming a into b.
func levenshteinDistance(a, b string) int {
	aRunes := []rune(a)
	bRunes := []rune(b)
	aLen := len(aRunes)
	bLen := len(bRunes)

	if aLen == 0 {
		return bLen
	}
	if bLen == 0 {
		return aLen
	}

	// Two rows instead of a full matrix; iterate over the shorter string
	// in the inner loop.
	if aLen > bLen {
		aRunes, bRunes = bRunes, aRunes
		aLen, bLen = bLen, aLen
	}

	prevRow := make([]int, aLen+1)
	currRow := make([]int, aLen+1)

	for i := 0; i <= aLen; i++ {
		prevRow[i] = i
	}

	for j := 1; j <= bLen; j++ {
		currRow[0] = j
		for i := 1; i <= aLen; i++ {
			cost := 1
			if aRunes[i-1] == bRunes[j-1] {
				cost = 0
			}

			deletion := prevRow[i] + 1
			insertion := currRow[i-1] + 1
			substitution := prevRow[i-1] + cost

			currRow[i] = min3(deletion, insertion, substitution)
		}
		prevRow, currRow = currRow, prevRow
	}

	return prevRow[aLen]
}

// similarity computes a normalized similarity score between two strings,
// from 0.0 (completely different) to 1.0 (identical).
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	aLen := len([]rune(a))
	bLen := len([]rune(b))

	maxLen := aLen
	if bLen > maxLen {
		maxLen = bLen
	}

	if maxLen == 0 {
		return 1.0
	}

	dist := levenshteinDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

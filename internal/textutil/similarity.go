package textutil

import "math"

// Similarity computes a normalized edit-distance similarity between two
// strings on a 0-100 scale. Both inputs are folded first. Identical folded
// strings score 100; any empty input scores 0, including two empty strings
// (callers rely on that to force a non-match when a field is absent).
// The result is symmetric and always within [0, 100].
func Similarity(a, b string) int {
	foldedA := []rune(Fold(a))
	foldedB := []rune(Fold(b))
	if len(foldedA) == 0 || len(foldedB) == 0 {
		return 0
	}
	if string(foldedA) == string(foldedB) {
		return 100
	}
	distance := editDistance(foldedA, foldedB)
	longest := len(foldedA)
	if len(foldedB) > longest {
		longest = len(foldedB)
	}
	return int(math.Round(100 * (1 - float64(distance)/float64(longest))))
}

// editDistance computes the Levenshtein distance with a full dynamic
// programming matrix. Quadratic in the input lengths, which is fine for
// titles and names.
func editDistance(a, b []rune) int {
	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			deletion := matrix[i-1][j] + 1
			insertion := matrix[i][j-1] + 1
			substitution := matrix[i-1][j-1] + cost

			best := deletion
			if insertion < best {
				best = insertion
			}
			if substitution < best {
				best = substitution
			}
			matrix[i][j] = best
		}
	}
	return matrix[len(a)][len(b)]
}

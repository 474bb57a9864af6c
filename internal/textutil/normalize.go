package textutil

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold trims surrounding whitespace and applies Unicode case folding.
// All comparisons in this package operate on folded strings.
func Fold(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return cases.Fold().String(value)
}

// Words splits a string into its folded whitespace-separated words.
func Words(value string) []string {
	return strings.Fields(Fold(value))
}

// WordOverlap returns the word-set overlap ratio between two strings:
// the number of shared distinct words divided by the size of the larger
// word set. Returns 0 when either side has no words.
func WordOverlap(a, b string) float64 {
	wordsA := Words(a)
	wordsB := Words(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}
	setA := make(map[string]struct{}, len(wordsA))
	for _, w := range wordsA {
		setA[w] = struct{}{}
	}
	setB := make(map[string]struct{}, len(wordsB))
	for _, w := range wordsB {
		setB[w] = struct{}{}
	}
	shared := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			shared++
		}
	}
	larger := len(setA)
	if len(setB) > larger {
		larger = len(setB)
	}
	return float64(shared) / float64(larger)
}

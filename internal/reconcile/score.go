package reconcile

import (
	"fmt"
	"math"
	"strings"

	"reelsync/internal/textutil"
)

// wordOverlapGate is the minimum word-set overlap ratio before a partial
// title contributes to the score.
const wordOverlapGate = 0.5

// Score computes the heuristic match score for pairing a log row with a
// library record, together with human-readable reasons. Within each
// dimension exactly one rule fires; dimensions are additive and the sum
// is unbounded.
func Score(canonical CanonicalRecord, external ExternalRecord) (int, []string) {
	score := 0
	var reasons []string

	externalTitle := textutil.Fold(external.Title)
	canonicalTitle := textutil.Fold(canonical.Title)
	switch {
	case externalTitle != "" && externalTitle == canonicalTitle:
		score += 100
		reasons = append(reasons, "Exact title match")
	case externalTitle != "" && canonicalTitle != "" &&
		(strings.Contains(externalTitle, canonicalTitle) || strings.Contains(canonicalTitle, externalTitle)):
		score += 80
		reasons = append(reasons, "Partial title match")
	default:
		if ratio := textutil.WordOverlap(external.Title, canonical.Title); ratio > wordOverlapGate {
			score += int(math.Floor(ratio * 60))
			reasons = append(reasons, fmt.Sprintf("Title word overlap %d%%", int(math.Round(ratio*100))))
		}
	}

	externalDirector := textutil.Fold(external.Director)
	canonicalDirector := textutil.Fold(canonical.Director)
	if externalDirector != "" && canonicalDirector != "" {
		switch {
		case externalDirector == canonicalDirector:
			score += 50
			reasons = append(reasons, "Exact director match")
		case strings.Contains(externalDirector, canonicalDirector) || strings.Contains(canonicalDirector, externalDirector):
			score += 30
			reasons = append(reasons, "Partial director match")
		}
	}

	if externalYear, ok := external.YearValue(); ok {
		if canonicalYear, ok := canonical.YearValue(); ok {
			diff := externalYear - canonicalYear
			if diff < 0 {
				diff = -diff
			}
			switch {
			case diff == 0:
				score += 30
				reasons = append(reasons, "Year match")
			case diff <= 1:
				score += 15
				reasons = append(reasons, "Year within one")
			}
		}
	}

	return score, reasons
}

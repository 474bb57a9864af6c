package reconcile

import (
	"fmt"
	"math"
	"strings"

	"reelsync/internal/textutil"
)

const (
	similarityFloor     = 80
	titleMismatchWeight = 0.6
	directorWeight      = 0.3
	missingDirectorCost = 20
	yearGapCostPerYear  = 5
	yearGapCostCap      = 30
)

// Analyze produces an independent confidence assessment for a pairing.
// It starts at 100 and applies weighted deductions for title, director,
// and year disagreement; the result is clamped to [0, 100] and mapped to
// a severity bucket.
func Analyze(canonical CanonicalRecord, external ExternalRecord) MatchAnalysis {
	confidence := 100.0
	analysis := MatchAnalysis{}

	analysis.TitleSimilarity = textutil.Similarity(external.Title, canonical.Title)
	if analysis.TitleSimilarity < similarityFloor {
		analysis.Mismatches = append(analysis.Mismatches, fmt.Sprintf(
			"Title mismatch: log has %q, library has %q (similarity %d%%)",
			external.Title, canonical.Title, analysis.TitleSimilarity))
		confidence -= float64(100-analysis.TitleSimilarity) * titleMismatchWeight
	}

	// Director handling is an explicit decision table on which side
	// carries a director. The defaults are asymmetric on purpose: a log
	// row without a director is not evidence against a library record
	// that has one.
	externalHas := strings.TrimSpace(external.Director) != ""
	canonicalHas := strings.TrimSpace(canonical.Director) != ""
	switch {
	case externalHas && canonicalHas:
		analysis.DirectorSimilarity = textutil.Similarity(external.Director, canonical.Director)
		if analysis.DirectorSimilarity < similarityFloor {
			analysis.Mismatches = append(analysis.Mismatches, fmt.Sprintf(
				"Director mismatch: log has %q, library has %q (similarity %d%%)",
				external.Director, canonical.Director, analysis.DirectorSimilarity))
			confidence -= float64(100-analysis.DirectorSimilarity) * directorWeight
		}
	case externalHas && !canonicalHas:
		analysis.DirectorSimilarity = 0
		analysis.Mismatches = append(analysis.Mismatches, fmt.Sprintf(
			"Log names director %q but the library record has none", external.Director))
		confidence -= missingDirectorCost
	case !externalHas && canonicalHas:
		analysis.DirectorSimilarity = 100
	default:
		analysis.DirectorSimilarity = 0
	}

	if externalYear, ok := external.YearValue(); ok {
		if canonicalYear, ok := canonical.YearValue(); ok {
			diff := externalYear - canonicalYear
			if diff < 0 {
				diff = -diff
			}
			analysis.YearDifference = diff
			if diff > 1 {
				analysis.Mismatches = append(analysis.Mismatches, fmt.Sprintf(
					"Year differs by %d (log %d, library %d)", diff, externalYear, canonicalYear))
				cost := diff * yearGapCostPerYear
				if cost > yearGapCostCap {
					cost = yearGapCostCap
				}
				confidence -= float64(cost)
			}
		}
	}

	if confidence < 0 {
		confidence = 0
	}
	analysis.ConfidenceScore = int(math.Round(confidence))
	analysis.Severity = SeverityFor(analysis.ConfidenceScore)
	return analysis
}

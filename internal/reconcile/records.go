package reconcile

import (
	"regexp"
	"strconv"
)

// ExternalRecord is one row of a user-supplied viewing log. RowNumber is
// the 1-based physical line number in the source file (the header counts,
// so the first data row is 2) and serves as the row's identity for
// linkage. Records are immutable once parsed.
type ExternalRecord struct {
	RowNumber   int
	Title       string
	Year        string
	Director    string
	Notes       string
	WatchedWith string
	WatchedOn   string
	CompletedAt string
}

// YearValue parses the row's year field. The second return reports
// whether a usable four-digit year was present.
func (r ExternalRecord) YearValue() (int, bool) {
	return parseYear(r.Year)
}

// CanonicalRecord is an immutable snapshot of a library movie taken at
// the start of a reconciliation run.
type CanonicalRecord struct {
	ID          int64
	Title       string
	Director    string
	ReleaseDate string
	// Linked reports whether the record already carries a viewing-log
	// linkage; linked records never re-enter the candidate pool.
	Linked bool
}

// YearValue extracts the release year from the record's release date.
func (r CanonicalRecord) YearValue() (int, bool) {
	if len(r.ReleaseDate) >= 4 {
		return parseYear(r.ReleaseDate[:4])
	}
	return parseYear(r.ReleaseDate)
}

var yearPattern = regexp.MustCompile(`^\d{4}$`)

func parseYear(value string) (int, bool) {
	if !yearPattern.MatchString(value) {
		return 0, false
	}
	year, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return year, true
}

// MatchCandidate is a proposed pairing of one library record with one
// log row, carrying the heuristic ranking score and its analysis.
type MatchCandidate struct {
	Canonical CanonicalRecord
	External  ExternalRecord
	// Score is the ScoreEngine ranking value. It is additive across
	// dimensions and not bounded to 100.
	Score    int
	Reasons  []string
	Analysis MatchAnalysis
}

// Severity buckets a confidence score for review triage.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SeverityFor derives the severity bucket from a clamped confidence score.
func SeverityFor(confidence int) Severity {
	switch {
	case confidence < 50:
		return SeverityHigh
	case confidence < 80:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// MatchAnalysis explains how well a pairing holds up, independent of the
// ranking score. ConfidenceScore is always within [0, 100].
type MatchAnalysis struct {
	ConfidenceScore    int
	Severity           Severity
	Mismatches         []string
	TitleSimilarity    int
	DirectorSimilarity int
	YearDifference     int
}

package reconcile

import "strconv"

// Report is the run output consumed by the CLI renderers.
type Report struct {
	RunID            string        `json:"runId"`
	DryRun           bool          `json:"dryRun"`
	TotalCanonical   int           `json:"totalCanonical"`
	TotalExternal    int           `json:"totalExternal"`
	SkippedRows      int           `json:"skippedRows"`
	PotentialMatches int           `json:"potentialMatches"`
	AutoApplied      int           `json:"autoApplied"`
	ManualReview     int           `json:"manualReview"`
	FailedLinks      int           `json:"failedLinks"`
	Matches          []ReportMatch `json:"matches"`
}

// ReportMatch is one proposed pairing in the run report.
type ReportMatch struct {
	CanonicalID        int64    `json:"canonicalId"`
	CanonicalTitle     string   `json:"canonicalTitle"`
	CanonicalDirector  string   `json:"canonicalDirector"`
	CanonicalYear      string   `json:"canonicalYear"`
	ExternalRowNumber  int      `json:"externalRowNumber"`
	ExternalTitle      string   `json:"externalTitle"`
	ExternalDirector   string   `json:"externalDirector"`
	ExternalYear       string   `json:"externalYear"`
	ExternalNotes      string   `json:"externalNotes"`
	MatchScore         int      `json:"matchScore"`
	MatchReasons       []string `json:"matchReasons"`
	AutoApproved       bool     `json:"autoApproved"`
	ConfidenceScore    int      `json:"confidenceScore"`
	Severity           string   `json:"severity"`
	Mismatches         []string `json:"mismatches"`
	TitleSimilarity    int      `json:"titleSimilarity"`
	DirectorSimilarity int      `json:"directorSimilarity"`
	YearDifference     int      `json:"yearDifference"`
}

func buildReport(runID string, dryRun bool, canonical []CanonicalRecord, external []ExternalRecord, skipped int, candidates []MatchCandidate, summary DispositionSummary) Report {
	report := Report{
		RunID:            runID,
		DryRun:           dryRun,
		TotalCanonical:   len(canonical),
		TotalExternal:    len(external),
		SkippedRows:      skipped,
		PotentialMatches: len(candidates),
		AutoApplied:      summary.AutoApplied,
		ManualReview:     summary.ManualReview,
		FailedLinks:      len(summary.Failures),
		Matches:          make([]ReportMatch, 0, len(candidates)),
	}
	for i, candidate := range candidates {
		canonicalYear := ""
		if year, ok := candidate.Canonical.YearValue(); ok {
			canonicalYear = strconv.Itoa(year)
		}
		report.Matches = append(report.Matches, ReportMatch{
			CanonicalID:        candidate.Canonical.ID,
			CanonicalTitle:     candidate.Canonical.Title,
			CanonicalDirector:  candidate.Canonical.Director,
			CanonicalYear:      canonicalYear,
			ExternalRowNumber:  candidate.External.RowNumber,
			ExternalTitle:      candidate.External.Title,
			ExternalDirector:   candidate.External.Director,
			ExternalYear:       candidate.External.Year,
			ExternalNotes:      candidate.External.Notes,
			MatchScore:         candidate.Score,
			MatchReasons:       candidate.Reasons,
			AutoApproved:       i < len(summary.AutoApproved) && summary.AutoApproved[i],
			ConfidenceScore:    candidate.Analysis.ConfidenceScore,
			Severity:           string(candidate.Analysis.Severity),
			Mismatches:         candidate.Analysis.Mismatches,
			TitleSimilarity:    candidate.Analysis.TitleSimilarity,
			DirectorSimilarity: candidate.Analysis.DirectorSimilarity,
			YearDifference:     candidate.Analysis.YearDifference,
		})
	}
	return report
}

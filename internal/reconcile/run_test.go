package reconcile

import (
	"context"
	"testing"
)

func TestRunEndToEndInception(t *testing.T) {
	linker := &stubLinker{}
	report, err := Run(context.Background(), RunInput{
		Canonical: []CanonicalRecord{
			{ID: 42, Title: "Inception", Director: "Christopher Nolan", ReleaseDate: "2010-07-16"},
		},
		External: []ExternalRecord{
			{RowNumber: 2, Title: "Inception", Year: "2010", Director: "Christopher Nolan"},
		},
		Threshold: DefaultAutoApproveThreshold,
		Linker:    linker,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.PotentialMatches != 1 || len(report.Matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(report.Matches))
	}
	match := report.Matches[0]
	if match.MatchScore != 180 {
		t.Errorf("matchScore = %d, want 180", match.MatchScore)
	}
	if match.ConfidenceScore != 100 {
		t.Errorf("confidenceScore = %d, want 100", match.ConfidenceScore)
	}
	if match.Severity != string(SeverityLow) {
		t.Errorf("severity = %q, want low", match.Severity)
	}
	if !match.AutoApproved {
		t.Error("autoApproved = false, want true under the default threshold")
	}
	if match.CanonicalYear != "2010" {
		t.Errorf("canonicalYear = %q, want 2010", match.CanonicalYear)
	}
	if report.AutoApplied != 1 || report.ManualReview != 0 {
		t.Errorf("counts = %d/%d, want 1 auto, 0 manual", report.AutoApplied, report.ManualReview)
	}
	if len(linker.applied) != 1 || linker.applied[0] != 42 {
		t.Errorf("applied = %v, want record 42 linked", linker.applied)
	}
	if report.RunID == "" {
		t.Error("runID should be populated")
	}
}

func TestRunIdempotenceAfterLinking(t *testing.T) {
	// After a successful disposal the canonical record carries a linkage;
	// a re-run over the refreshed snapshot must not re-propose it.
	canonical := []CanonicalRecord{
		{ID: 1, Title: "Inception", Director: "Christopher Nolan", ReleaseDate: "2010-07-16", Linked: true},
	}
	external := []ExternalRecord{
		{RowNumber: 2, Title: "Inception", Year: "2010", Director: "Christopher Nolan"},
	}

	report, err := Run(context.Background(), RunInput{
		Canonical: canonical,
		External:  external,
		Linker:    &stubLinker{},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.PotentialMatches != 0 {
		t.Errorf("potentialMatches = %d, want 0 for already-linked record", report.PotentialMatches)
	}
}

func TestRunCarriesSkippedRows(t *testing.T) {
	report, err := Run(context.Background(), RunInput{SkippedRows: 3, Linker: &stubLinker{}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.SkippedRows != 3 {
		t.Errorf("skippedRows = %d, want 3", report.SkippedRows)
	}
}

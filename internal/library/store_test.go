package library_test

import (
	"context"
	"testing"

	"reelsync/internal/library"
	"reelsync/internal/reconcile"
	"reelsync/internal/testsupport"
)

func candidateFor(movie *library.Movie, rowNumber int) reconcile.MatchCandidate {
	return reconcile.MatchCandidate{
		Canonical: movie.Canonical(),
		External: reconcile.ExternalRecord{
			RowNumber: rowNumber,
			Title:     movie.Title,
			Year:      "2010",
			Director:  movie.Director,
			Notes:     "seen at the cinema",
		},
		Score:   180,
		Reasons: []string{"Exact title match", "Exact director match", "Year match"},
		Analysis: reconcile.MatchAnalysis{
			ConfidenceScore:    100,
			Severity:           reconcile.SeverityLow,
			Mismatches:         []string{},
			TitleSimilarity:    100,
			DirectorSimilarity: 100,
			YearDifference:     0,
		},
	}
}

func TestAddAndGetMovie(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	added := testsupport.AddMovie(t, store, "Inception", "Christopher Nolan", "2010-07-16")
	if added.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if added.Linked() {
		t.Fatal("fresh movie should not be linked")
	}

	got, err := store.GetByID(context.Background(), added.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("expected movie")
	}
	if got.Title != "Inception" || got.Director != "Christopher Nolan" || got.ReleaseDate != "2010-07-16" {
		t.Fatalf("unexpected movie %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps")
	}
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	got, err := store.GetByID(context.Background(), 404)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestApplyLinkPersistsLinkageAndAnalysis(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	movie := testsupport.AddMovie(t, store, "Inception", "Christopher Nolan", "2010-07-16")
	candidate := candidateFor(movie, 2)

	if err := store.ApplyLink(ctx, candidate); err != nil {
		t.Fatalf("ApplyLink: %v", err)
	}

	linked, err := store.GetByID(ctx, movie.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !linked.Linked() {
		t.Fatal("expected linked movie")
	}
	if linked.LogRowNumber != 2 || linked.LogTitle != "Inception" || linked.LogYear != "2010" {
		t.Fatalf("unexpected linkage %+v", linked)
	}
	if linked.LinkStatus != library.LinkStatusPending {
		t.Fatalf("expected pending status, got %q", linked.LinkStatus)
	}

	analysis, err := store.GetAnalysis(ctx, movie.ID)
	if err != nil {
		t.Fatalf("GetAnalysis: %v", err)
	}
	if analysis == nil {
		t.Fatal("expected analysis")
	}
	if analysis.ConfidenceScore != 100 || analysis.Severity != string(reconcile.SeverityLow) {
		t.Fatalf("unexpected analysis %+v", analysis)
	}
	if len(analysis.Mismatches) != 0 {
		t.Fatalf("expected no mismatches, got %v", analysis.Mismatches)
	}
}

func TestApplyLinkRefusesAlreadyLinkedMovie(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	movie := testsupport.AddMovie(t, store, "Heat", "Michael Mann", "1995-12-15")
	if err := store.ApplyLink(ctx, candidateFor(movie, 2)); err != nil {
		t.Fatalf("ApplyLink: %v", err)
	}
	if err := store.ApplyLink(ctx, candidateFor(movie, 3)); err == nil {
		t.Fatal("expected error relinking movie")
	}

	linked, err := store.GetByID(ctx, movie.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if linked.LogRowNumber != 2 {
		t.Fatalf("original linkage should survive, got row %d", linked.LogRowNumber)
	}
}

func TestApproveLink(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	movie := testsupport.AddMovie(t, store, "Alien", "Ridley Scott", "1979-05-25")
	if err := store.ApplyLink(ctx, candidateFor(movie, 4)); err != nil {
		t.Fatalf("ApplyLink: %v", err)
	}
	if err := store.ApproveLink(ctx, movie.ID); err != nil {
		t.Fatalf("ApproveLink: %v", err)
	}

	approved, err := store.GetByID(ctx, movie.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if approved.LinkStatus != library.LinkStatusApproved {
		t.Fatalf("expected approved status, got %q", approved.LinkStatus)
	}

	if err := store.ApproveLink(ctx, movie.ID); err == nil {
		t.Fatal("expected error approving twice")
	}
}

func TestRejectLinkClearsLinkageAndAnalysis(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	movie := testsupport.AddMovie(t, store, "Alien", "Ridley Scott", "1979-05-25")
	if err := store.ApplyLink(ctx, candidateFor(movie, 4)); err != nil {
		t.Fatalf("ApplyLink: %v", err)
	}
	if err := store.RejectLink(ctx, movie.ID); err != nil {
		t.Fatalf("RejectLink: %v", err)
	}

	cleared, err := store.GetByID(ctx, movie.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if cleared.Linked() || cleared.LinkStatus != "" {
		t.Fatalf("expected cleared linkage, got %+v", cleared)
	}

	analysis, err := store.GetAnalysis(ctx, movie.ID)
	if err != nil {
		t.Fatalf("GetAnalysis: %v", err)
	}
	if analysis != nil {
		t.Fatalf("expected analysis removed, got %+v", analysis)
	}

	unlinked, err := store.UnlinkedMovies(ctx)
	if err != nil {
		t.Fatalf("UnlinkedMovies: %v", err)
	}
	if len(unlinked) != 1 || unlinked[0].ID != movie.ID {
		t.Fatalf("expected movie back in unlinked pool, got %+v", unlinked)
	}
}

func TestUnlinkedAndPendingQueries(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	first := testsupport.AddMovie(t, store, "Inception", "Christopher Nolan", "2010-07-16")
	second := testsupport.AddMovie(t, store, "Heat", "Michael Mann", "1995-12-15")

	if err := store.ApplyLink(ctx, candidateFor(first, 2)); err != nil {
		t.Fatalf("ApplyLink: %v", err)
	}

	unlinked, err := store.UnlinkedMovies(ctx)
	if err != nil {
		t.Fatalf("UnlinkedMovies: %v", err)
	}
	if len(unlinked) != 1 || unlinked[0].ID != second.ID {
		t.Fatalf("unexpected unlinked set %+v", unlinked)
	}

	pending, err := store.PendingReview(ctx)
	if err != nil {
		t.Fatalf("PendingReview: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != first.ID {
		t.Fatalf("unexpected pending set %+v", pending)
	}

	consumed, err := store.ConsumedRowNumbers(ctx)
	if err != nil {
		t.Fatalf("ConsumedRowNumbers: %v", err)
	}
	if _, ok := consumed[2]; !ok || len(consumed) != 1 {
		t.Fatalf("unexpected consumed rows %v", consumed)
	}
}

func TestApplyLinkRejectsDuplicateRowNumber(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	first := testsupport.AddMovie(t, store, "Inception", "Christopher Nolan", "2010-07-16")
	second := testsupport.AddMovie(t, store, "Heat", "Michael Mann", "1995-12-15")

	if err := store.ApplyLink(ctx, candidateFor(first, 2)); err != nil {
		t.Fatalf("ApplyLink: %v", err)
	}
	if err := store.ApplyLink(ctx, candidateFor(second, 2)); err == nil {
		t.Fatal("expected unique row constraint violation")
	}
}

func TestAddLinkedMovie(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	canonical := reconcile.CanonicalRecord{
		Title:       "Blade Runner",
		Director:    "Ridley Scott",
		ReleaseDate: "1982-06-25",
	}
	external := reconcile.ExternalRecord{
		RowNumber: 7,
		Title:     "Blade Runner",
		Year:      "1982",
		Director:  "Ridley Scott",
	}
	analysis := reconcile.MatchAnalysis{
		ConfidenceScore:    100,
		Severity:           reconcile.SeverityLow,
		TitleSimilarity:    100,
		DirectorSimilarity: 100,
	}

	movie, err := store.AddLinkedMovie(ctx, canonical, external, analysis, 78)
	if err != nil {
		t.Fatalf("AddLinkedMovie: %v", err)
	}
	if movie == nil || !movie.Linked() {
		t.Fatalf("expected linked movie, got %+v", movie)
	}
	if movie.CatalogID != 78 {
		t.Fatalf("expected catalog id 78, got %d", movie.CatalogID)
	}
	if movie.LogRowNumber != 7 {
		t.Fatalf("expected row 7, got %d", movie.LogRowNumber)
	}

	stored, err := store.GetAnalysis(ctx, movie.ID)
	if err != nil {
		t.Fatalf("GetAnalysis: %v", err)
	}
	if stored == nil || stored.ConfidenceScore != 100 {
		t.Fatalf("unexpected analysis %+v", stored)
	}
}

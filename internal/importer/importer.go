package importer

import (
	"context"
	"log/slog"
	"time"

	"reelsync/internal/logging"
	"reelsync/internal/provider/tmdb"
	"reelsync/internal/reconcile"
)

const (
	fallbackConfidenceCap = 30
	fallbackMismatch      = "no match found — manual review required"
)

// RowResult is the outcome of importing one viewing-log row.
type RowResult struct {
	External  reconcile.ExternalRecord
	Canonical reconcile.CanonicalRecord
	// CatalogID is the provider identifier of the matched record, zero
	// for fallbacks.
	CatalogID int64
	Analysis  reconcile.MatchAnalysis
	// Fallback marks rows the provider could not resolve.
	Fallback bool
}

// Importer resolves viewing-log rows against a metadata provider.
type Importer struct {
	provider tmdb.Searcher
	pacer    Pacer
	timeout  time.Duration
	logger   *slog.Logger
}

// New creates an importer. A nil pacer disables call spacing; a
// non-positive timeout disables the per-call deadline.
func New(provider tmdb.Searcher, pacer Pacer, timeout time.Duration, logger *slog.Logger) *Importer {
	if pacer == nil {
		pacer = NewIntervalPacer(0)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Importer{
		provider: provider,
		pacer:    pacer,
		timeout:  timeout,
		logger:   logging.NewComponentLogger(logger, "importer"),
	}
}

// Run resolves every record in order, one provider lookup at a time.
// Rows the provider cannot resolve become fallback results rather than
// errors; only context cancellation aborts the run, and results for
// rows already processed are returned alongside the error.
func (i *Importer) Run(ctx context.Context, records []reconcile.ExternalRecord) ([]RowResult, error) {
	results := make([]RowResult, 0, len(records))
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := i.importRow(ctx, record)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (i *Importer) importRow(ctx context.Context, record reconcile.ExternalRecord) (RowResult, error) {
	hit, err := i.search(ctx, record)
	if err != nil {
		if ctx.Err() != nil {
			return RowResult{}, ctx.Err()
		}
		i.logger.Warn("provider search failed",
			logging.Int("row", record.RowNumber),
			logging.String("title", record.Title),
			logging.Error(err))
		return i.fallback(record), nil
	}
	if hit == nil {
		i.logger.Info("no provider match",
			logging.Int("row", record.RowNumber),
			logging.String("title", record.Title))
		return i.fallback(record), nil
	}

	director := i.lookupDirector(ctx, hit.ID, record.RowNumber)
	canonical := reconcile.CanonicalRecord{
		Title:       hit.Title,
		Director:    director,
		ReleaseDate: hit.ReleaseDate,
	}
	return RowResult{
		External:  record,
		Canonical: canonical,
		CatalogID: hit.ID,
		Analysis:  reconcile.Analyze(canonical, record),
	}, nil
}

func (i *Importer) search(ctx context.Context, record reconcile.ExternalRecord) (*tmdb.Result, error) {
	if err := i.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	callCtx, cancel := i.callContext(ctx)
	defer cancel()

	opts := tmdb.SearchOptions{}
	if year, ok := record.YearValue(); ok {
		opts.Year = year
	}
	resp, err := i.provider.SearchMovie(callCtx, record.Title, opts)
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	// The provider orders results by relevance; the first is the hit.
	hit := resp.Results[0]
	return &hit, nil
}

// lookupDirector fetches director credits for a hit. Credit failures
// degrade to an empty director rather than failing the row.
func (i *Importer) lookupDirector(ctx context.Context, movieID int64, rowNumber int) string {
	if err := i.pacer.Wait(ctx); err != nil {
		return ""
	}
	callCtx, cancel := i.callContext(ctx)
	defer cancel()

	director, err := i.provider.MovieDirector(callCtx, movieID)
	if err != nil {
		i.logger.Warn("director lookup failed",
			logging.Int("row", rowNumber),
			logging.Int64("movie_id", movieID),
			logging.Error(err))
		return ""
	}
	return director
}

// fallback builds a minimal record from the row itself so the linkage
// can still be persisted, flagged for manual review.
func (i *Importer) fallback(record reconcile.ExternalRecord) RowResult {
	canonical := reconcile.CanonicalRecord{
		Title:       record.Title,
		Director:    record.Director,
		ReleaseDate: record.Year,
	}
	analysis := reconcile.Analyze(canonical, record)
	if analysis.ConfidenceScore > fallbackConfidenceCap {
		analysis.ConfidenceScore = fallbackConfidenceCap
	}
	analysis.Severity = reconcile.SeverityHigh
	analysis.Mismatches = append([]string{fallbackMismatch}, analysis.Mismatches...)
	return RowResult{
		External:  record,
		Canonical: canonical,
		Analysis:  analysis,
		Fallback:  true,
	}
}

func (i *Importer) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if i.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, i.timeout)
}

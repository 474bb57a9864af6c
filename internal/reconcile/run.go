package reconcile

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"reelsync/internal/logging"
)

// RunInput carries everything one reconciliation run needs. The record
// snapshots are read-only for the duration of the run.
type RunInput struct {
	Canonical []CanonicalRecord
	External  []ExternalRecord
	// SkippedRows is the count of malformed log rows the parser dropped,
	// carried through to the report.
	SkippedRows int
	Threshold   int
	DryRun      bool
	Linker      Linker
	Logger      *slog.Logger
}

// Run executes assignment and disposition over the input snapshot and
// returns the run report. The returned error is non-nil only on
// cancellation; per-candidate persistence failures are reported in the
// summary instead.
func Run(ctx context.Context, input RunInput) (Report, error) {
	runID := uuid.NewString()
	log := logging.NewComponentLogger(input.Logger, "reconcile").With(
		logging.String(logging.FieldRunID, runID))

	log.Info("starting reconciliation",
		logging.Int("canonical_records", len(input.Canonical)),
		logging.Int("external_rows", len(input.External)),
		logging.Bool("dry_run", input.DryRun))

	candidates := Assign(input.Canonical, input.External)
	log.Info("assignment complete", logging.Int("candidates", len(candidates)))

	summary, err := Dispose(ctx, input.Linker, candidates, input.Threshold, input.DryRun, log)
	if err != nil {
		return Report{}, err
	}

	report := buildReport(runID, input.DryRun, input.Canonical, input.External, input.SkippedRows, candidates, summary)
	log.Info("reconciliation finished",
		logging.Int("auto_applied", report.AutoApplied),
		logging.Int("manual_review", report.ManualReview),
		logging.Int("failed_links", report.FailedLinks))
	return report, nil
}

package reconcile

import (
	"context"
	"log/slog"

	"reelsync/internal/logging"
)

// DefaultAutoApproveThreshold is the match score at or above which a
// candidate is linked without manual review.
const DefaultAutoApproveThreshold = 150

// Linker persists an accepted pairing: linkage fields plus the companion
// analysis record, atomically for one candidate.
type Linker interface {
	ApplyLink(ctx context.Context, candidate MatchCandidate) error
}

// DispositionFailure records one candidate whose persistence failed.
type DispositionFailure struct {
	CanonicalID int64
	RowNumber   int
	Err         error
}

// DispositionSummary reports how a candidate list was partitioned.
type DispositionSummary struct {
	AutoApplied  int
	ManualReview int
	Failures     []DispositionFailure
	// AutoApproved marks, by index into the candidate list, which
	// candidates met the threshold. Populated in both modes.
	AutoApproved []bool
}

// Dispose partitions candidates by threshold and, unless dryRun is set,
// persists each accepted candidate through the linker. Transactions are
// independent per candidate: one failure is recorded and the batch
// continues. Candidates below the threshold are counted for manual
// review and left untouched. Dry-run performs no mutation but reports
// the same counts a live run would.
func Dispose(ctx context.Context, linker Linker, candidates []MatchCandidate, threshold int, dryRun bool, logger *slog.Logger) (DispositionSummary, error) {
	if threshold <= 0 {
		threshold = DefaultAutoApproveThreshold
	}
	log := logging.NewComponentLogger(logger, "disposition")

	summary := DispositionSummary{AutoApproved: make([]bool, len(candidates))}
	for i, candidate := range candidates {
		if candidate.Score < threshold {
			summary.ManualReview++
			continue
		}
		summary.AutoApproved[i] = true

		if dryRun {
			summary.AutoApplied++
			continue
		}

		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := linker.ApplyLink(ctx, candidate); err != nil {
			log.Warn("link persistence failed",
				logging.Int64("canonical_id", candidate.Canonical.ID),
				logging.Int("row_number", candidate.External.RowNumber),
				logging.Error(err))
			summary.AutoApproved[i] = false
			summary.Failures = append(summary.Failures, DispositionFailure{
				CanonicalID: candidate.Canonical.ID,
				RowNumber:   candidate.External.RowNumber,
				Err:         err,
			})
			continue
		}
		log.Info("link applied",
			logging.Int64("canonical_id", candidate.Canonical.ID),
			logging.Int("row_number", candidate.External.RowNumber),
			logging.Int("score", candidate.Score))
		summary.AutoApplied++
	}
	return summary, nil
}

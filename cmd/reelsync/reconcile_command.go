package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"reelsync/internal/library"
	"reelsync/internal/reconcile"
	"reelsync/internal/textutil"
	"reelsync/internal/viewlog"
)

func newReconcileCommand(ctx *commandContext) *cobra.Command {
	var (
		logPath   string
		dryRun    bool
		threshold int
		skip      int
		limit     int
		jsonOut   bool
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Match viewing-log rows against the library and link them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			parsed, err := viewlog.ParseFile(logPath)
			if err != nil {
				if errors.Is(err, viewlog.ErrInputNotFound) {
					return fmt.Errorf("viewing log %s not found", logPath)
				}
				return fmt.Errorf("parse viewing log: %w", err)
			}

			if !cmd.Flags().Changed("threshold") {
				threshold = cfg.Matching.AutoApproveThreshold
			}

			if !dryRun {
				lock := flock.New(cfg.LockPath())
				locked, err := lock.TryLock()
				if err != nil {
					return fmt.Errorf("acquire lock: %w", err)
				}
				if !locked {
					return errors.New("another reelsync run is in progress")
				}
				defer func() { _ = lock.Unlock() }()
			}

			var report reconcile.Report
			err = ctx.withStore(func(store *library.Store) error {
				movies, err := store.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("load library: %w", err)
				}
				canonical := make([]reconcile.CanonicalRecord, 0, len(movies))
				for _, movie := range movies {
					canonical = append(canonical, movie.Canonical())
				}

				consumed, err := store.ConsumedRowNumbers(cmd.Context())
				if err != nil {
					return fmt.Errorf("load consumed rows: %w", err)
				}
				external := selectRows(parsed.Rows, consumed, skip, limit)

				report, err = reconcile.Run(cmd.Context(), reconcile.RunInput{
					Canonical:   canonical,
					External:    external,
					SkippedRows: parsed.Skipped,
					Threshold:   threshold,
					DryRun:      dryRun,
					Linker:      store,
					Logger:      logger,
				})
				return err
			})
			if err != nil {
				return err
			}

			if jsonOut || !isTerminal(cmd.OutOrStdout()) {
				return writeJSON(cmd, report)
			}
			renderReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&logPath, "log", "l", "", "Path to the tab-separated viewing log")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Evaluate matches without writing linkages")
	cmd.Flags().IntVar(&threshold, "threshold", reconcile.DefaultAutoApproveThreshold, "Minimum match score for automatic linking")
	cmd.Flags().IntVar(&skip, "skip", 0, "Number of admitted log rows to skip")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of admitted log rows to process (0 = all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the run report as JSON")
	_ = cmd.MarkFlagRequired("log")

	return cmd
}

// selectRows filters already-linked rows and applies the skip/limit
// window. Row numbers are preserved; the window counts admitted rows,
// not source lines.
func selectRows(rows []viewlog.Row, consumed map[int]struct{}, skip, limit int) []reconcile.ExternalRecord {
	selected := make([]reconcile.ExternalRecord, 0, len(rows))
	seen := 0
	for _, row := range rows {
		if _, ok := consumed[row.RowNumber]; ok {
			continue
		}
		seen++
		if seen <= skip {
			continue
		}
		selected = append(selected, row.External())
		if limit > 0 && len(selected) >= limit {
			break
		}
	}
	return selected
}

func renderReport(cmd *cobra.Command, report reconcile.Report) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Run %s (%s)\n", report.RunID, textutil.Ternary(report.DryRun, "dry-run", "live"))
	fmt.Fprintf(out, "Library records: %d  Log rows: %d  Skipped rows: %d\n",
		report.TotalCanonical, report.TotalExternal, report.SkippedRows)
	fmt.Fprintf(out, "Matches: %d  Auto-applied: %d  Manual review: %d  Failed: %d\n",
		report.PotentialMatches, report.AutoApplied, report.ManualReview, report.FailedLinks)

	if len(report.Matches) == 0 {
		fmt.Fprintln(out, "No matches found")
		return
	}

	headers := []string{"Score", "Library Title", "Log Row", "Log Title", "Confidence", "Severity", "Auto"}
	rows := make([][]string, 0, len(report.Matches))
	for _, match := range report.Matches {
		rows = append(rows, []string{
			strconv.Itoa(match.MatchScore),
			match.CanonicalTitle,
			strconv.Itoa(match.ExternalRowNumber),
			match.ExternalTitle,
			strconv.Itoa(match.ConfidenceScore),
			match.Severity,
			yesNo(match.AutoApproved),
		})
	}
	aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignRight, alignLeft, alignLeft}
	fmt.Fprintln(out, renderTable(headers, rows, aligns))
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

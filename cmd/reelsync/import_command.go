package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"reelsync/internal/importer"
	"reelsync/internal/library"
	"reelsync/internal/logging"
	"reelsync/internal/provider/tmdb"
	"reelsync/internal/textutil"
	"reelsync/internal/viewlog"
)

// importReport is the JSON form of an import run.
type importReport struct {
	DryRun      bool              `json:"dryRun"`
	TotalRows   int               `json:"totalRows"`
	SkippedRows int               `json:"skippedRows"`
	Imported    int               `json:"imported"`
	Fallbacks   int               `json:"fallbacks"`
	Failures    int               `json:"failures"`
	Rows        []importReportRow `json:"rows"`
}

type importReportRow struct {
	RowNumber       int    `json:"rowNumber"`
	LogTitle        string `json:"logTitle"`
	Title           string `json:"title"`
	Director        string `json:"director"`
	ReleaseDate     string `json:"releaseDate"`
	CatalogID       int64  `json:"catalogId,omitempty"`
	ConfidenceScore int    `json:"confidenceScore"`
	Severity        string `json:"severity"`
	Fallback        bool   `json:"fallback"`
	Error           string `json:"error,omitempty"`
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	var (
		logPath string
		dryRun  bool
		skip    int
		limit   int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Create library records from viewing-log rows via TMDB",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			provider, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
			if err != nil {
				return fmt.Errorf("tmdb client: %w", err)
			}

			parsed, err := viewlog.ParseFile(logPath)
			if err != nil {
				if errors.Is(err, viewlog.ErrInputNotFound) {
					return fmt.Errorf("viewing log %s not found", logPath)
				}
				return fmt.Errorf("parse viewing log: %w", err)
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

			pacer := importer.NewIntervalPacer(time.Duration(cfg.Import.LookupDelayMS) * time.Millisecond)
			timeout := time.Duration(cfg.Import.LookupTimeoutSeconds) * time.Second
			imp := importer.New(provider, pacer, timeout, logger)

			report := importReport{DryRun: dryRun, SkippedRows: parsed.Skipped}
			err = ctx.withStore(func(store *library.Store) error {
				consumed, err := store.ConsumedRowNumbers(cmd.Context())
				if err != nil {
					return fmt.Errorf("load consumed rows: %w", err)
				}
				records := selectRows(parsed.Rows, consumed, skip, limit)
				report.TotalRows = len(records)

				results, runErr := imp.Run(cmd.Context(), records)
				for _, result := range results {
					row := importReportRow{
						RowNumber:       result.External.RowNumber,
						LogTitle:        result.External.Title,
						Title:           result.Canonical.Title,
						Director:        result.Canonical.Director,
						ReleaseDate:     result.Canonical.ReleaseDate,
						CatalogID:       result.CatalogID,
						ConfidenceScore: result.Analysis.ConfidenceScore,
						Severity:        string(result.Analysis.Severity),
						Fallback:        result.Fallback,
					}
					if result.Fallback {
						report.Fallbacks++
					}
					if !dryRun {
						if _, err := store.AddLinkedMovie(cmd.Context(), result.Canonical, result.External, result.Analysis, result.CatalogID); err != nil {
							logger.Error("persist imported movie",
								logging.Int("row", result.External.RowNumber),
								logging.Error(err))
							row.Error = err.Error()
							report.Failures++
						} else {
							report.Imported++
						}
					}
					report.Rows = append(report.Rows, row)
				}
				return runErr
			})
			if err != nil {
				return err
			}

			if jsonOut || !isTerminal(cmd.OutOrStdout()) {
				return writeJSON(cmd, report)
			}
			renderImportReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&logPath, "log", "l", "", "Path to the tab-separated viewing log")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve rows without writing library records")
	cmd.Flags().IntVar(&skip, "skip", 0, "Number of admitted log rows to skip")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of admitted log rows to process (0 = all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the import report as JSON")
	_ = cmd.MarkFlagRequired("log")

	return cmd
}

func renderImportReport(cmd *cobra.Command, report importReport) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Import (%s)\n", textutil.Ternary(report.DryRun, "dry-run", "live"))
	fmt.Fprintf(out, "Rows: %d  Imported: %d  Fallbacks: %d  Failures: %d  Skipped rows: %d\n",
		report.TotalRows, report.Imported, report.Fallbacks, report.Failures, report.SkippedRows)

	if len(report.Rows) == 0 {
		fmt.Fprintln(out, "Nothing to import")
		return
	}

	headers := []string{"Row", "Log Title", "Resolved Title", "Director", "Released", "Confidence", "Severity"}
	rows := make([][]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		resolved := row.Title
		if row.Fallback {
			resolved += " (fallback)"
		}
		rows = append(rows, []string{
			strconv.Itoa(row.RowNumber),
			row.LogTitle,
			resolved,
			row.Director,
			row.ReleaseDate,
			strconv.Itoa(row.ConfidenceScore),
			row.Severity,
		})
	}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
	fmt.Fprintln(out, renderTable(headers, rows, aligns))
}

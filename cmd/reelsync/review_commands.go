package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"reelsync/internal/library"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Inspect and resolve pending linkages",
	}

	reviewCmd.AddCommand(newReviewListCommand(ctx))
	reviewCmd.AddCommand(newReviewApproveCommand(ctx))
	reviewCmd.AddCommand(newReviewRejectCommand(ctx))

	return reviewCmd
}

// reviewEntry is the JSON form of one pending linkage.
type reviewEntry struct {
	MovieID         int64    `json:"movieId"`
	Title           string   `json:"title"`
	Director        string   `json:"director"`
	ReleaseDate     string   `json:"releaseDate"`
	LogRowNumber    int      `json:"logRowNumber"`
	LogTitle        string   `json:"logTitle"`
	LogYear         string   `json:"logYear"`
	ConfidenceScore int      `json:"confidenceScore"`
	Severity        string   `json:"severity"`
	Mismatches      []string `json:"mismatches"`
}

func newReviewListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List linkages awaiting approval",
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []reviewEntry
			err := ctx.withStore(func(store *library.Store) error {
				movies, err := store.PendingReview(cmd.Context())
				if err != nil {
					return fmt.Errorf("load pending linkages: %w", err)
				}
				entries = make([]reviewEntry, 0, len(movies))
				for _, movie := range movies {
					entry := reviewEntry{
						MovieID:      movie.ID,
						Title:        movie.Title,
						Director:     movie.Director,
						ReleaseDate:  movie.ReleaseDate,
						LogRowNumber: movie.LogRowNumber,
						LogTitle:     movie.LogTitle,
						LogYear:      movie.LogYear,
					}
					analysis, err := store.GetAnalysis(cmd.Context(), movie.ID)
					if err != nil {
						return fmt.Errorf("load analysis for movie %d: %w", movie.ID, err)
					}
					if analysis != nil {
						entry.ConfidenceScore = analysis.ConfidenceScore
						entry.Severity = analysis.Severity
						entry.Mismatches = analysis.Mismatches
					}
					entries = append(entries, entry)
				}
				return nil
			})
			if err != nil {
				return err
			}

			if jsonOut || !isTerminal(cmd.OutOrStdout()) {
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No linkages pending review")
				return nil
			}
			headers := []string{"ID", "Title", "Log Row", "Log Title", "Confidence", "Severity", "Mismatches"}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					strconv.FormatInt(entry.MovieID, 10),
					entry.Title,
					strconv.Itoa(entry.LogRowNumber),
					entry.LogTitle,
					strconv.Itoa(entry.ConfidenceScore),
					entry.Severity,
					strings.Join(entry.Mismatches, "; "),
				})
			}
			aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignRight, alignLeft, alignLeft}
			fmt.Fprintln(out, renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit pending linkages as JSON")
	return cmd
}

func newReviewApproveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <movie-id>",
		Short: "Approve a pending linkage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			movieID, err := parseMovieID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *library.Store) error {
				if err := store.ApproveLink(cmd.Context(), movieID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Approved linkage for movie %d\n", movieID)
				return nil
			})
		},
	}
}

func newReviewRejectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reject <movie-id>",
		Short: "Reject a pending linkage and return the movie to the pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			movieID, err := parseMovieID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *library.Store) error {
				if err := store.RejectLink(cmd.Context(), movieID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rejected linkage for movie %d\n", movieID)
				return nil
			})
		},
	}
}

func parseMovieID(arg string) (int64, error) {
	movieID, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || movieID <= 0 {
		return 0, fmt.Errorf("invalid movie id %q", arg)
	}
	return movieID, nil
}

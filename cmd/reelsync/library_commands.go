package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reelsync/internal/library"
)

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Manage canonical movie records",
	}

	libraryCmd.AddCommand(newLibraryAddCommand(ctx))
	libraryCmd.AddCommand(newLibraryListCommand(ctx))

	return libraryCmd
}

func newLibraryAddCommand(ctx *commandContext) *cobra.Command {
	var (
		director    string
		releaseDate string
		catalogID   int64
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a movie to the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				movie, err := store.AddMovie(cmd.Context(), args[0], director, releaseDate, catalogID)
				if err != nil {
					return fmt.Errorf("add movie: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %q as movie %d\n", movie.Title, movie.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&director, "director", "", "Director name")
	cmd.Flags().StringVar(&releaseDate, "release-date", "", "Release date (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&catalogID, "catalog-id", 0, "TMDB identifier")
	return cmd
}

// libraryEntry is the JSON form of one library record.
type libraryEntry struct {
	MovieID      int64  `json:"movieId"`
	Title        string `json:"title"`
	Director     string `json:"director"`
	ReleaseDate  string `json:"releaseDate"`
	CatalogID    int64  `json:"catalogId,omitempty"`
	LogRowNumber int    `json:"logRowNumber,omitempty"`
	LinkStatus   string `json:"linkStatus,omitempty"`
}

func newLibraryListCommand(ctx *commandContext) *cobra.Command {
	var (
		unlinkedOnly bool
		jsonOut      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List library records",
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []libraryEntry
			err := ctx.withStore(func(store *library.Store) error {
				var (
					movies []*library.Movie
					err    error
				)
				if unlinkedOnly {
					movies, err = store.UnlinkedMovies(cmd.Context())
				} else {
					movies, err = store.List(cmd.Context())
				}
				if err != nil {
					return fmt.Errorf("load library: %w", err)
				}
				entries = make([]libraryEntry, 0, len(movies))
				for _, movie := range movies {
					entries = append(entries, libraryEntry{
						MovieID:      movie.ID,
						Title:        movie.Title,
						Director:     movie.Director,
						ReleaseDate:  movie.ReleaseDate,
						CatalogID:    movie.CatalogID,
						LogRowNumber: movie.LogRowNumber,
						LinkStatus:   string(movie.LinkStatus),
					})
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
				fmt.Fprintln(out, "Library is empty")
				return nil
			}
			headers := []string{"ID", "Title", "Director", "Released", "Log Row", "Status"}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				logRow := ""
				if entry.LogRowNumber > 0 {
					logRow = strconv.Itoa(entry.LogRowNumber)
				}
				rows = append(rows, []string{
					strconv.FormatInt(entry.MovieID, 10),
					entry.Title,
					entry.Director,
					entry.ReleaseDate,
					logRow,
					entry.LinkStatus,
				})
			}
			aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
			fmt.Fprintln(out, renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().BoolVar(&unlinkedOnly, "unlinked", false, "Show only movies without a viewing-log linkage")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit library records as JSON")
	return cmd
}

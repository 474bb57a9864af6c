package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"reelsync/internal/reconcile"
)

// ApplyLink writes the viewing-log linkage onto the candidate's movie and
// upserts the companion analysis, atomically for this one candidate. The
// linkage lands in pending-approval state. Implements reconcile.Linker.
func (s *Store) ApplyLink(ctx context.Context, candidate reconcile.MatchCandidate) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		timestamp := time.Now().UTC().Format(time.RFC3339Nano)
		res, err := tx.ExecContext(ctx,
			`UPDATE movies
             SET log_row_number = ?, log_title = ?, log_director = ?, log_year = ?,
                 log_notes = ?, link_status = ?, updated_at = ?
             WHERE id = ? AND log_row_number IS NULL`,
			candidate.External.RowNumber,
			nullableString(candidate.External.Title),
			nullableString(candidate.External.Director),
			nullableString(candidate.External.Year),
			nullableString(candidate.External.Notes),
			LinkStatusPending,
			timestamp,
			candidate.Canonical.ID,
		)
		if err != nil {
			return fmt.Errorf("write linkage: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("movie %d missing or already linked", candidate.Canonical.ID)
		}
		return upsertAnalysis(ctx, tx, candidate.Canonical.ID, candidate.Analysis)
	})
}

// AddLinkedMovie inserts a fresh movie and its linkage in one
// transaction. Used by provider-backed imports where no canonical record
// exists yet.
func (s *Store) AddLinkedMovie(ctx context.Context, canonical reconcile.CanonicalRecord, external reconcile.ExternalRecord, analysis reconcile.MatchAnalysis, catalogID int64) (*Movie, error) {
	var movieID int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		timestamp := time.Now().UTC().Format(time.RFC3339Nano)
		res, err := tx.ExecContext(ctx,
			`INSERT INTO movies (
                title, director, release_date, catalog_id,
                log_row_number, log_title, log_director, log_year, log_notes,
                link_status, created_at, updated_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			canonical.Title,
			nullableString(canonical.Director),
			nullableString(canonical.ReleaseDate),
			nullableInt64(catalogID),
			nullableInt(external.RowNumber),
			nullableString(external.Title),
			nullableString(external.Director),
			nullableString(external.Year),
			nullableString(external.Notes),
			LinkStatusPending,
			timestamp,
			timestamp,
		)
		if err != nil {
			return fmt.Errorf("insert linked movie: %w", err)
		}
		movieID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		return upsertAnalysis(ctx, tx, movieID, analysis)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, movieID)
}

// ApproveLink marks a pending linkage as approved.
func (s *Store) ApproveLink(ctx context.Context, movieID int64) error {
	return s.setLinkStatus(ctx, movieID, LinkStatusPending, LinkStatusApproved)
}

// RejectLink removes a pending linkage and its analysis, returning the
// movie to the unlinked pool.
func (s *Store) RejectLink(ctx context.Context, movieID int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		timestamp := time.Now().UTC().Format(time.RFC3339Nano)
		res, err := tx.ExecContext(ctx,
			`UPDATE movies
             SET log_row_number = NULL, log_title = NULL, log_director = NULL,
                 log_year = NULL, log_notes = NULL, link_status = NULL, updated_at = ?
             WHERE id = ? AND link_status = ?`,
			timestamp, movieID, LinkStatusPending,
		)
		if err != nil {
			return fmt.Errorf("clear linkage: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("movie %d has no pending linkage", movieID)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM match_analyses WHERE movie_id = ?`, movieID); err != nil {
			return fmt.Errorf("delete analysis: %w", err)
		}
		return nil
	})
}

// GetAnalysis fetches the stored analysis for a movie. Returns nil when
// absent.
func (s *Store) GetAnalysis(ctx context.Context, movieID int64) (*Analysis, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT movie_id, confidence_score, severity, mismatches_json,
                title_similarity, director_similarity, year_difference,
                created_at, updated_at
         FROM match_analyses WHERE movie_id = ?`, movieID)

	var (
		analysis       Analysis
		mismatchesJSON string
		createdRaw     string
		updatedRaw     string
	)
	err := row.Scan(
		&analysis.MovieID,
		&analysis.ConfidenceScore,
		&analysis.Severity,
		&mismatchesJSON,
		&analysis.TitleSimilarity,
		&analysis.DirectorSimilarity,
		&analysis.YearDifference,
		&createdRaw,
		&updatedRaw,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis: %w", err)
	}
	if mismatchesJSON != "" {
		if err := json.Unmarshal([]byte(mismatchesJSON), &analysis.Mismatches); err != nil {
			return nil, fmt.Errorf("decode mismatches: %w", err)
		}
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		analysis.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		analysis.UpdatedAt = updated
	}
	return &analysis, nil
}

func (s *Store) setLinkStatus(ctx context.Context, movieID int64, from, to LinkStatus) error {
	res, err := s.execWithRetry(ctx,
		`UPDATE movies SET link_status = ?, updated_at = ? WHERE id = ? AND link_status = ?`,
		to, time.Now().UTC().Format(time.RFC3339Nano), movieID, from,
	)
	if err != nil {
		return fmt.Errorf("set link status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("movie %d is not in %s state", movieID, from)
	}
	return nil
}

func upsertAnalysis(ctx context.Context, tx *sql.Tx, movieID int64, analysis reconcile.MatchAnalysis) error {
	mismatches := analysis.Mismatches
	if mismatches == nil {
		mismatches = []string{}
	}
	mismatchesJSON, err := json.Marshal(mismatches)
	if err != nil {
		return fmt.Errorf("encode mismatches: %w", err)
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO match_analyses (
            movie_id, confidence_score, severity, mismatches_json,
            title_similarity, director_similarity, year_difference,
            created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (movie_id) DO UPDATE SET
            confidence_score = excluded.confidence_score,
            severity = excluded.severity,
            mismatches_json = excluded.mismatches_json,
            title_similarity = excluded.title_similarity,
            director_similarity = excluded.director_similarity,
            year_difference = excluded.year_difference,
            updated_at = excluded.updated_at`,
		movieID,
		analysis.ConfidenceScore,
		string(analysis.Severity),
		string(mismatchesJSON),
		analysis.TitleSimilarity,
		analysis.DirectorSimilarity,
		analysis.YearDifference,
		timestamp,
		timestamp,
	)
	if err != nil {
		return fmt.Errorf("upsert analysis: %w", err)
	}
	return nil
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if err := fn(tx); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
}

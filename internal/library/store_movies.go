package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// AddMovie inserts a canonical record with no viewing-log linkage.
func (s *Store) AddMovie(ctx context.Context, title, director, releaseDate string, catalogID int64) (*Movie, error) {
	if title == "" {
		return nil, errors.New("title is required")
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO movies (title, director, release_date, catalog_id, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		title,
		nullableString(director),
		nullableString(releaseDate),
		nullableInt64(catalogID),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert movie: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches a movie by identifier. Returns nil when absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*Movie, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)
	movie, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	return movie, nil
}

// UnlinkedMovies returns movies that carry no viewing-log linkage, in id
// order. This ordering is what makes greedy assignment deterministic
// across runs.
func (s *Store) UnlinkedMovies(ctx context.Context) ([]*Movie, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE log_row_number IS NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query unlinked movies: %w", err)
	}
	defer rows.Close()
	return collectMovies(rows)
}

// List returns all movies in id order.
func (s *Store) List(ctx context.Context) ([]*Movie, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()
	return collectMovies(rows)
}

// PendingReview returns movies whose linkage awaits approval, in id order.
func (s *Store) PendingReview(ctx context.Context) ([]*Movie, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE link_status = ? ORDER BY id`, LinkStatusPending)
	if err != nil {
		return nil, fmt.Errorf("query pending review: %w", err)
	}
	defer rows.Close()
	return collectMovies(rows)
}

// ConsumedRowNumbers returns the viewing-log row numbers already claimed
// by existing linkages.
func (s *Store) ConsumedRowNumbers(ctx context.Context) (map[int]struct{}, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT log_row_number FROM movies WHERE log_row_number IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("query consumed rows: %w", err)
	}
	defer rows.Close()

	consumed := make(map[int]struct{})
	for rows.Next() {
		var rowNumber int
		if err := rows.Scan(&rowNumber); err != nil {
			return nil, err
		}
		consumed[rowNumber] = struct{}{}
	}
	return consumed, rows.Err()
}

func collectMovies(rows *sql.Rows) ([]*Movie, error) {
	var movies []*Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	return movies, rows.Err()
}

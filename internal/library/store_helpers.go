package library

import (
	"database/sql"
	"errors"
	"time"
)

const movieColumns = "id, title, director, release_date, catalog_id, log_row_number, log_title, log_director, log_year, log_notes, link_status, created_at, updated_at"

func scanMovie(scanner interface{ Scan(dest ...any) error }) (*Movie, error) {
	var (
		id          int64
		title       string
		director    sql.NullString
		releaseDate sql.NullString
		catalogID   sql.NullInt64
		logRow      sql.NullInt64
		logTitle    sql.NullString
		logDirector sql.NullString
		logYear     sql.NullString
		logNotes    sql.NullString
		linkStatus  sql.NullString
		createdRaw  string
		updatedRaw  string
	)

	if err := scanner.Scan(
		&id,
		&title,
		&director,
		&releaseDate,
		&catalogID,
		&logRow,
		&logTitle,
		&logDirector,
		&logYear,
		&logNotes,
		&linkStatus,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	movie := &Movie{
		ID:           id,
		Title:        title,
		Director:     director.String,
		ReleaseDate:  releaseDate.String,
		CatalogID:    catalogID.Int64,
		LogRowNumber: int(logRow.Int64),
		LogTitle:     logTitle.String,
		LogDirector:  logDirector.String,
		LogYear:      logYear.String,
		LogNotes:     logNotes.String,
		LinkStatus:   LinkStatus(linkStatus.String),
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		movie.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		movie.UpdatedAt = updated
	}
	return movie, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt64(value int64) any {
	if value == 0 {
		return nil
	}
	return value
}

func nullableInt(value int) any {
	if value == 0 {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

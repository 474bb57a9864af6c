package library

import (
	"time"

	"reelsync/internal/reconcile"
)

// LinkStatus tracks the approval state of a movie's viewing-log linkage.
type LinkStatus string

const (
	// LinkStatusPending marks a linkage written by the dispositioner that
	// has not yet been confirmed by a human.
	LinkStatusPending LinkStatus = "pending_approval"
	// LinkStatusApproved marks a linkage confirmed during review.
	LinkStatusApproved LinkStatus = "approved"
)

// Movie is a canonical collection record persisted in SQLite.
type Movie struct {
	ID          int64
	Title       string
	Director    string
	ReleaseDate string
	// CatalogID is the optional third-party catalog identifier (TMDB).
	CatalogID int64

	// Linkage fields, populated once a viewing-log row is attached.
	LogRowNumber int
	LogTitle     string
	LogDirector  string
	LogYear      string
	LogNotes     string
	LinkStatus   LinkStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Linked reports whether the movie already carries a viewing-log row.
func (m *Movie) Linked() bool {
	return m.LogRowNumber > 0
}

// Canonical converts the movie into the engine's immutable snapshot form.
func (m *Movie) Canonical() reconcile.CanonicalRecord {
	return reconcile.CanonicalRecord{
		ID:          m.ID,
		Title:       m.Title,
		Director:    m.Director,
		ReleaseDate: m.ReleaseDate,
		Linked:      m.Linked(),
	}
}

// Analysis is the persisted form of a match analysis, keyed by movie.
type Analysis struct {
	MovieID            int64
	ConfidenceScore    int
	Severity           string
	Mismatches         []string
	TitleSimilarity    int
	DirectorSimilarity int
	YearDifference     int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

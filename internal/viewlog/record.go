package viewlog

import "reelsync/internal/reconcile"

// External converts the row into the engine's external record form.
func (r Row) External() reconcile.ExternalRecord {
	return reconcile.ExternalRecord{
		RowNumber:   r.RowNumber,
		Title:       r.Title,
		Year:        r.Year,
		Director:    r.Director,
		Notes:       r.Notes,
		WatchedWith: r.WatchedWith,
		WatchedOn:   r.WatchedOn,
		CompletedAt: r.CompletedAt,
	}
}

// Externals converts every admitted row, preserving order.
func Externals(rows []Row) []reconcile.ExternalRecord {
	records := make([]reconcile.ExternalRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.External())
	}
	return records
}

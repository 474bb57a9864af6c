// Package library persists the movie collection in SQLite.
//
// Two tables matter: movies holds canonical records with optional
// viewing-log linkage columns, and match_analyses holds the companion
// confidence analysis, keyed 1:1 by movie id with upsert semantics.
// Linkage and analysis are always written in one transaction per movie
// so a crash mid-batch leaves whole candidates either applied or not.
package library

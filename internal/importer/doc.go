// Package importer builds canonical movie records from viewing-log rows
// by querying a metadata provider.
//
// Rows are processed strictly in order, one provider lookup at a time,
// with a pacer spacing the calls. When the provider has no match for a
// row the importer falls back to a minimal record built from the row
// itself, flagged for manual review.
package importer

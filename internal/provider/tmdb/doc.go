// Package tmdb provides the minimal TMDB API client used during
// provider-backed imports.
//
// It authenticates requests and exposes movie search with an optional
// release-year filter plus credit lookups for director attribution.
// Responses are strongly typed so the importer can turn them into
// canonical records. Options allow tests to supply custom HTTP clients
// without modifying production code.
package tmdb

// Package textutil provides text normalization and similarity scoring for
// matching viewing-log entries against library metadata.
//
// The primary use cases are:
//   - Case-folding and trimming strings before comparison
//   - Computing a normalized edit-distance similarity on a 0-100 scale
//   - Splitting titles into folded word sets for overlap scoring
//
// Normalization is deliberately limited to Unicode case folding and
// whitespace trimming; no locale-specific rules are applied.
package textutil

// Package reconcile pairs viewing-log rows with library movie records.
//
// The engine works in three passes. Score ranks a single pairing with an
// additive heuristic over title, director, and year agreement. Analyze
// produces an independent confidence score with mismatch explanations.
// Assign walks the unlinked library records in order and greedily claims
// the best-scoring unconsumed log row for each, one-to-one. Dispose then
// splits the ranked candidates into auto-approved and manual-review
// buckets and, outside dry-run, persists the accepted pairings one
// transaction at a time.
package reconcile

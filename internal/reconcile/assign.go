package reconcile

import "sort"

// matchGate is the minimum heuristic score a pairing must exceed before
// it can be claimed.
const matchGate = 70

// Assign performs a greedy one-to-one assignment between library records
// and log rows. Library records are processed in input order; each scans
// every remaining row and claims the single best pairing scoring above
// the gate. When two records contest the same row, the record processed
// first wins and later ones simply see the row as consumed. The tie-break
// is deliberate: canonical-iteration order is the documented policy, not
// an optimal bipartite matching.
//
// Consumed-row tracking is local to this call, so runs compose and can be
// tested in isolation. The result is sorted descending by score.
func Assign(canonical []CanonicalRecord, external []ExternalRecord) []MatchCandidate {
	consumed := make(map[int]struct{}, len(external))
	var candidates []MatchCandidate

	for _, record := range canonical {
		if record.Linked {
			continue
		}

		bestIndex := -1
		bestScore := matchGate
		var bestReasons []string
		for i, row := range external {
			if _, taken := consumed[row.RowNumber]; taken {
				continue
			}
			score, reasons := Score(record, row)
			if score > bestScore {
				bestIndex = i
				bestScore = score
				bestReasons = reasons
			}
		}

		if bestIndex < 0 {
			continue
		}
		row := external[bestIndex]
		consumed[row.RowNumber] = struct{}{}
		candidates = append(candidates, MatchCandidate{
			Canonical: record,
			External:  row,
			Score:     bestScore,
			Reasons:   bestReasons,
			Analysis:  Analyze(record, row),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

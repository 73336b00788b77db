package affiliation

import "strings"

// Deduplicate collapses near-duplicate matches. Two matches are duplicates
// when they name the same person (case-insensitive), carry the same
// affiliation type, and their contexts overlap substantially, meaning one
// contains the other after whitespace normalization. This happens when the full
// organization name and its abbreviation both hit inside one context window,
// or when overlapping sections scan the same biography twice.
//
// The survivor is the higher-confidence match; ties keep the first
// encountered. Output preserves first-occurrence order and the operation is
// idempotent.
func Deduplicate(matches []Match) []Match {
	var kept []Match
	for _, m := range matches {
		var dups []int
		for i, k := range kept {
			if isDuplicate(k, m) {
				dups = append(dups, i)
			}
		}
		if len(dups) == 0 {
			kept = append(kept, m)
			continue
		}

		// The incoming match can bridge kept entries that were not duplicates
		// of each other, for example when its wider context contains both of
		// theirs. Collapse the whole group at once, or a later pass would
		// still find work to do.
		winner := kept[dups[0]]
		for _, i := range dups[1:] {
			if kept[i].Confidence.Rank() > winner.Confidence.Rank() {
				winner = kept[i]
			}
		}
		if m.Confidence.Rank() > winner.Confidence.Rank() {
			winner = m
		}

		// The winner takes the earliest slot so output order stays
		// first-occurrence order; the other group members drop out.
		kept[dups[0]] = winner
		next := kept[:dups[0]+1]
		drop := 1
		for i := dups[0] + 1; i < len(kept); i++ {
			if drop < len(dups) && i == dups[drop] {
				drop++
				continue
			}
			next = append(next, kept[i])
		}
		kept = next
	}
	return kept
}

func isDuplicate(a, b Match) bool {
	if !strings.EqualFold(strings.TrimSpace(a.PersonName), strings.TrimSpace(b.PersonName)) {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	return contextsOverlap(a.Context, b.Context)
}

func contextsOverlap(a, b string) bool {
	na := normalizeContext(a)
	nb := normalizeContext(b)
	if na == "" || nb == "" {
		return na == nb
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

func normalizeContext(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

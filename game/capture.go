package game

// CaptureKind tags the outcome of resolving a play against the table.
type CaptureKind int

const (
	// CaptureNone: no capture is possible; the played card joins the table.
	CaptureNone CaptureKind = iota
	// CaptureAuto: exactly one capture exists and is applied without input.
	CaptureAuto
	// CaptureAwaitExact: several single table cards match the played card;
	// the player must pick one.
	CaptureAwaitExact
	// CaptureAwaitSum: several sum combinations match; the player must
	// pick one.
	CaptureAwaitSum
)

// CaptureOutcome is the result of ResolveCapture. Exactly one of Cards,
// ExactOptions or SumOptions is populated, according to Kind.
type CaptureOutcome struct {
	Kind         CaptureKind
	Cards        []Card   // table cards captured (CaptureAuto)
	ExactOptions []Card   // candidate single cards (CaptureAwaitExact)
	SumOptions   [][]Card // candidate combinations (CaptureAwaitSum)
}

// ResolveCapture maps a played card and the current table to a capture
// outcome. The table is never mutated here; the session applies the
// outcome once it is definite.
//
// Exact matches take priority over sums: face cards (J/Q/K) match table
// cards of identical rank, number cards match by numeric value. Only
// when no exact match exists are sum combinations considered.
func ResolveCapture(played Card, table []Card) CaptureOutcome {
	var exact []Card
	for _, tc := range table {
		if played.IsFace() {
			if tc.Rank == played.Rank {
				exact = append(exact, tc)
			}
		} else if tc.Value() == played.Value() {
			exact = append(exact, tc)
		}
	}

	switch {
	case len(exact) == 1:
		return CaptureOutcome{Kind: CaptureAuto, Cards: exact}
	case len(exact) > 1:
		return CaptureOutcome{Kind: CaptureAwaitExact, ExactOptions: exact}
	}

	combos := SumCombinations(played.Value(), table)
	switch {
	case len(combos) == 0:
		return CaptureOutcome{Kind: CaptureNone}
	case len(combos) == 1:
		return CaptureOutcome{Kind: CaptureAuto, Cards: combos[0]}
	default:
		return CaptureOutcome{Kind: CaptureAwaitSum, SumOptions: combos}
	}
}

// SumCombinations enumerates every subset of table whose values sum to
// target, in table order, via include/exclude backtracking. A branch is
// pruned once its running sum reaches the target. Subsets with the same
// values but different cards are distinct combinations.
func SumCombinations(target int, table []Card) [][]Card {
	var combos [][]Card
	var current []Card

	var walk func(start, sum int)
	walk = func(start, sum int) {
		if sum == target {
			combos = append(combos, append([]Card(nil), current...))
		}
		if sum >= target || start >= len(table) {
			return
		}
		current = append(current, table[start])
		walk(start+1, sum+table[start].Value())
		current = current[:len(current)-1]
		walk(start+1, sum)
	}
	walk(0, 0)
	return combos
}

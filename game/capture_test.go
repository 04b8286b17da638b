package game

import "testing"

func TestCardValues(t *testing.T) {
	cases := []struct {
		rank Rank
		want int
	}{
		{RankAce, 1},
		{Rank2, 2},
		{Rank7, 7},
		{RankQueen, 8},
		{RankJack, 9},
		{RankKing, 10},
	}
	for _, c := range cases {
		if got := NewCard(c.rank, SuitCups).Value(); got != c.want {
			t.Errorf("value of %s: expected %d, got %d", c.rank, c.want, got)
		}
	}
}

func TestResolveCaptureExactBeatsSum(t *testing.T) {
	// A 7 on the table outranks the 3+4 combination.
	table := []Card{
		NewCard(Rank7, SuitCups),
		NewCard(Rank3, SuitSwords),
		NewCard(Rank4, SuitClubs),
	}
	out := ResolveCapture(NewCard(Rank7, SuitCoins), table)
	if out.Kind != CaptureAuto {
		t.Fatalf("expected CaptureAuto, got %v", out.Kind)
	}
	if len(out.Cards) != 1 || out.Cards[0].ID != "7-cups" {
		t.Errorf("expected single capture of 7-cups, got %v", out.Cards)
	}
}

func TestResolveCaptureFaceMatchesByRank(t *testing.T) {
	table := []Card{NewCard(RankJack, SuitCups), NewCard(Rank2, SuitSwords)}
	out := ResolveCapture(NewCard(RankJack, SuitCoins), table)
	if out.Kind != CaptureAuto {
		t.Fatalf("expected CaptureAuto, got %v", out.Kind)
	}
	if out.Cards[0].ID != "J-cups" {
		t.Errorf("expected capture of J-cups, got %v", out.Cards)
	}
}

func TestResolveCaptureFaceFallsBackToSum(t *testing.T) {
	// No jack on the table; a jack is worth 9 and picks up 4+5.
	table := []Card{NewCard(Rank4, SuitCups), NewCard(Rank5, SuitSwords)}
	out := ResolveCapture(NewCard(RankJack, SuitCoins), table)
	if out.Kind != CaptureAuto {
		t.Fatalf("expected CaptureAuto, got %v", out.Kind)
	}
	if len(out.Cards) != 2 {
		t.Errorf("expected 2 captured cards, got %v", out.Cards)
	}
}

func TestResolveCaptureMultipleExactOptions(t *testing.T) {
	table := []Card{NewCard(Rank7, SuitCups), NewCard(Rank7, SuitSwords)}
	out := ResolveCapture(NewCard(Rank7, SuitCoins), table)
	if out.Kind != CaptureAwaitExact {
		t.Fatalf("expected CaptureAwaitExact, got %v", out.Kind)
	}
	if len(out.ExactOptions) != 2 {
		t.Errorf("expected 2 exact options, got %d", len(out.ExactOptions))
	}
}

func TestResolveCaptureMultipleSumOptions(t *testing.T) {
	// 1+6 and 3+4 both sum to 7.
	table := []Card{
		NewCard(RankAce, SuitCups),
		NewCard(Rank6, SuitSwords),
		NewCard(Rank3, SuitClubs),
		NewCard(Rank4, SuitCoins),
	}
	out := ResolveCapture(NewCard(Rank7, SuitCoins), table)
	if out.Kind != CaptureAwaitSum {
		t.Fatalf("expected CaptureAwaitSum, got %v", out.Kind)
	}
	if len(out.SumOptions) != 2 {
		t.Errorf("expected 2 sum options, got %d", len(out.SumOptions))
	}
}

func TestResolveCaptureNone(t *testing.T) {
	table := []Card{NewCard(Rank5, SuitCups), NewCard(Rank6, SuitSwords)}
	out := ResolveCapture(NewCard(Rank2, SuitCoins), table)
	if out.Kind != CaptureNone {
		t.Fatalf("expected CaptureNone, got %v", out.Kind)
	}

	out = ResolveCapture(NewCard(Rank2, SuitCoins), nil)
	if out.Kind != CaptureNone {
		t.Fatalf("expected CaptureNone on empty table, got %v", out.Kind)
	}
}

func TestSumCombinationsDistinguishesEqualValues(t *testing.T) {
	// Two different 4s yield two distinct 3+4 combinations.
	table := []Card{
		NewCard(Rank3, SuitCups),
		NewCard(Rank4, SuitSwords),
		NewCard(Rank4, SuitClubs),
	}
	combos := SumCombinations(7, table)
	if len(combos) != 2 {
		t.Fatalf("expected 2 combinations, got %d", len(combos))
	}
	for _, combo := range combos {
		sum := 0
		for _, c := range combo {
			sum += c.Value()
		}
		if sum != 7 {
			t.Errorf("combination %v sums to %d, not 7", combo, sum)
		}
	}
}

func TestSumCombinationsSingleAndMulti(t *testing.T) {
	table := []Card{
		NewCard(Rank2, SuitCups),
		NewCard(Rank3, SuitSwords),
		NewCard(Rank5, SuitClubs),
	}
	combos := SumCombinations(5, table)
	if len(combos) != 2 {
		t.Fatalf("expected 2 combinations (2+3 and 5), got %d", len(combos))
	}
}

func TestSumCombinationsNoMatch(t *testing.T) {
	table := []Card{NewCard(RankKing, SuitCups)}
	if combos := SumCombinations(3, table); len(combos) != 0 {
		t.Errorf("expected no combinations, got %v", combos)
	}
	if combos := SumCombinations(3, nil); len(combos) != 0 {
		t.Errorf("expected no combinations on empty table, got %v", combos)
	}
}

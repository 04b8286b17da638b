package game

import "testing"

func TestRoundScoreCategories(t *testing.T) {
	s, _, _ := newHeadToHead(t)
	p0, p1 := s.Seats[0], s.Seats[1]

	// p0: more cards, more coins, the seven of coins, more sevens.
	p0.Captured = []Card{
		NewCard(Rank7, SuitCoins),
		NewCard(Rank7, SuitCups),
		NewCard(Rank2, SuitCoins),
		NewCard(Rank3, SuitCoins),
		NewCard(Rank4, SuitSwords),
	}
	p1.Captured = []Card{
		NewCard(RankKing, SuitClubs),
		NewCard(Rank5, SuitCups),
	}
	p0.Chkobbas = 1

	s.calculateRoundScore()

	r := s.RoundResults
	if r.Winners.MostCards != "p0" {
		t.Errorf("most cards: expected p0, got %q", r.Winners.MostCards)
	}
	if r.Winners.MostCoins != "p0" {
		t.Errorf("most coins: expected p0, got %q", r.Winners.MostCoins)
	}
	if r.Winners.SevenOfCoins != "p0" {
		t.Errorf("seven of coins: expected p0, got %q", r.Winners.SevenOfCoins)
	}
	if r.Winners.MostSevensOrSixes != "p0" {
		t.Errorf("sevens: expected p0, got %q", r.Winners.MostSevensOrSixes)
	}
	// 4 categories + 1 chkobba.
	if r.Points["p0"] != 5 {
		t.Errorf("expected 5 points for p0, got %d", r.Points["p0"])
	}
	if r.Points["p1"] != 0 {
		t.Errorf("expected 0 points for p1, got %d", r.Points["p1"])
	}
	if s.MatchScores["p0"] != 5 {
		t.Errorf("round points should fold into match scores, got %d", s.MatchScores["p0"])
	}
	if r.Chkobbas["p0"] != 1 || r.Chkobbas["p1"] != 0 {
		t.Errorf("unexpected chkobba detail %v", r.Chkobbas)
	}
}

func TestRoundScoreTiedCategoriesScoreNothing(t *testing.T) {
	s, _, _ := newHeadToHead(t)
	s.Seats[0].Captured = []Card{NewCard(Rank2, SuitCoins), NewCard(Rank7, SuitCups)}
	s.Seats[1].Captured = []Card{NewCard(Rank3, SuitCoins), NewCard(Rank7, SuitSwords)}

	s.calculateRoundScore()

	r := s.RoundResults
	if r.Winners.MostCards != winnerTie {
		t.Errorf("expected tie on cards, got %q", r.Winners.MostCards)
	}
	if r.Winners.MostCoins != winnerTie {
		t.Errorf("expected tie on coins, got %q", r.Winners.MostCoins)
	}
	if r.Winners.SevenOfCoins != "" {
		t.Errorf("nobody holds the seven of coins, got %q", r.Winners.SevenOfCoins)
	}
	if r.Points["p0"] != 0 || r.Points["p1"] != 0 {
		t.Errorf("tied round should score nothing, got %v", r.Points)
	}
}

func TestRoundScoreSevensTiebreakBySixes(t *testing.T) {
	s, _, _ := newHeadToHead(t)
	// One seven each, but p1 holds more sixes.
	s.Seats[0].Captured = []Card{NewCard(Rank7, SuitCups), NewCard(Rank2, SuitClubs)}
	s.Seats[1].Captured = []Card{NewCard(Rank7, SuitSwords), NewCard(Rank6, SuitCups)}

	s.calculateRoundScore()

	r := s.RoundResults
	if r.Winners.MostSevensOrSixes != "p1" {
		t.Errorf("sixes should break the sevens tie for p1, got %q", r.Winners.MostSevensOrSixes)
	}
	if r.Counts.Sixes == nil {
		t.Error("sixes counts should be reported when the tiebreak runs")
	}
}

func TestRoundScoreSevensAndSixesBothTied(t *testing.T) {
	s, _, _ := newHeadToHead(t)
	s.Seats[0].Captured = []Card{NewCard(Rank7, SuitCups), NewCard(Rank6, SuitClubs)}
	s.Seats[1].Captured = []Card{NewCard(Rank7, SuitSwords), NewCard(Rank6, SuitCups)}

	s.calculateRoundScore()

	if got := s.RoundResults.Winners.MostSevensOrSixes; got != winnerTie {
		t.Errorf("double tie should award nothing, got %q", got)
	}
}

func TestTeamScorePoolsPartnerPiles(t *testing.T) {
	s := newTeamSession(t)
	for _, p := range s.Seats {
		p.Captured, p.Chkobbas = nil, 0
	}

	// Seats 0 and 2 are TeamA. Each partner alone holds fewer cards than
	// seat 1, but pooled they win most cards; the seven of coins captured
	// by seat 2 credits TeamA.
	s.Seats[0].Captured = []Card{NewCard(Rank2, SuitCups), NewCard(Rank3, SuitCups)}
	s.Seats[2].Captured = []Card{NewCard(Rank7, SuitCoins), NewCard(Rank4, SuitClubs)}
	s.Seats[1].Captured = []Card{
		NewCard(Rank5, SuitSwords), NewCard(Rank6, SuitSwords), NewCard(Rank2, SuitSwords),
	}
	s.Seats[2].Chkobbas = 2

	s.calculateRoundScore()

	r := s.RoundResults
	if r.Winners.MostCards != TeamA {
		t.Errorf("pooled pile should win most cards for TeamA, got %q", r.Winners.MostCards)
	}
	if r.Winners.SevenOfCoins != TeamA {
		t.Errorf("seven of coins should credit TeamA, got %q", r.Winners.SevenOfCoins)
	}
	// Most cards + most coins + seven of coins + most sevens + 2 chkobbas.
	if r.Points[TeamA] != 6 {
		t.Errorf("expected 6 points for TeamA, got %d", r.Points[TeamA])
	}
	if s.MatchScores[TeamA] != 6 || s.MatchScores[TeamB] != 0 {
		t.Errorf("unexpected match scores %v", s.MatchScores)
	}
	// Chkobba detail stays per player even in team mode.
	if r.Chkobbas["p2"] != 2 {
		t.Errorf("expected 2 chkobbas for p2, got %d", r.Chkobbas["p2"])
	}
}

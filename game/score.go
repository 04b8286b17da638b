package game

// Round scoring. Each category is worth one point to the winning side
// and nothing on a tie; chkobbas add one point apiece. In team mode the
// partners' piles are pooled before every comparison and the
// seven-of-coins point credits the capturing player's team.

const winnerTie = "tie"

// RoundWinners records which side took each category ("tie" on a tie,
// "" when nobody holds the seven of coins).
type RoundWinners struct {
	MostCards         string `json:"mostCards"`
	MostCoins         string `json:"mostCoins"`
	SevenOfCoins      string `json:"sevenOfCoins"`
	MostSevensOrSixes string `json:"mostSevensOrSixes"`
}

// RoundCounts holds per-side capture counts for the round summary.
type RoundCounts struct {
	Cards  map[string]int `json:"cards"`
	Coins  map[string]int `json:"coins"`
	Sevens map[string]int `json:"sevens"`
	Sixes  map[string]int `json:"sixes,omitempty"`
}

// RoundResults is the detailed outcome of one round, keyed by side
// (player ids head-to-head, team names in team mode) except Chkobbas,
// which stays per player.
type RoundResults struct {
	Points   map[string]int `json:"points"`
	Winners  RoundWinners   `json:"winners"`
	Chkobbas map[string]int `json:"chkobbas"`
	Counts   RoundCounts    `json:"counts"`
}

// sides returns the two scoring sides in seat order.
func (s *Session) sides() [2]string {
	if s.Mode == ModeTeam {
		return [2]string{TeamA, TeamB}
	}
	return [2]string{s.Seats[0].ID, s.Seats[1].ID}
}

// calculateRoundScore fills RoundResults for the finished round and
// folds the round points into the match scores.
func (s *Session) calculateRoundScore() {
	sides := s.sides()

	piles := map[string][]Card{sides[0]: nil, sides[1]: nil}
	chkobbas := map[string]int{}
	sideChkobbas := map[string]int{sides[0]: 0, sides[1]: 0}
	sevenOfCoinsSide := ""
	for seat, p := range s.Seats {
		key := s.scoreKey(seat)
		piles[key] = append(piles[key], p.Captured...)
		chkobbas[p.ID] = p.Chkobbas
		sideChkobbas[key] += p.Chkobbas
		if sevenOfCoinsSide == "" {
			for _, c := range p.Captured {
				if c.IsSevenOfCoins() {
					sevenOfCoinsSide = key
					break
				}
			}
		}
	}

	results := &RoundResults{
		Points:   map[string]int{sides[0]: 0, sides[1]: 0},
		Chkobbas: chkobbas,
		Counts: RoundCounts{
			Cards:  map[string]int{},
			Coins:  map[string]int{},
			Sevens: map[string]int{},
		},
	}

	count := func(side string, match func(Card) bool) int {
		n := 0
		for _, c := range piles[side] {
			if match(c) {
				n++
			}
		}
		return n
	}
	award := func(countA, countB int) string {
		switch {
		case countA > countB:
			results.Points[sides[0]]++
			return sides[0]
		case countB > countA:
			results.Points[sides[1]]++
			return sides[1]
		default:
			return winnerTie
		}
	}

	results.Counts.Cards[sides[0]] = len(piles[sides[0]])
	results.Counts.Cards[sides[1]] = len(piles[sides[1]])
	results.Winners.MostCards = award(results.Counts.Cards[sides[0]], results.Counts.Cards[sides[1]])

	isCoins := func(c Card) bool { return c.Suit == SuitCoins }
	results.Counts.Coins[sides[0]] = count(sides[0], isCoins)
	results.Counts.Coins[sides[1]] = count(sides[1], isCoins)
	results.Winners.MostCoins = award(results.Counts.Coins[sides[0]], results.Counts.Coins[sides[1]])

	if sevenOfCoinsSide != "" {
		results.Winners.SevenOfCoins = sevenOfCoinsSide
		results.Points[sevenOfCoinsSide]++
	}

	isSeven := func(c Card) bool { return c.Rank == Rank7 }
	results.Counts.Sevens[sides[0]] = count(sides[0], isSeven)
	results.Counts.Sevens[sides[1]] = count(sides[1], isSeven)
	if results.Counts.Sevens[sides[0]] != results.Counts.Sevens[sides[1]] {
		results.Winners.MostSevensOrSixes = award(results.Counts.Sevens[sides[0]], results.Counts.Sevens[sides[1]])
	} else {
		// Sevens tied; fall back to sixes. A second tie scores nothing.
		isSix := func(c Card) bool { return c.Rank == Rank6 }
		results.Counts.Sixes = map[string]int{
			sides[0]: count(sides[0], isSix),
			sides[1]: count(sides[1], isSix),
		}
		results.Winners.MostSevensOrSixes = award(results.Counts.Sixes[sides[0]], results.Counts.Sixes[sides[1]])
	}

	results.Points[sides[0]] += sideChkobbas[sides[0]]
	results.Points[sides[1]] += sideChkobbas[sides[1]]

	s.MatchScores[sides[0]] += results.Points[sides[0]]
	s.MatchScores[sides[1]] += results.Points[sides[1]]
	s.RoundResults = results
}

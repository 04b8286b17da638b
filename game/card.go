package game

// Suit is one of the four chkobba suits. Coins (dineri) is the suit
// that carries scoring significance.
type Suit string

const (
	SuitCoins  Suit = "coins"
	SuitCups   Suit = "cups"
	SuitSwords Suit = "swords"
	SuitClubs  Suit = "clubs"
)

// Suits lists all suits in deck-generation order.
var Suits = []Suit{SuitCoins, SuitCups, SuitSwords, SuitClubs}

// Rank is the printed rank of a card. The deck has no 8, 9 or 10;
// the face cards fill those numeric values instead.
type Rank string

const (
	Rank2     Rank = "2"
	Rank3     Rank = "3"
	Rank4     Rank = "4"
	Rank5     Rank = "5"
	Rank6     Rank = "6"
	Rank7     Rank = "7"
	RankJack  Rank = "J"
	RankQueen Rank = "Q"
	RankKing  Rank = "K"
	RankAce   Rank = "A"
)

// Ranks lists all ranks in deck-generation order.
var Ranks = []Rank{Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, RankJack, RankQueen, RankKing, RankAce}

// Deal sizes. A 40-card deck divides evenly for both modes: the
// initial deal is 4 table cards plus 3 per seat, and every redeal
// hands out 3 per seat until the deck is gone.
const (
	DeckSize      = 40
	HandSize      = 3
	TableDealSize = 4
)

// rankValues maps ranks to their capture values: J=9, Q=8, K=10, A=1.
var rankValues = map[Rank]int{
	Rank2: 2, Rank3: 3, Rank4: 4, Rank5: 5, Rank6: 6, Rank7: 7,
	RankJack: 9, RankQueen: 8, RankKing: 10, RankAce: 1,
}

// Card is a single immutable card. ID is stable for the lifetime of a
// session and unique within a deck ("7-coins").
type Card struct {
	ID   string `json:"id"`
	Rank Rank   `json:"rank"`
	Suit Suit   `json:"suit"`
}

// NewCard builds a card with its canonical id.
func NewCard(rank Rank, suit Suit) Card {
	return Card{ID: string(rank) + "-" + string(suit), Rank: rank, Suit: suit}
}

// Value returns the card's numeric capture value.
func (c Card) Value() int {
	return rankValues[c.Rank]
}

// IsFace reports whether the card is J, Q or K. Face cards capture by
// rank identity, never by numeric value.
func (c Card) IsFace() bool {
	return c.Rank == RankJack || c.Rank == RankQueen || c.Rank == RankKing
}

// IsSevenOfCoins reports whether the card is the seven of coins, which
// is worth a dedicated scoring point.
func (c Card) IsSevenOfCoins() bool {
	return c.Rank == Rank7 && c.Suit == SuitCoins
}

// String returns the card id, which doubles as a readable label.
func (c Card) String() string {
	return c.ID
}

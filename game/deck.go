package game

import (
	"log/slog"
	"math/rand"
)

// Deck is an ordered 40-card deck. It is built and shuffled once per
// round and only ever shrinks via Deal.
type Deck struct {
	cards []Card
}

// NewDeck generates the full 40-card set and shuffles it.
func NewDeck() *Deck {
	d := &Deck{cards: generateCards()}
	d.shuffle()
	return d
}

func generateCards() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// shuffle applies a uniform random permutation.
func (d *Deck) shuffle() {
	rand.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns the next n cards. If fewer than n remain the
// request is clamped; that never happens when rounds are orchestrated
// correctly, since 40 divides evenly for both seat counts.
func (d *Deck) Deal(n int) []Card {
	if n > len(d.cards) {
		slog.Warn("deal clamped to remaining cards", "tag", "deck", "requested", n, "remaining", len(d.cards))
		n = len(d.cards)
	}
	dealt := d.cards[:n:n]
	d.cards = d.cards[n:]
	return dealt
}

// IsEmpty reports whether the deck has been fully dealt.
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

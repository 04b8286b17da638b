package game

// Player is one seat in a session. It persists across rounds; hand,
// captured pile and chkobba count reset at every round start.
type Player struct {
	ID   string
	Name string
	Send chan []byte // reference to the client's send channel

	Hand     []Card
	Captured []Card
	Chkobbas int
}

// NewPlayer creates a player with the given identity and send channel.
func NewPlayer(id, name string, send chan []byte) *Player {
	return &Player{ID: id, Name: name, Send: send}
}

// AddToHand appends dealt cards to the hand.
func (p *Player) AddToHand(cards []Card) {
	p.Hand = append(p.Hand, cards...)
}

// CardInHand returns the hand card with the given id.
func (p *Player) CardInHand(cardID string) (Card, bool) {
	for _, c := range p.Hand {
		if c.ID == cardID {
			return c, true
		}
	}
	return Card{}, false
}

// RemoveFromHand removes and returns the hand card with the given id.
func (p *Player) RemoveFromHand(cardID string) (Card, bool) {
	for i, c := range p.Hand {
		if c.ID == cardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return c, true
		}
	}
	return Card{}, false
}

// AddCaptured appends cards to the captured pile.
func (p *Player) AddCaptured(cards []Card) {
	p.Captured = append(p.Captured, cards...)
}

// AddChkobba increments the bonus-capture counter.
func (p *Player) AddChkobba() {
	p.Chkobbas++
}

// ResetForNewRound clears the per-round state. Identity and send
// channel are kept for the life of the session.
func (p *Player) ResetForNewRound() {
	p.Hand = nil
	p.Captured = nil
	p.Chkobbas = 0
}

package rooms

import (
	"time"

	"github.com/ImBidou/chkobba-multiplayer/game"
)

// Seat is one occupied position in a room, in join order.
type Seat struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

// Room is a lobby that fills up to its mode's capacity and then hosts
// consecutive game sessions. It survives a finished game so the same
// group can play again.
type Room struct {
	ID          string    `json:"id"`
	Mode        game.Mode `json:"mode"`
	TargetScore int       `json:"targetScore"`
	Seats       []Seat    `json:"seats"`

	// NextStartSeat rotates by one for every session started in this
	// room, so the opening turn moves around the table across games.
	NextStartSeat int       `json:"nextStartSeat"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Capacity returns the seat count the room's mode requires.
func (r *Room) Capacity() int {
	return r.Mode.SeatCount()
}

// IsFull reports whether every seat is taken.
func (r *Room) IsFull() bool {
	return len(r.Seats) >= r.Capacity()
}

// SeatIndex returns the seat of the given player, or -1.
func (r *Room) SeatIndex(playerID string) int {
	for i, s := range r.Seats {
		if s.PlayerID == playerID {
			return i
		}
	}
	return -1
}

package game

import (
	"encoding/json"
	"log/slog"

	"github.com/ImBidou/chkobba-multiplayer/wsutil"
)

// SeatView is the public representation of a seat: hand as a count
// only, never the cards.
type SeatView struct {
	Seat          int    `json:"seat"`
	ID            string `json:"id"`
	Name          string `json:"name"`
	Team          string `json:"team,omitempty"`
	HandCount     int    `json:"handCount"`
	CapturedCount int    `json:"capturedCount"`
	Chkobbas      int    `json:"chkobbas"`
}

// StateMsg is the state snapshot broadcast to one viewer. The viewer's
// own hand is included in full; pending choice options appear only when
// the gate belongs to that viewer.
type StateMsg struct {
	Type        string         `json:"type"`
	SessionID   string         `json:"sessionId"`
	Mode        Mode           `json:"mode"`
	TargetScore int            `json:"targetScore"`
	Phase       string         `json:"phase"`
	Table       []Card         `json:"table"`
	DeckSize    int            `json:"deckSize"`
	Seats       []SeatView     `json:"seats"`
	YourSeat    int            `json:"yourSeat"`
	YourHand    []Card         `json:"yourHand"`
	CurrentSeat int            `json:"currentSeat"`
	Scores      map[string]int `json:"scores"`

	LastCaptureBy string        `json:"lastCaptureBy,omitempty"`
	RoundResults  *RoundResults `json:"roundResults,omitempty"`

	// Choice-gate payload, gated viewer only.
	PlayedCard   *Card    `json:"playedCard,omitempty"`
	ExactOptions []Card   `json:"exactOptions,omitempty"`
	SumOptions   [][]Card `json:"sumOptions,omitempty"`

	// Round-over / tie bookkeeping: ids of seats already heard from.
	ReadySeats   []string `json:"readySeats,omitempty"`
	DecidedSeats []string `json:"decidedSeats,omitempty"`
}

// ErrorMsg is sent to a single player whose action was rejected. No
// state changes accompany it.
type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GameOverMsg closes a completed or tied match. Winner is the winning
// side's score key, empty on a tie.
type GameOverMsg struct {
	Type   string         `json:"type"`
	Winner string         `json:"winner,omitempty"`
	Scores map[string]int `json:"scores"`
	Reason string         `json:"reason"`
}

// SessionEndedMsg tells remaining seats the session was torn down.
type SessionEndedMsg struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
	Player string `json:"player,omitempty"`
}

// BuildStateForSeat returns the filtered snapshot for one viewer.
func (s *Session) BuildStateForSeat(seat int) StateMsg {
	viewer := s.Seats[seat]

	seats := make([]SeatView, len(s.Seats))
	for i, p := range s.Seats {
		sv := SeatView{
			Seat:          i,
			ID:            p.ID,
			Name:          p.Name,
			HandCount:     len(p.Hand),
			CapturedCount: len(p.Captured),
			Chkobbas:      p.Chkobbas,
		}
		if s.Mode == ModeTeam {
			sv.Team = s.TeamOf(i)
		}
		seats[i] = sv
	}

	hand := viewer.Hand
	if hand == nil {
		hand = []Card{}
	}
	table := s.Table
	if table == nil {
		table = []Card{}
	}

	msg := StateMsg{
		Type:          "game_state",
		SessionID:     s.ID,
		Mode:          s.Mode,
		TargetScore:   s.TargetScore,
		Phase:         s.Phase.String(),
		Table:         table,
		DeckSize:      s.deck.Remaining(),
		Seats:         seats,
		YourSeat:      seat,
		YourHand:      hand,
		CurrentSeat:   s.CurrentSeat,
		Scores:        s.MatchScores,
		LastCaptureBy: s.LastCaptureBy,
		RoundResults:  s.RoundResults,
	}

	if s.gate != nil && s.gate.seat == seat {
		played := s.gate.played
		msg.PlayedCard = &played
		msg.ExactOptions = s.gate.exactOptions
		msg.SumOptions = s.gate.sumOptions
	}
	for id := range s.readyForNext {
		msg.ReadySeats = append(msg.ReadySeats, id)
	}
	for id := range s.tieDecisions {
		msg.DecidedSeats = append(msg.DecidedSeats, id)
	}
	return msg
}

func (s *Session) broadcastState() {
	for i, p := range s.Seats {
		state := s.BuildStateForSeat(i)
		data, err := json.Marshal(state)
		if err != nil {
			slog.Error("marshaling session state", "tag", "session", "session", s.ID, "err", err)
			continue
		}
		if p.Send != nil {
			wsutil.SafeSend(p.Send, data)
		}
	}
}

func (s *Session) sendError(seat int, code, message string) {
	p := s.Seats[seat]
	if p == nil || p.Send == nil {
		return
	}
	data, _ := json.Marshal(ErrorMsg{Type: "error", Code: code, Message: message})
	wsutil.SafeSend(p.Send, data)
}

func (s *Session) broadcastGameOver() {
	sides := s.sides()
	winner := ""
	if s.MatchScores[sides[0]] > s.MatchScores[sides[1]] {
		winner = sides[0]
	} else if s.MatchScores[sides[1]] > s.MatchScores[sides[0]] {
		winner = sides[1]
	}
	reason := s.endReason
	if reason == "" {
		reason = "completed"
	}
	data, _ := json.Marshal(GameOverMsg{Type: "game_over", Winner: winner, Scores: s.MatchScores, Reason: reason})
	for _, p := range s.Seats {
		if p.Send != nil {
			wsutil.SafeSend(p.Send, data)
		}
	}
}

// broadcastSessionEnded notifies every seat except the one that caused
// the termination.
func (s *Session) broadcastSessionEnded(exceptSeat int, reason string) {
	msg := SessionEndedMsg{Type: "session_ended", Reason: reason}
	if exceptSeat >= 0 && exceptSeat < len(s.Seats) {
		msg.Player = s.Seats[exceptSeat].Name
	}
	data, _ := json.Marshal(msg)
	for i, p := range s.Seats {
		if i == exceptSeat || p.Send == nil {
			continue
		}
		wsutil.SafeSend(p.Send, data)
	}
}

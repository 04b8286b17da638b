package game

import (
	"fmt"
	"log/slog"
)

// Mode selects the session variant.
type Mode string

const (
	ModeHeadToHead Mode = "1v1"
	ModeTeam       Mode = "2v2"
)

// SeatCount returns the number of seats the mode requires.
func (m Mode) SeatCount() int {
	if m == ModeTeam {
		return 4
	}
	return 2
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeHeadToHead || m == ModeTeam
}

// Team names for ModeTeam. Seats 0 and 2 form TeamA, seats 1 and 3 TeamB.
const (
	TeamA = "TeamA"
	TeamB = "TeamB"
)

// Phase is the session's single state tag. Exactly one phase is active
// at any time, so overlapping choice gates cannot be represented.
type Phase int

const (
	PhaseActive Phase = iota
	PhaseAwaitingSumChoice
	PhaseAwaitingExactChoice
	PhaseAwaitingTieDecision
	PhaseRoundOver
	PhaseGameOver
)

// String returns the protocol string for a Phase.
func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseAwaitingSumChoice:
		return "awaiting_sum_choice"
	case PhaseAwaitingExactChoice:
		return "awaiting_exact_choice"
	case PhaseAwaitingTieDecision:
		return "awaiting_tie_decision"
	case PhaseRoundOver:
		return "round_over"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// TieDecision is a player's vote after an 11-11 round.
type TieDecision string

const (
	TieDecisionTie      TieDecision = "tie"
	TieDecisionPlayTo21 TieDecision = "playTo21"
)

// ActionType enumerates the actions a session can process.
type ActionType int

const (
	ActionPlayCard ActionType = iota
	ActionSumChoice
	ActionExactChoice
	ActionTieDecision
	ActionNextRound
	ActionDisconnect
)

// Action is one player input sent into the session's action channel.
// Which payload fields matter depends on Type.
type Action struct {
	Type     ActionType
	PlayerID string
	CardID   string      // ActionPlayCard, ActionExactChoice
	CardIDs  []string    // ActionSumChoice
	Decision TieDecision // ActionTieDecision
}

// SeatInfo describes one seat at session creation.
type SeatInfo struct {
	ID   string
	Name string
	Send chan []byte
}

// choiceGate holds a pending ambiguous capture. Only the gated seat may
// resolve it; the table stays untouched until then.
type choiceGate struct {
	seat         int
	played       Card
	exactOptions []Card
	sumOptions   [][]Card
}

// Session is the authoritative state machine for one room's match. All
// mutation happens on the Run goroutine, so actions for a session are
// applied strictly in arrival order.
type Session struct {
	ID          string
	Mode        Mode
	TargetScore int
	Seats       []*Player
	CurrentSeat int

	Table         []Card
	Phase         Phase
	LastCaptureBy string         // player id of the most recent capturer, "" if none this round
	MatchScores   map[string]int // per player id (1v1) or per team (2v2)
	RoundResults  *RoundResults

	deck         *Deck
	gate         *choiceGate
	tieDecisions map[string]TieDecision
	readyForNext map[string]struct{}
	startSeat    int
	roundsPlayed int
	endReason    string

	Finished bool
	Actions  chan Action
	Done     chan struct{}

	// OnSessionEnd is called exactly once when the session terminates,
	// whether by completion, agreed tie or disconnect.
	OnSessionEnd func(s *Session, endReason string)
}

// NewSession creates a session, seats the players and deals the first
// round. startSeatOffset picks the opening seat; the orchestrator
// rotates it across consecutive games in the same room.
func NewSession(id string, mode Mode, targetScore, startSeatOffset int, seats []SeatInfo) (*Session, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	if len(seats) != mode.SeatCount() {
		return nil, fmt.Errorf("mode %s needs %d seats, got %d", mode, mode.SeatCount(), len(seats))
	}
	if targetScore != 21 {
		targetScore = 11
	}

	s := &Session{
		ID:          id,
		Mode:        mode,
		TargetScore: targetScore,
		Seats:       make([]*Player, len(seats)),
		MatchScores: make(map[string]int),
		startSeat:   startSeatOffset % len(seats),
		Actions:     make(chan Action, 16),
		Done:        make(chan struct{}),
	}
	for i, info := range seats {
		s.Seats[i] = NewPlayer(info.ID, info.Name, info.Send)
		s.MatchScores[s.scoreKey(i)] = 0
	}
	s.startNewRound()
	return s, nil
}

// Run is the session loop. It broadcasts the initial state, then
// processes actions sequentially until the session finishes. Run as a
// goroutine.
func (s *Session) Run() {
	defer close(s.Done)

	s.broadcastState()

	for action := range s.Actions {
		if s.Finished {
			return
		}
		seat := s.seatIndex(action.PlayerID)
		if seat < 0 {
			// The orchestrator checks seat membership before forwarding,
			// so this indicates a routing bug rather than player input.
			slog.Warn("action from unseated player", "tag", "session", "session", s.ID, "player", action.PlayerID)
			continue
		}
		switch action.Type {
		case ActionPlayCard:
			s.handlePlayCard(seat, action.CardID)
		case ActionSumChoice:
			s.handleSumChoice(seat, action.CardIDs)
		case ActionExactChoice:
			s.handleExactChoice(seat, action.CardID)
		case ActionTieDecision:
			s.handleTieDecision(seat, action.Decision)
		case ActionNextRound:
			s.handleNextRound(seat)
		case ActionDisconnect:
			s.handleDisconnect(seat)
		}
		if s.Finished {
			return
		}
	}
}

// seatIndex returns the seat of the given player id, or -1.
func (s *Session) seatIndex(playerID string) int {
	for i, p := range s.Seats {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// TeamOf returns the team name of a seat in ModeTeam.
func (s *Session) TeamOf(seat int) string {
	if seat%2 == 0 {
		return TeamA
	}
	return TeamB
}

// scoreKey returns the match-score key a seat scores under: the player
// id head-to-head, the team name in team mode.
func (s *Session) scoreKey(seat int) string {
	if s.Mode == ModeTeam {
		return s.TeamOf(seat)
	}
	return s.Seats[seat].ID
}

// DeckRemaining returns the number of undealt cards.
func (s *Session) DeckRemaining() int {
	return s.deck.Remaining()
}

// startNewRound rebuilds the deck and table and deals every seat. The
// first round starts at the session's start offset; later rounds start
// at the seat after the one that played last.
func (s *Session) startNewRound() {
	s.deck = NewDeck()
	s.Table = nil
	s.LastCaptureBy = ""
	s.RoundResults = nil
	s.gate = nil
	s.tieDecisions = nil
	s.readyForNext = nil
	s.Phase = PhaseActive

	if s.roundsPlayed == 0 {
		s.CurrentSeat = s.startSeat
	} else {
		s.CurrentSeat = (s.CurrentSeat + 1) % len(s.Seats)
	}
	s.roundsPlayed++

	for _, p := range s.Seats {
		p.ResetForNewRound()
	}
	s.Table = append(s.Table, s.deck.Deal(TableDealSize)...)
	for _, p := range s.Seats {
		p.AddToHand(s.deck.Deal(HandSize))
	}

	slog.Info("round started", "tag", "session", "session", s.ID, "round", s.roundsPlayed,
		"startingSeat", s.CurrentSeat, "target", s.TargetScore)
}

// finish marks the session terminal and fires OnSessionEnd once.
func (s *Session) finish(reason string) {
	if s.Finished {
		return
	}
	s.Finished = true
	s.endReason = reason
	slog.Info("session finished", "tag", "session", "session", s.ID, "reason", reason, "scores", fmt.Sprint(s.MatchScores))
	if s.OnSessionEnd != nil {
		s.OnSessionEnd(s, reason)
	}
}

package game

// Error codes sent back to the acting player. Invalid choices keep the
// pending gate so the same player may resubmit.
const (
	errInvalidAction = "invalid_action"
	errInvalidChoice = "invalid_choice"
)

func (s *Session) handlePlayCard(seat int, cardID string) {
	switch s.Phase {
	case PhaseActive:
	case PhaseAwaitingSumChoice, PhaseAwaitingExactChoice:
		s.sendError(seat, errInvalidAction, "A capture choice is pending.")
		return
	case PhaseAwaitingTieDecision:
		s.sendError(seat, errInvalidAction, "A tie decision is pending.")
		return
	default:
		s.sendError(seat, errInvalidAction, "The round is over.")
		return
	}
	if seat != s.CurrentSeat {
		s.sendError(seat, errInvalidAction, "It is not your turn.")
		return
	}
	player := s.Seats[seat]
	card, ok := player.CardInHand(cardID)
	if !ok {
		s.sendError(seat, errInvalidAction, "That card is not in your hand.")
		return
	}

	player.RemoveFromHand(cardID)

	outcome := ResolveCapture(card, s.Table)
	switch outcome.Kind {
	case CaptureAwaitExact:
		s.gate = &choiceGate{seat: seat, played: card, exactOptions: outcome.ExactOptions}
		s.Phase = PhaseAwaitingExactChoice
		s.broadcastState()
		return
	case CaptureAwaitSum:
		s.gate = &choiceGate{seat: seat, played: card, sumOptions: outcome.SumOptions}
		s.Phase = PhaseAwaitingSumChoice
		s.broadcastState()
		return
	case CaptureAuto:
		s.applyCapture(seat, card, outcome.Cards)
	case CaptureNone:
		s.Table = append(s.Table, card)
	}

	s.concludeTurn()
}

func (s *Session) handleSumChoice(seat int, cardIDs []string) {
	if s.Phase != PhaseAwaitingSumChoice || s.gate == nil || s.gate.seat != seat {
		s.sendError(seat, errInvalidAction, "No sum choice is pending for you.")
		return
	}
	combo, ok := matchCombination(s.gate.sumOptions, cardIDs)
	if !ok {
		s.sendError(seat, errInvalidChoice, "That combination is not among the offered options.")
		return
	}

	played := s.gate.played
	s.gate = nil
	s.Phase = PhaseActive
	s.applyCapture(seat, played, combo)
	s.concludeTurn()
}

func (s *Session) handleExactChoice(seat int, cardID string) {
	if s.Phase != PhaseAwaitingExactChoice || s.gate == nil || s.gate.seat != seat {
		s.sendError(seat, errInvalidAction, "No exact-match choice is pending for you.")
		return
	}
	var chosen *Card
	for i := range s.gate.exactOptions {
		if s.gate.exactOptions[i].ID == cardID {
			chosen = &s.gate.exactOptions[i]
			break
		}
	}
	if chosen == nil {
		s.sendError(seat, errInvalidChoice, "That card is not among the offered options.")
		return
	}

	played := s.gate.played
	captured := []Card{*chosen}
	s.gate = nil
	s.Phase = PhaseActive
	s.applyCapture(seat, played, captured)
	s.concludeTurn()
}

func (s *Session) handleTieDecision(seat int, decision TieDecision) {
	if s.Phase != PhaseAwaitingTieDecision {
		s.sendError(seat, errInvalidAction, "No tie decision is pending.")
		return
	}
	if decision != TieDecisionTie && decision != TieDecisionPlayTo21 {
		s.sendError(seat, errInvalidChoice, "Decision must be tie or playTo21.")
		return
	}
	playerID := s.Seats[seat].ID
	if _, done := s.tieDecisions[playerID]; done {
		s.sendError(seat, errInvalidAction, "You already decided.")
		return
	}
	s.tieDecisions[playerID] = decision

	if len(s.tieDecisions) < len(s.Seats) {
		s.broadcastState()
		return
	}

	continueTo21 := true
	for _, d := range s.tieDecisions {
		if d != TieDecisionPlayTo21 {
			continueTo21 = false
			break
		}
	}
	if continueTo21 {
		// Match scores are retained; only the target moves.
		s.TargetScore = 21
		s.startNewRound()
		s.broadcastState()
		return
	}
	s.Phase = PhaseGameOver
	s.endReason = "tie_agreed"
	s.broadcastState()
	s.broadcastGameOver()
	s.finish("tie_agreed")
}

func (s *Session) handleNextRound(seat int) {
	if s.Phase != PhaseRoundOver {
		s.sendError(seat, errInvalidAction, "The round is still in progress.")
		return
	}
	if s.readyForNext == nil {
		s.readyForNext = make(map[string]struct{})
	}
	s.readyForNext[s.Seats[seat].ID] = struct{}{}
	if len(s.readyForNext) < len(s.Seats) {
		s.broadcastState()
		return
	}
	s.startNewRound()
	s.broadcastState()
}

// handleDisconnect terminates the session for everyone. There is no
// reconnection path; remaining seats are notified and the session is
// discarded.
func (s *Session) handleDisconnect(seat int) {
	s.Phase = PhaseGameOver
	s.broadcastSessionEnded(seat, "player_disconnected")
	s.finish("player_disconnected")
}

// applyCapture moves the chosen table cards plus the played card into
// the capturer's pile and awards a chkobba when the capture clears the
// table, unless this was the capturer's final card with an empty deck.
func (s *Session) applyCapture(seat int, played Card, captured []Card) {
	player := s.Seats[seat]
	lastPlay := len(player.Hand) == 0 && s.deck.IsEmpty()

	capturedIDs := make(map[string]struct{}, len(captured))
	for _, c := range captured {
		capturedIDs[c.ID] = struct{}{}
	}
	remaining := s.Table[:0]
	for _, tc := range s.Table {
		if _, hit := capturedIDs[tc.ID]; !hit {
			remaining = append(remaining, tc)
		}
	}
	s.Table = remaining

	player.AddCaptured(append([]Card{played}, captured...))
	s.LastCaptureBy = player.ID

	if len(s.Table) == 0 && !lastPlay {
		player.AddChkobba()
	}
}

// concludeTurn runs the shared turn-advance routine after a resolved
// play, broadcasts the new state and finishes the session when the
// match ended.
func (s *Session) concludeTurn() {
	s.advanceAfterPlay()
	s.broadcastState()
	if s.Phase == PhaseGameOver {
		s.endReason = "completed"
		s.broadcastGameOver()
		s.finish("completed")
	}
}

// advanceAfterPlay redeals or ends the round once every hand is empty,
// then rotates the turn if the round continues. Rotation is strict
// round-robin, independent of who captured.
func (s *Session) advanceAfterPlay() {
	if s.allHandsEmpty() {
		if !s.deck.IsEmpty() {
			s.dealHands()
		} else {
			s.endRound()
		}
	}
	if s.Phase == PhaseActive {
		s.CurrentSeat = (s.CurrentSeat + 1) % len(s.Seats)
	}
}

func (s *Session) allHandsEmpty() bool {
	for _, p := range s.Seats {
		if len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

func (s *Session) dealHands() {
	for _, p := range s.Seats {
		if len(p.Hand) == 0 {
			p.AddToHand(s.deck.Deal(HandSize))
		}
	}
}

// endRound awards the table remainder to the last capturer, scores the
// round and decides whether the match continues, ties or ends.
func (s *Session) endRound() {
	if s.LastCaptureBy != "" && len(s.Table) > 0 {
		if seat := s.seatIndex(s.LastCaptureBy); seat >= 0 {
			s.Seats[seat].AddCaptured(s.Table)
		}
	}
	s.Table = nil

	s.calculateRoundScore()

	sides := s.sides()
	a, b := s.MatchScores[sides[0]], s.MatchScores[sides[1]]
	switch {
	case s.Mode == ModeHeadToHead && s.TargetScore == 11 && a == 11 && b == 11:
		s.Phase = PhaseAwaitingTieDecision
		s.tieDecisions = make(map[string]TieDecision)
	case a >= s.TargetScore || b >= s.TargetScore:
		s.Phase = PhaseGameOver
	default:
		s.Phase = PhaseRoundOver
		s.readyForNext = make(map[string]struct{})
	}
}

// matchCombination finds the offered combination whose card-id set
// equals the submitted ids. Set equality, not just matching length:
// duplicates or foreign ids never match.
func matchCombination(options [][]Card, cardIDs []string) ([]Card, bool) {
	submitted := make(map[string]struct{}, len(cardIDs))
	for _, id := range cardIDs {
		submitted[id] = struct{}{}
	}
	for _, combo := range options {
		if len(combo) != len(submitted) || len(combo) != len(cardIDs) {
			continue
		}
		all := true
		for _, c := range combo {
			if _, ok := submitted[c.ID]; !ok {
				all = false
				break
			}
		}
		if all {
			return combo, true
		}
	}
	return nil, false
}

package ws

import "encoding/json"

// InboundEnvelope is the generic envelope for all client-to-server messages.
// The Type field is used for routing; Raw holds the full JSON payload.
type InboundEnvelope struct {
	Type string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

// UnmarshalJSON implements custom unmarshaling to capture the raw payload.
func (e *InboundEnvelope) UnmarshalJSON(data []byte) error {
	// Unmarshal just the type field
	type typeOnly struct {
		Type string `json:"type"`
	}
	var t typeOnly
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	e.Type = t.Type
	e.Raw = json.RawMessage(data)
	return nil
}

// --- Client-to-Server message payloads ---

// AuthMsg carries a JWT; must be the first message when auth is enabled.
type AuthMsg struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// CreateRoomMsg opens a new room with the sender in seat 0.
type CreateRoomMsg struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Mode        string `json:"mode"`
	TargetScore int    `json:"targetScore,omitempty"`
}

// JoinRoomMsg seats the sender in an existing room by its code.
type JoinRoomMsg struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	RoomID string `json:"roomId"`
}

// PlayCardMsg plays one card from the sender's hand.
type PlayCardMsg struct {
	Type   string `json:"type"`
	CardID string `json:"cardId"`
}

// SumChoiceMsg picks one of the offered sum-capture combinations.
type SumChoiceMsg struct {
	Type    string   `json:"type"`
	CardIDs []string `json:"cardIds"`
}

// ExactChoiceMsg picks one of the offered exact-match cards.
type ExactChoiceMsg struct {
	Type   string `json:"type"`
	CardID string `json:"cardId"`
}

// TieDecisionMsg is the sender's vote after a tied match: "tie" or "playTo21".
type TieDecisionMsg struct {
	Type     string `json:"type"`
	Decision string `json:"decision"`
}

// NextRoundMsg marks the sender ready for the next round.
type NextRoundMsg struct {
	Type string `json:"type"`
}

// PlayAgainMsg asks for another game in the same room.
type PlayAgainMsg struct {
	Type string `json:"type"`
}

// --- Server-to-Client messages ---

// WelcomeMsg is the first message after the connection is established,
// carrying the id the server knows the player by.
type WelcomeMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

// ErrorMsg is sent when a client action is invalid.
type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// RoomCreatedMsg confirms a create_room request and carries the join code.
type RoomCreatedMsg struct {
	Type        string `json:"type"`
	RoomID      string `json:"roomId"`
	Mode        string `json:"mode"`
	TargetScore int    `json:"targetScore"`
}

// AuthOKMsg confirms a successful auth message.
type AuthOKMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name,omitempty"`
}

package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ImBidou/chkobba-multiplayer/auth"
	"github.com/ImBidou/chkobba-multiplayer/game"
	"github.com/ImBidou/chkobba-multiplayer/roomerrors"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	PlayerID string
	Name     string
	Authed   bool
}

// ReadPump pumps messages from the websocket connection to the hub.
// It runs in its own goroutine per connection.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read error", "tag", "ws", "player", c.PlayerID, "err", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// WritePump pumps messages from the send channel to the websocket connection.
// It runs in its own goroutine per connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(data []byte) {
	var envelope InboundEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		c.sendError("bad_message", "Invalid message format.")
		return
	}

	switch envelope.Type {
	case "auth":
		c.handleAuth(envelope.Raw)
	case "create_room":
		c.handleCreateRoom(envelope.Raw)
	case "join_room":
		c.handleJoinRoom(envelope.Raw)
	case "play_card":
		c.handlePlayCard(envelope.Raw)
	case "sum_choice":
		c.handleSumChoice(envelope.Raw)
	case "exact_choice":
		c.handleExactChoice(envelope.Raw)
	case "tie_decision":
		c.handleTieDecision(envelope.Raw)
	case "next_round":
		c.dispatch(game.Action{Type: game.ActionNextRound})
	case "play_again":
		c.handlePlayAgain()
	default:
		c.sendError("bad_message", "Unknown message type: "+envelope.Type)
	}
}

func (c *Client) handleAuth(raw json.RawMessage) {
	if c.Hub.Config.AuthBaseURL == "" {
		c.sendJSON(AuthOKMsg{Type: "auth_ok", PlayerID: c.PlayerID})
		return
	}

	var msg AuthMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("bad_message", "Invalid auth message.")
		return
	}
	claims, err := auth.ValidateToken(c.Hub.Config.AuthBaseURL, msg.Token)
	if err != nil {
		slog.Warn("token validation failed", "tag", "ws", "err", err)
		c.sendError("auth_failed", "Token validation failed.")
		return
	}
	userID := auth.UserIDFromClaims(claims)
	if userID == "" {
		c.sendError("auth_failed", "Token has no user id.")
		return
	}

	// Adopt the authenticated identity for room and history records.
	c.PlayerID = userID
	c.Name = auth.DisplayNameFromClaims(claims)
	c.Authed = true
	c.Hub.Rooms.Connect(c.PlayerID, c.Send)
	c.sendJSON(AuthOKMsg{Type: "auth_ok", PlayerID: c.PlayerID, Name: c.Name})
}

func (c *Client) handleCreateRoom(raw json.RawMessage) {
	if !c.requireAuth() {
		return
	}
	var msg CreateRoomMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("bad_message", "Invalid create_room message.")
		return
	}
	name := msg.Name
	if name == "" {
		name = c.Name
	}

	room, err := c.Hub.Rooms.CreateRoom(context.Background(), c.PlayerID, name, game.Mode(msg.Mode), msg.TargetScore)
	if err != nil {
		c.sendServiceError(err)
		return
	}
	c.sendJSON(RoomCreatedMsg{Type: "room_created", RoomID: room.ID, Mode: string(room.Mode), TargetScore: room.TargetScore})
}

func (c *Client) handleJoinRoom(raw json.RawMessage) {
	if !c.requireAuth() {
		return
	}
	var msg JoinRoomMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("bad_message", "Invalid join_room message.")
		return
	}
	name := msg.Name
	if name == "" {
		name = c.Name
	}

	if _, err := c.Hub.Rooms.JoinRoom(context.Background(), c.PlayerID, name, msg.RoomID); err != nil {
		c.sendServiceError(err)
	}
}

func (c *Client) handlePlayCard(raw json.RawMessage) {
	var msg PlayCardMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("bad_message", "Invalid play_card message.")
		return
	}
	c.dispatch(game.Action{Type: game.ActionPlayCard, CardID: msg.CardID})
}

func (c *Client) handleSumChoice(raw json.RawMessage) {
	var msg SumChoiceMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("bad_message", "Invalid sum_choice message.")
		return
	}
	c.dispatch(game.Action{Type: game.ActionSumChoice, CardIDs: msg.CardIDs})
}

func (c *Client) handleExactChoice(raw json.RawMessage) {
	var msg ExactChoiceMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("bad_message", "Invalid exact_choice message.")
		return
	}
	c.dispatch(game.Action{Type: game.ActionExactChoice, CardID: msg.CardID})
}

func (c *Client) handleTieDecision(raw json.RawMessage) {
	var msg TieDecisionMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("bad_message", "Invalid tie_decision message.")
		return
	}
	c.dispatch(game.Action{Type: game.ActionTieDecision, Decision: game.TieDecision(msg.Decision)})
}

func (c *Client) handlePlayAgain() {
	if err := c.Hub.Rooms.PlayAgain(context.Background(), c.PlayerID); err != nil {
		c.sendServiceError(err)
	}
}

// dispatch forwards a game action through the orchestrator, which
// verifies the sender actually sits in a room with a running session.
func (c *Client) dispatch(action game.Action) {
	if err := c.Hub.Rooms.Dispatch(context.Background(), c.PlayerID, action); err != nil {
		c.sendServiceError(err)
	}
}

// requireAuth gates room entry when auth is enabled.
func (c *Client) requireAuth() bool {
	if c.Hub.Config.AuthBaseURL != "" && !c.Authed {
		c.sendError("auth_required", "Authenticate before joining a room.")
		return false
	}
	return true
}

// sendServiceError maps orchestrator sentinels onto wire error codes.
func (c *Client) sendServiceError(err error) {
	code := "internal"
	switch {
	case errors.Is(err, roomerrors.ErrRoomNotFound):
		code = "room_not_found"
	case errors.Is(err, roomerrors.ErrRoomFull):
		code = "room_full"
	case errors.Is(err, roomerrors.ErrNotASeat):
		code = "not_in_room"
	case errors.Is(err, roomerrors.ErrAlreadySeated):
		code = "already_in_room"
	case errors.Is(err, roomerrors.ErrNoSession):
		code = "no_active_game"
	case errors.Is(err, roomerrors.ErrSessionRunning):
		code = "game_in_progress"
	case errors.Is(err, roomerrors.ErrInvalidMode):
		code = "invalid_mode"
	}
	c.sendError(code, err.Error())
}

func (c *Client) sendError(code, message string) {
	c.sendJSON(ErrorMsg{Type: "error", Code: code, Message: message})
}

func (c *Client) sendJSON(v any) {
	data, _ := json.Marshal(v)
	select {
	case c.Send <- data:
	default:
	}
}

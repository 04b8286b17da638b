package ws

import (
	"encoding/json"
	"testing"

	"github.com/ImBidou/chkobba-multiplayer/roomerrors"
)

func TestInboundEnvelopeCapturesRawPayload(t *testing.T) {
	data := []byte(`{"type":"play_card","cardId":"7-coins"}`)

	var envelope InboundEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if envelope.Type != "play_card" {
		t.Errorf("expected type play_card, got %q", envelope.Type)
	}

	var msg PlayCardMsg
	if err := json.Unmarshal(envelope.Raw, &msg); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if msg.CardID != "7-coins" {
		t.Errorf("expected cardId 7-coins, got %q", msg.CardID)
	}
}

func TestInboundEnvelopeRejectsNonObject(t *testing.T) {
	var envelope InboundEnvelope
	if err := json.Unmarshal([]byte(`"just a string"`), &envelope); err == nil {
		t.Error("expected error for non-object payload")
	}
}

func TestServiceErrorCodes(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{roomerrors.ErrRoomNotFound, "room_not_found"},
		{roomerrors.ErrRoomFull, "room_full"},
		{roomerrors.ErrNotASeat, "not_in_room"},
		{roomerrors.ErrAlreadySeated, "already_in_room"},
		{roomerrors.ErrNoSession, "no_active_game"},
		{roomerrors.ErrSessionRunning, "game_in_progress"},
		{roomerrors.ErrInvalidMode, "invalid_mode"},
	}
	for _, tc := range cases {
		c := &Client{Send: make(chan []byte, 1)}
		c.sendServiceError(tc.err)

		var msg ErrorMsg
		select {
		case data := <-c.Send:
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
		default:
			t.Fatalf("no error message sent for %v", tc.err)
		}
		if msg.Code != tc.code {
			t.Errorf("error %v: expected code %q, got %q", tc.err, tc.code, msg.Code)
		}
		if msg.Type != "error" {
			t.Errorf("expected type error, got %q", msg.Type)
		}
	}
}

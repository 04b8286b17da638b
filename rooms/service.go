package rooms

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ImBidou/chkobba-multiplayer/game"
	"github.com/ImBidou/chkobba-multiplayer/roomerrors"
	"github.com/ImBidou/chkobba-multiplayer/wsutil"
)

// RoomUpdateMsg is broadcast to a room's seats whenever its roster or
// lifecycle changes.
type RoomUpdateMsg struct {
	Type        string    `json:"type"`
	RoomID      string    `json:"roomId"`
	Mode        game.Mode `json:"mode"`
	TargetScore int       `json:"targetScore"`
	Capacity    int       `json:"capacity"`
	Seats       []Seat    `json:"seats"`
	InGame      bool      `json:"inGame"`
}

// Service is the room orchestrator. It owns the room store, starts a
// game session when a room fills, routes player actions into the
// owning session and tears everything down on disconnect.
//
// Structural rejections (unknown room, full room, not seated, no
// session) are decided here and never reach a session.
type Service struct {
	mu       sync.Mutex
	store    Store
	sessions map[string]*game.Session       // room id -> running session
	rematch  map[string]map[string]struct{} // room id -> players ready for a new game
	conns    map[string]chan []byte         // player id -> send channel

	defaultTarget int
	maxNameLen    int

	// OnMatchEnd is called after a session finishes for any reason.
	// Optional; used to persist match history.
	OnMatchEnd func(room *Room, s *game.Session, reason string)
}

// NewService creates an orchestrator on top of the given store.
func NewService(store Store, defaultTarget, maxNameLen int) *Service {
	if defaultTarget != 21 {
		defaultTarget = 11
	}
	return &Service{
		store:         store,
		sessions:      make(map[string]*game.Session),
		rematch:       make(map[string]map[string]struct{}),
		conns:         make(map[string]chan []byte),
		defaultTarget: defaultTarget,
		maxNameLen:    maxNameLen,
	}
}

// Connect registers the player's send channel. Must be called before
// the player creates or joins a room.
func (svc *Service) Connect(playerID string, send chan []byte) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.conns[playerID] = send
}

// CreateRoom creates a room with the caller in seat 0 and returns it.
func (svc *Service) CreateRoom(ctx context.Context, playerID, name string, mode game.Mode, targetScore int) (*Room, error) {
	if !mode.Valid() {
		return nil, roomerrors.ErrInvalidMode
	}
	if targetScore != 21 {
		targetScore = svc.defaultTarget
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if existing, err := svc.store.FindByPlayer(ctx, playerID); err != nil {
		return nil, err
	} else if existing != "" {
		return nil, roomerrors.ErrAlreadySeated
	}

	room := &Room{
		ID:          roomCode(),
		Mode:        mode,
		TargetScore: targetScore,
		Seats:       []Seat{{PlayerID: playerID, Name: svc.clampName(name)}},
		CreatedAt:   time.Now().UTC(),
	}
	if err := svc.store.Put(ctx, room); err != nil {
		return nil, err
	}
	slog.Info("room created", "tag", "rooms", "room", room.ID, "mode", mode, "target", targetScore)
	svc.broadcastRoomUpdate(room)
	return room, nil
}

// JoinRoom seats the player in an existing room. Filling the last seat
// starts the game session.
func (svc *Service) JoinRoom(ctx context.Context, playerID, name, roomID string) (*Room, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if existing, err := svc.store.FindByPlayer(ctx, playerID); err != nil {
		return nil, err
	} else if existing != "" {
		return nil, roomerrors.ErrAlreadySeated
	}

	room, err := svc.store.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if svc.sessions[room.ID] != nil {
		return nil, roomerrors.ErrSessionRunning
	}
	if room.IsFull() {
		return nil, roomerrors.ErrRoomFull
	}

	room.Seats = append(room.Seats, Seat{PlayerID: playerID, Name: svc.clampName(name)})
	if err := svc.store.Put(ctx, room); err != nil {
		return nil, err
	}
	slog.Info("player joined room", "tag", "rooms", "room", room.ID, "player", playerID,
		"seats", len(room.Seats), "capacity", room.Capacity())
	svc.broadcastRoomUpdate(room)

	if room.IsFull() {
		if err := svc.startSessionLocked(ctx, room); err != nil {
			return nil, err
		}
	}
	return room, nil
}

// Dispatch validates that the player sits in a room with a running
// session, then forwards the action to it. The action's PlayerID is
// always overwritten with the authenticated caller.
func (svc *Service) Dispatch(ctx context.Context, playerID string, action game.Action) error {
	svc.mu.Lock()
	roomID, err := svc.store.FindByPlayer(ctx, playerID)
	if err != nil {
		svc.mu.Unlock()
		return err
	}
	if roomID == "" {
		svc.mu.Unlock()
		return roomerrors.ErrNotASeat
	}
	sess := svc.sessions[roomID]
	svc.mu.Unlock()

	if sess == nil {
		return roomerrors.ErrNoSession
	}
	action.PlayerID = playerID
	select {
	case sess.Actions <- action:
		return nil
	case <-sess.Done:
		return roomerrors.ErrNoSession
	}
}

// PlayAgain registers the player's wish for another game in the same
// room. When every seat agrees a fresh session starts, with the opening
// seat rotated by one.
func (svc *Service) PlayAgain(ctx context.Context, playerID string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	roomID, err := svc.store.FindByPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	if roomID == "" {
		return roomerrors.ErrNotASeat
	}
	if svc.sessions[roomID] != nil {
		return roomerrors.ErrSessionRunning
	}
	room, err := svc.store.Get(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.IsFull() {
		return roomerrors.ErrNoSession
	}

	ready := svc.rematch[roomID]
	if ready == nil {
		ready = make(map[string]struct{})
		svc.rematch[roomID] = ready
	}
	ready[playerID] = struct{}{}
	if len(ready) < room.Capacity() {
		svc.broadcastRoomUpdate(room)
		return nil
	}
	delete(svc.rematch, roomID)
	return svc.startSessionLocked(ctx, room)
}

// HandleDisconnect vacates the player's seat. A running session is
// terminated for everyone; an empty room is deleted.
func (svc *Service) HandleDisconnect(ctx context.Context, playerID string) {
	svc.mu.Lock()
	delete(svc.conns, playerID)

	roomID, err := svc.store.FindByPlayer(ctx, playerID)
	if err != nil || roomID == "" {
		svc.mu.Unlock()
		return
	}
	sess := svc.sessions[roomID]

	room, err := svc.store.Get(ctx, roomID)
	if err != nil {
		svc.mu.Unlock()
		return
	}
	if seat := room.SeatIndex(playerID); seat >= 0 {
		room.Seats = append(room.Seats[:seat], room.Seats[seat+1:]...)
	}
	delete(svc.rematch, roomID)
	if len(room.Seats) == 0 {
		_ = svc.store.Delete(ctx, room)
		slog.Info("room deleted", "tag", "rooms", "room", room.ID)
		room = nil
	} else {
		_ = svc.store.Put(ctx, room)
	}
	_ = svc.store.ReleasePlayer(ctx, playerID)
	svc.mu.Unlock()

	if sess != nil {
		select {
		case sess.Actions <- game.Action{Type: game.ActionDisconnect, PlayerID: playerID}:
		case <-sess.Done:
		}
	}
	if room != nil {
		svc.mu.Lock()
		svc.broadcastRoomUpdate(room)
		svc.mu.Unlock()
	}
}

// SessionFor returns the running session of the player's room, or nil.
func (svc *Service) SessionFor(ctx context.Context, playerID string) *game.Session {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	roomID, err := svc.store.FindByPlayer(ctx, playerID)
	if err != nil || roomID == "" {
		return nil
	}
	return svc.sessions[roomID]
}

// startSessionLocked spins up a game for a full room. Caller holds the
// service lock.
func (svc *Service) startSessionLocked(ctx context.Context, room *Room) error {
	seats := make([]game.SeatInfo, len(room.Seats))
	for i, s := range room.Seats {
		seats[i] = game.SeatInfo{ID: s.PlayerID, Name: s.Name, Send: svc.conns[s.PlayerID]}
	}

	sess, err := game.NewSession(uuid.NewString(), room.Mode, room.TargetScore, room.NextStartSeat, seats)
	if err != nil {
		return err
	}
	roomID := room.ID
	roomCopy := *room
	roomCopy.Seats = append([]Seat(nil), room.Seats...)
	sess.OnSessionEnd = func(s *game.Session, reason string) {
		svc.sessionEnded(roomID, &roomCopy, s, reason)
	}

	svc.sessions[room.ID] = sess
	room.NextStartSeat = (room.NextStartSeat + 1) % room.Capacity()
	if err := svc.store.Put(ctx, room); err != nil {
		delete(svc.sessions, room.ID)
		return err
	}

	slog.Info("session started", "tag", "rooms", "room", room.ID, "session", sess.ID,
		"mode", room.Mode, "startSeat", sess.CurrentSeat)
	go sess.Run()
	return nil
}

// sessionEnded runs on the session goroutine when it terminates.
func (svc *Service) sessionEnded(roomID string, room *Room, s *game.Session, reason string) {
	svc.mu.Lock()
	delete(svc.sessions, roomID)
	svc.mu.Unlock()

	slog.Info("session ended", "tag", "rooms", "room", roomID, "session", s.ID, "reason", reason)
	if svc.OnMatchEnd != nil {
		svc.OnMatchEnd(room, s, reason)
	}
}

func (svc *Service) broadcastRoomUpdate(room *Room) {
	msg := RoomUpdateMsg{
		Type:        "room_update",
		RoomID:      room.ID,
		Mode:        room.Mode,
		TargetScore: room.TargetScore,
		Capacity:    room.Capacity(),
		Seats:       room.Seats,
		InGame:      svc.sessions[room.ID] != nil,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshaling room update", "tag", "rooms", "room", room.ID, "err", err)
		return
	}
	for _, s := range room.Seats {
		if ch := svc.conns[s.PlayerID]; ch != nil {
			wsutil.SafeSend(ch, data)
		}
	}
}

func (svc *Service) clampName(name string) string {
	if name == "" {
		name = "Player"
	}
	if svc.maxNameLen > 0 && len(name) > svc.maxNameLen {
		return name[:svc.maxNameLen]
	}
	return name
}

// roomCode returns a short join code players can share.
func roomCode() string {
	return uuid.NewString()[:6]
}

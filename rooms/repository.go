package rooms

import "context"

// Store persists rooms and the player-to-room index. Implementations
// must keep the index consistent with the stored room: Put indexes
// every seated player, Delete drops the room and all of its indexes.
type Store interface {
	// Get returns the room with the given id, or roomerrors.ErrRoomNotFound.
	Get(ctx context.Context, id string) (*Room, error)
	// Put saves the room and (re)indexes its seated players.
	Put(ctx context.Context, room *Room) error
	// Delete removes the room and its player indexes.
	Delete(ctx context.Context, room *Room) error
	// FindByPlayer returns the id of the room the player sits in, or ""
	// if the player is not seated anywhere.
	FindByPlayer(ctx context.Context, playerID string) (string, error)
	// ReleasePlayer drops the player's index entry without touching the
	// room body. Used when a seat is vacated.
	ReleasePlayer(ctx context.Context, playerID string) error
}

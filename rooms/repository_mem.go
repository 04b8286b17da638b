package rooms

import (
	"context"
	"sync"

	"github.com/ImBidou/chkobba-multiplayer/roomerrors"
)

type memStore struct {
	mu      sync.Mutex
	rooms   map[string]*Room  // room id -> room
	players map[string]string // player id -> room id
}

// NewMemoryStore returns a Store backed by process memory. Suitable for
// a single-instance server and for tests.
func NewMemoryStore() Store {
	return &memStore{
		rooms:   make(map[string]*Room),
		players: make(map[string]string),
	}
}

func (m *memStore) Get(ctx context.Context, id string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[id]
	if !ok {
		return nil, roomerrors.ErrRoomNotFound
	}
	cp := *room
	cp.Seats = append([]Seat(nil), room.Seats...)
	return &cp, nil
}

func (m *memStore) Put(ctx context.Context, room *Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Drop index entries for players no longer seated.
	if old, ok := m.rooms[room.ID]; ok {
		for _, s := range old.Seats {
			if room.SeatIndex(s.PlayerID) < 0 {
				delete(m.players, s.PlayerID)
			}
		}
	}

	cp := *room
	cp.Seats = append([]Seat(nil), room.Seats...)
	m.rooms[room.ID] = &cp
	for _, s := range room.Seats {
		m.players[s.PlayerID] = room.ID
	}
	return nil
}

func (m *memStore) Delete(ctx context.Context, room *Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, room.ID)
	for _, s := range room.Seats {
		if m.players[s.PlayerID] == room.ID {
			delete(m.players, s.PlayerID)
		}
	}
	return nil
}

func (m *memStore) FindByPlayer(ctx context.Context, playerID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.players[playerID], nil
}

func (m *memStore) ReleasePlayer(ctx context.Context, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.players, playerID)
	return nil
}

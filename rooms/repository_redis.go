package rooms

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ImBidou/chkobba-multiplayer/roomerrors"
)

// Key layout:
//
//	room:{id}     -> JSON-encoded Room
//	player:{id}   -> room id
//
// Both carry a TTL so abandoned rooms do not accumulate.
const roomTTL = 24 * time.Hour

type redisStore struct {
	rdb *redis.Client
}

// NewRedisStore returns a Store backed by Redis, letting rooms survive
// a server restart.
func NewRedisStore(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

func roomKey(id string) string {
	return fmt.Sprintf("room:%s", id)
}

func playerKey(playerID string) string {
	return fmt.Sprintf("player:%s", playerID)
}

func (r *redisStore) Get(ctx context.Context, id string) (*Room, error) {
	data, err := r.rdb.Get(ctx, roomKey(id)).Bytes()
	if err == redis.Nil {
		return nil, roomerrors.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	var room Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *redisStore) Put(ctx context.Context, room *Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	p := r.rdb.Pipeline()
	// Index entries of players who left since the last Put.
	if old, getErr := r.Get(ctx, room.ID); getErr == nil {
		for _, s := range old.Seats {
			if room.SeatIndex(s.PlayerID) < 0 {
				p.Del(ctx, playerKey(s.PlayerID))
			}
		}
	}
	p.Set(ctx, roomKey(room.ID), data, roomTTL)
	for _, s := range room.Seats {
		p.Set(ctx, playerKey(s.PlayerID), room.ID, roomTTL)
	}
	_, err = p.Exec(ctx)
	return err
}

func (r *redisStore) Delete(ctx context.Context, room *Room) error {
	p := r.rdb.Pipeline()
	p.Del(ctx, roomKey(room.ID))
	for _, s := range room.Seats {
		p.Del(ctx, playerKey(s.PlayerID))
	}
	_, err := p.Exec(ctx)
	return err
}

func (r *redisStore) FindByPlayer(ctx context.Context, playerID string) (string, error) {
	val, err := r.rdb.Get(ctx, playerKey(playerID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *redisStore) ReleasePlayer(ctx context.Context, playerID string) error {
	return r.rdb.Del(ctx, playerKey(playerID)).Err()
}

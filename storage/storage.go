package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS match_history (
	id UUID PRIMARY KEY,
	played_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	room_id TEXT NOT NULL,
	mode TEXT NOT NULL,
	target_score INT NOT NULL,
	player_ids TEXT[] NOT NULL,
	player_names TEXT[] NOT NULL,
	scores JSONB NOT NULL,
	winner TEXT,
	end_reason TEXT
);
CREATE INDEX IF NOT EXISTS idx_match_history_player_ids ON match_history USING GIN (player_ids);
CREATE INDEX IF NOT EXISTS idx_match_history_played_at ON match_history(played_at DESC);
`

// Store persists and retrieves match history.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to Postgres and ensures the match_history table exists.
// If databaseURL is empty, NewStore returns (nil, nil) and no persistence occurs.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, err
	}
	slog.Info("connected to Postgres", "tag", "storage")
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// InsertMatchResult records a finished match. winner is the winning
// score key (player id or team name), empty for a tied match. scores is
// the final match-score map keyed the same way.
func (s *Store) InsertMatchResult(ctx context.Context, matchID, roomID, mode string, targetScore int,
	playerIDs, playerNames []string, scores map[string]int, winner, endReason string) error {
	if s == nil || s.pool == nil {
		return nil
	}
	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	var winnerVal *string
	if winner != "" {
		winnerVal = &winner
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO match_history (id, room_id, mode, target_score, player_ids, player_names, scores, winner, end_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		matchID, roomID, mode, targetScore, playerIDs, playerNames, scoresJSON, winnerVal, endReason)
	return err
}

// MatchRecord is a single row returned for the history API.
type MatchRecord struct {
	ID          string         `json:"id"`
	PlayedAt    string         `json:"played_at"` // ISO8601
	RoomID      string         `json:"room_id"`
	Mode        string         `json:"mode"`
	TargetScore int            `json:"target_score"`
	PlayerIDs   []string       `json:"player_ids"`
	PlayerNames []string       `json:"player_names"`
	Scores      map[string]int `json:"scores"`
	Winner      *string        `json:"winner"` // score key, null for a tie
	EndReason   string         `json:"end_reason"`
}

// ListByPlayerID returns all matches the player took part in, ordered
// by played_at DESC.
func (s *Store) ListByPlayerID(ctx context.Context, playerID string) ([]MatchRecord, error) {
	if s == nil || s.pool == nil {
		return []MatchRecord{}, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, played_at, room_id, mode, target_score, player_ids, player_names, scores, winner, COALESCE(end_reason,'')
		FROM match_history
		WHERE $1 = ANY(player_ids)
		ORDER BY played_at DESC`,
		playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []MatchRecord
	for rows.Next() {
		var r MatchRecord
		var playedAt time.Time
		var scoresJSON []byte
		if err := rows.Scan(&r.ID, &playedAt, &r.RoomID, &r.Mode, &r.TargetScore, &r.PlayerIDs, &r.PlayerNames, &scoresJSON, &r.Winner, &r.EndReason); err != nil {
			return nil, err
		}
		r.PlayedAt = playedAt.UTC().Format(time.RFC3339)
		if err := json.Unmarshal(scoresJSON, &r.Scores); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

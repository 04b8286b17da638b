package storage

import "context"

// HistoryStore abstracts match-history persistence. Implementations can
// be swapped for testing (mocks) or different backends.
type HistoryStore interface {
	InsertMatchResult(ctx context.Context, matchID, roomID, mode string, targetScore int,
		playerIDs, playerNames []string, scores map[string]int, winner, endReason string) error
	ListByPlayerID(ctx context.Context, playerID string) ([]MatchRecord, error)
	Close()
}

// Ensure *Store implements HistoryStore at compile time.
var _ HistoryStore = (*Store)(nil)

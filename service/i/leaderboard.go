package i

import "context"

// BoardEntry is one leaderboard row: a member and its score. For
// escape boards the score is elapsed milliseconds, lower is better.
type BoardEntry struct {
	Member string
	Score  float64
}

// Leaderboard defines a sorted scoreboard keyed by board name.
type Leaderboard interface {
	// Record adds or updates a member's score on a board.
	Record(ctx context.Context, boardKey, member string, score float64) error

	// Top returns up to n entries with the best (lowest) scores.
	Top(ctx context.Context, boardKey string, n int64) ([]BoardEntry, error)

	// Count returns the number of entries on a board.
	Count(ctx context.Context, boardKey string) int64
}

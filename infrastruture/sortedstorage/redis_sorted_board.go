package sortedstorage

import (
	"context"
	"time"

	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const defaultMaxEntries = 100

// RedisSortedBoard keeps leaderboards in Redis sorted sets with TTL
// support. Scores are escape times in milliseconds, so the lowest
// ranks first.
type RedisSortedBoard struct {
	client     *redis.Client
	locker     *redsync.Redsync
	ttl        time.Duration
	maxEntries int64
}

var _ i.Leaderboard = &RedisSortedBoard{}

// NewRedisSortedBoard initializes a RedisSortedBoard with the provided
// Redis client, key TTL, and per-board entry cap.
func NewRedisSortedBoard(client *redis.Client, ttlSeconds int, maxEntries int64) (*RedisSortedBoard, error) {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}

	board := &RedisSortedBoard{
		client:     client,
		ttl:        time.Duration(ttlSeconds) * time.Second,
		maxEntries: maxEntries,
	}
	pool := goredis.NewPool(client)
	board.locker = redsync.New(pool)
	return board, nil
}

// Record stores a member's score on a board, keeping only the
// member's best (lowest) time, and sets expiration if necessary.
func (rsb *RedisSortedBoard) Record(ctx context.Context, boardKey, member string, score float64) error {
	_, err := rsb.client.ZAddLT(ctx, boardKey, redis.Z{Score: score, Member: member}).Result()
	if err != nil {
		return err
	}

	// Set expiration only if it's not already set
	ttl, err := rsb.client.TTL(ctx, boardKey).Result()
	if err == nil && ttl == -1 {
		_ = rsb.client.Expire(ctx, boardKey, rsb.ttl).Err()
	}

	return rsb.trim(ctx, boardKey)
}

// Top returns up to n entries with the best (lowest) scores.
func (rsb *RedisSortedBoard) Top(ctx context.Context, boardKey string, n int64) ([]i.BoardEntry, error) {
	if n <= 0 {
		return nil, nil
	}

	raw, err := rsb.client.ZRangeWithScores(ctx, boardKey, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]i.BoardEntry, 0, len(raw))
	for _, z := range raw {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, i.BoardEntry{Member: member, Score: z.Score})
	}
	return entries, nil
}

// Count returns the number of entries on a board.
func (rsb *RedisSortedBoard) Count(ctx context.Context, boardKey string) int64 {
	return rsb.client.ZCard(ctx, boardKey).Val()
}

// trim drops entries beyond the cap. The mutex serializes trims from
// concurrent API instances sharing the same Redis.
func (rsb *RedisSortedBoard) trim(ctx context.Context, boardKey string) error {
	if rsb.client.ZCard(ctx, boardKey).Val() <= rsb.maxEntries {
		return nil
	}

	mutex := rsb.locker.NewMutex(boardKey + ":trim_lock")
	if err := mutex.Lock(); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.Unlock()
	}()

	return rsb.client.ZRemRangeByRank(ctx, boardKey, rsb.maxEntries, -1).Err()
}

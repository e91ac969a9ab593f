package service

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	dmn "github.com/beka-birhanu/labyrinth-api/identity"
	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMazeRepo struct {
	records map[uuid.UUID]*i.MazeRecord
}

func (f *fakeMazeRepo) Save(_ context.Context, record *i.MazeRecord) error {
	f.records[record.ID] = record
	return nil
}

func (f *fakeMazeRepo) ByID(_ context.Context, id uuid.UUID) (*i.MazeRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, errors.New("maze not found")
	}
	return record, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*dmn.User
}

func (f *fakeUserRepo) Save(user *dmn.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) ByID(id uuid.UUID) (*dmn.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (f *fakeUserRepo) ByUsername(username string) (*dmn.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, errors.New("user not found")
}

type fakeBoard struct {
	entries map[string][]i.BoardEntry
}

func (f *fakeBoard) Record(_ context.Context, boardKey, member string, score float64) error {
	f.entries[boardKey] = append(f.entries[boardKey], i.BoardEntry{Member: member, Score: score})
	return nil
}

func (f *fakeBoard) Top(_ context.Context, boardKey string, n int64) ([]i.BoardEntry, error) {
	entries := f.entries[boardKey]
	if int64(len(entries)) > n {
		entries = entries[:n]
	}
	return entries, nil
}

func (f *fakeBoard) Count(_ context.Context, boardKey string) int64 {
	return int64(len(f.entries[boardKey]))
}

func newTestManager(t *testing.T) (*MazeSessionManager, *fakeMazeRepo, *fakeUserRepo, *fakeBoard) {
	t.Helper()
	mazeRepo := &fakeMazeRepo{records: make(map[uuid.UUID]*i.MazeRecord)}
	userRepo := &fakeUserRepo{users: make(map[uuid.UUID]*dmn.User)}
	board := &fakeBoard{entries: make(map[string][]i.BoardEntry)}

	manager, err := NewMazeSessionManager(&MazeSessionConfig{
		MazeRepo:    mazeRepo,
		UserRepo:    userRepo,
		Leaderboard: board,
		Logger:      log.New(io.Discard, "", 0),
	})
	require.NoError(t, err)
	return manager, mazeRepo, userRepo, board
}

func TestCreateSession(t *testing.T) {
	manager, mazeRepo, _, _ := newTestManager(t)

	snapshot, err := manager.Create(context.Background(), 5, 4, 11)
	require.NoError(t, err)

	assert.Equal(t, 5, snapshot.Width)
	assert.Equal(t, 4, snapshot.Height)
	assert.Equal(t, int64(11), snapshot.Seed)
	assert.Equal(t, 1, snapshot.Generation)
	assert.Equal(t, maze.CellPosition{Row: 0, Col: 0}, snapshot.Start)
	assert.Equal(t, maze.CellPosition{Row: 3, Col: 4}, snapshot.Exit)
	assert.Len(t, snapshot.Walls, 4)
	assert.Len(t, snapshot.Walls[0], 5)

	// The exit opening must show up in the snapshot mask.
	exitMask := maze.Direction(snapshot.Walls[snapshot.Exit.Row][snapshot.Exit.Col])
	assert.Zero(t, exitMask&maze.South)

	// A snapshot was persisted for audit.
	record, err := mazeRepo.ByID(context.Background(), snapshot.ID)
	require.NoError(t, err)
	assert.Equal(t, snapshot.Walls, record.Walls)
}

func TestCreateSessionRejectsBadDimensions(t *testing.T) {
	manager, _, _, _ := newTestManager(t)

	_, err := manager.Create(context.Background(), 0, 5, 1)
	assert.ErrorIs(t, err, maze.ErrInvalidDimensions)

	_, err = manager.Create(context.Background(), 65, 5, 1)
	assert.ErrorIs(t, err, ErrDimensionTooLarge)
}

func TestSolveSession(t *testing.T) {
	manager, _, _, _ := newTestManager(t)
	snapshot, err := manager.Create(context.Background(), 6, 6, 23)
	require.NoError(t, err)

	t.Run("finds a wall-respecting route", func(t *testing.T) {
		path, found, err := manager.Solve(snapshot.ID, snapshot.Start, snapshot.Exit, false)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, snapshot.Start, path[0])
		assert.Equal(t, snapshot.Exit, path[len(path)-1])
	})

	t.Run("ignore-walls route is pure grid distance", func(t *testing.T) {
		path, found, err := manager.Solve(snapshot.ID, snapshot.Start, snapshot.Exit, true)
		require.NoError(t, err)
		require.True(t, found)
		assert.Len(t, path, 11)
	})

	t.Run("rejects unknown sessions", func(t *testing.T) {
		_, _, err := manager.Solve(uuid.New(), snapshot.Start, snapshot.Exit, false)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestRegenerateSession(t *testing.T) {
	manager, _, _, _ := newTestManager(t)
	snapshot, err := manager.Create(context.Background(), 5, 5, 31)
	require.NoError(t, err)

	regenerated, err := manager.Regenerate(context.Background(), snapshot.ID, 32)
	require.NoError(t, err)

	assert.Equal(t, snapshot.ID, regenerated.ID)
	assert.Equal(t, 2, regenerated.Generation)
	assert.Equal(t, int64(32), regenerated.Seed)

	// The session stays solvable after regeneration.
	_, found, err := manager.Solve(snapshot.ID, regenerated.Start, regenerated.Exit, false)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestEscape(t *testing.T) {
	manager, _, userRepo, board := newTestManager(t)
	snapshot, err := manager.Create(context.Background(), 4, 4, 41)
	require.NoError(t, err)

	user, err := dmn.NewUser(dmn.UserConfig{
		ID:            uuid.New(),
		Username:      "maze_runner",
		PlainPassword: "correct horse battery staple",
	})
	require.NoError(t, err)
	require.NoError(t, userRepo.Save(user))

	require.NoError(t, manager.Escape(context.Background(), snapshot.ID, user.ID, 5250))

	assert.Equal(t, 1, userRepo.users[user.ID].Escapes)
	assert.Equal(t, int64(1), board.Count(context.Background(), "leaderboard:escape:4x4"))

	top, err := manager.TopEscapes(context.Background(), 4, 4, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, user.ID.String(), top[0].Member)
	assert.Equal(t, float64(5250), top[0].Score)

	t.Run("rejects non-positive elapsed time", func(t *testing.T) {
		err := manager.Escape(context.Background(), snapshot.ID, user.ID, 0)
		assert.ErrorIs(t, err, ErrInvalidElapsed)
	})
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/beka-birhanu/labyrinth-api/config"
	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/beka-birhanu/labyrinth-api/pathfind"
	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/google/uuid"
)

const (
	defaultMaxDimension = 64

	// escape board key string format, one board per grid size
	escapeBoardKeyFmt = "leaderboard:escape:%dx%d"
)

// Session-related errors.
var (
	ErrSessionNotFound   = errors.New("maze session not found")
	ErrDimensionTooLarge = errors.New("maze dimension exceeds the allowed maximum")
	ErrInvalidElapsed    = errors.New("elapsed time must be positive")
)

// mazeSession pairs a live maze model with its pathfinder. The lock
// enforces the single-writer/multiple-readers discipline the core
// requires: regeneration write-locks so no path query overlaps it.
type mazeSession struct {
	model      *maze.Maze
	solver     *pathfind.BFSPathfinder
	generation int
	sync.RWMutex
}

// MazeSessionManager keeps live maze sessions in memory, persists
// their snapshots and feeds escape times to the leaderboard.
type MazeSessionManager struct {
	sessions     map[uuid.UUID]*mazeSession
	mazeRepo     i.MazeRepo
	userRepo     i.UserRepo
	board        i.Leaderboard
	maxDimension int
	logger       *log.Logger
	sync.RWMutex
}

// MazeSessionConfig holds the dependencies of a MazeSessionManager.
type MazeSessionConfig struct {
	MazeRepo     i.MazeRepo
	UserRepo     i.UserRepo
	Leaderboard  i.Leaderboard
	MaxDimension int // zero selects the default cap
	Logger       *log.Logger
}

var _ i.MazeSessionManager = &MazeSessionManager{}

// NewMazeSessionManager creates a session manager from the given
// configuration.
func NewMazeSessionManager(c *MazeSessionConfig) (*MazeSessionManager, error) {
	if c.MazeRepo == nil || c.UserRepo == nil || c.Leaderboard == nil || c.Logger == nil {
		return nil, errors.New("maze session manager requires repos, a leaderboard and a logger")
	}

	maxDimension := c.MaxDimension
	if maxDimension <= 0 {
		maxDimension = defaultMaxDimension
	}

	return &MazeSessionManager{
		sessions:     make(map[uuid.UUID]*mazeSession),
		mazeRepo:     c.MazeRepo,
		userRepo:     c.UserRepo,
		board:        c.Leaderboard,
		maxDimension: maxDimension,
		logger:       c.Logger,
	}, nil
}

// Create carves a new maze session: construct, generate, open the
// boundary exit, then persist a snapshot for audit and replay.
func (m *MazeSessionManager) Create(ctx context.Context, width, height int, seed int64) (*i.MazeSnapshot, error) {
	if width > m.maxDimension || height > m.maxDimension {
		return nil, ErrDimensionTooLarge
	}

	model, err := maze.New(width, height, seed)
	if err != nil {
		return nil, err
	}
	model.Generate()
	model.OpenExit()

	session := &mazeSession{
		model:      model,
		solver:     pathfind.ForMaze(model),
		generation: 1,
	}

	id := m.saveSession(session)
	snapshot := buildSnapshot(id, model, session.generation)
	m.persistSnapshot(ctx, snapshot)

	m.logger.Printf("%s[INFO]%s created %dx%d maze session %s (seed %d)",
		config.LogInfoColor, config.LogColorReset, width, height, id, model.Seed())
	return snapshot, nil
}

// Regenerate carves a fresh layout for an existing session. The write
// lock guarantees no Solve or Snapshot call observes a half-carved
// grid; the old layout stays intact until the lock is held.
func (m *MazeSessionManager) Regenerate(ctx context.Context, id uuid.UUID, seed int64) (*i.MazeSnapshot, error) {
	session, err := m.session(id)
	if err != nil {
		return nil, err
	}

	session.Lock()
	session.model.GenerateFromSeed(seed)
	session.model.OpenExit()
	session.generation++
	snapshot := buildSnapshot(id, session.model, session.generation)
	session.Unlock()

	m.persistSnapshot(ctx, snapshot)
	m.logger.Printf("%s[INFO]%s regenerated maze session %s (generation %d, seed %d)",
		config.LogInfoColor, config.LogColorReset, id, snapshot.Generation, snapshot.Seed)
	return snapshot, nil
}

// Snapshot returns the current layout of a session.
func (m *MazeSessionManager) Snapshot(id uuid.UUID) (*i.MazeSnapshot, error) {
	session, err := m.session(id)
	if err != nil {
		return nil, err
	}

	session.RLock()
	defer session.RUnlock()
	return buildSnapshot(id, session.model, session.generation), nil
}

// Solve computes the shortest path between two cells of a session's
// maze. The read lock lets concurrent solves share the grid while
// excluding regeneration.
func (m *MazeSessionManager) Solve(id uuid.UUID, from, to maze.CellPosition, ignoreWalls bool) ([]maze.CellPosition, bool, error) {
	session, err := m.session(id)
	if err != nil {
		return nil, false, err
	}

	session.RLock()
	defer session.RUnlock()

	if ignoreWalls {
		return session.solver.FindPathWith(from, to, pathfind.OpenGrid())
	}
	return session.solver.FindPath(from, to)
}

// Escape records a user's exit time on the leaderboard and bumps
// their escape count.
func (m *MazeSessionManager) Escape(ctx context.Context, id, userID uuid.UUID, elapsedMs int64) error {
	if elapsedMs <= 0 {
		return ErrInvalidElapsed
	}

	session, err := m.session(id)
	if err != nil {
		return err
	}

	session.RLock()
	width, height := session.model.Width(), session.model.Height()
	session.RUnlock()

	if err := m.board.Record(ctx, escapeBoardKey(width, height), userID.String(), float64(elapsedMs)); err != nil {
		m.logger.Printf("%s[ERROR]%s recording escape for user %s: %s",
			config.LogErrorColor, config.LogColorReset, userID, err)
		return err
	}

	user, err := m.userRepo.ByID(userID)
	if err != nil {
		return err
	}
	user.RecordEscape()
	if err := m.userRepo.Save(user); err != nil {
		return err
	}

	m.logger.Printf("%s[INFO]%s user %s escaped session %s in %dms",
		config.LogInfoColor, config.LogColorReset, userID, id, elapsedMs)
	return nil
}

// TopEscapes lists the fastest recorded escapes for a grid size.
func (m *MazeSessionManager) TopEscapes(ctx context.Context, width, height int, n int64) ([]i.BoardEntry, error) {
	return m.board.Top(ctx, escapeBoardKey(width, height), n)
}

func (m *MazeSessionManager) session(id uuid.UUID) (*mazeSession, error) {
	m.RLock()
	defer m.RUnlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (m *MazeSessionManager) saveSession(session *mazeSession) uuid.UUID {
	m.Lock()
	defer m.Unlock()

	id := uuid.New()
	for {
		if _, ok := m.sessions[id]; !ok {
			break
		}
		id = uuid.New()
	}
	m.sessions[id] = session
	return id
}

// persistSnapshot writes the layout to the snapshot store. Failure is
// logged but not fatal: the live session stays usable either way.
func (m *MazeSessionManager) persistSnapshot(ctx context.Context, snapshot *i.MazeSnapshot) {
	record := &i.MazeRecord{
		ID:         snapshot.ID,
		Width:      snapshot.Width,
		Height:     snapshot.Height,
		Seed:       snapshot.Seed,
		Generation: snapshot.Generation,
		Walls:      snapshot.Walls,
		CreatedAt:  time.Now().UTC(),
	}
	if err := m.mazeRepo.Save(ctx, record); err != nil {
		m.logger.Printf("%s[WARN]%s persisting snapshot of session %s: %s",
			config.LogWarnColor, config.LogColorReset, snapshot.ID, err)
	}
}

// buildSnapshot flattens the maze into row-major wall bitmasks.
func buildSnapshot(id uuid.UUID, model *maze.Maze, generation int) *i.MazeSnapshot {
	walls := make([][]byte, model.Height())
	for row := range walls {
		walls[row] = make([]byte, model.Width())
		for col := range walls[row] {
			walls[row][col] = byte(model.Walls(maze.CellPosition{Row: row, Col: col}))
		}
	}

	return &i.MazeSnapshot{
		ID:         id,
		Width:      model.Width(),
		Height:     model.Height(),
		Seed:       model.Seed(),
		Generation: generation,
		Start:      model.Start(),
		Exit:       model.Exit(),
		Walls:      walls,
	}
}

func escapeBoardKey(width, height int) string {
	return fmt.Sprintf(escapeBoardKeyFmt, width, height)
}

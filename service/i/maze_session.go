package i

import (
	"context"

	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/google/uuid"
)

// MazeSnapshot is the wire-friendly view of a maze session handed to
// the rendering collaborator: dimensions plus row-major per-cell wall
// bitmasks.
type MazeSnapshot struct {
	ID         uuid.UUID
	Width      int
	Height     int
	Seed       int64
	Generation int
	Start      maze.CellPosition
	Exit       maze.CellPosition
	Walls      [][]byte
}

// MazeSessionManager owns live maze sessions: it creates and
// regenerates layouts, answers wall snapshots and path queries, and
// records escapes. Implementations must sequence regeneration against
// in-flight path queries on the same session.
type MazeSessionManager interface {
	// Create carves a new maze session and returns its snapshot.
	Create(ctx context.Context, width, height int, seed int64) (*MazeSnapshot, error)

	// Regenerate replaces the session's layout with a freshly carved
	// one and returns the new snapshot.
	Regenerate(ctx context.Context, id uuid.UUID, seed int64) (*MazeSnapshot, error)

	// Snapshot returns the current layout of a session.
	Snapshot(id uuid.UUID) (*MazeSnapshot, error)

	// Solve computes the shortest path between two cells. The boolean
	// reports reachability; false with a nil error means "no path",
	// which is a normal outcome. With ignoreWalls set the route
	// disregards wall state and follows pure grid distance.
	Solve(id uuid.UUID, from, to maze.CellPosition, ignoreWalls bool) ([]maze.CellPosition, bool, error)

	// Escape records that a user left a session's maze through its
	// exit in the given elapsed time.
	Escape(ctx context.Context, id, userID uuid.UUID, elapsedMs int64) error

	// TopEscapes lists the fastest recorded escapes for a grid size.
	TopEscapes(ctx context.Context, width, height int, n int64) ([]BoardEntry, error)
}

/*
Package pathfind computes shortest paths over the 4-connected cell
grid of a maze.

The solver is a plain breadth-first search decoupled from any specific
wall representation through a walkability oracle, a predicate deciding
whether a step between two adjacent cells is permitted. The default
oracle consults real maze wall state; OpenGrid ignores walls entirely
and yields straight shortest-grid-distance routes for callers that
explicitly want that.

Every FindPath call allocates its own scratch state and runs in
O(width*height) time, so concurrent calls over the same (unchanging)
grid are safe.
*/
package pathfind

import (
	"errors"

	"github.com/beka-birhanu/labyrinth-api/maze"
)

var (
	// ErrOutOfBounds is returned when a path endpoint addresses a
	// cell outside the grid. This is a caller contract violation,
	// distinct from the normal "no path" outcome.
	ErrOutOfBounds = errors.New("path endpoint outside the grid")

	// ErrInvalidDimensions is returned when a pathfinder is
	// constructed over a non-positive grid.
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")
)

// Oracle decides whether a single step between two adjacent cells is
// permitted. It is only ever consulted for in-bounds, 4-adjacent
// pairs.
type Oracle func(from, to maze.CellPosition) bool

// WallOracle returns the default oracle for a maze: a step is legal
// iff the wall pair between the two cells is open.
func WallOracle(m *maze.Maze) Oracle {
	return m.CanMove
}

// OpenGrid returns an oracle permitting every in-bounds adjacent step
// regardless of wall state. Paths found with it cut straight through
// walls; it exists for callers that deliberately want grid-distance
// routes rather than maze-respecting ones.
func OpenGrid() Oracle {
	return func(from, to maze.CellPosition) bool {
		return true
	}
}

// BFSPathfinder finds shortest paths between grid cells with
// breadth-first search. Neighbor expansion follows the fixed North,
// East, South, West order, so equal-length ties always break the same
// way.
type BFSPathfinder struct {
	width    int
	height   int
	walkable Oracle
}

// New creates a pathfinder over a width x height grid using the given
// walkability oracle.
func New(width, height int, walkable Oracle) (*BFSPathfinder, error) {
	if width < 1 || height < 1 {
		return nil, ErrInvalidDimensions
	}
	return &BFSPathfinder{
		width:    width,
		height:   height,
		walkable: walkable,
	}, nil
}

// ForMaze creates a pathfinder over the maze's grid that respects its
// wall state.
func ForMaze(m *maze.Maze) *BFSPathfinder {
	return &BFSPathfinder{
		width:    m.Width(),
		height:   m.Height(),
		walkable: WallOracle(m),
	}
}

// FindPath returns the shortest oracle-legal route from start to
// target, both inclusive.
//
// The boolean reports reachability: an unreachable target yields
// (nil, false, nil) and is a normal outcome, not an error. Errors are
// reserved for contract violations such as out-of-bounds endpoints.
func (p *BFSPathfinder) FindPath(start, target maze.CellPosition) ([]maze.CellPosition, bool, error) {
	return p.FindPathWith(start, target, p.walkable)
}

// FindPathWith runs FindPath under a one-off oracle, leaving the
// pathfinder's own oracle untouched.
func (p *BFSPathfinder) FindPathWith(start, target maze.CellPosition, walkable Oracle) ([]maze.CellPosition, bool, error) {
	if !p.inBound(start) || !p.inBound(target) {
		return nil, false, ErrOutOfBounds
	}

	if start == target {
		return []maze.CellPosition{start}, true, nil
	}

	parents := make(map[maze.CellPosition]maze.CellPosition)
	visited := make(map[maze.CellPosition]bool, p.width*p.height)
	visited[start] = true
	queue := []maze.CellPosition{start}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, d := range maze.Directions {
			next := curr.Step(d)
			if !p.inBound(next) || visited[next] || !walkable(curr, next) {
				continue
			}

			visited[next] = true
			parents[next] = curr
			if next == target {
				return reconstruct(parents, start, target), true, nil
			}
			queue = append(queue, next)
		}
	}

	return nil, false, nil
}

func (p *BFSPathfinder) inBound(pos maze.CellPosition) bool {
	return pos.Row >= 0 && pos.Row < p.height && pos.Col >= 0 && pos.Col < p.width
}

// reconstruct walks the predecessor links from target back to start,
// then reverses the sequence so it reads start first.
func reconstruct(parents map[maze.CellPosition]maze.CellPosition, start, target maze.CellPosition) []maze.CellPosition {
	path := []maze.CellPosition{target}
	for curr := target; curr != start; {
		curr = parents[curr]
		path = append(path, curr)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

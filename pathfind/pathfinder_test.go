package pathfind

import (
	"testing"

	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceDistance computes shortest-path lengths with a frontier
// sweep independent of the BFSPathfinder implementation.
func referenceDistance(width, height int, walkable Oracle, start, target maze.CellPosition) int {
	dist := map[maze.CellPosition]int{start: 0}
	frontier := []maze.CellPosition{start}
	for len(frontier) > 0 {
		var nextFrontier []maze.CellPosition
		for _, curr := range frontier {
			for _, d := range maze.Directions {
				next := curr.Step(d)
				if next.Row < 0 || next.Row >= height || next.Col < 0 || next.Col >= width {
					continue
				}
				if _, seen := dist[next]; seen || !walkable(curr, next) {
					continue
				}
				dist[next] = dist[curr] + 1
				nextFrontier = append(nextFrontier, next)
			}
		}
		frontier = nextFrontier
	}

	d, ok := dist[target]
	if !ok {
		return -1
	}
	return d
}

func assertWalkablePath(t *testing.T, path []maze.CellPosition, walkable Oracle) {
	t.Helper()
	for i := 1; i < len(path); i++ {
		assert.True(t, walkable(path[i-1], path[i]),
			"step %v -> %v is not oracle-legal", path[i-1], path[i])
	}
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	_, err := New(0, 4, OpenGrid())
	assert.ErrorIs(t, err, ErrInvalidDimensions)
	_, err = New(4, -1, OpenGrid())
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestFindPathStartEqualsTarget(t *testing.T) {
	solver, err := New(3, 3, OpenGrid())
	require.NoError(t, err)

	start := maze.CellPosition{Row: 1, Col: 2}
	path, found, err := solver.FindPath(start, start)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []maze.CellPosition{start}, path)
}

func TestFindPathRejectsOutOfBounds(t *testing.T) {
	solver, err := New(3, 3, OpenGrid())
	require.NoError(t, err)

	cases := []struct {
		start  maze.CellPosition
		target maze.CellPosition
	}{
		{maze.CellPosition{Row: -1, Col: 0}, maze.CellPosition{Row: 0, Col: 0}},
		{maze.CellPosition{Row: 0, Col: 0}, maze.CellPosition{Row: 3, Col: 0}},
		{maze.CellPosition{Row: 0, Col: 0}, maze.CellPosition{Row: 0, Col: 3}},
	}
	for _, tc := range cases {
		_, _, err := solver.FindPath(tc.start, tc.target)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	}
}

func TestFindPathNoPathIsNotAnError(t *testing.T) {
	blocked := Oracle(func(from, to maze.CellPosition) bool { return false })
	solver, err := New(4, 4, blocked)
	require.NoError(t, err)

	path, found, err := solver.FindPath(
		maze.CellPosition{Row: 0, Col: 0},
		maze.CellPosition{Row: 3, Col: 3},
	)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, path)
}

func TestFindPathOpenGrid(t *testing.T) {
	solver, err := New(5, 5, OpenGrid())
	require.NoError(t, err)

	start := maze.CellPosition{Row: 0, Col: 0}
	target := maze.CellPosition{Row: 4, Col: 4}
	path, found, err := solver.FindPath(start, target)
	require.NoError(t, err)
	require.True(t, found)

	// With no walls the route is pure Manhattan distance.
	assert.Len(t, path, 9)
	assert.Equal(t, start, path[0])
	assert.Equal(t, target, path[len(path)-1])
	assertWalkablePath(t, path, OpenGrid())
}

func TestFindPathRespectsMazeWalls(t *testing.T) {
	m, err := maze.New(5, 5, 77)
	require.NoError(t, err)
	m.Generate()

	solver := ForMaze(m)
	oracle := WallOracle(m)
	start := m.Start()
	target := m.Exit()

	path, found, err := solver.FindPath(start, target)
	require.NoError(t, err)
	require.True(t, found, "a generated maze is fully connected")

	assert.Equal(t, start, path[0])
	assert.Equal(t, target, path[len(path)-1])
	assertWalkablePath(t, path, oracle)

	wantLen := referenceDistance(m.Width(), m.Height(), oracle, start, target) + 1
	assert.Equal(t, wantLen, len(path), "BFS must return a shortest path")
}

func TestWallOracleVersusOpenGrid(t *testing.T) {
	m, err := maze.New(6, 6, 13)
	require.NoError(t, err)
	m.Generate()

	solver := ForMaze(m)
	start := m.Start()
	target := m.Exit()

	wallPath, found, err := solver.FindPath(start, target)
	require.NoError(t, err)
	require.True(t, found)

	openPath, found, err := solver.FindPathWith(start, target, OpenGrid())
	require.NoError(t, err)
	require.True(t, found)

	// The permissive oracle cuts straight through walls, so its route
	// can never be longer than the maze-respecting one.
	assert.Len(t, openPath, 11)
	assert.GreaterOrEqual(t, len(wallPath), len(openPath))
}

func TestFindPathSeededFixture(t *testing.T) {
	// 3x3 maze with a fixed seed: the exact carving is pinned by the
	// seed, and every structural fact below must hold for it.
	m, err := maze.New(3, 3, 7)
	require.NoError(t, err)
	m.Generate()

	twin, err := maze.New(3, 3, 7)
	require.NoError(t, err)
	twin.Generate()

	solver := ForMaze(m)
	oracle := WallOracle(m)
	start := maze.CellPosition{Row: 0, Col: 0}
	target := maze.CellPosition{Row: 2, Col: 2}

	path, found, err := solver.FindPath(start, target)
	require.NoError(t, err)
	require.True(t, found)

	assertWalkablePath(t, path, oracle)
	assert.GreaterOrEqual(t, len(path), 5, "corner to corner needs at least Manhattan distance")
	assert.LessOrEqual(t, len(path), 9)
	assert.Equal(t, referenceDistance(3, 3, oracle, start, target)+1, len(path))

	// Same seed, same layout, same route.
	twinPath, twinFound, err := ForMaze(twin).FindPath(start, target)
	require.NoError(t, err)
	require.True(t, twinFound)
	assert.Equal(t, path, twinPath)
}

func TestFindPathSingleCellGrid(t *testing.T) {
	m, err := maze.New(1, 1, 1)
	require.NoError(t, err)
	m.Generate()

	pos := maze.CellPosition{Row: 0, Col: 0}
	path, found, err := ForMaze(m).FindPath(pos, pos)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []maze.CellPosition{pos}, path)
}

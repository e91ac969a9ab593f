/*
Package maze provides tools for creating and managing rectangular grid
mazes.

It defines the `Maze` structure, composed of `Cell` values that carry
their wall state as a bitmask. Mazes are carved with an iterative
randomized depth-first backtracker, which leaves the grid a spanning
tree: exactly one path connects any two cells, and walls are always
opened in matched pairs.

Generation is seeded and reproducible. Utility methods cover wall and
move queries, neighbor stepping, an optional boundary exit opening, and
ASCII visualization of the maze.
*/
package maze

import (
	"errors"
	"math/rand"
	"strings"
	"time"
)

var (
	// ErrInvalidDimensions is returned when a maze is constructed
	// with a non-positive width or height.
	ErrInvalidDimensions = errors.New("maze dimensions must be positive")
)

// Maze represents a rectangular maze of Width x Height cells.
//
// Generate runs in O(Width*Height) time and memory, as do full-grid
// queries; per-cell queries are O(1). A Maze is not safe for
// concurrent mutation: callers must not let Generate overlap with
// in-flight queries on the same instance.
type Maze struct {
	width  int
	height int
	seed   int64
	grid   [][]Cell
}

// New allocates a maze of the given dimensions with every cell fully
// walled and unvisited. The maze is not carved yet; call Generate.
//
// A zero seed selects a time-derived one, so that the layout still
// varies run to run while staying reproducible through Seed().
func New(width, height int, seed int64) (*Maze, error) {
	if width < 1 || height < 1 {
		return nil, ErrInvalidDimensions
	}

	grid := make([][]Cell, height)
	for r := range grid {
		grid[r] = make([]Cell, width)
		for c := range grid[r] {
			grid[r][c].reset()
		}
	}

	m := &Maze{
		width:  width,
		height: height,
		grid:   grid,
	}
	m.Reseed(seed)
	return m, nil
}

// Width returns the number of columns in the maze.
func (m *Maze) Width() int {
	return m.width
}

// Height returns the number of rows in the maze.
func (m *Maze) Height() int {
	return m.height
}

// Seed returns the seed the next Generate call will carve with.
func (m *Maze) Seed() int64 {
	return m.seed
}

// Reseed replaces the generation seed without carving. A zero seed is
// substituted with a time-derived one.
func (m *Maze) Reseed(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m.seed = seed
}

// Start returns the deterministic carve origin, the top-left cell.
func (m *Maze) Start() CellPosition {
	return CellPosition{Row: 0, Col: 0}
}

// Exit returns the deterministic far-corner exit cell.
func (m *Maze) Exit() CellPosition {
	return CellPosition{Row: m.height - 1, Col: m.width - 1}
}

// InBound reports whether the row/column pair addresses a cell.
func (m *Maze) InBound(row, col int) bool {
	return row >= 0 && row < m.height && col >= 0 && col < m.width
}

// HasWall reports the wall state of a cell toward d. Positions outside
// the grid count as fully walled.
func (m *Maze) HasWall(p CellPosition, d Direction) bool {
	if !m.InBound(p.Row, p.Col) {
		return true
	}
	return m.grid[p.Row][p.Col].HasWall(d)
}

// Walls returns the wall mask of a cell. Positions outside the grid
// count as fully walled.
func (m *Maze) Walls(p CellPosition) Direction {
	if !m.InBound(p.Row, p.Col) {
		return AllWalls
	}
	return m.grid[p.Row][p.Col].Walls()
}

// CanMove reports whether a single step between two adjacent cells is
// open: both positions in bounds, exactly one cell apart, and the wall
// pair between them removed on both sides.
func (m *Maze) CanMove(from, to CellPosition) bool {
	if !m.InBound(from.Row, from.Col) || !m.InBound(to.Row, to.Col) {
		return false
	}

	for _, d := range Directions {
		if from.Step(d) != to {
			continue
		}
		return !m.grid[from.Row][from.Col].HasWall(d) &&
			!m.grid[to.Row][to.Col].HasWall(d.Opposite())
	}
	return false
}

// Generate resets every cell to fully walled and unvisited, then
// carves a fresh layout with an iterative randomized depth-first
// backtracker:
//
//  1. Mark the start cell visited and push it.
//  2. Peek the stack top and collect its unvisited in-bounds
//     neighbors. If there are none, pop and backtrack. Otherwise pick
//     one uniformly at random, open the wall pair toward it, mark it
//     visited and push it.
//  3. The stack empties once every cell has been visited exactly once,
//     leaving the open-wall graph a spanning tree.
//
// The same seed always reproduces the same layout. Generate never
// fails and never leaves a partially carved grid behind.
func (m *Maze) Generate() {
	for r := range m.grid {
		for c := range m.grid[r] {
			m.grid[r][c].reset()
		}
	}

	rng := rand.New(rand.NewSource(m.seed))
	stack := make([]CellPosition, 0, m.width*m.height)

	start := m.Start()
	m.grid[start.Row][start.Col].visited = true
	stack = append(stack, start)

	var candidates [4]Direction
	for len(stack) > 0 {
		curr := stack[len(stack)-1]

		n := 0
		for _, d := range Directions {
			next := curr.Step(d)
			if m.InBound(next.Row, next.Col) && !m.grid[next.Row][next.Col].visited {
				candidates[n] = d
				n++
			}
		}

		if n == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(n)]
		next := curr.Step(d)
		m.openWall(curr, d)
		m.grid[next.Row][next.Col].visited = true
		stack = append(stack, next)
	}
}

// GenerateFromSeed reseeds the maze and carves a fresh layout.
func (m *Maze) GenerateFromSeed(seed int64) {
	m.Reseed(seed)
	m.Generate()
}

// OpenExit forces open the boundary-facing South wall of the far
// corner cell so an agent can physically leave the structure.
//
// This deliberately violates the spanning-tree and wall-symmetry
// invariants at the grid boundary: the opening has no in-grid partner
// cell. In-grid pathfinding is unaffected because the neighbor beyond
// the opening is out of bounds and never enqueued.
func (m *Maze) OpenExit() {
	exit := m.Exit()
	m.grid[exit.Row][exit.Col].setWall(South, false)
}

// openWall removes the wall pair between a cell and its neighbor
// toward d. The neighbor side is only touched when it is in bounds, so
// walls always fall in matched pairs inside the grid.
func (m *Maze) openWall(p CellPosition, d Direction) {
	m.grid[p.Row][p.Col].setWall(d, false)
	next := p.Step(d)
	if m.InBound(next.Row, next.Col) {
		m.grid[next.Row][next.Col].setWall(d.Opposite(), false)
	}
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+" + strings.Repeat("---+", m.width) + "\n")

	for row := 0; row < m.height; row++ {
		cellRow := "|"
		wallRow := "+"
		for col := 0; col < m.width; col++ {
			cell := &m.grid[row][col]

			cellRow += "   "
			if cell.HasWall(East) {
				cellRow += "|"
			} else {
				cellRow += " "
			}

			if cell.HasWall(South) {
				wallRow += "---+"
			} else {
				wallRow += "   +"
			}
		}
		output.WriteString(cellRow + "\n")
		output.WriteString(wallRow + "\n")
	}

	return output.String()
}

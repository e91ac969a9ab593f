package maze

// Direction identifies one side of a cell. The values are bit flags so
// that a cell's full wall state packs into a single mask.
type Direction uint8

const (
	North Direction = 1 << iota
	East
	South
	West
)

// AllWalls is the mask of a fully walled cell.
const AllWalls = North | East | South | West

// Directions lists the four cardinal directions in the fixed
// North, East, South, West traversal order used by generation and
// pathfinding alike, so that tie-breaking stays deterministic.
var Directions = [4]Direction{North, East, South, West}

// String returns the human-readable name of the direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	}
	return "Unknown"
}

// Opposite returns the direction facing back at d. Opening a wall pair
// clears d on one cell and d.Opposite() on its neighbor.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return 0
}

// Delta returns the row and column offsets of a single step toward d.
// North decreases the row index.
func (d Direction) Delta() (rowDelta, colDelta int) {
	switch d {
	case North:
		return -1, 0
	case South:
		return 1, 0
	case East:
		return 0, 1
	case West:
		return 0, -1
	}
	return 0, 0
}

// Cell represents a single cell in the maze grid: a wall mask plus the
// visited flag consumed while carving. The visited flag carries no
// meaning once generation has finished.
type Cell struct {
	walls   Direction
	visited bool
}

// HasWall returns true if the cell still has a wall on side d.
func (c *Cell) HasWall(d Direction) bool {
	return c.walls&d != 0
}

// Walls returns the cell's wall mask.
func (c *Cell) Walls() Direction {
	return c.walls
}

func (c *Cell) setWall(d Direction, present bool) {
	if present {
		c.walls |= d
	} else {
		c.walls &^= d
	}
}

func (c *Cell) reset() {
	c.walls = AllWalls
	c.visited = false
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int // Row index of the cell
	Col int // Column index of the cell
}

// Step returns the position one cell away toward d. The result may be
// outside the grid; callers are expected to bounds-check it.
func (p CellPosition) Step(d Direction) CellPosition {
	dr, dc := d.Delta()
	return CellPosition{Row: p.Row + dr, Col: p.Col + dc}
}

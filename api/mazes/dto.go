// Package mazesapi provides structures and utilities for managing
// maze session requests and responses.
package mazesapi

import (
	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/beka-birhanu/labyrinth-api/service/i"
)

// CreateMazeRequest represents a request to carve a new maze session.
type CreateMazeRequest struct {
	Width  int   `json:"width" binding:"required,min=1"`
	Height int   `json:"height" binding:"required,min=1"`
	Seed   int64 `json:"seed"` // zero picks a random seed
}

// RegenerateRequest represents a request to carve a fresh layout for
// an existing session.
type RegenerateRequest struct {
	Seed int64 `json:"seed"` // zero picks a random seed
}

// EscapeRequest reports a completed run through a maze.
type EscapeRequest struct {
	ElapsedMs int64 `json:"elapsed_ms" binding:"required,min=1"`
}

// CellResponse is one grid coordinate.
type CellResponse struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// MazeResponse is the rendering-layer view of a session: dimensions
// plus the row-major per-cell wall bitmasks (North=1, East=2, South=4,
// West=8).
type MazeResponse struct {
	ID         string       `json:"id"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	Seed       int64        `json:"seed"`
	Generation int          `json:"generation"`
	Start      CellResponse `json:"start"`
	Exit       CellResponse `json:"exit"`
	Walls      [][]int      `json:"walls"`
}

// PathResponse carries a solve result. Found=false with an empty path
// is the normal "no path" outcome, not an error.
type PathResponse struct {
	Found     bool           `json:"found"`
	Path      []CellResponse `json:"path"`
	Truncated bool           `json:"truncated,omitempty"`
}

// LeaderboardEntryResponse is one leaderboard row.
type LeaderboardEntryResponse struct {
	UserID    string `json:"user_id"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// newMazeResponse converts a service snapshot into its wire form.
func newMazeResponse(snapshot *i.MazeSnapshot) *MazeResponse {
	walls := make([][]int, len(snapshot.Walls))
	for row := range snapshot.Walls {
		walls[row] = make([]int, len(snapshot.Walls[row]))
		for col := range snapshot.Walls[row] {
			walls[row][col] = int(snapshot.Walls[row][col])
		}
	}

	return &MazeResponse{
		ID:         snapshot.ID.String(),
		Width:      snapshot.Width,
		Height:     snapshot.Height,
		Seed:       snapshot.Seed,
		Generation: snapshot.Generation,
		Start:      CellResponse{Row: snapshot.Start.Row, Col: snapshot.Start.Col},
		Exit:       CellResponse{Row: snapshot.Exit.Row, Col: snapshot.Exit.Col},
		Walls:      walls,
	}
}

// newPathResponse converts a path into its wire form, truncating to a
// look-ahead window when one is requested. Truncation is purely a
// presentation decision; the underlying route stays a full shortest
// path.
func newPathResponse(path []maze.CellPosition, found bool, window int) *PathResponse {
	response := &PathResponse{
		Found: found,
		Path:  make([]CellResponse, 0, len(path)),
	}

	if window > 0 && len(path) > window {
		path = path[:window]
		response.Truncated = true
	}
	for _, pos := range path {
		response.Path = append(response.Path, CellResponse{Row: pos.Row, Col: pos.Col})
	}
	return response
}

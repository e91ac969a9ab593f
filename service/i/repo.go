package i

import (
	"context"
	"time"

	dmn "github.com/beka-birhanu/labyrinth-api/identity"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	Save(user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByUsername(username string) (*dmn.User, error)
}

// MazeRecord is the persisted snapshot of a generated maze layout.
// Walls holds the row-major per-cell wall bitmasks, so a layout can be
// re-rendered or audited without replaying its seed.
type MazeRecord struct {
	ID         uuid.UUID `bson:"_id"`
	Width      int       `bson:"width"`
	Height     int       `bson:"height"`
	Seed       int64     `bson:"seed"`
	Generation int       `bson:"generation"`
	Walls      [][]byte  `bson:"walls"`
	CreatedAt  time.Time `bson:"createdAt"`
}

// MazeRepo defines the interface for maze snapshot persistence.
type MazeRepo interface {
	// Save inserts or updates the snapshot of a maze session.
	Save(ctx context.Context, record *MazeRecord) error

	// ByID retrieves the latest snapshot of a maze session.
	ByID(ctx context.Context, id uuid.UUID) (*MazeRecord, error)
}

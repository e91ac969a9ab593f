package repo

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MazeRepo handles the persistence of generated maze snapshots, so
// layouts stay auditable and replayable after the process restarts.
type MazeRepo struct {
	collection *mongo.Collection
}

// NewMazeRepo creates a new MazeRepo with the given MongoDB client, database name, and collection name.
func NewMazeRepo(client *mongo.Client, dbName, collectionName string) *MazeRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &MazeRepo{
		collection: collection,
	}
}

// Save inserts or updates the snapshot of a maze session. Each
// regeneration overwrites the session's document with the new layout
// and generation counter.
func (m *MazeRepo) Save(ctx context.Context, record *i.MazeRecord) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	filter := bson.M{"_id": record.ID}
	update := bson.M{
		"$set": bson.M{
			"width":      record.Width,
			"height":     record.Height,
			"seed":       record.Seed,
			"generation": record.Generation,
			"walls":      record.Walls,
			"updatedAt":  time.Now(),
		},
		"$setOnInsert": bson.M{
			"createdAt": record.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves the latest snapshot of a maze session.
// Returns an error if the snapshot is not found or if an unexpected error occurs.
func (m *MazeRepo) ByID(ctx context.Context, id uuid.UUID) (*i.MazeRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var record i.MazeRecord
	if err := m.collection.FindOne(ctx, filter).Decode(&record); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("maze not found")
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &record, nil
}

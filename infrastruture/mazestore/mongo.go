package mazestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/beka-birhanu/vinom-maze/storage"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoTimeout = 2 * time.Second

var _ i.MazeStore = &MongoStore{}

// mazeDocument is the stored form of a maze. Layout holds the binary encoding.
type mazeDocument struct {
	ID        string    `bson:"_id"`
	Size      int       `bson:"size"`
	Algorithm string    `bson:"algorithm"`
	Layout    []byte    `bson:"layout"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoStore handles the persistence of mazes in a MongoDB collection.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a new MongoStore with the given MongoDB client, database name, and collection name.
func NewMongoStore(client *mongo.Client, dbName, collectionName string) *MongoStore {
	return &MongoStore{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// Save inserts or updates the maze document with the given id.
func (ms *MongoStore) Save(ctx context.Context, id uuid.UUID, m *maze.Maze) error {
	var buf bytes.Buffer
	if err := storage.Save(&buf, m); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	filter := bson.M{"_id": id.String()}
	update := bson.M{
		"$set": bson.M{
			"size":      m.Size(),
			"algorithm": m.Algorithm().String(),
			"layout":    buf.Bytes(),
			"updatedAt": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := ms.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrIOFailure, err)
	}
	return nil
}

// Load implements i.MazeStore. The stored algorithm is restored along with the layout.
func (ms *MongoStore) Load(ctx context.Context, id uuid.UUID, m *maze.Maze) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	var doc mazeDocument
	if err := ms.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("%w: %s", ErrMazeNotFound, id)
		}
		return fmt.Errorf("%w: %w", storage.ErrIOFailure, err)
	}
	if err := storage.Load(bytes.NewReader(doc.Layout), m); err != nil {
		return err
	}

	// Documents written by other tools may lack a known algorithm; the layout still loads.
	if algorithm, err := maze.ParseAlgorithm(doc.Algorithm); err == nil {
		_ = m.SetAlgorithm(algorithm)
	}
	return nil
}

// Delete implements i.MazeStore.
func (ms *MongoStore) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	res, err := ms.collection.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrIOFailure, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", ErrMazeNotFound, id)
	}
	return nil
}

// List returns ids of every stored maze, most recently updated first.
func (ms *MongoStore) List(ctx context.Context) ([]uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := ms.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrIOFailure, err)
	}

	var docs []mazeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrIOFailure, err)
	}

	ids := make([]uuid.UUID, 0, len(docs))
	for _, doc := range docs {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

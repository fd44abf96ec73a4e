package mazestore

import (
	"context"
	"os"
	"testing"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}

	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	require.NoError(t, client.Ping(ctx, nil))

	dbName := "vinom_maze_test"
	collection := "mazes_" + uuid.NewString()
	t.Cleanup(func() {
		_ = client.Database(dbName).Collection(collection).Drop(context.Background())
	})

	store := NewMongoStore(client, dbName, collection)
	exerciseStore(t, store)

	t.Run("load restores the algorithm", func(t *testing.T) {
		id := uuid.New()
		saved := generatedMaze(t, 5, 8)
		require.Equal(t, maze.Eller, saved.Algorithm())
		require.NoError(t, store.Save(ctx, id, saved))

		loaded, err := maze.New(3)
		require.NoError(t, err)
		require.Equal(t, maze.Kruskal, loaded.Algorithm())
		require.NoError(t, store.Load(ctx, id, loaded))
		assert.Equal(t, maze.Eller, loaded.Algorithm())
	})
}

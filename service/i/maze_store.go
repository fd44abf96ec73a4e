package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// MazeStore persists maze wall layouts under an id.
type MazeStore interface {
	// Save stores the maze's current layout, replacing any previous one with the same id.
	Save(ctx context.Context, id uuid.UUID, m *maze.Maze) error

	// Load reads a stored layout into m, resizing it to the stored size.
	// m is left untouched on error.
	Load(ctx context.Context, id uuid.UUID, m *maze.Maze) error

	// Delete removes a stored layout.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns the ids of every stored layout.
	List(ctx context.Context) ([]uuid.UUID, error)
}

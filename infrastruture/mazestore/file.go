package mazestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/beka-birhanu/vinom-maze/storage"
	"github.com/google/uuid"
)

const fileExt = ".maze"

var _ i.MazeStore = &FileStore{}

// FileStore keeps one binary file per maze in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store rooted at it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %w", storage.ErrIOFailure, dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) path(id uuid.UUID) string {
	return filepath.Join(fs.dir, id.String()+fileExt)
}

// Save writes to a temporary file first so a failed save never clobbers the previous layout.
func (fs *FileStore) Save(ctx context.Context, id uuid.UUID, m *maze.Maze) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp := fs.path(id) + ".tmp"
	if err := storage.SaveFile(tmp, m); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, fs.path(id)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %w", storage.ErrIOFailure, err)
	}
	return nil
}

// Load implements i.MazeStore.
func (fs *FileStore) Load(ctx context.Context, id uuid.UUID, m *maze.Maze) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := storage.LoadFile(fs.path(id), m)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrMazeNotFound, id)
	}
	return err
}

// Delete implements i.MazeStore.
func (fs *FileStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(fs.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrMazeNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrIOFailure, err)
	}
	return nil
}

// List implements i.MazeStore. Files whose names are not maze ids are ignored.
func (fs *FileStore) List(ctx context.Context) ([]uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrIOFailure, err)
	}

	var ids []uuid.UUID
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		id, err := uuid.Parse(strings.TrimSuffix(name, fileExt))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(a, b int) bool {
		return ids[a].String() < ids[b].String()
	})
	return ids, nil
}

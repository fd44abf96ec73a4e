package storage

import (
	"fmt"
	"os"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// SaveFile writes the maze to path in binary form, replacing any existing file.
func SaveFile(path string, m *maze.Maze) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: opening %s for saving: %w", ErrIOFailure, path, err)
	}

	if err := Save(file, m); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", ErrIOFailure, path, err)
	}
	return nil
}

// LoadFile reads a binary maze file into m.
func LoadFile(path string, m *maze.Maze) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: opening %s for loading: %w", ErrIOFailure, path, err)
	}
	defer file.Close()

	return Load(file, m)
}

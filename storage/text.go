package storage

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// SaveText writes the legacy whitespace-delimited form: the size on the first
// line, then one line per room holding its four wall flags as 0 or 1.
func SaveText(w io.Writer, m *maze.Maze) error {
	bw := bufio.NewWriter(w)
	grid := m.View()

	fmt.Fprintf(bw, "%d\n", grid.Size())
	for _, row := range grid {
		for _, room := range row {
			for _, closed := range room.Walls {
				fmt.Fprintf(bw, "%d ", boolByte(closed))
			}
			bw.WriteByte('\n')
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

// LoadText reads the legacy text form into m.
func LoadText(r io.Reader, m *maze.Maze) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	next := func(what string) (int, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, fmt.Errorf("%w: reading %s: %w", ErrIOFailure, what, err)
			}
			return 0, fmt.Errorf("%w: truncated %s", ErrCorrupted, what)
		}
		v, err := strconv.Atoi(scanner.Text())
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %w", ErrCorrupted, what, err)
		}
		return v, nil
	}

	size, err := next("size")
	if err != nil {
		return err
	}
	if err := m.ValidateSize(size); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupted, err)
	}

	grid := maze.NewGrid(size)
	for y := range grid {
		for x := range grid[y] {
			for i := range grid[y][x].Walls {
				v, err := next(fmt.Sprintf("room (%d,%d)", x, y))
				if err != nil {
					return err
				}
				if v < 0 || v > 255 {
					return fmt.Errorf("%w: room (%d,%d): wall flag %d", ErrCorrupted, x, y, v)
				}
				closed, err := byteBool(byte(v))
				if err != nil {
					return fmt.Errorf("%w: room (%d,%d): %w", ErrCorrupted, x, y, err)
				}
				grid[y][x].Walls[i] = closed
			}
		}
	}

	return m.SetGrid(grid)
}

/*
Package storage encodes a maze's wall layout to and from a byte stream.

The canonical binary form is a little-endian int32 size followed by one
record per room in row-major order. Each record is four bytes, one per wall
in top, right, bottom, left order, holding 1 for a closed wall and 0 for an
open one. A maze of size n therefore takes 4 + n*n*4 bytes.
*/
package storage

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/beka-birhanu/vinom-maze/maze"
)

var (
	ErrIOFailure = errors.New("maze storage i/o failure")
	ErrCorrupted = errors.New("corrupted maze data")
)

// EncodedSize returns the byte length of a maze of the given size in binary form.
func EncodedSize(size int) int {
	return 4 + size*size*4
}

// Save writes the maze's size and wall flags to w.
func Save(w io.Writer, m *maze.Maze) error {
	bw := bufio.NewWriter(w)
	grid := m.View()

	if err := binary.Write(bw, binary.LittleEndian, int32(grid.Size())); err != nil {
		return fmt.Errorf("%w: writing size: %w", ErrIOFailure, err)
	}

	record := make([]byte, 4)
	for _, row := range grid {
		for _, room := range row {
			for i, closed := range room.Walls {
				record[i] = boolByte(closed)
			}
			if _, err := bw.Write(record); err != nil {
				return fmt.Errorf("%w: writing rooms: %w", ErrIOFailure, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

// Load reads a maze written by Save into m, resizing it to the stored size.
// m is only modified once the whole stream has been decoded.
func Load(r io.Reader, m *maze.Maze) error {
	br := bufio.NewReader(r)

	var size int32
	if err := binary.Read(br, binary.LittleEndian, &size); err != nil {
		return readError("size", err)
	}
	if err := m.ValidateSize(int(size)); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupted, err)
	}

	grid := maze.NewGrid(int(size))
	record := make([]byte, 4)
	for y := range grid {
		for x := range grid[y] {
			if _, err := io.ReadFull(br, record); err != nil {
				return readError(fmt.Sprintf("room (%d,%d)", x, y), err)
			}
			for i, b := range record {
				closed, err := byteBool(b)
				if err != nil {
					return fmt.Errorf("%w: room (%d,%d): %w", ErrCorrupted, x, y, err)
				}
				grid[y][x].Walls[i] = closed
			}
		}
	}

	return m.SetGrid(grid)
}

func readError(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated %s", ErrCorrupted, what)
	}
	return fmt.Errorf("%w: reading %s: %w", ErrIOFailure, what, err)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func byteBool(b byte) (bool, error) {
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, fmt.Errorf("wall flag byte %d is not 0 or 1", b)
}

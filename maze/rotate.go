package maze

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Direction is a quarter-turn rotation direction.
type Direction int

const (
	Clockwise Direction = iota
	Counterclockwise
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "clockwise"
	case Counterclockwise:
		return "counterclockwise"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// quarterTurns normalises times into [0, 4).
func quarterTurns(times int) int {
	return ((times % 4) + 4) % 4
}

// Rotate turns the grid by times quarter turns in the given direction.
// Each turn is computed into a fresh grid by a pool of workers that own
// disjoint destination rows; the maze's grid is swapped only after every
// worker has finished. On error the maze keeps its previous grid.
func (m *Maze) Rotate(direction Direction, times int) error {
	if direction != Clockwise && direction != Counterclockwise {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, int(direction))
	}

	grid := m.grid
	for t := 0; t < quarterTurns(times); t++ {
		rotated, err := rotateGrid(grid, direction, m.workers)
		if err != nil {
			return err
		}
		grid = rotated
	}

	m.grid = grid
	return nil
}

// rotateGrid returns src turned once in direction. src is only read.
func rotateGrid(src Grid, direction Direction, workers int) (Grid, error) {
	size := src.Size()
	dst := make(Grid, size)

	chunk := (size + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)

	for start := 0; start < size; start += chunk {
		end := min(start+chunk, size)
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: rows [%d, %d): %v", ErrRotationAborted, start, end, r)
				}
			}()
			for y := start; y < end; y++ {
				dst[y] = make([]Room, size)
				for x := 0; x < size; x++ {
					from := sourceOf(Point{X: x, Y: y}, size, direction)
					dst[y][x] = rotateRoom(src[from.Y][from.X], direction)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dst, nil
}

// sourceOf returns the source room that lands on dst after one turn.
func sourceOf(dst Point, size int, direction Direction) Point {
	if direction == Clockwise {
		return Point{X: dst.Y, Y: size - 1 - dst.X}
	}
	return Point{X: size - 1 - dst.Y, Y: dst.X}
}

// rotateRoom shifts the wall flags by one side. Clockwise the new top is the
// old left; counterclockwise the new top is the old right.
func rotateRoom(r Room, direction Direction) Room {
	var out Room
	for _, w := range Walls {
		if direction == Clockwise {
			out.Walls[w] = r.Walls[(w+3)%4]
		} else {
			out.Walls[w] = r.Walls[(w+1)%4]
		}
	}
	return out
}

// RotatePoint maps a coordinate through the same rotation as Maze.Rotate.
func RotatePoint(p Point, size int, direction Direction, times int) Point {
	for t := 0; t < quarterTurns(times); t++ {
		if direction == Clockwise {
			p = Point{X: size - 1 - p.Y, Y: p.X}
		} else {
			p = Point{X: p.Y, Y: size - 1 - p.X}
		}
	}
	return p
}

/*
Package maze provides tools for creating and managing square perfect mazes.

A Maze owns one Grid of Room values, each carrying four wall flags. Generation
fills the grid with a spanning tree over the rooms using either a randomized
spanning tree (Kruskal) or a row propagation (Eller) algorithm. The grid can
be rotated by quarter turns, rendered as ASCII, and checked for wall symmetry
and the perfect-maze property.
*/
package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const (
	// DefaultMaxSize bounds the size accepted by New unless WithMaxSize overrides it.
	DefaultMaxSize = 100

	// DefaultMergeProbability is the percent chance of a horizontal merge in Eller's algorithm.
	DefaultMergeProbability = 45
	// DefaultVerticalProbability is the percent chance of an extra vertical connection in Eller's algorithm.
	DefaultVerticalProbability = 45
	// DefaultRotateWorkers is the rotation worker pool size.
	DefaultRotateWorkers = 4
)

var (
	ErrInvalidSize        = errors.New("invalid maze size")
	ErrOutOfBounds        = errors.New("coordinate out of bounds")
	ErrNotAdjacent        = errors.New("rooms are not adjacent")
	ErrUnknownAlgorithm   = errors.New("unknown maze algorithm")
	ErrInvalidDirection   = errors.New("invalid rotation direction")
	ErrInvalidGrid        = errors.New("grid is not square")
	ErrRotationAborted    = errors.New("rotation worker failed")
	ErrInvalidProbability = errors.New("probability must be within [0, 100]")
	ErrInvalidWall        = errors.New("invalid wall side")
)

// Maze represents a square maze: a grid of rooms plus the algorithm used to carve it.
type Maze struct {
	size      int       // Number of rows and columns.
	maxSize   int       // Upper bound enforced on construction and resize.
	algorithm Algorithm // Generator used by Generate.
	grid      Grid      // Current wall layout.

	rng          *rand.Rand
	mergeProb    int
	verticalProb int
	workers      int
}

// Option configures a Maze at construction time.
type Option func(*Maze)

// WithSeed makes generation reproducible. A zero seed draws one from the clock.
func WithSeed(seed int64) Option {
	return func(m *Maze) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand sets the random source used by generation.
func WithRand(rng *rand.Rand) Option {
	return func(m *Maze) {
		if rng != nil {
			m.rng = rng
		}
	}
}

// WithMaxSize overrides DefaultMaxSize.
func WithMaxSize(maxSize int) Option {
	return func(m *Maze) {
		m.maxSize = maxSize
	}
}

// WithMergeProbability sets Eller's horizontal merge percent.
func WithMergeProbability(percent int) Option {
	return func(m *Maze) {
		m.mergeProb = percent
	}
}

// WithVerticalProbability sets Eller's vertical connection percent.
func WithVerticalProbability(percent int) Option {
	return func(m *Maze) {
		m.verticalProb = percent
	}
}

// WithRotateWorkers sets the number of rotation workers. Values below one are ignored.
func WithRotateWorkers(workers int) Option {
	return func(m *Maze) {
		if workers > 0 {
			m.workers = workers
		}
	}
}

// New creates a maze of the given size using the randomized spanning tree algorithm.
// The grid starts with every wall closed; call Generate to carve it.
func New(size int, opts ...Option) (*Maze, error) {
	return NewWithAlgorithm(Kruskal, size, opts...)
}

// NewWithAlgorithm creates a maze that generates with the given algorithm.
func NewWithAlgorithm(algorithm Algorithm, size int, opts ...Option) (*Maze, error) {
	if !algorithm.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(algorithm))
	}

	m := &Maze{
		size:         size,
		maxSize:      DefaultMaxSize,
		algorithm:    algorithm,
		mergeProb:    DefaultMergeProbability,
		verticalProb: DefaultVerticalProbability,
		workers:      DefaultRotateWorkers,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if err := m.ValidateSize(size); err != nil {
		return nil, err
	}
	if !validPercent(m.mergeProb) || !validPercent(m.verticalProb) {
		return nil, fmt.Errorf("%w: merge %d, vertical %d", ErrInvalidProbability, m.mergeProb, m.verticalProb)
	}

	m.Reset()
	return m, nil
}

func validPercent(p int) bool {
	return p >= 0 && p <= 100
}

// ValidateSize checks size against the configured bounds without touching the maze.
func (m *Maze) ValidateSize(size int) error {
	if size < 1 || size > m.maxSize {
		return fmt.Errorf("%w: %d is outside [1, %d]", ErrInvalidSize, size, m.maxSize)
	}
	return nil
}

// Size returns the number of rows (and columns).
func (m *Maze) Size() int {
	return m.size
}

// MaxSize returns the configured maximum size.
func (m *Maze) MaxSize() int {
	return m.maxSize
}

// Algorithm returns the generator this maze uses.
func (m *Maze) Algorithm() Algorithm {
	return m.algorithm
}

// SetAlgorithm switches the generator used by the next Generate call.
func (m *Maze) SetAlgorithm(algorithm Algorithm) error {
	if !algorithm.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(algorithm))
	}
	m.algorithm = algorithm
	return nil
}

// RoomAt returns the room at column x, row y.
func (m *Maze) RoomAt(x, y int) (Room, error) {
	return m.grid.Room(Point{X: x, Y: y})
}

// Grid returns a copy of the current wall layout.
func (m *Maze) Grid() Grid {
	return m.grid.Clone()
}

// View returns the live grid without copying. Callers must not mutate it.
func (m *Maze) View() Grid {
	return m.grid
}

// Reset closes every wall without changing the size.
func (m *Maze) Reset() {
	m.grid = NewGrid(m.size)
}

// SetGrid replaces the wall layout and size with grid, which must be square
// and within the size bounds. The maze is left untouched on error.
func (m *Maze) SetGrid(grid Grid) error {
	if err := m.ValidateSize(len(grid)); err != nil {
		return err
	}
	for y := range grid {
		if len(grid[y]) != len(grid) {
			return fmt.Errorf("%w: row %d has %d rooms, want %d", ErrInvalidGrid, y, len(grid[y]), len(grid))
		}
	}
	m.size = len(grid)
	m.grid = grid
	return nil
}

// Generate carves a new perfect maze from an all-closed grid. The previous
// layout is replaced only once generation has finished.
func (m *Maze) Generate() error {
	grid := NewGrid(m.size)
	switch m.algorithm {
	case Kruskal:
		generateKruskal(grid, m.rng)
	case Eller:
		e := &eller{
			grid:         grid,
			rng:          m.rng,
			mergeProb:    m.mergeProb,
			verticalProb: m.verticalProb,
			leftToRight:  true,
		}
		e.generate()
	default:
		return fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(m.algorithm))
	}

	m.grid = grid
	return nil
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	return m.grid.String()
}

// String renders the grid as ASCII art.
func (g Grid) String() string {
	var output strings.Builder
	size := len(g)
	if size == 0 {
		return ""
	}

	// Top boundary
	output.WriteString("+")
	for x := 0; x < size; x++ {
		if g[0][x].Walls[Top] {
			output.WriteString("---+")
		} else {
			output.WriteString("   +")
		}
	}
	output.WriteString("\n")

	for y := 0; y < size; y++ {
		// Room row
		if g[y][0].Walls[Left] {
			output.WriteString("|")
		} else {
			output.WriteString(" ")
		}
		for x := 0; x < size; x++ {
			if g[y][x].Walls[Right] {
				output.WriteString("   |")
			} else {
				output.WriteString("    ")
			}
		}
		output.WriteString("\n")

		// Wall row
		output.WriteString("+")
		for x := 0; x < size; x++ {
			if g[y][x].Walls[Bottom] {
				output.WriteString("---+")
			} else {
				output.WriteString("   +")
			}
		}
		output.WriteString("\n")
	}

	return output.String()
}

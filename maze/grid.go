package maze

import "fmt"

// Grid is a square 2D array of rooms indexed as grid[y][x].
type Grid [][]Room

// NewGrid allocates a size x size grid with every wall closed.
func NewGrid(size int) Grid {
	grid := make(Grid, size)
	for y := range grid {
		grid[y] = make([]Room, size)
		for x := range grid[y] {
			grid[y][x] = NewRoom()
		}
	}
	return grid
}

// Size returns the number of rows (and columns) in the grid.
func (g Grid) Size() int {
	return len(g)
}

// InBound reports whether p lies inside the grid.
func (g Grid) InBound(p Point) bool {
	return p.X >= 0 && p.X < len(g) && p.Y >= 0 && p.Y < len(g)
}

// Room returns the room at p.
func (g Grid) Room(p Point) (Room, error) {
	if !g.InBound(p) {
		return Room{}, fmt.Errorf("%w: %v in a grid of size %d", ErrOutOfBounds, p, len(g))
	}
	return g[p.Y][p.X], nil
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	clone := make(Grid, len(g))
	for y := range g {
		clone[y] = make([]Room, len(g[y]))
		copy(clone[y], g[y])
	}
	return clone
}

// Equal reports whether both grids have the same size and wall state.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for y := range g {
		if len(g[y]) != len(other[y]) {
			return false
		}
		for x := range g[y] {
			if g[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// OpenWall removes the wall between two adjacent rooms, on both sides.
func (g Grid) OpenWall(a, b Point) error {
	return g.setWall(a, b, false)
}

// CloseWall restores the wall between two adjacent rooms, on both sides.
func (g Grid) CloseWall(a, b Point) error {
	return g.setWall(a, b, true)
}

func (g Grid) setWall(a, b Point, closed bool) error {
	if !g.InBound(a) || !g.InBound(b) {
		return fmt.Errorf("%w: %v-%v in a grid of size %d", ErrOutOfBounds, a, b, len(g))
	}
	side, ok := sideToward(a, b)
	if !ok {
		return fmt.Errorf("%w: %v and %v", ErrNotAdjacent, a, b)
	}
	g[a.Y][a.X].SetWall(side, closed)
	g[b.Y][b.X].SetWall(side.Opposite(), closed)
	return nil
}

// openWall is the unchecked variant used by generators that only produce adjacent, in-bound pairs.
func (g Grid) openWall(a Point, side Wall) {
	b := a.Add(side.Delta())
	g[a.Y][a.X].Walls[side] = false
	g[b.Y][b.X].Walls[side.Opposite()] = false
}

// sideToward returns the side of a that faces b.
func sideToward(a, b Point) (Wall, bool) {
	for _, w := range Walls {
		if a.Add(w.Delta()) == b {
			return w, true
		}
	}
	return 0, false
}

// Neighbors returns the rooms reachable from p through open walls, in
// top, right, bottom, left order. Out-of-bound neighbors are skipped even
// when the boundary wall is open.
func (g Grid) Neighbors(p Point) []Point {
	if !g.InBound(p) {
		return nil
	}
	room := g[p.Y][p.X]
	result := make([]Point, 0, 4)
	for _, w := range Walls {
		if room.Walls[w] {
			continue
		}
		if next := p.Add(w.Delta()); g.InBound(next) {
			result = append(result, next)
		}
	}
	return result
}

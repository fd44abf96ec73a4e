package maze

import (
	"errors"
	"fmt"
)

var (
	ErrAsymmetricWall = errors.New("wall flags disagree between neighbors")
	ErrNotPerfect     = errors.New("maze is not a spanning tree")
)

// CheckSymmetry returns an error naming the first pair of adjacent rooms
// whose facing walls disagree.
func (g Grid) CheckSymmetry() error {
	size := g.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			p := Point{X: x, Y: y}
			for _, side := range []Wall{Right, Bottom} {
				q := p.Add(side.Delta())
				if !g.InBound(q) {
					continue
				}
				if g[p.Y][p.X].Walls[side] != g[q.Y][q.X].Walls[side.Opposite()] {
					return fmt.Errorf("%w: %v %s / %v %s", ErrAsymmetricWall, p, side, q, side.Opposite())
				}
			}
		}
	}
	return nil
}

// OpenEdges counts the interior passages, each adjacent pair at most once.
func (g Grid) OpenEdges() int {
	count := 0
	size := g.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x < size-1 && !g[y][x].Walls[Right] && !g[y][x+1].Walls[Left] {
				count++
			}
			if y < size-1 && !g[y][x].Walls[Bottom] && !g[y+1][x].Walls[Top] {
				count++
			}
		}
	}
	return count
}

// Reachable returns the number of rooms reachable from start through open walls.
func (g Grid) Reachable(start Point) int {
	if !g.InBound(start) {
		return 0
	}

	visited := make(map[Point]struct{})
	stack := []Point{start}
	visited[start] = struct{}{}

	for len(stack) > 0 {
		cell := pop(&stack)
		for _, nbr := range g.Neighbors(cell) {
			if _, seen := visited[nbr]; !seen {
				visited[nbr] = struct{}{}
				stack = append(stack, nbr)
			}
		}
	}

	return len(visited)
}

// pop removes and returns the last element of a stack of points.
func pop(s *[]Point) Point {
	lastIndex := len(*s) - 1
	popped := (*s)[lastIndex]
	*s = (*s)[:lastIndex]
	return popped
}

// Validate reports whether the grid is a perfect maze: symmetric walls,
// every room reachable and exactly size*size-1 passages.
func (g Grid) Validate() error {
	if err := g.CheckSymmetry(); err != nil {
		return err
	}
	size := g.Size()
	if edges := g.OpenEdges(); edges != size*size-1 {
		return fmt.Errorf("%w: %d open edges, want %d", ErrNotPerfect, edges, size*size-1)
	}
	if reached := g.Reachable(Point{}); reached != size*size {
		return fmt.Errorf("%w: %d of %d rooms reachable", ErrNotPerfect, reached, size*size)
	}
	return nil
}

// IsPerfect is Validate as a predicate.
func (g Grid) IsPerfect() bool {
	return g.Validate() == nil
}

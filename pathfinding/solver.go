// Package pathfinding finds a path between two rooms of a maze with an
// uninformed graph search over the open-wall adjacency.
package pathfinding

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/zyedidia/generic/mapset"
)

var (
	ErrNoPathFound  = errors.New("no path found")
	ErrUnknownOrder = errors.New("unknown search order")
)

// Order selects how the frontier is drained.
type Order int

const (
	// BreadthFirst pops the oldest node first and yields a shortest path by edge count.
	BreadthFirst Order = iota
	// DepthFirst pops the newest node first and yields the first path found.
	DepthFirst
)

// String returns "BFS" or "DFS".
func (o Order) String() string {
	switch o {
	case BreadthFirst:
		return "BFS"
	case DepthFirst:
		return "DFS"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder resolves "bfs"/"breadth-first" or "dfs"/"depth-first".
func ParseOrder(name string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bfs", "breadth-first":
		return BreadthFirst, nil
	case "dfs", "depth-first":
		return DepthFirst, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOrder, name)
}

// Graph is the read-only view the search runs on. maze.Grid implements it.
type Graph interface {
	InBound(p maze.Point) bool
	Neighbors(p maze.Point) []maze.Point
}

// Path is the ordered list of rooms from start to goal, both included.
type Path []maze.Point

// Edges returns the number of steps along the path.
func (p Path) Edges() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Solve searches g from start to goal. It never mutates g.
func Solve(g Graph, start, goal maze.Point, order Order) (Path, error) {
	if order != BreadthFirst && order != DepthFirst {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOrder, int(order))
	}
	if !g.InBound(start) || !g.InBound(goal) {
		return nil, fmt.Errorf("%w: start %v, goal %v", maze.ErrOutOfBounds, start, goal)
	}

	arena := []node{{state: start, parent: -1}}
	f := newFrontier(order)
	f.add(arena, 0)
	explored := mapset.New[maze.Point]()

	for !f.empty() {
		idx := f.remove(arena)
		current := arena[idx]

		if current.state == goal {
			return reconstruct(arena, idx), nil
		}

		explored.Put(current.state)

		for _, nbr := range g.Neighbors(current.state) {
			if explored.Has(nbr) || f.contains(nbr) {
				continue
			}
			arena = append(arena, node{state: nbr, parent: idx})
			f.add(arena, len(arena)-1)
		}
	}

	return nil, fmt.Errorf("%w: from %v to %v", ErrNoPathFound, start, goal)
}

// reconstruct walks parent indexes from idx back to the root.
func reconstruct(arena []node, idx int) Path {
	var path Path
	for i := idx; i != -1; i = arena[i].parent {
		path = append(path, arena[i].state)
	}
	slices.Reverse(path)
	return path
}

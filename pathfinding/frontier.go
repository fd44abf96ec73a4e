package pathfinding

import (
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/zyedidia/generic/mapset"
)

// node is one entry of the search tree. parent indexes the arena; the root has -1.
type node struct {
	state  maze.Point
	parent int
}

// frontier holds arena indexes of pending nodes. Its pop order decides the
// search: FIFO for breadth-first, LIFO for depth-first.
type frontier struct {
	order   Order
	pending []int
	head    int
	members mapset.Set[maze.Point]
}

func newFrontier(order Order) *frontier {
	return &frontier{
		order:   order,
		members: mapset.New[maze.Point](),
	}
}

func (f *frontier) add(arena []node, idx int) {
	f.pending = append(f.pending, idx)
	f.members.Put(arena[idx].state)
}

// remove pops the next node index. The frontier must not be empty.
func (f *frontier) remove(arena []node) int {
	var idx int
	if f.order == BreadthFirst {
		idx = f.pending[f.head]
		f.head++
	} else {
		last := len(f.pending) - 1
		idx = f.pending[last]
		f.pending = f.pending[:last]
	}
	f.members.Remove(arena[idx].state)
	return idx
}

func (f *frontier) empty() bool {
	return f.head >= len(f.pending)
}

func (f *frontier) contains(p maze.Point) bool {
	return f.members.Has(p)
}

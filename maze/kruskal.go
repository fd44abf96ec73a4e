package maze

import "math/rand"

// edge is a candidate passage between a room and its right or bottom neighbor.
type edge struct {
	from Point
	side Wall
}

// candidateEdges lists every adjacent pair once: 2*size*(size-1) edges.
func candidateEdges(size int) []edge {
	edges := make([]edge, 0, 2*size*(size-1))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x < size-1 {
				edges = append(edges, edge{from: Point{X: x, Y: y}, side: Right})
			}
			if y < size-1 {
				edges = append(edges, edge{from: Point{X: x, Y: y}, side: Bottom})
			}
		}
	}
	return edges
}

// generateKruskal carves a randomized spanning tree into grid: edges are
// shuffled and each one is opened only if it joins two disjoint sets.
func generateKruskal(grid Grid, rng *rand.Rand) {
	size := grid.Size()
	edges := candidateEdges(size)
	rng.Shuffle(len(edges), func(i, j int) {
		edges[i], edges[j] = edges[j], edges[i]
	})

	uf := newUnionFind(size * size)
	for _, e := range edges {
		to := e.from.Add(e.side.Delta())
		a := e.from.Y*size + e.from.X
		b := to.Y*size + to.X
		if uf.find(a) == uf.find(b) {
			continue
		}
		uf.unite(a, b)
		grid.openWall(e.from, e.side)
	}
}

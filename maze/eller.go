package maze

import "math/rand"

// eller carves a grid row by row. Each row keeps a column-to-set mapping;
// the scan direction flips on every row.
type eller struct {
	grid         Grid
	rng          *rand.Rand
	mergeProb    int
	verticalProb int
	nextSetID    int
	leftToRight  bool
}

func (e *eller) generate() {
	size := e.grid.Size()
	sets := newRowSets(size, &e.nextSetID)

	for row := 0; row < size-1; row++ {
		e.mergeHorizontal(row, sets)
		e.connectVertical(row, sets)
		sets = e.nextRow(row, sets)
		e.leftToRight = !e.leftToRight
	}

	e.mergeLastRow(sets)
}

// mergeHorizontal randomly joins adjacent columns that belong to different sets.
func (e *eller) mergeHorizontal(row int, sets rowSets) {
	for _, col := range scanOrder(len(sets)-1, e.leftToRight) {
		if e.rng.Intn(100) < e.mergeProb && sets[col] != sets[col+1] {
			e.grid.openWall(Point{X: col, Y: row}, Right)
			sets.merge(sets[col], sets[col+1])
		}
	}
}

// connectVertical opens passages to the row below. Every set gets at least one.
func (e *eller) connectVertical(row int, sets rowSets) {
	connected := make(map[int]bool)

	for _, col := range scanOrder(len(sets), e.leftToRight) {
		if e.rng.Intn(100) < e.verticalProb || !connected[sets[col]] {
			e.grid.openWall(Point{X: col, Y: row}, Bottom)
			connected[sets[col]] = true
		}
	}

	for _, col := range scanOrder(len(sets), e.leftToRight) {
		if !connected[sets[col]] {
			e.grid.openWall(Point{X: col, Y: row}, Bottom)
			connected[sets[col]] = true
		}
	}
}

// nextRow carries set ids down open passages; every other column starts a new set.
func (e *eller) nextRow(row int, sets rowSets) rowSets {
	next := make(rowSets, len(sets))
	for _, col := range scanOrder(len(sets), e.leftToRight) {
		if e.grid[row][col].Walls[Bottom] {
			next[col] = e.nextSetID
			e.nextSetID++
		} else {
			next[col] = sets[col]
		}
	}
	return next
}

// mergeLastRow joins every remaining pair of disjoint adjacent columns.
func (e *eller) mergeLastRow(sets rowSets) {
	row := len(sets) - 1
	for _, col := range scanOrder(len(sets)-1, e.leftToRight) {
		if sets[col] != sets[col+1] {
			e.grid.openWall(Point{X: col, Y: row}, Right)
			sets.merge(sets[col], sets[col+1])
		}
	}
}

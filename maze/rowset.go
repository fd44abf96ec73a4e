package maze

// rowSets maps every column of the current row to the id of the vertical
// chain it belongs to.
type rowSets []int

// newRowSets gives each column a fresh id drawn from next.
func newRowSets(size int, next *int) rowSets {
	sets := make(rowSets, size)
	for col := range sets {
		sets[col] = *next
		*next++
	}
	return sets
}

// merge relabels every column carrying absorbed with survivor.
func (s rowSets) merge(survivor, absorbed int) {
	for col := range s {
		if s[col] == absorbed {
			s[col] = survivor
		}
	}
}

// scanOrder returns the column indexes [0, n) left to right, or right to left.
func scanOrder(n int, leftToRight bool) []int {
	cols := make([]int, 0, max(n, 0))
	if leftToRight {
		for col := 0; col < n; col++ {
			cols = append(cols, col)
		}
		return cols
	}
	for col := n - 1; col >= 0; col-- {
		cols = append(cols, col)
	}
	return cols
}

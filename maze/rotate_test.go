package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generated(t *testing.T, algorithm Algorithm, size int, opts ...Option) *Maze {
	t.Helper()
	m, err := NewWithAlgorithm(algorithm, size, append([]Option{WithSeed(21)}, opts...)...)
	require.NoError(t, err)
	require.NoError(t, m.Generate())
	return m
}

func TestRotateFullTurnIsIdentity(t *testing.T) {
	for _, direction := range []Direction{Clockwise, Counterclockwise} {
		for _, size := range []int{1, 2, 3, 7, 10} {
			m := generated(t, Eller, size)
			before := m.Grid()

			require.NoError(t, m.Rotate(direction, 4))
			assert.True(t, before.Equal(m.Grid()), "%s size %d", direction, size)

			for i := 0; i < 4; i++ {
				require.NoError(t, m.Rotate(direction, 1))
			}
			assert.True(t, before.Equal(m.Grid()), "%s size %d stepwise", direction, size)
		}
	}
}

func TestRotateClockwiseThenCounterclockwise(t *testing.T) {
	m := generated(t, Kruskal, 9)
	before := m.Grid()

	require.NoError(t, m.Rotate(Clockwise, 1))
	assert.False(t, before.Equal(m.Grid()))
	require.NoError(t, m.Rotate(Counterclockwise, 1))
	assert.True(t, before.Equal(m.Grid()))
}

func TestRotateSingleTurn(t *testing.T) {
	m, err := New(3)
	require.NoError(t, err)
	grid := m.Grid()
	// Passage between (0,0) and (1,0) in the top row.
	require.NoError(t, grid.OpenWall(Point{X: 0, Y: 0}, Point{X: 1, Y: 0}))
	require.NoError(t, m.SetGrid(grid))

	t.Run("Clockwise", func(t *testing.T) {
		require.NoError(t, m.Rotate(Clockwise, 1))
		// The top row becomes the right column, read top to bottom.
		top, err := m.RoomAt(2, 0)
		require.NoError(t, err)
		below, err := m.RoomAt(2, 1)
		require.NoError(t, err)
		assert.False(t, top.HasBottomWall())
		assert.False(t, below.HasTopWall())
		assert.Equal(t, 1, m.Grid().OpenEdges())
		require.NoError(t, m.Rotate(Counterclockwise, 1))
	})

	t.Run("Counterclockwise", func(t *testing.T) {
		require.NoError(t, m.Rotate(Counterclockwise, 1))
		// The top row becomes the left column, read bottom to top.
		bottom, err := m.RoomAt(0, 2)
		require.NoError(t, err)
		above, err := m.RoomAt(0, 1)
		require.NoError(t, err)
		assert.False(t, bottom.HasTopWall())
		assert.False(t, above.HasBottomWall())
		assert.Equal(t, 1, m.Grid().OpenEdges())
	})
}

func TestRotatePreservesPerfectMaze(t *testing.T) {
	m := generated(t, Kruskal, 15)
	for times := 1; times <= 3; times++ {
		require.NoError(t, m.Rotate(Clockwise, times))
		assert.NoError(t, m.Grid().Validate())
	}
}

func TestRotateTimesNormalisation(t *testing.T) {
	m := generated(t, Eller, 6)
	reference := generated(t, Eller, 6)

	require.NoError(t, m.Rotate(Clockwise, 5))
	require.NoError(t, reference.Rotate(Clockwise, 1))
	assert.True(t, reference.Grid().Equal(m.Grid()))

	require.NoError(t, m.Rotate(Clockwise, -1))
	require.NoError(t, reference.Rotate(Counterclockwise, 1))
	assert.True(t, reference.Grid().Equal(m.Grid()))

	before := m.Grid()
	require.NoError(t, m.Rotate(Counterclockwise, 0))
	assert.True(t, before.Equal(m.Grid()))
}

func TestRotateWorkerCountDoesNotMatter(t *testing.T) {
	single := generated(t, Kruskal, 13, WithRotateWorkers(1))
	many := generated(t, Kruskal, 13, WithRotateWorkers(32))

	require.NoError(t, single.Rotate(Counterclockwise, 3))
	require.NoError(t, many.Rotate(Counterclockwise, 3))
	assert.True(t, single.Grid().Equal(many.Grid()))
}

func TestRotateInvalidDirection(t *testing.T) {
	m := generated(t, Kruskal, 4)
	before := m.Grid()

	assert.ErrorIs(t, m.Rotate(Direction(9), 1), ErrInvalidDirection)
	assert.True(t, before.Equal(m.Grid()))
}

func TestRotateWorkerFailureKeepsGrid(t *testing.T) {
	m := generated(t, Kruskal, 4, WithRotateWorkers(2))
	ragged := m.Grid()
	ragged[2] = ragged[2][:1]
	m.grid = ragged

	err := m.Rotate(Clockwise, 1)
	assert.ErrorIs(t, err, ErrRotationAborted)
	assert.True(t, ragged.Equal(m.grid))
	assert.Len(t, m.grid[2], 1)
}

func TestRotatePoint(t *testing.T) {
	const size = 5
	m, err := New(size)
	require.NoError(t, err)
	grid := m.Grid()
	// Mark a single room by opening its left boundary wall.
	mark := Point{X: 1, Y: 3}
	grid[mark.Y][mark.X].SetWall(Left, false)
	require.NoError(t, m.SetGrid(grid))

	for _, direction := range []Direction{Clockwise, Counterclockwise} {
		for times := 0; times < 4; times++ {
			rotated := m.Grid()
			turned, err := NewWithAlgorithm(Kruskal, size)
			require.NoError(t, err)
			require.NoError(t, turned.SetGrid(rotated))
			require.NoError(t, turned.Rotate(direction, times))

			p := RotatePoint(mark, size, direction, times)
			room, err := turned.RoomAt(p.X, p.Y)
			require.NoError(t, err)
			open := 0
			for _, w := range Walls {
				if !room.HasWall(w) {
					open++
				}
			}
			assert.Equal(t, 1, open, "%s x%d lands on %v", direction, times, p)
		}
	}
}

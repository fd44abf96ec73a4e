package service

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/beka-birhanu/vinom-maze/infrastruture/mazestore"
	"github.com/beka-birhanu/vinom-maze/logger"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/pathfinding"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, size int, store *mazestore.FileStore) (*Session, *bytes.Buffer) {
	t.Helper()

	m, err := maze.New(size, maze.WithSeed(11))
	require.NoError(t, err)

	var out bytes.Buffer
	log, err := logger.New("TEST", "", &out)
	require.NoError(t, err)

	cfg := SessionConfig{Maze: m, Logger: log, Rand: rand.New(rand.NewSource(3))}
	if store != nil {
		cfg.Store = store
	}
	s, err := NewSession(cfg)
	require.NoError(t, err)
	return s, &out
}

// corridor returns a size x size grid whose rooms are joined row by row in a
// single snake-shaped path.
func corridor(t *testing.T, size int) maze.Grid {
	t.Helper()
	grid := maze.NewGrid(size)
	for y := 0; y < size; y++ {
		for x := 0; x+1 < size; x++ {
			require.NoError(t, grid.OpenWall(maze.Point{X: x, Y: y}, maze.Point{X: x + 1, Y: y}))
		}
		if y+1 < size {
			col := 0
			if y%2 == 0 {
				col = size - 1
			}
			require.NoError(t, grid.OpenWall(maze.Point{X: col, Y: y}, maze.Point{X: col, Y: y + 1}))
		}
	}
	return grid
}

func TestNewSession(t *testing.T) {
	t.Run("Missing dependencies", func(t *testing.T) {
		_, err := NewSession(SessionConfig{})
		assert.ErrorIs(t, err, ErrMissingMaze)

		m, err := maze.New(3)
		require.NoError(t, err)
		_, err = NewSession(SessionConfig{Maze: m})
		assert.ErrorIs(t, err, ErrMissingLogger)
	})

	t.Run("Endpoints on opposite edges", func(t *testing.T) {
		s, _ := newTestSession(t, 8, nil)
		assert.Equal(t, 0, s.Player().X)
		assert.Equal(t, 7, s.Goal().X)
		assert.True(t, s.Grid().InBound(s.Player()))
		assert.True(t, s.Grid().InBound(s.Goal()))
		assert.NotEqual(t, uuid.Nil, s.ID())
	})

	t.Run("Single room session is already won", func(t *testing.T) {
		s, _ := newTestSession(t, 1, nil)
		assert.True(t, s.Won())
	})
}

func TestSessionGenerate(t *testing.T) {
	s, out := newTestSession(t, 10, nil)

	require.NoError(t, s.Generate(maze.Eller))
	assert.Equal(t, maze.Eller, s.Algorithm())
	assert.True(t, s.Grid().IsPerfect())
	assert.Contains(t, out.String(), "maze generated")
	assert.Contains(t, out.String(), "algorithm=Eller")
	assert.Contains(t, out.String(), "ms=")

	err := s.Generate(maze.Algorithm(42))
	assert.ErrorIs(t, err, maze.ErrUnknownAlgorithm)
}

func TestSessionMove(t *testing.T) {
	s, _ := newTestSession(t, 3, nil)
	require.NoError(t, s.maze.SetGrid(corridor(t, 3)))
	s.player = maze.Point{X: 0, Y: 0}
	s.goal = maze.Point{X: 2, Y: 0}

	t.Run("Blocked by a wall", func(t *testing.T) {
		pos, err := s.Move(maze.Bottom)
		assert.ErrorIs(t, err, ErrBlockedMove)
		assert.Equal(t, maze.Point{X: 0, Y: 0}, pos)
	})

	t.Run("Invalid direction", func(t *testing.T) {
		for _, dir := range []maze.Wall{maze.Wall(4), maze.Wall(-1)} {
			pos, err := s.Move(dir)
			assert.ErrorIs(t, err, maze.ErrInvalidWall)
			assert.Equal(t, maze.Point{X: 0, Y: 0}, pos)
		}
	})

	t.Run("Blocked by the outer wall", func(t *testing.T) {
		_, err := s.Move(maze.Left)
		assert.ErrorIs(t, err, ErrBlockedMove)
	})

	t.Run("Through open walls to the goal", func(t *testing.T) {
		assert.False(t, s.Won())
		pos, err := s.Move(maze.Right)
		require.NoError(t, err)
		assert.Equal(t, maze.Point{X: 1, Y: 0}, pos)

		_, err = s.Move(maze.Right)
		require.NoError(t, err)
		assert.True(t, s.Won())
	})

	t.Run("Open boundary is still out of bounds", func(t *testing.T) {
		grid := s.Grid()
		grid[0][2].SetWall(maze.Top, false)
		require.NoError(t, s.maze.SetGrid(grid))

		_, err := s.Move(maze.Top)
		assert.ErrorIs(t, err, maze.ErrOutOfBounds)
		assert.Equal(t, maze.Point{X: 2, Y: 0}, s.Player())
	})
}

func TestSessionSolve(t *testing.T) {
	s, out := newTestSession(t, 4, nil)
	require.NoError(t, s.maze.SetGrid(corridor(t, 4)))
	s.player = maze.Point{X: 0, Y: 0}
	s.goal = maze.Point{X: 3, Y: 1}

	path, err := s.Solve(pathfinding.BreadthFirst)
	require.NoError(t, err)
	assert.Equal(t, maze.Point{X: 0, Y: 0}, path[0])
	assert.Equal(t, maze.Point{X: 3, Y: 1}, path[len(path)-1])
	assert.Equal(t, 4, path.Edges())
	assert.Contains(t, out.String(), "order=BFS")

	t.Run("Cached until the player moves", func(t *testing.T) {
		out.Reset()
		again, err := s.Solve(pathfinding.BreadthFirst)
		require.NoError(t, err)
		assert.Equal(t, path, again)
		assert.Empty(t, out.String())

		again[0] = maze.Point{X: 9, Y: 9}
		cached, err := s.Solve(pathfinding.BreadthFirst)
		require.NoError(t, err)
		assert.Equal(t, path, cached)

		_, err = s.Move(maze.Right)
		require.NoError(t, err)
		moved, err := s.Solve(pathfinding.BreadthFirst)
		require.NoError(t, err)
		assert.Equal(t, 3, moved.Edges())
	})

	t.Run("No path", func(t *testing.T) {
		require.NoError(t, s.maze.SetGrid(maze.NewGrid(4)))
		clear(s.paths)
		_, err := s.Solve(pathfinding.DepthFirst)
		assert.ErrorIs(t, err, pathfinding.ErrNoPathFound)
	})
}

func TestSessionRotate(t *testing.T) {
	s, _ := newTestSession(t, 6, nil)
	require.NoError(t, s.Generate(maze.Kruskal))
	player, goal := s.Player(), s.Goal()
	playerRoom, err := s.maze.RoomAt(player.X, player.Y)
	require.NoError(t, err)

	before, err := s.Solve(pathfinding.BreadthFirst)
	require.NoError(t, err)

	require.NoError(t, s.Rotate(maze.Clockwise, 1))
	assert.Equal(t, maze.RotatePoint(player, 6, maze.Clockwise, 1), s.Player())
	assert.Equal(t, maze.RotatePoint(goal, 6, maze.Clockwise, 1), s.Goal())

	// The player's room keeps its openings, turned with the grid.
	rotated, err := s.maze.RoomAt(s.Player().X, s.Player().Y)
	require.NoError(t, err)
	assert.Equal(t, playerRoom.HasLeftWall(), rotated.HasTopWall())

	after, err := s.Solve(pathfinding.BreadthFirst)
	require.NoError(t, err)
	assert.Equal(t, before.Edges(), after.Edges())

	require.NoError(t, s.Rotate(maze.Counterclockwise, 1))
	assert.Equal(t, player, s.Player())
	assert.Equal(t, goal, s.Goal())

	assert.ErrorIs(t, s.Rotate(maze.Direction(7), 1), maze.ErrInvalidDirection)
}

func TestSessionReshuffle(t *testing.T) {
	s, _ := newTestSession(t, 20, nil)
	require.NoError(t, s.Generate(maze.Kruskal))

	for n := 0; n < 10; n++ {
		s.Reshuffle()
		assert.Equal(t, 0, s.Player().X)
		assert.Equal(t, 19, s.Goal().X)

		path, err := s.Solve(pathfinding.DepthFirst)
		require.NoError(t, err)
		assert.Equal(t, s.Player(), path[0])
		assert.Equal(t, s.Goal(), path[len(path)-1])
	}
}

func TestSessionPersistence(t *testing.T) {
	ctx := context.Background()

	t.Run("Without a store", func(t *testing.T) {
		s, _ := newTestSession(t, 3, nil)
		assert.ErrorIs(t, s.Save(ctx), ErrNoStore)
		assert.ErrorIs(t, s.Load(ctx, uuid.New()), ErrNoStore)
	})

	t.Run("Save then load into another session", func(t *testing.T) {
		store, err := mazestore.NewFileStore(t.TempDir())
		require.NoError(t, err)

		saved, out := newTestSession(t, 7, store)
		require.NoError(t, saved.Generate(maze.Eller))
		require.NoError(t, saved.Save(ctx))
		assert.Contains(t, out.String(), "maze saved")

		loaded, _ := newTestSession(t, 3, store)
		require.NoError(t, loaded.Load(ctx, saved.ID()))
		assert.Equal(t, saved.ID(), loaded.ID())
		assert.Equal(t, 7, loaded.Size())
		assert.True(t, saved.Grid().Equal(loaded.Grid()))
		assert.Equal(t, 6, loaded.Goal().X)
	})

	t.Run("Missing id leaves the session untouched", func(t *testing.T) {
		store, err := mazestore.NewFileStore(t.TempDir())
		require.NoError(t, err)

		s, _ := newTestSession(t, 4, store)
		require.NoError(t, s.Generate(maze.Kruskal))
		id, grid, player := s.ID(), s.Grid(), s.Player()

		err = s.Load(ctx, uuid.New())
		assert.ErrorIs(t, err, mazestore.ErrMazeNotFound)
		assert.Equal(t, id, s.ID())
		assert.Equal(t, player, s.Player())
		assert.True(t, grid.Equal(s.Grid()))
	})
}

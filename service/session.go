package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/pathfinding"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

// Session-related errors.
var (
	ErrMissingMaze   = errors.New("session needs a maze")
	ErrMissingLogger = errors.New("session needs a logger")
	ErrNoStore       = errors.New("session has no maze store")
	ErrBlockedMove   = errors.New("a wall blocks the move")
)

// SessionConfig holds the dependencies of a Session. Store and Rand are optional.
type SessionConfig struct {
	Maze   *maze.Maze
	Store  i.MazeStore
	Logger i.Logger
	Rand   *rand.Rand
}

// Session is one player's run through a maze: the player starts in the first
// column, the destination sits in the last column, and solved paths are cached
// until the layout or the player moves.
type Session struct {
	id     uuid.UUID
	maze   *maze.Maze
	player maze.Point
	goal   maze.Point
	paths  map[pathfinding.Order]pathfinding.Path
	store  i.MazeStore
	logger i.Logger
	rng    *rand.Rand
	sync.RWMutex
}

// NewSession wraps c.Maze in a session and places the player and the destination.
// The maze is used as is; call Generate to carve it.
func NewSession(c SessionConfig) (*Session, error) {
	if c.Maze == nil {
		return nil, ErrMissingMaze
	}
	if c.Logger == nil {
		return nil, ErrMissingLogger
	}

	rng := c.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Session{
		id:     uuid.New(),
		maze:   c.Maze,
		store:  c.Store,
		logger: c.Logger,
		rng:    rng,
	}
	s.placeEndpoints()
	return s, nil
}

// placeEndpoints puts the player on a random row of the first column and the
// destination on a random row of the last one. Callers hold the lock.
func (s *Session) placeEndpoints() {
	size := s.maze.Size()
	s.player = maze.Point{X: 0, Y: s.rng.Intn(size)}
	s.goal = maze.Point{X: size - 1, Y: s.rng.Intn(size)}
	s.paths = make(map[pathfinding.Order]pathfinding.Path)
}

func (s *Session) logTimed(msg string, start time.Time, fields map[string]any) {
	fields["ms"] = time.Since(start).Milliseconds()
	fields["session"] = s.id.String()
	s.logger.WithFields(fields).Info(msg)
}

// ID returns the id the session saves under.
func (s *Session) ID() uuid.UUID {
	s.RLock()
	defer s.RUnlock()
	return s.id
}

// Player returns the player's room.
func (s *Session) Player() maze.Point {
	s.RLock()
	defer s.RUnlock()
	return s.player
}

// Goal returns the destination room.
func (s *Session) Goal() maze.Point {
	s.RLock()
	defer s.RUnlock()
	return s.goal
}

// Size returns the maze size.
func (s *Session) Size() int {
	s.RLock()
	defer s.RUnlock()
	return s.maze.Size()
}

// Algorithm returns the generator the maze uses.
func (s *Session) Algorithm() maze.Algorithm {
	s.RLock()
	defer s.RUnlock()
	return s.maze.Algorithm()
}

// Grid returns a copy of the current layout.
func (s *Session) Grid() maze.Grid {
	s.RLock()
	defer s.RUnlock()
	return s.maze.Grid()
}

// String renders the maze as ASCII art.
func (s *Session) String() string {
	s.RLock()
	defer s.RUnlock()
	return s.maze.String()
}

// Won reports whether the player stands on the destination.
func (s *Session) Won() bool {
	s.RLock()
	defer s.RUnlock()
	return s.player == s.goal
}

// Generate carves a new layout with algorithm and re-places the endpoints.
func (s *Session) Generate(algorithm maze.Algorithm) error {
	s.Lock()
	defer s.Unlock()

	if err := s.maze.SetAlgorithm(algorithm); err != nil {
		return err
	}

	start := time.Now()
	if err := s.maze.Generate(); err != nil {
		return err
	}
	s.logTimed("maze generated", start, map[string]any{
		"algorithm": algorithm.String(),
		"size":      s.maze.Size(),
	})

	s.placeEndpoints()
	return nil
}

// Move steps the player one room toward side dir. The move fails when the
// wall on that side is closed or the step would leave the grid.
func (s *Session) Move(dir maze.Wall) (maze.Point, error) {
	s.Lock()
	defer s.Unlock()

	if !dir.Valid() {
		return s.player, fmt.Errorf("%w: %d", maze.ErrInvalidWall, int(dir))
	}

	room, err := s.maze.RoomAt(s.player.X, s.player.Y)
	if err != nil {
		return s.player, err
	}
	if room.HasWall(dir) {
		return s.player, fmt.Errorf("%w: %s of %v", ErrBlockedMove, dir, s.player)
	}

	next := s.player.Add(dir.Delta())
	if !s.maze.View().InBound(next) {
		return s.player, fmt.Errorf("%w: %v", maze.ErrOutOfBounds, next)
	}

	s.player = next
	clear(s.paths)
	return s.player, nil
}

// Solve returns a path from the player to the destination. Paths are cached
// per order until the next move or layout change.
func (s *Session) Solve(order pathfinding.Order) (pathfinding.Path, error) {
	s.Lock()
	defer s.Unlock()

	if path, ok := s.paths[order]; ok {
		return slices.Clone(path), nil
	}

	start := time.Now()
	path, err := pathfinding.Solve(s.maze.View(), s.player, s.goal, order)
	if err != nil {
		return nil, err
	}
	s.logTimed("path found", start, map[string]any{
		"order": order.String(),
		"edges": path.Edges(),
	})

	s.paths[order] = path
	return slices.Clone(path), nil
}

// Rotate turns the maze and carries the player and destination along with it.
func (s *Session) Rotate(direction maze.Direction, times int) error {
	s.Lock()
	defer s.Unlock()

	start := time.Now()
	if err := s.maze.Rotate(direction, times); err != nil {
		return err
	}
	s.logTimed("maze rotated", start, map[string]any{
		"direction": direction.String(),
		"times":     times,
	})

	size := s.maze.Size()
	s.player = maze.RotatePoint(s.player, size, direction, times)
	s.goal = maze.RotatePoint(s.goal, size, direction, times)
	clear(s.paths)
	return nil
}

// Reshuffle re-places the player and destination on the current layout.
func (s *Session) Reshuffle() {
	s.Lock()
	defer s.Unlock()
	s.placeEndpoints()
}

// Save stores the layout under the session id.
func (s *Session) Save(ctx context.Context) error {
	s.RLock()
	defer s.RUnlock()

	if s.store == nil {
		return ErrNoStore
	}

	start := time.Now()
	if err := s.store.Save(ctx, s.id, s.maze); err != nil {
		return err
	}
	s.logTimed("maze saved", start, map[string]any{})
	return nil
}

// Load replaces the layout with the one stored under id and adopts that id.
// The session is unchanged on error.
func (s *Session) Load(ctx context.Context, id uuid.UUID) error {
	s.Lock()
	defer s.Unlock()

	if s.store == nil {
		return ErrNoStore
	}

	start := time.Now()
	if err := s.store.Load(ctx, id, s.maze); err != nil {
		return err
	}
	s.id = id
	s.logTimed("maze loaded", start, map[string]any{"size": s.maze.Size()})
	s.placeEndpoints()
	return nil
}

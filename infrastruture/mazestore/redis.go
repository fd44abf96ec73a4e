package mazestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/beka-birhanu/vinom-maze/storage"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisPrefix = "maze"
	unlockTimeout      = 2 * time.Second
)

var _ i.MazeStore = &RedisStore{}

// RedisStore keeps each maze as one binary blob under "<prefix>:<id>" and
// tracks ids in a sorted set scored by save time.
type RedisStore struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
	prefix string
}

// NewRedisStore initializes a RedisStore. A ttlSeconds of zero keeps keys forever.
func NewRedisStore(client *redis.Client, ttlSeconds int) *RedisStore {
	pool := goredis.NewPool(client)
	return &RedisStore{
		client: client,
		locker: redsync.New(pool),
		ttl:    time.Duration(ttlSeconds) * time.Second,
		prefix: defaultRedisPrefix,
	}
}

func (rs *RedisStore) key(id uuid.UUID) string {
	return rs.prefix + ":" + id.String()
}

func (rs *RedisStore) indexKey() string {
	return rs.prefix + ":index"
}

// Save encodes m and stores it while holding a per-id lock, so concurrent
// savers of the same id never interleave the blob and index updates.
func (rs *RedisStore) Save(ctx context.Context, id uuid.UUID, m *maze.Maze) error {
	var buf bytes.Buffer
	buf.Grow(storage.EncodedSize(m.Size()))
	if err := storage.Save(&buf, m); err != nil {
		return err
	}

	mutex := rs.locker.NewMutex(rs.key(id) + ":lock")
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("%w: locking %s: %w", storage.ErrIOFailure, id, err)
	}
	defer func() {
		// The caller's context may already be done; release the lock regardless.
		unlockCtx, cancel := context.WithTimeout(context.Background(), unlockTimeout)
		defer cancel()
		_, _ = mutex.UnlockContext(unlockCtx)
	}()

	pipe := rs.client.TxPipeline()
	pipe.Set(ctx, rs.key(id), buf.Bytes(), rs.ttl)
	pipe.ZAdd(ctx, rs.indexKey(), redis.Z{Score: float64(time.Now().Unix()), Member: id.String()})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrIOFailure, err)
	}
	return nil
}

// Load implements i.MazeStore.
func (rs *RedisStore) Load(ctx context.Context, id uuid.UUID, m *maze.Maze) error {
	data, err := rs.client.Get(ctx, rs.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		// Expired keys leave a stale index entry behind.
		_ = rs.client.ZRem(ctx, rs.indexKey(), id.String()).Err()
		return fmt.Errorf("%w: %s", ErrMazeNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrIOFailure, err)
	}
	return storage.Load(bytes.NewReader(data), m)
}

// Delete implements i.MazeStore.
func (rs *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	removed, err := rs.client.Del(ctx, rs.key(id)).Result()
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrIOFailure, err)
	}
	_ = rs.client.ZRem(ctx, rs.indexKey(), id.String()).Err()
	if removed == 0 {
		return fmt.Errorf("%w: %s", ErrMazeNotFound, id)
	}
	return nil
}

// List returns ids oldest save first. Ids that fail to parse are skipped.
func (rs *RedisStore) List(ctx context.Context) ([]uuid.UUID, error) {
	members, err := rs.client.ZRange(ctx, rs.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrIOFailure, err)
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, member := range members {
		id, err := uuid.Parse(member)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

package cart

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage is the session-scoped key-value store carts persist into.  It is
// best-effort by contract: callers log and swallow failures, and a nil or
// unreachable backend only costs persistence across reloads, never the
// in-memory cart.
type Storage interface {
	// Load returns the serialized cart for a session, or (nil, nil) when
	// none was saved.
	Load(ctx context.Context, sessionID string) ([]byte, error)
	// Save overwrites the serialized cart for a session.
	Save(ctx context.Context, sessionID string, data []byte) error
	// Delete removes the saved cart for a session.
	Delete(ctx context.Context, sessionID string) error
}

// sessionTTL bounds how long a persisted cart outlives its last mutation.
// Carts are session-scoped, not durable records.
const sessionTTL = 24 * time.Hour

// RedisStorage persists carts in Redis under a namespaced per-session key.
type RedisStorage struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStorage wraps a Redis client as cart session storage.  An empty
// prefix defaults to "cart".
func NewRedisStorage(rdb *redis.Client, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = "cart"
	}
	return &RedisStorage{rdb: rdb, prefix: prefix}
}

func (s *RedisStorage) key(sessionID string) string {
	return s.prefix + ":" + sessionID
}

// Load fetches the serialized cart.  A missing key is not an error.
func (s *RedisStorage) Load(ctx context.Context, sessionID string) ([]byte, error) {
	bs, err := s.rdb.Get(ctx, s.key(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return bs, err
}

// Save writes the serialized cart with the session TTL.
func (s *RedisStorage) Save(ctx context.Context, sessionID string, data []byte) error {
	return s.rdb.SetEx(ctx, s.key(sessionID), data, sessionTTL).Err()
}

// Delete drops the persisted cart.
func (s *RedisStorage) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, s.key(sessionID)).Err()
}

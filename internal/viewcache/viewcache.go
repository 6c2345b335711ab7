// Package viewcache persists the per-layout zoom/pan view of a browsing
// session so reopening the same layout restores where the viewer left
// off.  It is modelled as an explicit keyed store rather than ambient
// state so tests can construct and reset one per run.  The Redis
// implementation is session-scoped through a TTL; the memory
// implementation backs tests and Redis-less deployments.
package viewcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hessamz/seatmap-session/internal/viewport"
)

// Store saves and restores a viewer's (scale, position) per layout.
// Load returns nil with no error when no view has been saved.
type Store interface {
	Load(ctx context.Context, viewerID string, layoutID uint64) (*viewport.View, error)
	Save(ctx context.Context, viewerID string, layoutID uint64, v viewport.View) error
}

// RedisStore keeps views in Redis under "view:<viewer>:<layout>" keys
// with a session-scoped TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore constructs a RedisStore.  The client must be non-nil;
// callers with no Redis connection should fall back to NewMemoryStore.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if rdb == nil {
		panic("nil redis client passed to NewRedisStore")
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func viewKey(viewerID string, layoutID uint64) string {
	return fmt.Sprintf("view:%s:%d", viewerID, layoutID)
}

// Load fetches and decodes a saved view, or nil when absent.
func (s *RedisStore) Load(ctx context.Context, viewerID string, layoutID uint64) (*viewport.View, error) {
	bs, err := s.rdb.Get(ctx, viewKey(viewerID, layoutID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var v viewport.View
	if err := json.Unmarshal(bs, &v); err != nil {
		// A corrupt entry is treated as absent rather than fatal.
		return nil, nil
	}
	return &v, nil
}

// Save stores the view, refreshing the session TTL.
func (s *RedisStore) Save(ctx context.Context, viewerID string, layoutID uint64, v viewport.View) error {
	bs, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.SetEx(ctx, viewKey(viewerID, layoutID), bs, s.ttl).Err()
}

// MemoryStore is an in-process Store for tests and for deployments
// running without Redis.
type MemoryStore struct {
	mu    sync.Mutex
	views map[string]viewport.View
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{views: make(map[string]viewport.View)}
}

// Load returns the saved view, or nil when absent.
func (s *MemoryStore) Load(_ context.Context, viewerID string, layoutID uint64) (*viewport.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.views[viewKey(viewerID, layoutID)]; ok {
		out := v
		return &out, nil
	}
	return nil, nil
}

// Save stores the view.
func (s *MemoryStore) Save(_ context.Context, viewerID string, layoutID uint64, v viewport.View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views[viewKey(viewerID, layoutID)] = v
	return nil
}

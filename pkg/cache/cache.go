// Package cache persists last-known snapshots of records under fixed keys.
//
// Reads never fail: a missing key, a backend error and an entry that no longer
// parses are all reported as absent. Writes return backend errors so callers can
// log them.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Store is the raw byte storage behind an Accessor.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Accessor reads and writes one JSON-serialized T per key.
type Accessor[T any] struct {
	store  Store
	logger *logrus.Logger
}

func NewAccessor[T any](store Store, logger *logrus.Logger) *Accessor[T] {
	return &Accessor[T]{store: store, logger: logger}
}

// Read returns the cached value for key. Corrupt or unreadable entries are absent.
func (a *Accessor[T]) Read(ctx context.Context, key string) (T, bool) {
	var zero T
	if a == nil || a.store == nil {
		return zero, false
	}
	raw, ok, err := a.store.Get(ctx, key)
	if err != nil {
		a.debug(key, "cache read failed", err)
		return zero, false
	}
	if !ok {
		return zero, false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		a.debug(key, "cache entry is corrupt, treating as miss", err)
		return zero, false
	}
	return v, true
}

// Write replaces the entry for key.
func (a *Accessor[T]) Write(ctx context.Context, key string, v T) error {
	if a == nil || a.store == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, key, b)
}

func (a *Accessor[T]) debug(key, msg string, err error) {
	if a.logger == nil {
		return
	}
	a.logger.WithError(err).WithField("key", key).Debug(msg)
}

// RedisStore keeps entries in Redis without expiry.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	res, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return res, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

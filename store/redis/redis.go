// Package redis provides a store.Store backed by github.com/redis/go-redis/v9.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a store.Store implementation that keeps entries as plain Redis
// string values, relying on Redis's own TTL (SET EX) for expiration.
type Store struct {
	client *redis.Client
	prefix string
}

// New returns a Store connected to addr.
func New(addr string) *Store {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr}))
}

// NewWithClient returns a Store using the given go-redis client.
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client, prefix: "cachesemantics:"}
}

// Get returns the data for key, or ok=false on a cache miss.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis store: get failed for key %q: %w", key, err)
	}
	return data, true, nil
}

// Set stores data under key with the given ttl (zero means no expiration).
func (s *Store) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis store: set failed for key %q: %w", key, err)
	}
	return nil
}

// Delete removes key, if present.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis store: delete failed for key %q: %w", key, err)
	}
	return nil
}

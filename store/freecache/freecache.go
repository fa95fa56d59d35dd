// Package freecache provides a zero-GC-overhead store.Store backed by
// github.com/coocood/freecache, suitable for caching millions of entries
// with automatic LRU eviction.
package freecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
)

// Store is a store.Store implementation using an in-process freecache ring.
type Store struct {
	cache *freecache.Cache
}

// New creates a Store with the given cache size in bytes (512KB minimum,
// enforced by freecache itself).
func New(sizeBytes int) *Store {
	return &Store{cache: freecache.NewCache(sizeBytes)}
}

// Get returns the data for key, or ok=false on a cache miss.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, err := s.cache.Get([]byte(key))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("freecache store: get failed for key %q: %w", key, err)
	}
	return data, true, nil
}

// Set stores data under key. ttl is rounded up to whole seconds; zero means
// no expiration (entries are then only evicted when the cache is full).
func (s *Store) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	secs := int(ttl / time.Second)
	if ttl%time.Second > 0 {
		secs++
	}
	if err := s.cache.Set([]byte(key), data, secs); err != nil {
		return fmt.Errorf("freecache store: set failed for key %q: %w", key, err)
	}
	return nil
}

// Delete removes key, if present.
func (s *Store) Delete(_ context.Context, key string) error {
	s.cache.Del([]byte(key))
	return nil
}

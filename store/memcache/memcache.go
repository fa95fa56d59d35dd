// Package memcache provides a store.Store backed by github.com/bradfitz/gomemcache.
package memcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// Store is a store.Store implementation that caches entries in one or more
// memcache servers.
type Store struct {
	client *memcache.Client
	prefix string
}

// New returns a Store using the given memcache server(s) with equal weight.
func New(server ...string) *Store {
	return NewWithClient(memcache.New(server...))
}

// NewWithClient returns a Store using the given memcache client.
func NewWithClient(client *memcache.Client) *Store {
	return &Store{client: client, prefix: "cachesemantics:"}
}

// Get returns the data for key, or ok=false on a cache miss.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	item, err := s.client.Get(s.prefix + key)
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("memcache store: get failed for key %q: %w", key, err)
	}
	return item.Value, true, nil
}

// Set stores data under key. ttl is rounded up to whole seconds, as required
// by the memcache protocol; zero means no expiration.
func (s *Store) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	secs := int32(ttl / time.Second)
	if ttl%time.Second > 0 {
		secs++
	}
	item := &memcache.Item{
		Key:        s.prefix + key,
		Value:      data,
		Expiration: secs,
	}
	if err := s.client.Set(item); err != nil {
		return fmt.Errorf("memcache store: set failed for key %q: %w", key, err)
	}
	return nil
}

// Delete removes key, if present.
func (s *Store) Delete(_ context.Context, key string) error {
	if err := s.client.Delete(s.prefix + key); err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return nil
		}
		return fmt.Errorf("memcache store: delete failed for key %q: %w", key, err)
	}
	return nil
}

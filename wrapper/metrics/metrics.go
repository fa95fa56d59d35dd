// Package metrics defines a collector interface for store.Store operations
// and a wrapper that records against it, independent of any specific
// monitoring backend.
package metrics

import (
	"context"
	"time"

	"github.com/cachekit/cachesemantics/store"
)

// Collector records cache-operation outcomes. Implementations for specific
// backends (e.g. Prometheus) live in sub-packages.
type Collector interface {
	// RecordOperation records one Get/Set/Delete call against backend,
	// with result one of "hit", "miss", "success", or "error".
	RecordOperation(operation, backend, result string, duration time.Duration)
}

// NoOpCollector implements Collector with no-op operations; it is the
// default when metrics are not configured.
type NoOpCollector struct{}

// RecordOperation does nothing.
func (NoOpCollector) RecordOperation(operation, backend, result string, duration time.Duration) {}

var _ Collector = NoOpCollector{}

// Store wraps a store.Store, recording each operation's outcome and
// duration against collector under the given backend label.
type Store struct {
	inner     store.Store
	collector Collector
	backend   string
}

// New wraps inner, labeling recorded metrics with backend (e.g. "redis").
func New(inner store.Store, collector Collector, backend string) *Store {
	if collector == nil {
		collector = NoOpCollector{}
	}
	return &Store{inner: inner, collector: collector, backend: backend}
}

// Get records a "hit", "miss", or "error" result for the inner Get call.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	data, ok, err := s.inner.Get(ctx, key)
	result := "miss"
	switch {
	case err != nil:
		result = "error"
	case ok:
		result = "hit"
	}
	s.collector.RecordOperation("get", s.backend, result, time.Since(start))
	return data, ok, err
}

// Set records a "success" or "error" result for the inner Set call.
func (s *Store) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	start := time.Now()
	err := s.inner.Set(ctx, key, data, ttl)
	s.collector.RecordOperation("set", s.backend, resultOf(err), time.Since(start))
	return err
}

// Delete records a "success" or "error" result for the inner Delete call.
func (s *Store) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.inner.Delete(ctx, key)
	s.collector.RecordOperation("delete", s.backend, resultOf(err), time.Since(start))
	return err
}

func resultOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

var _ store.Store = (*Store)(nil)

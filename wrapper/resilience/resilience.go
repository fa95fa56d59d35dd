// Package resilience wraps a store.Store with retry and circuit-breaker
// policies from github.com/failsafe-go/failsafe-go, for backends (redis,
// memcache) whose calls can fail transiently over the network.
package resilience

import (
	"context"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/cachekit/cachesemantics/store"
)

// Config holds the resilience policies applied around a Store. Either field
// left nil disables that policy.
type Config struct {
	RetryPolicy    retrypolicy.RetryPolicy[any]
	CircuitBreaker circuitbreaker.CircuitBreaker[any]
}

// RetryPolicyBuilder returns a pre-configured retry policy builder: up to 3
// retries (4 attempts in all) with exponential backoff from 100ms to 10s.
func RetryPolicyBuilder() retrypolicy.Builder[any] {
	return retrypolicy.NewBuilder[any]().
		WithMaxRetries(3).
		WithBackoff(100*time.Millisecond, 10*time.Second)
}

// CircuitBreakerBuilder returns a pre-configured circuit breaker builder:
// opens after 5 consecutive failures, closes after 2 successes in half-open.
func CircuitBreakerBuilder() circuitbreaker.Builder[any] {
	return circuitbreaker.NewBuilder[any]().
		WithFailureThreshold(5).
		WithSuccessThreshold(2).
		WithDelay(60 * time.Second)
}

// Store wraps a store.Store, executing each operation through the
// configured failsafe-go policies.
type Store struct {
	inner    store.Store
	policies []failsafe.Policy[any]
}

// New wraps inner with the policies in cfg.
func New(inner store.Store, cfg Config) *Store {
	var policies []failsafe.Policy[any]
	if cfg.RetryPolicy != nil {
		policies = append(policies, cfg.RetryPolicy)
	}
	if cfg.CircuitBreaker != nil {
		policies = append(policies, cfg.CircuitBreaker)
	}
	return &Store{inner: inner, policies: policies}
}

func (s *Store) execute(fn func() (any, error)) error {
	if len(s.policies) == 0 {
		_, err := fn()
		return err
	}
	_, err := failsafe.With(s.policies...).Get(fn)
	return err
}

type getResult struct {
	data []byte
	ok   bool
}

// Get executes the inner Get through the configured policies.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var result getResult
	err := s.execute(func() (any, error) {
		data, ok, err := s.inner.Get(ctx, key)
		result = getResult{data: data, ok: ok}
		return nil, err
	})
	return result.data, result.ok, err
}

// Set executes the inner Set through the configured policies.
func (s *Store) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.execute(func() (any, error) {
		return nil, s.inner.Set(ctx, key, data, ttl)
	})
}

// Delete executes the inner Delete through the configured policies.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.execute(func() (any, error) {
		return nil, s.inner.Delete(ctx, key)
	})
}

var _ store.Store = (*Store)(nil)

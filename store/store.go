// Package store provides the persistence layer that sits outside the
// cachesemantics policy engine: a request fingerprint maps to a snapshot of
// (policy, body) bytes. The engine never imports this package; callers wire
// a Store of their choosing around it.
package store

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Store maps a cache key to an opaque snapshot. Implementations enforce
// their own single-writer-per-key discipline; this package assumes none.
type Store interface {
	// Get returns the stored data for key, or ok=false if absent or expired.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key, if present. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// CacheKey derives a fingerprint for req, matching the method and URI a
// CachePolicy was constructed from. GET requests key on the URI alone;
// other methods are prefixed with the method so e.g. a POST and a GET to
// the same URI never collide.
func CacheKey(req *http.Request) string {
	if req.Method == http.MethodGet {
		return req.URL.String()
	}
	return req.Method + " " + req.URL.String()
}

// CacheKeyWithHeaders extends CacheKey with the values of the named request
// headers, sorted for determinism. Use it when a deployment needs distinct
// entries per header value (e.g. per-tenant) beyond what Vary provides.
func CacheKeyWithHeaders(req *http.Request, headers []string) string {
	key := CacheKey(req)
	if len(headers) == 0 {
		return key
	}

	var parts []string
	for _, h := range headers {
		canonical := http.CanonicalHeaderKey(h)
		if v := req.Header.Get(canonical); v != "" {
			parts = append(parts, canonical+":"+v)
		}
	}
	if len(parts) == 0 {
		return key
	}
	sort.Strings(parts)
	return key + "|" + strings.Join(parts, "|")
}

//go:build integration

package memcache

import (
	"testing"

	"github.com/cachekit/cachesemantics/store/storetest"
)

// TestConformance requires a memcache server reachable at localhost:11211;
// run with `go test -tags integration ./store/memcache/...`.
func TestConformance(t *testing.T) {
	storetest.Exercise(t, New("localhost:11211"))
}

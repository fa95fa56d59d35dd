// Package storetest provides a conformance check any store.Store backend
// can run against in its own test file.
package storetest

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cachekit/cachesemantics/store"
)

// Exercise runs Get/Set/Delete against s and fails t if the backend
// deviates from store.Store's contract.
func Exercise(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()
	key := "storetest-key"

	_, ok, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("error getting key before it was set: %v", err)
	}
	if ok {
		t.Fatal("retrieved a key before adding it")
	}

	val := []byte("some bytes")
	if err := s.Set(ctx, key, val, time.Hour); err != nil {
		t.Fatalf("error setting key: %v", err)
	}

	retVal, ok, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("error getting key: %v", err)
	}
	if !ok {
		t.Fatal("could not retrieve an entry we just added")
	}
	if !bytes.Equal(retVal, val) {
		t.Fatal("retrieved a different value than what we put in")
	}

	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("error deleting key: %v", err)
	}

	_, ok, err = s.Get(ctx, key)
	if err != nil {
		t.Fatalf("error getting key after delete: %v", err)
	}
	if ok {
		t.Fatal("deleted key still present")
	}
}

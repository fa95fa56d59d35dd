// Package disk provides a store.Store backed by github.com/peterbourgon/diskv,
// supplementing an in-memory directory cache with persistent files.
package disk

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/peterbourgon/diskv"
)

// Store is a store.Store implementation that writes each entry as a file
// under basePath, fronted by diskv's in-memory cache.
type Store struct {
	d *diskv.Diskv
}

// New returns a Store that persists files under basePath.
func New(basePath string) *Store {
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 100 * 1024 * 1024,
		}),
	}
}

// NewWithDiskv returns a Store using the provided Diskv as underlying storage.
func NewWithDiskv(d *diskv.Diskv) *Store {
	return &Store{d: d}
}

// Get returns the data for key, treating an expired entry as absent.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	raw, err := s.d.Read(keyToFilename(key))
	if err != nil {
		return nil, false, nil
	}
	expires, data, err := decodeEntry(raw)
	if err != nil {
		return nil, false, nil
	}
	if !expires.IsZero() && time.Now().After(expires) {
		_ = s.d.Erase(keyToFilename(key))
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores data under key with the given ttl (zero means no expiration).
func (s *Store) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}
	raw := encodeEntry(expires, data)
	if err := s.d.WriteStream(keyToFilename(key), bytes.NewReader(raw), true); err != nil {
		return fmt.Errorf("disk store: set failed for key %q: %w", key, err)
	}
	return nil
}

// Delete removes key, if present.
func (s *Store) Delete(_ context.Context, key string) error {
	if err := s.d.Erase(keyToFilename(key)); err != nil {
		return nil //nolint:nilerr // missing file is not an error
	}
	return nil
}

func keyToFilename(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:])
}

// encodeEntry prefixes data with the expiry as a big-endian unix nano
// timestamp (0 meaning no expiration), since diskv has no native TTL.
func encodeEntry(expires time.Time, data []byte) []byte {
	buf := make([]byte, 8+len(data))
	if !expires.IsZero() {
		binary.BigEndian.PutUint64(buf[:8], uint64(expires.UnixNano()))
	}
	copy(buf[8:], data)
	return buf
}

func decodeEntry(raw []byte) (time.Time, []byte, error) {
	if len(raw) < 8 {
		return time.Time{}, nil, io.ErrUnexpectedEOF
	}
	nanos := binary.BigEndian.Uint64(raw[:8])
	var expires time.Time
	if nanos != 0 {
		expires = time.Unix(0, int64(nanos))
	}
	return expires, raw[8:], nil
}

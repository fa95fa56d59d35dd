// Package leveldb provides a store.Store backed by github.com/syndtr/goleveldb.
package leveldb

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
)

// Store is a store.Store implementation with LevelDB storage.
type Store struct {
	db *leveldb.DB
}

// New opens (or creates) a LevelDB database at path.
func New(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("leveldb store: open failed: %w", err)
	}
	return &Store{db: db}, nil
}

// NewWithDB returns a Store using the provided leveldb.DB as underlying storage.
func NewWithDB(db *leveldb.DB) *Store {
	return &Store{db: db}
}

// Get returns the data for key, treating an expired entry as absent.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	raw, err := s.db.Get([]byte(key), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("leveldb store: get failed for key %q: %w", key, err)
	}
	expires, data, err := decodeEntry(raw)
	if err != nil {
		return nil, false, nil
	}
	if !expires.IsZero() && time.Now().After(expires) {
		_ = s.db.Delete([]byte(key), nil)
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
	if err := s.db.Put([]byte(key), encodeEntry(expires, data), nil); err != nil {
		return fmt.Errorf("leveldb store: set failed for key %q: %w", key, err)
	}
	return nil
}

// Delete removes key, if present.
func (s *Store) Delete(_ context.Context, key string) error {
	if err := s.db.Delete([]byte(key), nil); err != nil {
		return fmt.Errorf("leveldb store: delete failed for key %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

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

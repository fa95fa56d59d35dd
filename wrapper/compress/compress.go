// Package compress wraps a store.Store with automatic compression, using
// either github.com/andybalholm/brotli or github.com/golang/snappy.
package compress

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"

	"github.com/cachekit/cachesemantics/store"
)

// Algorithm selects the compression codec a Store uses for new writes. Each
// stored value is prefixed with a one-byte marker so any Store can decode
// values written by another algorithm (e.g. after a config change).
type Algorithm byte

const (
	none Algorithm = iota
	algBrotli
	algSnappy
)

// Brotli and Snappy are the two supported algorithms; 0 (uncompressed) is
// never selected by New and exists only as a marker value.
const (
	Brotli = algBrotli
	Snappy = algSnappy
)

// Store wraps a store.Store, compressing values with algo before writing
// and decompressing on read.
type Store struct {
	inner       store.Store
	algo        Algorithm
	brotliLevel int
}

// New wraps inner, compressing new writes with algo. brotliLevel is used
// only when algo is Brotli (0 selects the brotli default of 6).
func New(inner store.Store, algo Algorithm, brotliLevel int) *Store {
	if brotliLevel <= 0 {
		brotliLevel = 6
	}
	return &Store{inner: inner, algo: algo, brotliLevel: brotliLevel}
}

func (s *Store) compress(data []byte) ([]byte, error) {
	switch s.algo {
	case algBrotli:
		var buf bytes.Buffer
		w := brotli.NewWriterLevel(&buf, s.brotliLevel)
		if _, err := w.Write(data); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("compress store: brotli write failed: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("compress store: brotli close failed: %w", err)
		}
		return withMarker(algBrotli, buf.Bytes()), nil
	case algSnappy:
		return withMarker(algSnappy, snappy.Encode(nil, data)), nil
	default:
		return withMarker(none, data), nil
	}
}

func decompress(marked []byte) ([]byte, error) {
	if len(marked) < 1 {
		return marked, nil
	}
	algo, data := Algorithm(marked[0]), marked[1:]
	switch algo {
	case algBrotli:
		decompressed, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("compress store: brotli read failed: %w", err)
		}
		return decompressed, nil
	case algSnappy:
		decompressed, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("compress store: snappy decode failed: %w", err)
		}
		return decompressed, nil
	default:
		return data, nil
	}
}

func withMarker(algo Algorithm, data []byte) []byte {
	out := make([]byte, len(data)+1)
	out[0] = byte(algo)
	copy(out[1:], data)
	return out
}

// Get decompresses the value returned by the inner store.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	marked, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	data, err := decompress(marked)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set compresses data before passing it to the inner store.
func (s *Store) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	compressed, err := s.compress(data)
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, key, compressed, ttl)
}

// Delete removes key from the inner store.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

var _ store.Store = (*Store)(nil)

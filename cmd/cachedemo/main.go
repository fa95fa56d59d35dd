// Command cachedemo performs one HTTP round trip, builds a CachePolicy from
// the exchange, and optionally persists a (policy, body) snapshot through a
// store.Store backend so a second invocation against the same URL can
// demonstrate reuse and revalidation.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cachekit/cachesemantics"
	"github.com/cachekit/cachesemantics/store"
	"github.com/cachekit/cachesemantics/store/disk"
	"github.com/cachekit/cachesemantics/store/freecache"
	"github.com/cachekit/cachesemantics/store/leveldb"
	"github.com/cachekit/cachesemantics/store/memcache"
	"github.com/cachekit/cachesemantics/store/memory"
	"github.com/cachekit/cachesemantics/store/redis"
	"github.com/cachekit/cachesemantics/wrapper/compress"
	"github.com/cachekit/cachesemantics/wrapper/metrics"
	cspromhttp "github.com/cachekit/cachesemantics/wrapper/metrics/prometheus"
	"github.com/cachekit/cachesemantics/wrapper/security"
)

// snapshotEntry is what gets handed to a Store: the policy snapshot
// (gob-encoded and length-prefixed by saveEntry) followed by the raw body
// bytes the policy describes.
type snapshotEntry struct {
	Policy cachesemantics.PolicySnapshot
	Body   []byte
}

func main() {
	url := flag.String("url", "", "URL to request (required)")
	backend := flag.String("store", "", "persist through a backend: memory, disk, redis, leveldb, memcache, freecache (omit to skip persistence)")
	storeDir := flag.String("store-dir", "./cachedemo-data", "directory for the disk/leveldb backends")
	redisAddr := flag.String("redis-addr", "localhost:6379", "address for the redis backend")
	memcacheAddr := flag.String("memcache-addr", "localhost:11211", "address for the memcache backend")
	compressAlgo := flag.String("compress", "", "wrap the store with compression: brotli, snappy")
	encryptKey := flag.String("encrypt-key", "", "wrap the store with AES-256-GCM encryption using this passphrase")
	withMetrics := flag.Bool("metrics", false, "wrap the store with Prometheus operation metrics")
	metricsAddr := flag.String("metrics-addr", ":9090", "address to serve /metrics on when -metrics is set")
	private := flag.Bool("private", false, "evaluate as a private cache instead of a shared cache")
	flag.Parse()

	if *url == "" {
		fmt.Fprintln(os.Stderr, "usage: cachedemo -url <url> [-store backend] [...]")
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cachesemantics.SetLogger(logger)

	var s store.Store
	if *backend != "" {
		var err error
		s, err = buildStore(*backend, *storeDir, *redisAddr, *memcacheAddr)
		if err != nil {
			logger.Error("failed to build store", "backend", *backend, "error", err)
			os.Exit(1)
		}
		if *withMetrics {
			s = metrics.New(s, cspromhttp.NewCollector(), *backend)
			go func() {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
					logger.Error("metrics server stopped", "error", err)
				}
			}()
			logger.Info("serving metrics", "addr", *metricsAddr)
		}
		if *encryptKey != "" {
			s, err = security.New(s, *encryptKey)
			if err != nil {
				logger.Error("failed to wrap store with encryption", "error", err)
				os.Exit(1)
			}
		}
		if *compressAlgo != "" {
			algo, err := parseCompressAlgo(*compressAlgo)
			if err != nil {
				logger.Error("invalid compression algorithm", "error", err)
				os.Exit(1)
			}
			s = compress.New(s, algo, 0)
		}
	}

	opts := cachesemantics.NewOptions(cachesemantics.WithShared(!*private))
	ctx := context.Background()
	key := *url

	if s != nil {
		if entry, ok, err := loadEntry(ctx, s, key); err != nil {
			logger.Error("failed to load stored entry", "error", err)
		} else if ok {
			demonstrateReuse(ctx, s, key, entry, opts)
			return
		}
	}

	if err := makeRequest(ctx, s, key, opts); err != nil {
		logger.Error("request failed", "error", err)
		os.Exit(1)
	}
}

func buildStore(backend, storeDir, redisAddr, memcacheAddr string) (store.Store, error) {
	switch backend {
	case "memory":
		return memory.New(), nil
	case "disk":
		return disk.New(storeDir), nil
	case "redis":
		return redis.New(redisAddr), nil
	case "leveldb":
		return leveldb.New(storeDir)
	case "memcache":
		return memcache.New(memcacheAddr), nil
	case "freecache":
		return freecache.New(100 * 1024 * 1024), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

func parseCompressAlgo(name string) (compress.Algorithm, error) {
	switch name {
	case "brotli":
		return compress.Brotli, nil
	case "snappy":
		return compress.Snappy, nil
	default:
		return 0, fmt.Errorf("unknown compression algorithm %q", name)
	}
}

func makeRequest(ctx context.Context, s store.Store, key string, opts cachesemantics.Options) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, key, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	responseTime := time.Now()
	policy := cachesemantics.New(cachesemantics.NewRequestView(req), cachesemantics.NewResponseView(res), responseTime, opts)

	fmt.Printf("status: %d\n", res.StatusCode)
	fmt.Printf("storable: %v\n", policy.IsStorable())
	fmt.Printf("max-age: %s\n", policy.MaxAge())
	fmt.Printf("time-to-live: %s\n", policy.TimeToLive(responseTime))

	if s != nil && policy.IsStorable() {
		entry := snapshotEntry{Policy: policy.Snapshot(), Body: body}
		if err := saveEntry(ctx, s, key, entry, policy.TimeToLive(responseTime)); err != nil {
			return fmt.Errorf("persisting entry: %w", err)
		}
		fmt.Println("persisted policy+body to store")
	}

	return nil
}

func demonstrateReuse(ctx context.Context, s store.Store, key string, entry snapshotEntry, opts cachesemantics.Options) {
	policy := entry.Policy.Restore()
	now := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, key, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "building request:", err)
		return
	}

	decision := cachesemantics.BeforeRequest(policy, cachesemantics.NewRequestView(req), now)
	switch decision.Disposition {
	case cachesemantics.Fresh:
		fmt.Println("fresh cache entry: serving stored body without contacting origin")
		return
	case cachesemantics.Stale:
		fmt.Println("stale entry: revalidating against origin")
	}

	req.Header = decision.RequestHeader
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "revalidation request failed:", err)
		return
	}
	defer res.Body.Close()

	responseTime := time.Now()
	outcome := policy.AfterResponse(cachesemantics.NewRequestView(req), cachesemantics.NewResponseView(res), responseTime)

	switch outcome.Outcome {
	case cachesemantics.NotModified:
		fmt.Println("not modified: reusing stored body, updating metadata only")
		if outcome.Policy.IsStorable() {
			newEntry := snapshotEntry{Policy: outcome.Policy.Snapshot(), Body: entry.Body}
			if err := saveEntry(ctx, s, key, newEntry, outcome.Policy.TimeToLive(responseTime)); err != nil {
				fmt.Fprintln(os.Stderr, "persisting entry:", err)
			}
		}
	case cachesemantics.Modified:
		fmt.Println("modified: replacing stored body")
		body, err := io.ReadAll(res.Body)
		if err != nil {
			fmt.Fprintln(os.Stderr, "reading response body:", err)
			return
		}
		if outcome.Policy.IsStorable() {
			newEntry := snapshotEntry{Policy: outcome.Policy.Snapshot(), Body: body}
			if err := saveEntry(ctx, s, key, newEntry, outcome.Policy.TimeToLive(responseTime)); err != nil {
				fmt.Fprintln(os.Stderr, "persisting entry:", err)
			}
		}
	}
}

func saveEntry(ctx context.Context, s store.Store, key string, entry snapshotEntry, ttl time.Duration) error {
	var buf bytes.Buffer
	policyBytes, err := cachesemantics.Marshal(entry.Policy)
	if err != nil {
		return err
	}
	buf.Write(lengthPrefixed(policyBytes))
	buf.Write(entry.Body)
	return s.Set(ctx, key, buf.Bytes(), ttl)
}

func loadEntry(ctx context.Context, s store.Store, key string) (snapshotEntry, bool, error) {
	data, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return snapshotEntry{}, ok, err
	}
	policyBytes, body, err := splitLengthPrefixed(data)
	if err != nil {
		return snapshotEntry{}, false, err
	}
	snapshot, err := cachesemantics.Unmarshal(policyBytes)
	if err != nil {
		return snapshotEntry{}, false, err
	}
	return snapshotEntry{Policy: snapshot, Body: body}, true, nil
}

// lengthPrefixed/splitLengthPrefixed let one store value carry both the
// gob-encoded policy snapshot and the raw body bytes.
func lengthPrefixed(data []byte) []byte {
	out := make([]byte, 4+len(data))
	out[0] = byte(len(data) >> 24)
	out[1] = byte(len(data) >> 16)
	out[2] = byte(len(data) >> 8)
	out[3] = byte(len(data))
	copy(out[4:], data)
	return out
}

func splitLengthPrefixed(data []byte) (prefixed, rest []byte, err error) {
	if len(data) < 4 {
		return nil, nil, fmt.Errorf("store entry too short")
	}
	n := int(data[0])<<24 | int(data[1])<<16 | int(data[2])<<8 | int(data[3])
	if len(data) < 4+n {
		return nil, nil, fmt.Errorf("store entry truncated")
	}
	return data[4 : 4+n], data[4+n:], nil
}

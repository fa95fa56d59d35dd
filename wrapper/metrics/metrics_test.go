package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cachekit/cachesemantics/store/memory"
)

type recordedCall struct {
	operation, backend, result string
}

type fakeCollector struct {
	calls []recordedCall
}

func (f *fakeCollector) RecordOperation(operation, backend, result string, _ time.Duration) {
	f.calls = append(f.calls, recordedCall{operation, backend, result})
}

func TestRecordsHitAndMiss(t *testing.T) {
	ctx := context.Background()
	collector := &fakeCollector{}
	s := New(memory.New(), collector, "memory")

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))

	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, collector.calls, 3)
	assert.Equal(t, recordedCall{"get", "memory", "miss"}, collector.calls[0])
	assert.Equal(t, recordedCall{"set", "memory", "success"}, collector.calls[1])
	assert.Equal(t, recordedCall{"get", "memory", "hit"}, collector.calls[2])
}

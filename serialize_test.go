package cachesemantics

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotMarshalUnmarshalRoundTrip(t *testing.T) {
	header := http.Header{"Cache-Control": {"max-age=120"}, "ETag": {`"abc"`}}
	p := New(newReq(http.MethodGet, "/x", nil), newRes(200, header), refTime, NewOptions(WithShared(false)))

	snap := p.Snapshot()
	data, err := Marshal(snap)
	require.NoError(t, err)

	restored, err := Unmarshal(data)
	require.NoError(t, err)

	restoredPolicy := restored.Restore()
	assert.Equal(t, p.IsStorable(), restoredPolicy.IsStorable())
	assert.Equal(t, p.MaxAge(), restoredPolicy.MaxAge())
	assert.Equal(t, p.uri, restoredPolicy.uri)
	assert.False(t, restoredPolicy.opts.Shared)
}

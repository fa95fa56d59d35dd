package cachesemantics

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRequest is a minimal RequestView for table tests that don't need a
// real *http.Request.
type testRequest struct {
	method string
	uri    string
	header http.Header
}

func (r testRequest) Method() string        { return r.method }
func (r testRequest) URI() string           { return r.uri }
func (r testRequest) SameURI(o string) bool { return r.uri == o }
func (r testRequest) Header() http.Header   { return r.header }

type testResponse struct {
	status int
	header http.Header
}

func (r testResponse) StatusCode() int     { return r.status }
func (r testResponse) Header() http.Header { return r.header }

func newReq(method, uri string, header http.Header) RequestView {
	if header == nil {
		header = http.Header{}
	}
	return testRequest{method: method, uri: uri, header: header}
}

func newRes(status int, header http.Header) ResponseView {
	if header == nil {
		header = http.Header{}
	}
	return testResponse{status: status, header: header}
}

var refTime = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func TestSimpleHit(t *testing.T) {
	req := newReq(http.MethodGet, "/", nil)
	res := newRes(200, http.Header{"Cache-Control": {"public, max-age=999999"}})
	p := New(req, res, refTime, NewOptions())

	assert.True(t, p.IsStorable())
	assert.False(t, p.IsStale(refTime))
	assert.Equal(t, 999999*time.Second, p.TimeToLive(refTime))

	decision := BeforeRequest(p, req, refTime)
	assert.Equal(t, Fresh, decision.Disposition)
}

func TestNoStoreKillsCache(t *testing.T) {
	req := newReq(http.MethodGet, "/", http.Header{"Cache-Control": {"no-store"}})
	res := newRes(200, http.Header{"Cache-Control": {"public, max-age=222"}})
	p := New(req, res, refTime, NewOptions())

	assert.False(t, p.IsStorable())
	assert.True(t, p.IsStale(refTime))
}

func TestSMaxAgeSharedVsPrivate(t *testing.T) {
	header := http.Header{
		"Cache-Control": {"public, s-maxage=9999"},
		"Expires":       {"Sat, 07 May 2016 15:35:18 GMT"},
		"Date":          {refTime.Format(http.TimeFormat)},
	}
	req := newReq(http.MethodGet, "/", nil)

	shared := New(req, newRes(200, header.Clone()), refTime, NewOptions(WithShared(true)))
	assert.Equal(t, 9999*time.Second, shared.TimeToLive(refTime))
	assert.False(t, shared.IsStale(refTime))

	private := New(req, newRes(200, header.Clone()), refTime, NewOptions(WithShared(false)))
	assert.Equal(t, time.Duration(0), private.TimeToLive(refTime))
	assert.True(t, private.IsStale(refTime))
}

func TestConflictingDuplicatesForceRevalidation(t *testing.T) {
	header := http.Header{"Cache-Control": {"max-age=100", "max-age=200"}}
	req := newReq(http.MethodGet, "/", http.Header{"Cache-Control": {"max-stale=180"}})
	p := New(req, newRes(200, header), refTime, NewOptions())

	require.True(t, p.resCC.has("must-revalidate"), "conflicting max-age values must synthesize must-revalidate")

	later := refTime.Add(150 * time.Second)
	require.True(t, p.IsStale(later))
	decision := BeforeRequest(p, req, later)
	assert.Equal(t, Stale, decision.Disposition)
}

func TestVaryMatch(t *testing.T) {
	resHeader := http.Header{"Cache-Control": {"max-age=5"}, "Vary": {"weather"}}
	storedReq := newReq(http.MethodGet, "/", http.Header{"Weather": {"nice"}})
	p := New(storedReq, newRes(200, resHeader), refTime, NewOptions())

	same := newReq(http.MethodGet, "/", http.Header{"Weather": {"nice"}})
	assert.Equal(t, Fresh, BeforeRequest(p, same, refTime).Disposition)

	different := newReq(http.MethodGet, "/", http.Header{"Weather": {"bad"}})
	assert.Equal(t, Stale, BeforeRequest(p, different, refTime).Disposition)

	varyHeader := resHeader.Clone()
	varyHeader.Set("Vary", "*")
	starP := New(storedReq, newRes(200, varyHeader), refTime, NewOptions())
	assert.Equal(t, Stale, BeforeRequest(starP, same, refTime).Disposition)
}

func TestRevalidationMergeNotModified(t *testing.T) {
	storedHeader := http.Header{"ETag": {`"v1"`}, "Foo": {"original"}, "Cache-Control": {"max-age=5"}, "Content-Length": {"1234"}}
	req := newReq(http.MethodGet, "/", nil)
	p := New(req, newRes(200, storedHeader), refTime, NewOptions())

	newResHeader := http.Header{"ETag": {`"v1"`}, "Foo": {"updated"}, "Content-Length": {"0"}}
	outcome := p.AfterResponse(req, newRes(304, newResHeader), refTime.Add(time.Second))

	assert.Equal(t, NotModified, outcome.Outcome)
	assert.Equal(t, "updated", outcome.Policy.resHeader.Get("Foo"))
	assert.Equal(t, "1234", outcome.Policy.resHeader.Get("Content-Length"))
	assert.Equal(t, 200, outcome.Policy.status)
}

func TestWeakValidatorScrubOnPOST(t *testing.T) {
	storedHeader := http.Header{
		"ETag":          {`"123"`},
		"Last-Modified": {"Mon, 01 Jan 2024 00:00:00 GMT"},
		"Cache-Control": {"max-age=60"},
	}
	storedReq := newReq(http.MethodPost, "/", nil)
	p := New(storedReq, newRes(200, storedHeader), refTime, NewOptions(WithShared(false)))

	postReq := newReq(http.MethodPost, "/", http.Header{"If-None-Match": {`W/"weak", "strong", W/"weak2"`}})
	revalHeaders := p.RevalidationHeaders(postReq)

	assert.Equal(t, `"strong", "123"`, revalHeaders.Get("If-None-Match"))
	assert.Empty(t, revalHeaders.Get("If-Modified-Since"))
}

func TestHeuristicFreshnessWithLastModified(t *testing.T) {
	lastModified := refTime.Add(-100 * 24 * time.Hour)
	header := http.Header{
		"Date":          {refTime.Format(http.TimeFormat)},
		"Last-Modified": {lastModified.Format(http.TimeFormat)},
	}
	req := newReq(http.MethodGet, "/", nil)
	p := New(req, newRes(200, header), refTime, NewOptions())

	expected := time.Duration(float64(100*24*time.Hour) * 0.1)
	assert.InDelta(t, float64(expected), float64(p.MaxAge()), float64(time.Minute))
	assert.False(t, p.IsStale(refTime))

	later := refTime.Add(25 * time.Hour)
	headers := p.CachedResponseHeaders(later)
	assert.Contains(t, headers.Get("Warning"), "113")
}

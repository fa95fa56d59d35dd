package cachesemantics

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeforeRequestMismatchedResourceStripsConditionals(t *testing.T) {
	storedHeader := http.Header{"ETag": {`"v1"`}, "Cache-Control": {"max-age=5"}}
	storedReq := newReq(http.MethodGet, "/a", nil)
	p := New(storedReq, newRes(200, storedHeader), refTime, NewOptions())

	other := newReq(http.MethodGet, "/b", http.Header{"If-None-Match": {`"v1"`}})
	decision := BeforeRequest(p, other, refTime.Add(time.Hour))

	assert.Equal(t, Stale, decision.Disposition)
	assert.False(t, decision.Matches)
	assert.Empty(t, decision.RequestHeader.Get("If-None-Match"))
}

func TestBeforeRequestRequestNoCacheForcesRevalidation(t *testing.T) {
	header := http.Header{"Cache-Control": {"max-age=999"}}
	req := newReq(http.MethodGet, "/", http.Header{"Cache-Control": {"no-cache"}})
	p := New(req, newRes(200, header), refTime, NewOptions())

	decision := BeforeRequest(p, req, refTime)
	assert.Equal(t, Stale, decision.Disposition)
	assert.True(t, decision.Matches)
}

func TestBeforeRequestMaxStaleAllowsServingStaleEntry(t *testing.T) {
	header := http.Header{"Cache-Control": {"max-age=10"}}
	req := newReq(http.MethodGet, "/", nil)
	p := New(req, newRes(200, header), refTime, NewOptions())

	staleReq := newReq(http.MethodGet, "/", http.Header{"Cache-Control": {"max-stale=120"}})
	decision := BeforeRequest(p, staleReq, refTime.Add(30*time.Second))
	assert.Equal(t, Fresh, decision.Disposition)
}

func TestBeforeRequestStaleWithoutMaxStaleIsStale(t *testing.T) {
	header := http.Header{"Cache-Control": {"max-age=5"}}
	req := newReq(http.MethodGet, "/", nil)
	p := New(req, newRes(200, header), refTime, NewOptions())

	// age 10s >= max-age 5s: stale, and the new request carries no
	// max-stale directive at all, so it must not be served as Fresh.
	decision := BeforeRequest(p, req, refTime.Add(10*time.Second))
	assert.Equal(t, Stale, decision.Disposition)
}

func TestBeforeRequestMaxStaleRejectedByMustRevalidate(t *testing.T) {
	header := http.Header{"Cache-Control": {"max-age=10, must-revalidate"}}
	req := newReq(http.MethodGet, "/", nil)
	p := New(req, newRes(200, header), refTime, NewOptions())

	staleReq := newReq(http.MethodGet, "/", http.Header{"Cache-Control": {"max-stale=120"}})
	decision := BeforeRequest(p, staleReq, refTime.Add(30*time.Second))
	assert.Equal(t, Stale, decision.Disposition)
}

package cachesemantics

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeAddsAgeHeaderAndResidentTime(t *testing.T) {
	header := http.Header{"Age": {"30"}}
	p := New(newReq(http.MethodGet, "/", nil), newRes(200, header), refTime, NewOptions())

	assert.Equal(t, 30*time.Second, p.Age(refTime))
	assert.Equal(t, 40*time.Second, p.Age(refTime.Add(10*time.Second)))
}

func TestAgeIsMonotonicallyNonDecreasing(t *testing.T) {
	p := New(newReq(http.MethodGet, "/", nil), newRes(200, http.Header{}), refTime, NewOptions())

	prev := p.Age(refTime)
	for i := 1; i <= 10; i++ {
		next := p.Age(refTime.Add(time.Duration(i) * time.Minute))
		assert.GreaterOrEqual(t, next, prev)
		prev = next
	}
}

func TestNonStorablePolicyHasZeroMaxAgeAndTTL(t *testing.T) {
	header := http.Header{"Cache-Control": {"no-store"}}
	p := New(newReq(http.MethodGet, "/", nil), newRes(200, header), refTime, NewOptions())

	assert.False(t, p.IsStorable())
	assert.Equal(t, time.Duration(0), p.MaxAge())
	assert.Equal(t, time.Duration(0), p.TimeToLive(refTime.Add(time.Hour)))
}

func TestIsStaleMatchesZeroTimeToLive(t *testing.T) {
	header := http.Header{"Cache-Control": {"max-age=60"}}
	p := New(newReq(http.MethodGet, "/", nil), newRes(200, header), refTime, NewOptions())

	fresh := refTime.Add(30 * time.Second)
	assert.False(t, p.IsStale(fresh))
	assert.NotZero(t, p.TimeToLive(fresh))

	stale := refTime.Add(90 * time.Second)
	assert.True(t, p.IsStale(stale))
	assert.Zero(t, p.TimeToLive(stale))
}

package store

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKeyDistinguishesMethod(t *testing.T) {
	u, _ := url.Parse("https://example.com/a")
	get := &http.Request{Method: http.MethodGet, URL: u}
	post := &http.Request{Method: http.MethodPost, URL: u}

	assert.Equal(t, "https://example.com/a", CacheKey(get))
	assert.Equal(t, "POST https://example.com/a", CacheKey(post))
}

func TestCacheKeyWithHeadersIsOrderIndependent(t *testing.T) {
	u, _ := url.Parse("https://example.com/a")
	req1 := &http.Request{Method: http.MethodGet, URL: u, Header: http.Header{
		"X-Tenant": {"acme"}, "X-Region": {"us"},
	}}
	req2 := &http.Request{Method: http.MethodGet, URL: u, Header: http.Header{
		"X-Region": {"us"}, "X-Tenant": {"acme"},
	}}

	assert.Equal(t,
		CacheKeyWithHeaders(req1, []string{"X-Tenant", "X-Region"}),
		CacheKeyWithHeaders(req2, []string{"X-Region", "X-Tenant"}))
}

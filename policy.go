package cachesemantics

import (
	"net/http"
	"strings"
	"time"
)

// statusCodeCacheableByDefault is the set of statuses that are cacheable
// even without any explicit freshness directive (RFC 7231 6.1).
var statusCodeCacheableByDefault = map[int]bool{
	200: true, 203: true, 204: true, 206: true,
	300: true, 301: true, 308: true,
	404: true, 405: true, 410: true, 414: true, 501: true,
}

// understoodStatuses is the set of statuses this engine knows how to
// reason about. It deliberately does not include 206 (partial content):
// understanding Range/Content-Range/If-Range is out of scope.
var understoodStatuses = map[int]bool{
	200: true, 203: true, 204: true,
	300: true, 301: true, 302: true, 303: true, 307: true, 308: true,
	404: true, 405: true, 410: true, 414: true, 501: true,
}

// CachePolicy captures everything needed to decide, later and repeatedly,
// whether a stored HTTP response may still be served, must be revalidated,
// or should be treated as a miss. It is immutable after construction;
// AfterResponse returns a new CachePolicy rather than mutating the receiver.
type CachePolicy struct {
	method       string
	uri          string
	reqHeader    http.Header
	resHeader    http.Header
	status       int
	reqCC        directives
	resCC        directives
	responseTime time.Time
	opts         Options
}

// New builds a CachePolicy from a request/response exchange.
//
// responseTime is the instant at which the cache received the response;
// it is the reference point all later Age/TTL calculations measure from.
func New(req RequestView, res ResponseView, responseTime time.Time, opts Options) *CachePolicy {
	resHeader := res.Header().Clone()
	if resHeader == nil {
		resHeader = http.Header{}
	}
	reqHeader := req.Header()
	if reqHeader == nil {
		reqHeader = http.Header{}
	}

	resCC := parseDirectives(resHeader, "cache-control")
	reqCC := parseDirectives(reqHeader, "cache-control")

	if opts.IgnoreCargoCult && resCC.has("pre-check") && resCC.has("post-check") {
		logger().Warn("ignore_cargo_cult: stripping pre-check/post-check cruft from response")
		delete(resCC, "pre-check")
		delete(resCC, "post-check")
		delete(resCC, "no-cache")
		delete(resCC, "no-store")
		delete(resCC, "must-revalidate")
		resHeader.Set("cache-control", formatDirectives(resCC))
		resHeader.Del("expires")
		resHeader.Del("pragma")
	}

	// When Cache-Control is absent, a Pragma: no-cache request/response
	// directive MUST be treated the same as Cache-Control: no-cache.
	if resHeader.Get("cache-control") == "" && containsNoCache(resHeader.Get("pragma")) {
		resCC["no-cache"] = nil
	}

	return &CachePolicy{
		method:       req.Method(),
		uri:          req.URI(),
		reqHeader:    reqHeader.Clone(),
		resHeader:    resHeader,
		status:       res.StatusCode(),
		reqCC:        reqCC,
		resCC:        resCC,
		responseTime: responseTime,
		opts:         opts,
	}
}

func containsNoCache(pragma string) bool {
	return strings.Contains(strings.ToLower(pragma), "no-cache")
}

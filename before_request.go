package cachesemantics

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Disposition is the outcome of evaluating a new request against a stored
// CachePolicy.
type Disposition int

const (
	// Fresh means the stored response may be served as-is.
	Fresh Disposition = iota
	// Stale means the stored response must be revalidated (or, if it
	// doesn't even match the stored request, treated as a miss).
	Stale
)

// ReuseDecision is the result of BeforeRequest.
type ReuseDecision struct {
	Disposition Disposition

	// ResponseHeader is set when Disposition == Fresh: the headers to
	// return to the caller for the cache hit, per CachedResponseHeaders.
	ResponseHeader http.Header

	// RequestHeader is set when Disposition == Stale: the headers to send
	// to the origin, either a revalidation request or (if the request may
	// not revalidate this policy: different URI, Host or Vary headers, or a
	// method other than the stored one or HEAD) the original request
	// stripped of conditional-request headers, since it can't revalidate a
	// different resource.
	RequestHeader http.Header

	// Matches reports, when Disposition == Stale, whether the new request
	// is for the same resource as the stored policy (exact match).
	Matches bool
}

// BeforeRequest decides whether a stored policy may satisfy a new request
// without contacting the origin, given the current time now.
func BeforeRequest(p *CachePolicy, req RequestView, now time.Time) ReuseDecision {
	matches := p.exactMatch(req)

	if matches && p.satisfiesWithoutRevalidation(req, now) {
		return ReuseDecision{
			Disposition:    Fresh,
			ResponseHeader: p.CachedResponseHeaders(now),
		}
	}

	var reqHeader http.Header
	if p.mayRevalidate(req) {
		reqHeader = p.RevalidationHeaders(req)
	} else {
		reqHeader = withoutHopByHop(req.Header())
		reqHeader.Del("if-none-match")
		reqHeader.Del("if-modified-since")
	}

	return ReuseDecision{
		Disposition:    Stale,
		RequestHeader:  reqHeader,
		Matches:        matches,
	}
}

// satisfiesWithoutRevalidation implements RFC 7234 4: the new request's own
// no-cache/min-fresh/max-age/max-stale directives, on top of a cache hit
// that already passed requestMatches.
func (p *CachePolicy) satisfiesWithoutRevalidation(req RequestView, now time.Time) bool {
	reqHeader := req.Header()
	reqCC := parseDirectives(reqHeader, "cache-control")

	if reqCC.has("no-cache") || containsNoCache(reqHeader.Get("pragma")) {
		return false
	}

	if reqCC.has("max-age") {
		if p.Age(now) > time.Duration(reqCC.seconds("max-age"))*time.Second {
			return false
		}
	}

	if reqCC.has("min-fresh") {
		if p.TimeToLive(now) < time.Duration(reqCC.seconds("min-fresh"))*time.Second {
			return false
		}
	}

	if p.IsStale(now) {
		v, ok := reqCC["max-stale"]
		if !ok {
			return false
		}
		if p.resCC.has("must-revalidate") {
			return false
		}
		if v != nil {
			n, err := strconv.ParseInt(strings.TrimSpace(*v), 10, 64)
			if err == nil && n >= 0 {
				allowed := time.Duration(n) * time.Second
				staleness := p.Age(now) - p.MaxAge()
				if allowed <= staleness {
					return false
				}
			}
		}
	}

	return true
}

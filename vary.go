package cachesemantics

import "strings"

// varyMatches reports whether every header nominated by the stored
// response's Vary header has the same value in both the stored request and
// the new one (including both-absent). A bare "*" entry always fails.
func (p *CachePolicy) varyMatches(newReqHeader headerGetter) bool {
	for _, name := range headerValuesCSV(p.resHeader, "vary") {
		if name == "*" {
			return false
		}
		name = strings.ToLower(name)
		if newReqHeader.Get(name) != p.reqHeader.Get(name) {
			return false
		}
	}
	return true
}

// headerGetter is the minimal read surface vary matching needs; satisfied
// by http.Header itself.
type headerGetter interface {
	Get(string) string
}

// requestMatches implements the shared URI/Host/Vary/method comparison
// used by both exactMatch and mayRevalidate. allowHead permits a stored
// non-HEAD policy to match an incoming HEAD request (for revalidation
// only, per RFC 7234 4.3.2).
func (p *CachePolicy) requestMatches(req RequestView, allowHead bool) bool {
	if !req.SameURI(p.uri) {
		return false
	}
	if req.Header().Get("host") != p.reqHeader.Get("host") {
		return false
	}
	if req.Method() != p.method && !(allowHead && req.Method() == "HEAD") {
		return false
	}
	return p.varyMatches(req.Header())
}

// exactMatch reports whether req matches the request this policy was built
// from on URI, Host, method and every Vary-nominated header.
func (p *CachePolicy) exactMatch(req RequestView) bool {
	return p.requestMatches(req, false)
}

// mayRevalidate reports whether req may be sent as a revalidation of this
// policy: either an exact match, or the same resource requested with HEAD.
func (p *CachePolicy) mayRevalidate(req RequestView) bool {
	return p.requestMatches(req, true)
}

package cachesemantics

import (
	"net/http"
	"strings"
)

// RevalidationHeaders builds the request headers to send to the origin to
// revalidate this policy against req, the new incoming request. The
// caller should only call this when mayRevalidate(req) holds (BeforeRequest
// already checks this). The IsStorable() check below does not look at req:
// for a storable policy, a non-matching req still gets this policy's
// validators added rather than its conditional headers stripped.
func (p *CachePolicy) RevalidationHeaders(req RequestView) http.Header {
	headers := withoutHopByHop(req.Header())
	filterWarning(headers)

	// Range requests are out of scope.
	headers.Del("if-range")

	if !p.IsStorable() {
		headers.Del("if-none-match")
		headers.Del("if-modified-since")
		return headers
	}

	if etag := p.resHeader.Get("etag"); etag != "" {
		existing := headerValuesCSV(headers, "if-none-match")
		headers.Set("if-none-match", joinCSV(append(existing, etag)...))
	}

	forbidsWeakValidators := p.method != "GET" ||
		headers.Get("accept-ranges") != "" ||
		headers.Get("if-match") != "" ||
		headers.Get("if-unmodified-since") != ""

	if forbidsWeakValidators {
		headers.Del("if-modified-since")

		var strong []string
		for _, etag := range headerValuesCSV(headers, "if-none-match") {
			if !strings.HasPrefix(strings.TrimSpace(etag), "W/") {
				strong = append(strong, etag)
			}
		}
		if len(strong) == 0 {
			headers.Del("if-none-match")
		} else {
			headers.Set("if-none-match", joinCSV(strong...))
		}
	} else if headers.Get("if-modified-since") == "" {
		if lastModified := p.resHeader.Get("last-modified"); lastModified != "" {
			headers.Set("if-modified-since", lastModified)
		}
	}

	return headers
}

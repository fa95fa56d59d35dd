package cachesemantics

import (
	"net/http"
	"strings"
)

// hopByHopHeaders are stripped from both cached responses and revalidation
// requests. "date" is included because the cache always rewrites it.
var hopByHopHeaders = []string{
	"date",
	"connection",
	"keep-alive",
	"proxy-authenticate",
	"proxy-authorization",
	"te",
	"trailer",
	"transfer-encoding",
	"upgrade",
}

// neverUpdatedFromRevalidation lists body-describing headers that a 304
// response must never be allowed to overwrite on the stored entry.
var neverUpdatedFromRevalidation = []string{
	"content-length",
	"content-encoding",
	"transfer-encoding",
	"content-range",
}

// RequestView abstracts the parts of an HTTP request the engine needs, so
// it never has to depend on how the caller represents requests.
type RequestView interface {
	Method() string
	URI() string
	// SameURI reports whether other names the same effective request URI.
	SameURI(other string) bool
	Header() http.Header
}

// ResponseView abstracts the parts of an HTTP response the engine needs.
type ResponseView interface {
	StatusCode() int
	Header() http.Header
}

// httpRequestView adapts *http.Request to RequestView.
type httpRequestView struct {
	req *http.Request
}

// NewRequestView wraps a standard library request as a RequestView.
func NewRequestView(req *http.Request) RequestView {
	return httpRequestView{req: req}
}

func (v httpRequestView) Method() string { return v.req.Method }

func (v httpRequestView) URI() string { return v.req.URL.String() }

func (v httpRequestView) SameURI(other string) bool {
	return v.req.URL.String() == other
}

func (v httpRequestView) Header() http.Header { return v.req.Header }

// httpResponseView adapts *http.Response to ResponseView.
type httpResponseView struct {
	res *http.Response
}

// NewResponseView wraps a standard library response as a ResponseView.
func NewResponseView(res *http.Response) ResponseView {
	return httpResponseView{res: res}
}

func (v httpResponseView) StatusCode() int { return v.res.StatusCode }

func (v httpResponseView) Header() http.Header { return v.res.Header }

// headerValuesCSV splits every comma-separated value of a (possibly
// repeated) header into trimmed parts, across all occurrences.
func headerValuesCSV(h http.Header, name string) []string {
	var out []string
	for _, raw := range h.Values(name) {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// withoutHopByHop returns a copy of h with the hop-by-hop headers removed,
// plus every header named in h's own Connection header.
func withoutHopByHop(h http.Header) http.Header {
	out := h.Clone()
	if out == nil {
		out = http.Header{}
	}
	for _, name := range hopByHopHeaders {
		out.Del(name)
	}
	for _, name := range headerValuesCSV(h, "connection") {
		out.Del(name)
	}
	return out
}

// filterWarning drops every comma-separated Warning entry whose trimmed
// text starts with "1" (intended to mean "1xx", implemented as a bare
// prefix match per the upstream FIXME; see SPEC_FULL.md / DESIGN.md).
func filterWarning(h http.Header) {
	entries := headerValuesCSV(h, "warning")
	if len(entries) == 0 {
		return
	}
	kept := entries[:0]
	for _, w := range entries {
		if !strings.HasPrefix(strings.TrimSpace(w), "1") {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		h.Del("warning")
		return
	}
	h.Set("warning", strings.Join(kept, ", "))
}

// joinCSV formats parts as a comma-space separated list, skipping empties.
func joinCSV(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

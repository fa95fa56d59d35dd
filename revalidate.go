package cachesemantics

import (
	"net/http"
	"strings"
	"time"
)

// RevalidationOutcome distinguishes reusing the stored body (NotModified)
// from replacing it (Modified), the result of AfterResponse.
type RevalidationOutcome int

const (
	// Modified means the server sent a new representation; the caller
	// should replace the cached body with the new response's body.
	Modified RevalidationOutcome = iota
	// NotModified means the server confirmed the stored representation is
	// still current (a matching 304); the caller should keep the old body.
	NotModified
)

// RevalidatedPolicy is the result of merging a revalidation exchange into
// a prior CachePolicy.
type RevalidatedPolicy struct {
	Policy         *CachePolicy
	ResponseHeader http.Header
	Outcome        RevalidationOutcome
}

// constructedResponseView lets AfterResponse feed a synthetic
// status+header pair (the merge result) back into New without requiring a
// real ResponseView implementation from the caller.
type constructedResponseView struct {
	status int
	header http.Header
}

func (v constructedResponseView) StatusCode() int     { return v.status }
func (v constructedResponseView) Header() http.Header { return v.header }

// AfterResponse merges a revalidation response into the receiver. request
// is the request actually sent to the origin (typically built from
// RevalidationHeaders); res and responseTime describe the origin's reply.
func (p *CachePolicy) AfterResponse(request RequestView, res ResponseView, responseTime time.Time) RevalidatedPolicy {
	matches := p.revalidationMatches(res)

	status := res.StatusCode()
	header := res.Header().Clone()

	if matches {
		header = p.resHeader.Clone()
		for name := range header {
			if isNeverUpdated(strings.ToLower(name)) {
				continue
			}
			if newValues := res.Header().Values(name); len(newValues) > 0 {
				header[name] = append([]string(nil), newValues...)
			}
		}
		status = p.status
	}

	newPolicy := New(request, constructedResponseView{status: status, header: header}, responseTime, p.opts)

	outcome := Modified
	if matches && res.StatusCode() == 304 {
		outcome = NotModified
	}

	return RevalidatedPolicy{
		Policy:         newPolicy,
		ResponseHeader: newPolicy.CachedResponseHeaders(responseTime),
		Outcome:        outcome,
	}
}

// revalidationMatches implements the validator-comparison rules that
// decide whether a 304 response updates this stored entry. Any non-304
// status never matches: there is nothing to merge.
func (p *CachePolicy) revalidationMatches(res ResponseView) bool {
	if res.StatusCode() != 304 {
		return false
	}

	oldETag := strings.TrimSpace(p.resHeader.Get("etag"))
	newETag := strings.TrimSpace(res.Header().Get("etag"))

	if newETag != "" && !strings.HasPrefix(newETag, "W/") {
		return stripWeak(oldETag) == newETag
	}

	if oldETag != "" && newETag != "" {
		return stripWeak(oldETag) == stripWeak(newETag)
	}

	if oldLastModified := p.resHeader.Get("last-modified"); oldLastModified != "" {
		return oldLastModified == res.Header().Get("last-modified")
	}

	newLastModified := res.Header().Get("last-modified")
	return oldETag == "" && newETag == "" && newLastModified == ""
}

func stripWeak(etag string) string {
	return strings.TrimPrefix(etag, "W/")
}

func isNeverUpdated(lowerName string) bool {
	for _, n := range neverUpdatedFromRevalidation {
		if n == lowerName {
			return true
		}
	}
	return false
}

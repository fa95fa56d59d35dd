package cachesemantics

import (
	"strings"
	"time"
)

// MaxAge returns the response's freshness lifetime: how long after its
// Date it may be served without revalidation. It counts from the
// response's Date, not from now; see TimeToLive for the up-to-date
// remaining lifetime.
func (p *CachePolicy) MaxAge() time.Duration {
	if !p.IsStorable() || p.resCC.has("no-cache") {
		return 0
	}

	// Cookies are per-user unless the response explicitly says otherwise.
	if p.opts.Shared && p.resHeader.Get("set-cookie") != "" &&
		!p.resCC.has("public") && !p.resCC.has("immutable") {
		return 0
	}

	if strings.TrimSpace(p.resHeader.Get("vary")) == "*" {
		return 0
	}

	if p.opts.Shared {
		if p.resCC.has("proxy-revalidate") {
			return 0
		}
		if p.resCC.has("s-maxage") {
			return time.Duration(p.resCC.seconds("s-maxage")) * time.Second
		}
	}

	if p.resCC.has("max-age") {
		return time.Duration(p.resCC.seconds("max-age")) * time.Second
	}

	var defaultMinTTL time.Duration
	if p.resCC.has("immutable") {
		defaultMinTTL = p.opts.ImmutableMinTimeToLive
	}

	serverDate := p.rawServerDate()

	if expiresHeader := p.resHeader.Get("expires"); expiresHeader != "" {
		expires, ok := parseHTTPDate(expiresHeader)
		if !ok {
			// An invalid date, especially "0", means already expired.
			return 0
		}
		lifetime := expires.Sub(serverDate)
		if lifetime < 0 {
			lifetime = 0
		}
		return maxDuration(defaultMinTTL, lifetime)
	}

	if lastModifiedHeader := p.resHeader.Get("last-modified"); lastModifiedHeader != "" {
		if lastModified, ok := parseHTTPDate(lastModifiedHeader); ok {
			if diff := serverDate.Sub(lastModified); diff >= 0 {
				heuristic := time.Duration(float64(diff) * p.opts.CacheHeuristic)
				return maxDuration(defaultMinTTL, heuristic)
			}
		}
	}

	return defaultMinTTL
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}

// TimeToLive returns how much longer, from now, the response stays fresh.
// It never goes negative; once the response is stale it reports 0.
func (p *CachePolicy) TimeToLive(now time.Time) time.Duration {
	ttl := p.MaxAge() - p.Age(now)
	if ttl < 0 {
		return 0
	}
	return ttl
}

// IsStale reports whether the response is no longer fresh at now.
func (p *CachePolicy) IsStale(now time.Time) bool {
	return p.MaxAge() <= p.Age(now)
}

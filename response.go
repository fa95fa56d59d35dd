package cachesemantics

import (
	"net/http"
	"strconv"
	"time"
)

// CachedResponseHeaders produces the response headers view to return to a
// caller for a cache hit (fresh or freshly revalidated) at the instant now:
// hop-by-hop headers stripped, a heuristic-freshness Warning appended where
// applicable, and Age/Date set to reflect now.
func (p *CachePolicy) CachedResponseHeaders(now time.Time) http.Header {
	headers := withoutHopByHop(p.resHeader)
	for _, name := range headerValuesCSV(p.resHeader, "connection") {
		headers.Del(name)
	}
	filterWarning(headers)

	age := p.Age(now)
	const day = 24 * time.Hour
	if age > day && !p.hasExplicitExpiration() && p.MaxAge() > day {
		headers.Add("warning", `113 - "rfc7234 5.5.4"`)
	}

	headers.Set("age", strconv.FormatInt(int64(age/time.Second), 10))
	headers.Set("date", now.Format(http.TimeFormat))

	return headers
}

package cachesemantics

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// parseHTTPDate parses a Date/Expires/Last-Modified value. http.ParseTime
// accepts the three formats RFC 7231 7.1.1.1 requires a recipient to
// understand (IMF-fixdate, RFC 850, asctime). Other RFC 2822 forms, such as
// a numeric zone offset in place of "GMT", are not accepted.
func parseHTTPDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := http.ParseTime(value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// rawServerDate returns the response's Date header, parsed, or
// responseTime if the header is absent or unparseable. Clock-drift
// clamping is deliberately not implemented; see SPEC_FULL.md.
func (p *CachePolicy) rawServerDate() time.Time {
	if t, ok := parseHTTPDate(p.resHeader.Get("date")); ok {
		return t
	}
	return p.responseTime
}

// ageHeaderValue returns the Age header's value, or 0 if absent or
// unparseable.
func (p *CachePolicy) ageHeaderValue() time.Duration {
	v := strings.TrimSpace(p.resHeader.Get("age"))
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

// Age returns how old the cached response is at the instant now, per
// RFC 7234 4.2.3: the Age header value plus however much time has elapsed
// at the cache since the response was received. It is monotonically
// non-decreasing in now for now >= responseTime.
func (p *CachePolicy) Age(now time.Time) time.Duration {
	age := p.ageHeaderValue()
	if resident := now.Sub(p.responseTime); resident > 0 {
		age += resident
	}
	return age
}

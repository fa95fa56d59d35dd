package cachesemantics

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// directives is a parsed Cache-Control header: directive name (lowercased)
// to an optional value. A nil value means the directive carries no value
// (e.g. "no-cache"); insertion order is irrelevant.
type directives map[string]*string

// has reports whether the directive is present, regardless of value.
func (d directives) has(name string) bool {
	_, ok := d[name]
	return ok
}

// value returns the (unquoted) value of a directive, or "" if it is absent
// or has no value.
func (d directives) value(name string) string {
	v, ok := d[name]
	if !ok || v == nil {
		return ""
	}
	return *v
}

// seconds returns the integer-seconds value of a directive, or 0 if the
// directive is absent or its value doesn't parse as a non-negative integer.
func (d directives) seconds(name string) int64 {
	v, ok := d[name]
	if !ok || v == nil {
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(*v), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseDirectives folds every comma-separated token of every value of a
// repeated header (e.g. all "Cache-Control" lines) into one directive map.
// A directive that reappears with a different value is "invalid" per
// RFC 7234 4.2.1; this implementation reacts to that the same way the
// origin project does: it forces revalidation by synthesizing an implicit
// must-revalidate directive rather than rejecting the header outright.
func parseDirectives(h http.Header, name string) directives {
	cc := directives{}
	conflict := false

	for _, raw := range h.Values(name) {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			key, val, hasVal := strings.Cut(part, "=")
			key = strings.ToLower(strings.TrimSpace(key))
			if key == "" {
				continue
			}

			var valPtr *string
			if hasVal {
				v := unquote(strings.TrimSpace(val))
				valPtr = &v
			}

			if existing, ok := cc[key]; ok {
				if !samePtr(existing, valPtr) {
					conflict = true
				}
				continue
			}
			cc[key] = valPtr
		}
	}

	if conflict {
		logger().Debug("conflicting cache-control directive values, forcing revalidation")
		cc["must-revalidate"] = nil
	}
	return cc
}

// samePtr compares two optional directive values for equality.
func samePtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// unquote strips one pair of surrounding ASCII double quotes, if present.
func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}

// formatDirectives is the inverse of parseDirectives: it renders a
// directive map back into a single Cache-Control header value. A value is
// quoted if it is empty or contains any non-alphanumeric ASCII byte.
func formatDirectives(cc directives) string {
	var b strings.Builder
	for k, v := range cc {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		if v != nil {
			b.WriteByte('=')
			if needsQuote(*v) {
				b.WriteByte('"')
				b.WriteString(*v)
				b.WriteByte('"')
			} else {
				b.WriteString(*v)
			}
		}
	}
	return b.String()
}

func needsQuote(v string) bool {
	if v == "" {
		return true
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		alnum := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !alnum {
			return true
		}
	}
	return false
}

var pkgLogger = struct {
	l *slog.Logger
}{}

// logger returns the package logger, defaulting to slog.Default.
func logger() *slog.Logger {
	if pkgLogger.l != nil {
		return pkgLogger.l
	}
	return slog.Default()
}

// SetLogger installs a custom *slog.Logger used for the package's
// diagnostic (non-error) logging, such as noting conflicting directives or
// an ignore-cargo-cult rewrite. If never called, slog.Default() is used.
func SetLogger(l *slog.Logger) {
	pkgLogger.l = l
}

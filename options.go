package cachesemantics

import "time"

// Options configures how a CachePolicy evaluates storability and
// freshness. The zero value is not directly usable; build one with
// NewOptions, which applies the RFC 7234 defaults before the supplied
// Option values are applied.
type Options struct {
	// Shared, when true, evaluates the policy as a shared cache (proxy,
	// CDN): "private" responses are not storable and "s-maxage" applies.
	// When false, the policy evaluates as a private cache: "private" is
	// storable and "s-maxage" is ignored. Default true.
	Shared bool

	// CacheHeuristic is the fraction of (response Date - Last-Modified)
	// used as the freshness lifetime when the response carries no
	// explicit freshness information. Default 0.1 (10%, matching
	// historical IE behavior).
	CacheHeuristic float64

	// ImmutableMinTimeToLive is the minimum freshness lifetime granted to
	// a response carrying the "immutable" directive. An explicit max-age
	// still overrides it. Default 24h.
	ImmutableMinTimeToLive time.Duration

	// IgnoreCargoCult, when true, and the response carries both
	// "pre-check" and "post-check" directives, drops "pre-check",
	// "post-check", "no-cache", "must-revalidate" (and "no-store", per
	// spec) from the stored response's Cache-Control, and removes its
	// Expires and Pragma headers entirely. Default false.
	IgnoreCargoCult bool
}

// Option mutates an Options value under construction.
type Option func(*Options)

// WithShared sets whether the policy evaluates as a shared cache.
func WithShared(shared bool) Option {
	return func(o *Options) { o.Shared = shared }
}

// WithCacheHeuristic sets the heuristic freshness fraction.
func WithCacheHeuristic(fraction float64) Option {
	return func(o *Options) { o.CacheHeuristic = fraction }
}

// WithImmutableMinTimeToLive sets the minimum TTL granted to immutable
// responses.
func WithImmutableMinTimeToLive(d time.Duration) Option {
	return func(o *Options) { o.ImmutableMinTimeToLive = d }
}

// WithIgnoreCargoCult enables the pre-check/post-check cargo-cult rewrite.
func WithIgnoreCargoCult(ignore bool) Option {
	return func(o *Options) { o.IgnoreCargoCult = ignore }
}

// NewOptions builds an Options value from the RFC 7234 defaults plus any
// supplied Option overrides.
func NewOptions(opts ...Option) Options {
	o := Options{
		Shared:                 true,
		CacheHeuristic:         0.1,
		ImmutableMinTimeToLive: 24 * time.Hour,
		IgnoreCargoCult:        false,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

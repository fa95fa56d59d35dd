// Package cachesemantics decides, for a given HTTP request/response pair,
// whether the response may be cached, whether a cached response can still be
// served to a later request, and how to revalidate or merge a 304 response
// into a stored entry. It implements the caching rules of RFC 7234 for both
// shared caches (proxies, CDNs) and private caches (user agents).
//
// The package performs no I/O and owns no storage: callers supply the
// request/response views, the clock readings, and (if they want
// persistence) a store.Store from the store subpackages. CachePolicy values
// are immutable after construction; AfterResponse returns a new one rather
// than mutating the receiver, so a policy can be shared across readers
// without synchronization.
package cachesemantics

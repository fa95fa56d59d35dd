// Package clock provides a convenience wall-clock collaborator for callers
// of cachesemantics, which itself takes every "now" as an explicit argument
// to stay a pure function.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by time.Now.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time { return time.Now() }

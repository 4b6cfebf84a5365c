package service

import "time"

// Clock returns the current time. Tests inject a fixed clock; nil means
// time.Now.
type Clock func() time.Time

// now is truncated to milliseconds, the resolution every store keeps.
func (c Clock) now() time.Time {
	t := time.Now()
	if c != nil {
		t = c()
	}
	return t.UTC().Truncate(time.Millisecond)
}

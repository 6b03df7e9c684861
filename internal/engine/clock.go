package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The Generator reads it to pick the feed years and to spot birthdays today.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant. The command line uses it to
// build the feed of a chosen year.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.T
}

// YearClock returns a clock set to January 1st of year, in the local zone.
func YearClock(year int) FixedClock {
	return FixedClock{T: time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)}
}

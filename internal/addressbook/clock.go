package addressbook

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// Callers use it to decide what "today" is for birthday projections.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Package clock provides the current time behind an interface so date-dependent
// behaviour ("today", "yesterday") can be pinned in tests.
package clock

import "time"

var (
	_ Clock = (*System)(nil)
	_ Clock = (*Fixed)(nil)
)

// Clock is the source of the current time.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in a fixed location.
type System struct {
	tz *time.Location
}

// NewSystem returns a wall clock in loc. A nil loc means time.Local.
func NewSystem(loc *time.Location) *System {
	if loc == nil {
		loc = time.Local
	}
	return &System{tz: loc}
}

// Now provides current clock time.
func (c *System) Now() time.Time {
	return time.Now().In(c.tz)
}

// Fixed always returns the same instant.
type Fixed struct {
	T time.Time
}

// NewFixed returns a clock frozen at t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{T: t}
}

// Now returns the frozen instant.
func (c *Fixed) Now() time.Time {
	return c.T
}

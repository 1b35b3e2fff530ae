// Package system implements harvest.Clock on the wall clock.
package system

import "time"

// Clock reads the current time from the system clock. Run timestamps,
// statistics rows, and archive object names all derive from it, so
// everything the harvester records is UTC.
type Clock struct{}

// New returns a Clock.
func New() *Clock {
	return &Clock{}
}

// Now reports the current time in UTC.
func (Clock) Now() time.Time {
	return time.Now().UTC()
}

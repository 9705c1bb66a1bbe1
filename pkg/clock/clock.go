package clock

import "time"

// Clock is the time source used by every component that makes time-based
// decisions (hold expiry, grace periods, reminder due checks). Injecting it
// lets tests drive "now" instead of sleeping.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// NewReal returns a Clock backed by the wall clock, in UTC.
func NewReal() Clock {
	return realClock{}
}

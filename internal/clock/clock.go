package clock

import "time"

// Clock abstracts wall-clock reads so availability math can be tested against
// fixed instants (late-night rollover, past filtering, midnight boundaries).
type Clock interface {
	Now(loc *time.Location) time.Time
}

type systemClock struct{}

func (systemClock) Now(loc *time.Location) time.Time {
	return time.Now().In(loc)
}

// System returns the real wall clock.
func System() Clock {
	return systemClock{}
}

// Fixed returns a clock frozen at t, for tests.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now(loc *time.Location) time.Time {
	return f.t.In(loc)
}

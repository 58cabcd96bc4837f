// Package clock supplies the current time to the toolkit.
//
// The host clock is read fresh on every call; nothing is cached.
// Applications that need deterministic results, such as tests or
// reproducible scripts, install a Fixed clock instead.
package clock // import "go.chrono.dev/clock"

import "time"

// A Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// Func adapts an ordinary function to the Clock interface.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// Host is the operating system's real-time clock.
var Host Clock = hostClock{}

type hostClock struct{}

func (hostClock) Now() time.Time { return now() }

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return Func(func() time.Time { return t })
}

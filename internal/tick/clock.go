// Package tick implements the control-thread tick driver (§4.8): on each
// tick it advances every pattern sequence, translates the resulting
// event into a trigger record, and computes a drift-corrected sleep
// until the next tick using an injectable host clock.
package tick

import "time"

// Clock abstracts the host's wall-clock millisecond timer (§9(a) Open
// Question: the host timer ABI is out of scope, so this interface
// stands in for it; the real embedding environment's
// performance.now()-equivalent implements it).
type Clock interface {
	NowMS() float64
}

// SystemClock is a Clock backed by the Go runtime's monotonic clock.
type SystemClock struct{ start time.Time }

// NewSystemClock creates a SystemClock whose NowMS is relative to the
// moment it was created.
func NewSystemClock() SystemClock {
	return SystemClock{start: time.Now()}
}

// NowMS returns milliseconds elapsed since the clock was created.
func (c SystemClock) NowMS() float64 {
	return float64(time.Since(c.start).Microseconds()) / 1000.0
}

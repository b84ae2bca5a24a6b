package hostio

import "time"

// MonotonicClock is a thin time.Now()-based microsecond timebase,
// satisfying machine.Clock.
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock starts the clock at construction time.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// NowUs satisfies machine.Clock.
func (c *MonotonicClock) NowUs() uint32 {
	return uint32(time.Since(c.start).Microseconds())
}

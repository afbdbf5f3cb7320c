package trace

import "time"

// Clock supplies record timestamps and the timing calibration constant
// written into the metadata prefix. Implementations must be safe for
// concurrent use and must not block.
type Clock interface {
	// Now returns the current time in ticks. Consumers order records by
	// this value, not by buffer position.
	Now() uint64
	// TicksPerMS returns the tick rate, recorded once at initialization.
	TicksPerMS() uint64
}

type monotonicClock struct {
	base time.Time
}

// NewMonotonicClock returns a Clock ticking in nanoseconds since
// construction, using the runtime's monotonic reading.
func NewMonotonicClock() Clock {
	return &monotonicClock{base: time.Now()}
}

func (c *monotonicClock) Now() uint64 {
	return uint64(time.Since(c.base))
}

func (c *monotonicClock) TicksPerMS() uint64 {
	return uint64(time.Millisecond / time.Nanosecond)
}

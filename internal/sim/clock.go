package sim

import "time"

// FrameClock measures elapsed seconds between frames. Readings come from
// the monotonic clock so dt is never negative.
type FrameClock struct {
	now  func() time.Time
	last time.Time
	// MaxDt caps a single reading, e.g. after the window was dragged.
	// Zero means no cap.
	MaxDt float64
}

func NewFrameClock() *FrameClock {
	return newFrameClock(time.Now)
}

func newFrameClock(now func() time.Time) *FrameClock {
	return &FrameClock{now: now, last: now()}
}

// Tick returns the seconds since the previous Tick (or construction).
func (c *FrameClock) Tick() float64 {
	t := c.now()
	dt := t.Sub(c.last).Seconds()
	c.last = t
	if dt < 0 {
		dt = 0
	}
	if c.MaxDt > 0 && dt > c.MaxDt {
		dt = c.MaxDt
	}
	return dt
}

// Reset makes the next Tick measure from now.
func (c *FrameClock) Reset() {
	c.last = c.now()
}

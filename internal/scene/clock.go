package scene

import "time"

// MaxDelta bounds the per-tick delta so a stalled host does not produce a
// single huge step.
const MaxDelta = 0.25

// Clock is a monotonic frame clock. The first Tick returns a zero delta.
type Clock struct {
	now     func() time.Time
	start   time.Time
	last    time.Time
	elapsed float64
	started bool
}

// NewClock returns a clock reading time.Now. A nil now is replaced by
// time.Now as well.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Tick returns the clamped delta since the previous call and the elapsed
// seconds since the first call.
func (c *Clock) Tick() (delta, elapsed float64) {
	t := c.now()
	if !c.started {
		c.start, c.last, c.started = t, t, true
		return 0, 0
	}
	delta = t.Sub(c.last).Seconds()
	c.last = t
	if delta < 0 {
		delta = 0
	}
	if delta > MaxDelta {
		delta = MaxDelta
	}
	// Elapsed follows wall time, clamped to never run backwards.
	if e := t.Sub(c.start).Seconds(); e > c.elapsed {
		c.elapsed = e
	}
	return delta, c.elapsed
}

// Elapsed returns the elapsed seconds as of the last Tick.
func (c *Clock) Elapsed() float64 { return c.elapsed }

// LastMs returns the time of the last Tick in Unix milliseconds.
func (c *Clock) LastMs() int64 { return c.last.UnixMilli() }

// Reset makes the next Tick behave like the first one.
func (c *Clock) Reset() {
	c.started = false
	c.elapsed = 0
}

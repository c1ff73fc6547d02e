package app

import "time"

// Clock tracks frame delta time and a once-per-second FPS average.
type Clock struct {
	Time time.Time
	Dt   time.Duration
	FPS  float64

	frames  int
	fpsTime time.Duration
}

// Tick advances to now. The first tick only records the time.
func (c *Clock) Tick(now time.Time) {
	if c.Time.IsZero() {
		c.Time = now
		c.Dt = 0
		return
	}
	c.Dt = now.Sub(c.Time)
	if c.Dt < 0 {
		c.Dt = 0
	}
	c.Time = now

	c.frames++
	c.fpsTime += c.Dt
	if c.fpsTime >= time.Second {
		c.FPS = float64(c.frames) / c.fpsTime.Seconds()
		c.frames = 0
		c.fpsTime = 0
	}
}

// Seconds is Dt as float32 seconds.
func (c *Clock) Seconds() float32 {
	return float32(c.Dt.Seconds())
}

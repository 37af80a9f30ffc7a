package physics

// Clock turns absolute timestamps (e.g. milliseconds since start) into step deltas,
// multiplied by a time scale. The zero value is ready to use with scale 1.
type Clock struct {
	last    float64
	started bool
	scale   float64
}

// Advance records now and returns the scaled time elapsed since the previous call.
// The first call returns 0, as does a timestamp earlier than the previous one.
func (c *Clock) Advance(now float64) float64 {
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	dt := now - c.last
	c.last = now
	if dt < 0 {
		return 0
	}
	return dt * c.Scale()
}

// Scale returns the time scale applied by Advance.
func (c *Clock) Scale() float64 {
	if c.scale == 0 {
		return 1
	}
	return c.scale
}

// SetScale sets the simulated time per elapsed time. The caller validates s.
func (c *Clock) SetScale(s float64) {
	c.scale = s
}

// Reset forgets the last timestamp so the next Advance returns 0. The scale is kept.
func (c *Clock) Reset() {
	c.started = false
	c.last = 0
}

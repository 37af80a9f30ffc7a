package physics

// Marble is a circular body with position, velocity and radius.
// All marbles have the same mass; fixed marbles are stored separately by the World
// and never move.
type Marble struct {
	Radius   float64
	Position Vec2
	Velocity Vec2
}

// NewMarble returns a marble at position with the given velocity and radius.
func NewMarble(position, velocity Vec2, radius float64) Marble {
	return Marble{Radius: radius, Position: position, Velocity: velocity}
}

// Step moves the marble by velocity*dt and bounces it off the walls of a
// width x height arena. On each axis, a marble past the wall and still moving
// outwards is clamped to the wall and its velocity on that axis is mirrored.
// A marble moving inwards is left alone so it does not flip twice at the wall.
func (m *Marble) Step(dt, width, height float64) {
	dim := Vec2{width, height}
	for i := 0; i < 2; i++ {
		p := m.Position.axis(i) + m.Velocity.axis(i)*dt
		v := m.Velocity.axis(i)
		if hi := dim.axis(i) - m.Radius; p > hi && v > 0 {
			p, v = hi, -v
		}
		if p < m.Radius && v < 0 {
			p, v = m.Radius, -v
		}
		m.Position.setAxis(i, p)
		m.Velocity.setAxis(i, v)
	}
}

// CheckCollision resolves a collision between two mobile marbles by exchanging the
// velocity components along the line of centers. Marbles that do not touch, or that
// are already separating along that line, are left unchanged. Positions are never
// corrected; overlap disappears over the following steps.
func CheckCollision(a, b *Marble) {
	dec, ok := Decompose(a, b)
	if !ok {
		return
	}
	if dec.Parallel[1] > dec.Parallel[0] {
		return
	}
	dec.Parallel[0], dec.Parallel[1] = dec.Parallel[1], dec.Parallel[0]
	a.Velocity = dec.Restore(0)
	b.Velocity = dec.Restore(1)
}

// CheckCollisionFixed bounces m off the immovable marble fixed: if m is moving
// towards fixed along the line of centers, that component is negated. fixed is
// never modified.
func CheckCollisionFixed(m *Marble, fixed *Marble) {
	dec, ok := Decompose(m, fixed)
	if !ok {
		return
	}
	if dec.Parallel[0] > 0 {
		dec.Parallel[0] = -dec.Parallel[0]
		m.Velocity = dec.Restore(0)
	}
}

// kineticEnergy returns |v|²/2 for a unit-mass marble.
func (m *Marble) kineticEnergy() float64 {
	return 0.5 * Dot(m.Velocity, m.Velocity)
}

package physics

// Vec2 is a 2D vector in arena coordinates (x to the right, y down).
type Vec2 struct {
	X, Y float64
}

// Dot returns the dot product of a and b.
func Dot(a, b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Perp returns v rotated by 90 degrees: (y, -x).
func (v Vec2) Perp() Vec2 {
	return Vec2{v.Y, -v.X}
}

// axis returns the component of v on axis 0 (x) or 1 (y).
func (v Vec2) axis(i int) float64 {
	if i == 0 {
		return v.X
	}
	return v.Y
}

// setAxis sets the component of v on axis 0 (x) or 1 (y).
func (v *Vec2) setAxis(i int, value float64) {
	if i == 0 {
		v.X = value
		return
	}
	v.Y = value
}

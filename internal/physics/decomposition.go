package physics

import "math"

// Decomposition writes the velocities of two marbles as linear combinations of the
// center-to-center vector D and its orthogonal O. Swapping the parallel coefficients
// gives an equal-mass elastic collision; negating one gives a bounce off a fixed marble.
// Index 0 refers to the first marble passed to Decompose, index 1 to the second.
type Decomposition struct {
	D        Vec2       // from first center to second center
	O        Vec2       // D rotated by 90 degrees
	Parallel [2]float64 // coefficients along D
	Orth     [2]float64 // coefficients along O
}

// Decompose returns the decomposition for a and b, or ok == false when the marbles do
// not touch (center distance greater than the sum of radii) or when there is no
// usable collision axis: coincident centers or a non-finite distance.
func Decompose(a, b *Marble) (dec Decomposition, ok bool) {
	d := b.Position.Sub(a.Position)
	distSq := Dot(d, d)
	if !(distSq > 0) || math.IsInf(distSq, 0) {
		return Decomposition{}, false
	}
	minDist := a.Radius + b.Radius
	if distSq > minDist*minDist {
		return Decomposition{}, false
	}
	o := d.Perp()
	// |o|² == |d|², but keep the two normalisations separate.
	orthSq := Dot(o, o)
	return Decomposition{
		D:        d,
		O:        o,
		Parallel: [2]float64{Dot(d, a.Velocity) / distSq, Dot(d, b.Velocity) / distSq},
		Orth:     [2]float64{Dot(o, a.Velocity) / orthSq, Dot(o, b.Velocity) / orthSq},
	}, true
}

// Restore recomputes the Cartesian velocity of marble idx from its coefficients.
func (dec *Decomposition) Restore(idx int) Vec2 {
	return dec.D.Scale(dec.Parallel[idx]).Add(dec.O.Scale(dec.Orth[idx]))
}

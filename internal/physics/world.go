package physics

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// DrawFunc receives the truncated center, radius and colour of one marble.
// Returning an error stops World.Draw.
type DrawFunc func(x, y, radius int, c Color) error

// World holds the mobile marbles and the fixed marbles of a rectangular arena.
// A World is not safe for concurrent use; Step, Draw and Resize must be serialised
// by the caller.
type World struct {
	width  float64
	height float64
	opts   Options
	// Mobile marbles in insertion order. Pair resolution follows this order.
	mobile []Marble
	// Fixed larger marbles.
	fixed []Marble
}

// NewWorld returns a width x height arena populated according to opts. Every marble
// is placed uniformly at random with its whole disk inside the arena; overlaps are
// not avoided and resolve themselves over the first steps.
func NewWorld(width, height float64, opts Options) (*World, error) {
	if !positive(width) || !positive(height) {
		return nil, fmt.Errorf("physics: new world %vx%v: %w", width, height, ErrInvalidDimension)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	for _, r := range []struct {
		count  int
		radius float64
	}{{opts.MobileCount, opts.MobileRadius}, {opts.FixedCount, opts.FixedRadius}} {
		if r.count > 0 && (width < 2*r.radius || height < 2*r.radius) {
			return nil, fmt.Errorf("physics: %vx%v arena cannot hold radius %v: %w",
				width, height, r.radius, ErrInvalidDimension)
		}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	w := &World{
		width:  width,
		height: height,
		opts:   opts,
		mobile: make([]Marble, 0, opts.MobileCount),
		fixed:  make([]Marble, 0, opts.FixedCount),
	}
	for i := 0; i < opts.MobileCount; i++ {
		w.mobile = append(w.mobile, randomMarble(rng, opts.MobileRadius, opts.MaxSpeed, width, height))
	}
	for i := 0; i < opts.FixedCount; i++ {
		w.fixed = append(w.fixed, randomMarble(rng, opts.FixedRadius, opts.MaxSpeed, width, height))
	}
	return w, nil
}

// randomMarble places a marble uniformly in [r, dim-r] on each axis with each
// velocity component uniform in [-maxSpeed, maxSpeed].
func randomMarble(rng *rand.Rand, radius, maxSpeed, width, height float64) Marble {
	return Marble{
		Radius: radius,
		Position: Vec2{
			X: (width-2*radius)*rng.Float64() + radius,
			Y: (height-2*radius)*rng.Float64() + radius,
		},
		Velocity: Vec2{
			X: 2*maxSpeed*rng.Float64() - maxSpeed,
			Y: 2*maxSpeed*rng.Float64() - maxSpeed,
		},
	}
}

// AddMobile appends a mobile marble. It takes part in pair resolution after all
// marbles added before it.
func (w *World) AddMobile(m Marble) error {
	if err := checkMarble(m); err != nil {
		return err
	}
	w.mobile = append(w.mobile, m)
	return nil
}

// AddFixed appends a fixed marble. Its velocity is kept but never applied.
func (w *World) AddFixed(m Marble) error {
	if err := checkMarble(m); err != nil {
		return err
	}
	w.fixed = append(w.fixed, m)
	return nil
}

func checkMarble(m Marble) error {
	if !positive(m.Radius) {
		return ErrInvalidRadius
	}
	if !finite(m.Position) || !finite(m.Velocity) {
		return fmt.Errorf("position %v velocity %v: %w", m.Position, m.Velocity, ErrInvalidMarble)
	}
	return nil
}

// Mobile returns a copy of the mobile marbles.
func (w *World) Mobile() []Marble {
	return append([]Marble(nil), w.mobile...)
}

// Fixed returns a copy of the fixed marbles.
func (w *World) Fixed() []Marble {
	return append([]Marble(nil), w.fixed...)
}

// Counts returns the number of mobile and fixed marbles.
func (w *World) Counts() (mobile, fixed int) {
	return len(w.mobile), len(w.fixed)
}

// Bounds returns the arena width and height.
func (w *World) Bounds() (width, height float64) {
	return w.width, w.height
}

// Step advances the simulation by dt. If dt exceeds the substep threshold it is
// divided by the split factor, repeatedly, and the resulting small step is run
// split^k times, which is the same sequence of steps as splitting recursively. At
// most MaxSubstepDepth divisions are made.
// NaN and negative deltas are ignored; deltas above the configured maximum are clamped.
func (w *World) Step(dt float64) {
	if math.IsNaN(dt) || dt < 0 {
		return
	}
	if limit := w.opts.maxDelta(); dt > limit {
		dt = limit
	}
	n := 1
	for depth := 0; depth < w.opts.MaxSubstepDepth && dt > w.opts.SubstepThreshold; depth++ {
		dt /= float64(w.opts.SubstepSplit)
		n *= w.opts.SubstepSplit
	}
	for ; n > 0; n-- {
		w.step(dt)
	}
}

// StepTo advances the simulation to the timestamp now as measured by c.
func (w *World) StepTo(c *Clock, now float64) {
	w.Step(c.Advance(now))
}

// step moves every mobile marble and bounces it off walls and fixed marbles, then
// resolves every mobile pair (j, i) with j < i in ascending order of i.
func (w *World) step(dt float64) {
	for i := range w.mobile {
		m := &w.mobile[i]
		m.Step(dt, w.width, w.height)
		for j := range w.fixed {
			CheckCollisionFixed(m, &w.fixed[j])
		}
	}
	for i := 1; i < len(w.mobile); i++ {
		for j := 0; j < i; j++ {
			CheckCollision(&w.mobile[j], &w.mobile[i])
		}
	}
}

// Draw calls fn for every mobile marble and then for every fixed marble. The first
// error returned by fn is returned unchanged and the remaining marbles are skipped.
func (w *World) Draw(fn DrawFunc) error {
	for i := range w.mobile {
		m := &w.mobile[i]
		if err := fn(int(m.Position.X), int(m.Position.Y), int(m.Radius), w.opts.MobileColor); err != nil {
			return err
		}
	}
	for i := range w.fixed {
		f := &w.fixed[i]
		if err := fn(int(f.Position.X), int(f.Position.Y), int(f.Radius), w.opts.FixedColor); err != nil {
			return err
		}
	}
	return nil
}

// Resize changes the arena bounds. Marbles are not moved; one left outside is
// brought back by its next wall bounce.
func (w *World) Resize(width, height float64) error {
	if !positive(width) || !positive(height) {
		return fmt.Errorf("physics: resize to %vx%v: %w", width, height, ErrInvalidDimension)
	}
	w.width, w.height = width, height
	return nil
}

// KineticEnergy returns the total kinetic energy of the mobile marbles, taking
// every marble as unit mass.
func (w *World) KineticEnergy() float64 {
	var e float64
	for i := range w.mobile {
		e += w.mobile[i].kineticEnergy()
	}
	return e
}

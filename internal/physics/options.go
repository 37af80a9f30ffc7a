package physics

import (
	"errors"
	"fmt"
	"math"
)

// maxSubsteps bounds split^MaxSubstepDepth, the number of steps one Step may run.
const maxSubsteps = 1 << 20

// Errors returned by NewWorld, AddMobile, AddFixed and Resize.
var (
	ErrInvalidDimension = errors.New("physics: arena dimensions must be positive")
	ErrInvalidRadius    = errors.New("physics: radius must be positive")
	ErrInvalidCount     = errors.New("physics: marble count must not be negative")
	ErrInvalidSpeed     = errors.New("physics: max speed must be finite and not negative")
	ErrInvalidSubstep   = errors.New("physics: invalid substep policy")
	ErrInvalidMarble    = errors.New("physics: marble position and velocity must be finite")
)

// Color is an 8-bit RGB colour reported for each marble by World.Draw.
type Color [3]uint8

// Options controls how a World is populated and how large time deltas are split.
// Seed == 0 uses a time-based seed.
type Options struct {
	MobileCount  int
	MobileRadius float64
	MobileColor  Color

	FixedCount  int
	FixedRadius float64
	FixedColor  Color

	// MaxSpeed bounds each initial velocity component to [-MaxSpeed, MaxSpeed].
	MaxSpeed float64

	// A Step with dt > SubstepThreshold is split into SubstepSplit equal steps,
	// recursively, until each step is at most SubstepThreshold. At most
	// MaxSubstepDepth levels are used; larger deltas are clamped.
	SubstepThreshold float64
	SubstepSplit     int
	MaxSubstepDepth  int

	Seed int64
}

// DefaultOptions returns 25 red marbles of radius 10, 5 black fixed marbles of
// radius 50, initial speeds up to 0.25 per axis and a 100/10 substep policy.
func DefaultOptions() Options {
	return Options{
		MobileCount:      25,
		MobileRadius:     10,
		MobileColor:      Color{200, 0, 0},
		FixedCount:       5,
		FixedRadius:      50,
		FixedColor:       Color{0, 0, 0},
		MaxSpeed:         0.25,
		SubstepThreshold: 100,
		SubstepSplit:     10,
		MaxSubstepDepth:  4,
	}
}

// Validate reports the first invalid field of o.
func (o Options) Validate() error {
	if o.MobileCount < 0 || o.FixedCount < 0 {
		return ErrInvalidCount
	}
	if !positive(o.MobileRadius) || !positive(o.FixedRadius) {
		return ErrInvalidRadius
	}
	if o.MaxSpeed < 0 || math.IsNaN(o.MaxSpeed) || math.IsInf(o.MaxSpeed, 0) {
		return ErrInvalidSpeed
	}
	if !positive(o.SubstepThreshold) || o.SubstepSplit < 2 || o.MaxSubstepDepth < 0 {
		return fmt.Errorf("threshold %v, split %d, depth %d: %w",
			o.SubstepThreshold, o.SubstepSplit, o.MaxSubstepDepth, ErrInvalidSubstep)
	}
	if o.substeps() > maxSubsteps || math.IsInf(o.maxDelta(), 0) {
		return fmt.Errorf("split %d to depth %d exceeds %d steps per Step: %w",
			o.SubstepSplit, o.MaxSubstepDepth, maxSubsteps, ErrInvalidSubstep)
	}
	return nil
}

// substeps returns split^depth, stopping as soon as it passes maxSubsteps so the
// product never overflows.
func (o Options) substeps() int {
	n := 1
	for i := 0; i < o.MaxSubstepDepth; i++ {
		if n > maxSubsteps/o.SubstepSplit {
			return maxSubsteps + 1
		}
		n *= o.SubstepSplit
	}
	return n
}

// maxDelta is the largest dt a single Step will simulate.
func (o Options) maxDelta() float64 {
	return o.SubstepThreshold * math.Pow(float64(o.SubstepSplit), float64(o.MaxSubstepDepth))
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func finite(v Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarble_StepMoves(t *testing.T) {
	m := NewMarble(Vec2{50, 50}, Vec2{0.5, -0.25}, 10)
	m.Step(10, 100, 100)
	assert.Equal(t, Vec2{55, 47.5}, m.Position)
	assert.Equal(t, Vec2{0.5, -0.25}, m.Velocity)
}

func TestMarble_StepBouncesOffWalls(t *testing.T) {
	tests := []struct {
		name    string
		pos     Vec2
		vel     Vec2
		wantPos Vec2
		wantVel Vec2
	}{
		{"right", Vec2{85, 50}, Vec2{1, 0}, Vec2{90, 50}, Vec2{-1, 0}},
		{"left", Vec2{15, 50}, Vec2{-1, 0}, Vec2{10, 50}, Vec2{1, 0}},
		{"bottom", Vec2{50, 75}, Vec2{0, 0.5}, Vec2{50, 70}, Vec2{0, -0.5}},
		{"top", Vec2{50, 12}, Vec2{0.25, -0.5}, Vec2{52.5, 10}, Vec2{0.25, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMarble(tt.pos, tt.vel, 10)
			m.Step(10, 100, 80)
			assert.Equal(t, tt.wantPos, m.Position)
			assert.Equal(t, tt.wantVel, m.Velocity)
			assert.Equal(t, math.Abs(tt.vel.X), math.Abs(m.Velocity.X))
			assert.Equal(t, math.Abs(tt.vel.Y), math.Abs(m.Velocity.Y))
		})
	}
}

func TestMarble_StepAtWallMovingInwardsDoesNotFlip(t *testing.T) {
	m := NewMarble(Vec2{90, 50}, Vec2{-0.5, 0}, 10)
	m.Step(0, 100, 100)
	assert.Equal(t, Vec2{90, 50}, m.Position)
	assert.Equal(t, Vec2{-0.5, 0}, m.Velocity)

	// Outside after a shrink, but already heading back: no clamp.
	m = NewMarble(Vec2{150, 50}, Vec2{-0.5, 0}, 10)
	m.Step(2, 100, 100)
	assert.Equal(t, Vec2{149, 50}, m.Position)
	assert.Equal(t, Vec2{-0.5, 0}, m.Velocity)
}

func TestCheckCollision_HeadOnExchange(t *testing.T) {
	const s = 0.25
	a := NewMarble(Vec2{100, 100}, Vec2{s, 0}, 10)
	b := NewMarble(Vec2{119, 100}, Vec2{-s, 0}, 10)

	CheckCollision(&a, &b)

	assert.InDelta(t, -s, a.Velocity.X, 1e-12)
	assert.InDelta(t, 0, a.Velocity.Y, 1e-12)
	assert.InDelta(t, s, b.Velocity.X, 1e-12)
	assert.InDelta(t, 0, b.Velocity.Y, 1e-12)
	assert.Equal(t, Vec2{100, 100}, a.Position)
	assert.Equal(t, Vec2{119, 100}, b.Position)
}

func TestCheckCollision_ObliqueKeepsOrthogonalPart(t *testing.T) {
	// Line of centers along x; only the x components are exchanged.
	a := NewMarble(Vec2{0, 0}, Vec2{0.2, 0.1}, 10)
	b := NewMarble(Vec2{15, 0}, Vec2{-0.1, -0.3}, 10)

	CheckCollision(&a, &b)

	assert.InDelta(t, -0.1, a.Velocity.X, 1e-12)
	assert.InDelta(t, 0.1, a.Velocity.Y, 1e-12)
	assert.InDelta(t, 0.2, b.Velocity.X, 1e-12)
	assert.InDelta(t, -0.3, b.Velocity.Y, 1e-12)
}

func TestCheckCollision_SeparatingPairUntouched(t *testing.T) {
	a := NewMarble(Vec2{100, 100}, Vec2{-0.1, 0.05}, 10)
	b := NewMarble(Vec2{115, 100}, Vec2{0.1, 0.2}, 10)

	CheckCollision(&a, &b)

	assert.Equal(t, Vec2{-0.1, 0.05}, a.Velocity)
	assert.Equal(t, Vec2{0.1, 0.2}, b.Velocity)
}

func TestCheckCollision_NoContactUntouched(t *testing.T) {
	a := NewMarble(Vec2{0, 0}, Vec2{1, 0}, 10)
	b := NewMarble(Vec2{30, 0}, Vec2{-1, 0}, 10)

	CheckCollision(&a, &b)

	assert.Equal(t, Vec2{1, 0}, a.Velocity)
	assert.Equal(t, Vec2{-1, 0}, b.Velocity)
}

func TestCheckCollision_ConservesEnergy(t *testing.T) {
	a := NewMarble(Vec2{10, 10}, Vec2{0.3, 0.1}, 10)
	b := NewMarble(Vec2{22, 21}, Vec2{-0.2, -0.15}, 10)
	before := a.kineticEnergy() + b.kineticEnergy()

	CheckCollision(&a, &b)

	assert.InDelta(t, before, a.kineticEnergy()+b.kineticEnergy(), 1e-12)
}

func TestCheckCollisionFixed_Bounce(t *testing.T) {
	m := NewMarble(Vec2{100, 100}, Vec2{0.2, 0}, 10)
	fixed := NewMarble(Vec2{155, 100}, Vec2{}, 50)
	before := fixed

	CheckCollisionFixed(&m, &fixed)

	assert.InDelta(t, -0.2, m.Velocity.X, 1e-12)
	assert.InDelta(t, 0, m.Velocity.Y, 1e-12)
	assert.Equal(t, before, fixed)
}

func TestCheckCollisionFixed_MovingAwayUntouched(t *testing.T) {
	m := NewMarble(Vec2{100, 100}, Vec2{-0.2, 0.1}, 10)
	fixed := NewMarble(Vec2{155, 100}, Vec2{}, 50)

	CheckCollisionFixed(&m, &fixed)

	assert.Equal(t, Vec2{-0.2, 0.1}, m.Velocity)
}

func TestCheckCollisionFixed_NoContactUntouched(t *testing.T) {
	m := NewMarble(Vec2{100, 100}, Vec2{0.2, 0}, 10)
	fixed := NewMarble(Vec2{161, 100}, Vec2{}, 50)

	CheckCollisionFixed(&m, &fixed)

	assert.Equal(t, Vec2{0.2, 0}, m.Velocity)
}

package sim

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"marbles/internal/commands"
	"marbles/internal/engineconfig"
	"marbles/internal/logger"
	"marbles/internal/physics"
)

const maxTimeScale = 100

// ErrInvalidTimeScale is returned by SetTimeScale for a scale outside (0, 100].
var ErrInvalidTimeScale = errors.New("sim: time scale must be in (0, 100]")

// Overlay is the part of the debug overlay the console can toggle.
type Overlay interface {
	SetShowFPS(show bool)
}

// Snapshot is a summary of the simulation for the stats overlay.
type Snapshot struct {
	Mobile    int
	Fixed     int
	Energy    float64
	Paused    bool
	TimeScale float64
}

// App owns the world and the per-frame simulation state. It is driven from the
// frame loop and is not safe for concurrent use.
type App struct {
	prefs   engineconfig.Prefs
	opts    physics.Options
	log     *logger.Logger
	world   *physics.World
	clock   physics.Clock
	paused  bool
	overlay Overlay
}

var _ commands.Simulation = (*App)(nil)

// New validates prefs and builds a world the size of the window.
func New(prefs engineconfig.Prefs, log *logger.Logger) (*App, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	opts, err := prefs.WorldOptions()
	if err != nil {
		return nil, err
	}
	world, err := physics.NewWorld(float64(prefs.Window.Width), float64(prefs.Window.Height), opts)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	a := &App{
		prefs: prefs,
		opts:  opts,
		log:   log.With(zap.String("component", "sim")),
		world: world,
	}
	a.log.Info("world created",
		zap.Int("mobile", opts.MobileCount),
		zap.Int("fixed", opts.FixedCount),
		zap.Int("width", prefs.Window.Width),
		zap.Int("height", prefs.Window.Height))
	return a, nil
}

// World returns the current world. Reset replaces it.
func (a *App) World() *physics.World {
	return a.world
}

// SetOverlay connects the debug overlay toggled by the fps command.
func (a *App) SetOverlay(o Overlay) {
	a.overlay = o
}

// Frame advances the simulation for a frame drawn at now (milliseconds). With a fixed
// step configured every frame simulates exactly that much time; otherwise the time
// since the previous frame is used, scaled through the world's clock. Nothing moves
// while paused, and the paused time is not caught up on resume.
func (a *App) Frame(now float64) {
	if step := a.prefs.Window.FixedStep; step > 0 {
		a.clock.Advance(now)
		if !a.paused {
			a.world.Step(step * a.clock.Scale())
		}
		return
	}
	if a.paused {
		a.clock.Advance(now)
		return
	}
	a.world.StepTo(&a.clock, now)
}

// Resize forwards a window resize to the world. A rejected size leaves the arena as is.
func (a *App) Resize(width, height int) error {
	if err := a.world.Resize(float64(width), float64(height)); err != nil {
		return err
	}
	a.log.Debug("resized", zap.Int("width", width), zap.Int("height", height))
	return nil
}

// Draw reports every marble to fn.
func (a *App) Draw(fn physics.DrawFunc) error {
	return a.world.Draw(fn)
}

// Paused reports whether the simulation is paused.
func (a *App) Paused() bool {
	return a.paused
}

// SetPaused pauses or resumes the simulation.
func (a *App) SetPaused(paused bool) {
	a.paused = paused
}

// Reset replaces the world with a new one of the current size. Negative counts keep
// the configured counts.
func (a *App) Reset(mobile, fixed int, seed int64) error {
	opts := a.opts
	if mobile >= 0 {
		opts.MobileCount = mobile
	}
	if fixed >= 0 {
		opts.FixedCount = fixed
	}
	opts.Seed = seed
	width, height := a.world.Bounds()
	world, err := physics.NewWorld(width, height, opts)
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	a.world = world
	a.log.Info("world reset", zap.Int("mobile", opts.MobileCount), zap.Int("fixed", opts.FixedCount), zap.Int64("seed", seed))
	return nil
}

// SetTimeScale sets how much simulated time passes per frame time.
func (a *App) SetTimeScale(scale float64) error {
	if math.IsNaN(scale) || scale <= 0 || scale > maxTimeScale {
		return fmt.Errorf("%w: got %v", ErrInvalidTimeScale, scale)
	}
	a.clock.SetScale(scale)
	return nil
}

// TimeScale returns the current time scale.
func (a *App) TimeScale() float64 {
	return a.clock.Scale()
}

// Spawn adds m to the world. A negative coordinate is replaced by the arena center.
func (a *App) Spawn(m physics.Marble, fixed bool) error {
	width, height := a.world.Bounds()
	if m.Position.X < 0 {
		m.Position.X = width / 2
	}
	if m.Position.Y < 0 {
		m.Position.Y = height / 2
	}
	if m.Position.X > width || m.Position.Y > height {
		return fmt.Errorf("spawn: (%v, %v) is outside the %vx%v arena", m.Position.X, m.Position.Y, width, height)
	}
	add := a.world.AddMobile
	if fixed {
		add = a.world.AddFixed
	}
	if err := add(m); err != nil {
		return fmt.Errorf("spawn: %w", err)
	}
	a.log.Info("marble spawned",
		zap.Float64("x", m.Position.X),
		zap.Float64("y", m.Position.Y),
		zap.Float64("radius", m.Radius),
		zap.Bool("fixed", fixed))
	return nil
}

// Snapshot returns the current counts, energy and run state.
func (a *App) Snapshot() Snapshot {
	mobile, fixed := a.world.Counts()
	return Snapshot{
		Mobile:    mobile,
		Fixed:     fixed,
		Energy:    a.world.KineticEnergy(),
		Paused:    a.paused,
		TimeScale: a.clock.Scale(),
	}
}

// Stats returns the snapshot as a single console line.
func (a *App) Stats() string {
	s := a.Snapshot()
	return fmt.Sprintf("mobile=%d fixed=%d energy=%.5f paused=%t scale=%g", s.Mobile, s.Fixed, s.Energy, s.Paused, s.TimeScale)
}

// SetShowFPS toggles the FPS counter if an overlay is connected.
func (a *App) SetShowFPS(show bool) {
	if a.overlay != nil {
		a.overlay.SetShowFPS(show)
	}
}

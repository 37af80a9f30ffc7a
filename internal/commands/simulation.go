package commands

import (
	"flag"
	"strings"

	"marbles/internal/physics"
)

// Simulation is what the console commands control.
type Simulation interface {
	Paused() bool
	SetPaused(paused bool)
	// Reset rebuilds the world. Negative counts keep the configured value; seed 0 is time based.
	Reset(mobile, fixed int, seed int64) error
	SetTimeScale(scale float64) error
	// Spawn adds a marble; a negative coordinate is replaced by the arena center.
	Spawn(m physics.Marble, fixed bool) error
	Stats() string
	SetShowFPS(show bool)
}

// RegisterSimulation adds pause, reset, speed, spawn, stats, fps and help to reg.
// Command output is passed to out.
func RegisterSimulation(reg *Registry, sim Simulation, out func(string)) {
	pause := flag.NewFlagSet("pause", flag.ContinueOnError)
	reg.Register("pause", "toggle the simulation", pause, func() error {
		sim.SetPaused(!sim.Paused())
		if sim.Paused() {
			out("paused")
		} else {
			out("running")
		}
		return nil
	})

	reset := flag.NewFlagSet("reset", flag.ContinueOnError)
	mobile := reset.Int("mobile", -1, "number of mobile marbles (-1 keeps the configured count)")
	fixed := reset.Int("fixed", -1, "number of fixed marbles (-1 keeps the configured count)")
	seed := reset.Int64("seed", 0, "random seed (0 is time based)")
	reg.Register("reset", "rebuild the world [-mobile N] [-fixed N] [-seed S]", reset, func() error {
		if err := sim.Reset(*mobile, *fixed, *seed); err != nil {
			return err
		}
		out(sim.Stats())
		return nil
	})

	speed := flag.NewFlagSet("speed", flag.ContinueOnError)
	scale := speed.Float64("scale", 1, "simulated time per real time")
	reg.Register("speed", "set the time scale -scale F", speed, func() error {
		return sim.SetTimeScale(*scale)
	})

	spawn := flag.NewFlagSet("spawn", flag.ContinueOnError)
	x := spawn.Float64("x", -1, "center x (-1 for arena center)")
	y := spawn.Float64("y", -1, "center y (-1 for arena center)")
	vx := spawn.Float64("vx", 0, "velocity x")
	vy := spawn.Float64("vy", 0, "velocity y")
	r := spawn.Float64("r", 10, "radius")
	isFixed := spawn.Bool("fixed", false, "add an immovable marble")
	reg.Register("spawn", "add a marble [-x] [-y] [-vx] [-vy] [-r] [-fixed]", spawn, func() error {
		m := physics.NewMarble(physics.Vec2{X: *x, Y: *y}, physics.Vec2{X: *vx, Y: *vy}, *r)
		return sim.Spawn(m, *isFixed)
	})

	stats := flag.NewFlagSet("stats", flag.ContinueOnError)
	reg.Register("stats", "print marble counts and kinetic energy", stats, func() error {
		out(sim.Stats())
		return nil
	})

	fps := flag.NewFlagSet("fps", flag.ContinueOnError)
	show := fps.Bool("show", true, "show the FPS counter")
	reg.Register("fps", "toggle the FPS counter -show=bool", fps, func() error {
		sim.SetShowFPS(*show)
		return nil
	})

	help := flag.NewFlagSet("help", flag.ContinueOnError)
	reg.Register("help", "list commands", help, func() error {
		out(strings.Join(reg.Help(), "; "))
		return nil
	})
}

package main

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"marbles/internal/commands"
	"marbles/internal/debug"
	"marbles/internal/engineconfig"
	"marbles/internal/graphics"
	"marbles/internal/logger"
	"marbles/internal/render"
	"marbles/internal/sim"
	"marbles/internal/terminal"
)

// runGame opens the window and runs the simulation until ESC, window close or a
// draw error. The draw error, if any, is returned.
func runGame(prefs engineconfig.Prefs) error {
	log := logger.New(prefs.Log, zapcore.Lock(os.Stderr))
	defer func() { _ = log.Sync() }()

	app, err := sim.New(prefs, log)
	if err != nil {
		log.Error("cannot start", zap.Error(err))
		return err
	}
	reg := commands.NewRegistry()
	commands.RegisterSimulation(reg, app, log.Log)
	term := terminal.New(log, reg)

	overlay := debug.New()
	overlay.SetShowFPS(prefs.Debug.ShowFPS)
	overlay.SetShowStats(prefs.Debug.ShowStats)
	app.SetOverlay(overlay)

	textures := render.NewCache()
	var drawErr error

	update := func() bool {
		if drawErr != nil {
			return false
		}
		if !term.Update() && graphics.QuitPressed() {
			return false
		}
		if graphics.Resized() {
			if err := app.Resize(graphics.Size()); err != nil {
				log.Warn("resize ignored", zap.Error(err))
			}
		}
		app.Frame(graphics.Now())
		return true
	}
	draw := func() {
		if err := app.Draw(textures.Draw); err != nil {
			drawErr = err
			return
		}
		overlay.Draw(debug.Stats(app.Snapshot()))
		term.Draw()
	}
	shutdown := func() {
		log.Debug("releasing textures", zap.Int("count", textures.Len()))
		textures.Unload()
	}

	log.Info("starting", zap.String("title", prefs.Window.Title), zap.Float64("fixed_step", prefs.Window.FixedStep))
	graphics.Run(prefs.Window, update, draw, shutdown)
	if drawErr != nil {
		log.Error("draw failed", zap.Error(drawErr))
		return drawErr
	}
	log.Info("bye")
	return nil
}

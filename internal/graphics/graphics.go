package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"marbles/internal/engineconfig"
)

// Run opens the window and runs the frame loop until update returns false or the
// window is closed. Each frame it calls update, clears to the background colour and
// calls draw. ESC is not an exit key; update decides when to quit. shutdown runs
// before the window is closed so GPU resources can be released.
func Run(cfg engineconfig.WindowPrefs, update func() bool, draw func(), shutdown func()) {
	if cfg.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	defer rl.CloseWindow()
	if shutdown != nil {
		defer shutdown()
	}

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(int32(cfg.TargetFPS))

	bg := rl.NewColor(cfg.Background[0], cfg.Background[1], cfg.Background[2], 255)
	for !rl.WindowShouldClose() {
		if !update() {
			return
		}
		rl.BeginDrawing()
		rl.ClearBackground(bg)
		draw()
		rl.EndDrawing()
	}
}

// Size returns the current drawable size of the window.
func Size() (width, height int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// Resized reports whether the window was resized since the last frame.
func Resized() bool {
	return rl.IsWindowResized()
}

// Now returns the time since the window opened in milliseconds.
func Now() float64 {
	return rl.GetTime() * 1000
}

// QuitPressed reports whether ESC was pressed this frame.
func QuitPressed() bool {
	return rl.IsKeyPressed(rl.KeyEscape)
}

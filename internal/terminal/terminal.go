package terminal

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"marbles/internal/commands"
	"marbles/internal/logger"
)

const (
	BarHeight = 40
	prompt    = "> "
	fontSize  = 20
	padding   = 8
	// Number of log lines drawn above the input bar when the console is open.
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
	maxLineLength    = 200
)

var (
	barColor    = rl.NewColor(40, 40, 40, 255)
	lineColor   = rl.NewColor(80, 80, 80, 255)
	historyBg   = rl.NewColor(24, 24, 24, 220)
	historyText = rl.LightGray
)

// Terminal is the console bar at the bottom of the window, toggled with the grave key (`).
// Lines starting with "cmd " run through the command registry; other lines are only logged.
type Terminal struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
}

// New returns a closed Terminal that logs to log and runs commands through reg.
func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, reg: reg}
}

// IsOpen returns true when the console is visible and capturing keyboard input.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// SetOpen shows or hides the console.
func (t *Terminal) SetOpen(open bool) {
	t.open = open
}

// Submit logs line and, if it is a "cmd ..." line, executes it. Command errors are logged.
func (t *Terminal) Submit(line string) {
	if line == "" {
		return
	}
	t.log.Log(line)
	args, isCmd := commands.Parse(line)
	if !isCmd {
		return
	}
	if err := t.reg.Execute(args); err != nil {
		t.log.Warn("command failed", zap.String("line", line), zap.Error(err))
	}
}

// Update handles the toggle key and, while open, typing, paste, backspace, enter and
// ESC (closes the console). It returns true if the key presses were consumed, so the
// caller should not treat ESC as quit. Call once per frame.
func (t *Terminal) Update() bool {
	if rl.IsKeyPressed(rl.KeyGrave) {
		t.open = !t.open
		// Drain the toggle character so it does not end up in the input.
		for rl.GetCharPressed() != 0 {
		}
		return true
	}
	if !t.open {
		return false
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		t.open = false
		return true
	}
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		t.inputBuf += rl.GetClipboardText()
	} else {
		for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
			t.inputBuf += string(rune(c))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		t.inputBuf = trimLastRune(t.inputBuf)
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		line := t.inputBuf
		t.inputBuf = ""
		t.Submit(line)
	}
	return true
}

func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

// visibleLines returns the last n lines of lines, each cut to maxLineLength bytes.
func visibleLines(lines []string, n int) []string {
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) > maxLineLength {
			line = line[:maxLineLength-3] + "..."
		}
		out[i] = line
	}
	return out
}

// Draw draws the input bar at the bottom of the screen and the recent log lines above it.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	barY := screenH - BarHeight

	historyH := int32(maxLinesOnScreen * lineHeight)
	historyY := barY - historyH
	if historyY < 0 {
		historyH = barY
		historyY = 0
	}
	if historyH > 0 {
		rl.DrawRectangle(0, historyY, screenW, historyH, historyBg)
	}
	for i, line := range visibleLines(t.log.Lines(), maxLinesOnScreen) {
		y := historyY + int32(i*lineHeight+padding)
		rl.DrawText(line, padding, y, fontSize, historyText)
	}

	rl.DrawRectangle(0, barY, screenW, BarHeight, barColor)
	rl.DrawRectangle(0, barY, screenW, 1, lineColor)
	rl.DrawText(prompt+t.inputBuf+"|", padding, barY+padding, fontSize, rl.White)
}

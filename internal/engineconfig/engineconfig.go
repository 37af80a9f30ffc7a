package engineconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"marbles/internal/physics"
)

// ConfigPath is the default preferences file, relative to the process working directory.
const ConfigPath = "config/marbles.yaml"

// Prefs holds window, simulation, logging and overlay preferences.
type Prefs struct {
	Window WindowPrefs `json:"window" yaml:"window"`
	World  WorldPrefs  `json:"world" yaml:"world"`
	Log    LogPrefs    `json:"log" yaml:"log"`
	Debug  DebugPrefs  `json:"debug" yaml:"debug"`
}

// WindowPrefs configures the raylib window and frame loop.
// FixedStep is the simulated time per frame in milliseconds; 0 uses the measured frame time.
type WindowPrefs struct {
	Width      int           `json:"width" yaml:"width"`
	Height     int           `json:"height" yaml:"height"`
	Title      string        `json:"title" yaml:"title"`
	TargetFPS  int           `json:"target_fps" yaml:"target_fps"`
	FixedStep  float64       `json:"fixed_step" yaml:"fixed_step"`
	Resizable  bool          `json:"resizable" yaml:"resizable"`
	Background physics.Color `json:"background" yaml:"background"`
}

// WorldPrefs mirrors physics.Options field by field so it can be copied across.
type WorldPrefs struct {
	MobileCount      int           `json:"mobile_count" yaml:"mobile_count"`
	MobileRadius     float64       `json:"mobile_radius" yaml:"mobile_radius"`
	MobileColor      physics.Color `json:"mobile_color" yaml:"mobile_color"`
	FixedCount       int           `json:"fixed_count" yaml:"fixed_count"`
	FixedRadius      float64       `json:"fixed_radius" yaml:"fixed_radius"`
	FixedColor       physics.Color `json:"fixed_color" yaml:"fixed_color"`
	MaxSpeed         float64       `json:"max_speed" yaml:"max_speed"`
	SubstepThreshold float64       `json:"substep_threshold" yaml:"substep_threshold"`
	SubstepSplit     int           `json:"substep_split" yaml:"substep_split"`
	MaxSubstepDepth  int           `json:"max_substep_depth" yaml:"max_substep_depth"`
	Seed             int64         `json:"seed" yaml:"seed"`
}

// LogPrefs configures the logger. An empty File disables the rotating log file.
type LogPrefs struct {
	Level        string `json:"level" yaml:"level"`
	File         string `json:"file,omitempty" yaml:"file,omitempty"`
	MaxSizeMB    int    `json:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups   int    `json:"max_backups" yaml:"max_backups"`
	MaxAgeDays   int    `json:"max_age_days" yaml:"max_age_days"`
	Compress     bool   `json:"compress" yaml:"compress"`
	HistoryLines int    `json:"history_lines" yaml:"history_lines"`
}

// DebugPrefs toggles the on-screen overlays. Both are off by default.
type DebugPrefs struct {
	ShowFPS   bool `json:"show_fps" yaml:"show_fps"`
	ShowStats bool `json:"show_stats" yaml:"show_stats"`
}

// Default returns the reference setup: a 1024x768 "Bounce" window on white, 17ms per
// frame at 60 FPS, and the default physics options.
func Default() Prefs {
	p := Prefs{
		Window: WindowPrefs{
			Width:      1024,
			Height:     768,
			Title:      "Bounce",
			TargetFPS:  60,
			FixedStep:  17,
			Resizable:  true,
			Background: physics.Color{255, 255, 255},
		},
		Log: LogPrefs{
			Level:        "info",
			File:         "logs/marbles.log",
			MaxSizeMB:    10,
			MaxBackups:   3,
			MaxAgeDays:   28,
			HistoryLines: 200,
		},
	}
	opts := physics.DefaultOptions()
	p.World = WorldPrefs{
		MobileCount:      opts.MobileCount,
		MobileRadius:     opts.MobileRadius,
		MobileColor:      opts.MobileColor,
		FixedCount:       opts.FixedCount,
		FixedRadius:      opts.FixedRadius,
		FixedColor:       opts.FixedColor,
		MaxSpeed:         opts.MaxSpeed,
		SubstepThreshold: opts.SubstepThreshold,
		SubstepSplit:     opts.SubstepSplit,
		MaxSubstepDepth:  opts.MaxSubstepDepth,
		Seed:             opts.Seed,
	}
	return p
}

// Load reads preferences from path on top of Default(), so keys missing from the file
// keep their default. The format follows the extension: .json is JSON, anything else
// YAML. A missing file returns Default() and no error.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("engineconfig: %w", err)
	}
	if isJSON(path) {
		err = json.Unmarshal(data, &p)
	} else {
		err = yaml.Unmarshal(data, &p)
	}
	if err != nil {
		return Default(), fmt.Errorf("engineconfig: parse %s: %w", path, err)
	}
	return p, nil
}

// Save writes p to path, creating the directory if needed. The format follows the
// extension as in Load.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(p, "", "\t")
	} else {
		data, err = Marshal(p)
	}
	if err != nil {
		return fmt.Errorf("engineconfig: encode: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Marshal encodes p as YAML.
func Marshal(p Prefs) ([]byte, error) {
	return yaml.Marshal(p)
}

// Validate checks the window section; the world section is checked by physics.NewWorld.
func (p Prefs) Validate() error {
	if p.Window.Width <= 0 || p.Window.Height <= 0 {
		return fmt.Errorf("engineconfig: window size %dx%d must be positive", p.Window.Width, p.Window.Height)
	}
	if p.Window.TargetFPS <= 0 {
		return fmt.Errorf("engineconfig: target fps %d must be positive", p.Window.TargetFPS)
	}
	if p.Window.FixedStep < 0 {
		return fmt.Errorf("engineconfig: fixed step %v must not be negative", p.Window.FixedStep)
	}
	return nil
}

// WorldOptions returns the world section as physics options.
func (p Prefs) WorldOptions() (physics.Options, error) {
	var opts physics.Options
	if err := copier.Copy(&opts, &p.World); err != nil {
		return physics.Options{}, fmt.Errorf("engineconfig: world options: %w", err)
	}
	return opts, nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

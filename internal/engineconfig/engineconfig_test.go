package engineconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marbles/internal/physics"
)

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoad_YAMLOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marbles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window:
  width: 640
world:
  mobile_count: 40
  mobile_color: [0, 0, 255]
log:
  level: debug
`), 0644))

	p, err := Load(path)
	require.NoError(t, err)

	want := Default()
	want.Window.Width = 640
	want.World.MobileCount = 40
	want.World.MobileColor = physics.Color{0, 0, 255}
	want.Log.Level = "debug"
	assert.Equal(t, want, p)
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marbles.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"world": {"fixed_count": 0, "seed": 99}, "debug": {"show_fps": true}}`), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, p.World.FixedCount)
	assert.Equal(t, int64(99), p.World.Seed)
	assert.True(t, p.Debug.ShowFPS)
	assert.Equal(t, 1024, p.Window.Width)
}

func TestLoad_MalformedIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: [unterminated"), 0644))

	p, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, Default(), p)
}

func TestSave_ThenLoad(t *testing.T) {
	for _, name := range []string{"prefs.yaml", "prefs.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			p := Default()
			p.World.FixedRadius = 70
			p.Debug.ShowStats = true

			require.NoError(t, Save(path, p))
			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, p, got)
		})
	}
}

func TestPrefs_Validate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	p := Default()
	p.Window.Height = 0
	assert.Error(t, p.Validate())

	p = Default()
	p.Window.TargetFPS = -1
	assert.Error(t, p.Validate())

	p = Default()
	p.Window.FixedStep = -17
	assert.Error(t, p.Validate())
}

func TestPrefs_WorldOptions(t *testing.T) {
	opts, err := Default().WorldOptions()
	require.NoError(t, err)
	assert.Equal(t, physics.DefaultOptions(), opts)

	p := Default()
	p.World.MobileCount = 3
	p.World.SubstepThreshold = 50
	p.World.FixedColor = physics.Color{1, 2, 3}
	opts, err = p.WorldOptions()
	require.NoError(t, err)
	assert.Equal(t, 3, opts.MobileCount)
	assert.Equal(t, 50.0, opts.SubstepThreshold)
	assert.Equal(t, physics.Color{1, 2, 3}, opts.FixedColor)
}

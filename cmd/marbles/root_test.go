package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marbles/internal/engineconfig"
	"marbles/internal/env"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func noEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestConfigInit_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "marbles.yaml")

	out, err := execute(t, "config", "init", "--config", path, "--env-file", noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "wrote "+path+"\n", out)

	prefs, err := engineconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, engineconfig.Default(), prefs)
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marbles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  title: Mine\n"), 0644))

	_, err := execute(t, "config", "init", "-c", path, "--env-file", noEnvFile(t))
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "config", "init", "-c", path, "--force", "--env-file", noEnvFile(t))
	require.NoError(t, err)
	prefs, err := engineconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Bounce", prefs.Window.Title)
}

func TestConfigShow_PrintsEffectiveYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marbles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world:\n  mobile_count: 3\n"), 0644))

	out, err := execute(t, "config", "show", "-c", path, "--env-file", noEnvFile(t))
	require.NoError(t, err)
	assert.Contains(t, out, "mobile_count: 3")
	assert.Contains(t, out, "fixed_count: 5")
	assert.Contains(t, out, "title: Bounce")
}

func TestConfigShow_UsesConfigFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("window:\n  title: FromEnv\n"), 0644))
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(env.ConfigPath+"="+cfg+"\n"), 0644))
	t.Setenv(env.ConfigPath, "")
	os.Unsetenv(env.ConfigPath)

	out, err := execute(t, "config", "show", "--env-file", envFile)
	require.NoError(t, err)
	assert.Contains(t, out, "title: FromEnv")
}

func TestOptionsLoad_AppliesOverrides(t *testing.T) {
	t.Setenv(env.LogLevel, "debug")
	t.Setenv(env.Seed, "11")

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"--mobile", "4", "--fixed", "0", "--stats",
	}))
	opts := &options{configPath: cmd.Flag("config").Value.String(), mobile: 4, fixed: 0, showStats: true}

	prefs, err := opts.load(cmd)
	require.NoError(t, err)
	assert.Equal(t, 4, prefs.World.MobileCount)
	assert.Equal(t, 0, prefs.World.FixedCount)
	assert.Equal(t, int64(11), prefs.World.Seed)
	assert.Equal(t, "debug", prefs.Log.Level)
	assert.True(t, prefs.Debug.ShowStats)
	assert.False(t, prefs.Debug.ShowFPS)
}

func TestOptionsLoad_SeedFlagBeatsEnv(t *testing.T) {
	t.Setenv(env.Seed, "11")
	cmd := newRootCmd()
	opts := &options{configPath: filepath.Join(t.TempDir(), "none.yaml"), seed: 5, mobile: -1, fixed: -1}

	prefs, err := opts.load(cmd)
	require.NoError(t, err)
	assert.Equal(t, int64(5), prefs.World.Seed)
	assert.Equal(t, 25, prefs.World.MobileCount)
}

func TestOptionsLoad_BadSeed(t *testing.T) {
	t.Setenv(env.Seed, "soon")
	opts := &options{configPath: filepath.Join(t.TempDir(), "none.yaml"), mobile: -1, fixed: -1}
	_, err := opts.load(newRootCmd())
	assert.ErrorContains(t, err, env.Seed)
}

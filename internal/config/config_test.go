package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
file = "~/time/entries.log"
running_file = "/tmp/running"
log_level = "DEBUG"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		File:        "~/time/entries.log",
		RunningFile: "/tmp/running",
		LogLevel:    "debug",
	}, cfg)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
file: /data/entries.log
log_level: info
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/entries.log", cfg.File)
	assert.Empty(t, cfg.RunningFile)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	path := writeConfig(t, "config.toml", `log_level = "verbose"`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "log_level")
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `file = `)

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config file")
}

func TestLoadOrDefaultMissingDefaultIsNotAnError(t *testing.T) {
	t.Setenv(PathEnv, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, _, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadOrDefaultExplicitMissingIsAnError(t *testing.T) {
	_, _, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadOrDefaultHonorsEnvironment(t *testing.T) {
	path := writeConfig(t, "jam.yml", "running_file: /srv/running\n")
	t.Setenv(PathEnv, path)

	cfg, resolved, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
	assert.Equal(t, "/srv/running", cfg.RunningFile)
}

func TestLoadOrDefaultReadsDefaultLocation(t *testing.T) {
	t.Setenv(PathEnv, "")
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("HOME", t.TempDir())

	defaultPath, err := DefaultPath()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(defaultPath), 0o755))
	require.NoError(t, os.WriteFile(defaultPath, []byte(`file = "/x/entries.log"`), 0o644))

	cfg, resolved, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, defaultPath, resolved)
	assert.Equal(t, "/x/entries.log", cfg.File)
}

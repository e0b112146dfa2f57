package main

import (
	"os"
	"path/filepath"
	"testing"

	"home_dashboard/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func loadWithArgs(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	var (
		cfg    *config.Config
		cfgErr error
	)
	app := newApp(func(c *cli.Context) error {
		cfg, cfgErr = loadConfig(c)
		return nil
	})
	require.NoError(t, app.Run(append([]string{"home-dashboard"}, args...)))
	return cfg, cfgErr
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600))
	return dir
}

func TestLoadConfigFromDir(t *testing.T) {
	dir := writeConfig(t, "port: \"9090\"\nbackend:\n  url: http://assistant:5000\n")

	cfg, err := loadWithArgs(t, "--config-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://assistant:5000", cfg.Backend.URL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	dir := writeConfig(t, "port: \"9090\"\nlog:\n  level: warn\n")

	cfg, err := loadWithArgs(t, "--config-dir", dir, "--port", "7070", "--log-level", "debug")
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := writeConfig(t, "poll:\n  error_policy: loud\n")

	_, err := loadWithArgs(t, "--config-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config")
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5000", cfg.Backend.URL)
	assert.Equal(t, 2*time.Second, cfg.Poll.Interval)
	assert.Equal(t, PolicySilent, cfg.Poll.ErrorPolicy)
	assert.True(t, cfg.Commands.AppendReply)
	assert.Equal(t, "Sistema", cfg.SystemInfo.Prefix)
	assert.False(t, cfg.Auth.Enabled)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	body := []byte(`
backend:
  url: http://backend:5000
poll:
  interval: 500ms
  error_policy: surface
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), body, 0o600))
	t.Setenv("DASHBOARD_PORT", "9090")

	cfg, err := Load(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://backend:5000", cfg.Backend.URL)
	assert.Equal(t, 500*time.Millisecond, cfg.Poll.Interval)
	assert.Equal(t, PolicySurface, cfg.Poll.ErrorPolicy)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Backend: BackendConfig{URL: "http://x"},
			Poll:    PollConfig{Interval: time.Second, ErrorPolicy: PolicySilent},
		}
	}

	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"ok", func(c *Config) {}, nil},
		{"empty url", func(c *Config) { c.Backend.URL = "  " }, errEmptyBackendURL},
		{"zero interval", func(c *Config) { c.Poll.Interval = 0 }, errBadInterval},
		{"unknown policy", func(c *Config) { c.Poll.ErrorPolicy = "loud" }, errBadPolicy},
		{"auth without key", func(c *Config) { c.Auth.Enabled = true }, errNoSigningKey},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(&c)
			assert.ErrorIs(t, c.Validate(), tc.wantErr)
		})
	}
}

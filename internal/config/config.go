package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Poll error policies.
const (
	PolicySilent  = "silent"
	PolicySurface = "surface"
)

const envPrefix = "DASHBOARD"

type Config struct {
	Port       string           `mapstructure:"port"`
	DB         DBConfig         `mapstructure:"db"`
	Backend    BackendConfig    `mapstructure:"backend"`
	Poll       PollConfig       `mapstructure:"poll"`
	Commands   CommandsConfig   `mapstructure:"commands"`
	SystemInfo SystemInfoConfig `mapstructure:"system_info"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Log        LogConfig        `mapstructure:"log"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type BackendConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type PollConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	ErrorPolicy string        `mapstructure:"error_policy"` // silent | surface
}

type CommandsConfig struct {
	// AppendReply appends the backend reply to the log right away instead of
	// waiting for the next poll to surface it.
	AppendReply bool `mapstructure:"append_reply"`
}

type SystemInfoConfig struct {
	Prefix string `mapstructure:"prefix"`
}

type AuthConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

var (
	errEmptyBackendURL = errors.New("backend.url must be set")
	errBadInterval     = errors.New("poll.interval must be positive")
	errBadPolicy       = errors.New("poll.error_policy must be silent or surface")
	errNoSigningKey    = errors.New("auth.signing_key is required when auth is enabled")
)

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "app.db")
	v.SetDefault("backend.url", "http://localhost:5000")
	v.SetDefault("backend.timeout", 10*time.Second)
	v.SetDefault("poll.interval", 2*time.Second)
	v.SetDefault("poll.error_policy", PolicySilent)
	v.SetDefault("commands.append_reply", true)
	v.SetDefault("system_info.prefix", "Sistema")
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("log.level", "info")
}

// Load reads configs/config.yml from dir (when present) and applies
// DASHBOARD_* environment overrides on top of the defaults.
func Load(v *viper.Viper, dir string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if dir != "" {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config in %q: %w", dir, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Backend.URL) == "" {
		return errEmptyBackendURL
	}
	if c.Poll.Interval <= 0 {
		return errBadInterval
	}
	switch c.Poll.ErrorPolicy {
	case PolicySilent, PolicySurface:
	default:
		return errBadPolicy
	}
	if c.Auth.Enabled && c.Auth.SigningKey == "" {
		return errNoSigningKey
	}
	return nil
}

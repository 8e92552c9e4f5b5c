package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/flowintel/flowintel/internal/core"
	"github.com/flowintel/flowintel/internal/format"
	"github.com/flowintel/flowintel/internal/simulation"
	"github.com/spf13/viper"
)

// Profile sources.
const (
	SourceFixtures = "fixtures"
	SourceLocalFS  = "localfs"
	SourceS3       = "s3"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Profiles   ProfilesConfig   `mapstructure:"profiles"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// ProfilesConfig selects where profile documents come from.
type ProfilesConfig struct {
	Source string   `mapstructure:"source"` // "fixtures", "localfs" or "s3"
	Path   string   `mapstructure:"path"`   // For localfs
	Prefix string   `mapstructure:"prefix"` // Document prefix inside the store
	S3     S3Config `mapstructure:"s3"`     // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// SimulationConfig holds calculator defaults.
type SimulationConfig struct {
	DefaultCapital float64 `mapstructure:"default_capital"`
	Currency       string  `mapstructure:"currency"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error; empty keeps the mode default
}

// Load reads configuration from file on top of Defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v, Defaults())

	// Support environment variable overrides
	v.SetEnvPrefix("FLOWINTEL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand ${VAR} references in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("profiles.source", d.Profiles.Source)
	v.SetDefault("profiles.prefix", d.Profiles.Prefix)
	v.SetDefault("simulation.default_capital", d.Simulation.DefaultCapital)
	v.SetDefault("simulation.currency", d.Simulation.Currency)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)
	v.SetDefault("log.level", d.Log.Level)
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Mode: "release",
		},
		Profiles: ProfilesConfig{
			Source: SourceFixtures,
			Prefix: "profiles",
		},
		Simulation: SimulationConfig{
			DefaultCapital: simulation.DefaultCapital,
			Currency:       format.DefaultCurrency,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	switch c.Profiles.Source {
	case "", SourceFixtures:
	case SourceLocalFS:
		if c.Profiles.Path == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("profiles.path required when source is localfs"))
		}
	case SourceS3:
		if c.Profiles.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("profiles.s3.bucket required when source is s3"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown profiles source %q", c.Profiles.Source))
	}

	// Zero means "use the built-in default"
	dc := c.Simulation.DefaultCapital
	if dc < 0 || math.IsNaN(dc) || math.IsInf(dc, 0) {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("default_capital must be positive, got %v", dc))
	}
	if dc > simulation.MaxCapital {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("default_capital must not exceed %v, got %v", simulation.MaxCapital, dc))
	}
	if c.Simulation.Currency != "" && !format.KnownCurrency(c.Simulation.Currency) {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown currency %q", c.Simulation.Currency))
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("metrics path must start with /, got %q", c.Metrics.Path))
	}

	return nil
}

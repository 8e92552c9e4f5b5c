package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/flowintel/flowintel/internal/core"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return cfgPath
}

func TestLoad_FromFile(t *testing.T) {
	cfgPath := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9090

profiles:
  source: localfs
  path: "/tmp/flowintel/profiles"

simulation:
  default_capital: 25000
  currency: EUR
`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Profiles.Source != SourceLocalFS {
		t.Errorf("expected localfs, got %s", cfg.Profiles.Source)
	}
	if cfg.Simulation.DefaultCapital != 25000 {
		t.Errorf("expected default capital 25000, got %v", cfg.Simulation.DefaultCapital)
	}
	// untouched keys keep their defaults
	if cfg.Profiles.Prefix != "profiles" {
		t.Errorf("expected default prefix, got %q", cfg.Profiles.Prefix)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Errorf("expected default metrics config, got %+v", cfg.Metrics)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("FLOWINTEL_TEST_SECRET", "s3cr3t")
	cfgPath := writeConfig(t, `
profiles:
  source: s3
  s3:
    bucket: flowintel
    secret_key: "${FLOWINTEL_TEST_SECRET}"
`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Profiles.S3.SecretKey != "s3cr3t" {
		t.Errorf("expected expanded secret, got %q", cfg.Profiles.S3.SecretKey)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Simulation.DefaultCapital != 10000 {
		t.Errorf("expected default capital 10000, got %v", cfg.Simulation.DefaultCapital)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	server := ServerConfig{Host: "0.0.0.0", Port: 8080}

	tests := []struct {
		name    string
		cfg     Config
		wantErr *core.Error
	}{
		{
			name: "valid config",
			cfg:  Config{Server: server},
		},
		{
			name:    "invalid port - zero",
			cfg:     Config{Server: ServerConfig{Host: "0.0.0.0", Port: 0}},
			wantErr: core.ErrConfigInvalid,
		},
		{
			name:    "invalid port - too high",
			cfg:     Config{Server: ServerConfig{Host: "0.0.0.0", Port: 70000}},
			wantErr: core.ErrConfigInvalid,
		},
		{
			name:    "localfs without path",
			cfg:     Config{Server: server, Profiles: ProfilesConfig{Source: SourceLocalFS}},
			wantErr: core.ErrConfigMissing,
		},
		{
			name:    "s3 without bucket",
			cfg:     Config{Server: server, Profiles: ProfilesConfig{Source: SourceS3}},
			wantErr: core.ErrConfigMissing,
		},
		{
			name:    "unknown source",
			cfg:     Config{Server: server, Profiles: ProfilesConfig{Source: "mongo"}},
			wantErr: core.ErrConfigInvalid,
		},
		{
			name:    "negative capital",
			cfg:     Config{Server: server, Simulation: SimulationConfig{DefaultCapital: -1}},
			wantErr: core.ErrConfigInvalid,
		},
		{
			name:    "capital above maximum",
			cfg:     Config{Server: server, Simulation: SimulationConfig{DefaultCapital: 2e12}},
			wantErr: core.ErrConfigInvalid,
		},
		{
			name:    "unknown currency",
			cfg:     Config{Server: server, Simulation: SimulationConfig{Currency: "DOGE"}},
			wantErr: core.ErrConfigInvalid,
		},
		{
			name:    "metrics path without slash",
			cfg:     Config{Server: server, Metrics: MetricsConfig{Enabled: true, Path: "metrics"}},
			wantErr: core.ErrConfigInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

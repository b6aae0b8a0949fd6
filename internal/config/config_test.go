package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/debt-dashboard/internal/metrics"
	"github.com/iwvelando/debt-dashboard/pkg/constants"
	"github.com/iwvelando/debt-dashboard/pkg/validation"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfigurationDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Server.Address != constants.DefaultServerAddress {
		t.Errorf("expected default address, got %q", cfg.Server.Address)
	}
	if cfg.Server.RateLimit.RequestsPerSecond != constants.DefaultRequestsPerSecond {
		t.Errorf("expected default rate limit, got %v", cfg.Server.RateLimit.RequestsPerSecond)
	}
	if cfg.Server.RateLimit.Burst != constants.DefaultRequestBurst {
		t.Errorf("expected default burst, got %d", cfg.Server.RateLimit.Burst)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected 10s shutdown timeout, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Output.Format != constants.OutputFormatPretty {
		t.Errorf("expected pretty output, got %q", cfg.Output.Format)
	}
	if cfg.Trend.Seed != 0 {
		t.Errorf("expected unseeded trend, got %d", cfg.Trend.Seed)
	}
	if cfg.Defaults.SliderState() != metrics.DefaultSliderState() {
		t.Errorf("expected default slider state, got %+v", cfg.Defaults.SliderState())
	}
	if cfg.Logging.Level != "" || cfg.Logging.Format != "" || cfg.Logging.OutputFile != "" {
		t.Errorf("expected empty logging defaults, got %+v", cfg.Logging)
	}
}

func TestLoadConfigurationOverrides(t *testing.T) {
	path := writeConfig(t, `server:
  address: 127.0.0.1:9000
  rateLimit:
    requestsPerSecond: 5
    burst: 10
  shutdownTimeout: 3s
logging:
  level: debug
  format: console
  outputFile: /tmp/dashboard.log
output:
  format: csv
trend:
  seed: 42
defaults:
  capital: 4.5
  rate: 60
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Server.Address != "127.0.0.1:9000" {
		t.Errorf("expected address override, got %s", cfg.Server.Address)
	}
	if cfg.Server.RateLimit.RequestsPerSecond != 5 || cfg.Server.RateLimit.Burst != 10 {
		t.Errorf("expected rate limit override, got %+v", cfg.Server.RateLimit)
	}
	if cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("expected 3s shutdown timeout, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" || cfg.Logging.OutputFile != "/tmp/dashboard.log" {
		t.Errorf("expected logging overrides, got %+v", cfg.Logging)
	}
	if cfg.Output.Format != "csv" {
		t.Errorf("expected csv output, got %q", cfg.Output.Format)
	}
	if cfg.Trend.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Trend.Seed)
	}
	if cfg.Defaults.Capital != 4.5 || cfg.Defaults.Rate != 60 {
		t.Errorf("expected slider default overrides, got %+v", cfg.Defaults)
	}
}

func TestLoadConfigurationEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  address: 127.0.0.1:9000\n")
	t.Setenv("DASHBOARD_SERVER_ADDRESS", "0.0.0.0:7000")
	t.Setenv("DASHBOARD_DEFAULTS_RATE", "20")
	t.Setenv("DASHBOARD_TREND_SEED", "9")

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Server.Address != "0.0.0.0:7000" {
		t.Errorf("expected env address override, got %s", cfg.Server.Address)
	}
	if cfg.Defaults.Rate != 20 {
		t.Errorf("expected env rate override, got %v", cfg.Defaults.Rate)
	}
	if cfg.Trend.Seed != 9 {
		t.Errorf("expected env seed override, got %d", cfg.Trend.Seed)
	}
}

func TestLoadConfigurationInvalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		target   error
	}{
		{"Malformed YAML", "server: [unterminated", nil},
		{"Bad log level", "logging:\n  level: chatty\n", validation.ErrInvalidLogLevel},
		{"Bad log format", "logging:\n  format: xml\n", validation.ErrInvalidLogFormat},
		{"Bad output format", "output:\n  format: html\n", validation.ErrInvalidOutputFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfiguration(writeConfig(t, tt.contents))
			if err == nil {
				t.Fatal("LoadConfiguration() expected error but got none")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("LoadConfiguration() error = %v, expected %v", err, tt.target)
			}
		})
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	cfg, err := LoadConfigurationFromReader(strings.NewReader("defaults:\n  capital: 12\n  rate: 101\n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if got := cfg.Defaults.SliderState(); got != (metrics.SliderState{Capital: 10, Rate: 100}) {
		t.Errorf("expected clamped defaults, got %+v", got)
	}
	if warnings := cfg.ValidateConfiguration(); len(warnings) != 2 {
		t.Errorf("expected 2 warnings for out of range defaults, got %v", warnings)
	}
}

func TestValidateConfiguration(t *testing.T) {
	cfg := Default()
	if warnings := cfg.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected no warnings for defaults, got %v", warnings)
	}

	cfg.Server.RateLimit.RequestsPerSecond = 0
	cfg.Server.ShutdownTimeout = 0
	if warnings := cfg.ValidateConfiguration(); len(warnings) != 2 {
		t.Errorf("expected 2 warnings, got %v", warnings)
	}

	cfg = Default()
	cfg.Server.RateLimit.Burst = 0
	if warnings := cfg.ValidateConfiguration(); len(warnings) != 1 {
		t.Errorf("expected 1 warning for zero burst, got %v", warnings)
	}
}

func TestLoadEnvFile(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadEnvFile() on missing file error = %v", err)
	}
	if err := LoadEnvFile(""); err != nil {
		t.Fatalf("LoadEnvFile(\"\") error = %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DASHBOARD_OUTPUT_FORMAT=json\n"), 0600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	// Register cleanup for the variable the file sets.
	t.Setenv("DASHBOARD_OUTPUT_FORMAT", "")
	if err := os.Unsetenv("DASHBOARD_OUTPUT_FORMAT"); err != nil {
		t.Fatalf("failed to unset env: %v", err)
	}

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if got := os.Getenv("DASHBOARD_OUTPUT_FORMAT"); got != "json" {
		t.Fatalf("expected env file to set output format, got %q", got)
	}

	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected env file override to reach configuration, got %q", cfg.Output.Format)
	}
}

func TestExampleConfiguration(t *testing.T) {
	cfg, err := LoadConfiguration(filepath.Join("..", "..", "config.yaml.example"))
	if err != nil {
		t.Fatalf("LoadConfiguration(example) error = %v", err)
	}

	if warnings := cfg.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected example configuration to be clean, got %v", warnings)
	}
	if cfg.Server.MaxMessageSize != "4K" {
		t.Errorf("expected 4K message size, got %q", cfg.Server.MaxMessageSize)
	}
	if cfg.Defaults.SliderState() != metrics.DefaultSliderState() {
		t.Errorf("expected example defaults to match session defaults, got %+v", cfg.Defaults)
	}
}

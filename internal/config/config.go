// Package config defines the dashboard configuration and loads it from YAML
// with environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/iwvelando/debt-dashboard/internal/metrics"
	"github.com/iwvelando/debt-dashboard/pkg/constants"
	"github.com/iwvelando/debt-dashboard/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for debt-dashboard.
type Configuration struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging,omitempty"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output,omitempty"`
	Trend    TrendConfig    `mapstructure:"trend" yaml:"trend,omitempty"`
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
}

// ServerConfig holds runtime parameters for the HTTP server.
type ServerConfig struct {
	Address         string          `mapstructure:"address" yaml:"address"`
	RateLimit       RateLimitConfig `mapstructure:"rateLimit" yaml:"rateLimit"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdownTimeout" yaml:"shutdownTimeout"`
	MaxMessageSize  string          `mapstructure:"maxMessageSize" yaml:"maxMessageSize"` // e.g. "4K"
}

// RateLimitConfig throttles requests across all clients. A non-positive rate
// disables throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requestsPerSecond" yaml:"requestsPerSecond"`
	Burst             int     `mapstructure:"burst" yaml:"burst"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, json, yaml
}

// TrendConfig controls the synthetic trend noise. Seed 0 is unseeded.
type TrendConfig struct {
	Seed uint64 `mapstructure:"seed" yaml:"seed,omitempty"`
}

// DefaultsConfig holds the slider positions of a new session.
type DefaultsConfig struct {
	Capital float64 `mapstructure:"capital" yaml:"capital"`
	Rate    float64 `mapstructure:"rate" yaml:"rate"`
}

// SliderState returns the configured defaults clamped to the control ranges.
func (d DefaultsConfig) SliderState() metrics.SliderState {
	return metrics.SliderState{Capital: d.Capital, Rate: d.Rate}.Clamp()
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing file yields the defaults. Environment
// variables prefixed with DASHBOARD_ override file values, e.g.
// DASHBOARD_SERVER_ADDRESS.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("error reading config file, %w", err)
			}
		}
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from a reader.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat env file %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Default returns the configuration used when no file is present.
func Default() *Configuration {
	cfg, err := decode(newViper())
	if err != nil {
		panic(fmt.Sprintf("invalid built-in configuration defaults: %v", err))
	}
	return cfg
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	warnings := validation.ValidateSliderDefaults(c.Defaults.Capital, c.Defaults.Rate)

	if c.Server.RateLimit.RequestsPerSecond <= 0 {
		warnings = append(warnings, "server rate limiting disabled")
	} else if c.Server.RateLimit.Burst <= 0 {
		warnings = append(warnings, fmt.Sprintf("rate limit burst %d is not positive; using 1", c.Server.RateLimit.Burst))
	}
	if c.Server.ShutdownTimeout <= 0 {
		warnings = append(warnings, "shutdown timeout is not positive; in-flight requests will be dropped on exit")
	}

	return warnings
}

// Validate returns an error for settings that cannot be used at all.
func (c *Configuration) Validate() error {
	if err := validation.ValidateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if err := validation.ValidateLogFormat(c.Logging.Format); err != nil {
		return err
	}
	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			return err
		}
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default for AutomaticEnv to reach it during Unmarshal.
	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("server.rateLimit.requestsPerSecond", constants.DefaultRequestsPerSecond)
	v.SetDefault("server.rateLimit.burst", constants.DefaultRequestBurst)
	v.SetDefault("server.shutdownTimeout", constants.DefaultShutdownTimeout)
	v.SetDefault("server.maxMessageSize", constants.DefaultMaxMessageSize)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("trend.seed", 0)
	v.SetDefault("defaults.capital", constants.DefaultCapital)
	v.SetDefault("defaults.rate", constants.DefaultRate)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

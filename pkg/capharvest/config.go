// Package capharvest harvests monthly installed-capacity reports
// from the national grid regulator into one flat time-series table.
package capharvest

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gridwatch-in/capharvest/pkg/capharvest/fetch"
)

// Duration wraps time.Duration for yaml decoding of values like "2s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds the harvest settings, fixed at invocation.
type Config struct {
	StartYear  int `yaml:"start_year"`
	StartMonth int `yaml:"start_month"`
	EndYear    int `yaml:"end_year"`
	EndMonth   int `yaml:"end_month"`

	// WorkDir holds transient downloads and, by default, the output
	// file. It is created on startup; failure there is the only
	// fatal error.
	WorkDir string `yaml:"workdir"`
	// Output overrides the default output path.
	Output string `yaml:"output"`

	BaseURL        string   `yaml:"base_url"`
	RetryAttempts  int      `yaml:"retry_attempts"`
	RetryDelay     Duration `yaml:"retry_delay"`
	RequestTimeout Duration `yaml:"request_timeout"`
	// MonthPause is the courtesy delay between months.
	MonthPause Duration `yaml:"month_pause"`

	Logger *slog.Logger `yaml:"-"`
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() Config {
	return Config{
		WorkDir:        "work",
		BaseURL:        fetch.DefaultBaseURL,
		RetryAttempts:  3,
		RetryDelay:     Duration(2 * time.Second),
		RequestTimeout: Duration(30 * time.Second),
		MonthPause:     Duration(time.Second),
	}
}

// LoadConfig returns the defaults, merged with a yaml file when path
// is non-empty.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the period range and required settings.
func (c Config) Validate() error {
	if c.StartYear == 0 || c.EndYear == 0 {
		return errors.New("start and end period required")
	}
	if c.StartMonth < 1 || c.StartMonth > 12 || c.EndMonth < 1 || c.EndMonth > 12 {
		return errors.New("month must be in 1..12")
	}
	if c.EndYear < c.StartYear || (c.EndYear == c.StartYear && c.EndMonth < c.StartMonth) {
		return errors.New("end period precedes start period")
	}
	if c.WorkDir == "" {
		return errors.New("workdir required")
	}
	return nil
}

func (c *Config) defaults() {
	if c.BaseURL == "" {
		c.BaseURL = fetch.DefaultBaseURL
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = 3
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = Duration(30 * time.Second)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

package capharvest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, Duration(2*time.Second), cfg.RetryDelay)
	assert.Equal(t, Duration(30*time.Second), cfg.RequestTimeout)
	assert.Equal(t, "work", cfg.WorkDir)
	assert.NotEmpty(t, cfg.BaseURL)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
start_year: 2018
start_month: 1
end_year: 2025
end_month: 7
workdir: /tmp/nppwork
retry_attempts: 5
retry_delay: 500ms
request_timeout: 10s
month_pause: 0s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2018, cfg.StartYear)
	assert.Equal(t, 7, cfg.EndMonth)
	assert.Equal(t, "/tmp/nppwork", cfg.WorkDir)
	assert.Equal(t, 5, cfg.RetryAttempts)
	assert.Equal(t, Duration(500*time.Millisecond), cfg.RetryDelay)
	assert.Equal(t, Duration(10*time.Second), cfg.RequestTimeout)
	assert.Equal(t, Duration(0), cfg.MonthPause)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retry_delay: banana\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	base := DefaultConfig()
	base.StartYear, base.StartMonth = 2024, 1
	base.EndYear, base.EndMonth = 2024, 12
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing period", func(c *Config) { c.StartYear = 0 }},
		{"month out of range", func(c *Config) { c.StartMonth = 13 }},
		{"inverted range", func(c *Config) { c.EndYear, c.EndMonth = 2023, 12 }},
		{"inverted within year", func(c *Config) { c.EndMonth = 0 }},
		{"no workdir", func(c *Config) { c.WorkDir = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

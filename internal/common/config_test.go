package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "127.0.0.1", config.Server.Host)
	assert.Equal(t, 8765, config.Server.Port)
	assert.Empty(t, config.Auth.Token)
	assert.Equal(t, TierStandard, config.Processing.Tier)
	assert.Equal(t, 1, config.Processing.MaxConcurrentJobs)
	assert.Equal(t, 60, config.Processing.TimeoutBaseSeconds)
	assert.Equal(t, 10, config.Processing.TimeoutPerPageSeconds)
	assert.Equal(t, "@hourly", config.Cleanup.SweepSchedule)
	assert.Equal(t, "INFO", config.Logging.Level)

	assert.NoError(t, config.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docling.toml")
	content := `
[server]
host = "0.0.0.0"
port = 9000

[auth]
token = "secret"

[processing]
tier = "advanced"
max_concurrent_jobs = 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 9000, config.Server.Port)
	assert.Equal(t, "secret", config.Auth.Token)
	assert.Equal(t, TierAdvanced, config.Processing.Tier)
	assert.Equal(t, 3, config.Processing.MaxConcurrentJobs)

	// Sections not present keep their defaults
	assert.Equal(t, 60, config.Processing.TimeoutBaseSeconds)
	assert.Equal(t, "INFO", config.Logging.Level)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/docling.toml")
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DOCLING_HOST", "10.0.0.1")
	t.Setenv("DOCLING_PORT", "8080")
	t.Setenv("DOCLING_AUTH_TOKEN", "env-token")
	t.Setenv("DOCLING_PROCESSING_TIER", "lightweight")
	t.Setenv("DOCLING_MAX_CONCURRENT_JOBS", "2")
	t.Setenv("DOCLING_LOG_LEVEL", "DEBUG")

	config, err := LoadFromFile("")
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.1", config.Server.Host)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "env-token", config.Auth.Token)
	assert.Equal(t, TierLightweight, config.Processing.Tier)
	assert.Equal(t, 2, config.Processing.MaxConcurrentJobs)
	assert.Equal(t, "DEBUG", config.Logging.Level)
}

func TestEnvTempDirPriority(t *testing.T) {
	t.Setenv("DOCLING_TEMP_FOLDER", "/tmp/legacy")
	t.Setenv("DOCLING_TEMP_DIR", "/tmp/preferred")

	config, err := LoadFromFile("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/preferred", config.Storage.TempDir)
}

func TestFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()

	ApplyFlagOverrides(config, FlagOverrides{
		Host:          "0.0.0.0",
		Port:          7000,
		AuthToken:     "flag-token",
		Tier:          TierAdvanced,
		TempFolder:    "/tmp/flagged",
		MaxConcurrent: 3,
		LogLevel:      "ERROR",
	})

	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 7000, config.Server.Port)
	assert.Equal(t, "flag-token", config.Auth.Token)
	assert.Equal(t, TierAdvanced, config.Processing.Tier)
	assert.Equal(t, "/tmp/flagged", config.Storage.TempDir)
	assert.Equal(t, 3, config.Processing.MaxConcurrentJobs)
	assert.Equal(t, "ERROR", config.Logging.Level)
}

func TestFlagOverridesZeroValuesIgnored(t *testing.T) {
	config := NewDefaultConfig()
	ApplyFlagOverrides(config, FlagOverrides{})

	assert.Equal(t, "127.0.0.1", config.Server.Host)
	assert.Equal(t, 8765, config.Server.Port)
	assert.Equal(t, TierStandard, config.Processing.Tier)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, false},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, false},
		{"bad tier", func(c *Config) { c.Processing.Tier = "turbo" }, false},
		{"zero workers", func(c *Config) { c.Processing.MaxConcurrentJobs = 0 }, false},
		{"too many workers", func(c *Config) { c.Processing.MaxConcurrentJobs = 4 }, false},
		{"three workers", func(c *Config) { c.Processing.MaxConcurrentJobs = 3 }, true},
		{"negative timeout", func(c *Config) { c.Processing.TimeoutBaseSeconds = -1 }, false},
		{"bad log level", func(c *Config) { c.Logging.Level = "VERBOSE" }, false},
		{"warning level", func(c *Config) { c.Logging.Level = "WARNING" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := NewDefaultConfig()
			tt.mutate(config)

			err := config.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestTempDirDefault(t *testing.T) {
	config := NewDefaultConfig()
	assert.Equal(t, filepath.Join(os.TempDir(), "docling"), config.TempDir())

	config.Storage.TempDir = "/custom"
	assert.Equal(t, "/custom", config.TempDir())
}

func TestIsValidTier(t *testing.T) {
	assert.True(t, IsValidTier(TierLightweight))
	assert.True(t, IsValidTier(TierStandard))
	assert.True(t, IsValidTier(TierAdvanced))
	assert.False(t, IsValidTier(""))
	assert.False(t, IsValidTier("turbo"))
}

package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Processing tiers control conversion fidelity and scale the computed timeout.
const (
	TierLightweight = "lightweight"
	TierStandard    = "standard"
	TierAdvanced    = "advanced"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Auth       AuthConfig       `toml:"auth"`
	Processing ProcessingConfig `toml:"processing"`
	Storage    StorageConfig    `toml:"storage"`
	Cleanup    CleanupConfig    `toml:"cleanup"`
	Logging    LoggingConfig    `toml:"logging"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type AuthConfig struct {
	Token string `toml:"token"` // Shared bearer token; empty disables authentication
}

type ProcessingConfig struct {
	Tier                  string `toml:"tier"`                     // Default processing tier (lightweight|standard|advanced)
	MaxConcurrentJobs     int    `toml:"max_concurrent_jobs"`      // Worker count, 1-3
	TimeoutBaseSeconds    int    `toml:"timeout_base_seconds"`     // Base of the timeout formula
	TimeoutPerPageSeconds int    `toml:"timeout_per_page_seconds"` // Per-page addition to the timeout formula
}

type StorageConfig struct {
	TempDir string `toml:"temp_dir"` // Per-job scratch root (default: <system temp>/docling)
}

type CleanupConfig struct {
	SweepSchedule string `toml:"sweep_schedule"` // Cron spec for the recurring orphan sweep; empty disables
}

type LoggingConfig struct {
	Level string `toml:"level"` // DEBUG, INFO, WARNING, ERROR
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8765,
		},
		Processing: ProcessingConfig{
			Tier:                  TierStandard,
			MaxConcurrentJobs:     1,
			TimeoutBaseSeconds:    60,
			TimeoutPerPageSeconds: 10,
		},
		Cleanup: CleanupConfig{
			SweepSchedule: "@hourly",
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
	}
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
// CLI flag overrides are applied afterwards by the caller.
func LoadFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies DOCLING_* environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if host := os.Getenv("DOCLING_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("DOCLING_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if token := os.Getenv("DOCLING_AUTH_TOKEN"); token != "" {
		config.Auth.Token = token
	}
	if tier := os.Getenv("DOCLING_PROCESSING_TIER"); tier != "" {
		config.Processing.Tier = tier
	}
	if maxJobs := os.Getenv("DOCLING_MAX_CONCURRENT_JOBS"); maxJobs != "" {
		if m, err := strconv.Atoi(maxJobs); err == nil {
			config.Processing.MaxConcurrentJobs = m
		}
	}
	if base := os.Getenv("DOCLING_TIMEOUT_BASE_SECONDS"); base != "" {
		if b, err := strconv.Atoi(base); err == nil {
			config.Processing.TimeoutBaseSeconds = b
		}
	}
	if perPage := os.Getenv("DOCLING_TIMEOUT_PER_PAGE_SECONDS"); perPage != "" {
		if p, err := strconv.Atoi(perPage); err == nil {
			config.Processing.TimeoutPerPageSeconds = p
		}
	}
	// DOCLING_TEMP_DIR takes priority over the legacy DOCLING_TEMP_FOLDER name
	if tempDir := os.Getenv("DOCLING_TEMP_DIR"); tempDir != "" {
		config.Storage.TempDir = tempDir
	} else if tempFolder := os.Getenv("DOCLING_TEMP_FOLDER"); tempFolder != "" {
		config.Storage.TempDir = tempFolder
	}
	if schedule := os.Getenv("DOCLING_CLEANUP_SCHEDULE"); schedule != "" {
		config.Cleanup.SweepSchedule = schedule
	}
	if level := os.Getenv("DOCLING_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// FlagOverrides carries command-line flag values that override config
type FlagOverrides struct {
	Host          string
	Port          int
	AuthToken     string
	Tier          string
	TempFolder    string
	MaxConcurrent int
	LogLevel      string
}

// ApplyFlagOverrides applies command-line flag overrides to config.
// Command-line flags have highest priority.
func ApplyFlagOverrides(config *Config, flags FlagOverrides) {
	if flags.Host != "" {
		config.Server.Host = flags.Host
	}
	if flags.Port > 0 {
		config.Server.Port = flags.Port
	}
	if flags.AuthToken != "" {
		config.Auth.Token = flags.AuthToken
	}
	if flags.Tier != "" {
		config.Processing.Tier = flags.Tier
	}
	if flags.TempFolder != "" {
		config.Storage.TempDir = flags.TempFolder
	}
	if flags.MaxConcurrent > 0 {
		config.Processing.MaxConcurrentJobs = flags.MaxConcurrent
	}
	if flags.LogLevel != "" {
		config.Logging.Level = flags.LogLevel
	}
}

// Validate checks that the resolved configuration is usable
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if !IsValidTier(c.Processing.Tier) {
		return fmt.Errorf("invalid processing tier: %q (expected lightweight, standard or advanced)", c.Processing.Tier)
	}
	if c.Processing.MaxConcurrentJobs < 1 || c.Processing.MaxConcurrentJobs > 3 {
		return fmt.Errorf("max_concurrent_jobs must be between 1 and 3, got %d", c.Processing.MaxConcurrentJobs)
	}
	if c.Processing.TimeoutBaseSeconds < 0 || c.Processing.TimeoutPerPageSeconds < 0 {
		return fmt.Errorf("timeout configuration must be non-negative")
	}
	switch strings.ToUpper(c.Logging.Level) {
	case "DEBUG", "INFO", "WARNING", "WARN", "ERROR":
	default:
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}
	return nil
}

// IsValidTier reports whether tier is one of the known processing tiers
func IsValidTier(tier string) bool {
	switch tier {
	case TierLightweight, TierStandard, TierAdvanced:
		return true
	}
	return false
}

// TempDir resolves the scratch root, defaulting to <system temp>/docling
func (c *Config) TempDir() string {
	if c.Storage.TempDir != "" {
		return c.Storage.TempDir
	}
	return filepath.Join(os.TempDir(), "docling")
}

package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment" validate:"oneof=development production"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Logging     LoggingConfig   `toml:"logging"`
	Gather      GatherConfig    `toml:"gather"`
	Scheduler   SchedulerConfig `toml:"scheduler"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"`
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=debug info warn error"`
	Output []string `toml:"output"` // "stdout", "file"
}

// GatherConfig contains configuration for the ingestion pipeline:
// upstream endpoints, retry/backoff behavior, and browser rendering.
type GatherConfig struct {
	UserAgent         string        `toml:"user_agent"`
	RequestTimeout    time.Duration `toml:"request_timeout"`
	MaxRetries        int           `toml:"max_retries" validate:"gte=1"`
	InterRequestDelay time.Duration `toml:"inter_request_delay"`

	PrimaryBaseURL   string `toml:"primary_base_url" validate:"required,url"`
	RegionSourceURL  string `toml:"region_source_url" validate:"required,url"`
	SecondaryBaseURL string `toml:"secondary_base_url" validate:"omitempty,url"`
	SecondaryEnabled bool   `toml:"secondary_enabled"`

	// Rendered-session (headless browser) settings for the secondary source
	BrowserHeadless   bool          `toml:"browser_headless"`
	BrowserNavTimeout time.Duration `toml:"browser_nav_timeout"`
	BrowserAPIWait    time.Duration `toml:"browser_api_wait"` // Bounded wait for the first intercepted directory API response
	DirectoryPageSize int           `toml:"directory_page_size" validate:"gt=0"`
}

// SchedulerConfig contains configuration for scheduled gather runs
type SchedulerConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // Cron schedule format (with seconds field)
}

// NewDefaultConfig creates a configuration with default values.
// Upstream URLs and politeness settings default to the production sources;
// only user-facing settings should normally be changed in wifey.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		Gather: GatherConfig{
			UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
				"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			RequestTimeout:    15 * time.Second,
			MaxRetries:        3,
			InterRequestDelay: 1 * time.Second,
			PrimaryBaseURL:    "https://singmalls.app",
			RegionSourceURL:   "https://en.wikipedia.org/wiki/List_of_shopping_malls_in_Singapore",
			SecondaryBaseURL:  "https://www.capitaland.com",
			SecondaryEnabled:  true,
			BrowserHeadless:   true,
			BrowserNavTimeout: 30 * time.Second,
			BrowserAPIWait:    8 * time.Second,
			DirectoryPageSize: 100,
		},
		Scheduler: SchedulerConfig{
			Enabled:  false,            // Disabled by default - user must explicitly opt-in
			Schedule: "0 0 */12 * * *", // Every 12 hours (cron format with seconds)
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env. Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// Validate checks the configuration against struct-level constraints
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("WIFEY_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("WIFEY_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("WIFEY_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if badgerPath := os.Getenv("WIFEY_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	if level := os.Getenv("WIFEY_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if ua := os.Getenv("WIFEY_USER_AGENT"); ua != "" {
		config.Gather.UserAgent = ua
	}
}

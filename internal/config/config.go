// Package config provides configuration loading and management for the grocery sync server.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/grocerly/grocery-sync-server/internal/telemetry"
)

const (
	// EnvPrefix is the prefix for environment variables consumed by the
	// application (e.g. GROCERY_SYNC_LOG_LEVEL)
	EnvPrefix = "GROCERY_SYNC"

	// DefaultSyncInterval is the delay between refresh cycles when the
	// config does not specify one
	DefaultSyncInterval = "90s"

	// DefaultServerAddress is the listen address when the config does not
	// specify one
	DefaultServerAddress = ":8080"

	// DefaultDataDir is the state persistence root when the config does
	// not specify one
	DefaultDataDir = "/var/lib/grocery-sync"

	// PasswordEnvVar is the environment variable consulted when no
	// password file is configured
	PasswordEnvVar = "GROCERY_SYNC_PASSWORD"
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		// Validate the path to prevent path traversal attacks
		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	// Account holds the remote account credentials
	Account AccountConfig `yaml:"account"`

	// API holds the remote grocery API settings
	API APIConfig `yaml:"api"`

	// Sync holds the refresh loop settings
	Sync SyncConfig `yaml:"sync,omitempty"`

	// Server holds the HTTP server settings
	Server ServerConfig `yaml:"server,omitempty"`

	// DataDir is the root directory for state persistence
	DataDir string `yaml:"dataDir,omitempty"`

	// Telemetry holds the telemetry settings
	Telemetry *telemetry.Config `yaml:"telemetry,omitempty"`
}

// AccountConfig defines the remote account credentials
type AccountConfig struct {
	// Email is the account identifier used for login
	Email string `yaml:"email"`

	// PasswordFile is the path to a file containing the account password.
	// This is the recommended approach for production deployments.
	// The file should contain only the password with optional trailing whitespace.
	PasswordFile string `yaml:"passwordFile,omitempty"`
}

// APIConfig defines the remote grocery API settings
type APIConfig struct {
	// Endpoint is the base API URL (without trailing slash)
	Endpoint string `yaml:"endpoint"`

	// Timeout is the per-request timeout (e.g. "10s")
	Timeout string `yaml:"timeout,omitempty"`
}

// SyncConfig defines the refresh loop settings
type SyncConfig struct {
	// Interval is the delay between refresh cycles (e.g. "90s", "2m")
	Interval string `yaml:"interval,omitempty"`
}

// ServerConfig defines the HTTP server settings
type ServerConfig struct {
	// Address is the listen address (e.g. ":8080")
	Address string `yaml:"address,omitempty"`
}

// GetPassword returns the account password using the following priority:
// 1. Read from PasswordFile if specified
// 2. Read from GROCERY_SYNC_PASSWORD environment variable
//
// The password from file will have leading/trailing whitespace trimmed.
func (a *AccountConfig) GetPassword() (string, error) {
	// Priority 1: Read from file if specified
	if a.PasswordFile != "" {
		// Use filepath.Clean to prevent path traversal attacks
		cleanPath := filepath.Clean(a.PasswordFile)

		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to read password from file %s: %w", a.PasswordFile, err)
		}

		// Trim whitespace (including newlines) from file content
		password := strings.TrimSpace(string(data))
		return password, nil
	}

	// Priority 2: Check environment variable
	if envPassword := os.Getenv(PasswordEnvVar); envPassword != "" {
		return envPassword, nil
	}

	return "", fmt.Errorf(
		"no account password configured: set account.passwordFile or the %s environment variable", PasswordEnvVar,
	)
}

// GetTimeout returns the API request timeout, or zero if not configured.
// Validation guarantees the value parses.
func (a *APIConfig) GetTimeout() time.Duration {
	if a.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(a.Timeout)
	return d
}

// GetInterval returns the sync interval, defaulting to 90s
func (s *SyncConfig) GetInterval() time.Duration {
	interval := s.Interval
	if interval == "" {
		interval = DefaultSyncInterval
	}
	d, _ := time.ParseDuration(interval)
	return d
}

// GetAddress returns the server listen address, using the default if not specified
func (s *ServerConfig) GetAddress() string {
	if s.Address == "" {
		return DefaultServerAddress
	}
	return s.Address
}

// GetDataDir returns the state persistence root, using the default if not specified
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return DefaultDataDir
	}
	return c.DataDir
}

// LoadConfig loads and parses configuration from a YAML file
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	// #nosec G304 -- the path has been cleaned and symlink-resolved above
	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := c.validateAccount(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateSync(); err != nil {
		return err
	}

	if err := c.Telemetry.Validate(); err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}

	return nil
}

func (c *Config) validateAccount() error {
	if c.Account.Email == "" {
		return fmt.Errorf("account.email is required")
	}
	if !strings.Contains(c.Account.Email, "@") {
		return fmt.Errorf("account.email must be an email address, got %q", c.Account.Email)
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.Endpoint == "" {
		return fmt.Errorf("api.endpoint is required")
	}

	parsed, err := url.Parse(c.API.Endpoint)
	if err != nil {
		return fmt.Errorf("api.endpoint is not a valid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api.endpoint must be an http or https URL, got %q", c.API.Endpoint)
	}

	if c.API.Timeout != "" {
		if _, err := time.ParseDuration(c.API.Timeout); err != nil {
			return fmt.Errorf("api.timeout must be a valid duration (e.g., '10s'): %w", err)
		}
	}

	return nil
}

func (c *Config) validateSync() error {
	if c.Sync.Interval == "" {
		return nil
	}

	interval, err := time.ParseDuration(c.Sync.Interval)
	if err != nil {
		return fmt.Errorf("sync.interval must be a valid duration (e.g., '90s', '2m'): %w", err)
	}
	if interval <= 0 {
		return fmt.Errorf("sync.interval must be positive, got %q", c.Sync.Interval)
	}

	return nil
}

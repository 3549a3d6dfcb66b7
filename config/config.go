// Package config provides TOML configuration loading and validation for
// merkleberry.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the main configuration for a merkleberry log.
type Config struct {
	Store   StoreConfig   `toml:"store"`
	Cache   CacheConfig   `toml:"cache"`
	Metrics MetricsConfig `toml:"metrics"`
	Logging LoggingConfig `toml:"logging"`
}

// StoreConfig contains storage backend configuration.
type StoreConfig struct {
	// Backend is the storage backend to use ("memory", "leveldb" or "badgerdb").
	Backend string `toml:"backend"`

	// Path is the directory path for on-disk backends.
	Path string `toml:"path"`
}

// CacheConfig contains the read-through node cache configuration.
type CacheConfig struct {
	// Enabled determines whether leaf/node reads go through an LRU cache.
	Enabled bool `toml:"enabled"`

	// Size is the maximum number of cached entries.
	Size int `toml:"size"`
}

// MetricsConfig contains metrics configuration.
type MetricsConfig struct {
	// Enabled determines whether metrics collection is active.
	Enabled bool `toml:"enabled"`

	// Namespace is the Prometheus metrics namespace prefix.
	Namespace string `toml:"namespace"`

	// ListenAddr is the address to serve metrics on (e.g., ":9090").
	ListenAddr string `toml:"listen_addr"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `toml:"level"`

	// Format is the log output format ("text" or "json").
	Format string `toml:"format"`

	// Output is the log output destination ("stdout", "stderr", or a file path).
	Output string `toml:"output"`
}

// Storage backend names.
const (
	BackendMemory   = "memory"
	BackendLevelDB  = "leveldb"
	BackendBadgerDB = "badgerdb"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendLevelDB,
			Path:    "data/log",
		},
		Cache: CacheConfig{
			Enabled: true,
			Size:    10000,
		},
		Metrics: MetricsConfig{
			Enabled:    false,
			Namespace:  "merkleberry",
			ListenAddr: ":9090",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// LoadConfig loads configuration from a TOML file.
// Missing values are filled with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to a TOML file.
func (c *Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// Validation errors.
var (
	ErrInvalidStoreBackend   = errors.New("store backend must be 'memory', 'leveldb' or 'badgerdb'")
	ErrEmptyStorePath        = errors.New("store path cannot be empty for on-disk backends")
	ErrInvalidCacheSize      = errors.New("cache size must be positive when enabled")
	ErrEmptyMetricsNamespace = errors.New("metrics namespace cannot be empty when enabled")
	ErrEmptyMetricsAddr      = errors.New("metrics listen_addr cannot be empty when enabled")
	ErrInvalidLogLevel       = errors.New("log level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat      = errors.New("log format must be 'text' or 'json'")
	ErrEmptyLogOutput        = errors.New("log output cannot be empty")
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store config: %w", err)
	}
	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache config: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	return nil
}

// Validate checks the store configuration.
func (c *StoreConfig) Validate() error {
	switch c.Backend {
	case BackendMemory:
		return nil
	case BackendLevelDB, BackendBadgerDB:
		if c.Path == "" {
			return ErrEmptyStorePath
		}
		return nil
	default:
		return ErrInvalidStoreBackend
	}
}

// Validate checks the cache configuration.
func (c *CacheConfig) Validate() error {
	if c.Enabled && c.Size <= 0 {
		return ErrInvalidCacheSize
	}
	return nil
}

// Validate checks the metrics configuration.
func (c *MetricsConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Namespace == "" {
		return ErrEmptyMetricsNamespace
	}
	if c.ListenAddr == "" {
		return ErrEmptyMetricsAddr
	}
	return nil
}

// Validate checks the logging configuration.
func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	switch c.Format {
	case "text", "json":
	default:
		return ErrInvalidLogFormat
	}
	if c.Output == "" {
		return ErrEmptyLogOutput
	}
	return nil
}

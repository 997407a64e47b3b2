package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all copyck configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Trait the checker classifies for.
	Trait string `yaml:"trait"`

	// Database is the path of the YAML type database. Empty means none.
	Database string `yaml:"database"`

	Solver  SolverConfig  `yaml:"solver"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Name:    "copyck",
		Version: "0.1.0",
		Trait:   "Copy",

		Solver: SolverConfig{
			FactLimit: 100000,
			MaxGoals:  10000,
			Timeout:   "30s",
		},
		Cache: CacheConfig{
			Size: 4096,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("COPYCK_DB"); path != "" {
		c.Database = path
	}
	if level := os.Getenv("COPYCK_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if timeout := os.Getenv("COPYCK_TIMEOUT"); timeout != "" {
		c.Solver.Timeout = timeout
	}
}

// GetTimeout returns the solver timeout, 30s if unset or malformed.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Solver.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Trait == "" {
		return fmt.Errorf("trait must not be empty")
	}
	if err := c.Solver.validate(); err != nil {
		return err
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("cache size must be >= 0, got %d", c.Cache.Size)
	}
	return c.Logging.validate()
}

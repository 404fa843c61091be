// Package config provides configuration loading and validation for the
// intake service. The configuration object is built once at process start
// and injected into the server and pipeline constructors; it is never
// mutated afterwards.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults applied when neither config file nor flags provide a value.
const (
	DefaultPort           = 8080
	DefaultWorkers        = 4
	DefaultMaxUploadBytes = 16 << 20 // 16 MiB multipart upload cap
)

// Config represents the service configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must
// be provided via CLI flags or environment.
type Config struct {
	Port           int    `json:"port,omitempty"`             // HTTP listen port
	DatabaseURL    string `json:"database_url,omitempty"`     // PostgreSQL connection URL
	Workers        int    `json:"workers,omitempty"`          // Concurrent intakes for CLI batch runs
	MaxUploadBytes int64  `json:"max_upload_bytes,omitempty"` // Multipart upload size cap
	Verbose        bool   `json:"verbose,omitempty"`          // Print detailed processing output
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. CLI flags always win for booleans, so Verbose is not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}

	return result
}

// Default returns the built-in configuration defaults.
func Default() Config {
	return Config{
		Port:           DefaultPort,
		Workers:        DefaultWorkers,
		MaxUploadBytes: DefaultMaxUploadBytes,
	}
}

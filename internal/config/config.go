// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Server
	Port       int    `json:"port,omitempty"`        // HTTP listen port
	LibraryDir string `json:"library_dir,omitempty"` // Directory of interview material files

	// Oracle
	APIKey       string  `json:"api_key,omitempty"`       // Gemini API key
	AssessModel  string  `json:"assess_model,omitempty"`  // Model for the assessment stage
	RespondModel string  `json:"respond_model,omitempty"` // Model for the response stage
	Temperature  float64 `json:"temperature,omitempty"`   // Sampling temperature (0.0-2.0)

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.Temperature < 0 || c.Temperature > 2.0 {
		return fmt.Errorf("config error: 'temperature' must be between 0.0 and 2.0")
	}

	if c.LibraryDir != "" {
		info, err := os.Stat(c.LibraryDir)
		if os.IsNotExist(err) {
			return fmt.Errorf("config error: library directory not found: %s", c.LibraryDir)
		}
		if err == nil && !info.IsDir() {
			return fmt.Errorf("config error: library path is not a directory: %s", c.LibraryDir)
		}
	}

	return nil
}

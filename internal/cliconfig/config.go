// Package cliconfig loads the CLI's YAML configuration.
package cliconfig

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound = errors.New("configuration file not found")
	ErrEmptyFile    = errors.New("configuration file is empty")
	ErrInvalidYAML  = errors.New("invalid YAML syntax")
)

// Config configures the fixture server and the smoke runner.
type Config struct {
	// Addr is the fixture server's listen address.
	Addr string `yaml:"addr"`
	// PageSize is listings per search page.
	PageSize int `yaml:"pageSize"`
	// TotalListings is the fixture catalog size.
	TotalListings int `yaml:"totalListings"`
	// JWTSecret signs fixture session cookies.
	JWTSecret string `yaml:"jwtSecret"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:          ":3000",
		PageSize:      12,
		TotalListings: 48,
		JWTSecret:     "roomshare-dev-secret",
		LogLevel:      "info",
	}
}

// Load reads a YAML config file, overlaying it on Default. Fields absent from
// the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return cfg, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return cfg, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks if the Config is usable.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("pageSize must be positive, got %d", c.PageSize)
	}
	if c.TotalListings < 0 {
		return fmt.Errorf("totalListings must be non-negative, got %d", c.TotalListings)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("unknown logLevel %q", c.LogLevel)
	}
}

// Package config provides ambient YAML-backed configuration for the CLI
// front-end: default query binding, default phase, cache sizing, and log
// level/format. The core library API (schematron package) never requires a
// config file — this is purely CLI convenience, matching spec.md §1's
// characterization of configuration handling as an external collaborator.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete CLI configuration.
type Config struct {
	Validator ValidatorSettings `yaml:"validator"`
	Cache     CacheSettings     `yaml:"cache"`
	Output    OutputConfig      `yaml:"output"`
}

// ValidatorSettings contains general validator settings.
type ValidatorSettings struct {
	// DefaultQueryBinding names a query binding for schemas that declare
	// none (spec.md §4.3 defaults to "xslt"). Validate checks the name; the
	// validator does not read this field and always falls back to
	// query.DefaultQueryBinding.
	DefaultQueryBinding string `yaml:"defaultQueryBinding"`
	// DefaultPhase is used when --phase is not given on the CLI; "" means
	// "#DEFAULT" (spec.md §6.1).
	DefaultPhase string `yaml:"defaultPhase"`
	// Workers bounds the batch validate_documents worker pool (§C.1).
	Workers int `yaml:"workers"`
	// MaxDocumentSize is a document size limit in bytes. Validate requires
	// it to be positive; the CLI does not check document sizes against it.
	MaxDocumentSize int64 `yaml:"maxDocumentSize"`
}

// CacheSettings configures the result cache (§C.2).
type CacheSettings struct {
	Enabled    bool `yaml:"enabled"`
	MaxEntries int  `yaml:"maxEntries"`
	TTLMinutes int  `yaml:"ttlMinutes"`
}

// OutputConfig configures log output settings.
type OutputConfig struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`
	// LogFormat is "text" or "json".
	LogFormat string `yaml:"logFormat"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Validator: ValidatorSettings{
			DefaultQueryBinding: "xslt",
			DefaultPhase:        "",
			Workers:             4,
			MaxDocumentSize:     100 * 1024 * 1024, // 100MB
		},
		Cache: CacheSettings{
			Enabled:    true,
			MaxEntries: 1000,
			TTLMinutes: 30,
		},
		Output: OutputConfig{
			LogLevel:  "info",
			LogFormat: "text",
		},
	}
}

// LoadConfig loads configuration from a YAML file, merging it onto
// DefaultConfig. An empty path returns the default configuration unchanged.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		return config, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	if !filepath.IsAbs(configPath) && strings.Contains(configPath, "..") {
		return nil, fmt.Errorf("invalid config file path: %s", configPath)
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // path validated above
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a YAML file, creating parent
// directories as needed.
func (c *Config) SaveConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	return nil
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Validator.Workers <= 0 {
		return fmt.Errorf("validator.workers must be positive")
	}
	if c.Validator.MaxDocumentSize <= 0 {
		return fmt.Errorf("validator.maxDocumentSize must be positive")
	}

	validBindings := map[string]bool{
		"xpath": true, "xpath2": true, "xpath3": true, "xpath31": true,
		"xslt": true, "xslt2": true, "xslt3": true,
	}
	if c.Validator.DefaultQueryBinding != "" && !validBindings[c.Validator.DefaultQueryBinding] {
		return fmt.Errorf("invalid defaultQueryBinding: %s", c.Validator.DefaultQueryBinding)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Output.LogFormat] {
		return fmt.Errorf("invalid output format: %s (valid: text, json)", c.Output.LogFormat)
	}

	if c.Cache.Enabled && c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("cache.maxEntries must be positive when cache is enabled")
	}

	return nil
}

// GenerateDefaultConfigFile creates a default configuration file at the
// given path, for the CLI's `generate-config` subcommand.
func GenerateDefaultConfigFile(configPath string) error {
	return DefaultConfig().SaveConfig(configPath)
}

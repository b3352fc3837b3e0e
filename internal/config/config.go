// =============================================================================
// ordergen - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a single YAML file.
// Every batch-level setting the encoder needs (sender code, currency,
// payment terms, default quantity, batch id, file prefix) lives here and is
// handed to the generation pipeline as one explicit value. Nothing is read
// from ambient state mid-run.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the full application configuration.
type Config struct {
	// Generation carries the batch-level settings for the EDI encoder.
	Generation Generation `yaml:"generation"`

	// OutputDir is the directory where generated files are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir is the directory where processed input sheets are moved
	// after successful generation. Default: "./archive"
	ArchiveDir string `yaml:"archive_dir"`

	// LogLevel controls verbosity: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// Generation holds the batch-level encoder settings.
type Generation struct {
	// SenderCode is the 4-character sender identity in the batch markers.
	SenderCode string `yaml:"sender_code"`

	// Currency is the 3-letter currency code stamped on every order header.
	// Default: "GBP"
	Currency string `yaml:"currency"`

	// PaymentTerms is the terms code on every terms record. Default: "NET30"
	PaymentTerms string `yaml:"payment_terms"`

	// DefaultQuantity replaces missing or non-positive line item quantities.
	// Default: 1
	DefaultQuantity int `yaml:"default_quantity"`

	// BatchID identifies the batch in the markers and the output file name.
	BatchID int `yaml:"batch_id"`

	// FilePrefix is the leading component of the EDI output file name.
	// Default: "ORDERS"
	FilePrefix string `yaml:"file_prefix"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads, defaults, and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for unset options.
func applyDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "./archive"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Generation.Currency == "" {
		cfg.Generation.Currency = "GBP"
	}
	if cfg.Generation.PaymentTerms == "" {
		cfg.Generation.PaymentTerms = "NET30"
	}
	if cfg.Generation.DefaultQuantity == 0 {
		cfg.Generation.DefaultQuantity = 1
	}
	if cfg.Generation.FilePrefix == "" {
		cfg.Generation.FilePrefix = "ORDERS"
	}
}

// validate rejects configurations the encoder cannot use.
func validate(cfg *Config) error {
	if cfg.Generation.SenderCode == "" {
		return fmt.Errorf("generation.sender_code is required")
	}
	if len(cfg.Generation.SenderCode) > 4 {
		return fmt.Errorf("generation.sender_code %q is longer than 4 characters", cfg.Generation.SenderCode)
	}
	if cfg.Generation.BatchID <= 0 {
		return fmt.Errorf("generation.batch_id must be a positive integer")
	}
	if cfg.Generation.DefaultQuantity < 0 {
		return fmt.Errorf("generation.default_quantity must not be negative")
	}
	return nil
}

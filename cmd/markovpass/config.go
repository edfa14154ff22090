package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// Config holds the generation defaults markovpass starts from. Any value may
// be overridden on the command line.
type Config struct {
	NgramLength   int     `yaml:"ngram_length"`
	MinWordLength int     `yaml:"min_word_length"`
	MinEntropy    float64 `yaml:"min_entropy"`
	Count         int     `yaml:"count"`
	PruneBelow    int     `yaml:"prune_below"`
	LogLevel      string  `yaml:"log_level"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		NgramLength:   3,
		MinWordLength: 5,
		MinEntropy:    60,
		Count:         1,
		PruneBelow:    0,
		LogLevel:      "warn",
	}
}

// LoadConfig reads the configuration from a YAML file at the given path.
// If the file doesn't exist, it creates one with default values so the user
// has a template to edit, and runs with the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = yaml.Marshal(config)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// Run with defaults anyway; the config file is a convenience.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(file, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Validate rejects out-of-domain values before any model work begins.
func (c *Config) Validate() error {
	if c.NgramLength < 1 {
		return fmt.Errorf("ngram_length must be at least 1, got %d", c.NgramLength)
	}
	if c.MinWordLength < 1 {
		return fmt.Errorf("min_word_length must be at least 1, got %d", c.MinWordLength)
	}
	if c.MinEntropy < 0 {
		return fmt.Errorf("min_entropy must not be negative, got %v", c.MinEntropy)
	}
	if c.Count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", c.Count)
	}
	if c.PruneBelow < 0 {
		return fmt.Errorf("prune_below must not be negative, got %d", c.PruneBelow)
	}
	return nil
}

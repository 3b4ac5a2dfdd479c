// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package config loads the settings of the jcheck tool from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/creachadair/jvalue"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the jcheck tool.
type Config struct {
	// MaxDepth is the container nesting limit; see jvalue.Options.
	MaxDepth int `yaml:"max_depth"`

	// StrictStrings rejects control characters and invalid UTF-8 in strings.
	StrictStrings bool `yaml:"strict_strings"`

	// TopLevel is "any" or "container".
	TopLevel string `yaml:"top_level"`

	// Color enables colored status output. If nil, color is enabled when
	// the output is a terminal.
	Color *bool `yaml:"color"`
}

// Default returns a Config with default settings.
func Default() *Config {
	return &Config{
		MaxDepth: jvalue.DefaultMaxDepth,
		TopLevel: jvalue.AnyValue.String(),
	}
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse parses a YAML configuration from data. Settings not given in data
// keep their default values. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports an error if any of the settings in c is invalid.
func (c *Config) Validate() error {
	var top jvalue.TopLevel
	if err := top.UnmarshalText([]byte(c.TopLevel)); err != nil {
		return fmt.Errorf("invalid top_level: %w", err)
	}
	return nil
}

// Options returns parser options corresponding to c.
func (c *Config) Options() (*jvalue.Options, error) {
	opts := &jvalue.Options{
		MaxDepth:      c.MaxDepth,
		StrictStrings: c.StrictStrings,
	}
	if err := opts.TopLevel.UnmarshalText([]byte(c.TopLevel)); err != nil {
		return nil, fmt.Errorf("invalid top_level: %w", err)
	}
	return opts, nil
}

// configNames are the file names searched for by Find, in order.
var configNames = []string{".jcheck.yml", ".jcheck.yaml"}

// Find searches dir and its parents for a configuration file, and returns
// the path of the first one found, or "" if there is none.
func Find(dir string) string {
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Package config holds the codesh settings. Values come from the YAML file
// under the data directory, then environment variables, then command-line
// flags, each layer overriding the previous one.
package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	// ModeFiles exposes the file and directory tools.
	ModeFiles = "files"
	// ModeShell exposes shell command generation and execution.
	ModeShell = "shell"
)

const (
	DefaultModel           = "gpt-4o"
	DefaultMaxSteps        = 100
	DefaultScaffoldTimeout = 5 * time.Minute
	DefaultSpinnerInterval = 100 * time.Millisecond
)

// Config holds all runtime settings.
type Config struct {
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`

	// Mode selects the tool set offered to the model.
	Mode string `yaml:"mode"`

	LogLevel string `yaml:"log_level"`

	// MaxSteps bounds the model calls made for a single user request.
	MaxSteps int `yaml:"max_steps"`

	// ScaffoldTimeout bounds the primary scaffold command of project generation.
	ScaffoldTimeout time.Duration `yaml:"scaffold_timeout"`

	// Temperature is passed to the model when set.
	Temperature *float32 `yaml:"temperature"`

	SpinnerInterval time.Duration `yaml:"spinner_interval"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Model:           DefaultModel,
		Mode:            ModeFiles,
		LogLevel:        "info",
		MaxSteps:        DefaultMaxSteps,
		ScaffoldTimeout: DefaultScaffoldTimeout,
		SpinnerInterval: DefaultSpinnerInterval,
	}
}

// Overrides are the values given on the command line. Empty fields are ignored.
type Overrides struct {
	Model string
	Mode  string
}

// Apply copies the non-empty overrides into c.
func (c *Config) Apply(o Overrides) {
	if o.Model != "" {
		c.Model = o.Model
	}
	if o.Mode != "" {
		c.Mode = strings.ToLower(o.Mode)
	}
}

// Validate checks that the settings are usable and fills zero values with defaults.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeFiles, ModeShell:
	case "":
		c.Mode = ModeFiles
	default:
		return fmt.Errorf("unknown mode %q (expected %q or %q)", c.Mode, ModeFiles, ModeShell)
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = DefaultMaxSteps
	}
	if c.ScaffoldTimeout <= 0 {
		c.ScaffoldTimeout = DefaultScaffoldTimeout
	}
	if c.SpinnerInterval <= 0 {
		c.SpinnerInterval = DefaultSpinnerInterval
	}
	return nil
}

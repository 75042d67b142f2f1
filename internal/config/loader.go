package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Environment variables recognised by the loader.
const (
	EnvAPIKey      = "OPENAI_API_KEY"
	EnvBaseURL     = "OPENAI_BASE_URL"
	EnvModel       = "CODESH_MODEL"
	EnvMode        = "CODESH_MODE"
	EnvLogLevel    = "CODESH_LOG_LEVEL"
	EnvMaxSteps    = "CODESH_MAX_STEPS"
	EnvTemperature = "CODESH_TEMPERATURE"
)

// Loader reads configuration from a YAML file and the environment.
type Loader struct {
	logger *zap.Logger
	getenv func(string) string
}

// NewLoader creates a new configuration loader reading the process environment.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		logger: logger,
		getenv: os.Getenv,
	}
}

// LoadFromFile loads configuration from a YAML file and applies environment
// overrides. If the file doesn't exist, defaults are used.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.logger.Debug("no config file, using defaults", zap.String("path", path))
			return l.LoadFromBytes(nil)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := l.LoadFromBytes(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromBytes parses YAML content over the defaults and applies environment overrides.
func (l *Loader) LoadFromBytes(content []byte) (*Config, error) {
	cfg := DefaultConfig()
	if len(content) > 0 {
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) applyEnv(cfg *Config) error {
	if v := l.getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := l.getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := l.getenv(EnvModel); v != "" {
		cfg.Model = v
	}
	if v := l.getenv(EnvMode); v != "" {
		cfg.Mode = v
	}
	if v := l.getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := l.getenv(EnvMaxSteps); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMaxSteps, err)
		}
		cfg.MaxSteps = n
	}
	if v := l.getenv(EnvTemperature); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTemperature, err)
		}
		t := float32(f)
		cfg.Temperature = &t
	}
	return nil
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Apply(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Apply(Overrides{})
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, ModeFiles, cfg.Mode)

	cfg.Apply(Overrides{Model: "gpt-4o-mini", Mode: "SHELL"})
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, ModeShell, cfg.Mode)
}

func TestConfig_ValidateFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ModeFiles, cfg.Mode)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultMaxSteps, cfg.MaxSteps)
	assert.Equal(t, DefaultScaffoldTimeout, cfg.ScaffoldTimeout)
	assert.Equal(t, DefaultSpinnerInterval, cfg.SpinnerInterval)
}

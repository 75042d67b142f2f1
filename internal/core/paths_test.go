package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathsUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	ResetPaths()
	t.Cleanup(ResetPaths)

	assert.Equal(t, home, HomeDir())
	assert.Equal(t, filepath.Join(home, ".codesh"), DataDir())
	assert.Equal(t, filepath.Join(home, ".codesh", "codesh.log"), LogFile())
	assert.Equal(t, filepath.Join(home, ".codesh", "config.yaml"), ConfigFile())

	info, err := os.Stat(DataDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

package xdg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDirUsesEnv(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	d, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, AppName), d)

	info, err := os.Stat(d)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStateDirFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", home)

	d, err := StateDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "state", AppName), d)
}

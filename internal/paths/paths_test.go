package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigDirPrecedence(t *testing.T) {
	t.Setenv(EnvConfigDir, "/env/config")

	// Flag wins over env.
	dir, err := ResolveConfigDir("/flag/config")
	require.NoError(t, err)
	assert.Equal(t, "/flag/config", dir)

	// Env wins over default.
	dir, err = ResolveConfigDir("")
	require.NoError(t, err)
	assert.Equal(t, "/env/config", dir)
}

func TestResolveConfigDirDefaultLinux(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	if filepath.Base(filepath.Dir(dir)) == "xdg" {
		assert.Equal(t, filepath.Join("/xdg", "fieldcase"), dir)
	} else {
		// Non-Linux platforms route through the platform config dir.
		assert.Equal(t, "fieldcase", filepath.Base(dir))
	}
}

func TestResolveBaseDirPrecedence(t *testing.T) {
	t.Setenv(EnvBaseDir, "/env/base")

	// Flag wins over everything.
	dir, err := ResolveBaseDir("/flag/base", "/config/base")
	require.NoError(t, err)
	assert.Equal(t, "/flag/base", dir)

	// Config value wins over env.
	dir, err = ResolveBaseDir("", "/config/base")
	require.NoError(t, err)
	assert.Equal(t, "/config/base", dir)

	// Env wins over the CWD default.
	dir, err = ResolveBaseDir("", "")
	require.NoError(t, err)
	assert.Equal(t, "/env/base", dir)
}

func TestResolveBaseDirDefault(t *testing.T) {
	t.Setenv(EnvBaseDir, "")

	dir, err := ResolveBaseDir("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseDirName, filepath.Base(dir))
	assert.True(t, filepath.IsAbs(dir))
}

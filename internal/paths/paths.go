// Package paths resolves the configuration directory and the base projects
// directory for fieldcase.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultBaseDirName is the CWD-relative projects directory used when no
// override is active.
const DefaultBaseDirName = ".fieldcase"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "FIELDCASE_CONFIG_DIR"
	EnvBaseDir   = "FIELDCASE_BASE_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/fieldcase (fallback ~/.config/fieldcase)
// macOS:   ~/Library/Application Support/fieldcase
// Windows: %APPDATA%/fieldcase
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "fieldcase"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "fieldcase"), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "fieldcase"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > FIELDCASE_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveBaseDir returns the base projects directory following the
// precedence chain: flag > config value > FIELDCASE_BASE_DIR env >
// $(CWD)/.fieldcase.
func ResolveBaseDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvBaseDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultBaseDirName), nil
}

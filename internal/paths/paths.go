// Package paths resolves the configuration directory and the data source
// location for the tablectl CLI.
package paths

import (
	"net/url"
	"os"
	"path/filepath"
	"runtime"
)

// DefaultConfigDirName is the directory name used under the platform config
// root.
const DefaultConfigDirName = "tablectl"

// Environment variable names for overrides.
const (
	EnvConfigDir  = "TABLECTL_CONFIG_DIR"
	EnvDataSource = "TABLECTL_SOURCE"
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
// Linux:   $XDG_CONFIG_HOME/tablectl (fallback ~/.config/tablectl)
// macOS:   ~/Library/Application Support/tablectl
// Windows: %APPDATA%/tablectl
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, DefaultConfigDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", DefaultConfigDirName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, DefaultConfigDirName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > TABLECTL_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataSource returns the data source URI following the precedence
// chain: flag > config.yaml value > TABLECTL_SOURCE env. It returns "" when
// none is set.
//
// A relative file path read from config.yaml is taken relative to configDir,
// so a config directory can ship with its data. Flag and env values are used
// as given (relative to the working directory). URIs with a scheme are never
// rewritten.
func ResolveDataSource(flag, configYAMLValue, configDir string) string {
	if flag != "" {
		return flag
	}
	if configYAMLValue != "" {
		if isRelativePath(configYAMLValue) && configDir != "" {
			return filepath.Join(configDir, configYAMLValue)
		}
		return configYAMLValue
	}
	return os.Getenv(EnvDataSource)
}

func isRelativePath(s string) bool {
	if filepath.IsAbs(s) {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	// A one-letter scheme is a Windows drive letter.
	return u.Scheme == "" || len(u.Scheme) == 1
}

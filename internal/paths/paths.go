// Package paths resolves the configuration directory and script locations
// used by the chains CLI.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Directory and file names.
const (
	AppName        = "chains"
	ScriptsDirName = "scripts"
)

// EnvConfigDir overrides the configuration directory.
const EnvConfigDir = "CHAINS_CONFIG_DIR"

// ErrScriptNotFound is returned when a script name resolves to no file.
var ErrScriptNotFound = errors.New("script not found")

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
// Linux:   $XDG_CONFIG_HOME/chains (fallback ~/.config/chains)
// macOS:   ~/Library/Application Support/chains
// Windows: %APPDATA%/chains
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", AppName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > CHAINS_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveScript finds the script named by arg. A path to an existing file
// wins; otherwise arg is looked up in the scripts directory of configDir,
// with and without a .yaml extension.
func ResolveScript(configDir, arg string) (string, error) {
	if arg == "" {
		return "", ErrScriptNotFound
	}
	candidates := []string{arg}
	if !filepath.IsAbs(arg) && configDir != "" {
		base := filepath.Join(configDir, ScriptsDirName, arg)
		candidates = append(candidates, base)
		if !strings.HasSuffix(arg, ".yaml") && !strings.HasSuffix(arg, ".yml") {
			candidates = append(candidates, base+".yaml")
		}
	}
	for _, c := range candidates {
		info, err := os.Stat(c)
		if err == nil && !info.IsDir() {
			return filepath.Abs(c)
		}
	}
	return "", fmt.Errorf("%w: %s", ErrScriptNotFound, arg)
}

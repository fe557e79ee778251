package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvConfigPath overrides the config file location
const EnvConfigPath = "CLAUDEWARP_CONFIG"

const appName = "claudewarp"

// DefaultConfigPath resolves the config file location: $CLAUDEWARP_CONFIG,
// then $XDG_CONFIG_HOME/claudewarp/config.toml, then ~/.config/claudewarp/config.toml
func DefaultConfigPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	// Check XDG_CONFIG_HOME environment variable for custom config location
	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" {
		xdgConfigHome = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(xdgConfigHome, appName, "config.toml"), nil
}

// LegacyConfigPath is where releases before the XDG layout kept the config file
func LegacyConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "."+appName, "config.toml"), nil
}

// ResolveConfigPath returns flagPath when set, otherwise DefaultConfigPath
func ResolveConfigPath(flagPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	return DefaultConfigPath()
}

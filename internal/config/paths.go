package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDirName is the directory under the user config root that holds
// the config file and persisted token.
const ConfigDirName = "canvasctl"

// DefaultConfigDir returns the canvasctl configuration directory,
// ~/.config/canvasctl on Unix and the platform equivalent elsewhere.
func DefaultConfigDir() (string, error) {
	configRoot, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("failed to determine config directory: %w", err)
		}
		configRoot = filepath.Join(home, ".config")
	}
	return filepath.Join(configRoot, ConfigDirName), nil
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config"), nil
}

// DefaultTokenPath returns the default persisted token file path.
func DefaultTokenPath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "token"), nil
}

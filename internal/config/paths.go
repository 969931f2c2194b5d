package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/dchw/config.yml
// - macOS: ~/Library/Application Support/dchw/config.yml
// - Windows: %APPDATA%\dchw\config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "dchw", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level config file.
// This is always .dchw/config.yml relative to the current directory.
func ProjectConfigPath() string {
	return filepath.Join(".dchw", "config.yml")
}

// ProjectConfigDir returns the path to the project-level config directory.
func ProjectConfigDir() string {
	return ".dchw"
}

// LegacyProjectConfigPath returns the path to the legacy project-level JSON
// config file, kept readable for backward compatibility.
func LegacyProjectConfigPath() string {
	return filepath.Join(".dchw", "config.json")
}

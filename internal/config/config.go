// Package config provides hierarchical configuration management for dchw using koanf.
// Configuration is loaded with priority: environment variables > project config
// (.dchw/config.yml) > user config (~/.config/dchw/config.yml) > defaults.
// A legacy JSON project config (.dchw/config.json) is still readable.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	cliErrors "github.com/ariel-frischer/dchw/internal/errors"
)

// Configuration represents the dchw CLI tool configuration.
type Configuration struct {
	// Changelog is the path of the changelog file guarded by the cleanliness
	// check. The file itself is owned and edited by dch.
	Changelog string `koanf:"changelog"`

	// DefaultVersion is used when no tag is reachable from HEAD.
	DefaultVersion string `koanf:"default_version"`

	// DchCmd is the external changelog command to invoke.
	// Overridable for testing and for dch-compatible wrappers.
	DchCmd string `koanf:"dch_cmd"`

	// Edit controls the second, interactive `dch -e` pass.
	Edit bool `koanf:"edit"`

	// Bullet is prefixed to every derived change line. Empty disables the
	// prefix; dch adds its own marker, so empty is the default.
	Bullet string `koanf:"bullet"`

	// SkipConfirmations answers yes to the dirty-tree prompt and accepts the
	// derived version without prompting. Also set via DCHW_YES env var.
	SkipConfirmations bool `koanf:"skip_confirmations"`

	// Timeout in seconds for the non-interactive append pass (0 = none).
	// The interactive edit pass is never subject to a timeout.
	Timeout int `koanf:"timeout"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .dchw/config.yml)
	ProjectConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	if err := loadDefaults(k); err != nil {
		return nil, err
	}

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr.
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values.
func loadDefaults(k *koanf.Koanf) error {
	if err := k.Load(confmap.Provider(GetDefaults(), "."), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}
	return nil
}

// loadUserConfig loads the user-level YAML config if present.
func loadUserConfig(k *koanf.Koanf) error {
	userPath, err := UserConfigPath()
	if err != nil {
		return nil
	}
	if !fileExists(userPath) {
		return nil
	}
	if err := k.Load(file.Provider(userPath), yaml.Parser()); err != nil {
		return cliErrors.ConfigParseError(userPath, err)
	}
	return nil
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON supported).
// Supports custom path override (for testing). Falls back to legacy JSON with warning.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	projectYAMLPath := ProjectConfigPath()
	if customPath != "" {
		projectYAMLPath = customPath
	}
	legacyProjectPath := LegacyProjectConfigPath()

	if fileExists(projectYAMLPath) {
		if err := k.Load(file.Provider(projectYAMLPath), yaml.Parser()); err != nil {
			return cliErrors.ConfigParseError(projectYAMLPath, err)
		}
		return nil
	}

	if customPath == "" && fileExists(legacyProjectPath) {
		if err := k.Load(file.Provider(legacyProjectPath), json.Parser()); err != nil {
			return cliErrors.ConfigParseError(legacyProjectPath, err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacyProjectPath)
			fmt.Fprintf(warningWriter, "  Rewrite it as %s to silence this warning.\n\n", ProjectConfigPath())
		}
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider("DCHW_", ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and applies final transformations.
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Changelog = expandHomePath(cfg.Changelog)

	if os.Getenv("DCHW_YES") != "" {
		cfg.SkipConfirmations = true
	}

	if cfg.Timeout < 0 {
		return nil, cliErrors.NewConfigError(
			fmt.Sprintf("invalid timeout %d: must be >= 0", cfg.Timeout),
			"Fix the timeout value in your config file or DCHW_TIMEOUT",
		)
	}

	return &cfg, nil
}

// envTransform converts environment variable names to config keys.
// Example: DCHW_DEFAULT_VERSION -> default_version
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "DCHW_"))
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// fileExists reports whether a regular file exists at path.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

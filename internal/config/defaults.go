package config

// GetDefaults returns the default configuration values keyed by koanf path.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog":          "debian/changelog",
		"default_version":    "1.0.0",
		"dch_cmd":            "dch",
		"edit":               true,
		"bullet":             "",
		"skip_confirmations": false,
		"timeout":            0,
	}
}

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options.
func GetDefaultConfigTemplate() string {
	return `# dchw Configuration
# Priority: DCHW_* env vars > .dchw/config.yml > ~/.config/dchw/config.yml > defaults

changelog: debian/changelog   # Changelog file guarded by the cleanliness check
default_version: 1.0.0        # Version used when no git tag is reachable
dch_cmd: dch                  # External changelog command
edit: true                    # Open 'dch -e' after appending entries
bullet: ""                    # Prefix for each derived change line ("" = none, dch adds its own)
skip_confirmations: false     # Answer yes to prompts (also DCHW_YES=1)
timeout: 0                    # Seconds allowed for the append pass (0 = no timeout)
`
}

// Package config provides configuration file support for guessr
// commands. Settings are read from the "tracker:" section of a YAML
// file; flags override config values, which override built-in
// defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// TrackerConfig represents the tracker configuration from a YAML file.
type TrackerConfig struct {
	// DataPath locates the result store. The file extension selects
	// the backend (.json or .db/.sqlite/.sqlite3).
	DataPath string `yaml:"data_path"`

	// GamesPath locates the user's custom game definitions overlay.
	GamesPath string `yaml:"games_path"`

	// AverageWindowDays is the trailing window for averages when a
	// game's own display settings give none.
	AverageWindowDays int `yaml:"average_window_days"`

	// Verbose enables debug-level logging.
	Verbose bool `yaml:"verbose"`
}

// configWrapper is used to parse the "tracker:" section from a YAML file.
type configWrapper struct {
	Tracker TrackerConfig `yaml:"tracker"`
}

// LoadConfig loads tracker configuration from a YAML file. It reads
// the "tracker:" section and ignores other sections.
func LoadConfig(path string) (*TrackerConfig, error) {
	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		return nil, ErrConfigPathEmpty()
	}

	data, err := os.ReadFile(trimmedPath)
	if err != nil {
		return nil, WrapReadError(trimmedPath, err)
	}
	if len(data) == 0 {
		return nil, ErrConfigEmpty(trimmedPath)
	}

	var wrapper configWrapper
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, ErrConfigInvalidYAML(trimmedPath, err)
	}
	return &wrapper.Tracker, nil
}

// DefaultConfigPath returns ~/.guessr/config.yaml, or "" if the home
// directory cannot be determined.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".guessr", "config.yaml")
}

// DefaultDataPath returns ~/.guessr/results.json.
func DefaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "results.json"
	}
	return filepath.Join(home, ".guessr", "results.json")
}

// DefaultGamesPath returns ~/.guessr/games.yaml.
func DefaultGamesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "games.yaml"
	}
	return filepath.Join(home, ".guessr", "games.yaml")
}

// ResolveValue returns the explicit value if non-empty, otherwise the
// config value, otherwise the default.
func ResolveValue(explicit, configValue, defaultValue string) string {
	if explicit != "" {
		return explicit
	}
	if configValue != "" {
		return configValue
	}
	return defaultValue
}

// ResolveIntValue returns the first non-zero value from explicit,
// config, or default.
func ResolveIntValue(explicit, configValue, defaultValue int) int {
	if explicit != 0 {
		return explicit
	}
	if configValue != 0 {
		return configValue
	}
	return defaultValue
}

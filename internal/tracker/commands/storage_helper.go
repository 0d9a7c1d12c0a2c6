package commands

import (
	"context"
	"os"

	"github.com/samestrin/guessr-tracker/internal/tracker/config"
	"github.com/samestrin/guessr-tracker/internal/tracker/schema"
	"github.com/samestrin/guessr-tracker/internal/tracker/store"
	"github.com/samestrin/guessr-tracker/pkg/output"
)

// loadConfig reads the config file if one exists. A missing default
// config file is not an error; a missing explicit --config path is.
func loadConfig() (*config.TrackerConfig, error) {
	path := globalConfigPath
	explicit := path != ""
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if path == "" {
		return &config.TrackerConfig{}, nil
	}
	if !explicit {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return &config.TrackerConfig{}, nil
		}
	}
	return config.LoadConfig(path)
}

// GetStore opens the result store, resolving its path from flag, env,
// config, and default in that order. The caller must Close it.
func GetStore(ctx context.Context) (store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	path := config.ResolveValue(GetDataPath(), cfg.DataPath, config.DefaultDataPath())
	return store.NewStore(ctx, path)
}

// GetRegistry builds the schema registry: embedded defaults plus the
// user's overlay file when present.
func GetRegistry() (*schema.Registry, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	path := config.ResolveValue(GetGamesPath(), cfg.GamesPath, config.DefaultGamesPath())

	defaults, err := schema.Defaults()
	if err != nil {
		return nil, err
	}

	var overlay []schema.GameSchema
	if data, rerr := os.ReadFile(path); rerr == nil {
		overlay, err = schema.LoadOverlay(data)
		if err != nil {
			return nil, err
		}
	}
	return schema.NewRegistry(defaults, overlay), nil
}

// SaveOverlay persists the registry's custom games back to the overlay
// file.
func SaveOverlay(reg *schema.Registry) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := config.ResolveValue(GetGamesPath(), cfg.GamesPath, config.DefaultGamesPath())

	data, err := schema.MarshalOverlay(reg.Overlay())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// newFormatter builds a Formatter from the global output flags.
func newFormatter() *output.Formatter {
	return output.New(GlobalJSONOutput, GlobalMinOutput, os.Stdout)
}

// Package commands implements CLI commands for guessr.
package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Version is set at build time using ldflags
var Version = "1.0.0"

// Global persistent flags accessible to all commands
var (
	globalDataPath   string
	globalGamesPath  string
	globalConfigPath string
	globalVerbose    bool

	GlobalJSONOutput bool
	GlobalMinOutput  bool
)

var rootCmd = &cobra.Command{
	Use:           "guessr",
	Short:         "Daily puzzle result tracker",
	Long:          `A CLI tool for tracking daily puzzle game results: paste share text, extract structured stats via per-game rules, and view rolling averages.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Sync local command flags to global vars for error handling
		if f := cmd.Flag("json"); f != nil && f.Changed {
			GlobalJSONOutput = true
		}
		if f := cmd.Flag("min"); f != nil && f.Changed {
			GlobalMinOutput = true
		}

		level := zerolog.WarnLevel
		if globalVerbose {
			level = zerolog.DebugLevel
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).With().Timestamp().Logger()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetDataPath returns the effective result store path.
// Priority: --data flag > GUESSR_DATA_PATH env var > config file > default
func GetDataPath() string {
	if globalDataPath != "" {
		return globalDataPath
	}
	if envPath := os.Getenv("GUESSR_DATA_PATH"); envPath != "" {
		return envPath
	}
	return ""
}

// GetGamesPath returns the effective custom games overlay path.
// Priority: --games flag > GUESSR_GAMES_PATH env var > config file > default
func GetGamesPath() string {
	if globalGamesPath != "" {
		return globalGamesPath
	}
	if envPath := os.Getenv("GUESSR_GAMES_PATH"); envPath != "" {
		return envPath
	}
	return ""
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalDataPath, "data", "", "Result store path (.json, .db, .sqlite) - overrides config and default")
	rootCmd.PersistentFlags().StringVar(&globalGamesPath, "games", "", "Custom game definitions path (.yaml)")
	rootCmd.PersistentFlags().StringVar(&globalConfigPath, "config", "", "Config file path (default ~/.guessr/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&globalVerbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&GlobalJSONOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&GlobalMinOutput, "min", false, "Minimal/token-optimized output")
}

// stargrab is a small platformer: run and jump across the platforms, collect
// the falling stars and keep clear of the bombs that appear each time the
// stars are cleared.
//
// Usage:
//
//	stargrab                  - Play the default level
//	stargrab play             - Same as above
//	stargrab levels           - List embedded levels
//	stargrab scores           - Show high scores for a level
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.stargrab, ./configs, embedded)
//	--level <name>      - Level to play or report on
//	--db <path>         - Scores database (default: ~/.stargrab/scores.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/stargrab/config"
)

var (
	// Global flags
	flagConfig   string
	flagLevel    string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stargrab",
	Short: "stargrab - collect the stars, dodge the bombs",
	Long: `stargrab is a small 2D platformer.

Controls:
  Left/Right, A/D   - Run
  Up, W, Space      - Jump
  Esc/P             - Pause

Examples:
  stargrab
  stargrab play --level ledges --seed 42
  stargrab scores --level meadow
  stargrab levels`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", "", "Level name (see 'stargrab levels')")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig reads the config file and applies flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("level") {
		cfg.Level = flagLevel
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Lookup("seed") != nil && flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Lookup("debug") != nil && flags.Changed("debug") {
		cfg.Debug = flagDebug
	}
	if flags.Lookup("watch") != nil && flags.Changed("watch") {
		cfg.Watch = flagWatch
	}
	return cfg, nil
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "stargrab",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	} else if level != "" {
		logger.Warn("unknown log level, using info", "level", level)
	}
	return logger
}

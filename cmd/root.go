// Package cmd holds the command line interface.
package cmd

import (
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scythe/internal/config"
	"scythe/internal/logging"
)

var (
	// Global flags
	logLevel string
	dbPath   string

	cfg    config.Config
	logger *zap.Logger
	static fs.FS
)

var rootCmd = &cobra.Command{
	Use:   "scythe",
	Short: "Scythe setup randomizer",
	Long: `Randomly deals factions and player boards for a game of Scythe.

Examples:
  scythe pick -p 3
  scythe pick -p 1 --wind-gambit --proximity
  scythe serve --port 8080`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("db") {
			cfg.DBPath = dbPath
		}
		logger, err = logging.New(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "scythe.db", "Settings database path")
}

// Execute runs the root command. assets is served by the web UI.
func Execute(assets fs.FS) error {
	static = assets
	return rootCmd.Execute()
}

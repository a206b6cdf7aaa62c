package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/algebriz/internal/config"
	"github.com/abhisek/algebriz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "algebriz",
	Short: "Adaptive algebra tutor",
	Long: "Algebriz walks learners through linear equations one balance-preserving\n" +
		"operation at a time, diagnosing misconceptions as they go.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides ALGEBRIZ_DB env var)")
	pf.String("config", "", "Path to YAML config file (default $XDG_CONFIG_HOME/algebriz/config.yaml)")
	pf.String("log-level", "", "Log level: debug, info, warn, error (overrides ALGEBRIZ_LOG_LEVEL)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration: defaults, config file, environment,
// then the persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		if _, err := config.ParseLogLevel(l); err != nil {
			return cfg, err
		}
		cfg.LogLevel = l
	}
	return cfg, nil
}

// newLogger returns the stderr logger for non-interactive commands.
func newLogger(cfg config.Config) *slog.Logger {
	return cfg.Logger(os.Stderr)
}

// resolveDBPath returns the configured database path, falling back to
// the default XDG location.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the journal database.
func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

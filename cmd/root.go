package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/testlab/internal/config"
	"github.com/abhisek/testlab/internal/logging"
	"github.com/abhisek/testlab/internal/store"
)

// memoryDB is the --db value that runs without persistence.
const memoryDB = "memory"

var rootCmd = &cobra.Command{
	Use:   "testlab",
	Short: "Test data training lab",
	Long:  "Test Lab — a terminal tutorial that teaches test data design: classify values, build a test set, write a test plan.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, 0)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", `Path to SQLite database file, or "memory" to keep nothing (overrides TESTLAB_DB)`)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the --config file, or the default location.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// newLogger builds the file logger. The console sink is forced off while
// the TUI owns the terminal.
func newLogger(cfg *config.Config, tui bool) *zap.Logger {
	lc := cfg.Log
	if tui {
		lc.Console = false
	}
	logger, err := logging.New(lc)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then db_path from config, then TESTLAB_DB and the default XDG path.
// An empty result means in-memory mode.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	if p == "" && cfg != nil {
		p = cfg.DBPath
	}
	switch p {
	case memoryDB:
		return "", nil
	case "":
		return store.DefaultDBPath()
	}
	return p, store.EnsureDir(p)
}

// openStore opens the configured database. It fails in memory mode, which
// has nothing to inspect.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	if dbPath == "" {
		return nil, fmt.Errorf("no database in %q mode", memoryDB)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

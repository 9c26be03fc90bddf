package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-metrics/internal/config"
	"github.com/pable/go-mlb-metrics/internal/storage"
)

var (
	cfgPath string
	dbPath  string
)

var rootCmd = &cobra.Command{
	Use:   "mlbmetrics",
	Short: "MLB rolling wOBA/xwOBA differential tool",
	Long: `Fetches Statcast data from Baseball Savant, computes per-batter rolling
wOBA/xwOBA differentials over trailing plate-appearance windows, and ranks
batters by how far their results run behind (or ahead of) their
expected-outcome quality.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite cache (overrides config)")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(rankingsCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(dropCmd)
}

// loadConfig layers the config file/env over defaults and applies the
// --db flag override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		cfg.CachePath = dbPath
	}
	return cfg, nil
}

// openCache opens the SQLite response cache, creating its directory.
func openCache(cfg *config.Config) (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.CachePath), 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := storage.Open(cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return db, nil
}

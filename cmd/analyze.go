package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-metrics/internal/config"
	"github.com/pable/go-mlb-metrics/internal/merge"
	"github.com/pable/go-mlb-metrics/internal/model"
	"github.com/pable/go-mlb-metrics/internal/preprocess"
	"github.com/pable/go-mlb-metrics/internal/report"
	"github.com/pable/go-mlb-metrics/internal/rolling"
	"github.com/pable/go-mlb-metrics/internal/savant"
	"github.com/pable/go-mlb-metrics/internal/storage"
)

var (
	analyzeSeasonFlag int
	analyzeOut        string
	analyzeTop        int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute the ranked rolling-differential dataset",
	Long: `Runs the full pipeline: preprocesses cached pitch-level events, computes
rolling wOBA/xwOBA for each batter, merges the rolling results with the
season and batted-ball leaderboards, and writes the ranked dataset as JSON.

Fetches and caches the season first if it isn't cached yet.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeSeasonFlag, "season", 0, "season year (default: auto-detect)")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "output JSON path (default from config)")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 10, "print the top N rows after writing (0 = none)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if analyzeSeasonFlag != 0 {
		cfg.Season = analyzeSeasonFlag
	}
	if analyzeOut == "" {
		analyzeOut = cfg.OutputPath
	}

	db, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	season := cfg.Season
	cached, err := seasonCached(db, season)
	if err != nil {
		return err
	}
	if !cached {
		client := savant.NewClient(time.Duration(cfg.HTTPTimeoutSec) * time.Second)
		season, err = fetchSeason(db, client, season)
		if err != nil {
			return err
		}
	}

	ds, err := buildDataset(db, cfg, season)
	if err != nil {
		return err
	}

	if err := merge.WriteDataset(analyzeOut, ds); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	fmt.Printf("\n[DONE] Saved %d players to %s\n", ds.TotalPlayers, analyzeOut)
	fmt.Printf("       Season: %d\n", ds.Season)
	fmt.Printf("       Generated: %s\n", ds.GeneratedAt)

	if analyzeTop > 0 {
		report.PrintRankings(os.Stdout, ds, analyzeTop)
	}
	return nil
}

// seasonCached reports whether the expected-stats leaderboard for season is
// in the cache. With season == 0 the year isn't known yet, so the fetch
// path runs and auto-detects.
func seasonCached(db *storage.DB, season int) (bool, error) {
	if season == 0 {
		return false, nil
	}
	stats, err := db.LoadExpectedStats(season)
	if err != nil {
		return false, err
	}
	return len(stats) > 0, nil
}

// buildDataset loads a cached season and runs the core pipeline:
// preprocess → rolling windows → merge & rank.
func buildDataset(db *storage.DB, cfg *config.Config, season int) (*model.Dataset, error) {
	expected, err := db.LoadExpectedStats(season)
	if err != nil {
		return nil, fmt.Errorf("load expected stats: %w", err)
	}
	if len(expected) == 0 {
		return nil, fmt.Errorf("season %d not cached: run 'mlbmetrics fetch --season %d' first", season, season)
	}

	exitVelo, err := db.LoadExitVelo(season)
	if err != nil {
		return nil, fmt.Errorf("load exit velo: %w", err)
	}

	raw, err := db.LoadEvents(season)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	var (
		results map[int]*model.RollingResult
		teams   map[int]string
	)
	if len(raw) == 0 {
		fmt.Fprintf(os.Stderr, "[WARN] No pitch-level events cached for %d; season-level stats only\n", season)
	} else {
		fmt.Printf("[STEP 4] Computing rolling metrics...\n")
		teams = preprocess.TeamLookup(raw)
		groups := preprocess.GroupByBatter(preprocess.PlateAppearances(raw))

		rcfg := rolling.Config{
			Windows:     cfg.Windows,
			MinPA:       cfg.MinPA,
			TrendPoints: cfg.TrendPoints,
			Workers:     cfg.Workers,
		}
		results = rolling.ComputeAll(groups, rcfg, func(done, total int) {
			if done%50 == 0 {
				fmt.Printf("  -> Processed %d/%d batters...\n", done, total)
			}
		})
		fmt.Printf("  -> %d batters with %d+ PA computed\n", len(results), cfg.MinPA)
	}

	fmt.Printf("[STEP 5] Building ranked dataset...\n")
	ds := merge.BuildDataset(merge.Inputs{
		Season:   expected,
		ExitVelo: exitVelo,
		Rolling:  results,
		Teams:    teams,
	}, season, cfg.MinPA, cfg.Windows, time.Now())
	return ds, nil
}

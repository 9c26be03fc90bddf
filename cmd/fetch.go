package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-metrics/internal/model"
	"github.com/pable/go-mlb-metrics/internal/savant"
	"github.com/pable/go-mlb-metrics/internal/storage"
)

var fetchSeasonFlag int

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download and cache a season of Statcast data",
	Long: `Fetches the expected-statistics leaderboard, the exit-velocity/barrels
leaderboard, and the full season of pitch-level events from Baseball Savant,
and caches everything in the local SQLite database.

Without --season, tries the current year and falls back to the prior year.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().IntVar(&fetchSeasonFlag, "season", 0, "season year (default: auto-detect)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if fetchSeasonFlag != 0 {
		cfg.Season = fetchSeasonFlag
	}

	db, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	client := savant.NewClient(time.Duration(cfg.HTTPTimeoutSec) * time.Second)
	_, err = fetchSeason(db, client, cfg.Season)
	return err
}

// fetchSeason downloads one season into the cache and returns the season
// year used. The expected-stats leaderboard is mandatory; the exit-velocity
// leaderboard and the pitch-level events are recoverable, so a failure there
// degrades the dataset rather than failing the fetch.
func fetchSeason(db *storage.DB, client *savant.Client, season int) (int, error) {
	var (
		expected []model.SeasonStats
		err      error
	)
	if season == 0 {
		season, expected, err = detectSeason(client)
		if err != nil {
			return 0, fmt.Errorf("detect season: %w", err)
		}
	} else {
		fmt.Printf("[STEP 1] Fetching expected statistics for %d...\n", season)
		expected, err = client.ExpectedStats(season)
		if err != nil {
			return 0, fmt.Errorf("expected stats: %w", err)
		}
	}
	fmt.Printf("  -> %d batters retrieved\n", len(expected))
	if err := db.ReplaceExpectedStats(season, expected); err != nil {
		return 0, fmt.Errorf("cache expected stats: %w", err)
	}

	fmt.Printf("[STEP 2] Fetching exit velocity & barrels...\n")
	exitVelo, err := client.ExitVeloBarrels(season)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Could not fetch EV/barrel data: %v\n", err)
	} else {
		fmt.Printf("  -> %d batters retrieved\n", len(exitVelo))
		if err := db.ReplaceExitVelo(season, exitVelo); err != nil {
			return 0, fmt.Errorf("cache exit velo: %w", err)
		}
	}

	start, end := savant.SeasonDates(season, time.Now())
	fmt.Printf("[STEP 3] Fetching pitch-level data from %s to %s...\n", start, end)
	fmt.Printf("  (this may take several minutes due to the volume of data)\n")
	events, err := client.Statcast(start, end, func(cs, ce string) {
		fmt.Printf("  -> %s .. %s\n", cs, ce)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Could not fetch pitch-level data: %v\n", err)
		fmt.Fprintf(os.Stderr, "[WARN] Analysis will use season-level stats only (no rolling windows)\n")
	} else {
		fmt.Printf("  -> %d total pitches retrieved\n", len(events))
		if err := db.ReplaceEvents(season, events); err != nil {
			return 0, fmt.Errorf("cache events: %w", err)
		}
	}

	fmt.Printf("\nDone: season %d cached\n", season)
	return season, nil
}

// detectSeason finds the most recent season with leaderboard data: the
// current year first, then the prior year, then a hard fallback. The rows
// for the chosen season are returned so callers don't fetch them twice.
func detectSeason(client *savant.Client) (int, []model.SeasonStats, error) {
	year := time.Now().Year()
	for _, try := range []int{year, year - 1} {
		fmt.Printf("[INFO] Trying season %d...\n", try)
		stats, err := client.ExpectedStats(try)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] No data for %d: %v\n", try, err)
			continue
		}
		if len(stats) > savant.MinLeaderboardRows {
			fmt.Printf("[INFO] Found %d batters for %d\n", len(stats), try)
			return try, stats, nil
		}
	}
	fmt.Printf("[INFO] Falling back to %d\n", savant.FallbackSeason)
	stats, err := client.ExpectedStats(savant.FallbackSeason)
	if err != nil {
		return 0, nil, err
	}
	return savant.FallbackSeason, stats, nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-metrics/internal/report"
)

var (
	rankingsSeasonFlag int
	rankingsLimit      int
)

var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Print the ranked differential table from cached data",
	RunE:  runRankings,
}

func init() {
	rankingsCmd.Flags().IntVar(&rankingsSeasonFlag, "season", 0, "season year (default: newest cached)")
	rankingsCmd.Flags().IntVar(&rankingsLimit, "limit", 25, "number of rows to print (0 = all)")
}

func runRankings(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	season := rankingsSeasonFlag
	if season == 0 {
		season = cfg.Season
	}
	if season == 0 {
		seasons, err := db.ListSeasons()
		if err != nil {
			return err
		}
		if len(seasons) == 0 {
			return fmt.Errorf("nothing cached: run 'mlbmetrics fetch' first")
		}
		season = seasons[0].Year
	}

	ds, err := buildDataset(db, cfg, season)
	if err != nil {
		return err
	}
	report.PrintRankings(os.Stdout, ds, rankingsLimit)
	return nil
}

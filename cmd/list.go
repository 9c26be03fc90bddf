package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-metrics/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached seasons",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openCache(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		seasons, err := db.ListSeasons()
		if err != nil {
			return err
		}
		if len(seasons) == 0 {
			fmt.Println("no seasons cached")
			return nil
		}
		report.PrintSeasons(os.Stdout, seasons)
		return nil
	},
}

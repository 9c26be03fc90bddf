package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var dropCmd = &cobra.Command{
	Use:   "drop <season>",
	Short: "Remove a cached season",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		season, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid season %q: %w", args[0], err)
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openCache(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.DropSeason(season); err != nil {
			return fmt.Errorf("drop season: %w", err)
		}
		fmt.Printf("dropped season %d\n", season)
		return nil
	},
}

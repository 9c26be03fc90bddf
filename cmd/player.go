package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-metrics/internal/model"
	"github.com/pable/go-mlb-metrics/internal/report"
)

var playerSeasonFlag int

var playerCmd = &cobra.Command{
	Use:   "player <id-or-name>",
	Short: "Show one batter's season line and rolling windows",
	Long: `Looks a batter up by MLBAM ID or by case-insensitive name substring
and prints their season stats plus the per-window rolling block.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlayer,
}

func init() {
	playerCmd.Flags().IntVar(&playerSeasonFlag, "season", 0, "season year (default: newest cached)")
}

func runPlayer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	season := playerSeasonFlag
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

	p, err := findPlayer(ds.Players, args[0])
	if err != nil {
		return err
	}
	report.PrintPlayerDetail(os.Stdout, *p)
	return nil
}

// findPlayer resolves a query that is either a numeric MLBAM ID or a name
// substring. Ambiguous name matches are an error listing the candidates.
func findPlayer(players []model.Player, query string) (*model.Player, error) {
	if id, err := strconv.Atoi(query); err == nil {
		for i := range players {
			if players[i].PlayerID == id {
				return &players[i], nil
			}
		}
		return nil, fmt.Errorf("no batter with id %d in dataset", id)
	}

	needle := strings.ToLower(query)
	var matches []*model.Player
	for i := range players {
		if strings.Contains(strings.ToLower(players[i].Name), needle) {
			matches = append(matches, &players[i])
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no batter matching %q in dataset", query)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = fmt.Sprintf("%s (%d)", m.Name, m.PlayerID)
		}
		return nil, fmt.Errorf("ambiguous name %q: %s", query, strings.Join(names, ", "))
	}
}

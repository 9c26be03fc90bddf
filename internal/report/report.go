// Package report renders console tables for rankings, player detail and
// cache contents.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-mlb-metrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintRankings prints the top of the ranked dataset, most underestimated
// players first.
func PrintRankings(w io.Writer, ds *model.Dataset, limit int) {
	fmt.Fprintf(w, "\nSeason %d  |  %d players (min %d PA)  |  windows %v\n\n",
		ds.Season, ds.TotalPlayers, ds.MinPA, ds.RollingWindows)

	table := newTable(w)
	table.Header("#", "NAME", "TEAM", "PA", "BA", "wOBA", "xwOBA", "DIFF", "SEASON_DIFF", "EV", "BRL%")

	for i, p := range ds.Players {
		if limit > 0 && i >= limit {
			break
		}
		table.Append(
			strconv.Itoa(i+1),
			p.Name,
			orDash(p.Team),
			strconv.Itoa(p.PA),
			fmtOpt(p.BattingAvg, 3),
			fmtOpt(p.WOBA, 3),
			fmtOpt(p.XWOBA, 3),
			fmt.Sprintf("%+.3f", p.DiffRolling),
			fmtOpt(p.DiffSeason, 3),
			fmtOpt(p.ExitVelocity, 1),
			fmtOpt(p.BarrelPct, 1),
		)
	}
	table.Render()
}

// PrintPlayerDetail prints one player's season line and per-window rolling
// block, including the trend endpoints.
func PrintPlayerDetail(w io.Writer, p model.Player) {
	fmt.Fprintf(w, "\n%s  |  Team: %s  |  PA: %d  |  primary diff: %+.3f\n\n",
		p.Name, orDash(p.Team), p.PA, p.DiffRolling)

	season := newTable(w)
	season.Header("BA", "wOBA", "xwOBA", "SEASON_DIFF", "xBA", "xSLG", "EV", "LA", "HARD_HIT%", "BRL%", "MAX_EV")
	season.Append(
		fmtOpt(p.BattingAvg, 3),
		fmtOpt(p.WOBA, 3),
		fmtOpt(p.XWOBA, 3),
		fmtOpt(p.DiffSeason, 3),
		fmtOpt(p.XBA, 3),
		fmtOpt(p.XSLG, 3),
		fmtOpt(p.ExitVelocity, 1),
		fmtOpt(p.LaunchAngle, 1),
		fmtOpt(p.HardHitPct, 1),
		fmtOpt(p.BarrelPct, 1),
		fmtOpt(p.MaxExitVelocity, 1),
	)
	season.Render()

	if len(p.Rolling) == 0 {
		fmt.Fprintf(w, "\nno rolling data (insufficient plate appearances)\n")
		return
	}

	fmt.Fprintf(w, "\nRolling windows (%d qualifying PA):\n\n", p.TotalPAEvents)
	table := newTable(w)
	table.Header("WINDOW", "wOBA", "xwOBA", "DIFF", "TREND", "TREND_FIRST", "TREND_LAST")

	for _, win := range sortedWindows(p.Rolling) {
		wr := p.Rolling[win]
		first, last := "—", "—"
		if n := len(wr.TrendDiff); n > 0 {
			first = fmt.Sprintf("%+.3f", wr.TrendDiff[0])
			last = fmt.Sprintf("%+.3f", wr.TrendDiff[n-1])
		}
		table.Append(
			strconv.Itoa(win),
			fmtOpt(wr.RollingWOBA, 3),
			fmtOpt(wr.RollingXWOBA, 3),
			fmtOpt(wr.RollingDiff, 3),
			fmt.Sprintf("%d pts", len(wr.TrendDiff)),
			first,
			last,
		)
	}
	table.Render()
}

// PrintSeasons prints the cached seasons summary.
func PrintSeasons(w io.Writer, seasons []model.SeasonSummary) {
	table := newTable(w)
	table.Header("SEASON", "EVENTS", "PLAYERS", "FETCHED_AT")
	for _, s := range seasons {
		table.Append(
			strconv.Itoa(s.Year),
			strconv.Itoa(s.Events),
			strconv.Itoa(s.Players),
			orDash(s.FetchedAt),
		)
	}
	table.Render()
}

func sortedWindows(m map[int]model.WindowResult) []int {
	wins := make([]int, 0, len(m))
	for w := range m {
		wins = append(wins, w)
	}
	sort.Ints(wins)
	return wins
}

func fmtOpt(v *float64, decimals int) string {
	if v == nil {
		return "—"
	}
	return strconv.FormatFloat(*v, 'f', decimals, 64)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

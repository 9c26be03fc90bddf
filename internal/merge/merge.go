// Package merge combines season leaderboards, batted-ball aggregates and
// per-batter rolling results into the final ranked dataset.
package merge

import (
	"encoding/json"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pable/go-mlb-metrics/internal/model"
)

// primaryWindowOrder is the fixed preference order for selecting the
// headline ranking differential, independent of the configured windows.
var primaryWindowOrder = []int{100, 50, 250}

// Inputs carries everything the merge needs. ExitVelo, Rolling and Teams
// may be nil (failed or skipped fetches); the merge then degrades to
// season-level output for the affected fields.
type Inputs struct {
	Season   []model.SeasonStats
	ExitVelo []model.ExitVeloStats
	Rolling  map[int]*model.RollingResult
	Teams    map[int]string
}

// BuildDataset produces the ranked dataset for one season. Batters below
// minPA are excluded. Records are built once and never mutated afterwards.
func BuildDataset(in Inputs, season, minPA int, windows []int, now time.Time) *model.Dataset {
	evByID := make(map[int]model.ExitVeloStats, len(in.ExitVelo))
	for _, ev := range in.ExitVelo {
		evByID[ev.PlayerID] = ev
	}

	players := make([]model.Player, 0, len(in.Season))
	for _, ss := range in.Season {
		if ss.PA < minPA {
			continue
		}

		p := model.Player{
			PlayerID:   ss.PlayerID,
			Name:       ParseName(ss.Name),
			Team:       in.Teams[ss.PlayerID],
			PA:         ss.PA,
			BattingAvg: roundPtr(ss.BA, 3),
			WOBA:       roundPtr(ss.WOBA, 3),
			XWOBA:      roundPtr(ss.XWOBA, 3),
			DiffSeason: roundPtr(ss.SeasonDiff, 3),
			XBA:        roundPtr(ss.XBA, 3),
			XSLG:       roundPtr(ss.XSLG, 3),
		}

		if ev, ok := evByID[ss.PlayerID]; ok {
			p.ExitVelocity = roundPtr(ev.AvgHitSpeed, 1)
			p.LaunchAngle = roundPtr(ev.AvgHitAngle, 1)
			p.HardHitPct = roundPtr(ev.EV95Percent, 1)
			p.BarrelPct = roundPtr(ev.BrlPercent, 1)
			p.MaxExitVelocity = roundPtr(ev.MaxHitSpeed, 1)
		}

		var primary *float64
		if rr := in.Rolling[ss.PlayerID]; rr != nil {
			p.Rolling = rr.Windows
			p.TotalPAEvents = rr.TotalPA
			for _, w := range primaryWindowOrder {
				if wr, ok := rr.Windows[w]; ok && wr.RollingDiff != nil {
					primary = wr.RollingDiff
					break
				}
			}
		}

		switch {
		case primary != nil:
			p.DiffRolling = *primary
		case ss.SeasonDiff != nil:
			// The provider reports xwOBA minus wOBA; our convention is
			// wOBA minus xwOBA, hence the negation. This is the only
			// place the sign flips.
			p.DiffRolling = roundTo(-*ss.SeasonDiff, 3)
		default:
			p.DiffRolling = 0.0
		}

		players = append(players, p)
	}

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].DiffRolling < players[j].DiffRolling
	})

	return &model.Dataset{
		GeneratedAt:    now.Format(time.RFC3339),
		Season:         season,
		TotalPlayers:   len(players),
		MinPA:          minPA,
		RollingWindows: windows,
		Players:        players,
	}
}

// ParseName converts the leaderboard's combined "Last, First" column into
// "First Last" display form. Strings without a comma pass through as-is.
func ParseName(raw string) string {
	raw = strings.TrimSpace(raw)
	last, first, found := strings.Cut(raw, ",")
	if !found {
		return raw
	}
	return strings.TrimSpace(first) + " " + strings.TrimSpace(last)
}

// WriteDataset serializes the dataset as indented JSON to path.
func WriteDataset(path string, ds *model.Dataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}

// roundPtr rounds an optional value, preserving absence.
func roundPtr(v *float64, decimals int) *float64 {
	if v == nil {
		return nil
	}
	r := roundTo(*v, decimals)
	return &r
}

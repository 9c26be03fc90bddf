// Package preprocess turns raw Statcast pitch rows into clean, ordered
// per-batter plate-appearance sequences and derives team affiliations.
package preprocess

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pable/go-mlb-metrics/internal/model"
)

// PlateAppearances filters raw pitch rows down to PA-ending events,
// coerces the numeric fields, derives the per-event xwOBA value and
// returns the result ordered by (game date, at-bat number).
//
// Rows without an outcome label are pitches inside an at-bat, not
// decisions, and are dropped. Unparseable realized/weight values become
// 0; an unparseable or empty estimated value means "no batted-ball
// estimate" and the realized value is used instead.
func PlateAppearances(raw []model.RawEvent) []model.PlateAppearance {
	pas := make([]model.PlateAppearance, 0, len(raw))
	for _, ev := range raw {
		if strings.TrimSpace(ev.Events) == "" {
			continue
		}
		pa := model.PlateAppearance{
			Batter:      ev.Batter,
			GameDate:    ev.GameDate,
			AtBatNumber: ev.AtBatNumber,
			WOBAValue:   floatOrZero(ev.WOBAValue),
			WOBADenom:   floatOrZero(ev.WOBADenom),
		}
		if est, ok := parseFloat(ev.EstimatedWOBA); ok {
			pa.XWOBAValue = est
		} else {
			pa.XWOBAValue = pa.WOBAValue
		}
		pas = append(pas, pa)
	}
	sortByGameOrder(pas)
	return pas
}

// GroupByBatter splits an ordered PA sequence into per-batter sequences,
// each re-sorted by the same (game date, at-bat number) order.
func GroupByBatter(pas []model.PlateAppearance) map[int][]model.PlateAppearance {
	groups := make(map[int][]model.PlateAppearance)
	for _, pa := range pas {
		groups[pa.Batter] = append(groups[pa.Batter], pa)
	}
	for id := range groups {
		sortByGameOrder(groups[id])
	}
	return groups
}

// TeamLookup derives each batter's team code from their temporally last
// PA-ending event: the away team if that event came in the top of the
// inning, the home team otherwise. Using the last event favors the current
// club for players traded mid-season.
func TeamLookup(raw []model.RawEvent) map[int]string {
	events := make([]model.RawEvent, 0, len(raw))
	for _, ev := range raw {
		if strings.TrimSpace(ev.Events) == "" {
			continue
		}
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].GameDate != events[j].GameDate {
			return events[i].GameDate < events[j].GameDate
		}
		return events[i].AtBatNumber < events[j].AtBatNumber
	})

	teams := make(map[int]string)
	for _, ev := range events {
		if strings.EqualFold(ev.InningTopBot, "Top") {
			teams[ev.Batter] = ev.AwayTeam
		} else {
			teams[ev.Batter] = ev.HomeTeam
		}
	}
	return teams
}

// sortByGameOrder orders plate appearances by (game date, at-bat number)
// ascending. Game dates are ISO formatted so string comparison is
// chronological.
func sortByGameOrder(pas []model.PlateAppearance) {
	sort.Slice(pas, func(i, j int) bool {
		if pas[i].GameDate != pas[j].GameDate {
			return pas[i].GameDate < pas[j].GameDate
		}
		return pas[i].AtBatNumber < pas[j].AtBatNumber
	})
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func floatOrZero(s string) float64 {
	v, ok := parseFloat(s)
	if !ok {
		return 0
	}
	return v
}

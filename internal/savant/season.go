package savant

import (
	"fmt"
	"time"
)

// FallbackSeason is the last season known to have complete data; season
// auto-detection lands here when neither the current nor the prior year
// has leaderboard rows.
const FallbackSeason = 2024

// MinLeaderboardRows is how many expected-stats rows a season needs before
// auto-detection considers it to have real data.
const MinLeaderboardRows = 50

// SeasonDates returns the approximate regular-season date range used for
// pitch-level fetching: opening week through early October, clamped to
// today for an in-progress season.
func SeasonDates(year int, today time.Time) (start, end string) {
	start = fmt.Sprintf("%d-03-20", year)
	end = fmt.Sprintf("%d-10-05", year)
	if t := today.Format("2006-01-02"); t < end {
		end = t
	}
	return start, end
}

package model

// ---- Raw provider records ----

// RawEvent is one pitch-level Statcast row as returned by the provider.
// Numeric fields are kept as raw strings; coercion happens in the
// preprocess package so that unparseable provider values resolve the same
// way whether they come from a live fetch or the cache.
type RawEvent struct {
	Batter        int
	GameDate      string // YYYY-MM-DD
	AtBatNumber   int
	Events        string // PA outcome label; empty for mid-at-bat pitches
	WOBAValue     string
	WOBADenom     string
	EstimatedWOBA string // estimated_woba_using_speedangle; empty for non-batted-ball outcomes
	InningTopBot  string // "Top" or "Bot"
	HomeTeam      string
	AwayTeam      string
}

// SeasonStats is one row of the expected-statistics leaderboard.
// Rate stats are nil when the provider left them blank.
type SeasonStats struct {
	PlayerID int
	Name     string // combined "Last, First" column
	PA       int

	BA         *float64
	WOBA       *float64
	XWOBA      *float64
	SeasonDiff *float64 // est_woba_minus_woba_diff: provider sign is xwOBA − wOBA
	XBA        *float64
	XSLG       *float64
}

// ExitVeloStats is one row of the exit-velocity/barrels leaderboard.
type ExitVeloStats struct {
	PlayerID int

	AvgHitSpeed *float64
	AvgHitAngle *float64
	EV95Percent *float64 // hard-hit rate (% of batted balls ≥ 95 mph)
	BrlPercent  *float64
	MaxHitSpeed *float64
}

// ---- Preprocessed events ----

// PlateAppearance is one PA-ending event after filtering and coercion.
// XWOBAValue is the estimated wOBA when the provider supplied one, else
// the realized value (strikeouts, walks and HBP carry no batted-ball
// estimate, so the realized outcome stands in for it).
type PlateAppearance struct {
	Batter      int
	GameDate    string
	AtBatNumber int
	WOBAValue   float64
	WOBADenom   float64
	XWOBAValue  float64
}

// ---- Rolling results ----

// WindowResult holds the latest rolling ratios and their trend sequences
// for a single window size. Headline values are nil when the trailing
// weight sum at the final position is zero.
type WindowResult struct {
	RollingWOBA  *float64  `json:"rolling_woba"`
	RollingXWOBA *float64  `json:"rolling_xwoba"`
	RollingDiff  *float64  `json:"diff_rolling_OBA"`
	TrendWOBA    []float64 `json:"trend_woba"`
	TrendXWOBA   []float64 `json:"trend_xwoba"`
	TrendDiff    []float64 `json:"trend_diff"`
}

// RollingResult is the per-batter rolling block: total qualifying PA count
// and one WindowResult per window size that fit within it.
type RollingResult struct {
	TotalPA int
	Windows map[int]WindowResult
}

// ---- Merged output ----

// Player is one merged record in the final dataset. Batted-ball fields and
// the rolling block are omitted from JSON entirely when absent; season rate
// stats serialize as null when the provider left them blank.
type Player struct {
	PlayerID   int      `json:"player_id"`
	Name       string   `json:"name"`
	Team       string   `json:"team"`
	PA         int      `json:"pa"`
	BattingAvg *float64 `json:"batting_avg"`
	WOBA       *float64 `json:"wOBA"`
	XWOBA      *float64 `json:"xwOBA"`
	DiffSeason *float64 `json:"diff_season"`
	XBA        *float64 `json:"xBA"`
	XSLG       *float64 `json:"xSLG"`

	ExitVelocity    *float64 `json:"exit_velocity,omitempty"`
	LaunchAngle     *float64 `json:"launch_angle,omitempty"`
	HardHitPct      *float64 `json:"hard_hit_pct,omitempty"`
	BarrelPct       *float64 `json:"barrel_pct,omitempty"`
	MaxExitVelocity *float64 `json:"max_exit_velocity,omitempty"`

	Rolling       map[int]WindowResult `json:"rolling,omitempty"`
	TotalPAEvents int                  `json:"total_pa_events,omitempty"`

	// DiffRolling is the primary ranking differential: the preferred
	// window's headline diff, else the negated season diff, else 0.
	DiffRolling float64 `json:"diff_rolling_OBA"`
}

// Dataset is the full serialized output: run metadata plus the ranked
// player list, most underestimated first.
type Dataset struct {
	GeneratedAt    string   `json:"generated_at"`
	Season         int      `json:"season"`
	TotalPlayers   int      `json:"total_players"`
	MinPA          int      `json:"min_pa"`
	RollingWindows []int    `json:"rolling_windows"`
	Players        []Player `json:"players"`
}

// SeasonSummary is a lightweight record for the list command.
type SeasonSummary struct {
	Year      int
	Events    int
	Players   int
	FetchedAt string
}

// Package savant provides a minimal client for the Baseball Savant CSV
// endpoints: the expected-statistics and exit-velocity leaderboards, and
// the pitch-level Statcast search.
package savant

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pable/go-mlb-metrics/internal/model"
)

// defaultBaseURL is the root endpoint for Baseball Savant.
const defaultBaseURL = "https://baseballsavant.mlb.com"

// statcastChunkDays bounds each Statcast search request; the endpoint
// truncates large result sets, so a full season is fetched in date chunks.
const statcastChunkDays = 6

// Client is a Baseball Savant CSV client.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// nameColumn is the combined "Last, First" leaderboard column. The header
// cell itself contains a comma, which the CSV reader handles via quoting.
const nameColumn = "last_name, first_name"

// ExpectedStats fetches the season expected-statistics leaderboard for
// every batter with at least one PA.
func (c *Client) ExpectedStats(year int) ([]model.SeasonStats, error) {
	q := url.Values{
		"type":     {"batter"},
		"year":     {strconv.Itoa(year)},
		"position": {""},
		"team":     {""},
		"min":      {"1"},
		"csv":      {"true"},
	}
	rows, err := c.getCSV("/leaderboard/expected_statistics?" + q.Encode())
	if err != nil {
		return nil, err
	}

	stats := make([]model.SeasonStats, 0, len(rows.records))
	for _, rec := range rows.records {
		id, err := strconv.Atoi(rows.get(rec, "player_id"))
		if err != nil {
			continue
		}
		stats = append(stats, model.SeasonStats{
			PlayerID:   id,
			Name:       rows.get(rec, nameColumn),
			PA:         atoiOrZero(rows.get(rec, "pa")),
			BA:         optFloat(rows.get(rec, "ba")),
			WOBA:       optFloat(rows.get(rec, "woba")),
			XWOBA:      optFloat(rows.get(rec, "est_woba")),
			SeasonDiff: optFloat(rows.get(rec, "est_woba_minus_woba_diff")),
			XBA:        optFloat(rows.get(rec, "est_ba")),
			XSLG:       optFloat(rows.get(rec, "est_slg")),
		})
	}
	return stats, nil
}

// ExitVeloBarrels fetches the exit-velocity/barrels leaderboard for every
// batter with at least one batted-ball event.
func (c *Client) ExitVeloBarrels(year int) ([]model.ExitVeloStats, error) {
	q := url.Values{
		"type":     {"batter"},
		"year":     {strconv.Itoa(year)},
		"position": {""},
		"team":     {""},
		"min":      {"1"},
		"csv":      {"true"},
	}
	rows, err := c.getCSV("/leaderboard/exit_velocity_barrels?" + q.Encode())
	if err != nil {
		return nil, err
	}

	stats := make([]model.ExitVeloStats, 0, len(rows.records))
	for _, rec := range rows.records {
		id, err := strconv.Atoi(rows.get(rec, "player_id"))
		if err != nil {
			continue
		}
		stats = append(stats, model.ExitVeloStats{
			PlayerID:    id,
			AvgHitSpeed: optFloat(rows.get(rec, "avg_hit_speed")),
			AvgHitAngle: optFloat(rows.get(rec, "avg_hit_angle")),
			EV95Percent: optFloat(rows.get(rec, "ev95percent")),
			BrlPercent:  optFloat(rows.get(rec, "brl_percent")),
			MaxHitSpeed: optFloat(rows.get(rec, "max_hit_speed")),
		})
	}
	return stats, nil
}

// Statcast fetches pitch-level rows for the inclusive date range
// [start, end] (both YYYY-MM-DD), requesting the range in small chunks.
// The progress callback, if non-nil, is invoked before each chunk request.
func (c *Client) Statcast(start, end string, progress func(chunkStart, chunkEnd string)) ([]model.RawEvent, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, fmt.Errorf("start date %q: %w", start, err)
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return nil, fmt.Errorf("end date %q: %w", end, err)
	}

	var events []model.RawEvent
	for cur := startDate; !cur.After(endDate); cur = cur.AddDate(0, 0, statcastChunkDays+1) {
		chunkEnd := cur.AddDate(0, 0, statcastChunkDays)
		if chunkEnd.After(endDate) {
			chunkEnd = endDate
		}
		cs, ce := cur.Format("2006-01-02"), chunkEnd.Format("2006-01-02")
		if progress != nil {
			progress(cs, ce)
		}
		chunk, err := c.statcastChunk(cs, ce)
		if err != nil {
			return nil, fmt.Errorf("statcast %s..%s: %w", cs, ce, err)
		}
		events = append(events, chunk...)
	}
	return events, nil
}

func (c *Client) statcastChunk(start, end string) ([]model.RawEvent, error) {
	q := url.Values{
		"all":          {"true"},
		"type":         {"details"},
		"player_type":  {"batter"},
		"game_date_gt": {start},
		"game_date_lt": {end},
	}
	rows, err := c.getCSV("/statcast_search/csv?" + q.Encode())
	if err != nil {
		return nil, err
	}

	events := make([]model.RawEvent, 0, len(rows.records))
	for _, rec := range rows.records {
		batter, err := strconv.Atoi(rows.get(rec, "batter"))
		if err != nil {
			continue
		}
		events = append(events, model.RawEvent{
			Batter:        batter,
			GameDate:      rows.get(rec, "game_date"),
			AtBatNumber:   atoiOrZero(rows.get(rec, "at_bat_number")),
			Events:        normalizeNull(rows.get(rec, "events")),
			WOBAValue:     rows.get(rec, "woba_value"),
			WOBADenom:     rows.get(rec, "woba_denom"),
			EstimatedWOBA: normalizeNull(rows.get(rec, "estimated_woba_using_speedangle")),
			InningTopBot:  rows.get(rec, "inning_topbot"),
			HomeTeam:      rows.get(rec, "home_team"),
			AwayTeam:      rows.get(rec, "away_team"),
		})
	}
	return events, nil
}

// csvRows pairs parsed records with a header-name → column-index map.
type csvRows struct {
	index   map[string]int
	records [][]string
}

func (r *csvRows) get(rec []string, col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// getCSV performs a GET request and parses the CSV response.
func (c *Client) getCSV(path string) (*csvRows, error) {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", path, resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row: %w", err)
		}
		records = append(records, rec)
	}
	return &csvRows{index: index, records: records}, nil
}

// normalizeNull maps the provider's literal "null" placeholder to empty.
func normalizeNull(s string) string {
	if strings.EqualFold(s, "null") {
		return ""
	}
	return s
}

func optFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func atoiOrZero(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

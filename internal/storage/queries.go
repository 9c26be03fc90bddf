package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pable/go-mlb-metrics/internal/model"
)

// HasEvents reports whether pitch-level events are cached for a season.
func (db *DB) HasEvents(season int) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM events WHERE season = ?", season).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ReplaceEvents swaps in the full event set for a season and stamps it.
func (db *DB) ReplaceEvents(season int, events []model.RawEvent) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM events WHERE season = ?", season); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO events(
			season, batter, game_date, at_bat_number, events,
			woba_value, woba_denom, estimated_woba,
			inning_topbot, home_team, away_team
		) VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ev := range events {
		_, err = stmt.Exec(
			season, ev.Batter, ev.GameDate, ev.AtBatNumber, ev.Events,
			ev.WOBAValue, ev.WOBADenom, ev.EstimatedWOBA,
			ev.InningTopBot, ev.HomeTeam, ev.AwayTeam,
		)
		if err != nil {
			return fmt.Errorf("insert event for batter %d: %w", ev.Batter, err)
		}
	}

	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO seasons(year, fetched_at) VALUES (?, ?)",
		season, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadEvents returns all cached pitch-level events for a season, ordered
// by (game date, at-bat number).
func (db *DB) LoadEvents(season int) ([]model.RawEvent, error) {
	rows, err := db.conn.Query(`
		SELECT batter, game_date, at_bat_number, events,
		       woba_value, woba_denom, estimated_woba,
		       inning_topbot, home_team, away_team
		FROM events WHERE season = ?
		ORDER BY game_date, at_bat_number`, season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.RawEvent
	for rows.Next() {
		var ev model.RawEvent
		if err := rows.Scan(
			&ev.Batter, &ev.GameDate, &ev.AtBatNumber, &ev.Events,
			&ev.WOBAValue, &ev.WOBADenom, &ev.EstimatedWOBA,
			&ev.InningTopBot, &ev.HomeTeam, &ev.AwayTeam,
		); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// ReplaceExpectedStats swaps in the expected-statistics leaderboard for a season.
func (db *DB) ReplaceExpectedStats(season int, stats []model.SeasonStats) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM expected_stats WHERE season = ?", season); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO expected_stats(
			season, player_id, name, pa, ba, woba, xwoba, season_diff, xba, xslg
		) VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range stats {
		_, err = stmt.Exec(
			season, s.PlayerID, s.Name, s.PA,
			nullFloat(s.BA), nullFloat(s.WOBA), nullFloat(s.XWOBA),
			nullFloat(s.SeasonDiff), nullFloat(s.XBA), nullFloat(s.XSLG),
		)
		if err != nil {
			return fmt.Errorf("insert expected_stats for %d: %w", s.PlayerID, err)
		}
	}

	// Stamp the season here too: the leaderboard is the mandatory part of a
	// fetch, and a season without pitch-level events is still usable.
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO seasons(year, fetched_at) VALUES (?, ?)",
		season, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadExpectedStats returns the cached expected-statistics leaderboard for a season.
func (db *DB) LoadExpectedStats(season int) ([]model.SeasonStats, error) {
	rows, err := db.conn.Query(`
		SELECT player_id, name, pa, ba, woba, xwoba, season_diff, xba, xslg
		FROM expected_stats WHERE season = ? ORDER BY player_id`, season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []model.SeasonStats
	for rows.Next() {
		var (
			s                                  model.SeasonStats
			ba, woba, xwoba, diff, xba, xslg   sql.NullFloat64
		)
		if err := rows.Scan(&s.PlayerID, &s.Name, &s.PA, &ba, &woba, &xwoba, &diff, &xba, &xslg); err != nil {
			return nil, err
		}
		s.BA = fromNull(ba)
		s.WOBA = fromNull(woba)
		s.XWOBA = fromNull(xwoba)
		s.SeasonDiff = fromNull(diff)
		s.XBA = fromNull(xba)
		s.XSLG = fromNull(xslg)
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// ReplaceExitVelo swaps in the exit-velocity/barrels leaderboard for a season.
func (db *DB) ReplaceExitVelo(season int, stats []model.ExitVeloStats) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM exit_velo WHERE season = ?", season); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO exit_velo(
			season, player_id, avg_hit_speed, avg_hit_angle,
			ev95_percent, brl_percent, max_hit_speed
		) VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range stats {
		_, err = stmt.Exec(
			season, s.PlayerID,
			nullFloat(s.AvgHitSpeed), nullFloat(s.AvgHitAngle),
			nullFloat(s.EV95Percent), nullFloat(s.BrlPercent), nullFloat(s.MaxHitSpeed),
		)
		if err != nil {
			return fmt.Errorf("insert exit_velo for %d: %w", s.PlayerID, err)
		}
	}
	return tx.Commit()
}

// LoadExitVelo returns the cached exit-velocity leaderboard for a season.
// An empty result is not an error; the merge degrades gracefully.
func (db *DB) LoadExitVelo(season int) ([]model.ExitVeloStats, error) {
	rows, err := db.conn.Query(`
		SELECT player_id, avg_hit_speed, avg_hit_angle, ev95_percent, brl_percent, max_hit_speed
		FROM exit_velo WHERE season = ? ORDER BY player_id`, season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []model.ExitVeloStats
	for rows.Next() {
		var (
			s                            model.ExitVeloStats
			speed, angle, ev95, brl, max sql.NullFloat64
		)
		if err := rows.Scan(&s.PlayerID, &speed, &angle, &ev95, &brl, &max); err != nil {
			return nil, err
		}
		s.AvgHitSpeed = fromNull(speed)
		s.AvgHitAngle = fromNull(angle)
		s.EV95Percent = fromNull(ev95)
		s.BrlPercent = fromNull(brl)
		s.MaxHitSpeed = fromNull(max)
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// ListSeasons summarizes what the cache holds, newest season first.
func (db *DB) ListSeasons() ([]model.SeasonSummary, error) {
	rows, err := db.conn.Query(`
		SELECT s.year, s.fetched_at,
		       (SELECT COUNT(1) FROM events e WHERE e.season = s.year),
		       (SELECT COUNT(1) FROM expected_stats x WHERE x.season = s.year)
		FROM seasons s ORDER BY s.year DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SeasonSummary
	for rows.Next() {
		var s model.SeasonSummary
		if err := rows.Scan(&s.Year, &s.FetchedAt, &s.Events, &s.Players); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DropSeason removes everything cached for a season.
func (db *DB) DropSeason(season int) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"events", "expected_stats", "exit_velo"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE season = ?", season); err != nil {
			return err
		}
	}
	if _, err := tx.Exec("DELETE FROM seasons WHERE year = ?", season); err != nil {
		return err
	}
	return tx.Commit()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// seedDemoChartWeek loads one example chart week so the API is
// exercisable without a full chart dump. No-op when the table is
// missing or already populated.
func seedDemoChartWeek(ctx context.Context, db *sql.DB) error {
	exists, err := tableExists(ctx, db, "hot_100_current")
	if err != nil {
		return fmt.Errorf("check chart table: %w", err)
	}
	if !exists {
		log.Warn().Msg("Chart table missing, skipping demo seed (run cmd/migrate first)")
		return nil
	}

	var count int
	if err := db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM hot_100_current
	`).Scan(&count); err != nil {
		return fmt.Errorf("count chart entries: %w", err)
	}
	if count > 0 {
		return nil
	}

	type seedEntry struct {
		Title        string
		Performer    string
		WeeksOnChart string
	}

	const chartWeek = "2024-03-02"
	entries := []seedEntry{
		{Title: "Texas Hold 'Em", Performer: "Beyonce", WeeksOnChart: "3"},
		{Title: "Lose Control", Performer: "Teddy Swims", WeeksOnChart: "32"},
		{Title: "Carnival", Performer: "Kanye West & Ty Dolla $ign", WeeksOnChart: "2"},
		{Title: "Beautiful Things", Performer: "Benson Boone", WeeksOnChart: "6"},
		{Title: "Lovin On Me", Performer: "Jack Harlow", WeeksOnChart: "16"},
		{Title: "Yeah Glo!", Performer: "GloRilla", WeeksOnChart: "NA"},
		{Title: "Agora Hills", Performer: "Doja Cat", WeeksOnChart: "23"},
		{Title: "Greedy", Performer: "Tate McRae", WeeksOnChart: "24"},
		{Title: "Snooze", Performer: "SZA", WeeksOnChart: "52"},
		{Title: "Stick Season", Performer: "Noah Kahan", WeeksOnChart: "33"},
		{Title: "I Remember Everything", Performer: "Zach Bryan Featuring Kacey Musgraves", WeeksOnChart: "27"},
		{Title: "Redrum", Performer: "21 Savage", WeeksOnChart: "9"},
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	for i, entry := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO hot_100_current (chart_week, current_week, title, performer, last_week, peak_pos, wks_on_chart)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, chartWeek, fmt.Sprint(i+1), entry.Title, entry.Performer, "NA", fmt.Sprint(i+1), entry.WeeksOnChart); err != nil {
			return fmt.Errorf("insert demo entry %q: %w", entry.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	tx = nil

	log.Info().Str("chart_week", chartWeek).Int("entries", len(entries)).Msg("Seeded demo chart week")
	return nil
}

func tableExists(ctx context.Context, db *sql.DB, table string) (bool, error) {
	var name sql.NullString
	if err := db.QueryRowContext(ctx, `SELECT to_regclass($1)`, table).Scan(&name); err != nil {
		return false, err
	}
	return name.Valid, nil
}

package store

import (
	"context"
	"fmt"
	"time"
)

// ChartEntry is one ranked row of a weekly chart snapshot. Rank is
// implied by retrieval order. WeeksOnChart is kept as the raw column
// text because the table stores the sentinel "NA" for new entries; the
// caller normalizes it.
type ChartEntry struct {
	Title        string
	Performer    string
	WeeksOnChart string
}

const chartWeekLayout = "2006-01-02"

// FetchWeek returns the chart rows for the given snapshot week in rank
// order, capped at limit. May return fewer rows than limit; returns
// ErrNoSongs when the week has none.
func (s *Store) FetchWeek(ctx context.Context, week time.Time, limit int) ([]ChartEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, performer, wks_on_chart
		FROM hot_100_current
		WHERE chart_week = $1
		ORDER BY current_week::int ASC
		LIMIT $2
	`, week.Format(chartWeekLayout), limit)
	if err != nil {
		return nil, fmt.Errorf("query chart week: %w", err)
	}
	defer rows.Close()

	var entries []ChartEntry
	for rows.Next() {
		var entry ChartEntry
		if err := rows.Scan(&entry.Title, &entry.Performer, &entry.WeeksOnChart); err != nil {
			return nil, fmt.Errorf("scan chart entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chart entries: %w", err)
	}

	if len(entries) == 0 {
		return nil, ErrNoSongs
	}

	return entries, nil
}

// EntryCount reports the total number of rows in the chart table. Used
// by the readiness probe to tell an empty table from a broken one.
func (s *Store) EntryCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM hot_100_current
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count chart entries: %w", err)
	}
	return count, nil
}

package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var fetchWeekQuery = regexp.QuoteMeta(`
		SELECT title, performer, wks_on_chart
		FROM hot_100_current
		WHERE chart_week = $1
		ORDER BY current_week::int ASC
		LIMIT $2
	`)

func TestFetchWeekReturnsRowsInRankOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(fetchWeekQuery).
		WithArgs("2024-03-02", 3).
		WillReturnRows(sqlmock.NewRows([]string{"title", "performer", "wks_on_chart"}).
			AddRow("Texas Hold 'Em", "Beyonce", "3").
			AddRow("Lose Control", "Teddy Swims", "32").
			AddRow("Carnival", "Kanye West & Ty Dolla $ign", "NA"))

	week := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)
	entries, err := s.FetchWeek(context.Background(), week, 3)
	if err != nil {
		t.Fatalf("FetchWeek error: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Title != "Texas Hold 'Em" || entries[2].WeeksOnChart != "NA" {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFetchWeekEmptyWeekIsErrNoSongs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(fetchWeekQuery).
		WithArgs("2024-03-09", 10).
		WillReturnRows(sqlmock.NewRows([]string{"title", "performer", "wks_on_chart"}))

	week := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)
	_, err = s.FetchWeek(context.Background(), week, 10)
	if !errors.Is(err, ErrNoSongs) {
		t.Fatalf("expected ErrNoSongs, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFetchWeekWrapsQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(fetchWeekQuery).
		WithArgs("2024-03-02", 5).
		WillReturnError(errors.New("connection refused"))

	week := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)
	_, err = s.FetchWeek(context.Background(), week, 5)
	if err == nil {
		t.Fatal("expected error but got nil")
	}
	if errors.Is(err, ErrNoSongs) {
		t.Fatalf("query failure must not look like an empty week: %v", err)
	}
}

func TestEntryCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT COUNT(*)
		FROM hot_100_current
	`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(341200)))

	count, err := s.EntryCount(context.Background())
	if err != nil {
		t.Fatalf("EntryCount error: %v", err)
	}
	if count != 341200 {
		t.Fatalf("expected 341200, got %d", count)
	}
}

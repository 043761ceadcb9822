// Package chartdate maps arbitrary calendar dates onto the weekly
// Saturday snapshots the chart table is keyed by.
package chartdate

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate signals a date string that could not be parsed or
// validated. It is distinct from "no chart exists for that week", which
// only the store can decide.
var ErrInvalidDate = errors.New("invalid date format")

// Layout is the canonical wire format for dates.
const Layout = "2006-01-02"

// chartWeekday is the day the chart is published on.
const chartWeekday = time.Saturday

// Resolved holds a validated input date together with the snapshot key
// used to query the chart table. Date is what gets echoed back to the
// caller; Week is only ever used for the lookup.
type Resolved struct {
	Date time.Time
	Week time.Time
}

// Resolve normalizes raw into a canonical date and derives the next
// chart Saturday on or after it. A Saturday input resolves to itself.
func Resolve(raw string) (Resolved, error) {
	date, err := time.Parse(Layout, strings.TrimSpace(raw))
	if err != nil {
		return Resolved{}, ErrInvalidDate
	}

	if !validSegments(date.Format(Layout)) {
		return Resolved{}, ErrInvalidDate
	}

	return Resolved{
		Date: date,
		Week: nextWeekday(date, chartWeekday),
	}, nil
}

// validSegments checks the canonical form decomposes into three
// non-negative integer segments with month <= 12 and day <= 31. This is
// deliberately looser than full calendar validation; a day the calendar
// doesn't have simply finds no chart week later.
func validSegments(date string) bool {
	segments := strings.Split(date, "-")
	if len(segments) != 3 {
		return false
	}

	values := make([]int, 0, 3)
	for _, segment := range segments {
		n, err := strconv.Atoi(segment)
		if err != nil || n < 0 {
			return false
		}
		values = append(values, n)
	}

	month, day := values[1], values[2]
	return month <= 12 && day <= 31
}

// nextWeekday returns the first date on or after d whose weekday is day.
func nextWeekday(d time.Time, day time.Weekday) time.Time {
	offset := (7 + int(day) - int(d.Weekday())) % 7
	return d.AddDate(0, 0, offset)
}

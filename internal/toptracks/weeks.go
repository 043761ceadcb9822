package toptracks

import (
	"strconv"
	"strings"
)

// notApplicableWeeks is the store's sentinel for entries that have no
// weeks-on-chart count yet.
const notApplicableWeeks = "NA"

// weeksOnChart is the parsed wks_on_chart column: either a count or the
// sentinel. Keeping the sentinel tagged instead of mapping it straight
// to an int avoids silently misparsing if the store convention changes.
type weeksOnChart struct {
	count         int
	notApplicable bool
}

func parseWeeksOnChart(raw string) weeksOnChart {
	raw = strings.TrimSpace(raw)
	if raw == notApplicableWeeks {
		return weeksOnChart{notApplicable: true}
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return weeksOnChart{notApplicable: true}
	}
	return weeksOnChart{count: n}
}

// value maps the sentinel to zero at the response boundary.
func (w weeksOnChart) value() int {
	if w.notApplicable {
		return 0
	}
	return w.count
}

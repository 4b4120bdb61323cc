// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"fmt"
	"time"
)

var monthAbbreviations = map[time.Month]string{
	time.January:   "Jan",
	time.February:  "Feb",
	time.March:     "Mar",
	time.April:     "Apr",
	time.May:       "May",
	time.June:      "Jun",
	time.July:      "Jul",
	time.August:    "Aug",
	time.September: "Sep",
	time.October:   "Oct",
	time.November:  "Nov",
	time.December:  "Dec",
}

// MonthStart returns the first instant of the UTC calendar month containing t.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthLabel formats a month as "Mar 2026".
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", monthAbbreviations[t.Month()], t.Year())
}

// MonthSeries returns the starts of the last n calendar months ending with the
// month containing now, oldest first. Chart series must have no gaps.
func MonthSeries(now time.Time, n int) []time.Time {
	current := MonthStart(now)
	series := make([]time.Time, n)
	for i := 0; i < n; i++ {
		series[n-1-i] = current.AddDate(0, -i, 0)
	}
	return series
}

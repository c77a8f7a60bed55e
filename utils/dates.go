// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DayKey formats t as a local-calendar "YYYY-MM-DD" bucket key. Local
// components on purpose, not UTC: day buckets follow the salon's clock.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

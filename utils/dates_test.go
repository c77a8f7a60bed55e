package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayKey(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)

	// Local calendar components, not UTC: 01:30 UTC on the 8th is still
	// the 7th at UTC-3.
	utc := time.Date(2026, 9, 8, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-09-08", DayKey(utc))
	assert.Equal(t, "2026-09-07", DayKey(utc.In(loc)))

	// Zero-padded months and days keep lexicographic order chronological
	assert.Equal(t, "2026-01-02", DayKey(time.Date(2026, 1, 2, 23, 0, 0, 0, time.UTC)))
}

func TestBeginningOfDay(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	ts := time.Date(2026, 9, 7, 17, 45, 12, 999, loc)

	got := BeginningOfDay(ts)
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2026, 9, 7, 23, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 9, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, DaysBetween(start, end))
	assert.Equal(t, 0, DaysBetween(start, start))
}

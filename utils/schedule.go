// utils/schedule.go
package utils

import (
	"strconv"
	"strings"
	"time"

	"salonflow-backend/models"
)

// ParseClock parses an "HH:MM" clock string into minutes since midnight.
func ParseClock(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// MinuteOfDay returns t's minutes since local midnight.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// WithinBusinessHours reports whether [start, end) fits the salon's
// configured hours. Fails open when enforcement is off or the config is
// incomplete. The comparison uses minute-of-day only: an end that wraps
// past midnight is judged by its wrapped clock value, so such an
// appointment passes whenever that minute is still before closing.
func WithinBusinessHours(start, end time.Time, salon *models.Salon) bool {
	if !salon.BlockOutsideHours {
		return true
	}
	if salon.OpenTime == "" || salon.CloseTime == "" || salon.WorkingDays == nil {
		return true
	}

	if !salon.WorkingDays.Contains(int(start.Weekday())) {
		return false
	}

	openMin, okOpen := ParseClock(salon.OpenTime)
	closeMin, okClose := ParseClock(salon.CloseTime)
	if !okOpen || !okClose {
		return true
	}

	return MinuteOfDay(start) >= openMin && MinuteOfDay(end) <= closeMin
}

// Overlaps is the half-open interval test: [aStart, aEnd) and
// [bStart, bEnd) collide iff aStart < bEnd && aEnd > bStart. It mirrors
// the SQL predicate conflict detection runs in the store; keep the two
// in sync.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

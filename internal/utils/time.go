package utils

import (
	"math"
	"time"

	"github.com/rajlakheradev-creator/habitctl/internal/constants"
)

// Midnight truncates t to 00:00:00 on its calendar day, preserving location.
// time.Truncate works on absolute durations and misbehaves across DST
// transitions, so the date is rebuilt explicitly.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateString formats t as the standard calendar-date string (YYYY-MM-DD).
func DateString(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	return Midnight(a).Equal(Midnight(b.In(a.Location())))
}

// DaysBetween returns the number of calendar-day boundaries between a and b
// (positive when b is after a). Hours are irrelevant; only dates count.
// Rounding absorbs the 23- and 25-hour days around DST transitions, which
// would otherwise shift the result by one.
func DaysBetween(a, b time.Time) int {
	am := Midnight(a)
	bm := Midnight(b.In(a.Location()))
	return int(math.Round(bm.Sub(am).Hours() / 24))
}

package utils

import (
	"time"

	"github.com/strivetrack/strivetrack-api/internal/constants"
)

// Today returns the current UTC calendar day.
func Today() string {
	return time.Now().UTC().Format(constants.DateLayout)
}

// ParseDay validates a YYYY-MM-DD string.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(constants.DateLayout, s)
}

// StartOfDay returns midnight UTC of t's day.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CurrentStreak counts consecutive days ending today, or ending yesterday
// when today has no entry yet. days must be YYYY-MM-DD strings in any order;
// duplicates are ignored.
func CurrentStreak(days []string, today time.Time) int {
	set := make(map[string]struct{}, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}

	cursor := StartOfDay(today)
	if _, ok := set[cursor.Format(constants.DateLayout)]; !ok {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		if _, ok := set[cursor.Format(constants.DateLayout)]; !ok {
			return streak
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
}

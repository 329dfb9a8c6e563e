package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentStreak(t *testing.T) {
	today := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		days []string
		want int
	}{
		{"empty", nil, 0},
		{"today only", []string{"2024-03-10"}, 1},
		{"ends yesterday", []string{"2024-03-09", "2024-03-08"}, 2},
		{"gap breaks streak", []string{"2024-03-10", "2024-03-09", "2024-03-07"}, 2},
		{"stale", []string{"2024-03-05"}, 0},
		{"duplicates ignored", []string{"2024-03-10", "2024-03-10", "2024-03-09"}, 2},
		{"across month", []string{"2024-03-01", "2024-02-29", "2024-02-28"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentStreak(tt.days, today))
		})
	}
}

func TestCurrentStreak_LeapDay(t *testing.T) {
	today := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, CurrentStreak([]string{"2024-03-01", "2024-02-29", "2024-02-28"}, today))
}

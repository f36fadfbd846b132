package services_test

import (
	"testing"
	"time"

	"heirloom/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestAdjacentDates(t *testing.T) {
	min := date(2026, time.January, 1)
	max := date(2026, time.December, 31)

	tests := []struct {
		name     string
		selected time.Time
		wantPrev *time.Time
		wantNext *time.Time
	}{
		{
			name:     "mid-year has both neighbours",
			selected: date(2026, time.June, 15),
			wantPrev: ptr(date(2026, time.June, 14)),
			wantNext: ptr(date(2026, time.June, 16)),
		},
		{
			name:     "first day of the year has no previous",
			selected: date(2026, time.January, 1),
			wantPrev: nil,
			wantNext: ptr(date(2026, time.January, 2)),
		},
		{
			name:     "last day of the year has no next",
			selected: date(2026, time.December, 31),
			wantPrev: ptr(date(2026, time.December, 30)),
			wantNext: nil,
		},
		{
			name:     "month boundary crosses correctly",
			selected: date(2026, time.March, 1),
			wantPrev: ptr(date(2026, time.February, 28)),
			wantNext: ptr(date(2026, time.March, 2)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev, next := services.AdjacentDates(tt.selected, min, max)
			assert.Equal(t, tt.wantPrev, prev)
			assert.Equal(t, tt.wantNext, next)
		})
	}
}

func TestAdjacentDates_SingleDayWindow(t *testing.T) {
	day := date(2026, time.July, 4)
	prev, next := services.AdjacentDates(day, day, day)
	assert.Nil(t, prev)
	assert.Nil(t, next)
}

func TestAdjacentDates_IgnoresClockAndZone(t *testing.T) {
	zone := time.FixedZone("UTC-5", -5*60*60)
	selected := time.Date(2026, time.January, 1, 23, 59, 59, 0, zone)

	prev, next := services.AdjacentDates(selected,
		date(2026, time.January, 1), date(2026, time.December, 31))
	assert.Nil(t, prev)
	assert.Equal(t, ptr(date(2026, time.January, 2)), next)
}

func TestNormalizeDate(t *testing.T) {
	zone := time.FixedZone("UTC+9", 9*60*60)
	got := services.NormalizeDate(time.Date(2026, time.May, 7, 13, 45, 2, 99, zone))
	assert.Equal(t, date(2026, time.May, 7), got)
	assert.Equal(t, time.UTC, got.Location())
}

func ptr(t time.Time) *time.Time {
	return &t
}

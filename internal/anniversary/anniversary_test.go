package anniversary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNext(t *testing.T) {
	tests := []struct {
		name    string
		release time.Time
		today   time.Time
		want    time.Time
	}{
		{
			name:    "not yet passed this year",
			release: date(2000, time.June, 15),
			today:   date(2025, time.June, 10),
			want:    date(2025, time.June, 15),
		},
		{
			name:    "already passed this year",
			release: date(2000, time.June, 15),
			today:   date(2025, time.June, 20),
			want:    date(2026, time.June, 15),
		},
		{
			name:    "anniversary is today",
			release: date(2000, time.June, 15),
			today:   date(2025, time.June, 15),
			want:    date(2025, time.June, 15),
		},
		{
			name:    "new year boundary",
			release: date(1999, time.January, 1),
			today:   date(2025, time.December, 31),
			want:    date(2026, time.January, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Next(tt.release, tt.today)
			assert.Equal(t, tt.want, got)
			assert.False(t, got.Before(tt.today))
			assert.Equal(t, tt.release.Month(), got.Month())
			assert.Equal(t, tt.release.Day(), got.Day())
		})
	}
}

func TestNextIgnoresTimeOfDay(t *testing.T) {
	release := date(2000, time.June, 15)
	today := time.Date(2025, time.June, 15, 23, 30, 0, 0, time.UTC)

	// Late on the anniversary itself still counts as the anniversary.
	assert.Equal(t, date(2025, time.June, 15), Next(release, today))
}

func TestNextMilestone(t *testing.T) {
	tests := []struct {
		name      string
		release   time.Time
		today     time.Time
		wantDate  time.Time
		wantYears int
	}{
		{
			name:      "exact multiple already passed",
			release:   date(2000, time.January, 1),
			today:     date(2025, time.March, 1),
			wantDate:  date(2030, time.January, 1),
			wantYears: 30,
		},
		{
			name:      "exact multiple not yet passed",
			release:   date(2000, time.June, 15),
			today:     date(2025, time.June, 10),
			wantDate:  date(2025, time.June, 15),
			wantYears: 25,
		},
		{
			name:      "round up to next multiple",
			release:   date(2003, time.June, 15),
			today:     date(2025, time.March, 1),
			wantDate:  date(2028, time.June, 15),
			wantYears: 25,
		},
		{
			name:      "milestone is today",
			release:   date(2000, time.June, 15),
			today:     date(2025, time.June, 15),
			wantDate:  date(2025, time.June, 15),
			wantYears: 25,
		},
		{
			name:      "release this year",
			release:   date(2025, time.February, 1),
			today:     date(2025, time.March, 1),
			wantDate:  date(2030, time.February, 1),
			wantYears: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotDate, gotYears := NextMilestone(tt.release, tt.today)
			assert.Equal(t, tt.wantDate, gotDate)
			assert.Equal(t, tt.wantYears, gotYears)
			assert.Zero(t, gotYears%5)
			assert.GreaterOrEqual(t, gotYears, 0)
			assert.False(t, gotDate.Before(tt.today))
		})
	}
}

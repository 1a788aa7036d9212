package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFacility_RateFor(t *testing.T) {
	f := Facility{WeekdayRateCents: 2500, WeekendRateCents: 3500}

	tests := []struct {
		name string
		day  time.Time
		want int64
	}{
		{"monday", time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC), 2500},
		{"friday", time.Date(2026, 10, 23, 21, 0, 0, 0, time.UTC), 2500},
		{"saturday", time.Date(2026, 10, 24, 9, 0, 0, 0, time.UTC), 3500},
		{"sunday", time.Date(2026, 10, 25, 9, 0, 0, 0, time.UTC), 3500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.RateFor(tt.day))
		})
	}
}

func TestListParams_Values(t *testing.T) {
	yes := true
	no := false

	assert.Equal(t, "", ListParams{}.Values().Encode())
	assert.Equal(t, "available=true&limit=10&offset=20&venueId=v1",
		ListParams{VenueID: "v1", Available: &yes, Limit: 10, Offset: 20}.Values().Encode())
	assert.Equal(t, "available=false", ListParams{Available: &no}.Values().Encode())
}

func TestScheduleParams_Values(t *testing.T) {
	assert.Equal(t, "from=2026-10-19&to=2026-10-25",
		ScheduleParams{From: "2026-10-19", To: "2026-10-25"}.Values().Encode())
}

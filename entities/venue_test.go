package entities_test

import (
	"testing"
	"time"

	"venues/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVenueEventDay(t *testing.T) {
	venue := entities.Venue{Timezone: "America/New_York"}

	// 2026-03-15 02:30 UTC is still 2026-03-14 in New York
	utc := time.Date(2026, 3, 15, 2, 30, 0, 0, time.UTC)

	day, err := venue.EventDay(utc)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", day)
}

func TestVenueEventDay_SameInstantDifferentVenues(t *testing.T) {
	instant := time.Date(2026, 7, 1, 23, 0, 0, 0, time.UTC)

	london := entities.Venue{Timezone: "Europe/London"}
	tokyo := entities.Venue{Timezone: "Asia/Tokyo"}

	londonDay, err := london.EventDay(instant)
	require.NoError(t, err)
	tokyoDay, err := tokyo.EventDay(instant)
	require.NoError(t, err)

	assert.Equal(t, "2026-07-02", londonDay)
	assert.Equal(t, "2026-07-02", tokyoDay)

	earlier := instant.Add(-2 * time.Hour)
	londonDay, err = london.EventDay(earlier)
	require.NoError(t, err)
	assert.Equal(t, "2026-07-01", londonDay)
}

func TestVenueEventDay_InvalidTimezone(t *testing.T) {
	venue := entities.Venue{Timezone: "Moon/Crater"}

	_, err := venue.EventDay(time.Now())
	assert.Error(t, err)
}

func TestVenueDayWindow(t *testing.T) {
	venue := entities.Venue{Timezone: "Europe/Warsaw"}

	instant := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	start, end, err := venue.DayWindow(instant)
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, end.Sub(start))
	assert.False(t, start.After(instant))
	assert.True(t, end.After(instant))
}

func TestVenueDayWindow_DSTTransition(t *testing.T) {
	venue := entities.Venue{Timezone: "Europe/Warsaw"}

	// 2026-03-29 is the spring-forward day in Warsaw: 23 hours long
	instant := time.Date(2026, 3, 29, 12, 0, 0, 0, time.UTC)

	start, end, err := venue.DayWindow(instant)
	require.NoError(t, err)

	assert.Equal(t, 23*time.Hour, end.Sub(start))
}

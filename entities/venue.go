package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Venue struct {
	VenueID  uuid.UUID `json:"venue_id" db:"venue_id"`
	Name     string    `json:"name" db:"name"`
	Location string    `json:"location" db:"location"`
	// Timezone is the IANA name of the venue's reference timezone,
	// used to compute calendar-day boundaries for availability.
	Timezone string    `json:"timezone" db:"timezone"`
	Capacity int       `json:"capacity" db:"capacity"`
	Price    Money     `json:"price" db:"price"`
	ImageRef string    `json:"image_ref" db:"image_ref"`
}

type VenueCreateResponse struct {
	VenueID uuid.UUID `json:"venue_id"`
}

// DayWindow returns the [start, end) bounds of the calendar day containing t
// in the venue's reference timezone.
func (v Venue) DayWindow(t time.Time) (time.Time, time.Time, error) {
	loc, err := time.LoadLocation(v.Timezone)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid venue timezone %q: %w", v.Timezone, err)
	}

	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	return start, start.AddDate(0, 0, 1), nil
}

// EventDay returns the calendar day of t in the venue's reference timezone,
// formatted as YYYY-MM-DD. It is stored alongside each booking so the
// exclusive-occupancy constraint can live in the database.
func (v Venue) EventDay(t time.Time) (string, error) {
	loc, err := time.LoadLocation(v.Timezone)
	if err != nil {
		return "", fmt.Errorf("invalid venue timezone %q: %w", v.Timezone, err)
	}

	return t.In(loc).Format("2006-01-02"), nil
}

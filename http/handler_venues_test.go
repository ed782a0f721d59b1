package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"venues/entities"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVenueRepo struct {
	venue            entities.Venue
	availabilityDate time.Time
}

func (f *fakeVenueRepo) Create(ctx context.Context, venue entities.Venue) (entities.VenueCreateResponse, error) {
	return entities.VenueCreateResponse{VenueID: f.venue.VenueID}, nil
}

func (f *fakeVenueRepo) Update(ctx context.Context, venue entities.Venue) error {
	return nil
}

func (f *fakeVenueRepo) VenueByID(ctx context.Context, venueID uuid.UUID) (entities.Venue, error) {
	return f.venue, nil
}

func (f *fakeVenueRepo) GetAll(ctx context.Context) ([]entities.Venue, error) {
	return []entities.Venue{f.venue}, nil
}

func (f *fakeVenueRepo) Availability(ctx context.Context, venueID uuid.UUID, date time.Time) (bool, *entities.BookingRequest, error) {
	f.availabilityDate = date
	return true, nil, nil
}

func availabilityRequest(venueID uuid.UUID, date string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/venues/"+venueID.String()+"/availability?date="+url.QueryEscape(date), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(venueID.String())

	return c, rec
}

func TestGetVenueAvailability_DateOnlyUsesVenueTimezone(t *testing.T) {
	venue := entities.Venue{
		VenueID:  uuid.New(),
		Name:     "Blue Note",
		Timezone: "America/New_York",
	}
	repo := &fakeVenueRepo{venue: venue}
	h := &Handler{venueRepo: repo}

	c, rec := availabilityRequest(venue.VenueID, "2025-06-01")
	require.NoError(t, h.GetVenueAvailability(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// the occupancy check must run for the requested day at the venue,
	// not for the UTC day containing its midnight
	day, err := venue.EventDay(repo.availabilityDate)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", day)

	assert.Contains(t, rec.Body.String(), `"2025-06-01T00:00:00-04:00"`)
	assert.Contains(t, rec.Body.String(), `"available":true`)
}

func TestGetVenueAvailability_RFC3339Instant(t *testing.T) {
	venue := entities.Venue{
		VenueID:  uuid.New(),
		Timezone: "Europe/Warsaw",
	}
	repo := &fakeVenueRepo{venue: venue}
	h := &Handler{venueRepo: repo}

	c, rec := availabilityRequest(venue.VenueID, "2025-06-01T22:30:00Z")
	require.NoError(t, h.GetVenueAvailability(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// 22:30 UTC is already past midnight in Warsaw
	day, err := venue.EventDay(repo.availabilityDate)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", day)
}

func TestGetVenueAvailability_InvalidDate(t *testing.T) {
	venue := entities.Venue{
		VenueID:  uuid.New(),
		Timezone: "UTC",
	}
	h := &Handler{venueRepo: &fakeVenueRepo{venue: venue}}

	c, _ := availabilityRequest(venue.VenueID, "June 1st")
	err := h.GetVenueAvailability(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

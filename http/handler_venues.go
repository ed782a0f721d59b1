package http

import (
	"net/http"
	"time"

	"venues/entities"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (h *Handler) PostVenues(c echo.Context) error {
	var venue entities.Venue

	err := c.Bind(&venue)
	if err != nil {
		return err
	}

	if venue.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "venue name is required")
	}
	if venue.Timezone == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "venue timezone is required")
	}
	if _, err := time.LoadLocation(venue.Timezone); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown timezone: "+venue.Timezone)
	}
	if venue.Price.Amount.IsNegative() {
		return echo.NewHTTPError(http.StatusBadRequest, "venue price must not be negative")
	}

	resp, err := h.venueRepo.Create(c.Request().Context(), venue)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) PutVenues(c echo.Context) error {
	venueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid venue id")
	}

	var venue entities.Venue
	if err := c.Bind(&venue); err != nil {
		return err
	}
	venue.VenueID = venueID

	if venue.Timezone != "" {
		if _, err := time.LoadLocation(venue.Timezone); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown timezone: "+venue.Timezone)
		}
	}

	if err := h.venueRepo.Update(c.Request().Context(), venue); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetVenues(c echo.Context) error {
	venues, err := h.venueRepo.GetAll(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, venues)
}

func (h *Handler) GetVenueByID(c echo.Context) error {
	venueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid venue id")
	}

	venue, err := h.venueRepo.VenueByID(c.Request().Context(), venueID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, venue)
}

// GetVenueAvailability answers whether the venue is free on the requested
// date, in the venue's own timezone.
func (h *Handler) GetVenueAvailability(c echo.Context) error {
	venueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid venue id")
	}

	venue, err := h.venueRepo.VenueByID(c.Request().Context(), venueID)
	if err != nil {
		return httpError(err)
	}
	loc, err := time.LoadLocation(venue.Timezone)
	if err != nil {
		return httpError(err)
	}

	// a date-only query names a calendar day at the venue, not at UTC
	raw := c.QueryParam("date")
	date, err := time.ParseInLocation("2006-01-02", raw, loc)
	if err != nil {
		date, err = time.Parse(time.RFC3339, raw)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD or RFC3339: "+err.Error())
	}

	available, _, err := h.venueRepo.Availability(c.Request().Context(), venueID, date)
	if err != nil {
		return httpError(err)
	}

	windowStart, windowEnd, err := venue.DayWindow(date)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"venue_id":     venueID,
		"date":         date,
		"window_start": windowStart,
		"window_end":   windowEnd,
		"available":    available,
	})
}

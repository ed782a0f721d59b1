package http

import (
	"net/http"

	"venues/entities"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PostEvents creates an event directly, without a booking behind it.
// Admin-only: organizers go through the booking flow.
func (h *Handler) PostEvents(c echo.Context) error {
	var event entities.Event

	err := c.Bind(&event)
	if err != nil {
		return err
	}

	if event.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "event title is required")
	}
	if event.VenueID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "venue_id is required")
	}
	if event.Date.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "event date is required")
	}

	event.EventID = uuid.New()
	event.BookingID = nil
	if event.OrganizerID == uuid.Nil {
		event.OrganizerID = userID(c)
	}

	resp, err := h.eventRepo.Create(c.Request().Context(), event)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) GetEvents(c echo.Context) error {
	events, err := h.eventRepo.GetAll(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, events)
}

func (h *Handler) GetEventByID(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	event, err := h.eventRepo.EventByID(c.Request().Context(), eventID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, event)
}

func (h *Handler) PutEvents(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	existing, err := h.eventRepo.EventByID(c.Request().Context(), eventID)
	if err != nil {
		return httpError(err)
	}
	if !isAdmin(c) && existing.OrganizerID != userID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "not your event")
	}

	var event entities.Event
	if err := c.Bind(&event); err != nil {
		return err
	}
	event.EventID = eventID
	// the booking link is immutable
	event.BookingID = existing.BookingID

	if err := h.eventRepo.Update(c.Request().Context(), event); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteEvent(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	existing, err := h.eventRepo.EventByID(c.Request().Context(), eventID)
	if err != nil {
		return httpError(err)
	}
	if !isAdmin(c) && existing.OrganizerID != userID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "not your event")
	}

	if err := h.eventRepo.Delete(c.Request().Context(), eventID); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

package http

import (
	"net/http"
	"time"

	"venues/entities"
	"venues/monitoring"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type submitBookingRequest struct {
	VenueID uuid.UUID             `json:"venue_id"`
	Details entities.EventDetails `json:"details"`
}

func (h *Handler) PostBookings(c echo.Context) error {
	var req submitBookingRequest

	err := c.Bind(&req)
	if err != nil {
		return err
	}

	if req.VenueID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "venue_id is required")
	}
	if req.Details.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "event title is required")
	}
	if req.Details.Date.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "event date is required")
	}
	if req.Details.Date.Before(time.Now()) {
		return echo.NewHTTPError(http.StatusBadRequest, "event date must be in the future")
	}
	if req.Details.TicketPrice.Amount.IsNegative() {
		return echo.NewHTTPError(http.StatusBadRequest, "ticket price must not be negative")
	}

	booking := entities.BookingRequest{
		BookingID:     uuid.New(),
		OrganizerID:   userID(c),
		VenueID:       req.VenueID,
		Details:       req.Details,
		Status:        entities.BookingStatusPending,
		PaymentStatus: entities.PaymentStatusPending,
		RequestedAt:   time.Now().UTC(),
	}

	resp, err := h.bookingRepo.Submit(c.Request().Context(), booking)
	if err != nil {
		return httpError(err)
	}
	monitoring.BookingsSubmitted.Inc()

	return c.JSON(http.StatusCreated, resp)
}

// GetBookings lists the caller's own bookings; admins see everything.
func (h *Handler) GetBookings(c echo.Context) error {
	ctx := c.Request().Context()

	if isAdmin(c) {
		bookings, err := h.bookingRepo.GetAll(ctx)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, bookings)
	}

	bookings, err := h.bookingRepo.ByOrganizer(ctx, userID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, bookings)
}

func (h *Handler) GetBookingByID(c echo.Context) error {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.bookingRepo.BookingByID(c.Request().Context(), bookingID)
	if err != nil {
		return httpError(err)
	}

	if !isAdmin(c) && booking.OrganizerID != userID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "not your booking")
	}

	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) PutBookingApprove(c echo.Context) error {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.bookingRepo.Approve(c.Request().Context(), bookingID)
	if err != nil {
		monitoring.BookingReviews.WithLabelValues("approve_failed").Inc()
		return httpError(err)
	}
	monitoring.BookingReviews.WithLabelValues("approved").Inc()

	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) PutBookingReject(c echo.Context) error {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.bookingRepo.Reject(c.Request().Context(), bookingID)
	if err != nil {
		monitoring.BookingReviews.WithLabelValues("reject_failed").Inc()
		return httpError(err)
	}
	monitoring.BookingReviews.WithLabelValues("rejected").Inc()

	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) DeleteBooking(c echo.Context) error {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	err = h.bookingRepo.Delete(c.Request().Context(), bookingID, userID(c))
	if err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

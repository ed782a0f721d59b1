package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PostBookingCheckout starts the payment for an approved booking. Only the
// organizer who submitted it can pay.
func (h *Handler) PostBookingCheckout(c echo.Context) error {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.bookingRepo.BookingByID(c.Request().Context(), bookingID)
	if err != nil {
		return httpError(err)
	}
	if booking.OrganizerID != userID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "not your booking")
	}

	checkoutURL, err := h.payments.CreateVenueBookingSession(c.Request().Context(), bookingID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"checkout_url": checkoutURL})
}

type ticketCheckoutRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) PostEventCheckout(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req ticketCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.Quantity < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be greater than 0")
	}

	checkoutURL, err := h.payments.CreateTicketPurchaseSession(c.Request().Context(), eventID, userID(c), req.Quantity)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"checkout_url": checkoutURL})
}

type confirmPaymentRequest struct {
	SessionID string `json:"session_id"`
}

// PostPaymentsConfirm materializes a paid session. Repeats are safe: the
// response carries already_processed instead of an error.
func (h *Handler) PostPaymentsConfirm(c echo.Context) error {
	var req confirmPaymentRequest

	err := c.Bind(&req)
	if err != nil {
		return err
	}
	if req.SessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session_id is required")
	}

	result, err := h.payments.Confirm(c.Request().Context(), req.SessionID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}

type providerWebhookPayload struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

// PostPaymentsWebhook handles the provider's checkout.session.completed
// callbacks. It funnels into the same confirmation path as the client-side
// confirm, so delivery retries and double delivery are harmless.
func (h *Handler) PostPaymentsWebhook(c echo.Context) error {
	var payload providerWebhookPayload

	err := c.Bind(&payload)
	if err != nil {
		return err
	}

	if payload.Type != "checkout.session.completed" {
		return c.NoContent(http.StatusOK)
	}
	if payload.Data.Object.ID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing session id")
	}

	_, err = h.payments.Confirm(c.Request().Context(), payload.Data.Object.ID)
	if err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusOK)
}

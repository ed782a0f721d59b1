package http

import (
	"net/http"
	"time"

	"venues/entities"

	"github.com/labstack/echo/v4"
)

func (h *Handler) GetOpsBookings(c echo.Context) error {
	var eventDate *string
	if date := c.QueryParam("event_date"); date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid event_date, expected YYYY-MM-DD: "+err.Error())
		}
		eventDate = &date
	}

	bookings, err := h.opsBookingRepo.GetAll(c.Request().Context(), eventDate)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, bookings)
}

func (h *Handler) GetOpsBookingByID(c echo.Context) error {
	booking, err := h.opsBookingRepo.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, booking)
}

// PostOpsReconcile queues a repair command for every paid booking whose
// Event or Receipt is missing. The commands run asynchronously; the response
// reports what was queued.
func (h *Handler) PostOpsReconcile(c echo.Context) error {
	ctx := c.Request().Context()

	gaps, err := h.paymentRepo.MaterializationGaps(ctx)
	if err != nil {
		return httpError(err)
	}

	queued := make([]string, 0, len(gaps))
	for _, booking := range gaps {
		cmd := entities.ReconcileBookingPayment{
			Header:    entities.NewEventHeader(),
			BookingID: booking.BookingID,
			// the original transaction reference is gone with the receipt;
			// the repaired one is marked as reconciled
			TransactionID: "reconciled-" + booking.BookingID.String(),
			PaidAt:        time.Now().UTC(),
		}
		if err := h.reconciler.Send(ctx, cmd); err != nil {
			return httpError(err)
		}
		queued = append(queued, booking.BookingID.String())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"queued_bookings": queued,
	})
}

// PostOpsRebuildReadModel replays the archived event stream through the ops
// projection. Projection handlers are idempotent, so rebuilding over existing
// rows is safe.
func (h *Handler) PostOpsRebuildReadModel(c echo.Context) error {
	if err := h.rebuilder.Rebuild(c.Request().Context()); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

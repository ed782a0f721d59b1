package http

import (
	"errors"
	"net/http"

	"venues/db"
	"venues/payments"

	"github.com/labstack/echo/v4"
)

// httpError maps storage and payment sentinels to response codes. Anything
// unmapped bubbles up as a 500 through echo's default handler.
func httpError(err error) error {
	switch {
	case errors.Is(err, db.ErrVenueNotFound),
		errors.Is(err, db.ErrBookingNotFound),
		errors.Is(err, db.ErrEventNotFound),
		errors.Is(err, db.ErrTicketNotFound),
		errors.Is(err, db.ErrReceiptNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, db.ErrVenueUnavailable):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, db.ErrNotPending),
		errors.Is(err, db.ErrNotApproved),
		errors.Is(err, db.ErrAlreadyPaid),
		errors.Is(err, db.ErrNotDeletable):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, payments.ErrSessionNotPaid):
		return echo.NewHTTPError(http.StatusPaymentRequired, err.Error())
	}

	return err
}

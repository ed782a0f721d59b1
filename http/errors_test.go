package http

import (
	"errors"
	"net/http"
	"testing"

	"venues/db"
	"venues/payments"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHttpErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{db.ErrBookingNotFound, http.StatusNotFound},
		{db.ErrVenueNotFound, http.StatusNotFound},
		{db.ErrVenueUnavailable, http.StatusConflict},
		{db.ErrNotPending, http.StatusUnprocessableEntity},
		{db.ErrNotApproved, http.StatusUnprocessableEntity},
		{db.ErrAlreadyPaid, http.StatusUnprocessableEntity},
		{db.ErrNotDeletable, http.StatusUnprocessableEntity},
		{payments.ErrSessionNotPaid, http.StatusPaymentRequired},
	}

	for _, tc := range cases {
		var httpErr *echo.HTTPError
		require.ErrorAs(t, httpError(tc.err), &httpErr, "error %v", tc.err)
		assert.Equal(t, tc.code, httpErr.Code, "error %v", tc.err)
	}
}

func TestHttpErrorPassesThroughUnknown(t *testing.T) {
	unknown := errors.New("boom")
	assert.Equal(t, unknown, httpError(unknown))
}

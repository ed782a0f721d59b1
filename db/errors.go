package db

import (
	"errors"

	"github.com/lib/pq"
)

const postgresUniqueValueViolationErrorCode = "23505"

func isErrorUniqueViolation(err error) bool {
	var psqlErr *pq.Error
	return errors.As(err, &psqlErr) && psqlErr.Code == postgresUniqueValueViolationErrorCode
}

var (
	// ErrVenueUnavailable is returned when another approved booking already
	// holds the venue for the requested calendar day.
	ErrVenueUnavailable = errors.New("venue is not available for that date")

	// ErrNotPending is returned when approving or rejecting a booking that
	// is no longer pending.
	ErrNotPending = errors.New("booking is not pending")

	// ErrNotApproved is returned when a payment is attempted or confirmed
	// for a booking that is not approved.
	ErrNotApproved = errors.New("booking is not approved")

	// ErrAlreadyPaid is returned by the session issuer when the booking has
	// already been paid for.
	ErrAlreadyPaid = errors.New("booking is already paid")

	// ErrNotDeletable is returned when deleting a booking that is approved
	// or paid.
	ErrNotDeletable = errors.New("booking can only be deleted while pending or rejected")

	ErrVenueNotFound   = errors.New("venue not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrReceiptNotFound = errors.New("receipt not found")
)

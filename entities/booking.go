package entities

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusApproved BookingStatus = "approved"
	BookingStatusRejected BookingStatus = "rejected"
)

// CanTransitionTo defines the booking state machine: pending may move to
// approved or rejected, both of which are final for the review flow. Payment
// progress is tracked separately in PaymentStatus.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusApproved || next == BookingStatusRejected
	case BookingStatusApproved, BookingStatusRejected:
		return false
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// EventDetails is the organizer-supplied description of the event a booking
// is requested for. It is copied into the materialized Event once the
// booking is paid.
type EventDetails struct {
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	CategoryID  uuid.UUID `json:"category_id" db:"category_id"`
	Date        time.Time `json:"date" db:"date"`
	Artist      string    `json:"artist" db:"artist"`
	TicketPrice Money     `json:"ticket_price" db:"ticket_price"`
	ImageRef    string    `json:"image_ref" db:"image_ref"`
}

type BookingRequest struct {
	BookingID   uuid.UUID    `json:"booking_id" db:"booking_id"`
	OrganizerID uuid.UUID    `json:"organizer_id" db:"organizer_id"`
	VenueID     uuid.UUID    `json:"venue_id" db:"venue_id"`
	Details     EventDetails `json:"details" db:"details"`

	// EventDay is Details.Date projected onto a calendar day in the venue's
	// reference timezone. A partial unique index on (venue_id, event_day)
	// over approved bookings enforces exclusive occupancy at the storage
	// layer.
	EventDay string `json:"-" db:"event_day"`

	Status        BookingStatus `json:"status" db:"status"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	RequestedAt   time.Time     `json:"requested_at" db:"requested_at"`
}

type BookingCreateResponse struct {
	BookingID uuid.UUID `json:"booking_id"`
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

// OpsBooking is the operational read model of a booking's trip through the
// pipeline. It is projected from published events and is not authoritative
// for any invariant.
type OpsBooking struct {
	BookingID   uuid.UUID `json:"booking_id"`
	OrganizerID uuid.UUID `json:"organizer_id"`
	VenueID     uuid.UUID `json:"venue_id"`
	Title       string    `json:"title"`
	EventDate   time.Time `json:"event_date"`

	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`

	EventID       *uuid.UUID `json:"event_id,omitempty"`
	ReceiptID     *uuid.UUID `json:"receipt_id,omitempty"`
	TransactionID string     `json:"transaction_id,omitempty"`

	SubmittedAt time.Time `json:"submitted_at"`
	LastUpdate  time.Time `json:"last_update"`
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

// Receipt is an append-only audit record of a venue booking payment.
// TransactionID is the provider's transaction reference and is unique at the
// storage layer; it doubles as the payment idempotency key.
type Receipt struct {
	ReceiptID     uuid.UUID `json:"receipt_id" db:"receipt_id"`
	OrganizerID   uuid.UUID `json:"organizer_id" db:"organizer_id"`
	VenueID       uuid.UUID `json:"venue_id" db:"venue_id"`
	AmountPaid    Money     `json:"amount_paid" db:"amount_paid"`
	TransactionID string    `json:"transaction_id" db:"transaction_id"`
	PaymentDate   time.Time `json:"payment_date" db:"payment_date"`
}

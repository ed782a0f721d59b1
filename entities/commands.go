package entities

import (
	"time"

	"github.com/google/uuid"
)

// ReconcileBookingPayment asks for the Event/Receipt of an already-paid
// booking to be re-created when a materialization gap was detected. The
// handler is idempotent, so re-delivery is harmless.
type ReconcileBookingPayment struct {
	Header EventHeader `json:"header"`

	BookingID     uuid.UUID `json:"booking_id"`
	TransactionID string    `json:"transaction_id"`
	PaidAt        time.Time `json:"paid_at"`
}

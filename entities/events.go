package entities

import (
	"time"

	"github.com/google/uuid"
)

type IEvent interface {
	IsInternal() bool
}

type EventHeader struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: uuid.NewString(),
	}
}

func NewEventHeaderWithIdempotencyKey(idempotencyKey string) EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

type BookingSubmitted_v1 struct {
	Header EventHeader `json:"header"`

	BookingID   uuid.UUID `json:"booking_id"`
	OrganizerID uuid.UUID `json:"organizer_id"`
	VenueID     uuid.UUID `json:"venue_id"`
	Title       string    `json:"title"`
	EventDate   time.Time `json:"event_date"`
}

func (e BookingSubmitted_v1) IsInternal() bool { return false }

type BookingApproved_v1 struct {
	Header EventHeader `json:"header"`

	BookingID   uuid.UUID `json:"booking_id"`
	OrganizerID uuid.UUID `json:"organizer_id"`
	VenueID     uuid.UUID `json:"venue_id"`
	EventDate   time.Time `json:"event_date"`
}

func (e BookingApproved_v1) IsInternal() bool { return false }

type BookingRejected_v1 struct {
	Header EventHeader `json:"header"`

	BookingID   uuid.UUID `json:"booking_id"`
	OrganizerID uuid.UUID `json:"organizer_id"`
	VenueID     uuid.UUID `json:"venue_id"`
	EventDate   time.Time `json:"event_date"`
}

func (e BookingRejected_v1) IsInternal() bool { return false }

// BookingPaymentConfirmed_v1 is published from the same transaction that
// flips the booking to paid and materializes the Event and Receipt, so it is
// emitted exactly once per booking.
type BookingPaymentConfirmed_v1 struct {
	Header EventHeader `json:"header"`

	BookingID     uuid.UUID `json:"booking_id"`
	EventID       uuid.UUID `json:"event_id"`
	ReceiptID     uuid.UUID `json:"receipt_id"`
	OrganizerID   uuid.UUID `json:"organizer_id"`
	VenueID       uuid.UUID `json:"venue_id"`
	TransactionID string    `json:"transaction_id"`
	AmountPaid    Money     `json:"amount_paid"`
}

func (e BookingPaymentConfirmed_v1) IsInternal() bool { return false }

type TicketPurchased_v1 struct {
	Header EventHeader `json:"header"`

	TicketID      uuid.UUID `json:"ticket_id"`
	EventID       uuid.UUID `json:"event_id"`
	BuyerID       uuid.UUID `json:"buyer_id"`
	Quantity      int       `json:"quantity"`
	TicketCode    string    `json:"ticket_code"`
	TransactionID string    `json:"transaction_id"`
	Price         Money     `json:"price"`
}

func (e TicketPurchased_v1) IsInternal() bool { return false }

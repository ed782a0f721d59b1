package entities

import (
	"time"

	"github.com/google/uuid"
)

// Event is a published event. It is materialized exactly once from a paid
// booking, or created directly by an admin; after creation it lives
// independently of the booking it came from.
type Event struct {
	EventID uuid.UUID `json:"event_id" db:"event_id"`

	// BookingID links back to the paid booking this event was materialized
	// from. Nil for directly created events. Unique when set.
	BookingID *uuid.UUID `json:"booking_id,omitempty" db:"booking_id"`

	VenueID     uuid.UUID `json:"venue_id" db:"venue_id"`
	OrganizerID uuid.UUID `json:"organizer_id" db:"organizer_id"`
	CategoryID  uuid.UUID `json:"category_id" db:"category_id"`

	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	Artist      string    `json:"artist" db:"artist"`
	TicketPrice Money     `json:"ticket_price" db:"ticket_price"`
	ImageRef    string    `json:"image_ref" db:"image_ref"`
}

type EventCreateResponse struct {
	EventID uuid.UUID `json:"event_id"`
}

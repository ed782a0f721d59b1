package http

import (
	"context"
	"time"

	"venues/entities"
	"venues/payments"

	"github.com/google/uuid"
)

type Handler struct {
	venueRepo      VenueRepository
	bookingRepo    BookingRepository
	eventRepo      EventRepository
	ticketRepo     TicketRepository
	receiptRepo    ReceiptRepository
	opsBookingRepo OpsBookingRepository
	paymentRepo    PaymentRepository
	payments       PaymentsService
	reconciler     Reconciler
	rebuilder      ReadModelRebuilder
}

type VenueRepository interface {
	Create(ctx context.Context, venue entities.Venue) (entities.VenueCreateResponse, error)
	Update(ctx context.Context, venue entities.Venue) error
	VenueByID(ctx context.Context, venueID uuid.UUID) (entities.Venue, error)
	GetAll(ctx context.Context) ([]entities.Venue, error)
	Availability(ctx context.Context, venueID uuid.UUID, date time.Time) (bool, *entities.BookingRequest, error)
}

type BookingRepository interface {
	Submit(ctx context.Context, booking entities.BookingRequest) (entities.BookingCreateResponse, error)
	Approve(ctx context.Context, bookingID uuid.UUID) (entities.BookingRequest, error)
	Reject(ctx context.Context, bookingID uuid.UUID) (entities.BookingRequest, error)
	BookingByID(ctx context.Context, bookingID uuid.UUID) (entities.BookingRequest, error)
	GetAll(ctx context.Context) ([]entities.BookingRequest, error)
	ByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]entities.BookingRequest, error)
	Delete(ctx context.Context, bookingID, organizerID uuid.UUID) error
}

type EventRepository interface {
	Create(ctx context.Context, event entities.Event) (entities.EventCreateResponse, error)
	EventByID(ctx context.Context, eventID uuid.UUID) (entities.Event, error)
	GetAll(ctx context.Context) ([]entities.Event, error)
	Update(ctx context.Context, event entities.Event) error
	Delete(ctx context.Context, eventID uuid.UUID) error
}

type TicketRepository interface {
	ByBuyer(ctx context.Context, buyerID uuid.UUID) ([]entities.Ticket, error)
}

type ReceiptRepository interface {
	ByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]entities.Receipt, error)
}

type OpsBookingRepository interface {
	GetAll(ctx context.Context, eventDate *string) ([]entities.OpsBooking, error)
	GetByID(ctx context.Context, bookingID string) (entities.OpsBooking, error)
}

type PaymentRepository interface {
	MaterializationGaps(ctx context.Context) ([]entities.BookingRequest, error)
}

type PaymentsService interface {
	CreateVenueBookingSession(ctx context.Context, bookingID uuid.UUID) (string, error)
	CreateTicketPurchaseSession(ctx context.Context, eventID, buyerID uuid.UUID, quantity int) (string, error)
	Confirm(ctx context.Context, sessionID string) (payments.ConfirmResult, error)
}

// Reconciler queues repair commands for paid bookings with missing records.
type Reconciler interface {
	Send(ctx context.Context, cmd any) error
}

// ReadModelRebuilder replays archived events through the ops projection.
type ReadModelRebuilder interface {
	Rebuild(ctx context.Context) error
}

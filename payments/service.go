package payments

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"venues/db"
	"venues/entities"
	"venues/monitoring"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v3"
)

// ErrSessionNotPaid is returned when a confirmation arrives for a checkout
// session the provider does not consider paid. Nothing is materialized.
var ErrSessionNotPaid = errors.New("checkout session is not paid")

// Provider is the hosted checkout backend (Stripe in production, an
// in-memory mock elsewhere).
type Provider interface {
	CreateSession(ctx context.Context, request entities.CheckoutSessionRequest) (entities.CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (entities.CheckoutSession, error)
}

type BookingRepository interface {
	BookingByID(ctx context.Context, bookingID uuid.UUID) (entities.BookingRequest, error)
}

type VenueRepository interface {
	VenueByID(ctx context.Context, venueID uuid.UUID) (entities.Venue, error)
}

type EventRepository interface {
	EventByID(ctx context.Context, eventID uuid.UUID) (entities.Event, error)
}

type PaymentRepository interface {
	ConfirmVenueBooking(ctx context.Context, bookingID uuid.UUID, transactionID string, paidAt time.Time) (db.VenueMaterialization, error)
	ConfirmTicketPurchase(ctx context.Context, ticket entities.Ticket) (entities.Ticket, bool, error)
}

// Service drives both payment flows: venue booking payments and direct
// ticket purchases. The provider session's metadata decides which flow a
// confirmation belongs to.
type Service struct {
	provider    Provider
	bookingRepo BookingRepository
	venueRepo   VenueRepository
	eventRepo   EventRepository
	paymentRepo PaymentRepository
}

func NewService(
	provider Provider,
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	eventRepo EventRepository,
	paymentRepo PaymentRepository,
) Service {
	if provider == nil {
		panic("missing provider")
	}
	if paymentRepo == nil {
		panic("missing paymentRepo")
	}

	return Service{
		provider:    provider,
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		eventRepo:   eventRepo,
		paymentRepo: paymentRepo,
	}
}

// CreateVenueBookingSession starts checkout for an approved booking and
// returns the URL the organizer pays at.
func (s Service) CreateVenueBookingSession(ctx context.Context, bookingID uuid.UUID) (string, error) {
	booking, err := s.bookingRepo.BookingByID(ctx, bookingID)
	if err != nil {
		return "", err
	}

	if booking.PaymentStatus == entities.PaymentStatusPaid {
		return "", db.ErrAlreadyPaid
	}
	if booking.Status != entities.BookingStatusApproved {
		return "", db.ErrNotApproved
	}

	venue, err := s.venueRepo.VenueByID(ctx, booking.VenueID)
	if err != nil {
		return "", err
	}

	session, err := s.createSession(ctx, entities.CheckoutSessionRequest{
		Description: fmt.Sprintf("Venue booking: %s at %s", booking.Details.Title, venue.Name),
		UnitPrice:   venue.Price,
		Quantity:    1,
		Metadata: map[string]string{
			"booking_id": booking.BookingID.String(),
		},
	})
	if err != nil {
		return "", err
	}

	return session.URL, nil
}

// CreateTicketPurchaseSession starts checkout for a ticket purchase on a
// live event.
func (s Service) CreateTicketPurchaseSession(ctx context.Context, eventID, buyerID uuid.UUID, quantity int) (string, error) {
	if quantity < 1 {
		return "", fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	event, err := s.eventRepo.EventByID(ctx, eventID)
	if err != nil {
		return "", err
	}

	session, err := s.createSession(ctx, entities.CheckoutSessionRequest{
		Description: fmt.Sprintf("Tickets: %s", event.Title),
		UnitPrice:   event.TicketPrice,
		Quantity:    int64(quantity),
		Metadata: map[string]string{
			"event_id": event.EventID.String(),
			"buyer_id": buyerID.String(),
			"quantity": strconv.Itoa(quantity),
		},
	})
	if err != nil {
		return "", err
	}

	return session.URL, nil
}

// ConfirmResult reports what a confirmation materialized. Exactly one of
// Venue and Ticket is set, according to the session's flow.
type ConfirmResult struct {
	Venue  *db.VenueMaterialization `json:"venue,omitempty"`
	Ticket *entities.Ticket         `json:"ticket,omitempty"`

	// AlreadyProcessed is set when this confirmation was a repeat; the
	// records returned were created by an earlier one.
	AlreadyProcessed bool `json:"already_processed"`
}

// Confirm re-checks the session with the provider and materializes the
// payment. Safe to call any number of times per session: repeats return the
// existing records with AlreadyProcessed set.
func (s Service) Confirm(ctx context.Context, sessionID string) (ConfirmResult, error) {
	start := time.Now()
	session, err := s.provider.GetSession(ctx, sessionID)
	monitoring.ProviderRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return ConfirmResult{}, err
	}

	if !session.Paid {
		return ConfirmResult{}, ErrSessionNotPaid
	}

	if bookingID, ok := session.Metadata["booking_id"]; ok {
		return s.confirmVenueBooking(ctx, bookingID, session.TransactionID)
	}

	return s.confirmTicketPurchase(ctx, session)
}

func (s Service) confirmVenueBooking(ctx context.Context, rawBookingID, transactionID string) (ConfirmResult, error) {
	bookingID, err := uuid.Parse(rawBookingID)
	if err != nil {
		return ConfirmResult{}, fmt.Errorf("invalid booking id in session metadata: %w", err)
	}

	materialization, err := s.paymentRepo.ConfirmVenueBooking(ctx, bookingID, transactionID, time.Now().UTC())
	if err != nil {
		monitoring.PaymentConfirmations.WithLabelValues("venue_booking", "error").Inc()
		return ConfirmResult{}, err
	}
	monitoring.PaymentConfirmations.WithLabelValues("venue_booking", "ok").Inc()

	return ConfirmResult{
		Venue:            &materialization,
		AlreadyProcessed: materialization.AlreadyPaid,
	}, nil
}

func (s Service) confirmTicketPurchase(ctx context.Context, session entities.CheckoutSession) (ConfirmResult, error) {
	eventID, err := uuid.Parse(session.Metadata["event_id"])
	if err != nil {
		return ConfirmResult{}, fmt.Errorf("invalid event id in session metadata: %w", err)
	}
	buyerID, err := uuid.Parse(session.Metadata["buyer_id"])
	if err != nil {
		return ConfirmResult{}, fmt.Errorf("invalid buyer id in session metadata: %w", err)
	}
	quantity, err := strconv.Atoi(session.Metadata["quantity"])
	if err != nil {
		return ConfirmResult{}, fmt.Errorf("invalid quantity in session metadata: %w", err)
	}

	event, err := s.eventRepo.EventByID(ctx, eventID)
	if err != nil {
		return ConfirmResult{}, err
	}

	ticket := entities.Ticket{
		TicketID:      uuid.New(),
		BuyerID:       buyerID,
		EventID:       eventID,
		Quantity:      quantity,
		Price:         event.TicketPrice.Mul(quantity),
		TicketCode:    NewTicketCode(),
		TransactionID: session.TransactionID,
		PurchaseDate:  time.Now().UTC(),
	}

	stored, alreadyExisted, err := s.paymentRepo.ConfirmTicketPurchase(ctx, ticket)
	if err != nil {
		monitoring.PaymentConfirmations.WithLabelValues("ticket_purchase", "error").Inc()
		return ConfirmResult{}, err
	}
	monitoring.PaymentConfirmations.WithLabelValues("ticket_purchase", "ok").Inc()

	return ConfirmResult{
		Ticket:           &stored,
		AlreadyProcessed: alreadyExisted,
	}, nil
}

func (s Service) createSession(ctx context.Context, request entities.CheckoutSessionRequest) (entities.CheckoutSession, error) {
	start := time.Now()
	session, err := s.provider.CreateSession(ctx, request)
	monitoring.ProviderRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return entities.CheckoutSession{}, err
	}

	return session, nil
}

// NewTicketCode mints the human-facing code printed on a ticket.
func NewTicketCode() string {
	return "TKT-" + shortuuid.New()
}

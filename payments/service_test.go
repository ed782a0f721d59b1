package payments_test

import (
	"context"
	"testing"
	"time"

	"venues/api"
	"venues/db"
	"venues/entities"
	"venues/payments"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingRepo struct {
	bookings map[uuid.UUID]entities.BookingRequest
}

func (f *fakeBookingRepo) BookingByID(ctx context.Context, bookingID uuid.UUID) (entities.BookingRequest, error) {
	booking, ok := f.bookings[bookingID]
	if !ok {
		return entities.BookingRequest{}, db.ErrBookingNotFound
	}
	return booking, nil
}

type fakeVenueRepo struct {
	venues map[uuid.UUID]entities.Venue
}

func (f *fakeVenueRepo) VenueByID(ctx context.Context, venueID uuid.UUID) (entities.Venue, error) {
	venue, ok := f.venues[venueID]
	if !ok {
		return entities.Venue{}, db.ErrVenueNotFound
	}
	return venue, nil
}

type fakeEventRepo struct {
	events map[uuid.UUID]entities.Event
}

func (f *fakeEventRepo) EventByID(ctx context.Context, eventID uuid.UUID) (entities.Event, error) {
	event, ok := f.events[eventID]
	if !ok {
		return entities.Event{}, db.ErrEventNotFound
	}
	return event, nil
}

type fakePaymentRepo struct {
	bookingRepo *fakeBookingRepo

	venueConfirmations  int
	ticketConfirmations int

	materializations map[uuid.UUID]db.VenueMaterialization
	ticketsByTxn     map[string]entities.Ticket
}

func newFakePaymentRepo(bookingRepo *fakeBookingRepo) *fakePaymentRepo {
	return &fakePaymentRepo{
		bookingRepo:      bookingRepo,
		materializations: map[uuid.UUID]db.VenueMaterialization{},
		ticketsByTxn:     map[string]entities.Ticket{},
	}
}

func (f *fakePaymentRepo) ConfirmVenueBooking(ctx context.Context, bookingID uuid.UUID, transactionID string, paidAt time.Time) (db.VenueMaterialization, error) {
	f.venueConfirmations++

	if existing, ok := f.materializations[bookingID]; ok {
		existing.AlreadyPaid = true
		return existing, nil
	}

	booking, ok := f.bookingRepo.bookings[bookingID]
	if !ok {
		return db.VenueMaterialization{}, db.ErrBookingNotFound
	}
	if booking.Status != entities.BookingStatusApproved {
		return db.VenueMaterialization{}, db.ErrNotApproved
	}

	booking.PaymentStatus = entities.PaymentStatusPaid
	f.bookingRepo.bookings[bookingID] = booking

	materialization := db.VenueMaterialization{
		Booking: booking,
		Event: entities.Event{
			EventID:   uuid.New(),
			BookingID: &booking.BookingID,
			VenueID:   booking.VenueID,
			Title:     booking.Details.Title,
		},
		Receipt: entities.Receipt{
			ReceiptID:     uuid.New(),
			OrganizerID:   booking.OrganizerID,
			TransactionID: transactionID,
			PaymentDate:   paidAt,
		},
	}
	f.materializations[bookingID] = materialization

	return materialization, nil
}

func (f *fakePaymentRepo) ConfirmTicketPurchase(ctx context.Context, ticket entities.Ticket) (entities.Ticket, bool, error) {
	f.ticketConfirmations++

	if existing, ok := f.ticketsByTxn[ticket.TransactionID]; ok {
		return existing, true, nil
	}

	f.ticketsByTxn[ticket.TransactionID] = ticket
	return ticket, false, nil
}

type fixture struct {
	provider    *api.PaymentsMock
	bookingRepo *fakeBookingRepo
	venueRepo   *fakeVenueRepo
	eventRepo   *fakeEventRepo
	paymentRepo *fakePaymentRepo
	service     payments.Service
}

func newFixture() fixture {
	bookingRepo := &fakeBookingRepo{bookings: map[uuid.UUID]entities.BookingRequest{}}
	venueRepo := &fakeVenueRepo{venues: map[uuid.UUID]entities.Venue{}}
	eventRepo := &fakeEventRepo{events: map[uuid.UUID]entities.Event{}}
	paymentRepo := newFakePaymentRepo(bookingRepo)
	provider := api.NewPaymentsMock()

	return fixture{
		provider:    provider,
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		eventRepo:   eventRepo,
		paymentRepo: paymentRepo,
		service:     payments.NewService(provider, bookingRepo, venueRepo, eventRepo, paymentRepo),
	}
}

func (f fixture) addApprovedBooking() entities.BookingRequest {
	venue := entities.Venue{
		VenueID: uuid.New(),
		Name:    "Blue Note",
		Price:   entities.NewMoney(decimal.NewFromInt(500), "USD"),
	}
	f.venueRepo.venues[venue.VenueID] = venue

	booking := entities.BookingRequest{
		BookingID:   uuid.New(),
		OrganizerID: uuid.New(),
		VenueID:     venue.VenueID,
		Status:      entities.BookingStatusApproved,
		Details: entities.EventDetails{
			Title: "Jazz Night",
		},
	}
	f.bookingRepo.bookings[booking.BookingID] = booking

	return booking
}

func (f fixture) addEvent() entities.Event {
	event := entities.Event{
		EventID:     uuid.New(),
		VenueID:     uuid.New(),
		Title:       "Jazz Night",
		TicketPrice: entities.NewMoney(decimal.NewFromInt(40), "USD"),
	}
	f.eventRepo.events[event.EventID] = event

	return event
}

// sessionIDFromURL relies on the mock provider's URL shape.
func sessionIDFromURL(t *testing.T, checkoutURL string) string {
	t.Helper()

	const prefix = "https://checkout.mock.local/pay/"
	require.Contains(t, checkoutURL, prefix)

	return checkoutURL[len(prefix):]
}

func TestCreateVenueBookingSession(t *testing.T) {
	f := newFixture()
	booking := f.addApprovedBooking()

	checkoutURL, err := f.service.CreateVenueBookingSession(context.Background(), booking.BookingID)
	require.NoError(t, err)
	assert.NotEmpty(t, checkoutURL)
}

func TestCreateVenueBookingSession_NotApproved(t *testing.T) {
	f := newFixture()
	booking := f.addApprovedBooking()

	booking.Status = entities.BookingStatusPending
	f.bookingRepo.bookings[booking.BookingID] = booking

	_, err := f.service.CreateVenueBookingSession(context.Background(), booking.BookingID)
	assert.ErrorIs(t, err, db.ErrNotApproved)
}

func TestCreateVenueBookingSession_AlreadyPaid(t *testing.T) {
	f := newFixture()
	booking := f.addApprovedBooking()

	booking.PaymentStatus = entities.PaymentStatusPaid
	f.bookingRepo.bookings[booking.BookingID] = booking

	_, err := f.service.CreateVenueBookingSession(context.Background(), booking.BookingID)
	assert.ErrorIs(t, err, db.ErrAlreadyPaid)
}

func TestConfirm_UnpaidSession(t *testing.T) {
	f := newFixture()
	booking := f.addApprovedBooking()

	checkoutURL, err := f.service.CreateVenueBookingSession(context.Background(), booking.BookingID)
	require.NoError(t, err)

	_, err = f.service.Confirm(context.Background(), sessionIDFromURL(t, checkoutURL))
	assert.ErrorIs(t, err, payments.ErrSessionNotPaid)
	assert.Zero(t, f.paymentRepo.venueConfirmations)
}

func TestConfirm_VenueBooking(t *testing.T) {
	f := newFixture()
	booking := f.addApprovedBooking()

	checkoutURL, err := f.service.CreateVenueBookingSession(context.Background(), booking.BookingID)
	require.NoError(t, err)

	sessionID := sessionIDFromURL(t, checkoutURL)
	require.NoError(t, f.provider.MarkPaid(sessionID))

	result, err := f.service.Confirm(context.Background(), sessionID)
	require.NoError(t, err)
	require.NotNil(t, result.Venue)
	assert.False(t, result.AlreadyProcessed)
	assert.Equal(t, booking.BookingID, result.Venue.Booking.BookingID)
	assert.NotEmpty(t, result.Venue.Receipt.TransactionID)
}

func TestConfirm_VenueBookingIdempotent(t *testing.T) {
	f := newFixture()
	booking := f.addApprovedBooking()

	checkoutURL, err := f.service.CreateVenueBookingSession(context.Background(), booking.BookingID)
	require.NoError(t, err)

	sessionID := sessionIDFromURL(t, checkoutURL)
	require.NoError(t, f.provider.MarkPaid(sessionID))

	first, err := f.service.Confirm(context.Background(), sessionID)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		repeat, err := f.service.Confirm(context.Background(), sessionID)
		require.NoError(t, err)
		assert.True(t, repeat.AlreadyProcessed)
		assert.Equal(t, first.Venue.Event.EventID, repeat.Venue.Event.EventID)
		assert.Equal(t, first.Venue.Receipt.ReceiptID, repeat.Venue.Receipt.ReceiptID)
	}
}

func TestConfirm_TicketPurchase(t *testing.T) {
	f := newFixture()
	event := f.addEvent()
	buyerID := uuid.New()

	checkoutURL, err := f.service.CreateTicketPurchaseSession(context.Background(), event.EventID, buyerID, 3)
	require.NoError(t, err)

	sessionID := sessionIDFromURL(t, checkoutURL)
	require.NoError(t, f.provider.MarkPaid(sessionID))

	result, err := f.service.Confirm(context.Background(), sessionID)
	require.NoError(t, err)
	require.NotNil(t, result.Ticket)
	assert.False(t, result.AlreadyProcessed)
	assert.Equal(t, 3, result.Ticket.Quantity)
	assert.Equal(t, buyerID, result.Ticket.BuyerID)
	assert.True(t, result.Ticket.Price.Amount.Equal(decimal.NewFromInt(120)))
	assert.NotEmpty(t, result.Ticket.TicketCode)
}

func TestConfirm_TicketPurchaseIdempotent(t *testing.T) {
	f := newFixture()
	event := f.addEvent()

	checkoutURL, err := f.service.CreateTicketPurchaseSession(context.Background(), event.EventID, uuid.New(), 1)
	require.NoError(t, err)

	sessionID := sessionIDFromURL(t, checkoutURL)
	require.NoError(t, f.provider.MarkPaid(sessionID))

	first, err := f.service.Confirm(context.Background(), sessionID)
	require.NoError(t, err)

	repeat, err := f.service.Confirm(context.Background(), sessionID)
	require.NoError(t, err)
	assert.True(t, repeat.AlreadyProcessed)
	assert.Equal(t, first.Ticket.TicketID, repeat.Ticket.TicketID)
	assert.Equal(t, first.Ticket.TicketCode, repeat.Ticket.TicketCode)
}

func TestCreateTicketPurchaseSession_InvalidQuantity(t *testing.T) {
	f := newFixture()
	event := f.addEvent()

	_, err := f.service.CreateTicketPurchaseSession(context.Background(), event.EventID, uuid.New(), 0)
	assert.Error(t, err)
}

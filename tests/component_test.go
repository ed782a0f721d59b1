package tests

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"venues/api"
	"venues/db"
	"venues/message"
	"venues/payments"
	"venues/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtSecret = "component-test-secret"

func TestComponent(t *testing.T) {
	postgresURL := os.Getenv("POSTGRES_URL")
	redisAddr := os.Getenv("REDIS_ADDR")
	if postgresURL == "" || redisAddr == "" {
		t.Skip("POSTGRES_URL and REDIS_ADDR are required")
	}

	conn, err := db.NewDBConn(postgresURL)
	require.NoError(t, err)
	defer conn.Close()
	conn.MigrateSchema()

	redisClient := message.NewRedisClient(redisAddr)
	defer redisClient.Close()

	provider := api.NewPaymentsMock()
	notificationsService := &api.NotificationsMock{}
	mailerService := &api.MailerMock{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		svc := service.New(
			":8080",
			jwtSecret,
			redisClient,
			conn,
			provider,
			notificationsService,
			mailerService,
		)
		assert.NoError(t, svc.Run(ctx))
	}()
	waitForHttpServer(t)

	adminToken := mintToken(t, jwtSecret, uuid.New(), "admin")
	organizerID := uuid.New()
	organizerToken := mintToken(t, jwtSecret, organizerID, "organizer")

	// admin sets up a venue
	resp, body := doRequest(t, http.MethodPost, "/venues", adminToken, map[string]any{
		"name":     "Blue Note",
		"location": "New York",
		"timezone": "America/New_York",
		"capacity": 300,
		"price":    map[string]any{"amount": "500", "currency": "USD"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var venueResp struct {
		VenueID uuid.UUID `json:"venue_id"`
	}
	decodeInto(t, body, &venueResp)

	// organizer requests the venue for a future date
	eventDate := time.Now().AddDate(0, 1, 0).Format(time.RFC3339)
	resp, body = doRequest(t, http.MethodPost, "/bookings", organizerToken, map[string]any{
		"venue_id": venueResp.VenueID,
		"details": map[string]any{
			"title":        "Jazz Night",
			"date":         eventDate,
			"artist":       "Quartet",
			"ticket_price": map[string]any{"amount": "40", "currency": "USD"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var bookingResp struct {
		BookingID uuid.UUID `json:"booking_id"`
	}
	decodeInto(t, body, &bookingResp)

	// a second booking for the same venue and day must queue fine, but can
	// never be approved once the first one is
	resp, body = doRequest(t, http.MethodPost, "/bookings", organizerToken, map[string]any{
		"venue_id": venueResp.VenueID,
		"details": map[string]any{
			"title":        "Competing Gig",
			"date":         eventDate,
			"ticket_price": map[string]any{"amount": "25", "currency": "USD"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var competingResp struct {
		BookingID uuid.UUID `json:"booking_id"`
	}
	decodeInto(t, body, &competingResp)

	// admin approves the first booking
	resp, body = doRequest(t, http.MethodPut, "/bookings/"+bookingResp.BookingID.String()+"/approve", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	// the competing booking now hits the occupancy conflict
	resp, body = doRequest(t, http.MethodPut, "/bookings/"+competingResp.BookingID.String()+"/approve", adminToken, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode, string(body))

	// the organizer hears about the approval asynchronously
	assert.EventuallyWithT(t, func(t *assert.CollectT) {
		found := false
		for _, notification := range notificationsService.Notifications {
			if notification.UserID == organizerID {
				found = true
			}
		}
		assert.True(t, found, "organizer was not notified")
	}, 10*time.Second, 100*time.Millisecond)

	// organizer pays
	resp, body = doRequest(t, http.MethodPost, "/bookings/"+bookingResp.BookingID.String()+"/checkout", organizerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var checkoutResp struct {
		CheckoutURL string `json:"checkout_url"`
	}
	decodeInto(t, body, &checkoutResp)

	sessionID := sessionIDFromCheckoutURL(t, checkoutResp.CheckoutURL)
	require.NoError(t, provider.MarkPaid(sessionID))

	resp, body = doRequest(t, http.MethodPost, "/payments/confirm", organizerToken, map[string]any{
		"session_id": sessionID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var confirmResp payments.ConfirmResult
	decodeInto(t, body, &confirmResp)
	require.NotNil(t, confirmResp.Venue)
	assert.False(t, confirmResp.AlreadyProcessed)
	eventID := confirmResp.Venue.Event.EventID

	// confirming again must not create anything new
	resp, body = doRequest(t, http.MethodPost, "/payments/confirm", organizerToken, map[string]any{
		"session_id": sessionID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var repeatResp payments.ConfirmResult
	decodeInto(t, body, &repeatResp)
	require.NotNil(t, repeatResp.Venue)
	assert.True(t, repeatResp.AlreadyProcessed)
	assert.Equal(t, eventID, repeatResp.Venue.Event.EventID)

	// receipt email goes out asynchronously
	assert.EventuallyWithT(t, func(t *assert.CollectT) {
		assert.NotEmpty(t, mailerService.SentReceipts, "no receipt email sent")
	}, 10*time.Second, 100*time.Millisecond)

	// the materialized event is live; a buyer purchases tickets
	buyerID := uuid.New()
	buyerToken := mintToken(t, jwtSecret, buyerID, "user")

	resp, body = doRequest(t, http.MethodPost, "/events/"+eventID.String()+"/checkout", buyerToken, map[string]any{
		"quantity": 2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	decodeInto(t, body, &checkoutResp)

	ticketSessionID := sessionIDFromCheckoutURL(t, checkoutResp.CheckoutURL)
	require.NoError(t, provider.MarkPaid(ticketSessionID))

	resp, body = doRequest(t, http.MethodPost, "/payments/confirm", buyerToken, map[string]any{
		"session_id": ticketSessionID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var ticketConfirm payments.ConfirmResult
	decodeInto(t, body, &ticketConfirm)
	require.NotNil(t, ticketConfirm.Ticket)
	assert.Equal(t, 2, ticketConfirm.Ticket.Quantity)

	// buyer sees the ticket
	resp, body = doRequest(t, http.MethodGet, "/tickets", buyerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), ticketConfirm.Ticket.TicketCode)

	// ops read model catches up with the whole trip
	assert.EventuallyWithT(t, func(ct *assert.CollectT) {
		resp, body := doRequest(t, http.MethodGet, "/ops/bookings/"+bookingResp.BookingID.String(), adminToken, nil)
		if !assert.Equal(ct, http.StatusOK, resp.StatusCode) {
			return
		}
		assert.Contains(ct, string(body), `"payment_status":"paid"`)
	}, 10*time.Second, 100*time.Millisecond)
}

package http

import (
	"net/http"

	"venues/pkg/log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/lithammer/shortuuid/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

func NewHttpRouter(
	jwtSecret string,
	venueRepo VenueRepository,
	bookingRepo BookingRepository,
	eventRepo EventRepository,
	ticketRepo TicketRepository,
	receiptRepo ReceiptRepository,
	opsBookingRepo OpsBookingRepository,
	paymentRepo PaymentRepository,
	paymentsService PaymentsService,
	reconciler Reconciler,
	rebuilder ReadModelRebuilder,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(otelecho.Middleware("venues"))
	e.Use(correlationIDMiddleware)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler := &Handler{
		venueRepo:      venueRepo,
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		ticketRepo:     ticketRepo,
		receiptRepo:    receiptRepo,
		opsBookingRepo: opsBookingRepo,
		paymentRepo:    paymentRepo,
		payments:       paymentsService,
		reconciler:     reconciler,
		rebuilder:      rebuilder,
	}

	// provider callbacks carry no user token
	e.POST("/payments/webhook", handler.PostPaymentsWebhook)

	authed := e.Group("", JWTMiddleware(jwtSecret))

	authed.GET("/venues", handler.GetVenues)
	authed.GET("/venues/:id", handler.GetVenueByID)
	authed.GET("/venues/:id/availability", handler.GetVenueAvailability)
	authed.POST("/venues", handler.PostVenues, requireAdmin)
	authed.PUT("/venues/:id", handler.PutVenues, requireAdmin)

	authed.POST("/bookings", handler.PostBookings)
	authed.GET("/bookings", handler.GetBookings)
	authed.GET("/bookings/:id", handler.GetBookingByID)
	authed.DELETE("/bookings/:id", handler.DeleteBooking)
	authed.PUT("/bookings/:id/approve", handler.PutBookingApprove, requireAdmin)
	authed.PUT("/bookings/:id/reject", handler.PutBookingReject, requireAdmin)
	authed.POST("/bookings/:id/checkout", handler.PostBookingCheckout)

	authed.GET("/events", handler.GetEvents)
	authed.GET("/events/:id", handler.GetEventByID)
	authed.POST("/events", handler.PostEvents, requireAdmin)
	authed.PUT("/events/:id", handler.PutEvents)
	authed.DELETE("/events/:id", handler.DeleteEvent)
	authed.POST("/events/:id/checkout", handler.PostEventCheckout)

	authed.POST("/payments/confirm", handler.PostPaymentsConfirm)

	authed.GET("/tickets", handler.GetTickets)
	authed.GET("/receipts", handler.GetReceipts)

	authed.GET("/ops/bookings", handler.GetOpsBookings, requireAdmin)
	authed.GET("/ops/bookings/:id", handler.GetOpsBookingByID, requireAdmin)
	authed.POST("/ops/reconcile", handler.PostOpsReconcile, requireAdmin)
	authed.POST("/ops/read-model/rebuild", handler.PostOpsRebuildReadModel, requireAdmin)

	return e
}

// correlationIDMiddleware threads a correlation id from the request (or a
// fresh one) through the context, so logs and published messages line up.
func correlationIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		correlationID := c.Request().Header.Get("Correlation-ID")
		if correlationID == "" {
			correlationID = shortuuid.New()
		}

		ctx := log.ContextWithCorrelationID(c.Request().Context(), correlationID)
		ctx = log.ToContext(ctx, log.FromContext(ctx).WithField("correlation_id", correlationID))
		c.SetRequest(c.Request().WithContext(ctx))

		c.Response().Header().Set("Correlation-ID", correlationID)

		return next(c)
	}
}

package service

import (
	"context"
	"errors"
	"net/http"

	"venues/db"
	venuesHttp "venues/http"
	"venues/message"
	"venues/message/command"
	"venues/message/event"
	"venues/message/outbox"
	"venues/migrations"
	"venues/payments"
	"venues/pkg/log"

	watermillMessage "github.com/ThreeDotsLabs/watermill/message"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func init() {
	log.Init(logrus.InfoLevel)
}

type Service struct {
	watermillRouter *watermillMessage.Router
	echoRouter      *echo.Echo
	addr            string
}

func New(
	addr string,
	jwtSecret string,
	redisClient *redis.Client,
	conn db.DB,
	provider payments.Provider,
	notificationsService event.NotificationsService,
	mailerService event.MailerService,
) Service {
	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	redisPublisher := message.NewRedisPublisher(redisClient, watermillLogger)

	eventBus := event.NewBus(redisPublisher)
	commandBus := command.NewCommandBus(redisPublisher)

	venueRepo := db.NewVenueRepository(&conn)
	bookingRepo := db.NewBookingRepository(&conn)
	eventRepo := db.NewEventRepository(&conn)
	ticketRepo := db.NewTicketRepository(&conn)
	receiptRepo := db.NewReceiptRepository(&conn)
	paymentRepo := db.NewPaymentRepository(&conn)
	dataLakeRepo := db.NewDataLakeRepository(&conn)
	opsReadModel := db.NewOpsBookingReadModel(&conn, eventBus)

	paymentsService := payments.NewService(
		provider,
		bookingRepo,
		venueRepo,
		eventRepo,
		paymentRepo,
	)

	eventsHandler := event.NewHandler(
		notificationsService,
		mailerService,
		receiptRepo,
		ticketRepo,
	)
	commandsHandler := command.NewHandler(paymentRepo)

	eventProcessorConfig := event.NewProcessorConfig(redisClient, watermillLogger)
	commandProcessorConfig := command.NewCommandProcessorConfig(redisClient, watermillLogger)

	pgSubscriber := outbox.SubscribeForPGMessages(conn.Conn, watermillLogger)
	watermillRouter := message.NewWatermillRouter(
		pgSubscriber,
		redisClient,
		redisPublisher,
		eventProcessorConfig,
		commandProcessorConfig,
		eventsHandler,
		commandsHandler,
		opsReadModel,
		dataLakeRepo,
		watermillLogger,
	)

	echoRouter := venuesHttp.NewHttpRouter(
		jwtSecret,
		venueRepo,
		bookingRepo,
		eventRepo,
		ticketRepo,
		receiptRepo,
		opsReadModel,
		paymentRepo,
		paymentsService,
		commandBus,
		migrations.NewOpsReadModelRebuilder(dataLakeRepo, opsReadModel),
	)

	return Service{
		watermillRouter: watermillRouter,
		echoRouter:      echoRouter,
		addr:            addr,
	}
}

func (s Service) Run(ctx context.Context) error {
	errgrp, ctx := errgroup.WithContext(ctx)

	errgrp.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	errgrp.Go(func() error {
		// the HTTP server only comes up once the message router is ready,
		// so health checks don't pass while handlers are still registering
		<-s.watermillRouter.Running()

		err := s.echoRouter.Start(s.addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	errgrp.Go(func() error {
		<-ctx.Done()
		return s.echoRouter.Shutdown(context.Background())
	})

	return errgrp.Wait()
}

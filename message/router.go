package message

import (
	"encoding/json"
	"fmt"

	"venues/db"
	"venues/entities"
	"venues/message/command"
	"venues/message/event"
	"venues/message/outbox"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"
)

func NewWatermillRouter(
	pgSubscriber message.Subscriber,
	redisClient *redis.Client,
	publisher message.Publisher,
	eventProcessorConfig cqrs.EventProcessorConfig,
	commandProcessorConfig cqrs.CommandProcessorConfig,
	eventHandler event.Handler,
	commandHandler command.Handler,
	opsReadModel db.OpsBookingReadModel,
	dataLakeRepo db.IDataLakeRepository,
	watermillLogger watermill.LoggerAdapter,
) *message.Router {
	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		panic(err)
	}

	useMiddlewares(router, watermillLogger)

	_, err = outbox.NewForwarder(pgSubscriber, publisher, watermillLogger, router)
	if err != nil {
		panic(err)
	}

	eventProcessor, err := cqrs.NewEventProcessorWithConfig(router, eventProcessorConfig)
	if err != nil {
		panic(err)
	}

	err = eventProcessor.AddHandlers(
		cqrs.NewEventHandler(
			"NotifyBookingApproved",
			eventHandler.NotifyBookingApproved,
		),
		cqrs.NewEventHandler(
			"NotifyBookingRejected",
			eventHandler.NotifyBookingRejected,
		),
		cqrs.NewEventHandler(
			"SendReceipt",
			eventHandler.SendReceipt,
		),
		cqrs.NewEventHandler(
			"SendTicket",
			eventHandler.SendTicket,
		),
		cqrs.NewEventHandler(
			"OpsReadModelBookingSubmitted",
			opsReadModel.OnBookingSubmitted,
		),
		cqrs.NewEventHandler(
			"OpsReadModelBookingApproved",
			opsReadModel.OnBookingApproved,
		),
		cqrs.NewEventHandler(
			"OpsReadModelBookingRejected",
			opsReadModel.OnBookingRejected,
		),
		cqrs.NewEventHandler(
			"OpsReadModelBookingPaymentConfirmed",
			opsReadModel.OnBookingPaymentConfirmed,
		),
	)
	if err != nil {
		panic(err)
	}

	commandProcessor, err := cqrs.NewCommandProcessorWithConfig(router, commandProcessorConfig)
	if err != nil {
		panic(err)
	}

	err = commandProcessor.AddHandlers(
		cqrs.NewCommandHandler(
			"ReconcileBookingPayment",
			commandHandler.ReconcileBookingPayment,
		),
	)
	if err != nil {
		panic(err)
	}

	addDataLakeHandler(router, redisClient, dataLakeRepo, watermillLogger)

	return router
}

// addDataLakeHandler archives every published event, raw, for read model
// rebuilds.
func addDataLakeHandler(
	router *message.Router,
	redisClient *redis.Client,
	dataLakeRepo db.IDataLakeRepository,
	watermillLogger watermill.LoggerAdapter,
) {
	sub, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
		Client:        redisClient,
		ConsumerGroup: "svc-venues.events.data-lake",
	}, watermillLogger)
	if err != nil {
		panic(err)
	}

	router.AddNoPublisherHandler(
		"store_in_data_lake",
		"events",
		sub,
		func(msg *message.Message) error {
			var envelope struct {
				Header entities.EventHeader `json:"header"`
			}
			if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
				return fmt.Errorf("could not unmarshal event header: %w", err)
			}

			return dataLakeRepo.Store(msg.Context(), entities.DataLakeEvent{
				EventID:      envelope.Header.ID,
				Header:       envelope.Header,
				EventName:    msg.Metadata.Get("name"),
				EventPayload: json.RawMessage(msg.Payload),
			})
		},
	)
}

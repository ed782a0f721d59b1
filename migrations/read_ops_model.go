package migrations

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"venues/db"
	"venues/entities"
	"venues/pkg/log"

	"github.com/sirupsen/logrus"
)

// OpsReadModelRebuilder bundles the data lake and the projection so the
// rebuild can be triggered from the ops API.
type OpsReadModelRebuilder struct {
	dataLake  db.IDataLakeRepository
	readModel db.OpsBookingReadModel
}

func NewOpsReadModelRebuilder(dataLake db.IDataLakeRepository, readModel db.OpsBookingReadModel) OpsReadModelRebuilder {
	return OpsReadModelRebuilder{
		dataLake:  dataLake,
		readModel: readModel,
	}
}

func (r OpsReadModelRebuilder) Rebuild(ctx context.Context) error {
	return RebuildOpsBookingReadModel(ctx, r.dataLake, r.readModel)
}

// RebuildOpsBookingReadModel replays every archived event from the data lake
// through the read model projection, in publish order. Projection handlers
// are idempotent, so replaying on top of existing rows is safe.
func RebuildOpsBookingReadModel(ctx context.Context, dataLake db.IDataLakeRepository, readModel db.OpsBookingReadModel) error {
	logger := log.FromContext(ctx)
	logger.Info("Rebuilding ops booking read model")

	var events []entities.DataLakeEvent

	// archived events trail the live stream slightly, wait for them
	timeout := time.Now().Add(time.Second * 10)
	for {
		var err error
		events, err = dataLake.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("could not get archived events: %w", err)
		}
		if len(events) > 0 {
			break
		}

		if time.Now().After(timeout) {
			return fmt.Errorf("timeout while waiting for archived events")
		}

		time.Sleep(time.Millisecond * 100)
	}

	logger.WithField("events_count", len(events)).Info("Replaying archived events")

	for _, event := range events {
		start := time.Now()

		logger.WithFields(logrus.Fields{
			"event_name": event.EventName,
			"event_id":   event.EventID,
		}).Info("Replaying event")

		err := replayEvent(ctx, event, readModel)
		if err != nil {
			return fmt.Errorf("could not replay event %s (%s): %w", event.EventID, event.EventName, err)
		}

		logger.WithField("duration", time.Since(start)).Info("Event replayed")
	}

	return nil
}

func replayEvent(ctx context.Context, event entities.DataLakeEvent, readModel db.OpsBookingReadModel) error {
	switch event.EventName {
	case "entities.BookingSubmitted_v1":
		submitted, err := unmarshalArchivedEvent[entities.BookingSubmitted_v1](event)
		if err != nil {
			return err
		}
		return readModel.OnBookingSubmitted(ctx, submitted)

	case "entities.BookingApproved_v1":
		approved, err := unmarshalArchivedEvent[entities.BookingApproved_v1](event)
		if err != nil {
			return err
		}
		return readModel.OnBookingApproved(ctx, approved)

	case "entities.BookingRejected_v1":
		rejected, err := unmarshalArchivedEvent[entities.BookingRejected_v1](event)
		if err != nil {
			return err
		}
		return readModel.OnBookingRejected(ctx, rejected)

	case "entities.BookingPaymentConfirmed_v1":
		confirmed, err := unmarshalArchivedEvent[entities.BookingPaymentConfirmed_v1](event)
		if err != nil {
			return err
		}
		return readModel.OnBookingPaymentConfirmed(ctx, confirmed)

	case "entities.TicketPurchased_v1":
		// ticket purchases don't feed the booking read model
		return nil

	default:
		return fmt.Errorf("unknown archived event %s", event.EventName)
	}
}

func unmarshalArchivedEvent[T any](event entities.DataLakeEvent) (*T, error) {
	eventInstance := new(T)

	err := json.Unmarshal(event.EventPayload, eventInstance)
	if err != nil {
		return nil, fmt.Errorf("could not unmarshal event %s: %w", event.EventName, err)
	}

	return eventInstance, nil
}

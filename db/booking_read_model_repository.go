package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"venues/entities"
	"venues/pkg/log"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// OpsBookingReadModel projects published booking events into a JSONB document
// per booking, for the ops endpoints. It is eventually consistent and not
// authoritative for any invariant.
type OpsBookingReadModel struct {
	conn     *DB
	eventBus *cqrs.EventBus
}

func NewOpsBookingReadModel(db *DB, eventBus *cqrs.EventBus) OpsBookingReadModel {
	if db == nil {
		panic("db is nil")
	}
	return OpsBookingReadModel{
		conn:     db,
		eventBus: eventBus,
	}
}

func (r OpsBookingReadModel) OnBookingSubmitted(ctx context.Context, event *entities.BookingSubmitted_v1) error {
	// first event of the pipeline, creates the read model
	err := r.createReadModel(ctx, entities.OpsBooking{
		BookingID:     event.BookingID,
		OrganizerID:   event.OrganizerID,
		VenueID:       event.VenueID,
		Title:         event.Title,
		EventDate:     event.EventDate,
		Status:        string(entities.BookingStatusPending),
		PaymentStatus: string(entities.PaymentStatusPending),
		SubmittedAt:   event.Header.PublishedAt,
		LastUpdate:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("could not create read model: %w", err)
	}

	return r.publishUpdated(ctx, event.BookingID)
}

func (r OpsBookingReadModel) OnBookingApproved(ctx context.Context, event *entities.BookingApproved_v1) error {
	return r.updateReadModel(ctx, event.BookingID, func(rm entities.OpsBooking) (entities.OpsBooking, error) {
		rm.Status = string(entities.BookingStatusApproved)
		return rm, nil
	})
}

func (r OpsBookingReadModel) OnBookingRejected(ctx context.Context, event *entities.BookingRejected_v1) error {
	return r.updateReadModel(ctx, event.BookingID, func(rm entities.OpsBooking) (entities.OpsBooking, error) {
		rm.Status = string(entities.BookingStatusRejected)
		return rm, nil
	})
}

func (r OpsBookingReadModel) OnBookingPaymentConfirmed(ctx context.Context, event *entities.BookingPaymentConfirmed_v1) error {
	return r.updateReadModel(ctx, event.BookingID, func(rm entities.OpsBooking) (entities.OpsBooking, error) {
		rm.PaymentStatus = string(entities.PaymentStatusPaid)
		rm.EventID = &event.EventID
		rm.ReceiptID = &event.ReceiptID
		rm.TransactionID = event.TransactionID
		return rm, nil
	})
}

func (r OpsBookingReadModel) GetAll(ctx context.Context, eventDate *string) ([]entities.OpsBooking, error) {
	query := `SELECT payload FROM read_model_ops_bookings`
	args := []any{}
	if eventDate != nil && *eventDate != "" {
		query += ` WHERE (payload ->> 'event_date')::date = $1`
		args = append(args, *eventDate)
	}

	var payloads [][]byte
	err := r.conn.Conn.SelectContext(ctx, &payloads, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not get ops bookings: %w", err)
	}

	bookings := make([]entities.OpsBooking, 0, len(payloads))
	for _, payload := range payloads {
		var rm entities.OpsBooking
		if err := json.Unmarshal(payload, &rm); err != nil {
			return nil, fmt.Errorf("could not unmarshal ops booking: %w", err)
		}
		bookings = append(bookings, rm)
	}

	return bookings, nil
}

func (r OpsBookingReadModel) GetByID(ctx context.Context, bookingID string) (entities.OpsBooking, error) {
	var payload []byte
	err := r.conn.Conn.GetContext(ctx, &payload,
		`SELECT payload FROM read_model_ops_bookings WHERE booking_id = $1`,
		bookingID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.OpsBooking{}, ErrBookingNotFound
	}
	if err != nil {
		return entities.OpsBooking{}, fmt.Errorf("could not get ops booking: %w", err)
	}

	var rm entities.OpsBooking
	if err := json.Unmarshal(payload, &rm); err != nil {
		return entities.OpsBooking{}, fmt.Errorf("could not unmarshal ops booking: %w", err)
	}

	return rm, nil
}

func (r OpsBookingReadModel) createReadModel(ctx context.Context, opsBooking entities.OpsBooking) error {
	payload, err := json.Marshal(opsBooking)
	if err != nil {
		return err
	}

	_, err = r.conn.Conn.ExecContext(ctx, `
		INSERT INTO read_model_ops_bookings (payload, booking_id)
		VALUES ($1, $2)
		ON CONFLICT (booking_id) DO NOTHING`,
		payload, opsBooking.BookingID,
	)
	if err != nil {
		return fmt.Errorf("could not create read model: %w", err)
	}

	return nil
}

func (r OpsBookingReadModel) updateReadModel(
	ctx context.Context,
	bookingID uuid.UUID,
	updateFunc func(rm entities.OpsBooking) (entities.OpsBooking, error),
) error {
	err := updateInTx(ctx, r.conn.Conn, sql.LevelRepeatableRead, func(ctx context.Context, tx *sqlx.Tx) error {
		var payload []byte
		err := tx.GetContext(ctx, &payload,
			`SELECT payload FROM read_model_ops_bookings WHERE booking_id = $1 FOR UPDATE`,
			bookingID,
		)
		if errors.Is(err, sql.ErrNoRows) {
			// events arrived out of order - retried until the read model exists
			return fmt.Errorf("read model for booking %s does not exist yet", bookingID)
		}
		if err != nil {
			return fmt.Errorf("could not find read model: %w", err)
		}

		var rm entities.OpsBooking
		if err := json.Unmarshal(payload, &rm); err != nil {
			return fmt.Errorf("could not unmarshal read model: %w", err)
		}

		rm, err = updateFunc(rm)
		if err != nil {
			return err
		}
		rm.LastUpdate = time.Now()

		updated, err := json.Marshal(rm)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE read_model_ops_bookings SET payload = $1 WHERE booking_id = $2`,
			updated, bookingID,
		)
		if err != nil {
			return fmt.Errorf("could not update read model: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	return r.publishUpdated(ctx, bookingID)
}

func (r OpsBookingReadModel) publishUpdated(ctx context.Context, bookingID uuid.UUID) error {
	if r.eventBus == nil {
		return nil
	}

	err := r.eventBus.Publish(ctx, entities.InternalOpsReadModelUpdated{
		Header:    entities.NewEventHeader(),
		BookingID: bookingID,
	})
	if err != nil {
		log.FromContext(ctx).WithError(err).Error("Could not publish ops read model updated event")
	}

	return nil
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"venues/entities"
	"venues/message/event"
	"venues/message/outbox"

	"github.com/google/uuid"
)

type IBookingRepository interface {
	Submit(ctx context.Context, booking entities.BookingRequest) (entities.BookingCreateResponse, error)
	Approve(ctx context.Context, bookingID uuid.UUID) (entities.BookingRequest, error)
	Reject(ctx context.Context, bookingID uuid.UUID) (entities.BookingRequest, error)
	BookingByID(ctx context.Context, bookingID uuid.UUID) (entities.BookingRequest, error)
	GetAll(ctx context.Context) ([]entities.BookingRequest, error)
	ByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]entities.BookingRequest, error)
	Delete(ctx context.Context, bookingID, organizerID uuid.UUID) error
}

type BookingRepository struct {
	db        *DB
	venueRepo VenueRepository
}

func NewBookingRepository(db *DB) BookingRepository {
	if db == nil {
		panic("db is nil")
	}
	return BookingRepository{
		db:        db,
		venueRepo: NewVenueRepository(db),
	}
}

const bookingSelectColumns = `
	booking_id,
	organizer_id,
	venue_id,
	title AS "details.title",
	description AS "details.description",
	category_id AS "details.category_id",
	event_date AS "details.date",
	artist AS "details.artist",
	ticket_price_amount AS "details.ticket_price.amount",
	ticket_price_currency AS "details.ticket_price.currency",
	image_ref AS "details.image_ref",
	status,
	payment_status,
	requested_at
`

// Submit stores a new pending booking request. Availability is checked here
// as a fast-fail convenience only; the authoritative guard runs again at
// approval time, under the same transaction that flips the status.
func (r BookingRepository) Submit(ctx context.Context, booking entities.BookingRequest) (resp entities.BookingCreateResponse, err error) {
	venue, err := r.venueRepo.VenueByID(ctx, booking.VenueID)
	if err != nil {
		return entities.BookingCreateResponse{}, err
	}

	booking.EventDay, err = venue.EventDay(booking.Details.Date)
	if err != nil {
		return entities.BookingCreateResponse{}, err
	}

	available, _, err := r.venueRepo.Availability(ctx, booking.VenueID, booking.Details.Date)
	if err != nil {
		return entities.BookingCreateResponse{}, err
	}
	if !available {
		return entities.BookingCreateResponse{}, ErrVenueUnavailable
	}

	booking.Status = entities.BookingStatusPending
	booking.PaymentStatus = entities.PaymentStatusPending

	tx, err := r.db.Conn.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return entities.BookingCreateResponse{}, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			rollbackErr := tx.Rollback()
			err = errors.Join(err, rollbackErr)
			return
		}
		err = tx.Commit()
	}()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO bookings (
			booking_id, organizer_id, venue_id,
			title, description, category_id, event_date, artist,
			ticket_price_amount, ticket_price_currency, image_ref,
			event_day, status, payment_status, requested_at
		)
		VALUES (
			:booking_id, :organizer_id, :venue_id,
			:details.title, :details.description, :details.category_id, :details.date, :details.artist,
			:details.ticket_price.amount, :details.ticket_price.currency, :details.image_ref,
			:event_day, :status, :payment_status, :requested_at
		)`,
		booking,
	)
	if err != nil {
		return entities.BookingCreateResponse{}, fmt.Errorf("could not add booking: %w", err)
	}

	outboxPublisher, err := outbox.NewPublisherForDb(ctx, tx)
	if err != nil {
		return entities.BookingCreateResponse{}, fmt.Errorf("could not create outbox publisher: %w", err)
	}
	err = event.NewBus(outboxPublisher).Publish(ctx, entities.BookingSubmitted_v1{
		Header:      entities.NewEventHeader(),
		BookingID:   booking.BookingID,
		OrganizerID: booking.OrganizerID,
		VenueID:     booking.VenueID,
		Title:       booking.Details.Title,
		EventDate:   booking.Details.Date,
	})
	if err != nil {
		return entities.BookingCreateResponse{}, fmt.Errorf("could not publish event: %w", err)
	}

	return entities.BookingCreateResponse{BookingID: booking.BookingID}, nil
}

// Approve flips a pending booking to approved. The availability re-check and
// the status flip run inside one serializable transaction; the partial unique
// index on (venue_id, event_day) over approved bookings is the storage-level
// last line of defense against two concurrent approvals for the same slot.
func (r BookingRepository) Approve(ctx context.Context, bookingID uuid.UUID) (booking entities.BookingRequest, err error) {
	tx, err := r.db.Conn.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return entities.BookingRequest{}, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if isErrorUniqueViolation(err) {
				err = ErrVenueUnavailable
			}
			rollbackErr := tx.Rollback()
			if rollbackErr != nil {
				err = errors.Join(err, rollbackErr)
			}
			return
		}
		err = tx.Commit()
	}()

	booking, err = bookingForUpdate(ctx, tx, bookingID)
	if err != nil {
		return entities.BookingRequest{}, err
	}
	if !booking.Status.CanTransitionTo(entities.BookingStatusApproved) {
		return entities.BookingRequest{}, ErrNotPending
	}

	var conflicting uuid.UUID
	err = tx.GetContext(ctx, &conflicting, `
		SELECT booking_id
		FROM bookings
		WHERE venue_id = $1
		  AND event_day = (SELECT event_day FROM bookings WHERE booking_id = $2)
		  AND status = 'approved'
		  AND booking_id != $2
		LIMIT 1`,
		booking.VenueID, bookingID,
	)
	if err == nil {
		return entities.BookingRequest{}, ErrVenueUnavailable
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return entities.BookingRequest{}, fmt.Errorf("could not check for conflicting bookings: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = 'approved' WHERE booking_id = $1 AND status = 'pending'`,
		bookingID,
	)
	if err != nil {
		return entities.BookingRequest{}, fmt.Errorf("could not approve booking: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return entities.BookingRequest{}, err
	}
	if rows == 0 {
		return entities.BookingRequest{}, ErrNotPending
	}
	booking.Status = entities.BookingStatusApproved

	outboxPublisher, err := outbox.NewPublisherForDb(ctx, tx)
	if err != nil {
		return entities.BookingRequest{}, fmt.Errorf("could not create outbox publisher: %w", err)
	}
	err = event.NewBus(outboxPublisher).Publish(ctx, entities.BookingApproved_v1{
		Header:      entities.NewEventHeader(),
		BookingID:   booking.BookingID,
		OrganizerID: booking.OrganizerID,
		VenueID:     booking.VenueID,
		EventDate:   booking.Details.Date,
	})
	if err != nil {
		return entities.BookingRequest{}, fmt.Errorf("could not publish event: %w", err)
	}

	return booking, nil
}

// Reject flips a pending booking to rejected. Rejected is terminal.
func (r BookingRepository) Reject(ctx context.Context, bookingID uuid.UUID) (booking entities.BookingRequest, err error) {
	tx, err := r.db.Conn.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return entities.BookingRequest{}, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			rollbackErr := tx.Rollback()
			if rollbackErr != nil {
				err = errors.Join(err, rollbackErr)
			}
			return
		}
		err = tx.Commit()
	}()

	booking, err = bookingForUpdate(ctx, tx, bookingID)
	if err != nil {
		return entities.BookingRequest{}, err
	}
	if !booking.Status.CanTransitionTo(entities.BookingStatusRejected) {
		return entities.BookingRequest{}, ErrNotPending
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE bookings SET status = 'rejected' WHERE booking_id = $1 AND status = 'pending'`,
		bookingID,
	)
	if err != nil {
		return entities.BookingRequest{}, fmt.Errorf("could not reject booking: %w", err)
	}
	booking.Status = entities.BookingStatusRejected

	outboxPublisher, err := outbox.NewPublisherForDb(ctx, tx)
	if err != nil {
		return entities.BookingRequest{}, fmt.Errorf("could not create outbox publisher: %w", err)
	}
	err = event.NewBus(outboxPublisher).Publish(ctx, entities.BookingRejected_v1{
		Header:      entities.NewEventHeader(),
		BookingID:   booking.BookingID,
		OrganizerID: booking.OrganizerID,
		VenueID:     booking.VenueID,
		EventDate:   booking.Details.Date,
	})
	if err != nil {
		return entities.BookingRequest{}, fmt.Errorf("could not publish event: %w", err)
	}

	return booking, nil
}

func (r BookingRepository) BookingByID(ctx context.Context, bookingID uuid.UUID) (entities.BookingRequest, error) {
	var booking entities.BookingRequest
	err := r.db.Conn.GetContext(ctx, &booking,
		`SELECT `+bookingSelectColumns+` FROM bookings WHERE booking_id = $1`,
		bookingID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.BookingRequest{}, ErrBookingNotFound
	}
	if err != nil {
		return entities.BookingRequest{}, fmt.Errorf("could not get booking: %w", err)
	}

	return booking, nil
}

func (r BookingRepository) GetAll(ctx context.Context) ([]entities.BookingRequest, error) {
	var bookings []entities.BookingRequest
	err := r.db.Conn.SelectContext(ctx, &bookings,
		`SELECT `+bookingSelectColumns+` FROM bookings ORDER BY requested_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("could not get bookings: %w", err)
	}

	return bookings, nil
}

func (r BookingRepository) ByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]entities.BookingRequest, error) {
	var bookings []entities.BookingRequest
	err := r.db.Conn.SelectContext(ctx, &bookings,
		`SELECT `+bookingSelectColumns+` FROM bookings WHERE organizer_id = $1 ORDER BY requested_at DESC`,
		organizerID,
	)
	if err != nil {
		return nil, fmt.Errorf("could not get bookings for organizer: %w", err)
	}

	return bookings, nil
}

// Delete removes a booking while it is still pending or rejected. Approved
// and paid bookings are kept as part of the audit trail.
func (r BookingRepository) Delete(ctx context.Context, bookingID, organizerID uuid.UUID) error {
	result, err := r.db.Conn.ExecContext(ctx, `
		DELETE FROM bookings
		WHERE booking_id = $1
		  AND organizer_id = $2
		  AND status IN ('pending', 'rejected')
		  AND payment_status = 'pending'`,
		bookingID, organizerID,
	)
	if err != nil {
		return fmt.Errorf("could not delete booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		booking, err := r.BookingByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking.OrganizerID != organizerID {
			return ErrBookingNotFound
		}
		return ErrNotDeletable
	}

	return nil
}

func bookingForUpdate(ctx context.Context, tx querier, bookingID uuid.UUID) (entities.BookingRequest, error) {
	var booking entities.BookingRequest
	err := tx.GetContext(ctx, &booking,
		`SELECT `+bookingSelectColumns+` FROM bookings WHERE booking_id = $1 FOR UPDATE`,
		bookingID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.BookingRequest{}, ErrBookingNotFound
	}
	if err != nil {
		return entities.BookingRequest{}, fmt.Errorf("could not get booking: %w", err)
	}

	return booking, nil
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"venues/entities"
	"venues/message/event"
	"venues/message/outbox"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// PaymentRepository owns the one-time materialization of a confirmed payment.
// The payment-status flip and the Event/Receipt (or Ticket) writes share one
// serializable transaction, together with the outbox record of the
// confirmation event, so either all of them commit or none do.
type PaymentRepository struct {
	db *DB
}

func NewPaymentRepository(db *DB) PaymentRepository {
	if db == nil {
		panic("db is nil")
	}
	return PaymentRepository{db: db}
}

type VenueMaterialization struct {
	Booking entities.BookingRequest `json:"booking"`
	Event   entities.Event          `json:"event"`
	Receipt entities.Receipt        `json:"receipt"`

	// AlreadyPaid is set when the idempotency guard found the booking paid
	// already; Event and Receipt then carry the previously created records.
	AlreadyPaid bool `json:"already_paid"`
}

// ConfirmVenueBooking marks the booking paid and materializes the Event and
// Receipt, exactly once per booking. Concurrent confirmations for the same
// booking serialize on the row lock; every caller except the first observes
// the paid flag and gets the existing materialization back.
func (r PaymentRepository) ConfirmVenueBooking(
	ctx context.Context,
	bookingID uuid.UUID,
	transactionID string,
	paidAt time.Time,
) (m VenueMaterialization, err error) {
	tx, err := r.db.Conn.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return VenueMaterialization{}, fmt.Errorf("could not begin transaction: %w", err)
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

	booking, err := bookingForUpdate(ctx, tx, bookingID)
	if err != nil {
		return VenueMaterialization{}, err
	}

	if booking.PaymentStatus == entities.PaymentStatusPaid {
		existing, err := r.existingMaterialization(ctx, tx, booking)
		if err != nil {
			return VenueMaterialization{}, err
		}
		return existing, nil
	}

	if booking.Status != entities.BookingStatusApproved {
		return VenueMaterialization{}, ErrNotApproved
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE bookings SET payment_status = 'paid'
		WHERE booking_id = $1 AND status = 'approved' AND payment_status = 'pending'`,
		bookingID,
	)
	if err != nil {
		return VenueMaterialization{}, fmt.Errorf("could not mark booking paid: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return VenueMaterialization{}, err
	}
	if rows == 0 {
		return VenueMaterialization{}, ErrNotApproved
	}
	booking.PaymentStatus = entities.PaymentStatusPaid

	var venue entities.Venue
	err = tx.GetContext(ctx, &venue,
		`SELECT `+venueSelectColumns+` FROM venues WHERE venue_id = $1`,
		booking.VenueID,
	)
	if err != nil {
		return VenueMaterialization{}, fmt.Errorf("could not get venue for receipt: %w", err)
	}

	materializedEvent := entities.Event{
		EventID:     uuid.New(),
		BookingID:   &booking.BookingID,
		VenueID:     booking.VenueID,
		OrganizerID: booking.OrganizerID,
		CategoryID:  booking.Details.CategoryID,
		Title:       booking.Details.Title,
		Description: booking.Details.Description,
		Date:        booking.Details.Date,
		Artist:      booking.Details.Artist,
		TicketPrice: booking.Details.TicketPrice,
		ImageRef:    booking.Details.ImageRef,
	}
	err = insertEvent(ctx, tx, materializedEvent)
	if err != nil {
		return VenueMaterialization{}, err
	}

	receipt := entities.Receipt{
		ReceiptID:     uuid.New(),
		OrganizerID:   booking.OrganizerID,
		VenueID:       booking.VenueID,
		AmountPaid:    venue.Price,
		TransactionID: transactionID,
		PaymentDate:   paidAt,
	}
	err = insertReceipt(ctx, tx, booking.BookingID, receipt)
	if err != nil {
		return VenueMaterialization{}, err
	}

	err = publishPaymentConfirmed(ctx, tx, booking, materializedEvent, receipt)
	if err != nil {
		return VenueMaterialization{}, err
	}

	return VenueMaterialization{
		Booking: booking,
		Event:   materializedEvent,
		Receipt: receipt,
	}, nil
}

// ConfirmTicketPurchase stores the ticket, keyed on the provider's
// transaction id. The conditional insert is the idempotency guard: the
// caller that loses it gets the already-stored ticket back.
func (r PaymentRepository) ConfirmTicketPurchase(ctx context.Context, ticket entities.Ticket) (stored entities.Ticket, alreadyExisted bool, err error) {
	tx, err := r.db.Conn.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return entities.Ticket{}, false, fmt.Errorf("could not begin transaction: %w", err)
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

	var exists bool
	err = tx.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM events WHERE event_id = $1)`, ticket.EventID)
	if err != nil {
		return entities.Ticket{}, false, fmt.Errorf("could not check event: %w", err)
	}
	if !exists {
		return entities.Ticket{}, false, ErrEventNotFound
	}

	result, err := tx.NamedExecContext(ctx, `
		INSERT INTO tickets (
			ticket_id, buyer_id, event_id, quantity,
			price_amount, price_currency, ticket_code, transaction_id, purchase_date
		)
		VALUES (
			:ticket_id, :buyer_id, :event_id, :quantity,
			:price.amount, :price.currency, :ticket_code, :transaction_id, :purchase_date
		)
		ON CONFLICT (transaction_id) DO NOTHING`,
		ticket,
	)
	if err != nil {
		return entities.Ticket{}, false, fmt.Errorf("could not save ticket: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return entities.Ticket{}, false, err
	}
	if rows == 0 {
		existing, err := ticketByTransactionID(ctx, tx, ticket.TransactionID)
		if err != nil {
			return entities.Ticket{}, false, err
		}
		return existing, true, nil
	}

	outboxPublisher, err := outbox.NewPublisherForDb(ctx, tx)
	if err != nil {
		return entities.Ticket{}, false, fmt.Errorf("could not create outbox publisher: %w", err)
	}
	err = event.NewBus(outboxPublisher).Publish(ctx, entities.TicketPurchased_v1{
		Header:        entities.NewEventHeaderWithIdempotencyKey(ticket.TransactionID),
		TicketID:      ticket.TicketID,
		EventID:       ticket.EventID,
		BuyerID:       ticket.BuyerID,
		Quantity:      ticket.Quantity,
		TicketCode:    ticket.TicketCode,
		TransactionID: ticket.TransactionID,
		Price:         ticket.Price,
	})
	if err != nil {
		return entities.Ticket{}, false, fmt.Errorf("could not publish event: %w", err)
	}

	return ticket, false, nil
}

// MaterializationGaps lists paid bookings that are missing their Event or
// Receipt. With the single-transaction confirmation path this should stay
// empty; the reconciliation command consumes it after manual intervention or
// partial restores.
func (r PaymentRepository) MaterializationGaps(ctx context.Context) ([]entities.BookingRequest, error) {
	var bookings []entities.BookingRequest
	err := r.db.Conn.SelectContext(ctx, &bookings,
		`SELECT `+bookingSelectColumns+`
		FROM bookings b
		WHERE payment_status = 'paid'
		  AND (
			NOT EXISTS (SELECT 1 FROM events e WHERE e.booking_id = b.booking_id)
			OR NOT EXISTS (SELECT 1 FROM receipts r WHERE r.booking_id = b.booking_id)
		  )`,
	)
	if err != nil {
		return nil, fmt.Errorf("could not list materialization gaps: %w", err)
	}

	return bookings, nil
}

// ReconcileVenueBooking re-creates the missing Event and/or Receipt for a
// booking that is already paid. Inserts are conditional, so running it for a
// healthy booking changes nothing.
func (r PaymentRepository) ReconcileVenueBooking(
	ctx context.Context,
	bookingID uuid.UUID,
	transactionID string,
	paidAt time.Time,
) (err error) {
	tx, err := r.db.Conn.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
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

	booking, err := bookingForUpdate(ctx, tx, bookingID)
	if err != nil {
		return err
	}
	if booking.PaymentStatus != entities.PaymentStatusPaid {
		return ErrNotApproved
	}

	existing, err := r.existingMaterialization(ctx, tx, booking)
	if err == nil && existing.Event.EventID != uuid.Nil && existing.Receipt.ReceiptID != uuid.Nil {
		return nil
	}

	materializedEvent := existing.Event
	if materializedEvent.EventID == uuid.Nil {
		materializedEvent = entities.Event{
			EventID:     uuid.New(),
			BookingID:   &booking.BookingID,
			VenueID:     booking.VenueID,
			OrganizerID: booking.OrganizerID,
			CategoryID:  booking.Details.CategoryID,
			Title:       booking.Details.Title,
			Description: booking.Details.Description,
			Date:        booking.Details.Date,
			Artist:      booking.Details.Artist,
			TicketPrice: booking.Details.TicketPrice,
			ImageRef:    booking.Details.ImageRef,
		}
		if err := insertEvent(ctx, tx, materializedEvent); err != nil {
			return err
		}
	}

	receipt := existing.Receipt
	if receipt.ReceiptID == uuid.Nil {
		var venue entities.Venue
		err = tx.GetContext(ctx, &venue,
			`SELECT `+venueSelectColumns+` FROM venues WHERE venue_id = $1`,
			booking.VenueID,
		)
		if err != nil {
			return fmt.Errorf("could not get venue for receipt: %w", err)
		}

		receipt = entities.Receipt{
			ReceiptID:     uuid.New(),
			OrganizerID:   booking.OrganizerID,
			VenueID:       booking.VenueID,
			AmountPaid:    venue.Price,
			TransactionID: transactionID,
			PaymentDate:   paidAt,
		}
		if err := insertReceipt(ctx, tx, booking.BookingID, receipt); err != nil {
			return err
		}
	}

	return publishPaymentConfirmed(ctx, tx, booking, materializedEvent, receipt)
}

// existingMaterialization loads the Event and Receipt previously created for
// a paid booking. Missing records are returned as zero values so callers can
// detect gaps.
func (r PaymentRepository) existingMaterialization(ctx context.Context, tx *sqlx.Tx, booking entities.BookingRequest) (VenueMaterialization, error) {
	m := VenueMaterialization{Booking: booking, AlreadyPaid: true}

	err := tx.GetContext(ctx, &m.Event,
		`SELECT `+eventSelectColumns+` FROM events WHERE booking_id = $1`,
		booking.BookingID,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return VenueMaterialization{}, fmt.Errorf("could not get materialized event: %w", err)
	}

	err = tx.GetContext(ctx, &m.Receipt,
		`SELECT `+receiptSelectColumns+` FROM receipts WHERE booking_id = $1`,
		booking.BookingID,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return VenueMaterialization{}, fmt.Errorf("could not get receipt: %w", err)
	}

	return m, nil
}

func insertEvent(ctx context.Context, tx *sqlx.Tx, e entities.Event) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO events (
			event_id, booking_id, venue_id, organizer_id, category_id,
			title, description, event_date, artist,
			ticket_price_amount, ticket_price_currency, image_ref
		)
		VALUES (
			:event_id, :booking_id, :venue_id, :organizer_id, :category_id,
			:title, :description, :date, :artist,
			:ticket_price.amount, :ticket_price.currency, :image_ref
		)`,
		e,
	)
	if err != nil {
		return fmt.Errorf("could not materialize event: %w", err)
	}
	return nil
}

func insertReceipt(ctx context.Context, tx *sqlx.Tx, bookingID uuid.UUID, receipt entities.Receipt) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO receipts (
			receipt_id, booking_id, organizer_id, venue_id,
			amount_paid_amount, amount_paid_currency, transaction_id, payment_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		receipt.ReceiptID, bookingID, receipt.OrganizerID, receipt.VenueID,
		receipt.AmountPaid.Amount, receipt.AmountPaid.Currency,
		receipt.TransactionID, receipt.PaymentDate,
	)
	if err != nil {
		return fmt.Errorf("could not create receipt: %w", err)
	}
	return nil
}

func publishPaymentConfirmed(ctx context.Context, tx *sqlx.Tx, booking entities.BookingRequest, e entities.Event, receipt entities.Receipt) error {
	outboxPublisher, err := outbox.NewPublisherForDb(ctx, tx)
	if err != nil {
		return fmt.Errorf("could not create outbox publisher: %w", err)
	}

	err = event.NewBus(outboxPublisher).Publish(ctx, entities.BookingPaymentConfirmed_v1{
		Header:        entities.NewEventHeaderWithIdempotencyKey(receipt.TransactionID),
		BookingID:     booking.BookingID,
		EventID:       e.EventID,
		ReceiptID:     receipt.ReceiptID,
		OrganizerID:   booking.OrganizerID,
		VenueID:       booking.VenueID,
		TransactionID: receipt.TransactionID,
		AmountPaid:    receipt.AmountPaid,
	})
	if err != nil {
		return fmt.Errorf("could not publish event: %w", err)
	}

	return nil
}

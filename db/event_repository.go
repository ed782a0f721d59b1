package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"venues/entities"

	"github.com/google/uuid"
)

type IEventRepository interface {
	Create(ctx context.Context, event entities.Event) (entities.EventCreateResponse, error)
	EventByID(ctx context.Context, eventID uuid.UUID) (entities.Event, error)
	GetAll(ctx context.Context) ([]entities.Event, error)
	Update(ctx context.Context, event entities.Event) error
	Delete(ctx context.Context, eventID uuid.UUID) error
}

type EventRepository struct {
	db *DB
}

func NewEventRepository(db *DB) EventRepository {
	if db == nil {
		panic("db is nil")
	}
	return EventRepository{db: db}
}

const eventSelectColumns = `
	event_id,
	booking_id,
	venue_id,
	organizer_id,
	category_id,
	title,
	description,
	event_date AS "date",
	artist,
	ticket_price_amount AS "ticket_price.amount",
	ticket_price_currency AS "ticket_price.currency",
	image_ref
`

// Create stores a directly authored event. Materialized events are created
// by the payment repository inside the confirmation transaction instead.
func (r EventRepository) Create(ctx context.Context, event entities.Event) (entities.EventCreateResponse, error) {
	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}

	err := insertEventExec(ctx, r.db, event)
	if err != nil {
		return entities.EventCreateResponse{}, err
	}

	return entities.EventCreateResponse{EventID: event.EventID}, nil
}

func (r EventRepository) EventByID(ctx context.Context, eventID uuid.UUID) (entities.Event, error) {
	var event entities.Event
	err := r.db.Conn.GetContext(ctx, &event,
		`SELECT `+eventSelectColumns+` FROM events WHERE event_id = $1`,
		eventID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Event{}, ErrEventNotFound
	}
	if err != nil {
		return entities.Event{}, fmt.Errorf("could not get event: %w", err)
	}

	return event, nil
}

func (r EventRepository) GetAll(ctx context.Context) ([]entities.Event, error) {
	var events []entities.Event
	err := r.db.Conn.SelectContext(ctx, &events,
		`SELECT `+eventSelectColumns+` FROM events ORDER BY event_date`,
	)
	if err != nil {
		return nil, fmt.Errorf("could not get events: %w", err)
	}

	return events, nil
}

func (r EventRepository) Update(ctx context.Context, event entities.Event) error {
	result, err := r.db.Conn.NamedExecContext(ctx, `
		UPDATE events SET
			title = :title,
			description = :description,
			category_id = :category_id,
			event_date = :date,
			artist = :artist,
			ticket_price_amount = :ticket_price.amount,
			ticket_price_currency = :ticket_price.currency,
			image_ref = :image_ref
		WHERE event_id = :event_id`,
		event,
	)
	if err != nil {
		return fmt.Errorf("could not update event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (r EventRepository) Delete(ctx context.Context, eventID uuid.UUID) error {
	result, err := r.db.Conn.ExecContext(ctx,
		`DELETE FROM events WHERE event_id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("could not delete event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrEventNotFound
	}

	return nil
}

func insertEventExec(ctx context.Context, db *DB, e entities.Event) error {
	_, err := db.Conn.NamedExecContext(ctx, `
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
		return fmt.Errorf("could not save event: %w", err)
	}
	return nil
}

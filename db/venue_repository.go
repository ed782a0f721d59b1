package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"venues/entities"

	"github.com/google/uuid"
)

type IVenueRepository interface {
	Create(ctx context.Context, venue entities.Venue) (entities.VenueCreateResponse, error)
	Update(ctx context.Context, venue entities.Venue) error
	VenueByID(ctx context.Context, venueID uuid.UUID) (entities.Venue, error)
	GetAll(ctx context.Context) ([]entities.Venue, error)
	Availability(ctx context.Context, venueID uuid.UUID, date time.Time) (bool, *entities.BookingRequest, error)
}

type VenueRepository struct {
	db *DB
}

func NewVenueRepository(db *DB) VenueRepository {
	if db == nil {
		panic("db is nil")
	}
	return VenueRepository{db: db}
}

const venueSelectColumns = `
	venue_id,
	name,
	location,
	timezone,
	capacity,
	price_amount AS "price.amount",
	price_currency AS "price.currency",
	image_ref
`

func (r VenueRepository) Create(ctx context.Context, venue entities.Venue) (entities.VenueCreateResponse, error) {
	var venueID uuid.UUID

	err := r.db.Conn.QueryRowContext(
		ctx,
		`
		INSERT INTO venues (name, location, timezone, capacity, price_amount, price_currency, image_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING venue_id`,
		venue.Name, venue.Location, venue.Timezone, venue.Capacity,
		venue.Price.Amount, venue.Price.Currency, venue.ImageRef,
	).Scan(&venueID)
	if err != nil {
		return entities.VenueCreateResponse{}, fmt.Errorf("could not save venue: %w", err)
	}

	return entities.VenueCreateResponse{VenueID: venueID}, nil
}

func (r VenueRepository) Update(ctx context.Context, venue entities.Venue) error {
	result, err := r.db.Conn.NamedExecContext(ctx, `
		UPDATE venues SET
			name = :name,
			location = :location,
			timezone = :timezone,
			capacity = :capacity,
			price_amount = :price.amount,
			price_currency = :price.currency,
			image_ref = :image_ref
		WHERE venue_id = :venue_id`,
		venue,
	)
	if err != nil {
		return fmt.Errorf("could not update venue: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrVenueNotFound
	}

	return nil
}

func (r VenueRepository) VenueByID(ctx context.Context, venueID uuid.UUID) (entities.Venue, error) {
	var venue entities.Venue
	err := r.db.Conn.GetContext(ctx, &venue,
		`SELECT `+venueSelectColumns+` FROM venues WHERE venue_id = $1`,
		venueID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Venue{}, ErrVenueNotFound
	}
	if err != nil {
		return entities.Venue{}, fmt.Errorf("could not get venue: %w", err)
	}

	return venue, nil
}

func (r VenueRepository) GetAll(ctx context.Context) ([]entities.Venue, error) {
	var venues []entities.Venue
	err := r.db.Conn.SelectContext(ctx, &venues,
		`SELECT `+venueSelectColumns+` FROM venues ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("could not get venues: %w", err)
	}

	return venues, nil
}

// Availability reports whether the venue is free on the calendar day
// containing date, in the venue's reference timezone. Only approved bookings
// block a slot; the conflicting booking is returned when one exists.
func (r VenueRepository) Availability(ctx context.Context, venueID uuid.UUID, date time.Time) (bool, *entities.BookingRequest, error) {
	venue, err := r.VenueByID(ctx, venueID)
	if err != nil {
		return false, nil, err
	}

	day, err := venue.EventDay(date)
	if err != nil {
		return false, nil, err
	}

	var conflicting entities.BookingRequest
	err = r.db.Conn.GetContext(ctx, &conflicting,
		`SELECT `+bookingSelectColumns+`
		FROM bookings
		WHERE venue_id = $1 AND event_day = $2 AND status = 'approved'
		LIMIT 1`,
		venueID, day,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil, nil
	}
	if err != nil {
		return false, nil, fmt.Errorf("could not check venue availability: %w", err)
	}

	return false, &conflicting, nil
}

package db

import (
	"context"
	"fmt"

	"venues/entities"
)

type IDataLakeRepository interface {
	Store(ctx context.Context, event entities.DataLakeEvent) error
	GetAll(ctx context.Context) ([]entities.DataLakeEvent, error)
}

// DataLakeRepository archives every published event, so read models can be
// rebuilt from scratch.
type DataLakeRepository struct {
	db *DB
}

func NewDataLakeRepository(db *DB) DataLakeRepository {
	if db == nil {
		panic("db is nil")
	}
	return DataLakeRepository{db: db}
}

func (r DataLakeRepository) Store(ctx context.Context, event entities.DataLakeEvent) error {
	_, err := r.db.Conn.ExecContext(ctx, `
		INSERT INTO data_lake_events (event_id, published_at, event_name, event_payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id) DO NOTHING`,
		event.EventID, event.Header.PublishedAt, event.EventName, event.EventPayload,
	)
	if err != nil {
		return fmt.Errorf("could not archive event: %w", err)
	}

	return nil
}

func (r DataLakeRepository) GetAll(ctx context.Context) ([]entities.DataLakeEvent, error) {
	var events []entities.DataLakeEvent
	err := r.db.Conn.SelectContext(ctx, &events, `
		SELECT event_id, event_name, event_payload
		FROM data_lake_events
		ORDER BY published_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("could not get archived events: %w", err)
	}

	return events, nil
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"venues/entities"

	"github.com/google/uuid"
)

type TicketRepository struct {
	db *DB
}

func NewTicketRepository(db *DB) TicketRepository {
	if db == nil {
		panic("db is nil")
	}
	return TicketRepository{db: db}
}

const ticketSelectColumns = `
	ticket_id,
	buyer_id,
	event_id,
	quantity,
	price_amount AS "price.amount",
	price_currency AS "price.currency",
	ticket_code,
	transaction_id,
	purchase_date
`

func (r TicketRepository) ByBuyer(ctx context.Context, buyerID uuid.UUID) ([]entities.Ticket, error) {
	var tickets []entities.Ticket
	err := r.db.Conn.SelectContext(ctx, &tickets,
		`SELECT `+ticketSelectColumns+`
		FROM tickets WHERE buyer_id = $1 ORDER BY purchase_date DESC`,
		buyerID,
	)
	if err != nil {
		return nil, fmt.Errorf("could not get tickets: %w", err)
	}

	return tickets, nil
}

func (r TicketRepository) ByTransactionID(ctx context.Context, transactionID string) (entities.Ticket, error) {
	return ticketByTransactionID(ctx, r.db.Conn, transactionID)
}

func ticketByTransactionID(ctx context.Context, q querier, transactionID string) (entities.Ticket, error) {
	var ticket entities.Ticket
	err := q.GetContext(ctx, &ticket,
		`SELECT `+ticketSelectColumns+` FROM tickets WHERE transaction_id = $1`,
		transactionID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Ticket{}, ErrTicketNotFound
	}
	if err != nil {
		return entities.Ticket{}, fmt.Errorf("could not get ticket: %w", err)
	}

	return ticket, nil
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"venues/entities"

	"github.com/google/uuid"
)

type ReceiptRepository struct {
	db *DB
}

func NewReceiptRepository(db *DB) ReceiptRepository {
	if db == nil {
		panic("db is nil")
	}
	return ReceiptRepository{db: db}
}

const receiptSelectColumns = `
	receipt_id,
	organizer_id,
	venue_id,
	amount_paid_amount AS "amount_paid.amount",
	amount_paid_currency AS "amount_paid.currency",
	transaction_id,
	payment_date
`

func (r ReceiptRepository) ByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]entities.Receipt, error) {
	var receipts []entities.Receipt
	err := r.db.Conn.SelectContext(ctx, &receipts,
		`SELECT `+receiptSelectColumns+`
		FROM receipts WHERE organizer_id = $1 ORDER BY payment_date DESC`,
		organizerID,
	)
	if err != nil {
		return nil, fmt.Errorf("could not get receipts: %w", err)
	}

	return receipts, nil
}

func (r ReceiptRepository) ByTransactionID(ctx context.Context, transactionID string) (entities.Receipt, error) {
	var receipt entities.Receipt
	err := r.db.Conn.GetContext(ctx, &receipt,
		`SELECT `+receiptSelectColumns+` FROM receipts WHERE transaction_id = $1`,
		transactionID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Receipt{}, ErrReceiptNotFound
	}
	if err != nil {
		return entities.Receipt{}, fmt.Errorf("could not get receipt: %w", err)
	}

	return receipt, nil
}

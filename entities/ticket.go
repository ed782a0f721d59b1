package entities

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is the audit record of a direct event ticket purchase.
// TransactionID and TicketCode are unique at the storage layer.
type Ticket struct {
	TicketID      uuid.UUID `json:"ticket_id" db:"ticket_id"`
	BuyerID       uuid.UUID `json:"buyer_id" db:"buyer_id"`
	EventID       uuid.UUID `json:"event_id" db:"event_id"`
	Quantity      int       `json:"quantity" db:"quantity"`
	Price         Money     `json:"price" db:"price"`
	TicketCode    string    `json:"ticket_code" db:"ticket_code"`
	TransactionID string    `json:"transaction_id" db:"transaction_id"`
	PurchaseDate  time.Time `json:"purchase_date" db:"purchase_date"`
}

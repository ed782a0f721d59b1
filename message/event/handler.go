package event

import (
	"context"

	"venues/entities"
)

// NotificationsService delivers in-app notifications. Fire-and-forget from
// the core's perspective: failures are retried by the message router, never
// propagated back into the booking pipeline.
type NotificationsService interface {
	Notify(ctx context.Context, notification entities.Notification) error
}

// MailerService renders and sends receipt and ticket emails.
type MailerService interface {
	SendReceipt(ctx context.Context, organizerID string, receipt entities.Receipt) error
	SendTicket(ctx context.Context, buyerID string, ticket entities.Ticket) error
}

type ReceiptRepository interface {
	ByTransactionID(ctx context.Context, transactionID string) (entities.Receipt, error)
}

type TicketRepository interface {
	ByTransactionID(ctx context.Context, transactionID string) (entities.Ticket, error)
}

type Handler struct {
	notificationsService NotificationsService
	mailerService        MailerService
	receiptRepo          ReceiptRepository
	ticketRepo           TicketRepository
}

func NewHandler(
	notificationsService NotificationsService,
	mailerService MailerService,
	receiptRepo ReceiptRepository,
	ticketRepo TicketRepository,
) Handler {
	if notificationsService == nil {
		panic("missing notificationsService")
	}
	if mailerService == nil {
		panic("missing mailerService")
	}

	return Handler{
		notificationsService: notificationsService,
		mailerService:        mailerService,
		receiptRepo:          receiptRepo,
		ticketRepo:           ticketRepo,
	}
}

package event

import (
	"context"
	"fmt"

	"venues/entities"
	"venues/pkg/log"
)

func (h Handler) SendTicket(ctx context.Context, event *entities.TicketPurchased_v1) error {
	log.FromContext(ctx).WithField("ticket_id", event.TicketID).Info("Sending ticket")

	ticket, err := h.ticketRepo.ByTransactionID(ctx, event.TransactionID)
	if err != nil {
		return fmt.Errorf("could not load ticket %s: %w", event.TransactionID, err)
	}

	err = h.mailerService.SendTicket(ctx, event.BuyerID.String(), ticket)
	if err != nil {
		return fmt.Errorf("could not send ticket: %w", err)
	}

	return h.notificationsService.Notify(ctx, entities.Notification{
		UserID:      event.BuyerID,
		Title:       "Tickets purchased",
		Message:     fmt.Sprintf("Your purchase of %d ticket(s) is confirmed.", event.Quantity),
		Type:        "ticket_purchased",
		RelatedItem: event.TicketID.String(),
	})
}

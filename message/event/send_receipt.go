package event

import (
	"context"
	"fmt"

	"venues/entities"
	"venues/pkg/log"
)

// SendReceipt delivers the receipt email after a booking payment was
// confirmed. The materialization already committed; a delivery failure is
// retried here without ever re-running the payment guard.
func (h Handler) SendReceipt(ctx context.Context, event *entities.BookingPaymentConfirmed_v1) error {
	log.FromContext(ctx).WithField("booking_id", event.BookingID).Info("Sending receipt")

	receipt, err := h.receiptRepo.ByTransactionID(ctx, event.TransactionID)
	if err != nil {
		return fmt.Errorf("could not load receipt %s: %w", event.TransactionID, err)
	}

	err = h.mailerService.SendReceipt(ctx, event.OrganizerID.String(), receipt)
	if err != nil {
		return fmt.Errorf("could not send receipt: %w", err)
	}

	return h.notificationsService.Notify(ctx, entities.Notification{
		UserID:      event.OrganizerID,
		Title:       "Payment received",
		Message:     "Your payment was received and your event is now published.",
		Type:        "booking_paid",
		RelatedItem: event.EventID.String(),
	})
}

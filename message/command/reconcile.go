package command

import (
	"context"
	"fmt"

	"venues/entities"
	"venues/pkg/log"
)

func (h Handler) ReconcileBookingPayment(ctx context.Context, cmd *entities.ReconcileBookingPayment) error {
	log.FromContext(ctx).WithField("booking_id", cmd.BookingID).Info("Reconciling booking payment")

	err := h.reconciler.ReconcileVenueBooking(ctx, cmd.BookingID, cmd.TransactionID, cmd.PaidAt)
	if err != nil {
		return fmt.Errorf("could not reconcile booking %s: %w", cmd.BookingID, err)
	}

	return nil
}

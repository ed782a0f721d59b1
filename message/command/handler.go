package command

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PaymentReconciler re-creates missing materialization artifacts for a paid
// booking.
type PaymentReconciler interface {
	ReconcileVenueBooking(ctx context.Context, bookingID uuid.UUID, transactionID string, paidAt time.Time) error
}

type Handler struct {
	reconciler PaymentReconciler
}

func NewHandler(reconciler PaymentReconciler) Handler {
	if reconciler == nil {
		panic("missing reconciler")
	}
	return Handler{reconciler: reconciler}
}

package event

import (
	"context"
	"fmt"

	"venues/entities"
	"venues/pkg/log"
)

func (h Handler) NotifyBookingApproved(ctx context.Context, event *entities.BookingApproved_v1) error {
	log.FromContext(ctx).Info("Notifying organizer about approved booking")

	return h.notificationsService.Notify(ctx, entities.Notification{
		UserID: event.OrganizerID,
		Title:  "Booking approved",
		Message: fmt.Sprintf(
			"Your venue booking for %s was approved. Complete the payment to publish your event.",
			event.EventDate.Format("2006-01-02"),
		),
		Type:        "booking_approved",
		RelatedItem: event.BookingID.String(),
	})
}

func (h Handler) NotifyBookingRejected(ctx context.Context, event *entities.BookingRejected_v1) error {
	log.FromContext(ctx).Info("Notifying organizer about rejected booking")

	return h.notificationsService.Notify(ctx, entities.Notification{
		UserID: event.OrganizerID,
		Title:  "Booking rejected",
		Message: fmt.Sprintf(
			"Your venue booking for %s was rejected.",
			event.EventDate.Format("2006-01-02"),
		),
		Type:        "booking_rejected",
		RelatedItem: event.BookingID.String(),
	})
}

package entities

import "github.com/google/uuid"

// Notification is the payload handed to the external notification
// dispatcher. Its store is not authoritative for any core invariant.
type Notification struct {
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Type        string    `json:"type"`
	RelatedItem string    `json:"related_item,omitempty"`
}

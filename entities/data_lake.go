package entities

import "encoding/json"

// DataLakeEvent is a raw published event as archived in the data lake table.
type DataLakeEvent struct {
	EventID      string          `json:"event_id" db:"event_id"`
	Header       EventHeader     `json:"header" db:"-"`
	EventName    string          `json:"event_name" db:"event_name"`
	EventPayload json.RawMessage `json:"event_payload" db:"event_payload"`
}

package model

import (
	"encoding/json"
	"time"
)

// LogEntry is an append-only audit record of a mutating or auth action.
type LogEntry struct {
	ID        int             `db:"id"         json:"id"`
	UserID    *int            `db:"user_id"    json:"user_id"`
	DeviceID  *int            `db:"device_id"  json:"device_id"`
	Action    string          `db:"action"     json:"action"`
	Details   json.RawMessage `db:"details"    json:"details"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

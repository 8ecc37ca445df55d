package model

import "time"

const (
	DeviceStatusActive   = "active"
	DeviceStatusInactive = "inactive"
)

// Device is a named playback endpoint. It logs in by name and shows its
// assigned banner sequence. LastSeen is written only by the heartbeat
// endpoint and on creation.
type Device struct {
	ID        int        `db:"id"         json:"id"`
	Name      string     `db:"name"       json:"name"`
	Status    string     `db:"status"     json:"status"`
	LastSeen  *time.Time `db:"last_seen"  json:"last_seen"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

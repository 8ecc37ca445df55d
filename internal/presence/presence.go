// Package presence classifies devices as online or offline from their
// last-seen timestamps. Classification is pure and recomputed from scratch
// on every call; callers poll it on a fixed interval.
package presence

import (
	"time"

	"github.com/NovaMidia-Tec/painel/internal/model"
)

// OnlineThreshold is how recent a heartbeat must be for a device to count
// as online. A last_seen exactly this old is offline.
const OnlineThreshold = 30 * time.Second

// IsOnline reports whether a device with the given last-seen timestamp is
// online at instant now. Devices that never reported are offline.
func IsOnline(lastSeen *time.Time, now time.Time) bool {
	if lastSeen == nil {
		return false
	}
	return now.Sub(*lastSeen) < OnlineThreshold
}

// Count partitions devices into online and offline totals at instant now.
func Count(devices []model.Device, now time.Time) (online, offline int) {
	for _, d := range devices {
		if IsOnline(d.LastSeen, now) {
			online++
		} else {
			offline++
		}
	}
	return online, offline
}

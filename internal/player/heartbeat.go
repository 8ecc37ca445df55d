package player

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// HeartbeatInterval is how often a playing device refreshes its last-seen
// timestamp. It matches the presence threshold on the server side.
const HeartbeatInterval = 30 * time.Second

// BeatFunc writes one last-seen update for the device.
type BeatFunc func(ctx context.Context) error

// Heartbeat periodically reports that the device is alive. A failed beat is
// logged and dropped; the next tick supersedes it.
type Heartbeat struct {
	Interval time.Duration
	Beat     BeatFunc
}

func NewHeartbeat(beat BeatFunc) *Heartbeat {
	return &Heartbeat{Interval: HeartbeatInterval, Beat: beat}
}

// Run beats once immediately, then on every tick until ctx is cancelled.
func (h *Heartbeat) Run(ctx context.Context) {
	h.beat(ctx)

	ticker := time.NewTicker(h.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.beat(ctx)
		}
	}
}

func (h *Heartbeat) beat(ctx context.Context) {
	if err := h.Beat(ctx); err != nil {
		log.Warn().Err(err).Msg("heartbeat write failed, dropping")
	}
}

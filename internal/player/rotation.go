// Package player holds the playback-side state machines: the slideshow
// rotation over a device's assigned banners and the heartbeat reporter.
package player

import (
	"time"

	"github.com/NovaMidia-Tec/painel/internal/model"
)

// DefaultInterval is used when the current banner has no usable duration,
// and as the retry interval while the sequence is empty.
const DefaultInterval = 5 * time.Second

// Rotation cycles through an ordered sequence of banners, advancing after
// each banner's configured duration and looping indefinitely. Not safe for
// concurrent use; the player drives it from a single timer loop.
type Rotation struct {
	banners []model.Banner
	index   int
}

// Load replaces the sequence. The index is clamped modulo the new length so
// a shrink mid-loop cannot leave it out of range.
func (r *Rotation) Load(banners []model.Banner) {
	r.banners = banners
	if len(r.banners) == 0 {
		r.index = 0
		return
	}
	r.index = r.index % len(r.banners)
}

// Current returns the banner at the current index, or false if the
// sequence is empty.
func (r *Rotation) Current() (model.Banner, bool) {
	if len(r.banners) == 0 {
		return model.Banner{}, false
	}
	return r.banners[r.index], true
}

// Advance moves to the next banner, wrapping around. On an empty sequence
// it is a no-op.
func (r *Rotation) Advance() {
	if len(r.banners) == 0 {
		return
	}
	r.index = (r.index + 1) % len(r.banners)
}

// Interval returns how long the current banner should stay on screen.
// Falls back to DefaultInterval when the sequence is empty or the banner
// has a non-positive duration.
func (r *Rotation) Interval() time.Duration {
	current, ok := r.Current()
	if !ok || current.Duration <= 0 {
		return DefaultInterval
	}
	return time.Duration(current.Duration) * time.Second
}

// Len returns the number of banners in the sequence.
func (r *Rotation) Len() int {
	return len(r.banners)
}

package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NovaMidia-Tec/painel/internal/model"
)

func banner(id, duration int) model.Banner {
	return model.Banner{ID: id, Title: "b", Duration: duration, Status: model.BannerStatusActive}
}

func TestAdvanceWrapsAround(t *testing.T) {
	var r Rotation
	r.Load([]model.Banner{banner(1, 5), banner(2, 10), banner(3, 7)})

	cur, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, 1, cur.ID)

	r.Advance()
	cur, _ = r.Current()
	assert.Equal(t, 2, cur.ID)

	r.Advance()
	r.Advance()
	cur, _ = r.Current()
	assert.Equal(t, 1, cur.ID, "advance wraps modulo length")
}

func TestAdvanceOnEmptyIsNoop(t *testing.T) {
	var r Rotation
	r.Advance()

	_, ok := r.Current()
	assert.False(t, ok)
	assert.Equal(t, DefaultInterval, r.Interval(), "empty sequence retries on the fallback interval")
}

func TestSingleBannerLoopsToItself(t *testing.T) {
	var r Rotation
	r.Load([]model.Banner{banner(7, 12)})

	r.Advance()
	cur, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, 7, cur.ID)
	assert.Equal(t, 12*time.Second, r.Interval())
}

func TestLoadClampsIndexAfterShrink(t *testing.T) {
	var r Rotation
	r.Load([]model.Banner{banner(1, 5), banner(2, 5), banner(3, 5)})
	r.Advance()
	r.Advance() // index 2

	r.Load([]model.Banner{banner(1, 5), banner(2, 5)})
	cur, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, 1, cur.ID, "index 2 mod 2 lands on the first banner")

	r.Load(nil)
	_, ok = r.Current()
	assert.False(t, ok)

	// index must be reusable after an empty reload
	r.Load([]model.Banner{banner(9, 5)})
	cur, ok = r.Current()
	require.True(t, ok)
	assert.Equal(t, 9, cur.ID)
}

func TestIntervalFallback(t *testing.T) {
	var r Rotation
	r.Load([]model.Banner{banner(1, 0)})
	assert.Equal(t, DefaultInterval, r.Interval(), "zero duration uses the 5s fallback")

	r.Load([]model.Banner{banner(1, -3)})
	assert.Equal(t, DefaultInterval, r.Interval(), "negative duration uses the 5s fallback")
}

// banner A duration=5s and banner B duration=10s in order [A,B]: starting at
// A, after 5s the player shows B, after 15s total it shows A again.
func TestRotationTiming(t *testing.T) {
	var r Rotation
	a := banner(1, 5)
	b := banner(2, 10)
	r.Load([]model.Banner{a, b})

	elapsed := time.Duration(0)

	cur, _ := r.Current()
	assert.Equal(t, a.ID, cur.ID)

	elapsed += r.Interval()
	r.Advance()
	assert.Equal(t, 5*time.Second, elapsed)
	cur, _ = r.Current()
	assert.Equal(t, b.ID, cur.ID)

	elapsed += r.Interval()
	r.Advance()
	assert.Equal(t, 15*time.Second, elapsed)
	cur, _ = r.Current()
	assert.Equal(t, a.ID, cur.ID)
}

package player

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHeartbeatBeatsImmediatelyAndOnTicks(t *testing.T) {
	var beats atomic.Int32
	h := &Heartbeat{
		Interval: 10 * time.Millisecond,
		Beat: func(ctx context.Context) error {
			beats.Add(1)
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	// the first beat fires before the first tick
	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, beats.Load(), int32(1))

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	assert.GreaterOrEqual(t, beats.Load(), int32(3), "ticker keeps beating until cancelled")
}

func TestHeartbeatDropsFailures(t *testing.T) {
	var beats atomic.Int32
	h := &Heartbeat{
		Interval: 10 * time.Millisecond,
		Beat: func(ctx context.Context) error {
			beats.Add(1)
			return errors.New("write rejected")
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Millisecond)
	defer cancel()
	h.Run(ctx)

	// failures never stop the loop
	assert.GreaterOrEqual(t, beats.Load(), int32(3))
}

func TestNewHeartbeatDefaults(t *testing.T) {
	h := NewHeartbeat(func(ctx context.Context) error { return nil })
	assert.Equal(t, HeartbeatInterval, h.Interval)
}

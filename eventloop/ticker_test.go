package eventloop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// onLoop runs fn on the loop the way the slideshow controller calls the ticker.
func onLoop(t *testing.T, l *Loop, fn func()) {
	t.Helper()
	require.NoError(t, l.Do(context.Background(), func() error {
		fn()
		return nil
	}))
}

func TestTickerFiresUntilStopped(t *testing.T) {
	l := runLoop(t)
	var ticks atomic.Int32
	ticker := NewTicker(l, func() { ticks.Add(1) })

	onLoop(t, l, func() { ticker.Start(5 * time.Millisecond) })
	assert.True(t, ticker.Active())
	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)

	onLoop(t, l, ticker.Stop)
	assert.False(t, ticker.Active())
	stoppedAt := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stoppedAt, ticks.Load())
}

func TestTickerReschedule(t *testing.T) {
	l := runLoop(t)
	var ticks atomic.Int32
	ticker := NewTicker(l, func() { ticks.Add(1) })

	onLoop(t, l, func() { ticker.Start(time.Hour) })
	onLoop(t, l, func() { ticker.Reschedule(5 * time.Millisecond) })
	require.Eventually(t, func() bool { return ticks.Load() >= 2 }, time.Second, time.Millisecond)
	onLoop(t, l, ticker.Stop)
}

func TestTickerRescheduleWhileStopped(t *testing.T) {
	l := runLoop(t)
	var ticks atomic.Int32
	ticker := NewTicker(l, func() { ticks.Add(1) })

	onLoop(t, l, func() { ticker.Reschedule(time.Millisecond) })
	assert.False(t, ticker.Active())
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, ticks.Load())
}

func TestTickerDoesNotQueueTicks(t *testing.T) {
	l := runLoop(t)
	var ticks atomic.Int32
	ticker := NewTicker(l, func() {
		if ticks.Add(1) == 1 {
			// hold the loop while the timer keeps firing
			time.Sleep(50 * time.Millisecond)
		}
	})

	onLoop(t, l, func() { ticker.Start(time.Millisecond) })
	require.Eventually(t, func() bool { return ticks.Load() >= 1 }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	onLoop(t, l, ticker.Stop)

	assert.LessOrEqual(t, ticks.Load(), int32(2))
}

package eventloop

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Ticker is a recurring timer whose firings run onTick on the loop. A firing that
// arrives while the previous tick is still waiting in the queue is dropped, so
// ticks never pile up behind slow events.
type Ticker struct {
	loop   *Loop
	onTick func()

	mu       sync.Mutex
	timer    *time.Timer
	interval time.Duration
	gen      uint64

	pending atomic.Bool
}

// NewTicker returns a stopped ticker that posts onTick to loop.
func NewTicker(loop *Loop, onTick func()) *Ticker {
	return &Ticker{
		loop:   loop,
		onTick: onTick,
	}
}

// Start begins firing every interval, replacing any previous schedule.
func (t *Ticker) Start(interval time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.arm(interval)
}

// Stop cancels the schedule. Ticks already queued are discarded when they run.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
}

// Reschedule restarts the period at interval from now. On a stopped ticker it only
// records the interval.
func (t *Ticker) Reschedule(interval time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer == nil {
		t.interval = interval
		return
	}
	t.arm(interval)
}

// Active reports whether the ticker is currently scheduled.
func (t *Ticker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

func (t *Ticker) arm(interval time.Duration) {
	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen++
	gen := t.gen
	t.interval = interval
	t.timer = time.AfterFunc(interval, func() { t.fire(gen) })
}

func (t *Ticker) current(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return gen == t.gen
}

func (t *Ticker) fire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.timer = time.AfterFunc(t.interval, func() { t.fire(gen) })
	t.mu.Unlock()

	if !t.pending.CompareAndSwap(false, true) {
		slog.Debug("dropping tick, previous tick still queued")
		return
	}

	err := t.loop.Post(context.Background(), func() {
		t.pending.Store(false)
		if !t.current(gen) {
			return
		}
		t.onTick()
	})
	if err != nil {
		t.pending.Store(false)
		slog.Warn("unable to post tick", "error", err)
	}
}

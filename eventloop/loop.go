// Package eventloop runs slideshow operations on a single goroutine. HTTP handlers
// and timer firings post work into the loop instead of touching state directly.
package eventloop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
)

const queueSize = 64

var (
	// ErrStopped is returned for work posted after the loop has exited.
	ErrStopped = errors.New("event loop stopped")

	// ErrPanic wraps a panic recovered while running an event.
	ErrPanic = errors.New("event panicked")
)

// Loop is a FIFO queue of events drained by one goroutine.
type Loop struct {
	events  chan func()
	stopped chan struct{}
}

// New returns a loop that is idle until Run is called.
func New() *Loop {
	return &Loop{
		events:  make(chan func(), queueSize),
		stopped: make(chan struct{}),
	}
}

// Run dispatches events until ctx is done. It must be called exactly once.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.events:
			l.dispatch(fn)
		}
	}
}

func (l *Loop) dispatch(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("recovered panic in event", "panic", r, "stack", string(debug.Stack()))
		}
	}()
	fn()
}

// Post queues fn without waiting for it to run.
func (l *Loop) Post(ctx context.Context, fn func()) error {
	select {
	case <-l.stopped:
		return ErrStopped
	default:
	}

	select {
	case l.events <- fn:
		return nil
	case <-l.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do runs fn on the loop and returns its error once it has finished. A panic in fn
// is reported as ErrPanic.
func (l *Loop) Do(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	err := l.Post(ctx, func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("recovered panic in event", "panic", r, "stack", string(debug.Stack()))
				result <- fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()
		result <- fn()
	})
	if err != nil {
		return err
	}

	select {
	case err := <-result:
		return err
	case <-l.stopped:
		// the event may have completed just before the loop exited
		select {
		case err := <-result:
			return err
		default:
			return ErrStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

package eventloop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runLoop(t *testing.T) *Loop {
	t.Helper()
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return l
}

func TestDoRunsInOrderOnOneGoroutine(t *testing.T) {
	l := runLoop(t)

	var (
		wg    sync.WaitGroup
		order []int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// unsynchronised append is safe only because the loop serialises events
			err := l.Do(context.Background(), func() error {
				order = append(order, i)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Len(t, order, 50)
}

func TestDoReturnsError(t *testing.T) {
	l := runLoop(t)
	want := errors.New("boom")
	err := l.Do(context.Background(), func() error { return want })
	assert.ErrorIs(t, err, want)
}

func TestPanicKeepsLoopAlive(t *testing.T) {
	l := runLoop(t)

	err := l.Do(context.Background(), func() error { panic("bad event") })
	assert.ErrorIs(t, err, ErrPanic)

	require.NoError(t, l.Post(context.Background(), func() { panic("posted") }))

	ran := false
	require.NoError(t, l.Do(context.Background(), func() error {
		ran = true
		return nil
	}))
	assert.True(t, ran)
}

func TestStoppedLoop(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l.Run(ctx)

	assert.ErrorIs(t, l.Post(context.Background(), func() {}), ErrStopped)
	assert.ErrorIs(t, l.Do(context.Background(), func() error { return nil }), ErrStopped)
}

func TestDoHonoursContext(t *testing.T) {
	l := New() // never run, so the event is never picked up
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.Do(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

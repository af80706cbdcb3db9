package controller

import (
	"context"
	"sync/atomic"
	"time"
)

// Scheduler runs callbacks on the controller's event loop. Every callback
// passed to AfterFunc or Post runs on the same goroutine as the rest of
// the controller.
type Scheduler interface {
	// AfterFunc runs fn on the loop once d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer

	// Post runs fn on the loop as soon as possible. It is safe to call
	// from any goroutine.
	Post(fn func())
}

// Timer is a pending AfterFunc callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the
	// callback was still pending.
	Stop() bool
}

// Loop is a single-goroutine callback queue backed by real timers.
// Callbacks are delivered either by Run or, in the terminal UI, by
// receiving from Queue.
type Loop struct {
	queue chan func()
	done  chan struct{}
	once  atomic.Bool
}

// NewLoop creates an idle loop.
func NewLoop() *Loop {
	return &Loop{
		queue: make(chan func(), 64),
		done:  make(chan struct{}),
	}
}

// Post queues fn. If the queue is full the send happens in the background
// so a callback posting to its own loop never deadlocks.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.done:
		return
	case l.queue <- fn:
	default:
		go func() {
			select {
			case <-l.done:
			case l.queue <- fn:
			}
		}()
	}
}

// AfterFunc schedules fn on the loop after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	lt := &loopTimer{}
	lt.t = time.AfterFunc(d, func() {
		l.Post(func() {
			// Stop may have raced the timer firing.
			if !lt.state.CompareAndSwap(timerPending, timerFired) {
				return
			}
			fn()
		})
	})
	return lt
}

// Queue exposes the pending callbacks to an external event loop.
func (l *Loop) Queue() <-chan func() {
	return l.queue
}

// Run executes callbacks until ctx is cancelled or Close is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.queue:
			fn()
		}
	}
}

// Do runs fn on the loop and waits for it to finish. It must not be
// called from the loop itself.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	l.Post(func() {
		defer close(finished)
		fn()
	})
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return context.Canceled
	}
}

// Close stops the loop. Pending callbacks are dropped.
func (l *Loop) Close() {
	if l.once.CompareAndSwap(false, true) {
		close(l.done)
	}
}

const (
	timerPending int32 = iota
	timerStopped
	timerFired
)

type loopTimer struct {
	t     *time.Timer
	state atomic.Int32
}

func (t *loopTimer) Stop() bool {
	wasPending := t.state.CompareAndSwap(timerPending, timerStopped)
	t.t.Stop()
	return wasPending
}

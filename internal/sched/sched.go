// Package sched provides the timer abstraction the page animations are
// driven by. A Loop executes every callback on one goroutine so the state a
// callback touches never needs locking; Manual replaces wall-clock time in
// tests.
package sched

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer; false means the callback already ran or the timer
	// was already stopped.
	Stop() bool
}

// Scheduler arms one-shot callbacks.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Loop is a single-goroutine event loop. Tasks posted with Post and
// callbacks armed with AfterFunc run serially inside Run.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLoop returns a loop with a task queue of the given depth.
func NewLoop(queue int) *Loop {
	if queue <= 0 {
		queue = 64
	}
	return &Loop{
		tasks: make(chan func(), queue),
		done:  make(chan struct{}),
	}
}

// Run executes tasks until ctx is cancelled. Posts and timers that fire
// after Run returns are dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer l.close()
	for {
		select {
		case f := <-l.tasks:
			f()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) close() {
	l.once.Do(func() { close(l.done) })
}

// Post enqueues f to run on the loop. It reports false if the loop has
// stopped.
func (l *Loop) Post(f func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- f:
		return true
	case <-l.done:
		return false
	}
}

// TryPost enqueues f without blocking. It reports false if the queue is
// full or the loop has stopped.
func (l *Loop) TryPost(f func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- f:
		return true
	default:
		return false
	}
}

// AfterFunc arms f to run on the loop after d.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped.CompareAndSwap(false, true) {
				f()
			}
		})
	})
	return t
}

type loopTimer struct {
	timer   *time.Timer
	stopped atomic.Bool
}

func (t *loopTimer) Stop() bool {
	// The wall-clock timer may already have fired and queued the callback,
	// so the flag is what actually keeps it from running.
	t.timer.Stop()
	return t.stopped.CompareAndSwap(false, true)
}

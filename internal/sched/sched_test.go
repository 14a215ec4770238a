package sched

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestManualRunsInDueOrder(t *testing.T) {
	m := NewManual()
	var got []string
	m.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	m.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	m.AfterFunc(10*time.Millisecond, func() {
		got = append(got, "b")
		m.AfterFunc(5*time.Millisecond, func() { got = append(got, "b2") })
	})

	m.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "b2"}, got)
	assert.Equal(t, 1, m.Pending())

	m.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "b2", "c"}, got)
	assert.Equal(t, 30*time.Millisecond, m.Now())
}

func TestManualStop(t *testing.T) {
	m := NewManual()
	ran := false
	timer := m.AfterFunc(time.Millisecond, func() { ran = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	m.Advance(time.Second)
	assert.False(t, ran)
	assert.Zero(t, m.Pending())
}

func TestLoopRunsTimersOnLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoop(8)
	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()

	fired := make(chan struct{})
	l.AfterFunc(time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}

	cancel()
	require.ErrorIs(t, <-errc, context.Canceled)
	assert.False(t, l.Post(func() {}))
}

func TestLoopStoppedTimerNeverRuns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := NewLoop(8)

	ran := false
	var timer Timer
	// Arm and stop from the loop itself, the way animators do.
	armed := make(chan struct{})
	go func() { _ = l.Run(ctx) }()
	l.Post(func() {
		timer = l.AfterFunc(0, func() { ran = true })
		close(armed)
	})
	<-armed
	time.Sleep(5 * time.Millisecond)

	checked := make(chan bool)
	l.Post(func() {
		timer.Stop()
		checked <- ran
	})
	// Either the callback ran before Stop (allowed) or it must never run.
	before := <-checked
	time.Sleep(5 * time.Millisecond)
	after := make(chan bool)
	l.Post(func() { after <- ran })
	assert.Equal(t, before, <-after)
}

func TestLoopTryPostNeverBlocks(t *testing.T) {
	l := NewLoop(1)
	assert.True(t, l.TryPost(func() {}))
	assert.False(t, l.TryPost(func() {}), "queue is full")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, l.Run(ctx), context.Canceled)
	assert.False(t, l.TryPost(func() {}), "loop has stopped")
}

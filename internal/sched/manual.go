package sched

import (
	"sort"
	"time"
)

// Manual is a virtual-time Scheduler. Nothing runs until Advance is called,
// which makes timer choreography deterministic under test. Manual is not
// safe for concurrent use.
type Manual struct {
	now     time.Duration
	seq     uint64
	pending []*manualTimer
}

// NewManual returns a scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

type manualTimer struct {
	m   *Manual
	due time.Duration
	seq uint64
	f   func()
}

// AfterFunc arms f to run once virtual time has advanced by d.
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{m: m, due: m.now + d, seq: m.seq, f: f}
	m.pending = append(m.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	for i, p := range t.m.pending {
		if p == t {
			t.m.pending = append(t.m.pending[:i], t.m.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of armed timers.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Advance moves virtual time forward by d, running every callback that
// becomes due in due-time order. Callbacks armed by callbacks run in the
// same call if they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	end := m.now + d
	for {
		t := m.next()
		if t == nil || t.due > end {
			break
		}
		t.Stop()
		m.now = t.due
		t.f()
	}
	m.now = end
}

// RunUntil advances in steps of step until cond holds or limit elapses.
// It reports whether cond was met.
func (m *Manual) RunUntil(step, limit time.Duration, cond func() bool) bool {
	for elapsed := time.Duration(0); elapsed <= limit; elapsed += step {
		if cond() {
			return true
		}
		m.Advance(step)
	}
	return cond()
}

func (m *Manual) next() *manualTimer {
	if len(m.pending) == 0 {
		return nil
	}
	sort.SliceStable(m.pending, func(i, j int) bool {
		a, b := m.pending[i], m.pending[j]
		if a.due != b.due {
			return a.due < b.due
		}
		return a.seq < b.seq
	})
	return m.pending[0]
}

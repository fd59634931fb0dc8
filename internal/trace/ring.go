package trace

import (
	"sync"
	"sync/atomic"
)

// RingTracer keeps the last N events in memory. The explorer shows its
// snapshot after each request.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	next  int
	full  bool
	level Level
	seq   atomic.Uint64
}

func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = 1
	}
	return &RingTracer{buf: make([]Event, size), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if ev == nil || !t.level.ShouldEmit(ev.Scope) {
		return
	}
	ev.Seq = t.seq.Add(1)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf[t.next] = *ev
	t.next++
	if t.next == len(t.buf) {
		t.next = 0
		t.full = true
	}
}

// Snapshot returns buffered events oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.full {
		return append([]Event(nil), t.buf[:t.next]...)
	}
	out := make([]Event, 0, len(t.buf))
	out = append(out, t.buf[t.next:]...)
	return append(out, t.buf[:t.next]...)
}

// Reset drops buffered events.
func (t *RingTracer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next, t.full = 0, false
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }

package trace

import (
	"bufio"
	"io"
	"sync"
	"sync/atomic"
)

// StreamTracer writes every accepted event to w as it arrives.
type StreamTracer struct {
	mu     sync.Mutex
	out    io.WriteCloser
	w      *bufio.Writer
	level  Level
	format Format
	seq    atomic.Uint64
}

// NewStreamTracer wraps out. Close closes out.
func NewStreamTracer(out io.WriteCloser, level Level, format Format) *StreamTracer {
	return &StreamTracer{out: out, w: bufio.NewWriter(out), level: level, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if ev == nil || !t.level.ShouldEmit(ev.Scope) {
		return
	}
	ev.Seq = t.seq.Add(1)
	line := FormatEvent(ev, t.format)
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = t.w.Write(line)
	_ = t.w.WriteByte('\n')
	// span ends of a request close the request; flush so that tail -f sees it
	if ev.Kind == KindSpanEnd && ev.Scope == ScopeDriver {
		_ = t.w.Flush()
	}
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.w.Flush()
}

func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		_ = t.out.Close()
		return err
	}
	return t.out.Close()
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }

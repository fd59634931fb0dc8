package trace

import (
	"fmt"
	"io"
	"os"
)

// Tracer receives trace events.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// Config describes a tracer built from command-line flags.
type Config struct {
	Level  Level
	Format Format
	// Output is "-" or "" for stderr, "ring" for an in-memory buffer,
	// anything else is a file path.
	Output   string
	RingSize int
}

// New builds a tracer for cfg. LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	switch cfg.Output {
	case "", "-":
		return NewStreamTracer(nopCloser{os.Stderr}, cfg.Level, cfg.Format), nil
	case "ring":
		size := cfg.RingSize
		if size <= 0 {
			size = 1024
		}
		return NewRingTracer(size, cfg.Level), nil
	default:
		f, err := os.Create(cfg.Output)
		if err != nil {
			return nil, fmt.Errorf("create trace file: %w", err)
		}
		return NewStreamTracer(f, cfg.Level, cfg.Format), nil
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

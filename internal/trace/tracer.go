package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Tracer receives events. Implementations must be safe for concurrent use.
type Tracer interface {
	Emit(ev Event)
	Level() Level
	Close() error
}

type nopTracer struct{}

func (nopTracer) Emit(Event)   {}
func (nopTracer) Level() Level { return LevelOff }
func (nopTracer) Close() error { return nil }

// Nop records nothing.
var Nop Tracer = nopTracer{}

// Mode selects where a Recorder keeps events.
type Mode uint8

const (
	ModeStream Mode = iota + 1 // пишет сразу
	ModeRing                   // хранит последние N, пишет при Close
)

func (m Mode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeRing:
		return "ring"
	}
	return "unknown"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stream":
		return ModeStream, nil
	case "ring":
		return ModeRing, nil
	}
	return 0, fmt.Errorf("invalid trace mode %q (expected stream|ring)", s)
}

const defaultRingSize = 4096

// Config describes a Recorder.
type Config struct {
	Level      Level
	Mode       Mode
	Format     Format    // FormatAuto - по расширению OutputPath
	Output     io.Writer // если nil, используется OutputPath
	OutputPath string    // "-" или "" - stderr
	RingSize   int
}

// New returns Nop when cfg.Level is LevelOff and a Recorder otherwise.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.Format == FormatAuto {
		cfg.Format = FormatForPath(cfg.OutputPath)
	}
	r := &Recorder{level: cfg.Level, format: cfg.Format}
	switch cfg.Mode {
	case ModeStream, 0:
	case ModeRing:
		size := cfg.RingSize
		if size <= 0 {
			size = defaultRingSize
		}
		r.ring = make([]Event, size)
	default:
		return nil, fmt.Errorf("unknown trace mode %v", cfg.Mode)
	}
	if err := r.open(cfg); err != nil {
		return nil, err
	}
	return r, nil
}

// Recorder writes events as they arrive, or keeps the last ones in a ring
// and writes them on Close.
type Recorder struct {
	mu     sync.Mutex
	level  Level
	format Format
	w      io.Writer
	closer io.Closer
	seq    uint64

	ring []Event
	head int
	full bool
}

func (r *Recorder) open(cfg Config) error {
	switch {
	case cfg.Output != nil:
		r.w = cfg.Output
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		r.w = os.Stderr
	default:
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to open trace output: %w", err)
		}
		r.w, r.closer = f, f
	}
	return nil
}

func (r *Recorder) Level() Level { return r.level }

func (r *Recorder) Emit(ev Event) {
	if ev.Kind != KindBeat && !r.level.Allows(ev.Scope) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	ev.Seq = r.seq
	if r.ring != nil {
		r.ring[r.head] = ev
		r.head = (r.head + 1) % len(r.ring)
		if r.head == 0 {
			r.full = true
		}
		return
	}
	// ошибки записи трейса не должны ронять скан
	_, _ = r.w.Write(FormatEvent(&ev, r.format)) //nolint:errcheck
}

// Events returns the ring contents oldest first; nil in stream mode.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ring == nil {
		return nil
	}
	if !r.full {
		return append([]Event(nil), r.ring[:r.head]...)
	}
	out := make([]Event, 0, len(r.ring))
	out = append(out, r.ring[r.head:]...)
	return append(out, r.ring[:r.head]...)
}

// Close writes out the ring, if any, and closes a file output.
func (r *Recorder) Close() error {
	var err error
	if r.ring != nil {
		for _, ev := range r.Events() {
			if _, werr := r.w.Write(FormatEvent(&ev, r.format)); werr != nil {
				err = werr
				break
			}
		}
	}
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
		r.closer = nil
	}
	return err
}

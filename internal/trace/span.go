package trace

import (
	"context"
	"sync/atomic"
	"time"
)

type tracerKey struct{}
type spanKey struct{}

// WithTracer attaches t to ctx.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer of ctx or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

var spanIDs atomic.Uint64

// Span is one open node of the run tree. A nil or disabled span ignores
// every call.
type Span struct {
	tracer   Tracer
	id       uint64
	parent   uint64
	scope    Scope
	name     string
	severity string
	path     string
	started  time.Time
	attrs    []Attr
}

// StartRun opens the root span of a run.
func StartRun(ctx context.Context) (context.Context, *Span) {
	return start(ctx, ScopeRun, "run", "", "")
}

// StartPass opens the span of one severity pass.
func StartPass(ctx context.Context, severity string) (context.Context, *Span) {
	return start(ctx, ScopePass, "pass", severity, "")
}

// StartFile opens the span of one file; it inherits the pass severity.
func StartFile(ctx context.Context, path string) (context.Context, *Span) {
	return start(ctx, ScopeFile, "file", "", path)
}

func start(ctx context.Context, scope Scope, name, severity, path string) (context.Context, *Span) {
	s := &Span{scope: scope, name: name, severity: severity, path: path}
	if parent, ok := ctx.Value(spanKey{}).(*Span); ok {
		s.parent = parent.id
		if s.severity == "" {
			s.severity = parent.severity
		}
	}
	t := FromContext(ctx)
	if t.Level().Allows(scope) {
		s.tracer = t
		s.id = spanIDs.Add(1)
		s.started = time.Now()
		t.Emit(s.event(KindBegin))
	}
	return context.WithValue(ctx, spanKey{}, s), s
}

func (s *Span) active() bool { return s != nil && s.tracer != nil }

// Set attaches a key/value pair to the end event.
func (s *Span) Set(key, value string) *Span {
	if s.active() {
		s.attrs = append(s.attrs, Attr{Key: key, Value: value})
	}
	return s
}

// End emits the end event, with err when not nil, and returns the span
// duration.
func (s *Span) End(err error) time.Duration {
	if !s.active() {
		return 0
	}
	ev := s.event(KindEnd)
	ev.Elapsed = time.Since(s.started)
	ev.Attrs = s.attrs
	if err != nil {
		ev.Err = err.Error()
	}
	s.tracer.Emit(ev)
	s.tracer = nil
	return ev.Elapsed
}

// ID is 0 for a span that is not recorded.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

func (s *Span) event(kind Kind) Event {
	return Event{
		Time:     time.Now(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Severity: s.severity,
		Path:     s.path,
	}
}

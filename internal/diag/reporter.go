package diag

import (
	"sync"

	"logdoc/internal/source"
)

// Reporter принимает диагностики от загрузчика, парсера и сканера.
type Reporter interface {
	Report(d *Diagnostic)
}

// ReportBuilder accumulates a span diagnostic and its notes before Emit.
type ReportBuilder struct {
	reporter Reporter
	diag     *Diagnostic
	emitted  bool
}

// ReportError starts an error diagnostic at primary.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{reporter: r, diag: New(SevError, code, primary, msg)}
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b != nil {
		b.diag.WithNote(sp, msg)
	}
	return b
}

// WithPath sets the display path.
func (b *ReportBuilder) WithPath(path string) *ReportBuilder {
	if b != nil {
		b.diag.Path = path
	}
	return b
}

// Emit sends the diagnostic to the reporter at most once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	b.emitted = true
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
}

// Diagnostic returns the diagnostic being built without emitting it.
func (b *ReportBuilder) Diagnostic() *Diagnostic {
	if b == nil {
		return nil
	}
	return b.diag
}

// BagReporter stores into Bag. It is not safe for concurrent use; wrap it in
// a DedupReporter when several goroutines report.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d *Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

type NopReporter struct{}

func (NopReporter) Report(*Diagnostic) {}

// DedupReporter forwards each distinct diagnostic once. Identity is code,
// severity, path, span offsets and message; file ids are ignored because
// every severity pass loads the tree into a new file set.
type DedupReporter struct {
	next Reporter
	mu   sync.Mutex
	seen map[dedupKey]struct{}
}

type dedupKey struct {
	code       Code
	sev        Severity
	path       string
	start, end uint32
	msg        string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(d *Diagnostic) {
	if r == nil || d == nil {
		return
	}
	key := dedupKey{d.Code, d.Severity, d.Path, d.Primary.Start, d.Primary.End, d.Message}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(d)
	}
}

package diag

import (
	"logdoc/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one operator-facing finding.
//
// Position data is resolved when the diagnostic is created: the scanner uses a
// fresh FileSet per pass, so spans alone cannot be resolved after the pass ends.
// Primary may be the zero span when the problem has no source location
// (e.g. an unreadable file); HasSpan tells the two apart.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Path     string
	Primary  source.Span
	HasSpan  bool
	Pos      source.Pos // позиция начала Primary
	Snippet  string     // строка исходника, содержащая Pos
	Notes    []Note
}

// Located attaches resolved position data taken from the file set.
func (d *Diagnostic) Located(fs *source.FileSet) *Diagnostic {
	if d == nil || fs == nil || !d.HasSpan {
		return d
	}
	file := fs.Get(d.Primary.File)
	if file == nil {
		return d
	}
	start, _ := fs.Resolve(d.Primary)
	d.Pos = start
	d.Snippet = file.Line(start.Line)
	if d.Path == "" {
		d.Path = file.Path
	}
	return d
}

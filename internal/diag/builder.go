package diag

import "logdoc/internal/source"

func New(sev Severity, code Code, primary source.Span, msg string) *Diagnostic {
	return &Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		HasSpan:  true,
		Message:  msg,
	}
}

// NewPathError creates a span-less error bound to a file path.
func NewPathError(code Code, path, msg string) *Diagnostic {
	return &Diagnostic{
		Severity: SevError,
		Code:     code,
		Path:     path,
		Message:  msg,
	}
}

// NewPathInfo creates a span-less notice bound to a path.
func NewPathInfo(code Code, path, msg string) *Diagnostic {
	d := NewPathError(code, path, msg)
	d.Severity = SevInfo
	return d
}

func (d *Diagnostic) WithNote(sp source.Span, msg string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

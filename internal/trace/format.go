package trace

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Format uint8

const (
	FormatAuto Format = iota
	FormatText
	FormatNDJSON
)

// FormatForPath picks NDJSON for .ndjson/.json paths and text otherwise.
func FormatForPath(path string) Format {
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".json") {
		return FormatNDJSON
	}
	return FormatText
}

// FormatEvent renders ev as one line terminated by '\n'.
func FormatEvent(ev *Event, f Format) []byte {
	if f == FormatNDJSON {
		return formatNDJSON(ev)
	}
	return formatText(ev)
}

type jsonEvent struct {
	Time      string  `json:"time"`
	Seq       uint64  `json:"seq"`
	Kind      string  `json:"kind"`
	Scope     string  `json:"scope"`
	Span      uint64  `json:"span,omitempty"`
	Parent    uint64  `json:"parent,omitempty"`
	Name      string  `json:"name"`
	Severity  string  `json:"severity,omitempty"`
	Path      string  `json:"path,omitempty"`
	ElapsedMS float64 `json:"elapsed_ms,omitempty"`
	Err       string  `json:"error,omitempty"`
	Attrs     []Attr  `json:"attrs,omitempty"`
}

func formatNDJSON(ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:      ev.Time.Format(time.RFC3339Nano),
		Seq:       ev.Seq,
		Kind:      ev.Kind.String(),
		Scope:     ev.Scope.String(),
		Span:      ev.SpanID,
		Parent:    ev.ParentID,
		Name:      ev.Name,
		Severity:  ev.Severity,
		Path:      ev.Path,
		ElapsedMS: float64(ev.Elapsed.Microseconds()) / 1000,
		Err:       ev.Err,
		Attrs:     ev.Attrs,
	})
	if err != nil {
		return []byte(fmt.Sprintf("{\"error\":%q}\n", err.Error()))
	}
	return append(data, '\n')
}

// formatText: [15:04:05.000] <отступ по scope><маркер> name [SEVERITY] path (elapsed) k=v ...
func formatText(ev *Event) []byte {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(ev.Time.Format("15:04:05.000"))
	sb.WriteString("] ")
	if ev.Scope > ScopeRun {
		sb.WriteString(strings.Repeat("  ", int(ev.Scope-ScopeRun)))
	}
	switch ev.Kind {
	case KindBegin:
		sb.WriteString("> ")
	case KindEnd:
		sb.WriteString("< ")
	case KindBeat:
		sb.WriteString("~ ")
	}
	sb.WriteString(ev.Name)
	if ev.Severity != "" {
		fmt.Fprintf(&sb, " [%s]", ev.Severity)
	}
	if ev.Path != "" {
		sb.WriteString(" ")
		sb.WriteString(ev.Path)
	}
	if ev.Kind == KindEnd {
		fmt.Fprintf(&sb, " (%s)", ev.Elapsed.Round(time.Microsecond))
	}
	if ev.Err != "" {
		fmt.Fprintf(&sb, " error=%q", ev.Err)
	}
	for _, a := range ev.Attrs {
		sb.WriteString(" ")
		sb.WriteString(a.Key)
		sb.WriteString("=")
		sb.WriteString(a.Value)
	}
	sb.WriteString("\n")
	return []byte(sb.String())
}

package scan

import (
	"errors"
	"fmt"
	"time"

	"logdoc/internal/levels"
)

// Record is one normalized logging call site.
type Record struct {
	Path    string
	Line    uint32
	Level   levels.Level
	Message string
	Args    []string
}

// FileReport holds the records of one file in line order.
type FileReport struct {
	Path    string
	Records []Record
}

// Result is the outcome of one severity pass. Files holds only files with at
// least one record, in lexicographic path order.
type Result struct {
	Level  levels.Level
	Root   string
	Files  []FileReport
	Failed []string // файлы, которые не удалось прочитать или разобрать
}

// Len returns the number of records across all files.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, f := range r.Files {
		n += len(f.Records)
	}
	return n
}

// Empty reports whether the pass found nothing.
func (r *Result) Empty() bool { return r.Len() == 0 }

// ByPath returns the report for path.
func (r *Result) ByPath(path string) (FileReport, bool) {
	if r == nil {
		return FileReport{}, false
	}
	for _, f := range r.Files {
		if f.Path == path {
			return f, true
		}
	}
	return FileReport{}, false
}

// ErrNotDir is wrapped by RootError when the root is a regular file.
var ErrNotDir = errors.New("not a directory")

// RootError means the scan root is missing, unreadable or not a directory.
type RootError struct {
	Root string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("scan root %q: %v", e.Root, e.Err)
}

func (e *RootError) Unwrap() error { return e.Err }

// Status captures progress state of a pass or a file.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file, or for the whole pass when File is empty.
type Event struct {
	Level   levels.Level
	File    string
	Status  Status
	Records int
	Err     error
	Elapsed time.Duration
}

// Sink consumes progress events.
type Sink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

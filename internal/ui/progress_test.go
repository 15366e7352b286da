package ui

import (
	"errors"
	"strings"
	"testing"

	"logdoc/internal/levels"
	"logdoc/internal/scan"
)

func TestProgressModelTracksPasses(t *testing.T) {
	lvls := []levels.Level{levels.Debug, levels.Info}
	m := NewProgressModel("logdoc", lvls, 2, nil).(*progressModel)

	m.applyEvent(scan.Event{Level: levels.Debug, Status: scan.StatusWorking})
	m.applyEvent(scan.Event{Level: levels.Debug, File: "src/a.py", Status: scan.StatusDone, Records: 2})
	m.applyEvent(scan.Event{Level: levels.Debug, File: "src/b.py", Status: scan.StatusError, Err: errors.New("boom")})
	m.applyEvent(scan.Event{Level: levels.Debug, Status: scan.StatusDone, Records: 2})
	m.applyEvent(scan.Event{Level: levels.Info, File: "src/a.py", Status: scan.StatusWorking})

	if got := m.items[0]; got.status != scan.StatusDone || got.records != 2 {
		t.Fatalf("debug pass = %+v", got)
	}
	if got := m.items[1]; got.status != scan.StatusWorking || got.current != "src/a.py" {
		t.Fatalf("info pass = %+v", got)
	}
	if m.seen != 2 {
		t.Errorf("seen = %d, want 2", m.seen)
	}
	if p := m.percent(); p != 0.5 {
		t.Errorf("percent = %v, want 0.5", p)
	}

	view := m.View()
	for _, want := range []string{"DEBUG", "2 records", "INFO", "scanning", "src/a.py"} {
		if !strings.Contains(view, want) {
			t.Errorf("view misses %q:\n%s", want, view)
		}
	}
}

func TestProgressModelPassError(t *testing.T) {
	m := NewProgressModel("logdoc", []levels.Level{levels.Error}, 0, nil).(*progressModel)
	m.applyEvent(scan.Event{Level: levels.Error, Status: scan.StatusError, Err: errors.New("scan root missing")})

	if p := m.percent(); p != 1 {
		t.Errorf("percent = %v, want 1", p)
	}
	if !strings.Contains(m.View(), "scan root missing") {
		t.Errorf("error not rendered:\n%s", m.View())
	}
}

func TestProgressModelIgnoresUnknownLevel(t *testing.T) {
	m := NewProgressModel("logdoc", []levels.Level{levels.Info}, 1, nil).(*progressModel)
	if cmd := m.applyEvent(scan.Event{Level: levels.Critical, File: "x.py", Status: scan.StatusDone}); cmd != nil {
		t.Error("expected no command for a level that is not tracked")
	}
	if m.seen != 0 {
		t.Errorf("seen = %d, want 0", m.seen)
	}
}

func TestTruncateKeepsFileName(t *testing.T) {
	got := truncate("very/long/path/to/module.py", 12)
	if got != "...module.py" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short.py", 20); got != "short.py" {
		t.Errorf("truncate = %q", got)
	}
}

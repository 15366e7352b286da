package observ

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	cur := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t := cur
		cur = cur.Add(step)
		return t
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(2 * time.Millisecond)

	info := tm.Start("pass:INFO")
	info.Stop(12, "3 files")
	info.Stop(99, "ignored")
	render := tm.Start("render")
	render.Fail(errors.New("disk full"))
	tm.Start("write") // не закрыта

	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("expected 2 closed phases, got %d", len(rep.Phases))
	}
	if rep.Phases[0].DurationMS != 2 || rep.Phases[0].Items != 12 || rep.Phases[0].Note != "3 files" {
		t.Errorf("unexpected first phase %+v", rep.Phases[0])
	}
	if rep.Phases[1].Note != "failed: disk full" {
		t.Errorf("unexpected fail note %q", rep.Phases[1].Note)
	}
	if rep.TotalMS != 4 {
		t.Errorf("total = %v", rep.TotalMS)
	}

	sum := tm.Summary()
	for _, want := range []string{"pass:INFO", "3 files", "failed: disk full", "total"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary lacks %q:\n%s", want, sum)
		}
	}
	if strings.Contains(sum, "write") {
		t.Errorf("open phase in summary:\n%s", sum)
	}
}

func TestEmptyTimer(t *testing.T) {
	if rep := NewTimer().Report(); rep.TotalMS != 0 || rep.Phases != nil {
		t.Errorf("expected empty report, got %+v", rep)
	}
	var p *Phase
	p.Stop(1, "nil phase is a no-op")
}

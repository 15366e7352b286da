package trace

import (
	"strconv"
	"sync"
	"time"
)

// StartHeartbeat emits a beat event every interval until the returned stop
// function is called. A file span without an end after the last beats names
// the file the parser is stuck on.
func StartHeartbeat(t Tracer, interval time.Duration) (stop func()) {
	if t == nil || t.Level() == LevelOff || interval <= 0 {
		return func() {}
	}
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for n := 1; ; n++ {
			select {
			case now := <-ticker.C:
				t.Emit(Event{
					Time:  now,
					Kind:  KindBeat,
					Scope: ScopeRun,
					Name:  "heartbeat",
					Attrs: []Attr{{Key: "n", Value: strconv.Itoa(n)}},
				})
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}

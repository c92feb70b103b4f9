package monitor

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestTimer(t *testing.T) {
	timer := NewTimer()
	if timer.MinTime() != 0 || timer.AvgTime() != 0 {
		t.Error("empty timer should report zero")
	}

	for _, d := range []time.Duration{30 * time.Millisecond, 10 * time.Millisecond, 20 * time.Millisecond} {
		timer.Record(d)
	}

	if timer.Count() != 3 {
		t.Errorf("Count() = %d, want 3", timer.Count())
	}
	if timer.MinTime() != 10*time.Millisecond {
		t.Errorf("MinTime() = %v", timer.MinTime())
	}
	if timer.MaxTime() != 30*time.Millisecond {
		t.Errorf("MaxTime() = %v", timer.MaxTime())
	}
	if timer.AvgTime() != 20*time.Millisecond {
		t.Errorf("AvgTime() = %v", timer.AvgTime())
	}
	if timer.TotalTime() != 60*time.Millisecond {
		t.Errorf("TotalTime() = %v", timer.TotalTime())
	}
}

func TestCollectorRecordAndSnapshot(t *testing.T) {
	c := New()
	c.Record("GET /b", 5*time.Millisecond, false)
	c.Record("GET /a", 2*time.Millisecond, false)
	c.Record("GET /a", 4*time.Millisecond, true)

	snap := c.Snapshot()
	if len(snap.Operations) != 2 {
		t.Fatalf("got %d operations, want 2", len(snap.Operations))
	}

	a := snap.Operations[0]
	if a.Operation != "GET /a" {
		t.Errorf("operations not sorted: %v", snap.Operations)
	}
	if a.Count != 2 || a.ErrorCount != 1 || a.SuccessCount != 1 {
		t.Errorf("GET /a = %+v", a)
	}
	if a.AvgTime != (3 * time.Millisecond).Nanoseconds() {
		t.Errorf("AvgTime = %d", a.AvgTime)
	}
	if snap.Runtime.NumCPU == 0 || snap.Memory.Sys == 0 {
		t.Errorf("runtime metrics missing: %+v %+v", snap.Runtime, snap.Memory)
	}
}

func TestTrack(t *testing.T) {
	c := New()
	tick := time.Unix(0, 0)
	c.now = func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}

	boom := errors.New("boom")
	if err := c.Track("op", func() error { return boom }); !errors.Is(err, boom) {
		t.Errorf("Track() error = %v, want boom", err)
	}
	if err := c.Track("op", func() error { return nil }); err != nil {
		t.Errorf("Track() error = %v", err)
	}

	op := c.Snapshot().Operations[0]
	if op.Count != 2 || op.ErrorCount != 1 || op.MaxTime != time.Millisecond.Nanoseconds() {
		t.Errorf("op = %+v", op)
	}
}

func TestCollectorConcurrent(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Record("op", time.Microsecond, false)
		}()
	}
	wg.Wait()

	if got := c.Snapshot().Operations[0].Count; got != 50 {
		t.Errorf("Count = %d, want 50", got)
	}
}

package wisp

import (
	"testing"
	"time"
)

func TestTickStatsRecord(t *testing.T) {
	var s tickStats
	s.record(2*time.Millisecond, 10)
	s.record(5*time.Millisecond, 4)
	s.record(1*time.Millisecond, 7)

	if s.frames != 3 || s.total != 8*time.Millisecond {
		t.Errorf("frames=%d total=%v", s.frames, s.total)
	}
	if s.worst != 5*time.Millisecond || s.maxTasks != 10 || s.tasks != 7 {
		t.Errorf("worst=%v peak=%d tasks=%d", s.worst, s.maxTasks, s.tasks)
	}

	s.reset()
	if s.frames != 3 {
		t.Error("reset cleared the frame counter")
	}
	if s.total != 0 || s.worst != 0 || s.maxTasks != 0 {
		t.Errorf("window not cleared: %+v", s)
	}
}

func TestDebugStatsOffByDefault(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Start()
	step(e, debugStatsInterval*2)
	if e.stats.frames != 0 {
		t.Errorf("stats recorded without debug: %d frames", e.stats.frames)
	}
}

package wisp

import "time"

// debugStatsInterval is the number of frames between debug stat lines.
const debugStatsInterval = 60

// tickStats accumulates per-frame timing and task counts. Only populated
// when Config.Debug is set.
type tickStats struct {
	frames   int
	total    time.Duration
	worst    time.Duration
	maxTasks int
	tasks    int
}

func (s *tickStats) record(d time.Duration, tasks int) {
	s.frames++
	s.total += d
	if d > s.worst {
		s.worst = d
	}
	if tasks > s.maxTasks {
		s.maxTasks = tasks
	}
	s.tasks = tasks
}

func (s *tickStats) reset() {
	frames := s.frames
	*s = tickStats{frames: frames}
}

// debugLog reports the window of frames since the last report and resets
// the window counters.
func (e *Engine) debugLog() {
	s := &e.stats
	avg := s.total / debugStatsInterval
	e.logger.Debug("tick",
		"frames", s.frames,
		"avg", avg,
		"worst", s.worst,
		"tasks", s.tasks,
		"peak_tasks", s.maxTasks,
		"containers", e.registry.Len())
	s.reset()
}

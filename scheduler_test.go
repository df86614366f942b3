package wisp

import (
	"math/rand/v2"
	"testing"
)

func newTestScheduler() *Scheduler {
	return NewScheduler(rand.New(rand.NewPCG(1, 1)))
}

func linear(d float64) Timing {
	return Timing{Duration: d}
}

func TestSchedulerReachesExactEnd(t *testing.T) {
	s := newTestScheduler()
	state := Neutral
	sub := Subject{Target: UnitTarget(1, 0), State: &state}
	task := s.To(sub, Transform{X: 10, Opacity: 0}, PropsOf(PropX, PropOpacity), linear(1))

	s.Update(0.5)
	assertNear(t, "x mid", state.X, 5)
	assertNear(t, "opacity mid", state.Opacity, 0.5)

	s.Update(0.6)
	if state.X != 10 || state.Opacity != 0 {
		t.Errorf("end = %+v, want exact x=10 opacity=0", state)
	}
	if state.Scale != 1 {
		t.Errorf("untouched scale changed to %v", state.Scale)
	}
	if !task.Done() || s.Len() != 0 {
		t.Errorf("done=%v len=%d", task.Done(), s.Len())
	}
}

func TestSchedulerDelayHoldsStart(t *testing.T) {
	s := newTestScheduler()
	state := Neutral
	sub := Subject{Target: UnitTarget(1, 0), State: &state}
	tm := linear(1)
	tm.Delay = 0.5
	task := s.To(sub, Transform{X: 10}, PropsOf(PropX), tm)
	if task.StartTime != 0.5 {
		t.Errorf("StartTime = %v", task.StartTime)
	}

	s.Update(0.25)
	if state.X != 0 {
		t.Errorf("x moved during delay: %v", state.X)
	}
	s.Update(0.5)
	assertNear(t, "x after delay", state.X, 2.5)
}

func TestSchedulerNeutralIsStable(t *testing.T) {
	s := newTestScheduler()
	state := Neutral
	sub := Subject{Target: UnitTarget(1, 0), State: &state}
	tm := linear(0.5)
	tm.Ease = MustEase(DefaultExitEase)
	s.To(sub, Neutral, PropsAll, tm)
	for i := 0; i < 40; i++ {
		s.Update(1.0 / 60)
		if state != Neutral {
			t.Fatalf("frame %d: %+v drifted from neutral", i, state)
		}
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after completion", s.Len())
	}
}

func TestSchedulerPartialOverwrite(t *testing.T) {
	s := newTestScheduler()
	state := Neutral
	sub := Subject{Target: UnitTarget(1, 0), State: &state}
	a := s.To(sub, Transform{X: 100, Y: 100}, PropsPosition, linear(1))
	s.Update(0.5)
	assertNear(t, "x before overwrite", state.X, 50)

	b := s.To(sub, Transform{}, PropsOf(PropX), linear(1))
	if a.Cancelled() {
		t.Fatal("task with remaining y was cancelled")
	}
	if a.Props != PropsOf(PropY) {
		t.Errorf("a.Props = %b, want y only", a.Props)
	}
	if b.Start.X != state.X {
		t.Errorf("new task starts at %v, live value %v", b.Start.X, state.X)
	}
	if got := len(s.Tasks(sub.Target)); got != 2 {
		t.Errorf("tasks on target = %d, want 2", got)
	}

	s.Update(0.5)
	assertNear(t, "x after overwrite", state.X, 25)
	if state.Y != 100 || !a.Done() {
		t.Errorf("y = %v done=%v, want 100 and done", state.Y, a.Done())
	}
	s.Update(0.5)
	if state.X != 0 || state.Y != 100 {
		t.Errorf("final = %+v", state)
	}
}

func TestSchedulerFullOverwriteCancels(t *testing.T) {
	s := newTestScheduler()
	state := Neutral
	sub := Subject{Target: UnitTarget(1, 0), State: &state}
	a := s.To(sub, Transform{X: 100}, PropsOf(PropX), linear(1))
	s.To(sub, Transform{X: -100}, PropsOf(PropX), linear(1))
	if !a.Cancelled() {
		t.Error("superseded task not cancelled")
	}
	if got := len(s.Tasks(sub.Target)); got != 1 {
		t.Errorf("tasks on target = %d, want 1", got)
	}
	s.Update(1)
	if state.X != -100 {
		t.Errorf("x = %v, want -100", state.X)
	}
}

func TestSchedulerSet(t *testing.T) {
	s := newTestScheduler()
	state := Neutral
	sub := Subject{Target: UnitTarget(1, 0), State: &state}
	task := s.To(sub, Transform{X: 100, Opacity: 0}, PropsOf(PropX, PropOpacity), linear(1))
	s.Set(sub, Transform{X: 7, Opacity: 2}, PropsOf(PropX, PropOpacity))
	if state.X != 7 || state.Opacity != 1 {
		t.Errorf("state = %+v, want x=7 opacity clamped to 1", state)
	}
	if !task.Cancelled() || s.Len() != 0 {
		t.Error("Set did not cancel the in-flight task")
	}
}

func TestSchedulerAnimateStagger(t *testing.T) {
	s := newTestScheduler()
	states := make([]Transform, 3)
	subjects := make([]Subject, 3)
	for i := range states {
		states[i] = Neutral
		subjects[i] = Subject{Target: UnitTarget(1, i), State: &states[i]}
	}
	tm := linear(1)
	tm.Stagger = 0.2
	tasks := s.Animate(subjects, func(i int, _ Transform) Transform {
		return Transform{X: float64(i+1) * 10}
	}, PropsOf(PropX), tm)

	for i, want := range []float64{0, 0.1, 0.2} {
		assertNear(t, "start time", tasks[i].StartTime, want)
		if tasks[i].End.X != float64(i+1)*10 {
			t.Errorf("task %d end x = %v", i, tasks[i].End.X)
		}
	}
	s.Update(2)
	for i := range states {
		if states[i].X != float64(i+1)*10 {
			t.Errorf("unit %d x = %v", i, states[i].X)
		}
	}
	if s.Animate(nil, nil, PropsAll, tm) != nil {
		t.Error("empty batch should schedule nothing")
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := newTestScheduler()
	var a, b, l Transform
	s.To(Subject{Target: UnitTarget(1, 0), State: &a}, Transform{X: 1}, PropsOf(PropX), linear(1))
	s.To(Subject{Target: UnitTarget(2, 0), State: &b}, Transform{X: 1}, PropsOf(PropX), linear(1))
	s.To(Subject{Target: LayerTarget(1), State: &l}, Transform{X: 1}, PropsOf(PropX), linear(1))

	s.CancelContainer(1)
	if s.Len() != 2 {
		t.Errorf("Len after CancelContainer = %d, want 2", s.Len())
	}
	s.Cancel(LayerTarget(1))
	if s.Len() != 1 {
		t.Errorf("Len after Cancel = %d, want 1", s.Len())
	}
	s.CancelAll()
	if s.Len() != 0 {
		t.Errorf("Len after CancelAll = %d", s.Len())
	}
	s.Update(1)
	if a.X != 0 || b.X != 0 || l.X != 0 {
		t.Error("cancelled tasks still wrote values")
	}
	assertNear(t, "clock", s.Now(), 1)
}

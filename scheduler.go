package wisp

import (
	"math/rand/v2"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TargetKind distinguishes what an AnimationTask writes to.
type TargetKind uint8

const (
	TargetUnit  TargetKind = iota // a CharacterUnit inside a container
	TargetLayer                   // a named Layer
)

// Target identifies the owner of a Transform. Tasks on equal targets obey
// the overwrite rule.
type Target struct {
	Kind  TargetKind
	ID    uint32
	Index int
}

// UnitTarget addresses unit index of container id.
func UnitTarget(id ContainerID, index int) Target {
	return Target{Kind: TargetUnit, ID: uint32(id), Index: index}
}

// LayerTarget addresses a layer.
func LayerTarget(id LayerID) Target {
	return Target{Kind: TargetLayer, ID: uint32(id)}
}

// Subject pairs a target with the Transform it owns.
type Subject struct {
	Target Target
	State  *Transform
}

// Timing controls a batch of tasks. Durations and delays are in seconds.
type Timing struct {
	Duration float64
	Delay    float64
	// Stagger is the total spread of start offsets across a batch.
	Stagger float64
	Order   StaggerOrder
	// Ease defaults to linear when nil.
	Ease ease.TweenFunc
	// PropDurations overrides Duration for individual properties when
	// positive.
	PropDurations [numProps]float64
}

func (tm *Timing) durationOf(p Prop) float64 {
	if d := tm.PropDurations[p]; d > 0 {
		return d
	}
	return tm.Duration
}

// Generator produces the end transform for the i-th subject of a batch
// given its live value.
type Generator func(i int, from Transform) Transform

// AnimationTask is one in-flight animation bound to a single target. It
// drives one gween tween per animated property and writes the target's
// Transform on every tick.
type AnimationTask struct {
	Target Target
	Start  Transform
	End    Transform
	// Props is the set of properties this task still owns. Overwrites by
	// newer tasks remove bits from it.
	Props Props
	// StartTime is the scheduler clock, in seconds, at which interpolation
	// begins (scheduling time plus delay).
	StartTime float64
	Delay     float32
	Duration  float32
	Ease      ease.TweenFunc

	tweens    [numProps]*gween.Tween
	state     *Transform
	elapsed   float32
	cancelled bool
	done      bool
}

// Cancelled reports whether the task was superseded before completing.
func (t *AnimationTask) Cancelled() bool { return t.cancelled }

// Done reports whether the task ran to completion.
func (t *AnimationTask) Done() bool { return t.done }

// step advances the task by dt and writes the interpolated values. It
// returns true when every owned property has reached its end value, which
// is then written exactly.
func (t *AnimationTask) step(dt float32) bool {
	t.elapsed += dt
	local := t.elapsed - t.Delay
	if local < 0 {
		return false
	}
	finished := true
	for p := Prop(0); p < numProps; p++ {
		tw := t.tweens[p]
		if tw == nil || !t.Props.Has(p) {
			continue
		}
		v, done := tw.Set(local)
		if done {
			t.state.Set(p, t.End.Get(p))
			continue
		}
		t.state.Set(p, sanitize(p, float64(v)))
		finished = false
	}
	return finished
}

// Scheduler owns every in-flight AnimationTask and advances them from a
// single per-frame tick. It is not safe for concurrent use; all calls
// happen on the thread that also delivers input events.
type Scheduler struct {
	tasks    []*AnimationTask
	byTarget map[Target][]*AnimationTask
	rng      *rand.Rand
	now      float64
}

// NewScheduler creates a scheduler drawing random stagger order from rng.
func NewScheduler(rng *rand.Rand) *Scheduler {
	return &Scheduler{
		byTarget: make(map[Target][]*AnimationTask),
		rng:      rng,
	}
}

// Now returns the scheduler clock in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// Animate schedules one task per subject, taking each end value from gen
// and each start offset from the timing's stagger policy. Any in-flight
// task on the same target loses the overlapping properties immediately;
// the new task starts from the live value.
func (s *Scheduler) Animate(subjects []Subject, gen Generator, props Props, timing Timing) []*AnimationTask {
	if len(subjects) == 0 || props == 0 {
		return nil
	}
	offsets := StaggerOffsets(len(subjects), timing.Stagger, timing.Order, s.rng)
	out := make([]*AnimationTask, len(subjects))
	for i, sub := range subjects {
		end := gen(i, *sub.State)
		out[i] = s.start(sub, end, props, &timing, timing.Delay+offsets[i])
	}
	return out
}

// To schedules a single task moving subject toward end.
func (s *Scheduler) To(sub Subject, end Transform, props Props, timing Timing) *AnimationTask {
	if props == 0 {
		return nil
	}
	return s.start(sub, end, props, &timing, timing.Delay)
}

// Set cancels in-flight work on props and writes end immediately.
func (s *Scheduler) Set(sub Subject, end Transform, props Props) {
	s.overwrite(sub.Target, props)
	for p := Prop(0); p < numProps; p++ {
		if props.Has(p) {
			sub.State.Set(p, sanitize(p, end.Get(p)))
		}
	}
}

func (s *Scheduler) start(sub Subject, end Transform, props Props, timing *Timing, delay float64) *AnimationTask {
	s.overwrite(sub.Target, props)

	fn := timing.Ease
	if fn == nil {
		fn = ease.Linear
	}
	t := &AnimationTask{
		Target:    sub.Target,
		Start:     *sub.State,
		Props:     props,
		StartTime: s.now + delay,
		Delay:     float32(delay),
		Duration:  float32(timing.Duration),
		Ease:      fn,
		state:     sub.State,
	}
	t.End = t.Start
	for p := Prop(0); p < numProps; p++ {
		if !props.Has(p) {
			continue
		}
		to := sanitize(p, end.Get(p))
		t.End.Set(p, to)
		t.tweens[p] = gween.New(float32(t.Start.Get(p)), float32(to), float32(timing.durationOf(p)), fn)
	}

	s.tasks = append(s.tasks, t)
	s.byTarget[t.Target] = append(s.byTarget[t.Target], t)
	return t
}

// overwrite strips props from every in-flight task on target. Tasks left
// with no properties are cancelled and unlinked at once.
func (s *Scheduler) overwrite(target Target, props Props) {
	list, ok := s.byTarget[target]
	if !ok {
		return
	}
	kept := list[:0]
	for _, old := range list {
		old.Props &^= props
		if old.Props == 0 {
			old.cancelled = true
			continue
		}
		kept = append(kept, old)
	}
	for i := len(kept); i < len(list); i++ {
		list[i] = nil
	}
	if len(kept) == 0 {
		delete(s.byTarget, target)
		return
	}
	s.byTarget[target] = kept
}

func (s *Scheduler) unlink(t *AnimationTask) {
	list := s.byTarget[t.Target]
	for i, other := range list {
		if other == t {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			list = list[:len(list)-1]
			break
		}
	}
	if len(list) == 0 {
		delete(s.byTarget, t.Target)
		return
	}
	s.byTarget[t.Target] = list
}

// Update advances every live task by dt seconds. Completed tasks write
// their exact end values and are removed.
func (s *Scheduler) Update(dt float32) {
	s.now += float64(dt)
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if t.cancelled {
			continue
		}
		if t.step(dt) {
			t.done = true
			s.unlink(t)
			continue
		}
		live = append(live, t)
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}

// Tasks returns the live tasks targeting target. The returned slice MUST
// NOT be mutated.
func (s *Scheduler) Tasks(target Target) []*AnimationTask {
	return s.byTarget[target]
}

// Len returns the number of live tasks.
func (s *Scheduler) Len() int {
	n := 0
	for _, list := range s.byTarget {
		n += len(list)
	}
	return n
}

// Cancel removes every in-flight task on target. Already-applied values
// stay where they are.
func (s *Scheduler) Cancel(target Target) {
	s.overwrite(target, PropsAll)
}

// CancelContainer removes every task targeting units of container id.
func (s *Scheduler) CancelContainer(id ContainerID) {
	for target := range s.byTarget {
		if target.Kind == TargetUnit && target.ID == uint32(id) {
			s.overwrite(target, PropsAll)
		}
	}
}

// CancelAll removes every in-flight task.
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.cancelled = true
	}
	clear(s.byTarget)
}

package wisp

import "github.com/tanema/gween/ease"

// EntranceStep animates one layer as part of the page entrance. When From
// is set the layer jumps to it on start and animates back to To.
type EntranceStep struct {
	Layer    *Layer
	From     *Transform
	To       Transform
	Props    Props
	Duration float64
	Delay    float64
	Ease     ease.TweenFunc
}

// Cue is a timed presentation change: at At seconds after start the class
// is added to the layer and a NoticeCue is emitted.
type Cue struct {
	At    float64
	Name  string
	Layer *Layer
	Class string
}

// Entrance is the staged page-load sequence.
type Entrance struct {
	Steps []EntranceStep
	Cues  []Cue

	elapsed float64
	fired   []bool
	started bool
}

// DefaultEntrance returns the page-load sequence: the navbar drops in after
// the title's projector cue, then the subtitle fades up. Nil layers are
// skipped.
func DefaultEntrance(navbar, title, subtitle *Layer) *Entrance {
	e := &Entrance{}
	if navbar != nil {
		e.Steps = append(e.Steps, EntranceStep{
			Layer:    navbar,
			From:     &Transform{Y: -10, Opacity: 0},
			To:       Neutral,
			Props:    PropsOf(PropY, PropOpacity),
			Duration: 2,
			Delay:    1.5,
			Ease:     MustEase("power1.out"),
		})
	}
	if title != nil {
		e.Cues = append(e.Cues, Cue{At: 0.5, Name: "projector-active", Layer: title, Class: "projector-active"})
	}
	if subtitle != nil {
		e.Steps = append(e.Steps, EntranceStep{
			Layer:    subtitle,
			From:     &Transform{Opacity: 0},
			To:       Neutral,
			Props:    PropsOf(PropOpacity),
			Duration: 2,
			Delay:    2.5,
			Ease:     MustEase("power2.out"),
		})
	}
	return e
}

// Elapsed returns seconds since the entrance started.
func (e *Entrance) Elapsed() float64 {
	return e.elapsed
}

func (e *Entrance) start(sched *Scheduler) {
	e.started = true
	e.elapsed = 0
	e.fired = make([]bool, len(e.Cues))
	for _, st := range e.Steps {
		if st.Layer == nil {
			continue
		}
		sub := st.Layer.Subject()
		if st.From != nil {
			sched.Set(sub, *st.From, st.Props)
		}
		sched.To(sub, st.To, st.Props, Timing{Duration: st.Duration, Delay: st.Delay, Ease: st.Ease})
	}
}

// update fires every cue whose time has come.
func (e *Entrance) update(dt float64, emit func(Cue)) {
	if !e.started {
		return
	}
	e.elapsed += dt
	for i, c := range e.Cues {
		if e.fired[i] || e.elapsed < c.At {
			continue
		}
		e.fired[i] = true
		if c.Layer != nil && c.Class != "" {
			c.Layer.AddClass(c.Class)
		}
		emit(c)
	}
}

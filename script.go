package wisp

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a replay script.
type scriptStep struct {
	Action    string  `json:"action"`
	Label     string  `json:"label,omitempty"`
	Container string  `json:"container,omitempty"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	ToX       float64 `json:"toX,omitempty"`
	ToY       float64 `json:"toY,omitempty"`
	ScrollY   float64 `json:"scrollY,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	Frames    int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure of a replay script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// Runner replays a scripted input sequence across frames. Steps:
//
//	move      pointer to (x, y)
//	click     primary button at (x, y)
//	sweep     pointer from (x, y) to (toX, toY) over frames
//	enter     pointer-enter on container
//	leave     pointer-leave on container
//	scroll    page to scrollY
//	resize    viewport to width x height
//	wait      frames
//	snapshot  call OnSnapshot with label
type Runner struct {
	// OnSnapshot is called for every snapshot step.
	OnSnapshot func(label string)

	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

var scriptActions = map[string]bool{
	"move": true, "click": true, "sweep": true, "enter": true, "leave": true,
	"scroll": true, "resize": true, "wait": true, "snapshot": true,
}

// LoadScript parses a JSON replay script.
func LoadScript(data []byte) (*Runner, error) {
	var s script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		if (st.Action == "enter" || st.Action == "leave") && st.Container == "" {
			return nil, fmt.Errorf("parse script: step %d: %s needs a container", i, st.Action)
		}
	}
	return &Runner{steps: s.Steps}, nil
}

// Done reports whether every step has run and all injected events have
// been delivered.
func (r *Runner) Done() bool {
	return r.done
}

// Step advances the runner by one frame. Call it before Engine.Update.
func (r *Runner) Step(e *Engine) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if e.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "move":
		e.Inject(PointerMove(st.X, st.Y))
	case "click":
		e.Inject(Click(st.X, st.Y))
	case "sweep":
		e.InjectSweep(st.X, st.Y, st.ToX, st.ToY, st.Frames)
	case "enter", "leave":
		c := e.Registry().Lookup(st.Container)
		if c == nil {
			e.Logger().Warn("script: unknown container", "container", st.Container)
			break
		}
		if st.Action == "enter" {
			e.Inject(PointerEnter(c.ID))
		} else {
			e.Inject(PointerLeave(c.ID))
		}
	case "scroll":
		e.Inject(Scroll(st.ScrollY))
	case "resize":
		e.Inject(Resize(st.Width, st.Height))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "snapshot":
		if r.OnSnapshot != nil {
			r.OnSnapshot(st.Label)
		}
	}
}

// Play runs r against e with a fixed frame time until the script is done
// or maxFrames have elapsed. It returns the number of frames run.
func Play(e *Engine, r *Runner, dt float32, maxFrames int) int {
	n := 0
	for !r.Done() && n < maxFrames {
		r.Step(e)
		e.Update(dt)
		n++
	}
	return n
}

package wisp

import (
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"
)

// Anchor pairs a point on the trigger element with a point on the viewport,
// both as fractions of their heights. "top 70%" is satisfied when the
// element's top edge reaches 70% of the way down the viewport.
type Anchor struct {
	Element  float64
	Viewport float64
}

// ParseAnchor parses "<element> <viewport>" where each side is top, center,
// bottom or a percentage.
func ParseAnchor(s string) (Anchor, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Anchor{}, &ConfigError{Field: "anchor", Reason: "want two positions in " + quote(s)}
	}
	el, err := parseEdge(fields[0])
	if err != nil {
		return Anchor{}, err
	}
	vp, err := parseEdge(fields[1])
	if err != nil {
		return Anchor{}, err
	}
	return Anchor{Element: el, Viewport: vp}, nil
}

// MustAnchor is ParseAnchor for literals.
func MustAnchor(s string) Anchor {
	a, err := ParseAnchor(s)
	if err != nil {
		panic(err)
	}
	return a
}

func parseEdge(s string) (float64, error) {
	switch s {
	case "top":
		return 0, nil
	case "center":
		return 0.5, nil
	case "bottom":
		return 1, nil
	}
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err == nil {
			return v / 100, nil
		}
	}
	return 0, &ConfigError{Field: "anchor", Reason: "bad position " + quote(s)}
}

// scrollFor returns the scroll offset at which the anchor is satisfied.
func (a Anchor) scrollFor(trigger Rect, viewportH float64) float64 {
	return trigger.Y + a.Element*trigger.Height - a.Viewport*viewportH
}

// ScrollCoupling binds a layer's transform to the scroll progress through a
// trigger element. Progress is recomputed from the scroll offset alone on
// every scroll or resize; the coupling holds no accumulated state.
type ScrollCoupling struct {
	Name    string
	Trigger Rect
	Start   Anchor
	End     Anchor
	Layer   *Layer
	// From and To are the layer values at progress 0 and 1.
	From  Transform
	To    Transform
	Props Props
	// Ease shapes progress; nil is linear.
	Ease ease.TweenFunc
	// Scrub, when positive, is the catch-up time in seconds: the layer
	// chases the derived value through an overwriting task instead of
	// jumping to it.
	Scrub float64
	// Invert runs the coupling backward, so progress 1 is reached at Start.
	Invert bool
}

// Progress returns the clamped progress in [0, 1] for a scroll offset.
func (sc *ScrollCoupling) Progress(scrollY, viewportH float64) float64 {
	start := sc.Start.scrollFor(sc.Trigger, viewportH)
	end := sc.End.scrollFor(sc.Trigger, viewportH)
	var p float64
	switch {
	case end <= start:
		if scrollY >= start {
			p = 1
		}
	default:
		p = clamp((scrollY-start)/(end-start), 0, 1)
	}
	if sc.Invert {
		p = 1 - p
	}
	return p
}

// Value returns the layer transform for a progress value.
func (sc *ScrollCoupling) Value(p float64) Transform {
	if sc.Ease != nil {
		p = float64(sc.Ease(float32(p), 0, 1, 1))
	}
	return sc.From.Lerp(sc.To, p)
}

// scrubEase is the catch-up curve for scrubbed couplings.
var scrubEase = ease.OutQuart

func (sc *ScrollCoupling) apply(sched *Scheduler, vp *Viewport) {
	if sc.Layer == nil {
		return
	}
	v := sc.Value(sc.Progress(vp.ScrollY, vp.Height))
	if sc.Scrub > 0 {
		sched.To(sc.Layer.Subject(), v, sc.Props, Timing{Duration: sc.Scrub, Ease: scrubEase})
		return
	}
	sched.Set(sc.Layer.Subject(), v, sc.Props)
}

// ScrollReveal is a one-shot entrance played the first time its start
// anchor is crossed. Its layers are held at From until then and animate to
// Neutral with a sequential stagger.
type ScrollReveal struct {
	Name     string
	Trigger  Rect
	Start    Anchor
	Layers   []*Layer
	From     Transform
	Props    Props
	Duration float64
	Stagger  float64
	Ease     ease.TweenFunc

	fired bool
}

// Fired reports whether the reveal has played.
func (r *ScrollReveal) Fired() bool {
	return r.fired
}

func (r *ScrollReveal) subjects() []Subject {
	subjects := make([]Subject, 0, len(r.Layers))
	for _, l := range r.Layers {
		if l != nil {
			subjects = append(subjects, l.Subject())
		}
	}
	return subjects
}

func (r *ScrollReveal) prime(sched *Scheduler) {
	for _, sub := range r.subjects() {
		sched.Set(sub, r.From, r.Props)
	}
}

// check plays the reveal if the viewport has crossed its start anchor.
func (r *ScrollReveal) check(sched *Scheduler, vp *Viewport) bool {
	if r.fired || vp.ScrollY < r.Start.scrollFor(r.Trigger, vp.Height) {
		return false
	}
	r.fired = true
	sched.Animate(r.subjects(), func(int, Transform) Transform {
		return Neutral
	}, r.Props, Timing{Duration: r.Duration, Stagger: r.Stagger, Ease: r.Ease})
	return true
}

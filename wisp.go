package wisp

import (
	"math"
	"math/rand/v2"
)

// Vec2 is a 2D vector used for pointer positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left of the page, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Range is a closed [Min, Max] interval used for randomization bounds.
type Range struct {
	Min, Max float64
}

// Random returns a uniformly distributed value in [Min, Max] drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies inside the range, inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Shift returns the range offset by d.
func (r Range) Shift(d float64) Range {
	return Range{r.Min + d, r.Max + d}
}

// Fixed returns a degenerate range that always samples v.
func Fixed(v float64) Range {
	return Range{v, v}
}

// Transform is the live visual state of a unit or layer. Offsets are in
// pixels, Rotation in degrees, Opacity in [0, 1] and Blur is a radius in
// pixels. Rendering sinks read it; only the Scheduler writes it.
type Transform struct {
	X, Y     float64
	Rotation float64
	Scale    float64
	Opacity  float64
	Blur     float64
}

// Neutral is the idle transform every return-to-idle animation targets.
var Neutral = Transform{Scale: 1, Opacity: 1}

// Prop identifies one animatable Transform property.
type Prop uint8

const (
	PropX Prop = iota
	PropY
	PropRotation
	PropScale
	PropOpacity
	PropBlur

	numProps
)

var propNames = [numProps]string{"x", "y", "rotation", "scale", "opacity", "blur"}

func (p Prop) String() string {
	if p < numProps {
		return propNames[p]
	}
	return "unknown"
}

// Props is a bitmask of animated properties.
type Props uint8

const (
	PropsPosition = Props(1<<PropX | 1<<PropY)
	PropsAll      = Props(1<<numProps - 1)
)

// PropsOf builds a mask from individual properties.
func PropsOf(props ...Prop) Props {
	var m Props
	for _, p := range props {
		m |= 1 << p
	}
	return m
}

// Has reports whether p is in the mask.
func (m Props) Has(p Prop) bool {
	return m&(1<<p) != 0
}

// Get returns the value of property p.
func (t *Transform) Get(p Prop) float64 {
	switch p {
	case PropX:
		return t.X
	case PropY:
		return t.Y
	case PropRotation:
		return t.Rotation
	case PropScale:
		return t.Scale
	case PropOpacity:
		return t.Opacity
	case PropBlur:
		return t.Blur
	}
	return 0
}

// Set assigns property p.
func (t *Transform) Set(p Prop, v float64) {
	switch p {
	case PropX:
		t.X = v
	case PropY:
		t.Y = v
	case PropRotation:
		t.Rotation = v
	case PropScale:
		t.Scale = v
	case PropOpacity:
		t.Opacity = v
	case PropBlur:
		t.Blur = v
	}
}

// Lerp interpolates every property between t and to by f.
func (t Transform) Lerp(to Transform, f float64) Transform {
	return Transform{
		X:        lerp(t.X, to.X, f),
		Y:        lerp(t.Y, to.Y, f),
		Rotation: lerp(t.Rotation, to.Rotation, f),
		Scale:    lerp(t.Scale, to.Scale, f),
		Opacity:  lerp(t.Opacity, to.Opacity, f),
		Blur:     lerp(t.Blur, to.Blur, f),
	}
}

// IsNeutral reports whether t equals Neutral.
func (t Transform) IsNeutral() bool {
	return t == Neutral
}

// sanitize writes a paintable value for property p: NaN and Inf fall back to
// the neutral value, opacity is clamped to [0, 1] and blur to >= 0. Overshoot
// easings rely on this for the properties that have hard limits.
func sanitize(p Prop, v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Neutral.Get(p)
	}
	switch p {
	case PropOpacity:
		return clamp(v, 0, 1)
	case PropBlur:
		return math.Max(v, 0)
	case PropScale:
		return math.Max(v, 0)
	}
	return v
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// StaggerOrder selects how per-unit start offsets are assigned.
type StaggerOrder uint8

const (
	StaggerSequential StaggerOrder = iota // offsets follow unit index
	StaggerRandom                         // offsets are shuffled across units
)

func (o StaggerOrder) String() string {
	switch o {
	case StaggerSequential:
		return "sequential"
	case StaggerRandom:
		return "random"
	}
	return "unknown"
}

// ParseStaggerOrder maps a configuration value to a StaggerOrder.
func ParseStaggerOrder(s string) (StaggerOrder, error) {
	switch s {
	case "", "sequential":
		return StaggerSequential, nil
	case "random":
		return StaggerRandom, nil
	}
	return 0, &ConfigError{Field: "stagger_order", Reason: "unknown order " + quote(s)}
}

// State is the trigger state of a text container.
type State uint8

const (
	StateIdle State = iota
	StateActive
)

func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "idle"
}

package wisp

import (
	"math/rand/v2"

	"github.com/tanema/gween/ease"
)

// Built-in profile names.
const (
	ProfileJitter = "jitter"
	ProfileSmoke  = "smoke"
)

// Profile is a named bundle of randomization bounds and timing used when a
// container is activated. Each property is sampled independently; there is
// no correlation between units.
type Profile struct {
	Name string

	DriftX   Range // horizontal offset, px
	DriftY   Range // vertical offset before VerticalBias, px
	Rotation Range // degrees
	Scale    Range
	Opacity  Range
	Blur     Range // px

	// VerticalBias is added to every sampled DriftY value. Negative values
	// push units upward.
	VerticalBias float64

	Stagger       float64 // total stagger amount, seconds
	Order         StaggerOrder
	EnterEase     string
	ExitEase      string
	EnterDuration float64 // seconds
	ExitDuration  float64 // seconds

	enterFn ease.TweenFunc
	exitFn  ease.TweenFunc
}

// JitterProfile is the symmetric small-jitter profile used for generic
// word/line scatter.
func JitterProfile() Profile {
	return Profile{
		Name:          ProfileJitter,
		DriftX:        Range{-15, 15},
		DriftY:        Range{-15, 15},
		Rotation:      Range{-20, 20},
		Scale:         Fixed(1),
		Opacity:       Fixed(1),
		Blur:          Fixed(0),
		Stagger:       0.1,
		Order:         StaggerSequential,
		EnterEase:     DefaultEnterEase,
		ExitEase:      DefaultExitEase,
		EnterDuration: 0.6,
		ExitDuration:  0.6,
	}
}

// SmokeProfile is the directional "rising" profile used for the headline:
// units drift upward, expand, fade out and blur.
func SmokeProfile() Profile {
	return Profile{
		Name:          ProfileSmoke,
		DriftX:        Range{-30, 30},
		DriftY:        Range{-100, 0},
		VerticalBias:  -100,
		Rotation:      Range{-22.5, 22.5},
		Scale:         Range{1, 1.5},
		Opacity:       Fixed(0),
		Blur:          Fixed(10),
		Stagger:       0.3,
		Order:         StaggerRandom,
		EnterEase:     DefaultEnterEase,
		ExitEase:      DefaultExitEase,
		EnterDuration: 1.5,
		ExitDuration:  0.8,
	}
}

// Generate samples a target transform for the unit at index. The index is
// accepted so callers can key generation per unit, but sampling is
// deliberately uncorrelated across units.
func Generate(p *Profile, index int, rng *rand.Rand) Transform {
	_ = index
	return Transform{
		X:        p.DriftX.Random(rng),
		Y:        p.DriftY.Random(rng) + p.VerticalBias,
		Rotation: p.Rotation.Random(rng),
		Scale:    p.Scale.Random(rng),
		Opacity:  p.Opacity.Random(rng),
		Blur:     p.Blur.Random(rng),
	}
}

// VerticalRange returns the effective bounds of generated Y values.
func (p *Profile) VerticalRange() Range {
	return p.DriftY.Shift(p.VerticalBias)
}

// Validate checks every bound and timing value and resolves the easing ids.
func (p *Profile) Validate() error {
	ranges := []struct {
		field string
		r     Range
	}{
		{"drift_range", p.DriftX},
		{"vertical_range", p.DriftY},
		{"rotation_range", p.Rotation},
		{"scale_range", p.Scale},
		{"opacity_range", p.Opacity},
		{"blur_range", p.Blur},
	}
	for _, r := range ranges {
		if r.r.Min > r.r.Max {
			return &ConfigError{Profile: p.Name, Field: r.field, Reason: "min greater than max"}
		}
	}
	if p.Opacity.Min < 0 || p.Opacity.Max > 1 {
		return &ConfigError{Profile: p.Name, Field: "opacity_range", Reason: "outside [0, 1]"}
	}
	if p.Blur.Min < 0 {
		return &ConfigError{Profile: p.Name, Field: "blur_range", Reason: "negative blur"}
	}
	if p.Stagger < 0 {
		return &ConfigError{Profile: p.Name, Field: "stagger_amount", Reason: "negative"}
	}
	if p.EnterDuration < 0 || p.ExitDuration < 0 {
		return &ConfigError{Profile: p.Name, Field: "duration", Reason: "negative"}
	}
	if p.Order > StaggerRandom {
		return &ConfigError{Profile: p.Name, Field: "stagger_order", Reason: "unknown order"}
	}

	var err error
	if p.enterFn, err = ParseEase(p.EnterEase); err != nil {
		return withProfile(err, p.Name)
	}
	if p.exitFn, err = ParseEase(p.ExitEase); err != nil {
		return withProfile(err, p.Name)
	}
	return nil
}

func withProfile(err error, name string) error {
	if ce, ok := err.(*ConfigError); ok {
		ce.Profile = name
	}
	return err
}

// EnterTiming returns the timing used when the profile is activated.
func (p *Profile) EnterTiming() Timing {
	if p.enterFn == nil {
		p.enterFn = MustEase(p.EnterEase)
	}
	return Timing{Duration: p.EnterDuration, Stagger: p.Stagger, Order: p.Order, Ease: p.enterFn}
}

// ExitTiming returns the timing used when returning to idle.
func (p *Profile) ExitTiming() Timing {
	if p.exitFn == nil {
		p.exitFn = MustEase(p.ExitEase)
	}
	return Timing{Duration: p.ExitDuration, Stagger: p.Stagger, Order: p.Order, Ease: p.exitFn}
}

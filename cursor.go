package wisp

import "github.com/tanema/gween/ease"

// Cursor layer names.
const (
	LayerCursor         = "cursor"
	LayerCursorFollower = "cursor-follower"
	LayerHeroTitle      = "hero-title"
	LayerHeroBackground = "hero-background"
)

// CursorConfig tunes the pointer-coupled layers. Durations are in seconds.
type CursorConfig struct {
	DotDuration      float64 `toml:"dot_duration" yaml:"dot_duration"`
	FollowerDuration float64 `toml:"follower_duration" yaml:"follower_duration"`
	FollowEase       string  `toml:"follow_ease" yaml:"follow_ease"`

	ParallaxDuration float64 `toml:"parallax_duration" yaml:"parallax_duration"`
	ParallaxEase     string  `toml:"parallax_ease" yaml:"parallax_ease"`
	// ParallaxDivisor scales the offset: o = (center - p) * 2 / divisor.
	ParallaxDivisor  float64 `toml:"parallax_divisor" yaml:"parallax_divisor"`
	ForegroundFactor float64 `toml:"foreground_factor" yaml:"foreground_factor"`
	BackgroundFactor float64 `toml:"background_factor" yaml:"background_factor"`

	HoverScale    float64 `toml:"hover_scale" yaml:"hover_scale"`
	HoverDuration float64 `toml:"hover_duration" yaml:"hover_duration"`
}

// DefaultCursorConfig returns the page's cursor tuning: a snappy dot, a
// lagging follower, and opposite-signed parallax with the background moving
// twice as far as the title.
func DefaultCursorConfig() CursorConfig {
	return CursorConfig{
		DotDuration:      0.1,
		FollowerDuration: 0.3,
		FollowEase:       "power1.out",
		ParallaxDuration: 1,
		ParallaxEase:     "power2.out",
		ParallaxDivisor:  100,
		ForegroundFactor: 1,
		BackgroundFactor: -2,
		HoverScale:       0.5,
		HoverDuration:    0.5,
	}
}

func (c *CursorConfig) validate() error {
	for _, d := range []struct {
		field string
		v     float64
	}{
		{"cursor.dot_duration", c.DotDuration},
		{"cursor.follower_duration", c.FollowerDuration},
		{"cursor.parallax_duration", c.ParallaxDuration},
		{"cursor.hover_duration", c.HoverDuration},
	} {
		if d.v < 0 {
			return &ConfigError{Field: d.field, Reason: "negative duration"}
		}
	}
	if c.ParallaxDivisor <= 0 {
		return &ConfigError{Field: "cursor.parallax_divisor", Reason: "must be positive"}
	}
	if c.HoverScale < 0 {
		return &ConfigError{Field: "cursor.hover_scale", Reason: "negative scale"}
	}
	if _, err := ParseEase(c.FollowEase); err != nil {
		return err
	}
	if _, err := ParseEase(c.ParallaxEase); err != nil {
		return err
	}
	return nil
}

// Coupler maps raw pointer positions onto smoothed layer motion. The lag of
// the follower comes only from its longer duration; every move overwrites
// the previous move's task, so each layer carries at most one live position
// task no matter how fast events arrive.
type Coupler struct {
	Dot        *Layer
	Follower   *Layer
	Foreground *Layer
	Background *Layer

	cfg          CursorConfig
	followEase   ease.TweenFunc
	parallaxEase ease.TweenFunc
	sched        *Scheduler
	viewport     *Viewport
	hovered      *Layer
}

func newCoupler(cfg CursorConfig, sched *Scheduler, vp *Viewport) *Coupler {
	return &Coupler{
		cfg:          cfg,
		followEase:   MustEase(cfg.FollowEase),
		parallaxEase: MustEase(cfg.ParallaxEase),
		sched:        sched,
		viewport:     vp,
	}
}

// ParallaxOffset returns the foreground offset for a client position: the
// pointer's distance from the viewport center, reversed and scaled down.
func (c *Coupler) ParallaxOffset(x, y float64) Vec2 {
	center := c.viewport.Center()
	k := 2 / c.cfg.ParallaxDivisor
	return Vec2{(center.X - x) * k, (center.Y - y) * k}
}

// Move schedules the motion of every coupled layer toward client (x, y).
func (c *Coupler) Move(x, y float64) {
	if c.Dot != nil {
		c.sched.To(c.Dot.Subject(), Transform{X: x, Y: y}, PropsPosition,
			Timing{Duration: c.cfg.DotDuration, Ease: c.followEase})
	}
	if c.Follower != nil {
		c.sched.To(c.Follower.Subject(), Transform{X: x, Y: y}, PropsPosition,
			Timing{Duration: c.cfg.FollowerDuration, Ease: c.followEase})
	}

	o := c.ParallaxOffset(x, y)
	parallax := Timing{Duration: c.cfg.ParallaxDuration, Ease: c.parallaxEase}
	if c.Foreground != nil {
		f := c.cfg.ForegroundFactor
		c.sched.To(c.Foreground.Subject(), Transform{X: o.X * f, Y: o.Y * f}, PropsPosition, parallax)
	}
	if c.Background != nil {
		f := c.cfg.BackgroundFactor
		c.sched.To(c.Background.Subject(), Transform{X: o.X * f, Y: o.Y * f}, PropsPosition, parallax)
	}
}

// Hover updates the cursor for the interactive layer under the pointer
// (nil for none): the dot shrinks and the follower gains the "active"
// class while any interactive layer is hovered.
func (c *Coupler) Hover(l *Layer) {
	if (l == nil) == (c.hovered == nil) {
		c.hovered = l
		return
	}
	c.hovered = l

	scale := 1.0
	if l != nil {
		scale = c.cfg.HoverScale
	}
	if c.Follower != nil {
		if l != nil {
			c.Follower.AddClass("active")
		} else {
			c.Follower.RemoveClass("active")
		}
	}
	if c.Dot != nil {
		c.sched.To(c.Dot.Subject(), Transform{Scale: scale}, PropsOf(PropScale),
			Timing{Duration: c.cfg.HoverDuration, Ease: c.followEase})
	}
}

// Hovered returns the interactive layer under the pointer, or nil.
func (c *Coupler) Hovered() *Layer {
	return c.hovered
}

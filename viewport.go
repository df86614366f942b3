package wisp

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Viewport is the visible window onto the page: its size and vertical scroll
// offset. Scroll couplings derive their progress from it.
type Viewport struct {
	// ScrollY is the page offset of the viewport's top edge.
	ScrollY float64
	Width   float64
	Height  float64
	// ContentHeight bounds scrolling to [0, ContentHeight-Height] when
	// positive.
	ContentHeight float64

	scrollTween *gween.Tween
}

// NewViewport creates a viewport of the given size scrolled to the top.
func NewViewport(w, h float64) *Viewport {
	return &Viewport{Width: w, Height: h}
}

// MaxScroll returns the largest reachable scroll offset, or +Inf when the
// content height is unknown.
func (v *Viewport) MaxScroll() float64 {
	if v.ContentHeight <= 0 {
		return math.Inf(1)
	}
	return math.Max(0, v.ContentHeight-v.Height)
}

// SetScroll jumps to y, cancelling any smooth scroll.
func (v *Viewport) SetScroll(y float64) {
	v.scrollTween = nil
	v.ScrollY = y
	v.clamp()
}

// ScrollTo animates the scroll offset to y over duration seconds.
func (v *Viewport) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	y = clamp(y, 0, v.MaxScroll())
	v.scrollTween = gween.New(float32(v.ScrollY), float32(y), duration, easeFn)
}

// Scrolling reports whether a smooth scroll is in progress.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// Resize changes the viewport size and re-clamps the scroll offset.
func (v *Viewport) Resize(w, h float64) {
	v.Width = w
	v.Height = h
	v.clamp()
}

// Center returns the viewport center in client coordinates.
func (v *Viewport) Center() Vec2 {
	return Vec2{v.Width / 2, v.Height / 2}
}

// ClientToPage converts client coordinates to page coordinates.
func (v *Viewport) ClientToPage(x, y float64) (float64, float64) {
	return x, y + v.ScrollY
}

// Visible returns the page-space rectangle currently on screen.
func (v *Viewport) Visible() Rect {
	return Rect{X: 0, Y: v.ScrollY, Width: v.Width, Height: v.Height}
}

// update advances a smooth scroll. It reports whether ScrollY changed.
func (v *Viewport) update(dt float32) bool {
	if v.scrollTween == nil {
		return false
	}
	prev := v.ScrollY
	val, done := v.scrollTween.Update(dt)
	v.ScrollY = float64(val)
	if done {
		v.scrollTween = nil
	}
	v.clamp()
	return v.ScrollY != prev
}

func (v *Viewport) clamp() {
	v.ScrollY = clamp(v.ScrollY, 0, v.MaxScroll())
}

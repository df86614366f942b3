package wisp

import "math"

// Placement is the resting page-space box of one unit before its
// Transform is applied.
type Placement struct {
	Unit          int
	X, Y          float64
	Width, Height float64
}

// Center returns the middle of the box, the pivot units rotate and scale
// around.
func (p Placement) Center() (float64, float64) {
	return p.X + p.Width/2, p.Y + p.Height/2
}

// Measurer returns the advance of a glyph or element text in pixels.
type Measurer func(s string) float64

// Layout places a container's units left to right from the top-left of its
// bounds, starting a new line at every break. Whitespace units advance by
// at least MinWidth em, and element children advance by the width of
// their text without producing units.
func Layout(c *Container, measure Measurer, em, lineHeight float64) []Placement {
	out := make([]Placement, 0, len(c.units))
	x, y := c.Bounds.X, c.Bounds.Y
	s := 0
	for i := 0; i <= len(c.units); i++ {
		for s < len(c.structural) && c.structural[s].Position == i {
			seg := c.structural[s].Segment
			if seg.Kind == SegmentBreak {
				x = c.Bounds.X
				y += lineHeight
			} else {
				x += measure(seg.Text)
			}
			s++
		}
		if i == len(c.units) {
			break
		}
		u := &c.units[i]
		w := measure(u.Glyph)
		if u.IsWhitespace && w < u.MinWidth*em {
			w = u.MinWidth * em
		}
		out = append(out, Placement{Unit: i, X: x, Y: y, Width: w, Height: lineHeight})
		x += w
	}
	return out
}

// UnitMatrix returns the matrix painting a unit: its own transform around
// the center of its box, then parent (the carrying layer's matrix, or
// Identity).
func UnitMatrix(parent Affine, p Placement, t Transform) Affine {
	cx, cy := p.Center()
	return parent.Mul(t.Matrix(cx, cy))
}

// LayerMatrix returns the matrix painting a layer around its bounds center.
func LayerMatrix(l *Layer) Affine {
	c := l.Bounds.Center()
	return l.Transform.Matrix(c.X, c.Y)
}

// Reach returns the page-space area c's units can be painted in: its
// bounds widened by its profile's drift and moved with its carrier layer.
// Renderers skip containers whose reach is off screen.
func (e *Engine) Reach(c *Container) Rect {
	r := c.Bounds
	if p := e.trigger.profileFor(c); p != nil {
		vr := p.VerticalRange()
		r.X += math.Min(p.DriftX.Min, 0)
		r.Width += math.Max(p.DriftX.Max, 0) - math.Min(p.DriftX.Min, 0)
		r.Y += math.Min(vr.Min, 0)
		r.Height += math.Max(vr.Max, 0) - math.Min(vr.Min, 0)
	}
	if l := e.Carrier(c); l != nil {
		r.X += l.Transform.X
		r.Y += l.Transform.Y
	}
	return r
}

// Carrier returns the layer that carries container c: the layer with the
// same name, whose transform applies to every unit. It returns nil when
// there is none.
func (e *Engine) Carrier(c *Container) *Layer {
	return e.layers.Lookup(c.Name)
}

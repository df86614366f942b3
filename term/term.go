// Package term paints a wisp engine onto a terminal with tcell and turns
// terminal mouse and resize events into engine events.
//
// Every cell stands for a CellW x CellH block of page pixels, so profiles
// tuned for a window still read sensibly on a character grid.
package term

import (
	"context"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/wisp"
	"github.com/rivo/uniseg"
)

// Default cell size in page pixels.
const (
	DefaultCellW = 10.0
	DefaultCellH = 20.0
)

// ScrollStep is the page distance of one wheel notch.
const ScrollStep = 60.0

var (
	styleText     = tcell.StyleDefault
	styleFaint    = tcell.StyleDefault.Dim(true)
	styleDot      = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 200, 80))
	styleFollower = tcell.StyleDefault.Foreground(tcell.NewRGBColor(160, 160, 160))
	styleActive   = styleFollower.Reverse(true)
)

// Opacity thresholds for the three cell intensities.
const (
	hiddenBelow = 0.15
	faintBelow  = 0.6
	// Blur radii above this also paint faint.
	blurFaint = 3.0
)

// Renderer paints an engine onto a tcell screen.
type Renderer struct {
	Screen tcell.Screen
	Engine *wisp.Engine
	CellW  float64
	CellH  float64

	// pressed tracks Button1 so a held button clicks once.
	pressed bool
}

// NewRenderer creates a renderer with the default cell size.
func NewRenderer(screen tcell.Screen, e *wisp.Engine) *Renderer {
	return &Renderer{Screen: screen, Engine: e, CellW: DefaultCellW, CellH: DefaultCellH}
}

// measure returns a glyph's advance: its display width in cells.
func (r *Renderer) measure(s string) float64 {
	return float64(uniseg.StringWidth(s)) * r.CellW
}

// Cell maps a client-space point to a cell.
func (r *Renderer) Cell(x, y float64) (int, int) {
	return int(math.Floor(x / r.CellW)), int(math.Floor(y / r.CellH))
}

// Draw clears the screen and paints every on-screen container and the
// cursor. Call Show afterwards to flush.
func (r *Renderer) Draw() {
	r.Screen.Clear()
	vp := r.Engine.Viewport()
	// One extra row covers glyphs scaled past their box.
	vis := vp.Visible()
	vis.Y -= r.CellH
	vis.Height += 2 * r.CellH
	r.Engine.Registry().Each(func(c *wisp.Container) {
		if !vis.Intersects(r.Engine.Reach(c)) {
			return
		}
		r.drawContainer(c, vp.ScrollY)
	})
	r.drawCursor()
}

// Show flushes pending changes to the terminal.
func (r *Renderer) Show() {
	r.Screen.Show()
}

func (r *Renderer) drawContainer(c *wisp.Container, scrollY float64) {
	parent := wisp.Identity
	if l := r.Engine.Carrier(c); l != nil {
		parent = wisp.LayerMatrix(l)
	}
	units := c.Units()
	for _, p := range wisp.Layout(c, r.measure, 2*r.CellW, r.CellH) {
		u := &units[p.Unit]
		if u.IsWhitespace {
			continue
		}
		style, ok := cellStyle(u.Current)
		if !ok {
			continue
		}
		m := wisp.UnitMatrix(parent, p, u.Current)
		x, y := m.Apply(p.X+r.CellW/2, p.Y+r.CellH/2)
		col, row := r.Cell(x, y-scrollY)
		runes := []rune(u.Glyph)
		r.Screen.SetContent(col, row, runes[0], runes[1:], style)
	}
}

// cellStyle picks the style for a transform and reports whether the cell
// is visible at all.
func cellStyle(t wisp.Transform) (tcell.Style, bool) {
	switch {
	case t.Opacity < hiddenBelow:
		return styleText, false
	case t.Opacity < faintBelow, t.Blur > blurFaint:
		return styleFaint, true
	}
	return styleText, true
}

func (r *Renderer) drawCursor() {
	cur := r.Engine.Cursor()
	if f := cur.Follower; f != nil {
		col, row := r.Cell(f.Transform.X, f.Transform.Y)
		style := styleFollower
		if f.HasClass("active") {
			style = styleActive
		}
		r.Screen.SetContent(col, row, '○', nil, style)
	}
	if d := cur.Dot; d != nil {
		glyph := '●'
		if d.Transform.Scale < 0.75 {
			glyph = '•'
		}
		col, row := r.Cell(d.Transform.X, d.Transform.Y)
		r.Screen.SetContent(col, row, glyph, nil, styleDot)
	}
}

// Translate converts a terminal event into an engine event. Mouse motion
// maps to the center of the cell and pressing the left button clicks
// there. The wheel scrolls by ScrollStep and resizes report the page size
// of the grid.
func (r *Renderer) Translate(ev tcell.Event) (wisp.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		vp := r.Engine.Viewport()
		btn := ev.Buttons()
		switch {
		case btn&tcell.WheelUp != 0:
			return wisp.Scroll(vp.ScrollY - ScrollStep), true
		case btn&tcell.WheelDown != 0:
			return wisp.Scroll(vp.ScrollY + ScrollStep), true
		}
		x, y := ev.Position()
		cx, cy := (float64(x)+0.5)*r.CellW, (float64(y)+0.5)*r.CellH
		down := btn&tcell.Button1 != 0
		click := down && !r.pressed
		r.pressed = down
		if click {
			return wisp.Click(cx, cy), true
		}
		return wisp.PointerMove(cx, cy), true
	case *tcell.EventResize:
		w, h := ev.Size()
		return wisp.Resize(float64(w)*r.CellW, float64(h)*r.CellH), true
	}
	return wisp.Event{}, false
}

func isQuit(ev tcell.Event) bool {
	k, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	return k.Key() == tcell.KeyEscape || k.Key() == tcell.KeyCtrlC ||
		(k.Key() == tcell.KeyRune && k.Rune() == 'q')
}

// Run drives the engine from terminal input at fps frames per second until
// ctx is done or the user presses q, Esc or Ctrl-C. The screen must already
// be initialized; Run enables mouse reporting but does not call Fini.
func (r *Renderer) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	r.Screen.EnableMouse(tcell.MouseMotionEvents | tcell.MouseButtonEvents)
	frame := time.Second / time.Duration(fps)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go r.Screen.ChannelEvents(events, quit)

	w, h := r.Screen.Size()
	r.Engine.Dispatch(wisp.Resize(float64(w)*r.CellW, float64(h)*r.CellH))

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || isQuit(ev) {
				return nil
			}
			if we, ok := r.Translate(ev); ok {
				r.Engine.Dispatch(we)
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				r.Screen.Sync()
			}
		case now := <-ticker.C:
			r.Engine.Update(float32(now.Sub(last).Seconds()))
			last = now
			r.Draw()
			r.Show()
		}
	}
}

// Package display runs a wisp engine in an Ebitengine window. Glyphs are
// drawn with text/v2 using the Go Regular font, transformed per unit, with
// opacity applied through the color scale and blur approximated by ghost
// copies.
package display

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/phanxgames/wisp"
	"golang.org/x/image/font/gofont/goregular"
)

// Options configures a Game.
type Options struct {
	// FontSize is the glyph size in pixels.
	FontSize   float64
	Background color.Color
	Foreground color.Color
	// ScrollStep is the page distance of one wheel notch.
	ScrollStep float64
	// ShowLayers outlines interactive layers.
	ShowLayers bool
	// ShowStats draws the frame rate and task count overlay.
	ShowStats bool
	// ScreenshotDir receives queued screenshots. Empty means the working
	// directory.
	ScreenshotDir string
}

// DefaultOptions returns the stock look: light glyphs on near-black.
func DefaultOptions() Options {
	return Options{
		FontSize:   48,
		Background: color.RGBA{R: 12, G: 12, B: 14, A: 255},
		Foreground: color.RGBA{R: 235, G: 230, B: 220, A: 255},
		ScrollStep: 60,
	}
}

// Game adapts an engine to ebiten.Game.
type Game struct {
	Engine *wisp.Engine
	opts   Options

	face       *text.GoTextFace
	lineHeight float64
	input      inputState
	pixel      *ebiten.Image

	runner *wisp.Runner
	shots  []string
	hud    hud
}

// New loads the font and wraps e.
func New(e *wisp.Engine, opts Options) (*Game, error) {
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultOptions().FontSize
	}
	if opts.ScrollStep <= 0 {
		opts.ScrollStep = DefaultOptions().ScrollStep
	}
	if opts.Background == nil {
		opts.Background = DefaultOptions().Background
	}
	if opts.Foreground == nil {
		opts.Foreground = DefaultOptions().Foreground
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("display: load font: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: opts.FontSize}
	m := face.Metrics()
	return &Game{
		Engine:     e,
		opts:       opts,
		face:       face,
		lineHeight: m.HAscent + m.HDescent + m.HLineGap,
		input:      inputState{x: -1, y: -1},
	}, nil
}

// Measure returns the advance of s in pixels.
func (g *Game) Measure(s string) float64 {
	w, _ := text.Measure(s, g.face, g.lineHeight)
	return w
}

// LineHeight returns the distance between baselines.
func (g *Game) LineHeight() float64 {
	return g.lineHeight
}

// Placements lays out c with the game's font.
func (g *Game) Placements(c *wisp.Container) []wisp.Placement {
	return wisp.Layout(c, g.Measure, g.opts.FontSize, g.lineHeight)
}

// Update implements ebiten.Game. It feeds pointer, button and wheel input
// to the engine and advances it by one tick.
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	cx, cy := ebiten.CursorPosition()
	_, wheel := ebiten.Wheel()
	clicked := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	for _, ev := range g.input.next(cx, cy, clicked, wheel, g.Engine.Viewport().ScrollY, g.opts.ScrollStep) {
		g.Engine.Dispatch(ev)
	}
	if g.runner != nil {
		g.runner.Step(g.Engine)
	}
	dt := 1 / float32(ebiten.TPS())
	g.Engine.Update(dt)
	if g.opts.ShowStats {
		g.hud.update(float64(dt), g)
	}
	return nil
}

// Layout implements ebiten.Game and forwards size changes to the engine.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	vp := g.Engine.Viewport()
	w, h := float64(outsideWidth), float64(outsideHeight)
	if vp.Width != w || vp.Height != h {
		g.Engine.Dispatch(wisp.Resize(w, h))
	}
	return outsideWidth, outsideHeight
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.pixel == nil {
		g.pixel = ebiten.NewImage(1, 1)
		g.pixel.Fill(color.White)
	}
	screen.Fill(g.opts.Background)
	scrollY := g.Engine.Viewport().ScrollY

	if g.opts.ShowLayers {
		g.Engine.Layers().Each(func(l *wisp.Layer) {
			if l.Interactive {
				g.drawLayer(screen, l, scrollY)
			}
		})
	}
	vis := g.Engine.Viewport().Visible()
	vis.Y -= g.lineHeight
	vis.Height += 2 * g.lineHeight
	g.Engine.Registry().Each(func(c *wisp.Container) {
		if vis.Intersects(g.Engine.Reach(c)) {
			g.drawContainer(screen, c, scrollY)
		}
	})
	g.drawCursor(screen)
	if g.opts.ShowStats {
		g.hud.draw(screen)
	}
	g.flushScreenshots(screen)
}

func (g *Game) drawContainer(dst *ebiten.Image, c *wisp.Container, scrollY float64) {
	parent := wisp.Identity
	if l := g.Engine.Carrier(c); l != nil {
		parent = wisp.LayerMatrix(l)
	}
	units := c.Units()
	for _, p := range g.Placements(c) {
		u := &units[p.Unit]
		if u.IsWhitespace || u.Current.Opacity <= 0 {
			continue
		}
		m := wisp.UnitMatrix(parent, p, u.Current)
		for _, tap := range blurTaps(u.Current.Blur) {
			op := &text.DrawOptions{}
			op.GeoM.Translate(p.X+tap.dx, p.Y+tap.dy)
			op.GeoM.Concat(GeoM(m))
			op.GeoM.Translate(0, -scrollY)
			op.ColorScale.ScaleWithColor(g.opts.Foreground)
			op.ColorScale.ScaleAlpha(float32(u.Current.Opacity * tap.alpha))
			text.Draw(dst, u.Glyph, g.face, op)
		}
	}
}

func (g *Game) drawLayer(dst *ebiten.Image, l *wisp.Layer, scrollY float64) {
	if l.Transform.Opacity <= 0 {
		return
	}
	if l.Fixed {
		scrollY = 0
	}
	b := l.Bounds
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(b.Width, b.Height)
	op.GeoM.Translate(b.X, b.Y)
	op.GeoM.Concat(GeoM(wisp.LayerMatrix(l)))
	op.GeoM.Translate(0, -scrollY)
	op.ColorScale.ScaleWithColor(g.opts.Foreground)
	op.ColorScale.ScaleAlpha(float32(0.08 * l.Transform.Opacity))
	dst.DrawImage(g.pixel, op)
}

func (g *Game) drawCursor(dst *ebiten.Image) {
	cur := g.Engine.Cursor()
	if f := cur.Follower; f != nil {
		size := 32.0
		alpha := float32(0.25)
		if f.HasClass("active") {
			size, alpha = 48, 0.4
		}
		g.drawSquare(dst, f.Transform.X, f.Transform.Y, size, alpha)
	}
	if d := cur.Dot; d != nil {
		g.drawSquare(dst, d.Transform.X, d.Transform.Y, 8*d.Transform.Scale, 1)
	}
}

func (g *Game) drawSquare(dst *ebiten.Image, cx, cy, size float64, alpha float32) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(cx-size/2, cy-size/2)
	op.ColorScale.ScaleWithColor(g.opts.Foreground)
	op.ColorScale.ScaleAlpha(alpha)
	dst.DrawImage(g.pixel, op)
}

// GeoM converts an affine matrix to an Ebitengine GeoM.
func GeoM(m wisp.Affine) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

type tap struct {
	dx, dy float64
	alpha  float64
}

// blurTaps returns the ghost copies approximating a blur radius. Total
// alpha is kept at 1 so blurred glyphs do not brighten.
func blurTaps(radius float64) []tap {
	if radius < 0.5 {
		return []tap{{alpha: 1}}
	}
	r := radius / 2
	return []tap{
		{alpha: 0.2},
		{dx: -r, alpha: 0.2},
		{dx: r, alpha: 0.2},
		{dy: -r, alpha: 0.2},
		{dy: r, alpha: 0.2},
	}
}

// Run opens a window and runs the engine until it is closed. A non-nil
// script is replayed in the window.
func Run(e *wisp.Engine, title string, opts Options, script *wisp.Runner) error {
	g, err := New(e, opts)
	if err != nil {
		return err
	}
	if script != nil {
		g.SetScript(script)
	}
	vp := e.Viewport()
	w, h := int(vp.Width), int(vp.Height)
	if w <= 0 || h <= 0 {
		w, h = 1280, 720
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetCursorMode(ebiten.CursorModeHidden)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

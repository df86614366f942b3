package display

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hudInterval is how often, in seconds, the stats overlay is refreshed.
const hudInterval = 0.5

// hud is the stats overlay: frame rates plus engine load.
type hud struct {
	img     *ebiten.Image
	elapsed float64
	text    string
}

func (h *hud) update(dt float64, g *Game) {
	h.elapsed += dt
	if h.text != "" && h.elapsed < hudInterval {
		return
	}
	h.elapsed = 0
	e := g.Engine
	h.text = hudText(ebiten.ActualFPS(), ebiten.ActualTPS(), e.Scheduler().Len(), e.Viewport().ScrollY)
}

func hudText(fps, tps float64, tasks int, scrollY float64) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\ntasks: %d\nscroll: %.0f", fps, tps, tasks, scrollY)
}

func (h *hud) draw(dst *ebiten.Image) {
	if h.img == nil {
		h.img = ebiten.NewImage(140, 64)
	}
	h.img.Clear()
	h.img.Fill(color.RGBA{A: 128})
	ebitenutil.DebugPrint(h.img, h.text)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(8, 8)
	dst.DrawImage(h.img, op)
}

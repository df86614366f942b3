package cli

import (
	"fmt"
	"io"

	"github.com/phanxgames/wisp"
)

// printState writes a one-block summary of the engine: scroll, live tasks,
// and each container's state and mean unit transform.
func printState(w io.Writer, label string, e *wisp.Engine) {
	fmt.Fprintf(w, "[%s] t=%.2fs scroll=%.0f tasks=%d\n",
		label, e.Scheduler().Now(), e.Viewport().ScrollY, e.Scheduler().Len())
	e.Registry().Each(func(c *wisp.Container) {
		m := meanTransform(c.Units())
		fmt.Fprintf(w, "  %-18s %-6s units=%-3d y=%7.1f opacity=%.2f blur=%.1f\n",
			c.Name, c.State(), c.NumUnits(), m.Y, m.Opacity, m.Blur)
	})
	for _, r := range e.Reveals() {
		fmt.Fprintf(w, "  reveal %-11s fired=%v\n", r.Name, r.Fired())
	}
}

func meanTransform(units []wisp.CharacterUnit) wisp.Transform {
	var m wisp.Transform
	if len(units) == 0 {
		return wisp.Neutral
	}
	for _, u := range units {
		m.X += u.Current.X
		m.Y += u.Current.Y
		m.Rotation += u.Current.Rotation
		m.Scale += u.Current.Scale
		m.Opacity += u.Current.Opacity
		m.Blur += u.Current.Blur
	}
	n := float64(len(units))
	return wisp.Transform{X: m.X / n, Y: m.Y / n, Rotation: m.Rotation / n, Scale: m.Scale / n, Opacity: m.Opacity / n, Blur: m.Blur / n}
}

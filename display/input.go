package display

import "github.com/phanxgames/wisp"

// inputState remembers the last polled pointer so only changes become
// events.
type inputState struct {
	x, y int
}

// next turns one frame of polled input into engine events: a pointer move
// when the cursor changed cell, a click when the primary button went down
// and a scroll when the wheel turned. Wheel up (positive) scrolls toward the
// top.
func (s *inputState) next(cx, cy int, clicked bool, wheelY, scrollY, step float64) []wisp.Event {
	var out []wisp.Event
	if cx != s.x || cy != s.y {
		s.x, s.y = cx, cy
		out = append(out, wisp.PointerMove(float64(cx), float64(cy)))
	}
	if clicked {
		out = append(out, wisp.Click(float64(cx), float64(cy)))
	}
	if wheelY != 0 {
		out = append(out, wisp.Scroll(scrollY-wheelY*step))
	}
	return out
}

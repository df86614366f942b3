package wisp

// EventType identifies a kind of input event.
type EventType uint8

const (
	EventPointerMove  EventType = iota // pointer moved to client (X, Y)
	EventPointerEnter                  // pointer entered Container
	EventPointerLeave                  // pointer left Container
	EventScroll                        // page scrolled to ScrollY
	EventResize                        // viewport resized to Width x Height
	EventClick                         // primary button pressed at client (X, Y)
)

func (t EventType) String() string {
	switch t {
	case EventPointerMove:
		return "pointer-move"
	case EventPointerEnter:
		return "pointer-enter"
	case EventPointerLeave:
		return "pointer-leave"
	case EventScroll:
		return "scroll"
	case EventResize:
		return "resize"
	case EventClick:
		return "click"
	}
	return "unknown"
}

// Event is a normalized input event. Input sources (a window, a terminal,
// a replay script) translate their native events into this form and hand
// them to Engine.Dispatch.
type Event struct {
	Type EventType
	// Container is the target of enter/leave events.
	Container ContainerID
	// X and Y are client (viewport) coordinates for pointer moves and
	// clicks.
	X, Y float64
	// ScrollY is the absolute page scroll offset for scroll events.
	ScrollY float64
	// Width and Height are the new viewport size for resize events.
	Width, Height float64
}

// PointerMove builds a pointer-move event at client coordinates.
func PointerMove(x, y float64) Event {
	return Event{Type: EventPointerMove, X: x, Y: y}
}

// PointerEnter builds an enter event for a container.
func PointerEnter(id ContainerID) Event {
	return Event{Type: EventPointerEnter, Container: id}
}

// PointerLeave builds a leave event for a container.
func PointerLeave(id ContainerID) Event {
	return Event{Type: EventPointerLeave, Container: id}
}

// Click builds a click event at client coordinates.
func Click(x, y float64) Event {
	return Event{Type: EventClick, X: x, Y: y}
}

// Scroll builds a scroll event.
func Scroll(y float64) Event {
	return Event{Type: EventScroll, ScrollY: y}
}

// Resize builds a viewport resize event.
func Resize(w, h float64) Event {
	return Event{Type: EventResize, Width: w, Height: h}
}

// NoticeKind identifies an outgoing engine notification.
type NoticeKind uint8

const (
	NoticeStateChange NoticeKind = iota // a container changed trigger state
	NoticeCue                           // a timed entrance cue fired
	NoticeReveal                        // a scroll reveal fired
)

// Notice is emitted to the optional EventSink so other systems (an ECS
// world, a renderer toggling classes) can follow the engine.
type Notice struct {
	Kind      NoticeKind
	Container ContainerID
	// Name is the container, cue or reveal name.
	Name     string
	From, To State
	// Time is the scheduler clock when the notice was emitted.
	Time float64
}

// EventSink is the interface for optional notice forwarding.
type EventSink interface {
	EmitEvent(n Notice)
}

package wisp

import (
	"fmt"
	"strings"
)

// ContainerID identifies a container in a Registry. Zero is never assigned.
type ContainerID uint32

// CharacterUnit is one animatable glyph or whitespace run.
type CharacterUnit struct {
	// Index is the unit's stable position within its container.
	Index int
	// Glyph is the grapheme cluster this unit renders.
	Glyph string
	// IsWhitespace marks units that reserve MinWidth (in em) of space.
	IsWhitespace bool
	MinWidth     float64
	// Current is the live visual state. Only the Scheduler mutates it.
	Current Transform
	// Owner is a lookup-only back-reference to the containing container.
	Owner ContainerID
}

// Container is a logical text block that owns a sequence of units plus the
// structural children that must be preserved around them.
type Container struct {
	ID      ContainerID
	Name    string
	Profile string
	// Bounds is the page-space hover region.
	Bounds Rect
	// Original is the content snapshot the units were decomposed from.
	Original []Segment

	opts       SplitOptions
	units      []CharacterUnit
	structural []Structural
	state      State
	disposed   bool
}

// Units returns the container's units. The slice MUST NOT be resized by
// the caller; element transforms are owned by the Scheduler.
func (c *Container) Units() []CharacterUnit {
	return c.units
}

// NumUnits returns the number of decomposed units.
func (c *Container) NumUnits() int {
	return len(c.units)
}

// Structural returns the pass-through children in recorded order.
func (c *Container) Structural() []Structural {
	return c.structural
}

// State returns the container's trigger state.
func (c *Container) State() State {
	return c.state
}

// IsDisposed reports whether the container has been torn down.
func (c *Container) IsDisposed() bool {
	return c.disposed
}

// Text reconstructs the visible character sequence: unit glyphs and
// structural children in recorded order, with breaks rendered as "\n" and
// elements as their visible text.
func (c *Container) Text() string {
	var b strings.Builder
	s := 0
	for i := 0; i <= len(c.units); i++ {
		for s < len(c.structural) && c.structural[s].Position == i {
			seg := c.structural[s].Segment
			if seg.Kind == SegmentBreak {
				b.WriteByte('\n')
			} else {
				b.WriteString(seg.Text)
			}
			s++
		}
		if i < len(c.units) {
			b.WriteString(c.units[i].Glyph)
		}
	}
	return b.String()
}

// Lines groups unit indices by line, splitting at break children. Element
// children do not start a new line.
func (c *Container) Lines() [][]int {
	lines := [][]int{nil}
	s := 0
	for i := 0; i <= len(c.units); i++ {
		for s < len(c.structural) && c.structural[s].Position == i {
			if c.structural[s].Segment.Kind == SegmentBreak {
				lines = append(lines, nil)
			}
			s++
		}
		if i < len(c.units) {
			last := len(lines) - 1
			lines[last] = append(lines[last], i)
		}
	}
	return lines
}

// Registry is an arena of containers indexed by ContainerID.
type Registry struct {
	containers []*Container // index = id - 1; nil after Remove
	byName     map[string]ContainerID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]ContainerID)}
}

// Register decomposes content into a new container. Names must be unique
// among live containers.
func (r *Registry) Register(name string, content []Segment, opts SplitOptions) (*Container, error) {
	if _, ok := r.byName[name]; ok {
		return nil, fmt.Errorf("register container %q: name already in use", name)
	}
	c := &Container{
		ID:       ContainerID(len(r.containers) + 1),
		Name:     name,
		Original: append([]Segment(nil), content...),
		opts:     opts,
	}
	c.decompose()
	r.containers = append(r.containers, c)
	r.byName[name] = c.ID
	return c, nil
}

func (c *Container) decompose() {
	c.units, c.structural = Split(c.Original, c.opts)
	for i := range c.units {
		c.units[i].Owner = c.ID
	}
	c.state = StateIdle
}

// Container returns the live container with the given id, or nil.
func (r *Registry) Container(id ContainerID) *Container {
	if id == 0 || int(id) > len(r.containers) {
		return nil
	}
	return r.containers[id-1]
}

// Lookup returns the live container registered under name, or nil.
func (r *Registry) Lookup(name string) *Container {
	id, ok := r.byName[name]
	if !ok {
		return nil
	}
	return r.Container(id)
}

// Unit returns a pointer to the unit at index within container id, or nil.
func (r *Registry) Unit(id ContainerID, index int) *CharacterUnit {
	c := r.Container(id)
	if c == nil || index < 0 || index >= len(c.units) {
		return nil
	}
	return &c.units[index]
}

// Each calls fn for every live container in id order.
func (r *Registry) Each(fn func(*Container)) {
	for _, c := range r.containers {
		if c != nil {
			fn(c)
		}
	}
}

// Len returns the number of live containers.
func (r *Registry) Len() int {
	return len(r.byName)
}

// Remove tears down a container. Its units are released; callers must
// cancel any tasks still targeting them first.
func (r *Registry) Remove(id ContainerID) {
	c := r.Container(id)
	if c == nil {
		return
	}
	c.disposed = true
	c.units = nil
	c.structural = nil
	delete(r.byName, c.Name)
	r.containers[id-1] = nil
}

// Redecompose replaces a container's content, rebuilding its units from
// scratch. The container returns to Idle.
func (r *Registry) Redecompose(id ContainerID, content []Segment) error {
	c := r.Container(id)
	if c == nil {
		return fmt.Errorf("redecompose container %d: not found", id)
	}
	c.Original = append([]Segment(nil), content...)
	c.decompose()
	return nil
}

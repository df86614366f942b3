package wisp

// LayerID identifies a layer within a Layers set. Zero is never assigned.
type LayerID uint32

// Layer is a named, non-text visual element animated as a whole: the
// cursor dot, the parallax backgrounds, revealed sections and cards.
type Layer struct {
	ID   LayerID
	Name string

	// Transform is the live visual state, written by the Scheduler.
	Transform Transform
	// Bounds is the layer's page-space rectangle, used for hover and scroll
	// trigger geometry.
	Bounds Rect
	// Interactive layers shrink the cursor while hovered.
	Interactive bool
	// Fixed layers stay put while the page scrolls. Their Bounds are in
	// client space.
	Fixed bool

	classes  map[string]bool
	disposed bool
}

// Subject returns the layer as a Scheduler subject.
func (l *Layer) Subject() Subject {
	return Subject{Target: LayerTarget(l.ID), State: &l.Transform}
}

// AddClass sets a presentation flag for the rendering sink.
func (l *Layer) AddClass(name string) {
	if l.classes == nil {
		l.classes = make(map[string]bool)
	}
	l.classes[name] = true
}

// RemoveClass clears a presentation flag.
func (l *Layer) RemoveClass(name string) {
	delete(l.classes, name)
}

// HasClass reports whether a presentation flag is set.
func (l *Layer) HasClass(name string) bool {
	return l.classes[name]
}

// IsDisposed reports whether the layer has been removed.
func (l *Layer) IsDisposed() bool {
	return l.disposed
}

// Layers is the set of layers owned by one Engine.
type Layers struct {
	list   []*Layer // index = id - 1; nil after Remove
	byName map[string]*Layer
}

// NewLayers creates an empty layer set.
func NewLayers() *Layers {
	return &Layers{byName: make(map[string]*Layer)}
}

// Add creates a layer at its neutral transform.
// Panics if name is already in use.
func (ls *Layers) Add(name string, bounds Rect) *Layer {
	if _, ok := ls.byName[name]; ok {
		panic("wisp: duplicate layer name " + quote(name))
	}
	l := &Layer{
		ID:        LayerID(len(ls.list) + 1),
		Name:      name,
		Transform: Neutral,
		Bounds:    bounds,
	}
	ls.list = append(ls.list, l)
	ls.byName[name] = l
	return l
}

// Lookup returns the layer registered under name, or nil.
func (ls *Layers) Lookup(name string) *Layer {
	return ls.byName[name]
}

// Get returns the layer with the given id, or nil.
func (ls *Layers) Get(id LayerID) *Layer {
	if id == 0 || int(id) > len(ls.list) {
		return nil
	}
	return ls.list[id-1]
}

// Each calls fn for every live layer in creation order.
func (ls *Layers) Each(fn func(*Layer)) {
	for _, l := range ls.list {
		if l != nil {
			fn(l)
		}
	}
}

// Remove disposes a layer. Callers must cancel its tasks first.
func (ls *Layers) Remove(id LayerID) {
	l := ls.Get(id)
	if l == nil {
		return
	}
	l.disposed = true
	l.classes = nil
	delete(ls.byName, l.Name)
	ls.list[id-1] = nil
}

// hitTest returns the topmost interactive layer under the pointer, or nil.
// Later layers paint above earlier ones. Fixed layers are tested against
// the client point, the rest against the page point. The point is mapped
// back through the layer's transform, so a drifted or scaled layer is hit
// where it is painted.
func (ls *Layers) hitTest(client, page Vec2) *Layer {
	for i := len(ls.list) - 1; i >= 0; i-- {
		l := ls.list[i]
		if l == nil || !l.Interactive {
			continue
		}
		pt := page
		if l.Fixed {
			pt = client
		}
		x, y := LayerMatrix(l).Invert().Apply(pt.X, pt.Y)
		if l.Bounds.Contains(x, y) {
			return l
		}
	}
	return nil
}

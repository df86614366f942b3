package wisp

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Smooth scroll played when a scroll link is clicked.
const (
	LinkScrollDuration = 0.8 // seconds
	LinkScrollEase     = "power2.inOut"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. The default logs warnings to stderr.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithEventSink forwards state changes, cues and reveals to sink.
func WithEventSink(sink EventSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithRand replaces the engine's random source. Config.Seed is ignored when
// this option is used.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// ContainerSpec describes a text container to register.
type ContainerSpec struct {
	Name    string
	Content []Segment
	// Profile overrides the configured binding for Name. Empty falls back to
	// the binding, then to jitter.
	Profile string
	// Trim trims surrounding whitespace from every text run before
	// splitting.
	Trim   bool
	Bounds Rect
}

// Engine owns one independent set of containers, layers and animations.
// All methods must be called from the same goroutine that calls Update.
type Engine struct {
	cfg      Config
	profiles map[string]*Profile
	logger   *log.Logger
	sink     EventSink
	rng      *rand.Rand

	registry *Registry
	layers   *Layers
	sched    *Scheduler
	trigger  *Controller
	cursor   *Coupler
	viewport *Viewport

	couplings []*ScrollCoupling
	reveals   []*ScrollReveal
	entrance  *Entrance
	// links maps a clickable layer to the scroll offset it jumps to.
	links map[LayerID]float64

	injectQueue []Event

	pointer    Vec2
	hasPointer bool
	started    bool
	disposed   bool

	stats tickStats
}

// New validates cfg and builds an engine. The viewport starts at 0x0 until
// the first resize event.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if cfg.Cursor == (CursorConfig{}) {
		cfg.Cursor = DefaultCursorConfig()
	}
	profiles, err := cfg.CompileProfiles()
	if err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg, profiles: profiles, links: make(map[LayerID]float64)}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		level := log.WarnLevel
		if cfg.Debug {
			level = log.DebugLevel
		}
		e.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "wisp", Level: level})
	}
	if e.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	e.registry = NewRegistry()
	e.layers = NewLayers()
	e.sched = NewScheduler(e.rng)
	e.viewport = NewViewport(0, 0)
	e.trigger = newController(e.registry, e.sched, profiles, e.rng, e.logger)
	e.trigger.sink = e.sink
	e.trigger.layers = e.layers
	e.cursor = newCoupler(cfg.Cursor, e.sched, e.viewport)
	return e, nil
}

// Registry returns the engine's container registry.
func (e *Engine) Registry() *Registry { return e.registry }

// Layers returns the engine's layer set.
func (e *Engine) Layers() *Layers { return e.layers }

// Scheduler returns the engine's scheduler.
func (e *Engine) Scheduler() *Scheduler { return e.sched }

// Controller returns the trigger controller.
func (e *Engine) Controller() *Controller { return e.trigger }

// Cursor returns the pointer coupler.
func (e *Engine) Cursor() *Coupler { return e.cursor }

// Viewport returns the engine's viewport.
func (e *Engine) Viewport() *Viewport { return e.viewport }

// Logger returns the engine's logger.
func (e *Engine) Logger() *log.Logger { return e.logger }

// Config returns the configuration the engine was built from.
func (e *Engine) Config() Config { return e.cfg }

// Profile returns the compiled profile registered under name, or nil.
func (e *Engine) Profile(name string) *Profile { return e.profiles[name] }

// Entrance returns the page entrance, or nil.
func (e *Engine) Entrance() *Entrance { return e.entrance }

// Couplings returns the registered scroll couplings.
func (e *Engine) Couplings() []*ScrollCoupling { return e.couplings }

// Reveals returns the registered scroll reveals.
func (e *Engine) Reveals() []*ScrollReveal { return e.reveals }

// Started reports whether Start has run.
func (e *Engine) Started() bool { return e.started }

// AddContainer registers and decomposes a text container.
func (e *Engine) AddContainer(spec ContainerSpec) (*Container, error) {
	prof := spec.Profile
	if prof == "" {
		prof = e.cfg.Bindings[spec.Name]
	}
	if prof == "" {
		prof = ProfileJitter
	}
	if _, ok := e.profiles[prof]; !ok {
		return nil, &ConfigError{Field: "container " + quote(spec.Name), Reason: "unknown profile " + quote(prof)}
	}
	c, err := e.registry.Register(spec.Name, spec.Content, SplitOptions{TrimRuns: spec.Trim})
	if err != nil {
		return nil, err
	}
	c.Profile = prof
	c.Bounds = spec.Bounds
	if c.NumUnits() == 0 {
		e.logger.Debug("container has no units", "container", c.Name)
	}
	return c, nil
}

// SetContent replaces a container's content. In-flight tasks on its units
// are cancelled and the container returns to idle.
func (e *Engine) SetContent(id ContainerID, content []Segment) error {
	e.sched.CancelContainer(id)
	if e.trigger.hover == id {
		e.trigger.hover = 0
	}
	return e.registry.Redecompose(id, content)
}

// RemoveContainer cancels a container's tasks and tears it down.
func (e *Engine) RemoveContainer(id ContainerID) {
	e.sched.CancelContainer(id)
	if e.trigger.hover == id {
		e.trigger.hover = 0
	}
	e.registry.Remove(id)
}

// AddLayer creates a layer at its neutral transform.
func (e *Engine) AddLayer(name string, bounds Rect) (*Layer, error) {
	if e.layers.Lookup(name) != nil {
		return nil, fmt.Errorf("add layer %q: name already in use", name)
	}
	return e.layers.Add(name, bounds), nil
}

// RemoveLayer cancels a layer's tasks and removes it.
func (e *Engine) RemoveLayer(id LayerID) {
	e.sched.Cancel(LayerTarget(id))
	e.layers.Remove(id)
	delete(e.links, id)
}

// AddScrollLink makes clicks on the named layer smooth-scroll the page to
// offset y. The layer becomes interactive.
func (e *Engine) AddScrollLink(name string, y float64) error {
	l := e.layers.Lookup(name)
	if l == nil {
		return fmt.Errorf("add scroll link: unknown layer %q", name)
	}
	l.Interactive = true
	e.links[l.ID] = y
	return nil
}

// SetCursorLayers binds the pointer coupler's layers. Any may be nil.
func (e *Engine) SetCursorLayers(dot, follower, foreground, background *Layer) {
	e.cursor.Dot = dot
	e.cursor.Follower = follower
	e.cursor.Foreground = foreground
	e.cursor.Background = background
}

// AddCoupling registers a scroll coupling. After Start it is applied at
// once.
func (e *Engine) AddCoupling(sc *ScrollCoupling) error {
	if sc.Layer == nil {
		return &ConfigError{Field: "coupling " + quote(sc.Name), Reason: "no layer"}
	}
	if sc.Scrub < 0 {
		return &ConfigError{Field: "coupling " + quote(sc.Name), Reason: "negative scrub"}
	}
	e.couplings = append(e.couplings, sc)
	if e.started {
		sc.apply(e.sched, e.viewport)
	}
	return nil
}

// AddReveal registers a one-shot scroll reveal. After Start it is primed
// and checked at once.
func (e *Engine) AddReveal(r *ScrollReveal) error {
	if r.Duration < 0 || r.Stagger < 0 {
		return &ConfigError{Field: "reveal " + quote(r.Name), Reason: "negative timing"}
	}
	e.reveals = append(e.reveals, r)
	if e.started {
		r.prime(e.sched)
		e.checkReveal(r)
	}
	return nil
}

// SetEntrance sets the page-load sequence played by Start.
func (e *Engine) SetEntrance(en *Entrance) {
	e.entrance = en
}

// Start primes reveals, plays the entrance and applies the initial scroll
// state. Events dispatched before Start are ignored.
func (e *Engine) Start() error {
	if e.disposed {
		return fmt.Errorf("start: engine disposed")
	}
	if e.started {
		return nil
	}
	e.started = true
	for _, r := range e.reveals {
		r.prime(e.sched)
	}
	if e.entrance != nil {
		e.entrance.start(e.sched)
	}
	e.applyScroll()
	e.logger.Debug("engine started",
		"containers", e.registry.Len(),
		"couplings", len(e.couplings),
		"reveals", len(e.reveals))
	return nil
}

// Dispatch delivers one input event. Events are handled synchronously and
// in order: each event's scheduling is complete before Dispatch returns.
func (e *Engine) Dispatch(ev Event) {
	if !e.started || e.disposed {
		return
	}
	switch ev.Type {
	case EventPointerMove:
		e.pointer = Vec2{ev.X, ev.Y}
		e.hasPointer = true
		e.cursor.Move(ev.X, ev.Y)
		e.hover()
	case EventPointerEnter:
		e.trigger.report(e.trigger.Enter(ev.Container))
	case EventPointerLeave:
		e.trigger.report(e.trigger.Leave(ev.Container))
	case EventScroll:
		e.viewport.SetScroll(ev.ScrollY)
		e.applyScroll()
		e.hover()
	case EventResize:
		e.viewport.Resize(ev.Width, ev.Height)
		e.applyScroll()
	case EventClick:
		e.click(ev.X, ev.Y)
	default:
		e.logger.Warn("unknown event", "type", ev.Type)
	}
}

// hover re-runs hit testing at the last pointer position. Scrolling moves
// the page under a still pointer, so it runs after scrolls too.
func (e *Engine) hover() {
	if !e.hasPointer {
		return
	}
	x, y := e.viewport.ClientToPage(e.pointer.X, e.pointer.Y)
	e.trigger.Hover(x, y)
	e.cursor.Hover(e.layers.hitTest(e.pointer, Vec2{x, y}))
}

// click follows a scroll link under the client point, if any. Scroll
// events dispatched while the page glides cancel the glide.
func (e *Engine) click(x, y float64) {
	px, py := e.viewport.ClientToPage(x, y)
	l := e.layers.hitTest(Vec2{x, y}, Vec2{px, py})
	if l == nil {
		return
	}
	target, ok := e.links[l.ID]
	if !ok {
		return
	}
	e.logger.Debug("scroll link", "layer", l.Name, "from", e.viewport.ScrollY, "to", target)
	e.viewport.ScrollTo(target, LinkScrollDuration, MustEase(LinkScrollEase))
}

func (e *Engine) applyScroll() {
	for _, sc := range e.couplings {
		sc.apply(e.sched, e.viewport)
	}
	for _, r := range e.reveals {
		e.checkReveal(r)
	}
}

func (e *Engine) checkReveal(r *ScrollReveal) {
	if !r.check(e.sched, e.viewport) {
		return
	}
	e.logger.Debug("reveal", "name", r.Name, "scroll", e.viewport.ScrollY)
	e.emit(Notice{Kind: NoticeReveal, Name: r.Name, Time: e.sched.Now()})
}

func (e *Engine) emit(n Notice) {
	if e.sink != nil {
		e.sink.EmitEvent(n)
	}
}

// Update advances smooth scrolling, entrance cues and every animation by dt
// seconds. It is the only place Transforms change over time.
func (e *Engine) Update(dt float32) {
	if !e.started || e.disposed {
		return
	}
	var t0 time.Time
	if e.cfg.Debug {
		t0 = time.Now()
	}

	e.processInjected()
	if e.viewport.update(dt) {
		e.applyScroll()
		e.hover()
	}
	if e.entrance != nil {
		e.entrance.update(float64(dt), func(c Cue) {
			e.logger.Debug("cue", "name", c.Name, "at", c.At)
			e.emit(Notice{Kind: NoticeCue, Name: c.Name, Time: e.sched.Now()})
		})
	}
	e.sched.Update(dt)

	if e.cfg.Debug {
		e.stats.record(time.Since(t0), e.sched.Len())
		if e.stats.frames%debugStatsInterval == 0 {
			e.debugLog()
		}
	}
}

// Dispose cancels every task and tears down all containers and layers. The
// engine ignores further events and updates.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	e.sched.CancelAll()
	e.registry.Each(func(c *Container) { e.registry.Remove(c.ID) })
	e.layers.Each(func(l *Layer) { e.layers.Remove(l.ID) })
	e.couplings = nil
	e.reveals = nil
	clear(e.links)
	e.entrance = nil
	e.trigger.hover = 0
	e.injectQueue = nil
	e.disposed = true
}

// IsDisposed reports whether Dispose has run.
func (e *Engine) IsDisposed() bool { return e.disposed }

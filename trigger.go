package wisp

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
)

// ClassScatterActive is set on a container's carrier layer while the
// container is Active.
const ClassScatterActive = "scatter-active"

// Controller owns the Idle/Active state machine of every container and turns
// enter/leave triggers into Scheduler batches.
//
//	Idle   --enter--> Active   schedule generated targets (enter timing)
//	Active --leave--> Idle     schedule Neutral (exit timing)
//
// An enter that arrives while the return animation is still running is
// legal: the overwrite rule cancels the return tasks and the new batch
// starts from the live values. Enter on Active and leave on Idle are no-ops.
type Controller struct {
	registry *Registry
	sched    *Scheduler
	profiles map[string]*Profile
	fallback string
	rng      *rand.Rand
	logger   *log.Logger
	sink     EventSink
	// layers holds carrier layers. Nil when the controller runs alone.
	layers *Layers

	// hover is the container currently under the pointer, tracked from
	// pointer-move hit testing.
	hover ContainerID
}

func newController(reg *Registry, sched *Scheduler, profiles map[string]*Profile, rng *rand.Rand, logger *log.Logger) *Controller {
	return &Controller{
		registry: reg,
		sched:    sched,
		profiles: profiles,
		fallback: ProfileJitter,
		rng:      rng,
		logger:   logger,
	}
}

// profileFor resolves a container's profile, falling back to jitter.
func (c *Controller) profileFor(cont *Container) *Profile {
	if p, ok := c.profiles[cont.Profile]; ok {
		return p
	}
	return c.profiles[c.fallback]
}

// Enter activates container id. It returns ErrMissingTarget, without
// changing state, when the container has no units.
func (c *Controller) Enter(id ContainerID) error {
	cont := c.registry.Container(id)
	if cont == nil {
		return fmt.Errorf("enter container %d: %w", id, ErrMissingTarget)
	}
	if cont.state == StateActive {
		return nil
	}
	if len(cont.units) == 0 {
		return fmt.Errorf("enter container %q: %w", cont.Name, ErrMissingTarget)
	}

	prof := c.profileFor(cont)
	c.transition(cont, StateActive)
	c.sched.Animate(unitSubjects(cont), func(i int, _ Transform) Transform {
		return Generate(prof, i, c.rng)
	}, PropsAll, prof.EnterTiming())
	return nil
}

// Leave returns container id to idle. Every unit animates toward Neutral
// from whatever its live value is at this instant.
func (c *Controller) Leave(id ContainerID) error {
	cont := c.registry.Container(id)
	if cont == nil {
		return fmt.Errorf("leave container %d: %w", id, ErrMissingTarget)
	}
	if cont.state == StateIdle {
		return nil
	}
	if len(cont.units) == 0 {
		return fmt.Errorf("leave container %q: %w", cont.Name, ErrMissingTarget)
	}

	prof := c.profileFor(cont)
	c.transition(cont, StateIdle)
	c.sched.Animate(unitSubjects(cont), func(int, Transform) Transform {
		return Neutral
	}, PropsAll, prof.ExitTiming())
	return nil
}

// Hover hit-tests a page-space pointer position against container bounds
// and fires leave/enter when the hovered container changes.
func (c *Controller) Hover(x, y float64) {
	var target ContainerID
	c.registry.Each(func(cont *Container) {
		if cont.Bounds.Width > 0 && cont.Bounds.Contains(x, y) {
			target = cont.ID
		}
	})
	if target == c.hover {
		return
	}
	if c.hover != 0 {
		c.report(c.Leave(c.hover))
	}
	if target != 0 {
		c.report(c.Enter(target))
	}
	c.hover = target
}

func (c *Controller) transition(cont *Container, to State) {
	from := cont.state
	cont.state = to
	if c.layers != nil {
		if l := c.layers.Lookup(cont.Name); l != nil {
			if to == StateActive {
				l.AddClass(ClassScatterActive)
			} else {
				l.RemoveClass(ClassScatterActive)
			}
		}
	}
	c.logger.Debug("container state", "container", cont.Name, "from", from, "to", to)
	if c.sink != nil {
		c.sink.EmitEvent(Notice{
			Kind:      NoticeStateChange,
			Container: cont.ID,
			Name:      cont.Name,
			From:      from,
			To:        to,
			Time:      c.sched.Now(),
		})
	}
}

// report logs a trigger error. Missing targets are expected for empty
// containers and are logged at debug level only.
func (c *Controller) report(err error) {
	if err == nil {
		return
	}
	if isMissingTarget(err) {
		c.logger.Debug("trigger skipped", "err", err)
		return
	}
	c.logger.Warn("trigger failed", "err", err)
}

func unitSubjects(cont *Container) []Subject {
	subjects := make([]Subject, len(cont.units))
	for i := range cont.units {
		subjects[i] = Subject{Target: UnitTarget(cont.ID, i), State: &cont.units[i].Current}
	}
	return subjects
}

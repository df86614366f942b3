package ecs

import (
	"github.com/phanxgames/wisp"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// NoticeEventType is the Donburi event type for wisp notices. Subscribe to
// it in your ECS systems to follow state changes, cues and reveals.
var NoticeEventType = events.NewEventType[wisp.Notice]()

// ContainerState mirrors one container's trigger state.
type ContainerState struct {
	ID      wisp.ContainerID
	Name    string
	State   wisp.State
	Changed float64 // scheduler clock of the last transition
	Enters  int
}

// ContainerComponent holds a ContainerState on the entity created for each
// container the first time it changes state.
var ContainerComponent = donburi.NewComponentType[ContainerState]()

// DonburiSink is a wisp.EventSink backed by a Donburi world.
type DonburiSink struct {
	world    donburi.World
	entities map[wisp.ContainerID]donburi.Entity
}

// NewDonburiSink creates a sink publishing to world. Notices are queued;
// call NoticeEventType.ProcessEvents (or events.ProcessAllEvents) to
// deliver them.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{world: world, entities: make(map[wisp.ContainerID]donburi.Entity)}
}

func (s *DonburiSink) EmitEvent(n wisp.Notice) {
	if n.Kind == wisp.NoticeStateChange {
		s.track(n)
	}
	NoticeEventType.Publish(s.world, n)
}

// Entity returns the entity tracking container id.
func (s *DonburiSink) Entity(id wisp.ContainerID) (donburi.Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

func (s *DonburiSink) track(n wisp.Notice) {
	ent, ok := s.entities[n.Container]
	if !ok {
		ent = s.world.Create(ContainerComponent)
		s.entities[n.Container] = ent
		ContainerComponent.SetValue(s.world.Entry(ent), ContainerState{ID: n.Container, Name: n.Name})
	}
	st := ContainerComponent.Get(s.world.Entry(ent))
	st.State = n.To
	st.Changed = n.Time
	if n.To == wisp.StateActive {
		st.Enters++
	}
}

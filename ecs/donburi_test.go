package ecs

import (
	"testing"

	"github.com/phanxgames/wisp"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink wisp.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []wisp.Notice
	NoticeEventType.Subscribe(world, func(w donburi.World, n wisp.Notice) {
		received = append(received, n)
	})

	sink.EmitEvent(wisp.Notice{Kind: wisp.NoticeStateChange, Container: 3, Name: "hero-title", From: wisp.StateIdle, To: wisp.StateActive, Time: 1.5})
	sink.EmitEvent(wisp.Notice{Kind: wisp.NoticeCue, Name: "projector-active"})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("expected queued events, got %d delivered", len(received))
	}
	NoticeEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 notices, got %d", len(received))
	}
	if received[0].Container != 3 || received[0].To != wisp.StateActive {
		t.Errorf("notice 0: %+v", received[0])
	}
	if received[1].Kind != wisp.NoticeCue || received[1].Name != "projector-active" {
		t.Errorf("notice 1: %+v", received[1])
	}
}

func TestDonburiSink_TracksContainerState(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	sink.EmitEvent(wisp.Notice{Kind: wisp.NoticeStateChange, Container: 1, Name: "about", From: wisp.StateIdle, To: wisp.StateActive, Time: 0.5})
	sink.EmitEvent(wisp.Notice{Kind: wisp.NoticeStateChange, Container: 1, Name: "about", From: wisp.StateActive, To: wisp.StateIdle, Time: 0.9})
	sink.EmitEvent(wisp.Notice{Kind: wisp.NoticeStateChange, Container: 1, Name: "about", From: wisp.StateIdle, To: wisp.StateActive, Time: 1.2})

	ent, ok := sink.Entity(1)
	if !ok {
		t.Fatal("no entity for container 1")
	}
	st := ContainerComponent.Get(world.Entry(ent))
	if st.Name != "about" || st.State != wisp.StateActive {
		t.Errorf("state = %+v", *st)
	}
	if st.Enters != 2 {
		t.Errorf("Enters = %d, want 2", st.Enters)
	}
	if st.Changed != 1.2 {
		t.Errorf("Changed = %v, want 1.2", st.Changed)
	}
}

func TestDonburiSink_EngineIntegration(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	e, err := wisp.New(wisp.Config{Seed: 1}, wisp.WithEventSink(sink))
	if err != nil {
		t.Fatal(err)
	}
	c, err := e.AddContainer(wisp.ContainerSpec{Name: "hi", Content: []wisp.Segment{wisp.Text("hi")}})
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	var count int
	NoticeEventType.Subscribe(world, func(w donburi.World, n wisp.Notice) {
		if n.Kind == wisp.NoticeStateChange {
			count++
		}
	})
	e.Dispatch(wisp.PointerEnter(c.ID))
	e.Dispatch(wisp.PointerLeave(c.ID))
	events.ProcessAllEvents(world)

	if count != 2 {
		t.Errorf("state notices = %d, want 2", count)
	}
}

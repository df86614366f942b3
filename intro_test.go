package wisp

import "testing"

func TestDefaultEntrance(t *testing.T) {
	s := newTestScheduler()
	layers := NewLayers()
	nav := layers.Add(LayerNavbar, Rect{})
	title := layers.Add(LayerHeroTitle, Rect{})
	sub := layers.Add(LayerHeroSubtitle, Rect{})

	e := DefaultEntrance(nav, title, sub)
	e.start(s)
	if nav.Transform.Opacity != 0 || nav.Transform.Y != -10 || sub.Transform.Opacity != 0 {
		t.Fatalf("layers not held at From: nav=%+v sub=%+v", nav.Transform, sub.Transform)
	}

	var cues []string
	emit := func(c Cue) { cues = append(cues, c.Name) }
	for i := 0; i < 31; i++ {
		e.update(1.0/60, emit)
		s.Update(1.0 / 60)
	}
	if len(cues) != 1 || cues[0] != "projector-active" {
		t.Fatalf("cues after 31 frames = %v", cues)
	}
	if !title.HasClass("projector-active") {
		t.Error("title missing projector class")
	}
	if nav.Transform.Opacity != 0 {
		t.Error("navbar started before its delay")
	}

	for i := 0; i < 300; i++ {
		e.update(1.0/60, emit)
		s.Update(1.0 / 60)
	}
	if nav.Transform != Neutral || sub.Transform != Neutral {
		t.Errorf("nav=%+v sub=%+v, want neutral", nav.Transform, sub.Transform)
	}
	if len(cues) != 1 {
		t.Errorf("cue fired %d times", len(cues))
	}
	assertNear(t, "elapsed", e.Elapsed(), 331.0/60)
}

func TestEntranceSkipsNilLayers(t *testing.T) {
	e := DefaultEntrance(nil, nil, nil)
	if len(e.Steps) != 0 || len(e.Cues) != 0 {
		t.Errorf("steps=%d cues=%d", len(e.Steps), len(e.Cues))
	}
	called := false
	e.update(1, func(Cue) { called = true })
	if called {
		t.Error("unstarted entrance emitted a cue")
	}
}

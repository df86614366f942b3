package wisp

import (
	"errors"
	"testing"
)

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		in   string
		want Anchor
		ok   bool
	}{
		{"top 70%", Anchor{0, 0.7}, true},
		{"top bottom", Anchor{0, 1}, true},
		{"bottom top", Anchor{1, 0}, true},
		{"center center", Anchor{0.5, 0.5}, true},
		{"25% 100%", Anchor{0.25, 1}, true},
		{"top", Anchor{}, false},
		{"top middle", Anchor{}, false},
		{"x% top", Anchor{}, false},
		{"top 10% extra", Anchor{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAnchor(tt.in)
			if !tt.ok {
				if !errors.Is(err, ErrConfiguration) {
					t.Errorf("err = %v, want ErrConfiguration", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			assertNear(t, "element", got.Element, tt.want.Element)
			assertNear(t, "viewport", got.Viewport, tt.want.Viewport)
		})
	}
}

// parallax returns the page's parallax-text coupling over a trigger at
// y=1000 of height 600 in an 800px viewport. It starts at scroll 200 and
// ends at scroll 1600.
func parallax(l *Layer) *ScrollCoupling {
	return &ScrollCoupling{
		Name:    "parallax",
		Trigger: Rect{0, 1000, 1000, 600},
		Start:   MustAnchor("top bottom"),
		End:     MustAnchor("bottom top"),
		Layer:   l,
		From:    Neutral,
		To:      Transform{Y: -100, Scale: 1, Opacity: 1},
		Props:   PropsOf(PropY),
	}
}

func TestScrollProgress(t *testing.T) {
	sc := parallax(nil)
	tests := []struct {
		scroll, want float64
	}{
		{0, 0},
		{200, 0},
		{900, 0.5},
		{1600, 1},
		{5000, 1},
	}
	for _, tt := range tests {
		assertNear(t, "progress", sc.Progress(tt.scroll, 800), tt.want)
	}

	sc.Invert = true
	assertNear(t, "inverted start", sc.Progress(200, 800), 1)
	assertNear(t, "inverted end", sc.Progress(1600, 800), 0)
}

func TestScrollProgressDegenerate(t *testing.T) {
	sc := &ScrollCoupling{
		Trigger: Rect{0, 500, 100, 0},
		Start:   MustAnchor("top top"),
		End:     MustAnchor("top top"),
	}
	if p := sc.Progress(499, 800); p != 0 {
		t.Errorf("before = %v", p)
	}
	if p := sc.Progress(500, 800); p != 1 {
		t.Errorf("at = %v", p)
	}
}

func TestScrollCouplingApply(t *testing.T) {
	s := newTestScheduler()
	layers := NewLayers()
	l := layers.Add(LayerParallaxText, Rect{})
	vp := NewViewport(1000, 800)
	sc := parallax(l)

	vp.SetScroll(900)
	sc.apply(s, vp)
	assertNear(t, "direct y", l.Transform.Y, -50)
	if s.Len() != 0 {
		t.Error("unscrubbed coupling scheduled a task")
	}

	// The coupling is a pure function of scroll: scrolling back restores it.
	vp.SetScroll(200)
	sc.apply(s, vp)
	assertNear(t, "restored y", l.Transform.Y, 0)

	sc.Scrub = 1.5
	vp.SetScroll(1600)
	sc.apply(s, vp)
	if len(s.Tasks(LayerTarget(l.ID))) != 1 {
		t.Fatal("scrubbed coupling did not schedule a catch-up task")
	}
	s.Update(0.1)
	if y := l.Transform.Y; y >= 0 || y <= -100 {
		t.Errorf("scrub y = %v, want strictly between -100 and 0", y)
	}
	// Repeated scroll events overwrite rather than stack.
	sc.apply(s, vp)
	sc.apply(s, vp)
	if len(s.Tasks(LayerTarget(l.ID))) != 1 {
		t.Error("scrub tasks stacked")
	}
	s.Update(2)
	if l.Transform.Y != -100 {
		t.Errorf("settled y = %v", l.Transform.Y)
	}
}

func TestScrollRevealFiresOnce(t *testing.T) {
	s := newTestScheduler()
	layers := NewLayers()
	a := layers.Add("a", Rect{})
	b := layers.Add("b", Rect{})
	r := &ScrollReveal{
		Name:     "skills",
		Trigger:  Rect{0, 1600, 1000, 480},
		Start:    MustAnchor("top 85%"),
		Layers:   []*Layer{a, nil, b},
		From:     Transform{Y: 50, Scale: 1, Opacity: 0},
		Props:    PropsOf(PropY, PropOpacity),
		Duration: 0.6,
		Stagger:  0.05,
		Ease:     MustEase("back.out(1.7)"),
	}
	vp := NewViewport(1000, 800)

	r.prime(s)
	if a.Transform.Y != 50 || b.Transform.Opacity != 0 {
		t.Fatalf("prime did not hold layers at From: %+v", a.Transform)
	}

	// Fires when scroll reaches 1600 - 0.85*800 = 920.
	vp.SetScroll(919)
	if r.check(s, vp) {
		t.Error("fired before anchor")
	}
	vp.SetScroll(920)
	if !r.check(s, vp) || !r.Fired() {
		t.Fatal("did not fire at anchor")
	}
	if r.check(s, vp) {
		t.Error("fired twice")
	}

	s.Update(1)
	for _, l := range []*Layer{a, b} {
		if l.Transform != Neutral {
			t.Errorf("%s = %+v, want neutral", l.Name, l.Transform)
		}
	}

	// Scrolling back does not replay.
	vp.SetScroll(0)
	if r.check(s, vp) || s.Len() != 0 {
		t.Error("reveal replayed after scrolling back")
	}
}

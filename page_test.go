package wisp

import "testing"

func newTestPage(t *testing.T) (*Engine, *PageHandles, *recordSink) {
	t.Helper()
	e, sink := newTestEngine(t)
	h, err := BuildPage(e, DefaultPage(1000, 800))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	return e, h, sink
}

func hasNotice(sink *recordSink, kind NoticeKind, name string) bool {
	for _, n := range sink.notices {
		if n.Kind == kind && n.Name == name {
			return true
		}
	}
	return false
}

func TestBuildPageWiring(t *testing.T) {
	e, h, _ := newTestPage(t)

	if got := h.Headline.Text(); got != "Creative\nDeveloper" {
		t.Errorf("headline text = %q", got)
	}
	if h.Headline.NumUnits() != 17 || h.Headline.Profile != ProfileSmoke {
		t.Errorf("headline units=%d profile=%q", h.Headline.NumUnits(), h.Headline.Profile)
	}
	for _, c := range h.Scatter {
		if c.Profile != ProfileJitter {
			t.Errorf("%s profile = %q", c.Name, c.Profile)
		}
	}
	if len(h.Skills) != 6 || len(h.Projects) != 3 || len(h.Links) != 3 {
		t.Errorf("skills=%d projects=%d links=%d", len(h.Skills), len(h.Projects), len(h.Links))
	}
	for _, l := range append(append([]*Layer{}, h.Skills...), h.Projects...) {
		if !l.Interactive {
			t.Errorf("%s not interactive", l.Name)
		}
	}
	if len(e.Couplings()) != 1 || len(e.Reveals()) != 3 || e.Entrance() != h.Entrance {
		t.Error("scroll wiring missing")
	}
	if e.Cursor().Foreground != h.Title || e.Cursor().Background != h.Background {
		t.Error("parallax layers not bound")
	}
	if e.Viewport().MaxScroll() != 2080 {
		t.Errorf("MaxScroll = %v", e.Viewport().MaxScroll())
	}

	// Reveal layers are held hidden until their trigger is crossed.
	if h.AboutVisual.Transform.Opacity != 0 || h.Skills[0].Transform.Y != 50 {
		t.Errorf("reveals not primed: about=%+v skill=%+v", h.AboutVisual.Transform, h.Skills[0].Transform)
	}
}

func TestPageRevealsOnScroll(t *testing.T) {
	e, h, sink := newTestPage(t)

	// about: 800 - 0.7*800 = 240.
	e.Dispatch(Scroll(239))
	if h.AboutReveal.Fired() {
		t.Fatal("about fired early")
	}
	e.Dispatch(Scroll(241))
	if !h.AboutReveal.Fired() || !hasNotice(sink, NoticeReveal, LayerAboutVisual) {
		t.Fatal("about did not fire")
	}

	// A jump past both skills (920) and projects (1440) fires both.
	e.Dispatch(Scroll(2000))
	if !h.SkillsReveal.Fired() || !h.ProjectsReveal.Fired() {
		t.Fatal("skills/projects did not fire")
	}
	step(e, 180)
	for _, l := range append([]*Layer{h.AboutVisual}, h.Skills...) {
		if l.Transform != Neutral {
			t.Errorf("%s = %+v, want neutral", l.Name, l.Transform)
		}
	}
	// The parallax text has scrubbed to its end.
	if h.ParallaxText.Transform.Y != -100 {
		t.Errorf("parallax y = %v", h.ParallaxText.Transform.Y)
	}

	e.Dispatch(Scroll(0))
	step(e, 180)
	if h.ParallaxText.Transform.Y != 0 {
		t.Errorf("parallax y after scrolling back = %v", h.ParallaxText.Transform.Y)
	}
	if h.AboutVisual.Transform != Neutral {
		t.Error("reveal replayed")
	}
}

func TestPageEntrance(t *testing.T) {
	e, h, sink := newTestPage(t)
	if h.Navbar.Transform.Opacity != 0 || h.Subtitle.Transform.Opacity != 0 {
		t.Fatal("entrance layers not hidden on start")
	}
	step(e, 31)
	if !hasNotice(sink, NoticeCue, "projector-active") || !h.Title.HasClass("projector-active") {
		t.Error("projector cue missing at 0.5s")
	}
	step(e, 300)
	if h.Navbar.Transform != Neutral || h.Subtitle.Transform != Neutral {
		t.Errorf("navbar=%+v subtitle=%+v", h.Navbar.Transform, h.Subtitle.Transform)
	}
}

func TestPageHeadlineHover(t *testing.T) {
	e, h, sink := newTestPage(t)
	// Headline bounds are (150, 240) to (850, 440).
	e.Dispatch(PointerMove(500, 300))
	if h.Headline.State() != StateActive {
		t.Fatal("headline not active")
	}
	if !hasNotice(sink, NoticeStateChange, ContainerHeadline) {
		t.Error("no state notice")
	}
	if !h.Title.HasClass(ClassScatterActive) {
		t.Error("carrier missing scatter-active while hovered")
	}
	step(e, 12)
	e.Dispatch(PointerMove(500, 700))
	if h.Headline.State() != StateIdle {
		t.Fatal("headline not idle")
	}
	if h.Title.HasClass(ClassScatterActive) {
		t.Error("scatter-active left on the carrier after leave")
	}
	step(e, 120)
	for i, u := range h.Headline.Units() {
		if u.Current != Neutral {
			t.Errorf("unit %d = %+v", i, u.Current)
		}
	}
}

func TestPageCursorOverSkill(t *testing.T) {
	e, h, _ := newTestPage(t)
	e.Dispatch(Scroll(1000))
	// Let the skills reveal settle; until then the card is painted lower.
	step(e, 60)
	// skill-go spans page y 1760 to 1840; client y 780 at scroll 1000.
	e.Dispatch(PointerMove(200, 780))
	if e.Cursor().Hovered() != h.Skills[0] {
		t.Fatalf("hovered = %v", e.Cursor().Hovered())
	}
	if !h.Follower.HasClass("active") {
		t.Error("follower not active")
	}
	step(e, 60)
	if h.Dot.Transform.Scale != 0.5 {
		t.Errorf("dot scale = %v", h.Dot.Transform.Scale)
	}
	if h.Dot.Transform.X != 200 || h.Dot.Transform.Y != 780 {
		t.Errorf("dot at (%v, %v), want client (200, 780)", h.Dot.Transform.X, h.Dot.Transform.Y)
	}
}

func TestPageNavLinkGlides(t *testing.T) {
	e, h, sink := newTestPage(t)
	vp := e.Viewport()
	for _, l := range h.Links {
		if !l.Fixed || !l.Interactive {
			t.Errorf("%s fixed=%v interactive=%v", l.Name, l.Fixed, l.Interactive)
		}
	}

	// nav-skills spans client x 720 to 820, y 16 to 48.
	e.Dispatch(Click(770, 30))
	if !vp.Scrolling() {
		t.Fatal("click did not start a smooth scroll")
	}
	step(e, 6)
	if vp.ScrollY <= 0 || vp.ScrollY >= 1600 {
		t.Errorf("mid-glide ScrollY = %v", vp.ScrollY)
	}
	step(e, 60)
	if vp.Scrolling() || vp.ScrollY != 1600 {
		t.Fatalf("ScrollY = %v scrolling=%v, want 1600 at rest", vp.ScrollY, vp.Scrolling())
	}
	// Scroll-driven effects follow the glide.
	if !hasNotice(sink, NoticeReveal, "skills") || !hasNotice(sink, NoticeReveal, LayerAboutVisual) {
		t.Error("reveals did not fire during the glide")
	}
	if h.ParallaxText.Transform.Y >= 0 {
		t.Errorf("parallax y = %v, want moving up", h.ParallaxText.Transform.Y)
	}

	// The links stay under the pointer at any scroll offset.
	e.Dispatch(Click(650, 30)) // nav-about
	step(e, 60)
	if vp.ScrollY != 800 {
		t.Errorf("ScrollY = %v, want 800", vp.ScrollY)
	}
}

func TestPageScrollCancelsGlide(t *testing.T) {
	e, _, _ := newTestPage(t)
	vp := e.Viewport()
	e.Dispatch(Click(890, 30)) // nav-projects
	step(e, 5)
	e.Dispatch(Scroll(100))
	if vp.Scrolling() {
		t.Fatal("scroll event did not cancel the glide")
	}
	step(e, 60)
	if vp.ScrollY != 100 {
		t.Errorf("ScrollY = %v, want 100", vp.ScrollY)
	}
}

func TestPageClickOffLinkIsIgnored(t *testing.T) {
	e, _, _ := newTestPage(t)
	e.Dispatch(Click(500, 500))
	if e.Viewport().Scrolling() {
		t.Error("click on the hero started a scroll")
	}
}

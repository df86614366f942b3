package wisp

import "fmt"

// Page element names.
const (
	ContainerHeadline = "hero-title"

	LayerNavbar       = "navbar"
	LayerHeroSubtitle = "hero-subtitle"
	LayerParallaxText = "parallax-text"
	LayerAboutVisual  = "about-visual"
)

// TextBlock is a text container on the page. Markup may contain <br> and
// inline elements.
type TextBlock struct {
	Name   string
	Markup string
	Bounds Rect
}

// Item is a named rectangle on the page: a skill, a project card or a link.
type Item struct {
	Name   string
	Bounds Rect
}

// Link is a navigation link pinned to the viewport. Clicking it glides the
// page to Target.
type Link struct {
	Item
	Target float64
}

// Section is a scroll-trigger region with the items revealed inside it.
type Section struct {
	Trigger Rect
	Items   []Item
}

// Page describes a portfolio page in page-space coordinates.
type Page struct {
	Width, Height float64
	ContentHeight float64

	Navbar     Rect
	Headline   TextBlock
	Subtitle   Rect
	Background Rect
	// Scatter are the jitter text blocks.
	Scatter []TextBlock

	About        Section
	ParallaxText Rect
	AboutVisual  Rect
	Skills       Section
	Projects     Section
	// Links sit in the navbar, in client space.
	Links []Link
}

// DefaultPage lays out the stock portfolio page for a w x h viewport: a
// full-height hero followed by about, skills and projects sections.
func DefaultPage(w, h float64) Page {
	about := Rect{X: 0, Y: h, Width: w, Height: h}
	skills := Rect{X: 0, Y: 2 * h, Width: w, Height: h * 0.6}
	projects := Rect{X: 0, Y: skills.Y + skills.Height, Width: w, Height: h}

	p := Page{
		Width:         w,
		Height:        h,
		ContentHeight: projects.Y + projects.Height,
		Navbar:        Rect{X: 0, Y: 0, Width: w, Height: h * 0.08},
		Headline: TextBlock{
			Name:   ContainerHeadline,
			Markup: "\n  Creative\n  <br>\n  Developer\n",
			Bounds: Rect{X: w * 0.15, Y: h * 0.3, Width: w * 0.7, Height: h * 0.25},
		},
		Subtitle:   Rect{X: w * 0.2, Y: h * 0.6, Width: w * 0.6, Height: h * 0.06},
		Background: Rect{X: 0, Y: 0, Width: w, Height: h},
		Scatter: []TextBlock{
			{Name: "about-heading", Markup: "About Me", Bounds: Rect{X: w * 0.1, Y: h * 1.1, Width: w * 0.35, Height: h * 0.08}},
			{Name: "skills-heading", Markup: "Skills", Bounds: Rect{X: w * 0.1, Y: skills.Y + h*0.05, Width: w * 0.3, Height: h * 0.08}},
			{Name: "projects-heading", Markup: "Projects", Bounds: Rect{X: w * 0.1, Y: projects.Y + h*0.05, Width: w * 0.3, Height: h * 0.08}},
		},
		About:        Section{Trigger: about},
		ParallaxText: Rect{X: w * 0.1, Y: h * 1.25, Width: w * 0.4, Height: h * 0.4},
		AboutVisual:  Rect{X: w * 0.55, Y: h * 1.2, Width: w * 0.35, Height: h * 0.5},
		Skills:       Section{Trigger: skills},
		Projects:     Section{Trigger: projects},
	}

	for i, name := range []string{"go", "rust", "webgl", "shaders", "motion", "audio"} {
		col, row := float64(i%3), float64(i/3)
		p.Skills.Items = append(p.Skills.Items, Item{
			Name:   "skill-" + name,
			Bounds: Rect{X: w*0.1 + col*w*0.28, Y: skills.Y + h*0.2 + row*h*0.15, Width: w * 0.25, Height: h * 0.1},
		})
	}
	for i, name := range []string{"Orbit", "Lumen", "Drift"} {
		p.Projects.Items = append(p.Projects.Items, Item{
			Name:   name,
			Bounds: Rect{X: w*0.05 + float64(i)*w*0.31, Y: projects.Y + h*0.2, Width: w * 0.28, Height: h * 0.6},
		})
	}
	for i, sec := range []struct {
		name string
		at   float64
	}{{"nav-about", about.Y}, {"nav-skills", skills.Y}, {"nav-projects", projects.Y}} {
		p.Links = append(p.Links, Link{
			Item: Item{
				Name:   sec.name,
				Bounds: Rect{X: w*0.6 + float64(i)*w*0.12, Y: h * 0.02, Width: w * 0.1, Height: h * 0.04},
			},
			Target: sec.at,
		})
	}
	return p
}

// PageHandles exposes everything BuildPage created.
type PageHandles struct {
	Headline *Container
	Scatter  []*Container

	Navbar       *Layer
	Title        *Layer
	Subtitle     *Layer
	Background   *Layer
	Dot          *Layer
	Follower     *Layer
	ParallaxText *Layer
	AboutVisual  *Layer
	Skills       []*Layer
	Projects     []*Layer
	Links        []*Layer

	Parallax       *ScrollCoupling
	AboutReveal    *ScrollReveal
	SkillsReveal   *ScrollReveal
	ProjectsReveal *ScrollReveal
	Entrance       *Entrance
}

// BuildPage wires a page into e: the headline and scatter containers, the
// cursor and parallax layers, the navbar scroll links, the parallax text coupling, the three section
// reveals and the entrance. Call it before Engine.Start.
func BuildPage(e *Engine, p Page) (*PageHandles, error) {
	h := &PageHandles{}
	e.viewport.Resize(p.Width, p.Height)
	e.viewport.ContentHeight = p.ContentHeight

	// Headline runs are trimmed so markup indentation does not become units.
	headline, err := containerFromMarkup(e, p.Headline, true)
	if err != nil {
		return nil, err
	}
	h.Headline = headline
	for _, tb := range p.Scatter {
		c, err := containerFromMarkup(e, tb, false)
		if err != nil {
			return nil, err
		}
		h.Scatter = append(h.Scatter, c)
	}

	add := func(name string, bounds Rect, interactive bool) (*Layer, error) {
		l, err := e.AddLayer(name, bounds)
		if err != nil {
			return nil, err
		}
		l.Interactive = interactive
		return l, nil
	}
	for _, s := range []struct {
		dst    **Layer
		name   string
		bounds Rect
	}{
		{&h.Navbar, LayerNavbar, p.Navbar},
		{&h.Title, LayerHeroTitle, p.Headline.Bounds},
		{&h.Subtitle, LayerHeroSubtitle, p.Subtitle},
		{&h.Background, LayerHeroBackground, p.Background},
		{&h.Dot, LayerCursor, Rect{}},
		{&h.Follower, LayerCursorFollower, Rect{}},
		{&h.ParallaxText, LayerParallaxText, p.ParallaxText},
		{&h.AboutVisual, LayerAboutVisual, p.AboutVisual},
	} {
		if *s.dst, err = add(s.name, s.bounds, false); err != nil {
			return nil, err
		}
	}
	for _, it := range p.Skills.Items {
		l, err := add(it.Name, it.Bounds, true)
		if err != nil {
			return nil, err
		}
		h.Skills = append(h.Skills, l)
	}
	for _, it := range p.Projects.Items {
		l, err := add(it.Name, it.Bounds, true)
		if err != nil {
			return nil, err
		}
		h.Projects = append(h.Projects, l)
	}
	h.Navbar.Fixed = true
	for _, it := range p.Links {
		l, err := add(it.Name, it.Bounds, true)
		if err != nil {
			return nil, err
		}
		l.Fixed = true
		if err := e.AddScrollLink(it.Name, it.Target); err != nil {
			return nil, err
		}
		h.Links = append(h.Links, l)
	}
	e.SetCursorLayers(h.Dot, h.Follower, h.Title, h.Background)

	h.Parallax = &ScrollCoupling{
		Name:    LayerParallaxText,
		Trigger: p.About.Trigger,
		Start:   MustAnchor("top bottom"),
		End:     MustAnchor("bottom top"),
		Layer:   h.ParallaxText,
		From:    Neutral,
		To:      Transform{Y: -100, Scale: 1, Opacity: 1},
		Props:   PropsOf(PropY),
		Scrub:   1.5,
	}
	if err := e.AddCoupling(h.Parallax); err != nil {
		return nil, err
	}

	fromY := func(y float64) Transform { return Transform{Y: y, Scale: 1, Opacity: 0} }
	h.AboutReveal = &ScrollReveal{
		Name:     LayerAboutVisual,
		Trigger:  p.About.Trigger,
		Start:    MustAnchor("top 70%"),
		Layers:   []*Layer{h.AboutVisual},
		From:     fromY(100),
		Props:    PropsOf(PropY, PropOpacity),
		Duration: 1.5,
		Ease:     MustEase("power3.out"),
	}
	h.SkillsReveal = &ScrollReveal{
		Name:     "skills",
		Trigger:  p.Skills.Trigger,
		Start:    MustAnchor("top 85%"),
		Layers:   h.Skills,
		From:     fromY(50),
		Props:    PropsOf(PropY, PropOpacity),
		Duration: 0.6,
		Stagger:  0.05,
		Ease:     MustEase("back.out(1.7)"),
	}
	h.ProjectsReveal = &ScrollReveal{
		Name:     "projects",
		Trigger:  p.Projects.Trigger,
		Start:    MustAnchor("top 80%"),
		Layers:   h.Projects,
		From:     fromY(100),
		Props:    PropsOf(PropY, PropOpacity),
		Duration: 1,
		Stagger:  0.2,
		Ease:     MustEase("power4.out"),
	}
	for _, r := range []*ScrollReveal{h.AboutReveal, h.SkillsReveal, h.ProjectsReveal} {
		if err := e.AddReveal(r); err != nil {
			return nil, err
		}
	}

	h.Entrance = DefaultEntrance(h.Navbar, h.Title, h.Subtitle)
	e.SetEntrance(h.Entrance)
	return h, nil
}

func containerFromMarkup(e *Engine, tb TextBlock, trim bool) (*Container, error) {
	segs, err := ParseMarkup(tb.Markup)
	if err != nil {
		return nil, fmt.Errorf("container %q: %w", tb.Name, err)
	}
	return e.AddContainer(ContainerSpec{Name: tb.Name, Content: segs, Trim: trim, Bounds: tb.Bounds})
}

// Package wisp is a headless, event-driven text and layer animation engine.
//
// Wisp splits text into per-grapheme units, scatters them with randomized
// transforms when the pointer enters a container, and settles them back when
// it leaves. Around that core it drives pointer-coupled layers (a cursor dot,
// a lagging follower, parallax backgrounds), scroll-linked couplings and
// one-shot scroll reveals. Rendering is left to sinks; see wisp/display for
// an [Ebitengine] window and wisp/term for a terminal.
//
// # Quick start
//
//	e, err := wisp.New(wisp.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	page, err := wisp.BuildPage(e, wisp.DefaultPage(1280, 720))
//	if err != nil {
//		return err
//	}
//	_ = e.Start()
//
//	// every input event
//	e.Dispatch(wisp.PointerMove(x, y))
//
//	// every frame
//	e.Update(dt)
//	for _, u := range page.Headline.Units() {
//		paint(u.Glyph, u.Current)
//	}
//
// # Containers and units
//
// A [Container] owns the [CharacterUnit]s decomposed from its content by
// [Split]. Breaks and inline elements are kept as [Structural] children and
// never become units. Each unit carries a live [Transform]; only the
// [Scheduler] writes it.
//
// # Profiles
//
// A [Profile] bounds the random targets generated on enter. Two are built
// in: jitter (small symmetric scatter) and smoke (rising, expanding, fading
// and blurring). Profiles are configured in TOML or YAML, see [Config].
//
// # Scheduling
//
// Every animation is an [AnimationTask] driven by [gween] tweens. A new task
// on a target strips the overlapping properties from older tasks on the
// same target, so fast input never accumulates work and the latest trigger
// always wins. All tasks advance from one [Engine.Update] call per frame.
//
// # Notices
//
// State changes, entrance cues and reveals can be forwarded to an
// [EventSink]; wisp/ecs bridges them into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package wisp

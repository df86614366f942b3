package wisp

// Inject queues an event for delivery by a later Update. One queued event
// is dispatched per frame, before animations advance, so scripted input
// interleaves with the clock the way live input does.
func (e *Engine) Inject(ev Event) {
	e.injectQueue = append(e.injectQueue, ev)
}

// InjectSweep queues pointer moves from (fromX, fromY) to (toX, toY),
// linearly interpolated over frames events. Minimum frames is 2.
func (e *Engine) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		e.Inject(PointerMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t))
	}
}

// Pending returns the number of injected events not yet dispatched.
func (e *Engine) Pending() int {
	return len(e.injectQueue)
}

// processInjected pops and dispatches one queued event. It reports whether
// an event was consumed.
func (e *Engine) processInjected() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	ev := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]
	e.Dispatch(ev)
	return true
}

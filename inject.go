package caribou

type syntheticKind uint8

const (
	synthMove syntheticKind = iota
	synthPress
	synthRelease
	synthKeyDown
	synthKeyUp
	synthText
)

// syntheticEvent is a single injected input event. Pointer coordinates are
// in root space, the same space PointerMove takes.
type syntheticEvent struct {
	kind   syntheticKind
	x, y   float64
	button MouseButton
	key    KeyEvent
	text   string
}

// InjectMove queues a pointer move to (x, y). Injected events are consumed
// one per Update.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthMove, x: x, y: y})
}

// InjectPress queues a move to (x, y) followed by a press of b. The move
// puts the target in the hover set so the press reaches it.
func (s *Scene) InjectPress(x, y float64, b MouseButton) {
	s.InjectMove(x, y)
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthPress, x: x, y: y, button: b})
}

// InjectRelease queues a release of b at (x, y).
func (s *Scene) InjectRelease(x, y float64, b MouseButton) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthRelease, x: x, y: y, button: b})
}

// InjectClick is a convenience that queues a primary press followed by a
// release at the same coordinates. Consumes three frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y, MouseButtonPrimary)
	s.InjectRelease(x, y, MouseButtonPrimary)
}

// InjectKey queues a press and release of k.
func (s *Scene) InjectKey(k Key, mods KeyModifiers) {
	ev := KeyEvent{Key: k, Modifiers: mods}
	s.injectQueue = append(s.injectQueue,
		syntheticEvent{kind: synthKeyDown, key: ev},
		syntheticEvent{kind: synthKeyUp, key: ev})
}

// InjectText queues a text commit.
func (s *Scene) InjectText(text string) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthText, text: text})
}

// PendingInjections returns the number of queued synthetic events.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the regular entry points. Reports whether an event was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	ev := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch ev.kind {
	case synthMove:
		s.PointerMove(ev.x, ev.y)
	case synthPress:
		s.ButtonDown(ev.button)
	case synthRelease:
		s.ButtonUp(ev.button)
	case synthKeyDown:
		s.KeyDown(ev.key)
	case synthKeyUp:
		s.KeyUp(ev.key)
	case synthText:
		s.Commit(ev.text)
	}
	return true
}

package caribou

import (
	"log/slog"
	"sync"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, actions of watched widgets are forwarded to it.
type EntityStore interface {
	EmitAction(event ActionEvent)
}

// ActionEvent carries a widget action for the ECS bridge.
type ActionEvent struct {
	WidgetID uint32
	Name     string
	Payload  any
}

// Scene is the UI context. It owns the root widget, the focus manager and
// the scene-level keyboard events, and it is the target of redraw requests.
// Everything except Post must be called from the goroutine that drives the
// scene.
type Scene struct {
	root  *Widget
	focus *FocusManager
	store EntityStore
	debug bool

	// hub owns the scene-level events below.
	hub *Widget

	// OnKeyDown receives every key press. The default listener circulates
	// focus on Tab and forwards everything else to the focused widget.
	OnKeyDown *SignalOf[KeyEvent]
	// OnKeyUp receives every key release. The default listener forwards it
	// to the focused widget.
	OnKeyUp   *SignalOf[KeyEvent]
	OnPreEdit *SignalOf[string]
	OnCommit  *SignalOf[string]

	// Redraw state
	redraw     int
	redrawSink func()

	// Cross-goroutine task queue drained by Update.
	mu     sync.Mutex
	posted []func()

	logger *slog.Logger

	// Pointer state as last reported by the platform.
	pointerInside bool
	cursor        Vec2

	// Synthetic input and scripted tests
	injectQueue     []syntheticEvent
	testRunner      *TestRunner
	screenshotQueue []string
}

// NewScene creates a scene with a root layout and an empty focus manager.
func NewScene() *Scene {
	s := &Scene{logger: slog.Default()}
	s.root = NewLayout("root")
	s.focus = NewFocusManager(s.logger)

	s.hub = NewWidget("scene")
	s.OnKeyDown = NewSignalOf[KeyEvent](s.hub)
	s.OnKeyUp = NewSignalOf[KeyEvent](s.hub)
	s.OnPreEdit = NewSignalOf[string](s.hub)
	s.OnCommit = NewSignalOf[string](s.hub)

	s.OnKeyDown.Subscribe(func(_ *Widget, ev KeyEvent) {
		if ev.Key == KeyTab {
			s.focus.Circulate()
			return
		}
		if f := s.focus.Focused(); f != nil {
			f.OnKeyDown.Broadcast(ev)
		}
	})
	s.OnKeyUp.Subscribe(func(_ *Widget, ev KeyEvent) {
		if f := s.focus.Focused(); f != nil {
			f.OnKeyUp.Broadcast(ev)
		}
	})
	s.OnPreEdit.Subscribe(func(_ *Widget, text string) {
		if f := s.focus.Focused(); f != nil {
			f.OnPreEdit.Broadcast(text)
		}
	})
	s.OnCommit.Subscribe(func(_ *Widget, text string) {
		if f := s.focus.Focused(); f != nil {
			f.OnCommit.Broadcast(text)
		}
	})
	return s
}

// Root returns the scene's root widget.
func (s *Scene) Root() *Widget {
	return s.root
}

// SetRoot replaces the root widget. The old root is not disposed.
func (s *Scene) SetRoot(w *Widget) {
	if w == nil {
		panic("caribou: scene root must not be nil")
	}
	s.root = w
	s.RequestRedraw()
}

// Focus returns the scene's focus manager.
func (s *Scene) Focus() *FocusManager {
	return s.focus
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *slog.Logger {
	return s.logger
}

// SetLogger replaces the logger used by the scene and its focus manager.
// A nil logger restores slog.Default().
func (s *Scene) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	s.logger = l
	s.focus.logger = l
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// Watch forwards every Action broadcast of w to the scene's EntityStore,
// if one is set at the time of the broadcast. A widget has at most one
// forwarder per scene: watching it again returns the registered handle.
// Once that handle is removed, Watch subscribes a new one.
func (s *Scene) Watch(w *Widget) Handle {
	if h, ok := w.forwarders[s]; ok && w.Action.has(h.tok) {
		return h
	}
	h := w.Action.Subscribe(func(w *Widget, payload any) {
		if s.store == nil {
			return
		}
		s.store.EmitAction(ActionEvent{WidgetID: w.ID, Name: w.Name, Payload: payload})
	})
	if w.forwarders == nil {
		w.forwarders = make(map[*Scene]Handle)
	}
	w.forwarders[s] = h
	return h
}

// SetDebugMode enables or disables debug mode. When enabled, tree operations
// on disposed widgets panic, depth and child count warnings are logged, and
// draw statistics are logged for every frame.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	if enabled {
		debugLogger = s.logger
	}
}

// globalDebug mirrors the most recently set Scene debug flag so that widget
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene.
var globalDebug bool

// --- Redraw ---

// RequestRedraw asks the platform for another paint pass. Requests are
// idempotent; the platform coalesces them.
func (s *Scene) RequestRedraw() {
	s.redraw++
	if s.redrawSink != nil {
		s.redrawSink()
	}
}

// SetRedrawSink installs a callback invoked on every redraw request.
func (s *Scene) SetRedrawSink(fn func()) {
	s.redrawSink = fn
}

// TakeRedraw reports whether a redraw was requested since the last call and
// resets the request.
func (s *Scene) TakeRedraw() bool {
	pending := s.redraw > 0
	s.redraw = 0
	return pending
}

// RedrawRequests returns the number of pending redraw requests.
func (s *Scene) RedrawRequests() int {
	return s.redraw
}

// --- Frame ---

// Post queues fn to run on the scene goroutine during the next Update.
// Safe to call from any goroutine.
func (s *Scene) Post(fn func()) {
	s.mu.Lock()
	s.posted = append(s.posted, fn)
	s.mu.Unlock()
}

func (s *Scene) drainPosted() {
	s.mu.Lock()
	tasks := s.posted
	s.posted = nil
	s.mu.Unlock()
	for _, fn := range tasks {
		fn()
	}
}

// Update runs posted tasks, advances the test runner, replays one injected
// input event and broadcasts update on the root.
func (s *Scene) Update() {
	s.drainPosted()
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjectedInput()
	s.root.OnUpdate.Broadcast()
}

// Draw broadcasts draw on the root and consolidates the results into a
// single batch.
func (s *Scene) Draw() *Batch {
	b := Consolidate(s.root.OnDraw.Broadcast())
	if s.debug {
		debugLogBatch(b)
	}
	return b
}

// Screenshot queues a labeled screenshot. The platform captures it after
// its next paint and consumes the queue with TakeScreenshots.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// TakeScreenshots returns and clears the queued screenshot labels.
func (s *Scene) TakeScreenshots() []string {
	labels := s.screenshotQueue
	s.screenshotQueue = nil
	return labels
}

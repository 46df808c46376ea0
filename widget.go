package caribou

import "weak"

// widgetIDCounter is a plain counter (no atomic; the widget tree is owned by
// one goroutine).
var widgetIDCounter uint32

func nextWidgetID() uint32 {
	widgetIDCounter++
	return widgetIDCounter
}

// Widget is the node type of the scene graph. Every widget carries the same
// set of properties and events; flavors such as Layout or Button subscribe
// to the events and keep their private state in Data.
type Widget struct {
	// Identity
	ID   uint32
	Name string

	// Generic
	Position *Property[Vec2]
	Size     *Property[Vec2]
	Enabled  *Property[bool]

	// Hierarchy. Children and Content are owning; Parent is weak.
	Parent   *Property[Ref]
	Content  *Property[*Widget]
	Children *ListProperty[*Widget]

	// Appearance
	Background *Property[Brush]
	Foreground *Property[Brush]
	Border     *Property[Brush]
	Font       *Property[Font]

	// Flavor state
	Data *Property[Payload]

	// Action carries a flavor-defined payload, e.g. a button click.
	Action *SignalOf[any]

	// Render and update
	OnDraw   *Event[*Batch]
	OnUpdate *Signal

	// Pointer buttons
	OnPrimaryDown   *Signal
	OnPrimaryUp     *Signal
	OnSecondaryDown *Signal
	OnSecondaryUp   *Signal
	OnTertiaryDown  *Signal
	OnTertiaryUp    *Signal

	// Pointer motion. OnMouseMove receives widget-local coordinates.
	OnMouseMove  *SignalOf[Point]
	OnMouseEnter *Signal
	OnMouseLeave *Signal

	// Focus. Any listener returning false refuses the transition.
	OnGainFocus *VetoEvent
	OnLoseFocus *VetoEvent

	// Keyboard and text input
	OnKeyDown *SignalOf[KeyEvent]
	OnKeyUp   *SignalOf[KeyEvent]
	OnPreEdit *SignalOf[string]
	OnCommit  *SignalOf[string]

	// forwarders holds the Action listener each scene installed with Watch.
	forwarders map[*Scene]Handle

	disposed bool
}

// NewWidget creates a bare widget. The node is allocated first so every
// property and event can be handed a weak reference to it; nothing inside
// the widget holds it strongly.
func NewWidget(name string) *Widget {
	w := &Widget{ID: nextWidgetID(), Name: name}
	back := weak.Make(w)

	w.Position = newProperty(back, Vec2{})
	w.Size = newProperty(back, Vec2{})
	w.Enabled = newProperty(back, true)

	w.Parent = newProperty(back, Ref{})
	w.Content = newProperty[*Widget](back, nil)
	w.Children = newListProperty[*Widget](back)

	w.Background = newProperty(back, TransparentBrush())
	w.Foreground = newProperty(back, TransparentBrush())
	w.Border = newProperty(back, TransparentBrush())
	w.Font = newProperty(back, DefaultFont())

	w.Data = newProperty[Payload](back, nil)

	w.Action = &SignalOf[any]{}
	w.OnDraw = &Event[*Batch]{}
	w.OnUpdate = &Signal{}
	w.OnPrimaryDown = &Signal{}
	w.OnPrimaryUp = &Signal{}
	w.OnSecondaryDown = &Signal{}
	w.OnSecondaryUp = &Signal{}
	w.OnTertiaryDown = &Signal{}
	w.OnTertiaryUp = &Signal{}
	w.OnMouseMove = &SignalOf[Point]{}
	w.OnMouseEnter = &Signal{}
	w.OnMouseLeave = &Signal{}
	w.OnGainFocus = &VetoEvent{}
	w.OnLoseFocus = &VetoEvent{}
	w.OnKeyDown = &SignalOf[KeyEvent]{}
	w.OnKeyUp = &SignalOf[KeyEvent]{}
	w.OnPreEdit = &SignalOf[string]{}
	w.OnCommit = &SignalOf[string]{}

	w.Action.bind(back)
	w.OnDraw.bind(back)
	w.OnUpdate.bind(back)
	for _, s := range w.buttonSignals() {
		s.bind(back)
	}
	w.OnMouseMove.bind(back)
	w.OnMouseEnter.bind(back)
	w.OnMouseLeave.bind(back)
	w.OnGainFocus.bind(back)
	w.OnLoseFocus.bind(back)
	w.OnKeyDown.bind(back)
	w.OnKeyUp.bind(back)
	w.OnPreEdit.bind(back)
	w.OnCommit.bind(back)
	return w
}

func (w *Widget) buttonSignals() []*Signal {
	return []*Signal{
		w.OnPrimaryDown, w.OnPrimaryUp,
		w.OnSecondaryDown, w.OnSecondaryUp,
		w.OnTertiaryDown, w.OnTertiaryUp,
	}
}

// ButtonDown returns the down signal for b.
func (w *Widget) ButtonDown(b MouseButton) *Signal {
	switch b {
	case MouseButtonSecondary:
		return w.OnSecondaryDown
	case MouseButtonTertiary:
		return w.OnTertiaryDown
	default:
		return w.OnPrimaryDown
	}
}

// ButtonUp returns the up signal for b.
func (w *Widget) ButtonUp(b MouseButton) *Signal {
	switch b {
	case MouseButtonSecondary:
		return w.OnSecondaryUp
	case MouseButtonTertiary:
		return w.OnTertiaryUp
	default:
		return w.OnPrimaryUp
	}
}

// Bounds returns the widget's region in its parent's coordinate space.
func (w *Widget) Bounds() Region {
	return RegionOf(w.Position.Get(), w.Size.Get())
}

// IsEnabled reports the value of the Enabled property.
func (w *Widget) IsEnabled() bool {
	return w.Enabled.Get()
}

// ParentWidget returns the parent, or nil if there is none or it is gone.
func (w *Widget) ParentWidget() *Widget {
	return w.Parent.Get().Acquire()
}

// --- Tree manipulation ---

// AddChild appends child to this widget's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this widget (cycle).
func (w *Widget) AddChild(child *Widget) {
	w.checkAdoptable(child, "AddChild")
	child.RemoveFromParent()
	child.Parent.Set(RefTo(w))
	w.Children.Push(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(w)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild. The index is checked
// against the current children before child is detached from anywhere. When
// child already belongs to w, index names a slot in the current list, so
// AddChildAt(child, Children.Len()) moves it to the end.
func (w *Widget) AddChildAt(child *Widget, index int) {
	w.checkAdoptable(child, "AddChildAt")
	if index < 0 || index > w.Children.Len() {
		panic("caribou: child index out of range")
	}
	if old := w.childIndex(child); old >= 0 && old < index {
		index--
	}
	child.RemoveFromParent()
	child.Parent.Set(RefTo(w))
	w.Children.Insert(index, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(w)
	}
}

// RemoveChild detaches child from this widget.
// Panics if child is not a child of w.
func (w *Widget) RemoveChild(child *Widget) {
	if globalDebug {
		debugCheckDisposed(w, "RemoveChild (parent)")
	}
	i := w.childIndex(child)
	if i < 0 {
		panic("caribou: child's parent is not this widget")
	}
	w.Children.Remove(i)
	child.Parent.Set(Ref{})
}

// RemoveChildren detaches all children. Children are not disposed.
func (w *Widget) RemoveChildren() {
	for _, child := range w.Children.Items() {
		child.Parent.Set(Ref{})
	}
	w.Children.Clear()
}

// SetContent replaces the single content widget. Pass nil to clear it.
func (w *Widget) SetContent(content *Widget) {
	if content != nil {
		w.checkAdoptable(content, "SetContent")
		content.RemoveFromParent()
	}
	if old := w.Content.Get(); old != nil && old != content {
		old.Parent.Set(Ref{})
	}
	if content != nil {
		content.Parent.Set(RefTo(w))
	}
	w.Content.Set(content)
}

// RemoveFromParent detaches this widget from its parent's children or
// content slot. No-op if it has no live parent.
func (w *Widget) RemoveFromParent() {
	p := w.ParentWidget()
	if p == nil {
		if !w.Parent.Get().IsZero() {
			w.Parent.Set(Ref{})
		}
		return
	}
	if p.Content.Get() == w {
		p.Content.Set(nil)
		w.Parent.Set(Ref{})
		return
	}
	if i := p.childIndex(w); i >= 0 {
		p.Children.Remove(i)
	}
	w.Parent.Set(Ref{})
}

func (w *Widget) checkAdoptable(child *Widget, op string) {
	if child == nil {
		panic("caribou: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(w, op+" (parent)")
		debugCheckDisposed(child, op+" (child)")
	}
	if isAncestor(child, w) {
		panic("caribou: adding child would create a cycle")
	}
}

func (w *Widget) childIndex(child *Widget) int {
	for i, c := range w.Children.value {
		if c == child {
			return i
		}
	}
	return -1
}

// --- Disposal ---

// Dispose detaches the widget from its parent, marks it and its subtree as
// disposed and drops all listeners. Every Ref to a disposed widget fails to
// acquire from then on.
func (w *Widget) Dispose() {
	if w.disposed {
		return
	}
	w.RemoveFromParent()
	w.dispose()
}

func (w *Widget) dispose() {
	w.disposed = true
	for _, child := range w.Children.value {
		child.dispose()
	}
	if c := w.Content.value; c != nil {
		c.dispose()
	}
	w.Children.value = nil
	w.Content.value = nil
	w.Parent.value = Ref{}
	w.Data.value = nil

	w.Position.clearListeners()
	w.Size.clearListeners()
	w.Enabled.clearListeners()
	w.Parent.clearListeners()
	w.Content.clearListeners()
	w.Children.clearListeners()
	w.Background.clearListeners()
	w.Foreground.clearListeners()
	w.Border.clearListeners()
	w.Font.clearListeners()
	w.Data.clearListeners()

	w.Action.clear()
	w.OnDraw.clear()
	w.OnUpdate.clear()
	for _, s := range w.buttonSignals() {
		s.clear()
	}
	w.OnMouseMove.clear()
	w.OnMouseEnter.clear()
	w.OnMouseLeave.clear()
	w.OnGainFocus.clear()
	w.OnLoseFocus.clear()
	w.OnKeyDown.clear()
	w.OnKeyUp.clear()
	w.OnPreEdit.clear()
	w.OnCommit.clear()
}

// IsDisposed returns true if this widget has been disposed.
func (w *Widget) IsDisposed() bool {
	return w.disposed
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Widget) bool {
	for p := node; p != nil; p = p.ParentWidget() {
		if p == candidate {
			return true
		}
	}
	return false
}

package caribou

import "log/slog"

// FocusManager tracks the focused widget and the tab orders used to move
// focus with the Tab key. It holds only weak references.
type FocusManager struct {
	manual  Refs
	auto    Refs
	focused Ref
	logger  *slog.Logger
}

// NewFocusManager returns an empty focus manager. A nil logger uses
// slog.Default().
func NewFocusManager(logger *slog.Logger) *FocusManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &FocusManager{logger: logger}
}

// RegisterAuto appends w to the automatic tab order. Stock widgets register
// themselves on creation.
func (f *FocusManager) RegisterAuto(w *Widget) {
	f.auto = append(f.auto, RefTo(w))
}

// SetManualOrder replaces the manual tab order. While the manual order has
// live entries it takes precedence over the automatic one.
func (f *FocusManager) SetManualOrder(ws ...*Widget) {
	f.manual = f.manual[:0]
	for _, w := range ws {
		f.manual = append(f.manual, RefTo(w))
	}
}

// AppendManual appends w to the manual tab order.
func (f *FocusManager) AppendManual(w *Widget) {
	f.manual = append(f.manual, RefTo(w))
}

// ManualOrder returns the live widgets of the manual tab order.
func (f *FocusManager) ManualOrder() []*Widget {
	return f.manual.Widgets()
}

// AutoOrder returns the live widgets of the automatic tab order.
func (f *FocusManager) AutoOrder() []*Widget {
	return f.auto.Widgets()
}

// Focused returns the focused widget, or nil.
func (f *FocusManager) Focused() *Widget {
	return f.focused.Acquire()
}

// SetFocused points the focus slot at w without consulting any focus
// listeners. Pass nil to clear it.
func (f *FocusManager) SetFocused(w *Widget) {
	f.focused = RefTo(w)
}

// Clear empties the focus slot.
func (f *FocusManager) Clear() {
	f.focused = Ref{}
}

// Circulate moves focus to the next widget of the active tab order that
// accepts it. The manual order is active when non-empty, else the automatic
// one. It reports false when the focused widget refuses to yield or when no
// widget accepts focus.
//
// If the focused widget yields but no candidate accepts, it keeps focus when
// it accepted it back. A widget outside the active order is offered focus
// back once after the walk; one inside it was already asked by the walk.
// Otherwise the slot is cleared.
func (f *FocusManager) Circulate() bool {
	f.manual.Purge()
	f.auto.Purge()

	order := f.manual
	if len(order) == 0 {
		order = f.auto
	}
	if len(order) == 0 {
		f.focused = Ref{}
		return true
	}

	start := 0
	prevInOrder := false
	prev := f.focused.Acquire()
	if prev != nil {
		if prev.OnLoseFocus.AnyFalse() {
			f.logger.Debug("focus kept", "widget", prev.Name, "id", prev.ID)
			return false
		}
		if i := order.Index(prev); i >= 0 {
			start = (i + 1) % len(order)
			prevInOrder = true
		}
	}

	// Snapshot so listeners that edit the tab order do not disturb the walk.
	candidates := append(Refs(nil), order...)
	for n := range len(candidates) {
		w := candidates[(start+n)%len(candidates)].Acquire()
		if w == nil {
			continue
		}
		if w.OnGainFocus.NoneFalse() {
			f.focused = RefTo(w)
			f.logger.Debug("focus moved", "widget", w.Name, "id", w.ID)
			return true
		}
	}

	// A widget in the order was already offered focus by the walk.
	if prev != nil && !prevInOrder && !prev.disposed && prev.OnGainFocus.NoneFalse() {
		f.focused = RefTo(prev)
		f.logger.Debug("focus restored", "widget", prev.Name, "id", prev.ID)
	} else {
		f.focused = Ref{}
		f.logger.Debug("focus cleared")
	}
	return false
}

package caribou

import "weak"

// Ref is a weak reference to a widget. Observers such as hover sets, tab
// orders and the focus slot hold Refs so they never keep a widget alive.
// The zero Ref refers to nothing.
type Ref struct {
	p weak.Pointer[Widget]
}

// RefTo returns a weak reference to w. RefTo(nil) is the zero Ref.
func RefTo(w *Widget) Ref {
	if w == nil {
		return Ref{}
	}
	return Ref{p: weak.Make(w)}
}

// Acquire returns the widget, or nil if it was collected or disposed.
func (r Ref) Acquire() *Widget {
	w := r.p.Value()
	if w == nil || w.disposed {
		return nil
	}
	return w
}

// Alive reports whether the widget can still be acquired.
func (r Ref) Alive() bool {
	return r.Acquire() != nil
}

// IsZero reports whether r was never pointed at a widget.
func (r Ref) IsZero() bool {
	return r == Ref{}
}

// Is reports whether r refers to w, whether or not w is still alive.
func (r Ref) Is(w *Widget) bool {
	return w != nil && r.p == weak.Make(w)
}

// Refs is an ordered list of weak widget references.
type Refs []Ref

// Purge drops every reference whose widget is gone.
func (rs *Refs) Purge() {
	kept := (*rs)[:0]
	for _, r := range *rs {
		if r.Alive() {
			kept = append(kept, r)
		}
	}
	clear((*rs)[len(kept):])
	*rs = kept
}

// Widgets returns the live widgets in order, skipping dead references.
func (rs Refs) Widgets() []*Widget {
	out := make([]*Widget, 0, len(rs))
	for _, r := range rs {
		if w := r.Acquire(); w != nil {
			out = append(out, w)
		}
	}
	return out
}

// Contains reports whether w is referenced and alive.
func (rs Refs) Contains(w *Widget) bool {
	return rs.Index(w) >= 0
}

// ContainsRef reports whether a reference to the same widget as r is present.
func (rs Refs) ContainsRef(r Ref) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}

// Index returns the position of w, or -1 if w is absent or dead.
func (rs Refs) Index(w *Widget) int {
	if w == nil || w.disposed {
		return -1
	}
	for i, r := range rs {
		if r.Is(w) {
			return i
		}
	}
	return -1
}

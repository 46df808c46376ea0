package caribou

import (
	"slices"
	"weak"
)

// Property is an observable value owned by exactly one widget. Listeners are
// told about a new value before it is stored, in subscription order.
type Property[T any] struct {
	value     T
	listeners []listener[func(T)]
	owner     weak.Pointer[Widget]
}

// NewProperty creates a property owned by w holding initial.
func NewProperty[T any](w *Widget, initial T) *Property[T] {
	return newProperty(weak.Make(w), initial)
}

func newProperty[T any](owner weak.Pointer[Widget], initial T) *Property[T] {
	return &Property[T]{value: initial, owner: owner}
}

// Get returns the current value.
func (p *Property[T]) Get() T {
	return p.value
}

// Set notifies every listener with v, then stores it. A listener that reads
// the property sees the previous value.
func (p *Property[T]) Set(v T) {
	p.notify(v)
	p.value = v
}

// Update stores fn applied to the current value.
func (p *Property[T]) Update(fn func(T) T) {
	p.Set(fn(p.value))
}

// Reset stores the zero value of T.
func (p *Property[T]) Reset() {
	var zero T
	p.Set(zero)
}

// Inform re-broadcasts the current value without changing it. Used after
// in-place mutation such as editing a child list.
func (p *Property[T]) Inform() {
	p.notify(p.value)
}

// Listen subscribes fn to changes.
func (p *Property[T]) Listen(fn func(T)) Handle {
	tok := newToken()
	p.listeners = append(p.listeners, listener[func(T)]{tok: tok, fn: fn})
	return Handle{tok: tok, remove: p.unlisten}
}

// Unlisten removes the listener identified by h, keeping the order of the
// remaining listeners.
func (p *Property[T]) Unlisten(h Handle) bool {
	if h.tok == nil {
		return false
	}
	return p.unlisten(h.tok)
}

func (p *Property[T]) unlisten(tok *token) bool {
	n := len(p.listeners)
	p.listeners = slices.DeleteFunc(p.listeners, func(l listener[func(T)]) bool {
		return l.tok == tok
	})
	return len(p.listeners) != n
}

// Listeners returns the number of subscribed listeners.
func (p *Property[T]) Listeners() int {
	return len(p.listeners)
}

// Owner returns the owning widget, or nil if it is gone.
func (p *Property[T]) Owner() *Widget {
	w := p.owner.Value()
	if w == nil || w.disposed {
		return nil
	}
	return w
}

func (p *Property[T]) notify(v T) {
	if len(p.listeners) == 0 {
		return
	}
	fns := make([]func(T), len(p.listeners))
	for i := range p.listeners {
		fns[i] = p.listeners[i].fn
	}
	for _, fn := range fns {
		fn(v)
	}
}

func (p *Property[T]) clearListeners() {
	p.listeners = nil
}

// Toggle flips a boolean property.
func Toggle(p *Property[bool]) {
	p.Set(!p.Get())
}

// ListProperty is a Property holding a slice. Every mutation is followed by
// Inform so listeners see the new contents.
type ListProperty[T any] struct {
	Property[[]T]
}

// NewListProperty creates an empty list property owned by w.
func NewListProperty[T any](w *Widget) *ListProperty[T] {
	return newListProperty[T](weak.Make(w))
}

func newListProperty[T any](owner weak.Pointer[Widget]) *ListProperty[T] {
	return &ListProperty[T]{Property: Property[[]T]{owner: owner}}
}

// Len returns the number of items.
func (l *ListProperty[T]) Len() int {
	return len(l.value)
}

// At returns the item at index i.
func (l *ListProperty[T]) At(i int) T {
	return l.value[i]
}

// Items returns a copy of the items.
func (l *ListProperty[T]) Items() []T {
	return slices.Clone(l.value)
}

// Push appends v.
func (l *ListProperty[T]) Push(v T) {
	l.value = append(l.value, v)
	l.Inform()
}

// Pop removes and returns the last item. Reports false if the list is empty.
func (l *ListProperty[T]) Pop() (T, bool) {
	var zero T
	n := len(l.value)
	if n == 0 {
		return zero, false
	}
	v := l.value[n-1]
	l.value[n-1] = zero
	l.value = l.value[:n-1]
	l.Inform()
	return v, true
}

// Insert places v at index i, shifting later items right.
// Panics if i is out of range.
func (l *ListProperty[T]) Insert(i int, v T) {
	if i < 0 || i > len(l.value) {
		panic("caribou: list index out of range")
	}
	l.value = slices.Insert(l.value, i, v)
	l.Inform()
}

// Remove deletes and returns the item at index i.
// Panics if i is out of range.
func (l *ListProperty[T]) Remove(i int) T {
	if i < 0 || i >= len(l.value) {
		panic("caribou: list index out of range")
	}
	v := l.value[i]
	l.value = slices.Delete(l.value, i, i+1)
	l.Inform()
	return v
}

// Clear removes every item.
func (l *ListProperty[T]) Clear() {
	clear(l.value)
	l.value = l.value[:0]
	l.Inform()
}

// Payload is the private state a widget flavor (Layout, Button, TextField,
// or a third-party flavor) installs in its widget's Data property.
type Payload interface {
	Flavor() string
}

// PayloadAs returns the payload stored in p as T. It reports false when no
// payload is stored or the stored payload has a different concrete type.
func PayloadAs[T Payload](p *Property[Payload]) (T, bool) {
	v, ok := p.Get().(T)
	return v, ok
}

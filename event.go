package caribou

import "weak"

// token gives a subscription its identity. It must not be zero-sized so that
// distinct tokens never share an address.
type token struct {
	seq uint64
}

var tokenCounter uint64

func newToken() *token {
	tokenCounter++
	return &token{seq: tokenCounter}
}

// Handle identifies a listener registered with Subscribe or Listen.
// The zero Handle matches nothing.
type Handle struct {
	tok    *token
	remove func(*token) bool
}

// Remove unregisters the listener. Reports whether it was still registered.
func (h Handle) Remove() bool {
	if h.remove == nil {
		return false
	}
	return h.remove(h.tok)
}

type listener[F any] struct {
	tok *token
	fn  F
}

// listeners is the shared core of every event shape: an ordered list of
// callbacks and a weak reference to the widget that owns them.
type listeners[F any] struct {
	owner   weak.Pointer[Widget]
	entries []listener[F]
}

func (l *listeners[F]) bind(owner weak.Pointer[Widget]) {
	l.owner = owner
}

func (l *listeners[F]) add(fn F) Handle {
	tok := newToken()
	l.entries = append(l.entries, listener[F]{tok: tok, fn: fn})
	return Handle{tok: tok, remove: l.removeToken}
}

// removeToken drops the first entry matching tok by swap-remove. The entry
// that was last takes the removed slot.
func (l *listeners[F]) removeToken(tok *token) bool {
	for i := range l.entries {
		if l.entries[i].tok == tok {
			last := len(l.entries) - 1
			l.entries[i] = l.entries[last]
			l.entries[last] = listener[F]{}
			l.entries = l.entries[:last]
			return true
		}
	}
	return false
}

// Unsubscribe removes the listener identified by h. Reports whether it was found.
func (l *listeners[F]) Unsubscribe(h Handle) bool {
	if h.tok == nil {
		return false
	}
	return l.removeToken(h.tok)
}

// Len returns the number of subscribed listeners.
func (l *listeners[F]) Len() int {
	return len(l.entries)
}

// has reports whether the listener identified by tok is still registered.
func (l *listeners[F]) has(tok *token) bool {
	for i := range l.entries {
		if l.entries[i].tok == tok {
			return true
		}
	}
	return false
}

func (l *listeners[F]) clear() {
	l.entries = nil
}

// snapshot copies the callbacks so listeners may subscribe or unsubscribe
// during a broadcast without disturbing it.
func (l *listeners[F]) snapshot() []F {
	if len(l.entries) == 0 {
		return nil
	}
	fns := make([]F, len(l.entries))
	for i := range l.entries {
		fns[i] = l.entries[i].fn
	}
	return fns
}

// acquire upgrades the owner reference. An event must never outlive its
// owner, so a dead owner is a programming error.
func (l *listeners[F]) acquire() *Widget {
	w := l.owner.Value()
	if w == nil || w.disposed {
		panic("caribou: broadcast on disposed widget")
	}
	return w
}

// Event is a zero-argument broadcast whose listeners each return a result.
type Event[R any] struct {
	listeners[func(*Widget) R]
}

// NewEvent creates an Event owned by w.
func NewEvent[R any](w *Widget) *Event[R] {
	e := &Event[R]{}
	e.bind(weak.Make(w))
	return e
}

// Subscribe appends fn to the listener list.
func (e *Event[R]) Subscribe(fn func(*Widget) R) Handle {
	return e.add(fn)
}

// Broadcast invokes every listener in subscription order and returns their
// results in the same order.
func (e *Event[R]) Broadcast() []R {
	fns := e.snapshot()
	if len(fns) == 0 {
		return nil
	}
	w := e.acquire()
	results := make([]R, 0, len(fns))
	for _, fn := range fns {
		results = append(results, fn(w))
	}
	return results
}

// EventOf is a single-argument broadcast whose listeners each return a result.
type EventOf[A, R any] struct {
	listeners[func(*Widget, A) R]
}

// NewEventOf creates an EventOf owned by w.
func NewEventOf[A, R any](w *Widget) *EventOf[A, R] {
	e := &EventOf[A, R]{}
	e.bind(weak.Make(w))
	return e
}

// Subscribe appends fn to the listener list.
func (e *EventOf[A, R]) Subscribe(fn func(*Widget, A) R) Handle {
	return e.add(fn)
}

// Broadcast passes a copy of arg to every listener in subscription order and
// returns their results in the same order.
func (e *EventOf[A, R]) Broadcast(arg A) []R {
	fns := e.snapshot()
	if len(fns) == 0 {
		return nil
	}
	w := e.acquire()
	results := make([]R, 0, len(fns))
	for _, fn := range fns {
		results = append(results, fn(w, arg))
	}
	return results
}

// Signal is a zero-argument broadcast with no results.
type Signal struct {
	listeners[func(*Widget)]
}

// NewSignal creates a Signal owned by w.
func NewSignal(w *Widget) *Signal {
	s := &Signal{}
	s.bind(weak.Make(w))
	return s
}

// Subscribe appends fn to the listener list.
func (s *Signal) Subscribe(fn func(*Widget)) Handle {
	return s.add(fn)
}

// Broadcast invokes every listener in subscription order and returns how
// many were invoked.
func (s *Signal) Broadcast() int {
	fns := s.snapshot()
	if len(fns) == 0 {
		return 0
	}
	w := s.acquire()
	for _, fn := range fns {
		fn(w)
	}
	return len(fns)
}

// SignalOf is a single-argument broadcast with no results.
type SignalOf[A any] struct {
	listeners[func(*Widget, A)]
}

// NewSignalOf creates a SignalOf owned by w.
func NewSignalOf[A any](w *Widget) *SignalOf[A] {
	s := &SignalOf[A]{}
	s.bind(weak.Make(w))
	return s
}

// Subscribe appends fn to the listener list.
func (s *SignalOf[A]) Subscribe(fn func(*Widget, A)) Handle {
	return s.add(fn)
}

// Broadcast passes a copy of arg to every listener in subscription order and
// returns how many were invoked.
func (s *SignalOf[A]) Broadcast(arg A) int {
	fns := s.snapshot()
	if len(fns) == 0 {
		return 0
	}
	w := s.acquire()
	for _, fn := range fns {
		fn(w, arg)
	}
	return len(fns)
}

// VetoEvent is a boolean event used for transitions any listener may refuse,
// such as gaining or losing focus.
type VetoEvent struct {
	Event[bool]
}

// NewVetoEvent creates a VetoEvent owned by w.
func NewVetoEvent(w *Widget) *VetoEvent {
	e := &VetoEvent{}
	e.bind(weak.Make(w))
	return e
}

// AnyTrue broadcasts and reports whether any listener returned true.
func (e *VetoEvent) AnyTrue() bool {
	return anyIs(e.Broadcast(), true)
}

// AnyFalse broadcasts and reports whether any listener returned false.
func (e *VetoEvent) AnyFalse() bool {
	return anyIs(e.Broadcast(), false)
}

// NoneTrue broadcasts and reports whether no listener returned true.
func (e *VetoEvent) NoneTrue() bool {
	return !anyIs(e.Broadcast(), true)
}

// NoneFalse broadcasts and reports whether no listener returned false.
// With no listeners the transition is accepted.
func (e *VetoEvent) NoneFalse() bool {
	return !anyIs(e.Broadcast(), false)
}

func anyIs(results []bool, want bool) bool {
	for _, r := range results {
		if r == want {
			return true
		}
	}
	return false
}

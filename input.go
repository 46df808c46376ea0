package caribou

import (
	"strconv"
	"strings"
)

// Key is a symbolic, layout-independent key identifier.
type Key uint16

const (
	KeyUnknown Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyTab
	KeyReturn
	KeySpace
	KeyNumpadEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyLeft
	KeyRight
	KeyUp
	KeyDown

	KeyShift
	KeyControl
	KeyAlt
	KeyMeta

	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown:     "Unknown",
	KeyTab:         "Tab",
	KeyReturn:      "Return",
	KeySpace:       "Space",
	KeyNumpadEnter: "NumpadEnter",
	KeyEscape:      "Escape",
	KeyBackspace:   "Backspace",
	KeyDelete:      "Delete",
	KeyInsert:      "Insert",
	KeyHome:        "Home",
	KeyEnd:         "End",
	KeyPageUp:      "PageUp",
	KeyPageDown:    "PageDown",
	KeyLeft:        "Left",
	KeyRight:       "Right",
	KeyUp:          "Up",
	KeyDown:        "Down",
	KeyShift:       "Shift",
	KeyControl:     "Control",
	KeyAlt:         "Alt",
	KeyMeta:        "Meta",
}

func init() {
	for k := KeyA; k <= KeyZ; k++ {
		keyNames[k] = string(rune('A' + int(k-KeyA)))
	}
	for k := Key0; k <= Key9; k++ {
		keyNames[k] = string(rune('0' + int(k-Key0)))
	}
	for k := KeyF1; k <= KeyF12; k++ {
		keyNames[k] = "F" + strconv.Itoa(int(k-KeyF1)+1)
	}
}

func (k Key) String() string {
	if k >= keyCount {
		return "Unknown"
	}
	return keyNames[k]
}

// ParseKey maps a key name as returned by Key.String back to the key.
// Matching is case-insensitive. Reports false for unknown names.
func ParseKey(name string) (Key, bool) {
	for k := KeyUnknown + 1; k < keyCount; k++ {
		if strings.EqualFold(keyNames[k], name) {
			return k, true
		}
	}
	return KeyUnknown, false
}

// IsActivation reports whether k activates a focused button.
func (k Key) IsActivation() bool {
	return k == KeyReturn || k == KeySpace || k == KeyNumpadEnter
}

// KeyEvent is a key press or release.
type KeyEvent struct {
	Key       Key
	Modifiers KeyModifiers
	Repeat    bool
}

// --- Platform entry points ---

// PointerMove reports the pointer at (x, y) in root coordinates.
func (s *Scene) PointerMove(x, y float64) {
	s.cursor = Vec2{x, y}
	s.root.OnMouseMove.Broadcast(s.cursor.Point())
}

// PointerEnter reports that the pointer entered the window.
func (s *Scene) PointerEnter() {
	s.pointerInside = true
	s.root.OnMouseEnter.Broadcast()
}

// PointerLeave reports that the pointer left the window.
func (s *Scene) PointerLeave() {
	s.pointerInside = false
	s.root.OnMouseLeave.Broadcast()
}

// PointerInside reports whether the pointer is inside the window.
func (s *Scene) PointerInside() bool {
	return s.pointerInside
}

// Cursor returns the last reported pointer position.
func (s *Scene) Cursor() Vec2 {
	return s.cursor
}

// ButtonDown reports a pointer button press.
func (s *Scene) ButtonDown(b MouseButton) {
	s.root.ButtonDown(b).Broadcast()
}

// ButtonUp reports a pointer button release.
func (s *Scene) ButtonUp(b MouseButton) {
	s.root.ButtonUp(b).Broadcast()
}

// KeyDown reports a key press.
func (s *Scene) KeyDown(ev KeyEvent) {
	s.OnKeyDown.Broadcast(ev)
}

// KeyUp reports a key release.
func (s *Scene) KeyUp(ev KeyEvent) {
	s.OnKeyUp.Broadcast(ev)
}

// PreEdit reports the current IME composition string.
func (s *Scene) PreEdit(text string) {
	s.OnPreEdit.Broadcast(text)
}

// Commit reports committed text input.
func (s *Scene) Commit(text string) {
	s.OnCommit.Broadcast(text)
}

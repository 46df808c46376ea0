package ebitenbackend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/caribou"
)

// inputSink is the part of caribou.Scene the poller drives.
type inputSink interface {
	PointerMove(x, y float64)
	PointerEnter()
	PointerLeave()
	ButtonDown(b caribou.MouseButton)
	ButtonUp(b caribou.MouseButton)
	KeyDown(ev caribou.KeyEvent)
	KeyUp(ev caribou.KeyEvent)
	textSink
}

// frameInput is the raw input of one tick, captured from Ebitengine.
type frameInput struct {
	cursorX, cursorY int
	width, height    int
	pressed          []caribou.MouseButton
	released         []caribou.MouseButton
	keysDown         []ebiten.Key
	keysRepeat       []ebiten.Key
	keysUp           []ebiten.Key
	mods             caribou.KeyModifiers
	chars            []rune
}

// yieldText drops the tick's text for the IME field. Key presses go too
// while a composition is in progress, since the IME consumes them.
func (f *frameInput) yieldText(composing bool) {
	f.chars = nil
	if composing {
		f.keysDown = nil
		f.keysRepeat = nil
	}
}

// poller turns per-tick Ebitengine state into scene entry point calls.
type poller struct {
	inside     bool
	seen       bool
	lastX      int
	lastY      int
	keyBuf     []ebiten.Key
	releaseBuf []ebiten.Key
	repeatBuf  []ebiten.Key
	charBuf    []rune
}

var mouseButtons = [...]struct {
	eb ebiten.MouseButton
	cb caribou.MouseButton
}{
	{ebiten.MouseButtonLeft, caribou.MouseButtonPrimary},
	{ebiten.MouseButtonRight, caribou.MouseButtonSecondary},
	{ebiten.MouseButtonMiddle, caribou.MouseButtonTertiary},
}

// Key repeat timing in ticks.
const (
	repeatDelay    = 30
	repeatInterval = 4
)

// capture reads the current Ebitengine input state.
func (p *poller) capture(width, height int) frameInput {
	f := frameInput{width: width, height: height}
	f.cursorX, f.cursorY = ebiten.CursorPosition()
	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.eb) {
			f.pressed = append(f.pressed, mb.cb)
		}
		if inpututil.IsMouseButtonJustReleased(mb.eb) {
			f.released = append(f.released, mb.cb)
		}
	}
	p.keyBuf = inpututil.AppendJustPressedKeys(p.keyBuf[:0])
	p.releaseBuf = inpututil.AppendJustReleasedKeys(p.releaseBuf[:0])
	p.repeatBuf = p.repeatBuf[:0]
	for _, k := range repeatableKeys {
		if d := inpututil.KeyPressDuration(k); d > repeatDelay && (d-repeatDelay)%repeatInterval == 0 {
			p.repeatBuf = append(p.repeatBuf, k)
		}
	}
	f.keysDown = p.keyBuf
	f.keysUp = p.releaseBuf
	f.keysRepeat = p.repeatBuf
	f.mods = modifiers(ebiten.IsKeyPressed)
	p.charBuf = ebiten.AppendInputChars(p.charBuf[:0])
	f.chars = p.charBuf
	return f
}

// apply feeds one frame of input to sink.
func (p *poller) apply(sink inputSink, f frameInput) {
	inside := f.cursorX >= 0 && f.cursorY >= 0 && f.cursorX < f.width && f.cursorY < f.height
	switch {
	case inside && !p.inside:
		sink.PointerEnter()
		sink.PointerMove(float64(f.cursorX), float64(f.cursorY))
	case inside && (!p.seen || f.cursorX != p.lastX || f.cursorY != p.lastY):
		sink.PointerMove(float64(f.cursorX), float64(f.cursorY))
	case !inside && p.inside:
		sink.PointerLeave()
	}
	p.inside = inside
	p.seen = true
	p.lastX, p.lastY = f.cursorX, f.cursorY

	for _, b := range f.pressed {
		sink.ButtonDown(b)
	}
	for _, b := range f.released {
		sink.ButtonUp(b)
	}

	for _, k := range f.keysDown {
		if ck, ok := translateKey(k); ok {
			sink.KeyDown(caribou.KeyEvent{Key: ck, Modifiers: f.mods})
		}
	}
	for _, k := range f.keysRepeat {
		if ck, ok := translateKey(k); ok {
			sink.KeyDown(caribou.KeyEvent{Key: ck, Modifiers: f.mods, Repeat: true})
		}
	}
	for _, k := range f.keysUp {
		if ck, ok := translateKey(k); ok {
			sink.KeyUp(caribou.KeyEvent{Key: ck, Modifiers: f.mods})
		}
	}
	if len(f.chars) > 0 {
		sink.Commit(string(f.chars))
	}
}

// modifiers reports the held modifier keys using isPressed.
func modifiers(isPressed func(ebiten.Key) bool) caribou.KeyModifiers {
	var m caribou.KeyModifiers
	if isPressed(ebiten.KeyShift) {
		m |= caribou.ModShift
	}
	if isPressed(ebiten.KeyControl) {
		m |= caribou.ModCtrl
	}
	if isPressed(ebiten.KeyAlt) {
		m |= caribou.ModAlt
	}
	if isPressed(ebiten.KeyMeta) {
		m |= caribou.ModMeta
	}
	return m
}

var repeatableKeys = []ebiten.Key{
	ebiten.KeyBackspace, ebiten.KeyDelete,
	ebiten.KeyArrowLeft, ebiten.KeyArrowRight, ebiten.KeyArrowUp, ebiten.KeyArrowDown,
}

var keyTable = map[ebiten.Key]caribou.Key{
	ebiten.KeyA: caribou.KeyA,
	ebiten.KeyB: caribou.KeyB,
	ebiten.KeyC: caribou.KeyC,
	ebiten.KeyD: caribou.KeyD,
	ebiten.KeyE: caribou.KeyE,
	ebiten.KeyF: caribou.KeyF,
	ebiten.KeyG: caribou.KeyG,
	ebiten.KeyH: caribou.KeyH,
	ebiten.KeyI: caribou.KeyI,
	ebiten.KeyJ: caribou.KeyJ,
	ebiten.KeyK: caribou.KeyK,
	ebiten.KeyL: caribou.KeyL,
	ebiten.KeyM: caribou.KeyM,
	ebiten.KeyN: caribou.KeyN,
	ebiten.KeyO: caribou.KeyO,
	ebiten.KeyP: caribou.KeyP,
	ebiten.KeyQ: caribou.KeyQ,
	ebiten.KeyR: caribou.KeyR,
	ebiten.KeyS: caribou.KeyS,
	ebiten.KeyT: caribou.KeyT,
	ebiten.KeyU: caribou.KeyU,
	ebiten.KeyV: caribou.KeyV,
	ebiten.KeyW: caribou.KeyW,
	ebiten.KeyX: caribou.KeyX,
	ebiten.KeyY: caribou.KeyY,
	ebiten.KeyZ: caribou.KeyZ,

	ebiten.KeyDigit0: caribou.Key0,
	ebiten.KeyDigit1: caribou.Key1,
	ebiten.KeyDigit2: caribou.Key2,
	ebiten.KeyDigit3: caribou.Key3,
	ebiten.KeyDigit4: caribou.Key4,
	ebiten.KeyDigit5: caribou.Key5,
	ebiten.KeyDigit6: caribou.Key6,
	ebiten.KeyDigit7: caribou.Key7,
	ebiten.KeyDigit8: caribou.Key8,
	ebiten.KeyDigit9: caribou.Key9,

	ebiten.KeyF1:  caribou.KeyF1,
	ebiten.KeyF2:  caribou.KeyF2,
	ebiten.KeyF3:  caribou.KeyF3,
	ebiten.KeyF4:  caribou.KeyF4,
	ebiten.KeyF5:  caribou.KeyF5,
	ebiten.KeyF6:  caribou.KeyF6,
	ebiten.KeyF7:  caribou.KeyF7,
	ebiten.KeyF8:  caribou.KeyF8,
	ebiten.KeyF9:  caribou.KeyF9,
	ebiten.KeyF10: caribou.KeyF10,
	ebiten.KeyF11: caribou.KeyF11,
	ebiten.KeyF12: caribou.KeyF12,

	ebiten.KeyTab:          caribou.KeyTab,
	ebiten.KeyEnter:        caribou.KeyReturn,
	ebiten.KeySpace:        caribou.KeySpace,
	ebiten.KeyNumpadEnter:  caribou.KeyNumpadEnter,
	ebiten.KeyEscape:       caribou.KeyEscape,
	ebiten.KeyBackspace:    caribou.KeyBackspace,
	ebiten.KeyDelete:       caribou.KeyDelete,
	ebiten.KeyInsert:       caribou.KeyInsert,
	ebiten.KeyHome:         caribou.KeyHome,
	ebiten.KeyEnd:          caribou.KeyEnd,
	ebiten.KeyPageUp:       caribou.KeyPageUp,
	ebiten.KeyPageDown:     caribou.KeyPageDown,
	ebiten.KeyArrowLeft:    caribou.KeyLeft,
	ebiten.KeyArrowRight:   caribou.KeyRight,
	ebiten.KeyArrowUp:      caribou.KeyUp,
	ebiten.KeyArrowDown:    caribou.KeyDown,
	ebiten.KeyShiftLeft:    caribou.KeyShift,
	ebiten.KeyShiftRight:   caribou.KeyShift,
	ebiten.KeyControlLeft:  caribou.KeyControl,
	ebiten.KeyControlRight: caribou.KeyControl,
	ebiten.KeyAltLeft:      caribou.KeyAlt,
	ebiten.KeyAltRight:     caribou.KeyAlt,
	ebiten.KeyMetaLeft:     caribou.KeyMeta,
	ebiten.KeyMetaRight:    caribou.KeyMeta,
}

// translateKey maps an Ebitengine key to a caribou key.
func translateKey(k ebiten.Key) (caribou.Key, bool) {
	ck, ok := keyTable[k]
	return ck, ok
}

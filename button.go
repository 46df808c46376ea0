package caribou

const buttonFlavor = "button"

// ButtonState is the visual state of a button.
type ButtonState uint8

const (
	ButtonNormal ButtonState = iota
	ButtonHover
	ButtonPressed
)

func (s ButtonState) String() string {
	switch s {
	case ButtonNormal:
		return "normal"
	case ButtonHover:
		return "hover"
	case ButtonPressed:
		return "pressed"
	default:
		return "unknown"
	}
}

// Activation is the Action payload of a button. It tells how the button was
// activated.
type Activation uint8

const (
	ActivatedByPointer Activation = iota
	ActivatedByKeyboard
)

func (a Activation) String() string {
	if a == ActivatedByKeyboard {
		return "keyboard"
	}
	return "pointer"
}

// ButtonData is the payload of a button widget.
type ButtonData struct {
	// Text is the caption. Changing it requests a redraw.
	Text *Property[string]

	// Style events. Each draw pass broadcasts exactly one of them and
	// consolidates the results.
	DrawNormal   *Event[*Batch]
	DrawHover    *Event[*Batch]
	DrawPressed  *Event[*Batch]
	DrawDisabled *Event[*Batch]

	state   ButtonState
	focused bool
}

func (*ButtonData) Flavor() string { return buttonFlavor }

// State returns the current visual state.
func (d *ButtonData) State() ButtonState { return d.state }

// Focused reports whether the button holds focus.
func (d *ButtonData) Focused() bool { return d.focused }

// ButtonOf returns the button payload of w, or nil if w is not a button.
func ButtonOf(w *Widget) *ButtonData {
	d, _ := PayloadAs[*ButtonData](w.Data)
	return d
}

// NewButton creates a 100x30 push button bound to s and registers it in the
// automatic tab order. The button draws nothing until a style is attached,
// for example with ApplyDefaultStyle.
//
// Pointer activation fires Action only while the button is enabled.
// Keyboard activation is gated the same way.
func NewButton(s *Scene) *Widget {
	w := NewWidget("button")
	w.Size.Set(Vec2{100, 30})

	data := &ButtonData{
		Text:         NewProperty(w, "Button"),
		DrawNormal:   NewEvent[*Batch](w),
		DrawHover:    NewEvent[*Batch](w),
		DrawPressed:  NewEvent[*Batch](w),
		DrawDisabled: NewEvent[*Batch](w),
	}
	data.Text.Listen(func(string) { s.RequestRedraw() })

	w.OnDraw.Subscribe(drawButton)
	w.OnMouseEnter.Subscribe(func(w *Widget) {
		setButtonState(s, w, ButtonHover)
	})
	w.OnMouseLeave.Subscribe(func(w *Widget) {
		setButtonState(s, w, ButtonNormal)
	})
	w.OnPrimaryDown.Subscribe(func(w *Widget) {
		if !setButtonState(s, w, ButtonPressed) {
			return
		}
		s.focus.SetFocused(w)
	})
	w.OnPrimaryUp.Subscribe(func(w *Widget) {
		if !setButtonState(s, w, ButtonHover) {
			return
		}
		if w.IsEnabled() {
			w.Action.Broadcast(ActivatedByPointer)
		}
	})
	w.OnKeyDown.Subscribe(func(w *Widget, ev KeyEvent) {
		if ev.Key.IsActivation() {
			setButtonState(s, w, ButtonPressed)
		}
	})
	w.OnKeyUp.Subscribe(func(w *Widget, ev KeyEvent) {
		if !ev.Key.IsActivation() {
			return
		}
		if !setButtonState(s, w, ButtonNormal) {
			return
		}
		if w.IsEnabled() {
			w.Action.Broadcast(ActivatedByKeyboard)
		}
	})
	w.OnGainFocus.Subscribe(func(w *Widget) bool {
		d := ButtonOf(w)
		if d == nil || !w.IsEnabled() {
			return false
		}
		d.focused = true
		s.RequestRedraw()
		return true
	})
	w.OnLoseFocus.Subscribe(func(w *Widget) bool {
		if d := ButtonOf(w); d != nil {
			d.focused = false
		}
		s.RequestRedraw()
		return true
	})

	w.Data.Set(data)
	s.focus.RegisterAuto(w)
	s.Watch(w)
	return w
}

// setButtonState stores st and requests a redraw. It reports false when w
// carries no button payload.
func setButtonState(s *Scene, w *Widget, st ButtonState) bool {
	d := ButtonOf(w)
	if d == nil {
		debugMissingPayload(w, buttonFlavor)
		return false
	}
	d.state = st
	s.RequestRedraw()
	return true
}

func drawButton(w *Widget) *Batch {
	d := ButtonOf(w)
	if d == nil {
		debugMissingPayload(w, buttonFlavor)
		return NewBatch()
	}
	if !w.IsEnabled() {
		return Consolidate(d.DrawDisabled.Broadcast())
	}
	switch d.state {
	case ButtonHover:
		return Consolidate(d.DrawHover.Broadcast())
	case ButtonPressed:
		return Consolidate(d.DrawPressed.Broadcast())
	default:
		return Consolidate(d.DrawNormal.Broadcast())
	}
}

// ApplyDefaultStyle subscribes the stock look to all four style events:
// a light gray face with a black caption, darkening on hover and inverting
// when pressed. Disabled buttons get a gray caption.
func (d *ButtonData) ApplyDefaultStyle() {
	d.DrawNormal.Subscribe(buttonStyle(
		SolidColor(0.95, 0.95, 0.95, 1), SolidColor(0.95, 0.95, 0.95, 1), SolidColor(0, 0, 0, 1)))
	d.DrawHover.Subscribe(buttonStyle(
		SolidColor(0.9, 0.9, 0.9, 1), SolidColor(0.9, 0.9, 0.9, 1), SolidColor(0, 0, 0, 1)))
	d.DrawPressed.Subscribe(buttonStyle(
		SolidColor(0.3, 0.3, 0.3, 1), SolidColor(0.3, 0.3, 0.3, 1), SolidColor(1, 1, 1, 1)))
	d.DrawDisabled.Subscribe(buttonStyle(
		SolidColor(0.95, 0.95, 0.95, 1), SolidColor(0.95, 0.95, 0.95, 1), SolidColor(0.4, 0.4, 0.4, 1)))
}

func buttonStyle(border, back, caption Material) func(*Widget) *Batch {
	return func(w *Widget) *Batch {
		d := ButtonOf(w)
		if d == nil {
			return NewBatch()
		}
		size := w.Size.Get()
		frame := NewPath(RectPath(Vec2{1, 1}, size.Sub(Vec2{2, 2})))
		batch := NewBatch(DrawPath(IdentityTransform(), frame,
			Brush{Stroke: border, Fill: back, StrokeWidth: 2}))
		if d.focused {
			batch.Add(DrawPath(IdentityTransform(), frame,
				SolidStroke(SolidColor(0, 0, 0, 1), 2)))
		}
		batch.Add(DrawText(Translation(size.Scale(0.5)), d.Text.Get(), w.Font.Get(),
			TextAlignCenter, Brush{Fill: caption, StrokeWidth: 1}))
		return batch
	}
}

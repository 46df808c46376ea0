package caribou

import "unicode/utf8"

const textFieldFlavor = "textfield"

// TextFieldData is the payload of a text field widget.
type TextFieldData struct {
	Text *Property[string]

	DrawUnfocused *Event[*Batch]
	DrawFocused   *Event[*Batch]
	DrawDisabled  *Event[*Batch]

	focused bool
	preEdit *string
}

func (*TextFieldData) Flavor() string { return textFieldFlavor }

// Focused reports whether the field holds focus.
func (d *TextFieldData) Focused() bool { return d.focused }

// PreEdit returns the pending IME composition, if any.
func (d *TextFieldData) PreEdit() (string, bool) {
	if d.preEdit == nil {
		return "", false
	}
	return *d.preEdit, true
}

// TextFieldOf returns the text field payload of w, or nil if w is not a
// text field.
func TextFieldOf(w *Widget) *TextFieldData {
	d, _ := PayloadAs[*TextFieldData](w.Data)
	return d
}

// NewTextField creates a 160x30 single-line text field bound to s and
// registers it in the automatic tab order.
//
// While focused the field keeps the IME composition from OnPreEdit and
// appends committed text to Text. Backspace deletes the last rune.
func NewTextField(s *Scene) *Widget {
	w := NewWidget("textfield")
	w.Size.Set(Vec2{160, 30})

	data := &TextFieldData{
		Text:          NewProperty(w, ""),
		DrawUnfocused: NewEvent[*Batch](w),
		DrawFocused:   NewEvent[*Batch](w),
		DrawDisabled:  NewEvent[*Batch](w),
	}
	data.Text.Listen(func(string) { s.RequestRedraw() })

	w.OnDraw.Subscribe(func(w *Widget) *Batch {
		d := TextFieldOf(w)
		if d == nil {
			debugMissingPayload(w, textFieldFlavor)
			return NewBatch()
		}
		switch {
		case !w.IsEnabled():
			return Consolidate(d.DrawDisabled.Broadcast())
		case d.focused:
			return Consolidate(d.DrawFocused.Broadcast())
		default:
			return Consolidate(d.DrawUnfocused.Broadcast())
		}
	})
	w.OnPrimaryDown.Subscribe(func(w *Widget) {
		if w.IsEnabled() {
			s.focus.SetFocused(w)
		}
	})
	w.OnGainFocus.Subscribe(func(w *Widget) bool {
		d := TextFieldOf(w)
		if d == nil || !w.IsEnabled() {
			return false
		}
		d.focused = true
		s.RequestRedraw()
		return true
	})
	w.OnLoseFocus.Subscribe(func(w *Widget) bool {
		if d := TextFieldOf(w); d != nil {
			d.focused = false
			d.preEdit = nil
		}
		s.RequestRedraw()
		return true
	})
	w.OnPreEdit.Subscribe(func(w *Widget, text string) {
		d := TextFieldOf(w)
		if d == nil || !w.IsEnabled() {
			return
		}
		if text == "" {
			d.preEdit = nil
		} else {
			d.preEdit = &text
		}
		s.RequestRedraw()
	})
	w.OnCommit.Subscribe(func(w *Widget, text string) {
		d := TextFieldOf(w)
		if d == nil || !w.IsEnabled() {
			return
		}
		d.preEdit = nil
		d.Text.Set(d.Text.Get() + text)
	})
	w.OnKeyDown.Subscribe(func(w *Widget, ev KeyEvent) {
		d := TextFieldOf(w)
		if d == nil || !w.IsEnabled() || ev.Key != KeyBackspace {
			return
		}
		if t := d.Text.Get(); t != "" {
			_, n := utf8.DecodeLastRuneInString(t)
			d.Text.Set(t[:len(t)-n])
		}
	})

	w.Data.Set(data)
	s.focus.RegisterAuto(w)
	s.Watch(w)
	return w
}

// ApplyDefaultStyle subscribes the stock look: a white box with a gray
// border that turns black while focused, and the text left-aligned with
// any pending composition appended.
func (d *TextFieldData) ApplyDefaultStyle() {
	d.DrawUnfocused.Subscribe(textFieldStyle(SolidColor(0.6, 0.6, 0.6, 1), SolidColor(1, 1, 1, 1), SolidColor(0, 0, 0, 1)))
	d.DrawFocused.Subscribe(textFieldStyle(SolidColor(0, 0, 0, 1), SolidColor(1, 1, 1, 1), SolidColor(0, 0, 0, 1)))
	d.DrawDisabled.Subscribe(textFieldStyle(SolidColor(0.8, 0.8, 0.8, 1), SolidColor(0.95, 0.95, 0.95, 1), SolidColor(0.4, 0.4, 0.4, 1)))
}

func textFieldStyle(border, back, caption Material) func(*Widget) *Batch {
	return func(w *Widget) *Batch {
		d := TextFieldOf(w)
		if d == nil {
			return NewBatch()
		}
		size := w.Size.Get()
		batch := NewBatch(DrawPath(IdentityTransform(),
			NewPath(RectPath(Vec2{1, 1}, size.Sub(Vec2{2, 2}))),
			Brush{Stroke: border, Fill: back, StrokeWidth: 1}))
		text := d.Text.Get()
		if pe, ok := d.PreEdit(); ok {
			text += pe
		}
		font := w.Font.Get()
		origin := Vec2{6, (size.Y - font.Size) / 2}
		batch.Add(DrawText(Translation(origin), text, font, TextAlignOrigin, Brush{Fill: caption}))
		return batch
	}
}

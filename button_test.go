package caribou

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestButton(t *testing.T) (*Scene, *Widget, *[]any) {
	t.Helper()
	s := NewScene()
	btn := NewButton(s)
	var actions []any
	btn.Action.Subscribe(func(_ *Widget, payload any) { actions = append(actions, payload) })
	return s, btn, &actions
}

func TestButtonDefaults(t *testing.T) {
	s, btn, _ := newTestButton(t)
	d := ButtonOf(btn)
	require.NotNil(t, d)
	assert.Equal(t, "button", d.Flavor())
	assert.Equal(t, V(100, 30), btn.Size.Get())
	assert.Equal(t, "Button", d.Text.Get())
	assert.Equal(t, ButtonNormal, d.State())
	assert.False(t, d.Focused())
	assert.Equal(t, []*Widget{btn}, s.Focus().AutoOrder())
}

func TestButtonPointerStates(t *testing.T) {
	_, btn, actions := newTestButton(t)
	d := ButtonOf(btn)

	btn.OnMouseEnter.Broadcast()
	assert.Equal(t, ButtonHover, d.State())
	btn.OnPrimaryDown.Broadcast()
	assert.Equal(t, ButtonPressed, d.State())
	btn.OnPrimaryUp.Broadcast()
	assert.Equal(t, ButtonHover, d.State())
	btn.OnMouseLeave.Broadcast()
	assert.Equal(t, ButtonNormal, d.State())

	assert.Equal(t, []any{ActivatedByPointer}, *actions)
}

func TestButtonActionGatedOnEnabled(t *testing.T) {
	tests := []struct {
		enabled bool
		want    int
	}{
		{false, 0},
		{true, 1},
	}
	for _, tt := range tests {
		_, btn, actions := newTestButton(t)
		btn.Enabled.Set(tt.enabled)
		btn.OnPrimaryDown.Broadcast()
		btn.OnPrimaryUp.Broadcast()
		assert.Len(t, *actions, tt.want, "enabled=%v", tt.enabled)
	}
}

func TestButtonPressFocuses(t *testing.T) {
	s, btn, _ := newTestButton(t)
	btn.OnPrimaryDown.Broadcast()
	assert.Same(t, btn, s.Focus().Focused())
}

func TestButtonKeyboardActivation(t *testing.T) {
	_, btn, actions := newTestButton(t)
	d := ButtonOf(btn)

	for _, k := range []Key{KeyReturn, KeySpace, KeyNumpadEnter} {
		btn.OnKeyDown.Broadcast(KeyEvent{Key: k})
		assert.Equal(t, ButtonPressed, d.State(), k.String())
		btn.OnKeyUp.Broadcast(KeyEvent{Key: k})
		assert.Equal(t, ButtonNormal, d.State(), k.String())
	}
	btn.OnKeyDown.Broadcast(KeyEvent{Key: KeyA})
	btn.OnKeyUp.Broadcast(KeyEvent{Key: KeyA})
	assert.Equal(t, []any{ActivatedByKeyboard, ActivatedByKeyboard, ActivatedByKeyboard}, *actions)

	btn.Enabled.Set(false)
	btn.OnKeyDown.Broadcast(KeyEvent{Key: KeySpace})
	btn.OnKeyUp.Broadcast(KeyEvent{Key: KeySpace})
	assert.Len(t, *actions, 3)
}

func TestButtonFocusVeto(t *testing.T) {
	_, btn, _ := newTestButton(t)
	d := ButtonOf(btn)

	assert.True(t, btn.OnGainFocus.NoneFalse())
	assert.True(t, d.Focused())
	assert.True(t, btn.OnLoseFocus.NoneFalse())
	assert.False(t, d.Focused())

	btn.Enabled.Set(false)
	assert.False(t, btn.OnGainFocus.NoneFalse(), "disabled buttons refuse focus")
}

// styleMarks subscribes a single-op style per state so tests can tell which
// one was drawn.
func styleMarks(d *ButtonData) {
	d.DrawNormal.Subscribe(func(*Widget) *Batch { return NewBatch(textOp("normal")) })
	d.DrawHover.Subscribe(func(*Widget) *Batch { return NewBatch(textOp("hover")) })
	d.DrawPressed.Subscribe(func(*Widget) *Batch { return NewBatch(textOp("pressed")) })
	d.DrawDisabled.Subscribe(func(*Widget) *Batch { return NewBatch(textOp("disabled")) })
}

func drawnMark(w *Widget) string {
	b := Consolidate(w.OnDraw.Broadcast())
	if b.Len() != 1 {
		return ""
	}
	return b.Ops()[0].Text
}

func TestButtonDrawPerState(t *testing.T) {
	_, btn, _ := newTestButton(t)
	styleMarks(ButtonOf(btn))

	assert.Equal(t, "normal", drawnMark(btn))
	btn.OnMouseEnter.Broadcast()
	assert.Equal(t, "hover", drawnMark(btn))
	btn.OnPrimaryDown.Broadcast()
	assert.Equal(t, "pressed", drawnMark(btn))
}

func TestButtonDisabledDrawOverridesState(t *testing.T) {
	steps := []func(*Widget){
		func(*Widget) {},
		func(w *Widget) { w.OnMouseEnter.Broadcast() },
		func(w *Widget) { w.OnPrimaryDown.Broadcast() },
	}
	for _, step := range steps {
		_, btn, _ := newTestButton(t)
		styleMarks(ButtonOf(btn))
		step(btn)
		btn.Enabled.Set(false)
		assert.Equal(t, "disabled", drawnMark(btn), "state %v", ButtonOf(btn).State())
	}
}

func TestButtonRequestsRedraw(t *testing.T) {
	s, btn, _ := newTestButton(t)
	s.TakeRedraw()

	ButtonOf(btn).Text.Set("OK")
	assert.True(t, s.TakeRedraw())
	btn.OnMouseEnter.Broadcast()
	assert.True(t, s.TakeRedraw())
	assert.False(t, s.TakeRedraw())
}

func TestButtonWithoutPayload(t *testing.T) {
	_, btn, actions := newTestButton(t)
	btn.Data.Set(nil)

	assert.NotPanics(t, func() {
		btn.OnMouseEnter.Broadcast()
		btn.OnPrimaryDown.Broadcast()
		btn.OnPrimaryUp.Broadcast()
		btn.OnKeyUp.Broadcast(KeyEvent{Key: KeySpace})
	})
	assert.Empty(t, *actions)
	assert.Zero(t, Consolidate(btn.OnDraw.Broadcast()).Len())
	assert.False(t, btn.OnGainFocus.NoneFalse())
}

func TestButtonDefaultStyle(t *testing.T) {
	s, btn, _ := newTestButton(t)
	d := ButtonOf(btn)
	d.ApplyDefaultStyle()
	d.Text.Set("Go")

	b := Consolidate(btn.OnDraw.Broadcast())
	require.Equal(t, 2, b.Len())
	assert.Equal(t, OpPath, b.Ops()[0].Type)
	assert.Equal(t, OpText, b.Ops()[1].Type)
	assert.Equal(t, "Go", b.Ops()[1].Text)
	assert.Equal(t, TextAlignCenter, b.Ops()[1].Alignment)

	s.Focus().Circulate()
	require.True(t, d.Focused())
	focused := Consolidate(btn.OnDraw.Broadcast())
	assert.Equal(t, 3, focused.Len(), "focus ring adds an op")
}

func TestActivationString(t *testing.T) {
	assert.Equal(t, "pointer", ActivatedByPointer.String())
	assert.Equal(t, "keyboard", ActivatedByKeyboard.String())
	assert.Equal(t, "pressed", ButtonPressed.String())
}

func TestButtonClickFocusSkipsLoseFocus(t *testing.T) {
	s := NewScene()
	first := NewButton(s)
	second := NewButton(s)
	second.Position.Set(V(0, 40))
	s.Root().AddChild(first)
	s.Root().AddChild(second)

	lost := 0
	first.OnLoseFocus.Subscribe(func(*Widget) bool { lost++; return true })

	require.True(t, s.Focus().Circulate())
	require.Same(t, first, s.Focus().Focused())

	s.PointerEnter()
	s.PointerMove(10, 50)
	s.ButtonDown(MouseButtonPrimary)

	assert.Same(t, second, s.Focus().Focused())
	assert.Zero(t, lost, "a click moves the slot without a veto round")
	assert.True(t, ButtonOf(first).Focused(), "the old holder keeps its ring")

	s.KeyDown(KeyEvent{Key: KeySpace})
	assert.Equal(t, ButtonPressed, ButtonOf(second).State())
	assert.Equal(t, ButtonNormal, ButtonOf(first).State())
}

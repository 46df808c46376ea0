package ebitenbackend

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2/exp/textinput"

	"github.com/phanxgames/caribou"
)

// imeField is the part of textinput.Field the composer uses.
type imeField interface {
	Focus()
	Blur()
	HandleInputWithBounds(bounds image.Rectangle) (bool, error)
	Text() string
	TextForRendering() string
	UncommittedTextLengthInBytes() int
	Selection() (startInBytes, endInBytes int)
	SetTextAndSelection(text string, selectionStartInBytes, selectionEndInBytes int)
}

var _ imeField = (*textinput.Field)(nil)

// textSink receives composition and committed text.
type textSink interface {
	PreEdit(text string)
	Commit(text string)
}

// composer runs an IME text field while a caribou text field holds focus.
// Committed text and the composition are forwarded to the scene; the field's
// own buffer only grows until focus moves elsewhere.
type composer struct {
	field   imeField
	target  caribou.Ref
	sent    int
	preedit string
	failed  error
}

func newComposer() *composer {
	return &composer{field: &textinput.Field{}}
}

// update drives the field for focused. It reports whether the composer
// owns this tick's text input; the caller then drops the tick's input chars.
func (c *composer) update(sink textSink, focused *caribou.Widget) (bool, error) {
	if c.failed != nil || !acceptsText(focused) {
		c.release()
		return false, nil
	}
	if !c.target.Is(focused) {
		c.release()
		c.target = caribou.RefTo(focused)
		c.field.Focus()
	}
	if _, err := c.field.HandleInputWithBounds(caretBounds(focused)); err != nil {
		c.failed = err
		c.release()
		return false, fmt.Errorf("caribou: text input: %w", err)
	}
	c.flush(sink)
	return true, nil
}

// composing reports whether a composition is in progress.
func (c *composer) composing() bool {
	return c.preedit != ""
}

func (c *composer) flush(sink textSink) {
	if text := c.field.Text(); len(text) > c.sent {
		sink.Commit(text[c.sent:])
		c.sent = len(text)
	}
	pre := ""
	if n := c.field.UncommittedTextLengthInBytes(); n > 0 {
		start, _ := c.field.Selection()
		pre = c.field.TextForRendering()[start : start+n]
	}
	if pre != c.preedit {
		c.preedit = pre
		sink.PreEdit(pre)
	}
}

// release detaches the field from its widget. Any composition is dropped;
// the widget that lost focus clears its own buffer.
func (c *composer) release() {
	if c.target.IsZero() {
		return
	}
	c.target = caribou.Ref{}
	c.field.SetTextAndSelection("", 0, 0)
	c.field.Blur()
	c.sent = 0
	c.preedit = ""
}

func acceptsText(w *caribou.Widget) bool {
	return w != nil && w.IsEnabled() && caribou.TextFieldOf(w) != nil
}

// caretBounds places the IME window over w in window coordinates.
func caretBounds(w *caribou.Widget) image.Rectangle {
	var pos caribou.Vec2
	for n := w; n != nil; n = n.ParentWidget() {
		pos = pos.Add(n.Position.Get())
	}
	size := w.Size.Get()
	x, y := int(pos.X), int(pos.Y)
	return image.Rect(x, y, x+1, y+max(int(size.Y), 1))
}

package caribou

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pointerLog counts pointer callbacks on a widget.
type pointerLog struct {
	enter, leave, move, down, up int
	lastMove                     Point
}

func watchPointer(w *Widget) *pointerLog {
	l := &pointerLog{}
	w.OnMouseEnter.Subscribe(func(*Widget) { l.enter++ })
	w.OnMouseLeave.Subscribe(func(*Widget) { l.leave++ })
	w.OnMouseMove.Subscribe(func(_ *Widget, p Point) { l.move++; l.lastMove = p })
	w.OnPrimaryDown.Subscribe(func(*Widget) { l.down++ })
	w.OnPrimaryUp.Subscribe(func(*Widget) { l.up++ })
	return l
}

func newChild(name string, pos, size Vec2) *Widget {
	w := NewWidget(name)
	w.Position.Set(pos)
	w.Size.Set(size)
	return w
}

func TestLayoutHoverHalfOpen(t *testing.T) {
	tests := []struct {
		at   Point
		want bool
	}{
		{Pt(10, 10), true},
		{Pt(29, 29), true},
		{Pt(30, 30), false},
		{Pt(9, 9), false},
	}
	for _, tt := range tests {
		layout := NewLayout("l")
		c := newChild("c", V(10, 10), V(20, 20))
		layout.AddChild(c)
		layout.OnMouseMove.Broadcast(tt.at)
		assert.Equal(t, tt.want, len(LayoutOf(layout).Hovered()) == 1, "pointer at %v", tt.at)
	}
}

func TestLayoutHoverTransitions(t *testing.T) {
	layout := NewLayout("l")
	c := newChild("c", V(0, 0), V(50, 50))
	layout.AddChild(c)
	log := watchPointer(c)

	layout.OnMouseMove.Broadcast(Pt(100, 100))
	assert.Equal(t, pointerLog{}, *log)

	layout.OnMouseMove.Broadcast(Pt(10, 10))
	assert.Equal(t, 1, log.enter)
	assert.Zero(t, log.leave)
	assert.Zero(t, log.move)

	layout.OnMouseMove.Broadcast(Pt(20, 20))
	assert.Equal(t, 1, log.enter)
	assert.Equal(t, 1, log.move)
	assert.Zero(t, log.leave)

	layout.OnMouseMove.Broadcast(Pt(200, 200))
	assert.Equal(t, 1, log.enter)
	assert.Equal(t, 1, log.move)
	assert.Equal(t, 1, log.leave)
	assert.Empty(t, LayoutOf(layout).Hovered())
}

func TestLayoutMoveIsChildLocal(t *testing.T) {
	layout := NewLayout("l")
	c := newChild("c", V(40, 30), V(50, 50))
	layout.AddChild(c)
	log := watchPointer(c)

	layout.OnMouseMove.Broadcast(Pt(45, 35))
	layout.OnMouseMove.Broadcast(Pt(50, 42))
	assert.Equal(t, Pt(10, 12), log.lastMove)
	assert.Equal(t, Pt(50, 42), LayoutOf(layout).Cursor())
}

func TestLayoutOverlappingChildren(t *testing.T) {
	layout := NewLayout("l")
	a := newChild("a", V(0, 0), V(20, 20))
	b := newChild("b", V(10, 10), V(20, 20))
	layout.AddChild(a)
	layout.AddChild(b)
	la, lb := watchPointer(a), watchPointer(b)

	layout.OnMouseMove.Broadcast(Pt(15, 15))
	assert.Equal(t, []*Widget{a, b}, LayoutOf(layout).Hovered())
	layout.OnPrimaryDown.Broadcast()
	assert.Equal(t, 1, la.down)
	assert.Equal(t, 1, lb.down)

	layout.OnMouseMove.Broadcast(Pt(5, 5))
	assert.Equal(t, 1, lb.leave)
	assert.Zero(t, la.leave)
}

func TestLayoutDownWithoutMoveReachesNobody(t *testing.T) {
	layout := NewLayout("l")
	c := newChild("c", V(0, 0), V(100, 100))
	layout.AddChild(c)
	log := watchPointer(c)

	layout.OnPrimaryDown.Broadcast()
	layout.OnPrimaryUp.Broadcast()
	assert.Zero(t, log.down)
	assert.Zero(t, log.up)
}

func TestLayoutForwardsPrimaryOnly(t *testing.T) {
	layout := NewLayout("l")
	c := newChild("c", V(0, 0), V(100, 100))
	layout.AddChild(c)
	log := watchPointer(c)
	secondary := 0
	c.OnSecondaryDown.Subscribe(func(*Widget) { secondary++ })

	layout.OnMouseMove.Broadcast(Pt(1, 1))
	layout.OnPrimaryDown.Broadcast()
	layout.OnPrimaryUp.Broadcast()
	layout.OnSecondaryDown.Broadcast()
	assert.Equal(t, 1, log.down)
	assert.Equal(t, 1, log.up)
	assert.Zero(t, secondary)
}

func TestLayoutMouseLeaveClearsHover(t *testing.T) {
	layout := NewLayout("l")
	c := newChild("c", V(0, 0), V(100, 100))
	layout.AddChild(c)
	log := watchPointer(c)

	layout.OnMouseMove.Broadcast(Pt(1, 1))
	layout.OnMouseLeave.Broadcast()
	assert.Equal(t, 1, log.leave)
	assert.Empty(t, LayoutOf(layout).Hovered())

	layout.OnPrimaryDown.Broadcast()
	assert.Zero(t, log.down)
}

func TestLayoutPurgesDisposedChild(t *testing.T) {
	layout := NewLayout("l")
	a := newChild("a", V(0, 0), V(50, 50))
	b := newChild("b", V(0, 0), V(50, 50))
	layout.AddChild(a)
	layout.AddChild(b)
	layout.OnMouseMove.Broadcast(Pt(10, 10))
	require.Len(t, LayoutOf(layout).Hovered(), 2)

	a.Dispose()
	lb := watchPointer(b)
	assert.NotPanics(t, func() {
		layout.OnMouseMove.Broadcast(Pt(11, 11))
		layout.OnPrimaryDown.Broadcast()
	})
	assert.Equal(t, []*Widget{b}, LayoutOf(layout).Hovered())
	assert.Len(t, LayoutOf(layout).hovered, 1)
	assert.Equal(t, 1, lb.move)
	assert.Equal(t, 1, lb.down)
}

func TestLayoutForwardsUpdate(t *testing.T) {
	layout := NewLayout("l")
	inner := NewLayout("inner")
	leaf := NewWidget("leaf")
	layout.AddChild(inner)
	inner.AddChild(leaf)
	ticks := 0
	leaf.OnUpdate.Subscribe(func(*Widget) { ticks++ })

	layout.OnUpdate.Broadcast()
	layout.OnUpdate.Broadcast()
	assert.Equal(t, 2, ticks)
}

func TestLayoutPurgesCollectedChild(t *testing.T) {
	layout := NewLayout("l")
	other := newChild("other", V(100, 0), V(10, 10))
	layout.AddChild(other)
	log := watchPointer(other)

	gone := func() Ref {
		c := newChild("gone", V(0, 0), V(50, 50))
		layout.AddChild(c)
		layout.OnMouseMove.Broadcast(Pt(5, 5))
		layout.RemoveChild(c)
		return RefTo(c)
	}()
	data := LayoutOf(layout)
	require.Len(t, data.hovered, 1)

	collect(t, gone)
	assert.Empty(t, data.Hovered())

	assert.NotPanics(t, func() {
		layout.OnPrimaryDown.Broadcast()
		layout.OnMouseMove.Broadcast(Pt(105, 5))
	})
	assert.Equal(t, []*Widget{other}, data.Hovered())
	assert.Len(t, data.hovered, 1)
	assert.Equal(t, 1, log.enter)
}

func TestLayoutDraw(t *testing.T) {
	layout := NewLayout("l")
	layout.Size.Set(V(200, 100))
	a := newChild("a", V(10, 20), V(30, 40))
	b := newChild("b", V(50, 60), V(5, 5))
	layout.AddChild(a)
	layout.AddChild(b)
	a.OnDraw.Subscribe(func(*Widget) *Batch { return NewBatch(textOp("a1")) })
	a.OnDraw.Subscribe(func(*Widget) *Batch { return NewBatch(textOp("a2")) })
	b.OnDraw.Subscribe(func(*Widget) *Batch { return NewBatch(textOp("b")) })

	out := Consolidate(layout.OnDraw.Broadcast())
	require.Equal(t, 3, out.Len())
	var texts []string
	for _, op := range out.Ops() {
		require.Equal(t, OpBatch, op.Type)
		texts = append(texts, op.Batch.Ops()[0].Text)
	}
	assert.Equal(t, []string{"a1", "a2", "b"}, texts)

	first := out.Ops()[0].Transform
	assert.Equal(t, V(10, 20), first.Translate)
	assert.True(t, first.Clipped)
	assert.Equal(t, V(30, 40), first.Clip)
}

func TestLayoutDrawBackgroundAndBorder(t *testing.T) {
	layout := NewLayout("l")
	layout.Size.Set(V(20, 10))
	assert.Zero(t, Consolidate(layout.OnDraw.Broadcast()).Len(), "invisible background draws nothing")

	layout.Background.Set(SolidFill(SolidColor(1, 0, 0, 1)))
	layout.Border.Set(SolidStroke(SolidColor(0, 0, 0, 1), 1))
	out := Consolidate(layout.OnDraw.Broadcast())
	require.Equal(t, 2, out.Len())
	assert.Equal(t, OpPath, out.Ops()[0].Type)
	assert.Equal(t, SolidColor(1, 0, 0, 1), out.Ops()[0].Brush.Fill)
	assert.Equal(t, OpPath, out.Ops()[1].Type)
	assert.Equal(t, 1.0, out.Ops()[1].Brush.StrokeWidth)
}

func TestLayoutWithoutPayloadIsInert(t *testing.T) {
	layout := NewLayout("l")
	c := newChild("c", V(0, 0), V(10, 10))
	layout.AddChild(c)
	log := watchPointer(c)
	layout.Data.Set(nil)

	assert.NotPanics(t, func() {
		layout.OnMouseMove.Broadcast(Pt(1, 1))
		layout.OnMouseLeave.Broadcast()
		layout.OnPrimaryDown.Broadcast()
	})
	assert.Equal(t, pointerLog{}, *log)
}

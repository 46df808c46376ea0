package caribou

const layoutFlavor = "layout"

// LayoutData is the payload of a layout widget. It tracks which children are
// under the pointer and where the pointer was last seen.
type LayoutData struct {
	hovered Refs
	cursor  Point
}

func (*LayoutData) Flavor() string { return layoutFlavor }

// Hovered returns the live children currently under the pointer.
func (d *LayoutData) Hovered() []*Widget {
	return d.hovered.Widgets()
}

// Cursor returns the last pointer position in layout-local coordinates.
func (d *LayoutData) Cursor() Point {
	return d.cursor
}

// LayoutOf returns the layout payload of w, or nil if w is not a layout.
func LayoutOf(w *Widget) *LayoutData {
	d, _ := PayloadAs[*LayoutData](w.Data)
	return d
}

// NewLayout creates a container that draws its children in order and routes
// pointer events to the children under the pointer.
//
// Button events are not hit-tested on their own. They go to whatever the
// last mouse move left in the hover set, so a press that arrives before any
// move reaches nobody.
func NewLayout(name string) *Widget {
	w := NewWidget(name)
	w.OnDraw.Subscribe(drawLayout)
	w.OnMouseMove.Subscribe(layoutMouseMove)
	w.OnMouseLeave.Subscribe(layoutMouseLeave)
	w.OnPrimaryDown.Subscribe(func(w *Widget) {
		layoutForward(w, (*Widget).primaryDown)
	})
	w.OnPrimaryUp.Subscribe(func(w *Widget) {
		layoutForward(w, (*Widget).primaryUp)
	})
	w.OnUpdate.Subscribe(func(w *Widget) {
		for _, child := range w.Children.Items() {
			if !child.disposed {
				child.OnUpdate.Broadcast()
			}
		}
	})
	w.Data.Set(&LayoutData{})
	return w
}

func (w *Widget) primaryDown() { w.OnPrimaryDown.Broadcast() }
func (w *Widget) primaryUp()   { w.OnPrimaryUp.Broadcast() }

func drawLayout(w *Widget) *Batch {
	batch := NewBatch()
	size := w.Size.Get()
	if bg := w.Background.Get(); bg.Visible() {
		batch.Add(DrawPath(IdentityTransform(), NewPath(RectPath(Vec2{}, size)), SolidFill(bg.Fill)))
	}
	if border := w.Border.Get(); border.Visible() {
		batch.Add(DrawPath(IdentityTransform(), NewPath(RectPath(Vec2{}, size)), border))
	}
	for _, child := range w.Children.Items() {
		if child.disposed {
			continue
		}
		t := ClippedTranslation(child.Position.Get(), child.Size.Get())
		for _, b := range child.OnDraw.Broadcast() {
			batch.Add(DrawBatch(t, b))
		}
	}
	return batch
}

func layoutMouseMove(w *Widget, pos Point) {
	data := LayoutOf(w)
	if data == nil {
		debugMissingPayload(w, layoutFlavor)
		return
	}
	data.hovered.Purge()
	data.cursor = pos

	var next Refs
	for _, child := range w.Children.Items() {
		if child.disposed {
			continue
		}
		childPos := child.Position.Get()
		if !RegionOf(childPos, child.Size.Get()).Contains(pos.Vec2()) {
			continue
		}
		ref := RefTo(child)
		if data.hovered.ContainsRef(ref) {
			child.OnMouseMove.Broadcast(pos.Sub(childPos.Point()))
		} else {
			child.OnMouseEnter.Broadcast()
		}
		next = append(next, ref)
	}
	for _, ref := range data.hovered {
		if next.ContainsRef(ref) {
			continue
		}
		if child := ref.Acquire(); child != nil {
			child.OnMouseLeave.Broadcast()
		}
	}
	data.hovered = next
}

func layoutMouseLeave(w *Widget) {
	data := LayoutOf(w)
	if data == nil {
		debugMissingPayload(w, layoutFlavor)
		return
	}
	data.hovered.Purge()
	for _, child := range data.hovered.Widgets() {
		child.OnMouseLeave.Broadcast()
	}
	data.hovered = nil
}

func layoutForward(w *Widget, send func(*Widget)) {
	data := LayoutOf(w)
	if data == nil {
		debugMissingPayload(w, layoutFlavor)
		return
	}
	data.hovered.Purge()
	for _, child := range data.hovered.Widgets() {
		send(child)
	}
}

package caribou

import (
	"image"
	"slices"
)

// OpType identifies the kind of a BatchOp.
type OpType uint8

const (
	OpPict  OpType = iota // embedded image
	OpPath                // path filled and/or stroked with a Brush
	OpText                // single line of text
	OpBatch               // nested batch under its own transform
)

func (t OpType) String() string {
	switch t {
	case OpPict:
		return "pict"
	case OpPath:
		return "path"
	case OpText:
		return "text"
	case OpBatch:
		return "batch"
	default:
		return "unknown"
	}
}

// BatchOp is a single drawing instruction. One flat struct serves every
// OpType; only the fields relevant to Type are set.
type BatchOp struct {
	Type      OpType
	Transform Transform

	// OpPict
	Pict image.Image

	// OpPath
	Path  *Path
	Brush Brush

	// OpText (also uses Brush)
	Text      string
	Font      Font
	Alignment TextAlignment

	// OpBatch
	Batch *Batch
}

// DrawPict returns an op drawing img with its top-left corner at the origin.
func DrawPict(t Transform, img image.Image) BatchOp {
	return BatchOp{Type: OpPict, Transform: t, Pict: img}
}

// DrawPath returns an op painting path with brush.
func DrawPath(t Transform, path *Path, brush Brush) BatchOp {
	return BatchOp{Type: OpPath, Transform: t, Path: path, Brush: brush}
}

// DrawText returns an op rendering text anchored at the origin.
func DrawText(t Transform, text string, font Font, align TextAlignment, brush Brush) BatchOp {
	return BatchOp{Type: OpText, Transform: t, Text: text, Font: font, Alignment: align, Brush: brush}
}

// DrawBatch returns an op replaying b under t.
func DrawBatch(t Transform, b *Batch) BatchOp {
	return BatchOp{Type: OpBatch, Transform: t, Batch: b}
}

// Batch is an append-only sequence of drawing operations. A *Batch is shared
// by reference, so handing the same batch to several consumers copies
// nothing.
type Batch struct {
	ops []BatchOp
}

// NewBatch returns a batch holding ops.
func NewBatch(ops ...BatchOp) *Batch {
	return &Batch{ops: ops}
}

// Add appends op.
func (b *Batch) Add(op BatchOp) {
	b.ops = append(b.ops, op)
}

// Append appends every op of other, in order.
func (b *Batch) Append(other *Batch) {
	if other == nil {
		return
	}
	b.ops = append(b.ops, other.ops...)
}

// Ops returns the operations. The returned slice MUST NOT be mutated.
func (b *Batch) Ops() []BatchOp {
	if b == nil {
		return nil
	}
	return b.ops
}

// Len returns the number of top-level operations.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.ops)
}

// Consolidate merges batches into a single new batch, keeping their order.
// Nil entries are skipped.
func Consolidate(batches []*Batch) *Batch {
	n := 0
	for _, b := range batches {
		n += b.Len()
	}
	out := &Batch{ops: make([]BatchOp, 0, n)}
	for _, b := range batches {
		out.Append(b)
	}
	return out
}

// CountOps returns the number of leaf operations in b, descending into
// nested batches.
func CountOps(b *Batch) int {
	n := 0
	for _, op := range b.Ops() {
		if op.Type == OpBatch {
			n += CountOps(op.Batch)
		} else {
			n++
		}
	}
	return n
}

// --- Paths ---

// PathVerb identifies a path construction primitive.
type PathVerb uint8

const (
	PathMoveTo  PathVerb = iota // start a new subpath at P0
	PathLineTo                  // straight segment to P0
	PathQuadTo                  // quadratic curve with control P0 to P1
	PathCubicTo                 // cubic curve with controls P0, P1 to P2
	PathClose                   // close the current subpath
	PathLine                    // standalone segment from P0 to P1
	PathRect                    // rectangle with origin P0 and size P1
	PathOval                    // ellipse inscribed in origin P0, size P1
)

// PathOp is one path construction primitive.
type PathOp struct {
	Verb       PathVerb
	P0, P1, P2 Vec2
}

func MoveTo(p Vec2) PathOp              { return PathOp{Verb: PathMoveTo, P0: p} }
func LineTo(p Vec2) PathOp              { return PathOp{Verb: PathLineTo, P0: p} }
func QuadTo(c, p Vec2) PathOp           { return PathOp{Verb: PathQuadTo, P0: c, P1: p} }
func CubicTo(c1, c2, p Vec2) PathOp     { return PathOp{Verb: PathCubicTo, P0: c1, P1: c2, P2: p} }
func ClosePath() PathOp                 { return PathOp{Verb: PathClose} }
func LineSeg(from, to Vec2) PathOp      { return PathOp{Verb: PathLine, P0: from, P1: to} }
func RectPath(origin, size Vec2) PathOp { return PathOp{Verb: PathRect, P0: origin, P1: size} }
func OvalPath(origin, size Vec2) PathOp { return PathOp{Verb: PathOval, P0: origin, P1: size} }

// Path is an ordered list of PathOps.
type Path struct {
	ops []PathOp
}

// NewPath returns a path made of ops.
func NewPath(ops ...PathOp) *Path {
	return &Path{ops: ops}
}

// Add appends op.
func (p *Path) Add(op PathOp) {
	p.ops = append(p.ops, op)
}

// AddPath appends a copy of other's ops.
func (p *Path) AddPath(other *Path) {
	p.ops = append(p.ops, other.ops...)
}

// Ops returns the path ops. The returned slice MUST NOT be mutated.
func (p *Path) Ops() []PathOp {
	if p == nil {
		return nil
	}
	return p.ops
}

// Clone returns an independent copy of p.
func (p *Path) Clone() *Path {
	return &Path{ops: slices.Clone(p.ops)}
}

// --- Paint ---

// Material is either transparent (the zero value) or a solid color.
type Material struct {
	Solid bool
	Color Color
}

// Transparent is the material that paints nothing.
var Transparent = Material{}

// SolidColor returns an opaque-or-translucent flat material.
func SolidColor(r, g, b, a float64) Material {
	return Material{Solid: true, Color: Color{r, g, b, a}}
}

// Visible reports whether the material paints anything.
func (m Material) Visible() bool {
	return m.Solid && m.Color.A > 0
}

// Brush describes how a path is stroked and filled.
type Brush struct {
	Stroke      Material
	Fill        Material
	StrokeWidth float64
}

// SolidStroke returns a brush that only strokes.
func SolidStroke(m Material, width float64) Brush {
	return Brush{Stroke: m, Fill: Transparent, StrokeWidth: width}
}

// SolidFill returns a brush that only fills.
func SolidFill(m Material) Brush {
	return Brush{Stroke: Transparent, Fill: m}
}

// TransparentBrush returns a brush that paints nothing. It equals the zero Brush.
func TransparentBrush() Brush {
	return Brush{}
}

// Visible reports whether the brush paints anything.
func (b Brush) Visible() bool {
	return b.Fill.Visible() || (b.Stroke.Visible() && b.StrokeWidth > 0)
}

// FontSlant is the posture of a font.
type FontSlant uint8

const (
	FontSlantNormal FontSlant = iota
	FontSlantItalic
	FontSlantOblique
)

// Font describes a typeface request. Backends map it to the closest face
// they have.
type Font struct {
	Family string
	Size   float64
	Weight int
	Slant  FontSlant
}

// DefaultFont is the font every widget starts with.
func DefaultFont() Font {
	return Font{Family: "Go", Size: 12, Weight: 400, Slant: FontSlantNormal}
}

// TextAlignment controls where text sits relative to its anchor.
type TextAlignment uint8

const (
	TextAlignOrigin TextAlignment = iota // anchor is the top-left of the text
	TextAlignCenter                      // anchor is the center of the text
)

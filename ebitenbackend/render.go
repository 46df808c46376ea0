package ebitenbackend

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/caribou"
)

// ovalKappa places the control points of a cubic quarter-ellipse.
const ovalKappa = 0.5522847498

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(image.White)
}

// Renderer rasterizes caribou batches onto Ebitengine images.
type Renderer struct {
	// AntiAlias smooths path edges.
	AntiAlias bool

	faces *faceCache
	picts map[image.Image]*ebiten.Image

	path  vector.Path
	verts []ebiten.Vertex
	inds  []uint16
}

// NewRenderer returns a renderer with anti-aliasing on.
func NewRenderer() *Renderer {
	return &Renderer{
		AntiAlias: true,
		faces:     newFaceCache(),
		picts:     make(map[image.Image]*ebiten.Image),
	}
}

// Render draws b onto dst.
func (r *Renderer) Render(dst *ebiten.Image, b *caribou.Batch) {
	r.render(dst, b, [6]float64{1, 0, 0, 1, 0, 0}, dst.Bounds())
}

func (r *Renderer) render(dst *ebiten.Image, b *caribou.Batch, parent [6]float64, clip image.Rectangle) {
	for i := range b.Ops() {
		op := &b.Ops()[i]
		m := caribou.MultiplyAffine(parent, op.Transform.Matrix())
		opClip := clip
		if op.Transform.Clipped {
			opClip = clip.Intersect(clipRect(m, op.Transform.Clip))
			if opClip.Empty() {
				continue
			}
		}
		target := dst
		if opClip != dst.Bounds() {
			target = dst.SubImage(opClip).(*ebiten.Image)
		}

		switch op.Type {
		case caribou.OpPath:
			r.drawPath(target, op.Path, op.Brush, m)
		case caribou.OpText:
			r.drawText(target, op, m)
		case caribou.OpPict:
			r.drawPict(target, op.Pict, m)
		case caribou.OpBatch:
			r.render(dst, op.Batch, m, opClip)
		}
	}
}

func (r *Renderer) drawPath(dst *ebiten.Image, p *caribou.Path, brush caribou.Brush, m [6]float64) {
	if p == nil || !brush.Visible() {
		return
	}
	r.path = vector.Path{}
	appendPath(&r.path, p, m)

	if brush.Fill.Visible() {
		r.verts, r.inds = r.path.AppendVerticesAndIndicesForFilling(r.verts[:0], r.inds[:0])
		colorVertices(r.verts, brush.Fill.Color)
		op := &ebiten.DrawTrianglesOptions{
			FillRule:  ebiten.FillRuleNonZero,
			AntiAlias: r.AntiAlias,
		}
		dst.DrawTriangles(r.verts, r.inds, whiteSubImage, op)
	}
	if brush.Stroke.Visible() && brush.StrokeWidth > 0 {
		sop := &vector.StrokeOptions{
			Width:      float32(brush.StrokeWidth * matrixScale(m)),
			LineJoin:   vector.LineJoinMiter,
			MiterLimit: 10,
		}
		r.verts, r.inds = r.path.AppendVerticesAndIndicesForStroke(r.verts[:0], r.inds[:0], sop)
		colorVertices(r.verts, brush.Stroke.Color)
		op := &ebiten.DrawTrianglesOptions{AntiAlias: r.AntiAlias}
		dst.DrawTriangles(r.verts, r.inds, whiteSubImage, op)
	}
}

func (r *Renderer) drawText(dst *ebiten.Image, op *caribou.BatchOp, m [6]float64) {
	if op.Text == "" || !op.Brush.Fill.Visible() {
		return
	}
	face := r.faces.face(op.Font)
	top := &text.DrawOptions{}
	top.GeoM = geoM(m)
	c := op.Brush.Fill.Color
	top.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	if op.Alignment == caribou.TextAlignCenter {
		top.PrimaryAlign = text.AlignCenter
		top.SecondaryAlign = text.AlignCenter
	}
	text.Draw(dst, op.Text, face, top)
}

func (r *Renderer) drawPict(dst *ebiten.Image, img image.Image, m [6]float64) {
	if img == nil {
		return
	}
	eimg, ok := r.picts[img]
	if !ok {
		eimg = ebiten.NewImageFromImage(img)
		r.picts[img] = eimg
	}
	op := &ebiten.DrawImageOptions{GeoM: geoM(m)}
	dst.DrawImage(eimg, op)
}

// ForgetPict drops the cached texture of img. Call it after mutating an
// image that is drawn with OpPict.
func (r *Renderer) ForgetPict(img image.Image) {
	if eimg, ok := r.picts[img]; ok {
		eimg.Deallocate()
		delete(r.picts, img)
	}
}

// appendPath adds p to dst with every point transformed by m.
func appendPath(dst *vector.Path, p *caribou.Path, m [6]float64) {
	pt := func(v caribou.Vec2) (float32, float32) {
		v = caribou.ApplyAffine(m, v)
		return float32(v.X), float32(v.Y)
	}
	for _, op := range p.Ops() {
		switch op.Verb {
		case caribou.PathMoveTo:
			dst.MoveTo(pt(op.P0))
		case caribou.PathLineTo:
			dst.LineTo(pt(op.P0))
		case caribou.PathQuadTo:
			cx, cy := pt(op.P0)
			x, y := pt(op.P1)
			dst.QuadTo(cx, cy, x, y)
		case caribou.PathCubicTo:
			c1x, c1y := pt(op.P0)
			c2x, c2y := pt(op.P1)
			x, y := pt(op.P2)
			dst.CubicTo(c1x, c1y, c2x, c2y, x, y)
		case caribou.PathClose:
			dst.Close()
		case caribou.PathLine:
			dst.MoveTo(pt(op.P0))
			dst.LineTo(pt(op.P1))
		case caribou.PathRect:
			o, s := op.P0, op.P1
			dst.MoveTo(pt(o))
			dst.LineTo(pt(caribou.V(o.X+s.X, o.Y)))
			dst.LineTo(pt(o.Add(s)))
			dst.LineTo(pt(caribou.V(o.X, o.Y+s.Y)))
			dst.Close()
		case caribou.PathOval:
			appendOval(dst, op.P0, op.P1, pt)
		}
	}
}

func appendOval(dst *vector.Path, origin, size caribou.Vec2, pt func(caribou.Vec2) (float32, float32)) {
	rx, ry := size.X/2, size.Y/2
	cx, cy := origin.X+rx, origin.Y+ry
	kx, ky := rx*ovalKappa, ry*ovalKappa
	cubic := func(c1, c2, p caribou.Vec2) {
		c1x, c1y := pt(c1)
		c2x, c2y := pt(c2)
		x, y := pt(p)
		dst.CubicTo(c1x, c1y, c2x, c2y, x, y)
	}
	dst.MoveTo(pt(caribou.V(cx+rx, cy)))
	cubic(caribou.V(cx+rx, cy+ky), caribou.V(cx+kx, cy+ry), caribou.V(cx, cy+ry))
	cubic(caribou.V(cx-kx, cy+ry), caribou.V(cx-rx, cy+ky), caribou.V(cx-rx, cy))
	cubic(caribou.V(cx-rx, cy-ky), caribou.V(cx-kx, cy-ry), caribou.V(cx, cy-ry))
	cubic(caribou.V(cx+kx, cy-ry), caribou.V(cx+rx, cy-ky), caribou.V(cx+rx, cy))
	dst.Close()
}

// colorVertices paints every vertex with c, premultiplied, sampling the
// white source pixel.
func colorVertices(vs []ebiten.Vertex, c caribou.Color) {
	r, g, b, a := float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A)
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
}

// geoM converts an affine matrix into an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// matrixScale returns the average linear scale factor of m.
func matrixScale(m [6]float64) float64 {
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}

// clipRect returns the pixel rectangle covering (0, 0)-size under m. Rotated
// clips are approximated by their bounding box.
func clipRect(m [6]float64, size caribou.Vec2) image.Rectangle {
	corners := [4]caribou.Vec2{
		caribou.ApplyAffine(m, caribou.V(0, 0)),
		caribou.ApplyAffine(m, caribou.V(size.X, 0)),
		caribou.ApplyAffine(m, size),
		caribou.ApplyAffine(m, caribou.V(0, size.Y)),
	}
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, c := range corners[1:] {
		minX, maxX = math.Min(minX, c.X), math.Max(maxX, c.X)
		minY, maxY = math.Min(minY, c.Y), math.Max(maxY, c.Y)
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
}

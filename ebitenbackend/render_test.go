package ebitenbackend

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/caribou"
)

func TestClipRect(t *testing.T) {
	m := caribou.Translation(caribou.V(10.5, 20)).Matrix()
	assert.Equal(t, image.Rect(10, 20, 41, 40), clipRect(m, caribou.V(30, 20)))

	scaled := caribou.Transform{Scale: caribou.V(2, 2)}.Matrix()
	assert.Equal(t, image.Rect(0, 0, 20, 10), clipRect(scaled, caribou.V(10, 5)))
}

func TestMatrixScale(t *testing.T) {
	assert.InDelta(t, 1.0, matrixScale(caribou.IdentityTransform().Matrix()), 1e-9)
	assert.InDelta(t, 3.0, matrixScale(caribou.Transform{Scale: caribou.V(3, 3)}.Matrix()), 1e-9)
	rot := caribou.Transform{Scale: caribou.V(2, 2), Rotate: math.Pi / 3}.Matrix()
	assert.InDelta(t, 2.0, matrixScale(rot), 1e-9)
}

func TestGeoMMatchesAffine(t *testing.T) {
	m := caribou.Transform{
		Translate: caribou.V(5, 7),
		Scale:     caribou.V(2, 3),
		Rotate:    0.25,
	}.Matrix()
	g := geoM(m)
	x, y := g.Apply(4, -1)
	want := caribou.ApplyAffine(m, caribou.V(4, -1))
	assert.InDelta(t, want.X, x, 1e-9)
	assert.InDelta(t, want.Y, y, 1e-9)
}

func TestAppendPathRectBounds(t *testing.T) {
	var vp vector.Path
	p := caribou.NewPath(caribou.RectPath(caribou.V(0, 0), caribou.V(10, 10)))
	appendPath(&vp, p, caribou.Translation(caribou.V(100, 50)).Matrix())

	vs, is := vp.AppendVerticesAndIndicesForFilling(nil, nil)
	require.NotEmpty(t, vs)
	require.NotEmpty(t, is)
	for _, v := range vs {
		assert.GreaterOrEqual(t, v.DstX, float32(100))
		assert.LessOrEqual(t, v.DstX, float32(110))
		assert.GreaterOrEqual(t, v.DstY, float32(50))
		assert.LessOrEqual(t, v.DstY, float32(60))
	}
}

func TestAppendPathOvalStaysInBox(t *testing.T) {
	var vp vector.Path
	p := caribou.NewPath(caribou.OvalPath(caribou.V(0, 0), caribou.V(40, 20)))
	appendPath(&vp, p, caribou.IdentityTransform().Matrix())

	vs, _ := vp.AppendVerticesAndIndicesForFilling(nil, nil)
	require.NotEmpty(t, vs)
	for _, v := range vs {
		assert.GreaterOrEqual(t, v.DstX, float32(-0.01))
		assert.LessOrEqual(t, v.DstX, float32(40.01))
		assert.GreaterOrEqual(t, v.DstY, float32(-0.01))
		assert.LessOrEqual(t, v.DstY, float32(20.01))
	}
}

func TestColorVerticesPremultiplies(t *testing.T) {
	vs := make([]ebiten.Vertex, 2)
	colorVertices(vs, caribou.Color{R: 1, G: 0.5, B: 0, A: 0.5})
	for _, v := range vs {
		assert.Equal(t, float32(1), v.SrcX)
		assert.Equal(t, float32(1), v.SrcY)
		assert.InDelta(t, 0.5, v.ColorR, 1e-6)
		assert.InDelta(t, 0.25, v.ColorG, 1e-6)
		assert.InDelta(t, 0.0, v.ColorB, 1e-6)
		assert.InDelta(t, 0.5, v.ColorA, 1e-6)
	}
}

func TestStyleOf(t *testing.T) {
	tests := []struct {
		font caribou.Font
		want fontStyle
	}{
		{caribou.DefaultFont(), fontStyle{}},
		{caribou.Font{Family: "Go", Weight: 700}, fontStyle{bold: true}},
		{caribou.Font{Family: "Go Mono", Weight: 400, Slant: caribou.FontSlantItalic}, fontStyle{mono: true, italic: true}},
		{caribou.Font{Family: "mono", Weight: 600, Slant: caribou.FontSlantOblique}, fontStyle{mono: true, bold: true, italic: true}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, styleOf(tt.font), "%+v", tt.font)
		assert.NotEmpty(t, styleOf(tt.font).ttf())
	}
}

func TestFaceCacheReusesFaces(t *testing.T) {
	c := newFaceCache()
	a := c.face(caribou.DefaultFont())
	b := c.face(caribou.DefaultFont())
	assert.Same(t, a, b)
	assert.Equal(t, 12.0, a.Size)

	zero := c.face(caribou.Font{})
	assert.Equal(t, caribou.DefaultFont().Size, zero.Size)
	assert.Len(t, c.sources, 1)
}

func TestSanitizeLabel(t *testing.T) {
	tests := map[string]string{
		"":             "unlabeled",
		"  ":           "unlabeled",
		"after click":  "after_click",
		"step-1.final": "step-1.final",
		"../etc":       ".._etc",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeLabel(in), "label %q", in)
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128,
		10, 20, 30, 255,
		0, 0, 0, 0,
	}
	img := unpremultiply(pixels, 3, 1)
	assert.Equal(t, color.NRGBA{255, 127, 0, 128}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{10, 20, 30, 255}, img.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{0, 0, 0, 0}, img.NRGBAAt(2, 0))
}

func TestToNRGBA(t *testing.T) {
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, toNRGBA(caribou.ColorWhite))
	assert.Equal(t, color.NRGBA{0, 128, 255, 128}, toNRGBA(caribou.Color{R: 0, G: 0.5, B: 1, A: 0.5}))
}

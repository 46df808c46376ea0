package ebitenbackend

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/caribou"
)

// fontStyle selects one of the bundled Go font files.
type fontStyle struct {
	mono   bool
	bold   bool
	italic bool
}

// styleOf maps a font request onto the bundled Go fonts. Families whose name
// contains "mono" use Go Mono; everything else uses Go. Weights of 600 and
// above are bold; any slant other than normal is italic.
func styleOf(f caribou.Font) fontStyle {
	return fontStyle{
		mono:   strings.Contains(strings.ToLower(f.Family), "mono"),
		bold:   f.Weight >= 600,
		italic: f.Slant != caribou.FontSlantNormal,
	}
}

func (s fontStyle) ttf() []byte {
	switch {
	case s.mono && s.bold && s.italic:
		return gomonobolditalic.TTF
	case s.mono && s.bold:
		return gomonobold.TTF
	case s.mono && s.italic:
		return gomonoitalic.TTF
	case s.mono:
		return gomono.TTF
	case s.bold && s.italic:
		return gobolditalic.TTF
	case s.bold:
		return gobold.TTF
	case s.italic:
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}

type faceKey struct {
	style fontStyle
	size  float64
}

// faceCache parses each font file once and keeps one face per style and size.
type faceCache struct {
	sources map[fontStyle]*text.GoTextFaceSource
	faces   map[faceKey]*text.GoTextFace
}

func newFaceCache() *faceCache {
	return &faceCache{
		sources: make(map[fontStyle]*text.GoTextFaceSource),
		faces:   make(map[faceKey]*text.GoTextFace),
	}
}

func (c *faceCache) face(f caribou.Font) *text.GoTextFace {
	size := f.Size
	if size <= 0 {
		size = caribou.DefaultFont().Size
	}
	key := faceKey{style: styleOf(f), size: size}
	if face, ok := c.faces[key]; ok {
		return face
	}
	src, err := c.source(key.style)
	if err != nil {
		// The bundled fonts always parse.
		panic(err)
	}
	face := &text.GoTextFace{Source: src, Size: size}
	c.faces[key] = face
	return face
}

func (c *faceCache) source(s fontStyle) (*text.GoTextFaceSource, error) {
	if src, ok := c.sources[s]; ok {
		return src, nil
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(s.ttf()))
	if err != nil {
		return nil, fmt.Errorf("caribou: failed to parse bundled font: %w", err)
	}
	c.sources[s] = src
	return src, nil
}

// MeasureText returns the width and height of s rendered in f.
func (r *Renderer) MeasureText(s string, f caribou.Font) (width, height float64) {
	face := r.faces.face(f)
	m := face.Metrics()
	return text.Measure(s, face, m.HAscent+m.HDescent+m.HLineGap)
}

package ebitenbackend

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// captureScreen reads the rendered frame as straight-alpha NRGBA.
func captureScreen(screen *ebiten.Image) *image.NRGBA {
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	return unpremultiply(pixels, w, h)
}

// unpremultiply converts premultiplied RGBA pixels to an NRGBA image. It
// takes ownership of pixels.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	for i := 0; i+3 < len(pixels); i += 4 {
		a := pixels[i+3]
		if a > 0 && a < 255 {
			pixels[i] = uint8(min(int(pixels[i])*255/int(a), 255))
			pixels[i+1] = uint8(min(int(pixels[i+1])*255/int(a), 255))
			pixels[i+2] = uint8(min(int(pixels[i+2])*255/int(a), 255))
		}
	}
	return &image.NRGBA{Pix: pixels, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
}

// flushScreenshots captures the frame once for every queued label and
// writes the PNG files on the worker pool.
func (g *Game) flushScreenshots(screen *ebiten.Image) {
	labels := g.scene.TakeScreenshots()
	if len(labels) == 0 {
		return
	}
	img := captureScreen(screen)
	stamp := g.now().Format("20060102_150405")
	dir := g.cfg.Window.ScreenshotDir
	for _, label := range labels {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		err := g.pool.Submit(func() error {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("caribou: screenshot: %w", err)
			}
			return writePNG(path, img)
		})
		if err != nil {
			g.logger.Warn("screenshot dropped", "label", label, "err", err)
		}
	}
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("caribou: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("caribou: encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

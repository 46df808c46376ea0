package ebitenbackend

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsPanel is the overlay drawn in the top-left corner when ShowFPS is set.
// 100x32 is enough for "FPS: 60.0\nTPS: 60.0".
var fpsPanel = ebiten.NewImage(100, 32)

func drawFPS(screen *ebiten.Image) {
	fpsPanel.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(fpsPanel, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	screen.DrawImage(fpsPanel, nil)
}

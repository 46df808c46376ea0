// Package ebitenbackend runs a caribou scene in an Ebitengine window. It polls
// Ebitengine for pointer, keyboard and text input, feeds it to the scene,
// and rasterizes the scene's batch with Ebitengine's vector and text
// packages.
package ebitenbackend

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/caribou"
	"github.com/phanxgames/caribou/dispatch"
)

// Game adapts a caribou.Scene to ebiten.Game.
type Game struct {
	scene    *caribou.Scene
	cfg      caribou.Config
	clear    color.Color
	renderer *Renderer
	input    poller
	ime      *composer
	logger   *slog.Logger

	pool      *dispatch.Pool
	scheduler *dispatch.Scheduler
	cancel    context.CancelFunc

	batch         *caribou.Batch
	width, height int
	now           func() time.Time
}

// NewGame validates cfg and wires scene to a renderer, a worker pool and a
// scheduler. The scheduler runs until Close.
func NewGame(scene *caribou.Scene, cfg caribou.Config) (*Game, error) {
	if scene == nil {
		return nil, errors.New("caribou: nil scene")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bg, _ := cfg.Window.Background()
	tick, _ := cfg.Dispatch.TickInterval()

	logger := cfg.Logger(os.Stderr)
	scene.SetLogger(logger)

	pool := dispatch.NewPool(cfg.Dispatch.Workers)
	g := &Game{
		scene:     scene,
		cfg:       cfg,
		clear:     toNRGBA(bg),
		renderer:  NewRenderer(),
		ime:       newComposer(),
		logger:    logger,
		pool:      pool,
		scheduler: dispatch.NewScheduler(pool, tick),
		now:       time.Now,
	}
	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	go func() {
		if err := g.scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("scheduler stopped", "err", err)
		}
	}()
	return g, nil
}

// Scene returns the driven scene.
func (g *Game) Scene() *caribou.Scene { return g.scene }

// Pool returns the worker pool. Tasks must not touch the widget tree; use
// Scene.Post to get back onto the UI goroutine.
func (g *Game) Pool() *dispatch.Pool { return g.pool }

// Scheduler returns the delayed-task scheduler feeding Pool.
func (g *Game) Scheduler() *dispatch.Scheduler { return g.scheduler }

// Renderer returns the batch rasterizer.
func (g *Game) Renderer() *Renderer { return g.renderer }

// Update polls input and advances the scene. While a text field holds
// focus, text arrives through the IME field instead of the input chars.
func (g *Game) Update() error {
	f := g.input.capture(g.width, g.height)
	wasComposing := g.ime.composing()
	owned, err := g.ime.update(g.scene, g.scene.Focus().Focused())
	if err != nil {
		g.logger.Warn("text input disabled", "err", err)
	}
	if owned {
		f.yieldText(wasComposing || g.ime.composing())
	}
	g.input.apply(g.scene, f)
	g.scene.Update()
	return nil
}

// Draw repaints the window. The scene batch is rebuilt only when a redraw
// was requested.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.scene.TakeRedraw() || g.batch == nil {
		g.batch = g.scene.Draw()
	}
	screen.Fill(g.clear)
	g.renderer.Render(screen, g.batch)
	if g.cfg.Window.ShowFPS {
		drawFPS(screen)
	}
	g.flushScreenshots(screen)
}

// Layout keeps the root widget sized to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.scene.Root().Size.Set(caribou.V(float64(outsideWidth), float64(outsideHeight)))
		g.scene.RequestRedraw()
	}
	return outsideWidth, outsideHeight
}

// Close stops the scheduler and waits for pending background work,
// including screenshot writes.
func (g *Game) Close() error {
	g.scheduler.Shutdown()
	g.cancel()
	return g.pool.Shutdown()
}

// Run opens a window configured by cfg and drives scene until the window
// is closed.
func Run(scene *caribou.Scene, cfg caribou.Config) error {
	g, err := NewGame(scene, cfg)
	if err != nil {
		return err
	}
	return g.Run()
}

// Run opens the window and blocks until it is closed, then releases the
// game's background workers.
func (g *Game) Run() error {
	ebiten.SetWindowTitle(g.cfg.Window.Title)
	ebiten.SetWindowSize(g.cfg.Window.Width, g.cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if g.cfg.Window.TPS > 0 {
		ebiten.SetTPS(g.cfg.Window.TPS)
	}
	runErr := ebiten.RunGame(g)
	if runErr != nil {
		runErr = fmt.Errorf("caribou: run game: %w", runErr)
	}
	return errors.Join(runErr, g.Close())
}

func toNRGBA(c caribou.Color) color.NRGBA {
	return color.NRGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}

// Package ebitengame runs a stage.Stage inside an ebiten window.
package ebitengame

import (
	"errors"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/offscreen"
	"github.com/gogpu/offscreen/stage"
	"github.com/gogpu/offscreen/surface/ebitensurface"
)

// ErrStopped ends the ebiten loop once the stage has been destroyed.
var ErrStopped = errors.New("ebitengame: stage destroyed")

// Game adapts a Stage to ebiten.Game. The stage is drawn directly onto
// the ebiten screen; it must not be configured with a render target of
// another device.
type Game struct {
	stage   *stage.Stage
	surface *ebitensurface.Surface
	width   int
	height  int
	tick    time.Duration
	err     error
}

// New returns a game with a logical screen of width×height.
func New(st *stage.Stage, width, height int) *Game {
	return &Game{
		stage:   st,
		surface: ebitensurface.New(nil),
		width:   width,
		height:  height,
		tick:    tickDuration(ebiten.MaxTPS()),
	}
}

func tickDuration(tps int) time.Duration {
	if tps <= 0 {
		tps = 60
	}
	return time.Second / time.Duration(tps)
}

// Update advances the stage by one tick. Task errors are logged; once
// the stage has been destroyed Update returns ErrStopped.
func (g *Game) Update() error {
	if err := g.stage.Update(g.tick); err != nil {
		offscreen.Logger().Warn("ebitengame: update", "err", err)
		g.err = err
	}
	if g.stage.Destroyed() {
		g.surface.Dispose()
		return ErrStopped
	}
	return nil
}

// Draw composites the scene onto screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.SetTarget(screen)
	if err := g.stage.Draw(g.surface, image.Rect(0, 0, g.width, g.height)); err != nil {
		offscreen.Logger().Warn("ebitengame: draw", "err", err)
		g.err = err
	}
}

// Layout returns the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Err returns the last error reported by the stage.
func (g *Game) Err() error {
	return g.err
}

// Run opens a window titled title and runs g until the window is closed
// or the stage is destroyed.
func Run(g *Game, title string) error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(title)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ErrStopped) {
		return err
	}
	return nil
}

var _ ebiten.Game = (*Game)(nil)

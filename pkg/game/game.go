package game

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/golangdaddy/roadrush/pkg/input"
	"github.com/golangdaddy/roadrush/pkg/loop"
	"github.com/golangdaddy/roadrush/pkg/telemetry"
	"github.com/golangdaddy/roadrush/pkg/ui"
	"github.com/golangdaddy/roadrush/pkg/viewport"
	"github.com/golangdaddy/roadrush/pkg/world"
)

// Screen represents a UI screen interface
type Screen interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// Options configures a Game
type Options struct {
	World     world.Config
	Rand      world.Rand
	Log       *zap.SugaredLogger
	Telemetry *telemetry.Client // nil disables reporting
	Locator   telemetry.Locator // nil skips the location report
}

// Game implements the ebiten.Game interface and manages the overall game state
type Game struct {
	opts          Options
	log           *zap.SugaredLogger
	viewport      *viewport.Adapter
	currentScreen Screen

	outsideW, outsideH int
	layoutFailed       bool
}

// NewGame creates a new game instance starting on the title screen
func NewGame(opts Options) *Game {
	if opts.Log == nil {
		opts.Log = zap.NewNop().Sugar()
	}
	g := &Game{
		opts:     opts,
		log:      opts.Log,
		viewport: viewport.NewAdapter(opts.World.Width, opts.World.Height),
	}
	g.currentScreen = ui.NewTitleScreen(g.startSession)
	return g
}

// startSession reports telemetry without waiting on it and opens the gameplay screen
func (g *Game) startSession() {
	g.opts.Telemetry.StartSession(context.Background(), g.sessionReport(), g.opts.Locator)

	w := world.New(g.opts.World, g.opts.Rand)
	driver := loop.New(w, input.NewState(), g.log)
	g.currentScreen = NewGameplayScreen(driver)
	g.log.Infow("Session started", "display", g.viewport.Display())
}

func (g *Game) sessionReport() telemetry.SessionReport {
	screenW, screenH := ebiten.Monitor().Size()
	return telemetry.SessionReport{
		ScreenSize: telemetry.ScreenSize{
			Width:        g.outsideW,
			Height:       g.outsideH,
			ScreenWidth:  screenW,
			ScreenHeight: screenH,
		},
	}
}

// Update handles game logic updates
func (g *Game) Update() error {
	if g.currentScreen != nil {
		return g.currentScreen.Update()
	}
	return nil
}

// Draw renders the current screen
func (g *Game) Draw(screen *ebiten.Image) {
	if g.currentScreen != nil {
		g.currentScreen.Draw(screen)
	}
}

// Layout keeps the logical size fixed and tracks the presentation size.
// A bad measurement is logged once and the last good size is kept.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	if outsideWidth != g.outsideW || outsideHeight != g.outsideH {
		g.outsideW, g.outsideH = outsideWidth, outsideHeight
		size, err := g.viewport.Resize(float64(outsideWidth), float64(outsideHeight))
		switch {
		case err != nil && !g.layoutFailed:
			g.layoutFailed = true
			g.log.Warnw("Ignoring container size", "error", err, "display", size)
		case err == nil:
			g.log.Debugw("Viewport resized", "container", []int{outsideWidth, outsideHeight}, "display", size, "scale", g.viewport.Scale())
		}
	}
	logical := g.viewport.Logical()
	return int(logical.Width), int(logical.Height)
}

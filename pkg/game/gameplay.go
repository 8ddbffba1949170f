package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/golangdaddy/roadrush/pkg/loop"
)

// GameplayScreen hosts a running session
type GameplayScreen struct {
	driver *loop.Driver
	poller *Poller
}

// NewGameplayScreen creates a gameplay screen around a loop driver
func NewGameplayScreen(driver *loop.Driver) *GameplayScreen {
	return &GameplayScreen{
		driver: driver,
		poller: NewPoller(),
	}
}

// Update polls input, then steps the simulation
func (gs *GameplayScreen) Update() error {
	if gs.poller.Poll(gs.driver.Input()) {
		gs.driver.Click()
	}
	gs.driver.Update()
	return nil
}

// Draw renders the current world
func (gs *GameplayScreen) Draw(screen *ebiten.Image) {
	gs.driver.Draw(NewCanvas(screen))
}
